package common

// TableColumn はテーブルの列定義
type TableColumn struct {
	Header string
	// 右寄せで表示するか（数値列向け）
	AlignRight bool
}
