package upload

import (
	"context"
	"io"
	"time"
)

// Asset はアップロード対象のローカルファイルと保存先キーの組
// 列挙時に一度だけ作られ、以後変更されない
type Asset struct {
	LocalPath string
	Key       string // ルートからの相対パス（"/"区切り、先頭の"/"なし）
}

// ObjectStore はバケットへの存在確認とアップロードを行う
type ObjectStore interface {
	// Exists はキーにオブジェクトが存在するかを返す
	// 判定できないステータスの場合は false とエラーを返す
	Exists(ctx context.Context, key string) (bool, error)
	// Put はボディ全体を上書き（upsert）でアップロードする
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
}

// Options は1回の実行のオプション
type Options struct {
	Bucket       string
	DryRun       bool
	SkipExisting bool
	Sniff        bool          // 拡張子で判定できない場合に中身からContent-Typeを推定する
	Timeout      time.Duration // 1リクエストあたりのタイムアウト（0なら無制限）
	Progress     io.Writer     // nil以外ならプログレスバーを表示
}

// Outcome は1アセットの最終状態
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeSkipped
	OutcomeError
	OutcomeDryRun
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeError:
		return "error"
	case OutcomeDryRun:
		return "dry-run"
	}
	return "unknown"
}

// Totals は実行全体の集計
type Totals struct {
	OK      int
	Skipped int
	Error   int
}

// Record は最終状態を1件集計する（ドライランは数えない）
func (t *Totals) Record(o Outcome) {
	switch o {
	case OutcomeOK:
		t.OK++
	case OutcomeSkipped:
		t.Skipped++
	case OutcomeError:
		t.Error++
	}
}

// Total は集計済みの件数を返す
func (t Totals) Total() int {
	return t.OK + t.Skipped + t.Error
}
