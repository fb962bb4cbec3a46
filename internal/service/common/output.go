package common

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// PrintTable はテーブル形式でデータを表示する
// 全角文字を含むセルも揃うよう、幅は表示幅で計算する
func PrintTable(w io.Writer, title string, columns []TableColumn, data [][]string) {
	if title != "" {
		fmt.Fprintf(w, "\n%s:\n", title)
	}

	// 各列の最大幅を計算（ヘッダーとデータの中で最大値を取得）
	colWidths := make([]int, len(columns))
	for i, col := range columns {
		colWidths[i] = runewidth.StringWidth(col.Header)
	}
	for _, row := range data {
		for i, cell := range row {
			if i < len(colWidths) {
				if cw := runewidth.StringWidth(cell); cw > colWidths[i] {
					colWidths[i] = cw
				}
			}
		}
	}

	// ヘッダー表示
	for i, col := range columns {
		fmt.Fprintf(w, "%s ", pad(col.Header, colWidths[i], col.AlignRight))
	}
	fmt.Fprintln(w)

	// 区切り線
	for i := range columns {
		fmt.Fprintf(w, "%s ", strings.Repeat("-", colWidths[i]))
	}
	fmt.Fprintln(w)

	// データ行
	for _, row := range data {
		for i, cell := range row {
			if i < len(columns) {
				fmt.Fprintf(w, "%s ", pad(cell, colWidths[i], columns[i].AlignRight))
			}
		}
		fmt.Fprintln(w)
	}
}

func pad(s string, width int, right bool) string {
	if right {
		return runewidth.FillLeft(s, width)
	}
	return runewidth.FillRight(s, width)
}
