package common

import (
	"strings"

	"github.com/gobwas/glob"
)

// HasWildcard はglobのメタ文字を含むかどうかを返す
func HasWildcard(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// CompilePattern はファイル名用のglobパターンをコンパイルする
// ワイルドカードを含まない場合は完全一致のパターンになる
func CompilePattern(pattern string) (glob.Glob, error) {
	if !HasWildcard(pattern) {
		return glob.Compile(glob.QuoteMeta(pattern))
	}
	return glob.Compile(pattern)
}

// IsHidden はドットで始まる隠しファイルかどうかを返す
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
