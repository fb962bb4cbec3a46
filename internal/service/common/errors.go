package common

import (
	"fmt"
	"strings"
)

// メッセージの絵文字定数
const (
	ErrorIcon   = "❌"
	SuccessIcon = "✅"
	WarningIcon = "⚠️"
	SearchIcon  = "🔍"
	InfoIcon    = "📋"
	SkipIcon    = "⏭️"
	UploadIcon  = "📤"
	PartyIcon   = "🎉"
)

// StatusError はストレージAPIが成功以外のステータスを返した場合のエラー
type StatusError struct {
	Op         string // 例: "head", "put"
	Key        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Op, e.Key, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d %s", e.Op, e.Key, e.StatusCode, body)
}
