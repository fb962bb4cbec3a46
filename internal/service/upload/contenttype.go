package upload

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultContentType は判定できなかった場合のContent-Type
const DefaultContentType = "application/octet-stream"

// 画像はOSのMIMEテーブルに依存せず固定で判定する
var imageContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".avif": "image/avif",
}

// DetectContentType はファイル名の拡張子からContent-Typeを推定する
// sniff が true の場合、拡張子で判定できなければファイルの先頭バイトから推定する
func DetectContentType(localPath string, sniff bool) string {
	ext := strings.ToLower(filepath.Ext(localPath))
	if ct, ok := imageContentTypes[ext]; ok {
		return ct
	}
	if ext != "" {
		if ct := mime.TypeByExtension(ext); ct != "" {
			return ct
		}
	}
	if sniff {
		if mt, err := mimetype.DetectFile(localPath); err == nil && !mt.Is(DefaultContentType) {
			return mt.String()
		}
	}
	return DefaultContentType
}
