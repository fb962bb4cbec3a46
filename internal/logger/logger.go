package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

var (
	// Log はアプリ全体で使うロガー（出力先は標準エラー）
	Log zerolog.Logger
)

func init() {
	SetOutput(os.Stderr)
}

// SetOutput はロガーの出力先を差し替える
func SetOutput(w io.Writer) {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
	}

	Log = zerolog.New(output).
		Level(zerolog.InfoLevel).
		With().
		Timestamp().
		Logger()
}

// SetLevel はログレベルを設定する
func SetLevel(levelStr string) {
	level, err := zerolog.ParseLevel(levelStr)
	if err != nil || levelStr == "" {
		Log.Warn().Str("level", levelStr).Msg("invalid log level, defaulting to info")
		level = zerolog.InfoLevel
	}
	Log = Log.Level(level)
}
