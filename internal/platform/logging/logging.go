// Package logging は zerolog ベースのアプリケーションロガーを構築します。
package logging

import (
	"io"
	"os"
	"time"

	"github.com/ogurasousui/codex-employee-records/internal/platform/config"
	"github.com/rs/zerolog"
)

// New は設定に従って zerolog.Logger を生成します。w が nil の場合は標準出力に書き出します。
func New(cfg config.LogConfig, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stdout
	}
	if cfg.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Caller().
		Str("service", "employee-records").
		Logger()
}
