// Package sqlite は組み込み SQLite ストレージへの接続とトランザクション制御を提供します。
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/ogurasousui/codex-employee-records/internal/platform/config"
)

const driverName = "sqlite3"

// Open は設定のパスで SQLite データベースを開き疎通確認を行います。
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	if cfg.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: create directory for %s: %w", cfg.Path, err)
		}
	}

	db, err := sql.Open(driverName, dataSourceName(cfg.Path))
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", cfg.Path, err)
	}

	// 書き込みは単一接続に直列化する
	db.SetMaxOpenConns(1)
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	return db, nil
}

func dataSourceName(path string) string {
	params := url.Values{}
	params.Set("_foreign_keys", "on")
	params.Set("_busy_timeout", "5000")
	if path != ":memory:" {
		params.Set("_journal_mode", "WAL")
	}
	return "file:" + path + "?" + params.Encode()
}
