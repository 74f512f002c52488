// Package migration は golang-migrate を用いたスキーマ移行を実行します。
package migration

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
)

// Action は移行操作の種類です。
type Action string

const (
	ActionUp      Action = "up"
	ActionDown    Action = "down"
	ActionDrop    Action = "drop"
	ActionVersion Action = "version"
)

// SourceURL はディレクトリを file:// 形式のソース URL に変換します。
func SourceURL(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("migration: resolve path for %s: %w", dir, err)
	}
	return "file://" + filepath.ToSlash(absDir), nil
}

// Run は dir の移行ファイルを databaseURL に対して適用します。
func Run(action Action, dir, databaseURL string, logger zerolog.Logger) error {
	sourceURL, err := SourceURL(dir)
	if err != nil {
		return err
	}

	m, err := migrate.New(sourceURL, databaseURL)
	if err != nil {
		return fmt.Errorf("migration: create migrate instance: %w", err)
	}
	defer m.Close()

	switch action {
	case ActionUp:
		return ignoreNoChange(m.Up())
	case ActionDown:
		return ignoreNoChange(m.Down())
	case ActionDrop:
		return m.Drop()
	case ActionVersion:
		version, dirty, err := m.Version()
		if err != nil {
			if errors.Is(err, migrate.ErrNilVersion) {
				logger.Info().Msg("no migration applied")
				return nil
			}
			return err
		}
		logger.Info().Uint("version", version).Bool("dirty", dirty).Msg("migration version")
		return nil
	default:
		return fmt.Errorf("migration: unsupported action %q", action)
	}
}

func ignoreNoChange(err error) error {
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
