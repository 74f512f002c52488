package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ogurasousui/codex-employee-records/internal/platform/db/txctx"
)

// Queryer は *sql.DB と *sql.Tx に共通するクエリ実行インターフェースです。
type Queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TransactionManager は database/sql を用いたトランザクション制御を提供します。
type TransactionManager struct {
	db *sql.DB
}

// NewTransactionManager は TransactionManager を生成します。
func NewTransactionManager(db *sql.DB) *TransactionManager {
	if db == nil {
		return nil
	}
	return &TransactionManager{db: db}
}

// WithinReadOnly は読み取り専用トランザクションを開始し、fn を実行します。
func (m *TransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if m == nil {
		return fn(ctx)
	}
	return m.within(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

// WithinReadWrite は読み書きトランザクションを開始し、fn を実行します。
func (m *TransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if m == nil {
		return fn(ctx)
	}
	return m.within(ctx, nil, fn)
}

func (m *TransactionManager) within(ctx context.Context, opts *sql.TxOptions, fn func(context.Context) error) error {
	if fn == nil {
		return fmt.Errorf("sqlite: transaction function is required")
	}

	if _, ok := txctx.From[*sql.Tx](ctx); ok {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("sqlite: begin tx: %w", err)
	}

	finished := false
	defer func() {
		// panic 時もロールバックして接続を解放する
		if !finished {
			_ = tx.Rollback()
		}
	}()

	err = fn(txctx.With(ctx, tx))
	finished = true
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return errors.Join(err, fmt.Errorf("sqlite: rollback: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}

	return nil
}

// QueryerFromContext はコンテキスト内にトランザクションが存在すればそれを返し、存在しなければ fallback を返します。
func QueryerFromContext(ctx context.Context, fallback Queryer) Queryer {
	if tx, ok := txctx.From[*sql.Tx](ctx); ok {
		return tx
	}
	return fallback
}
