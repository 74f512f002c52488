// Package txctx はコンテキストに実行中のトランザクションを載せるための小さな補助です。
package txctx

import "context"

type key struct{}

// With は tx を保持したコンテキストを返します。
func With[T any](ctx context.Context, tx T) context.Context {
	return context.WithValue(ctx, key{}, tx)
}

// From はコンテキストに T 型のトランザクションがあれば返します。
func From[T any](ctx context.Context) (T, bool) {
	var zero T
	if ctx == nil {
		return zero, false
	}
	tx, ok := ctx.Value(key{}).(T)
	return tx, ok
}
