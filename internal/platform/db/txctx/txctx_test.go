package txctx

import (
	"context"
	"testing"
)

type fakeTx struct{ name string }

func TestWithAndFrom(t *testing.T) {
	t.Parallel()

	ctx := With(context.Background(), &fakeTx{name: "tx-1"})

	tx, ok := From[*fakeTx](ctx)
	if !ok || tx.name != "tx-1" {
		t.Fatalf("expected tx-1 from context, got %+v ok=%t", tx, ok)
	}

	if _, ok := From[string](ctx); ok {
		t.Fatal("expected type mismatch to report absence")
	}

	if _, ok := From[*fakeTx](context.Background()); ok {
		t.Fatal("expected empty context to report absence")
	}
}
