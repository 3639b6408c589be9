// Package tx carries an open SQL transaction through a context so stores
// can join the caller's unit of work without widening their signatures.
package tx

import (
	"context"
	"database/sql"
)

type ctxKey struct{}

var txKey = ctxKey{}

// Runner executes fn inside a single transaction. Implementations commit when
// fn returns nil and roll back otherwise.
type Runner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, fn func(ctx context.Context) error) error

// RunInTx implements Runner.
func (f RunnerFunc) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return f(ctx, fn)
}

// Direct runs fn without a transaction. In-memory stores use it, since each
// of their operations already holds its own lock. Nothing is rolled back: a
// write that fails leaves earlier writes in fn in place.
var Direct Runner = RunnerFunc(func(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
})

// WithTx stores a SQL transaction in context for downstream store usage.
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	if tx == nil {
		return ctx
	}
	return context.WithValue(ctx, txKey, tx)
}

// From extracts a SQL transaction from context if present.
func From(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txKey).(*sql.Tx)
	return tx, ok
}
