package core

import (
	"context"

	"github.com/google/uuid"
)

type scopeKey struct{}

// WithScope returns a copy of ctx tagged with a fresh scope id. Records
// logged with the returned context (or any context derived from it)
// report that id from Record.ScopeID.
func WithScope(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, scopeKey{}, uuid.NewString())
}

// ScopeID returns the scope id stored in ctx, or "" when there is none
func ScopeID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(scopeKey{}).(string)
	return id
}
