package store

import (
	"context"
	"errors"
)

type ctxKey struct{}

// ErrNoProvider is returned when a consumer asks for the store before one was attached.
var ErrNoProvider = errors.New("store: no task store attached to context")

// NewContext attaches s to ctx for consumers further down the call chain.
func NewContext(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the store attached with NewContext.
func FromContext(ctx context.Context) (*Store, error) {
	if ctx == nil {
		return nil, ErrNoProvider
	}
	s, ok := ctx.Value(ctxKey{}).(*Store)
	if !ok || s == nil {
		return nil, ErrNoProvider
	}
	return s, nil
}
