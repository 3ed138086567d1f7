// Package kv is the string-keyed persistent store the collections live in.
// Every backend stores opaque byte values under a name and replaces them whole.
package kv

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("kv: key not found")

type Store interface {
	// Get returns ErrNotFound when nothing is stored under name.
	Get(ctx context.Context, name string) ([]byte, error)
	Set(ctx context.Context, name string, value []byte) error
	// Delete is a no-op for an absent name.
	Delete(ctx context.Context, name string) error
	Close() error
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
