package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("key not found")

// KVReader provides read access to keyed values.
type KVReader interface {
	Get(ctx context.Context, key string) (string, error)
}

// KVWriter provides write access to keyed values. Put replaces the whole value.
type KVWriter interface {
	Put(ctx context.Context, key, value string) error
}

// KV combines read and write access.
type KV interface {
	KVReader
	KVWriter
}
