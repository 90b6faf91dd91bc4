// Package storage provides the key-value persistence the guest cart lives
// in. It is the server-side stand-in for browser local storage: one opaque
// blob per key, no transactions, last write wins.
package storage

import "context"

// KVStore reads and writes opaque values under string keys. Get reports
// absence through its second return value, distinct from failure.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
