// Package storage provides the durable key/value store that keeps the
// session across CLI runs (keys crmtoken, crmuser, crmrole).
//
// Implementations:
//   - SQLiteStorage: modernc.org/sqlite, schema managed by goose migrations.
//   - BoltStorage:   a single bbolt bucket.
//   - MemoryStorage: process-local map, for tests and throwaway sessions.
//   - Sealed:        wraps any of the above and encrypts values at rest.
//
// Contract shared by all implementations: Get returns (nil, nil) for an
// absent key; SetMany and DeleteMany are atomic; Delete of an absent key is
// not an error. All implementations are safe for concurrent use.
package storage

import "context"

type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	SetMany(ctx context.Context, values map[string][]byte) error
	DeleteMany(ctx context.Context, keys ...string) error
	Clear(ctx context.Context) error
	Close() error
}
