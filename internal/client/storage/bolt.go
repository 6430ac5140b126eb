package storage

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"
)

var stateBucket = []byte("state")

// BoltStorage keeps every key in one bucket. Writes are serialized by bbolt
// itself, reads run in concurrent View transactions.
type BoltStorage struct {
	db *bbolt.DB
}

func OpenBolt(path string) (*BoltStorage, error) {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(stateBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create state bucket: %w", err)
	}
	return &BoltStorage{db: db}, nil
}

func (b *BoltStorage) Get(_ context.Context, key string) ([]byte, error) {
	var out []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(stateBucket).Get([]byte(key))
		if v != nil {
			// v is only valid for the life of the transaction
			out = append([]byte{}, v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get state[%s]: %w", key, err)
	}
	return out, nil
}

func (b *BoltStorage) Set(ctx context.Context, key string, value []byte) error {
	return b.SetMany(ctx, map[string][]byte{key: value})
}

func (b *BoltStorage) Delete(ctx context.Context, key string) error {
	return b.DeleteMany(ctx, key)
}

func (b *BoltStorage) SetMany(_ context.Context, values map[string][]byte) error {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(stateBucket)
		for k, v := range values {
			if err := bucket.Put([]byte(k), v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set state: %w", err)
	}
	return nil
}

func (b *BoltStorage) DeleteMany(_ context.Context, keys ...string) error {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(stateBucket)
		for _, k := range keys {
			if err := bucket.Delete([]byte(k)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete state: %w", err)
	}
	return nil
}

func (b *BoltStorage) Clear(_ context.Context) error {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(stateBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucket(stateBucket)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to clear state: %w", err)
	}
	return nil
}

func (b *BoltStorage) Close() error {
	return b.db.Close()
}
