package storage

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/crmkeeper/internal/common"
	"github.com/dmitrijs2005/crmkeeper/internal/cryptox"
)

// Reserved keys kept in plaintext next to the sealed values.
const (
	saltKey     = "__salt"
	verifierKey = "__verifier"
)

var ErrWrongPassphrase = errors.New("state passphrase does not match")

// Sealed encrypts every value before handing it to the wrapped Storage.
// The argon2 salt and a key verifier live in the same store, so a wrong
// passphrase is reported at open time instead of as unreadable values.
type Sealed struct {
	inner Storage
	key   []byte
	salt  []byte
	ver   []byte
}

func NewSealed(ctx context.Context, inner Storage, passphrase []byte) (*Sealed, error) {
	salt, err := inner.Get(ctx, saltKey)
	if err != nil {
		return nil, err
	}
	fresh := salt == nil
	if fresh {
		salt = common.GenerateRandByteArray(16)
	}

	key := cryptox.DeriveKey(passphrase, salt)
	ver := cryptox.MakeVerifier(key)

	if !fresh {
		saved, err := inner.Get(ctx, verifierKey)
		if err != nil {
			return nil, err
		}
		if saved != nil && subtle.ConstantTimeCompare(saved, ver) == 0 {
			return nil, ErrWrongPassphrase
		}
	}

	s := &Sealed{inner: inner, key: key, salt: salt, ver: ver}
	if err := s.writeHeader(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sealed) writeHeader(ctx context.Context) error {
	return s.inner.SetMany(ctx, map[string][]byte{saltKey: s.salt, verifierKey: s.ver})
}

func (s *Sealed) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.inner.Get(ctx, key)
	if err != nil || v == nil {
		return v, err
	}
	plain, err := cryptox.Open(s.key, v)
	if err != nil {
		return nil, fmt.Errorf("unseal state[%s]: %w", key, err)
	}
	return plain, nil
}

func (s *Sealed) Set(ctx context.Context, key string, value []byte) error {
	return s.SetMany(ctx, map[string][]byte{key: value})
}

func (s *Sealed) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}

func (s *Sealed) SetMany(ctx context.Context, values map[string][]byte) error {
	sealed := make(map[string][]byte, len(values))
	for k, v := range values {
		c, err := cryptox.Seal(s.key, v)
		if err != nil {
			return fmt.Errorf("seal state[%s]: %w", k, err)
		}
		sealed[k] = c
	}
	return s.inner.SetMany(ctx, sealed)
}

func (s *Sealed) DeleteMany(ctx context.Context, keys ...string) error {
	return s.inner.DeleteMany(ctx, keys...)
}

// Clear wipes the values but keeps the salt and verifier, so data written
// afterwards stays readable with the same passphrase.
func (s *Sealed) Clear(ctx context.Context) error {
	if err := s.inner.Clear(ctx); err != nil {
		return err
	}
	return s.writeHeader(ctx)
}

func (s *Sealed) Close() error {
	common.WipeByteArray(s.key)
	return s.inner.Close()
}
