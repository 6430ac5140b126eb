package storage

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/crmkeeper/internal/client/config"
)

// Open builds the Storage selected by cfg.Storage and seals it when a state
// passphrase is configured.
func Open(ctx context.Context, cfg *config.Config) (Storage, error) {
	var (
		s   Storage
		err error
	)

	switch cfg.Storage {
	case config.StorageSQLite:
		s, err = OpenSQLite(ctx, cfg.StatePath)
	case config.StorageBolt:
		s, err = OpenBolt(cfg.StatePath)
	case config.StorageMemory:
		s = NewMemoryStorage()
	default:
		err = fmt.Errorf("unknown storage driver %q", cfg.Storage)
	}
	if err != nil {
		return nil, err
	}

	if cfg.StatePassphrase == "" {
		return s, nil
	}

	sealed, err := NewSealed(ctx, s, []byte(cfg.StatePassphrase))
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	return sealed, nil
}
