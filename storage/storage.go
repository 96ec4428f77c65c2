package storage

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-client/core"
	"github.com/trezcool/masomo-client/storage/kv"
	inmemkv "github.com/trezcool/masomo-client/storage/kv/inmem"
	rediskv "github.com/trezcool/masomo-client/storage/kv/redis"
	securekv "github.com/trezcool/masomo-client/storage/kv/secure"
	sqlkv "github.com/trezcool/masomo-client/storage/kv/sql"
)

// Open returns the key-value store selected by conf.Storage.
// Values are encrypted when a secret key is configured.
func Open(ctx context.Context, conf *core.Config) (kv.Store, error) {
	var (
		store kv.Store
		err   error
	)
	switch conf.Storage.Backend {
	case core.StorageMemory:
		store = inmemkv.Open()
	case core.StorageSQLite, core.StoragePostgres:
		store, err = sqlkv.Open(ctx, conf.Storage.Backend, conf.Storage.DSN)
	case core.StorageRedis:
		store, err = rediskv.Open(ctx, conf.Storage.RedisAddr)
	default:
		err = errors.Errorf("unknown storage backend %q", conf.Storage.Backend)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s storage", conf.Storage.Backend)
	}

	if conf.Storage.SecretKey == "" {
		return store, nil
	}
	secure, err := securekv.Wrap(ctx, store, conf.Storage.SecretKey)
	if err != nil {
		_ = store.Close()
		return nil, errors.Wrap(err, "opening encrypted storage")
	}
	return secure, nil
}
