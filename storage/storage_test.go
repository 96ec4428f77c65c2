package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/masomo-client/core"
	"github.com/trezcool/masomo-client/storage/kv"
)

func TestOpen_Backends(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name string
		conf core.StorageConfig
	}{
		{name: "memory", conf: core.StorageConfig{Backend: core.StorageMemory}},
		{name: "sqlite", conf: core.StorageConfig{Backend: core.StorageSQLite, DSN: ":memory:"}},
		{name: "redis", conf: core.StorageConfig{Backend: core.StorageRedis, RedisAddr: mr.Addr()}},
		{name: "encrypted memory", conf: core.StorageConfig{Backend: core.StorageMemory, SecretKey: "s3cr3t"}},
		{name: "encrypted sqlite", conf: core.StorageConfig{Backend: core.StorageSQLite, DSN: ":memory:", SecretKey: "s3cr3t"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store, err := Open(ctx, &core.Config{Storage: tt.conf})
			require.NoError(t, err)
			defer store.Close()

			_, err = store.GetString(ctx, kv.TokenKey)
			if errors.Cause(err) != kv.ErrNotFound {
				t.Fatalf("GetString() error = %v, wantErr %v", err, kv.ErrNotFound)
			}

			require.NoError(t, store.SetString(ctx, kv.TokenKey, "tok-1"))
			require.NoError(t, store.SetString(ctx, kv.TokenKey, "tok-2"))
			got, err := store.GetString(ctx, kv.TokenKey)
			require.NoError(t, err)
			assert.Equal(t, "tok-2", got)

			require.NoError(t, store.Remove(ctx, kv.TokenKey))
			require.NoError(t, store.Remove(ctx, kv.TokenKey), "removing a missing key")
			_, err = store.GetString(ctx, kv.TokenKey)
			assert.Equal(t, kv.ErrNotFound, errors.Cause(err))
		})
	}
}

func TestOpen_Errors(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	tests := []struct {
		name string
		conf core.StorageConfig
	}{
		{name: "unknown backend", conf: core.StorageConfig{Backend: "mongo"}},
		{name: "redis down", conf: core.StorageConfig{Backend: core.StorageRedis, RedisAddr: addr}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Open(context.Background(), &core.Config{Storage: tt.conf}); err == nil {
				t.Error("Open() error = nil, wantErr true")
			}
		})
	}
}
