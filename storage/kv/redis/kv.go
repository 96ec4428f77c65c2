package rediskv

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/trezcool/masomo-client/storage/kv"
)

// KeyPrefix namespaces the keys of the client in a shared redis.
const KeyPrefix = "masomo:"

type store struct {
	rdb *redis.Client
}

var _ kv.Store = (*store)(nil)

func Open(ctx context.Context, addr string) (kv.Store, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, errors.Wrap(err, "pinging redis")
	}
	return &store{rdb: rdb}, nil
}

func (s *store) GetString(ctx context.Context, key string) (string, error) {
	v, err := s.rdb.Get(ctx, KeyPrefix+key).Result()
	switch {
	case err == redis.Nil:
		return "", kv.ErrNotFound
	case err != nil:
		return "", errors.Wrapf(err, "getting %q", key)
	}
	return v, nil
}

func (s *store) SetString(ctx context.Context, key, value string) error {
	if err := s.rdb.Set(ctx, KeyPrefix+key, value, 0).Err(); err != nil {
		return errors.Wrapf(err, "setting %q", key)
	}
	return nil
}

func (s *store) Remove(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, KeyPrefix+key).Err(); err != nil {
		return errors.Wrapf(err, "removing %q", key)
	}
	return nil
}

func (s *store) Close() error {
	return s.rdb.Close()
}
