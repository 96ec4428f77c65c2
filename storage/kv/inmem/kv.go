package inmemkv

import (
	"context"
	"sync"

	"github.com/trezcool/masomo-client/storage/kv"
)

type store struct {
	mutex sync.RWMutex
	table map[string]string
}

var _ kv.Store = (*store)(nil)

func Open() kv.Store {
	return &store{table: make(map[string]string)}
}

func (s *store) GetString(_ context.Context, key string) (string, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if v, ok := s.table[key]; ok {
		return v, nil
	}
	return "", kv.ErrNotFound
}

func (s *store) SetString(_ context.Context, key, value string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.table[key] = value
	return nil
}

func (s *store) Remove(_ context.Context, key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.table, key)
	return nil
}

func (s *store) Close() error { return nil }
