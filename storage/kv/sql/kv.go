package sqlkv

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/trezcool/masomo-client/core"
	"github.com/trezcool/masomo-client/storage/kv"
)

const schema = `CREATE TABLE IF NOT EXISTS kv (
	name  VARCHAR(255) PRIMARY KEY,
	value TEXT NOT NULL
)`

type store struct {
	db *sqlx.DB
}

var _ kv.Store = (*store)(nil)

// driverName maps a storage backend to its database/sql driver.
func driverName(backend string) (string, error) {
	switch backend {
	case core.StorageSQLite:
		return "sqlite", nil
	case core.StoragePostgres:
		return "postgres", nil
	default:
		return "", errors.Errorf("unsupported sql backend %q", backend)
	}
}

// Open connects to the database of backend (sqlite or postgres), waits for it and creates the kv table.
func Open(ctx context.Context, backend, dsn string) (kv.Store, error) {
	driver, err := driverName(backend)
	if err != nil {
		return nil, err
	}
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if driver == "sqlite" {
		// single writer; ":memory:" databases live as long as their connection
		db.SetMaxOpenConns(1)
	}

	if err = ping(ctx, db); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "pinging database")
	}
	if _, err = db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "creating kv table")
	}
	return &store{db: db}, nil
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(ctx context.Context, db *sqlx.DB) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err = db.PingContext(ctx)
		if err == nil {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempts) * 100 * time.Millisecond):
		}
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

func (s *store) GetString(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.GetContext(ctx, &value, s.db.Rebind("SELECT value FROM kv WHERE name = ?"), key)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", kv.ErrNotFound
	case err != nil:
		return "", errors.Wrapf(err, "getting %q", key)
	}
	return value, nil
}

func (s *store) SetString(ctx context.Context, key, value string) error {
	q := s.db.Rebind("INSERT INTO kv (name, value) VALUES (?, ?) ON CONFLICT (name) DO UPDATE SET value = excluded.value")
	if _, err := s.db.ExecContext(ctx, q, key, value); err != nil {
		return errors.Wrapf(err, "setting %q", key)
	}
	return nil
}

func (s *store) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM kv WHERE name = ?"), key); err != nil {
		return errors.Wrapf(err, "removing %q", key)
	}
	return nil
}

func (s *store) Close() error {
	return s.db.Close()
}
