package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Collection keys.
const (
	KeyHabits  = "lumina_habits_data"
	KeyUsers   = "lumina_users_db"
	KeySession = "lumina_auth_user"
)

// BlobStore persists opaque documents by key. Get returns (nil, nil) for a missing key.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	// PutMany writes every entry; backends that can do so write them atomically.
	PutMany(ctx context.Context, entries map[string][]byte) error
	Close() error
}

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverRedis    Driver = "redis"
	DriverPostgres Driver = "postgres"
	DriverMemory   Driver = "memory"
)

func ParseDriver(s string) (Driver, error) {
	d := Driver(strings.TrimSpace(strings.ToLower(s)))
	switch d {
	case "":
		return DriverSQLite, nil
	case DriverSQLite, DriverRedis, DriverPostgres, DriverMemory:
		return d, nil
	case "postgresql", "pg":
		return DriverPostgres, nil
	default:
		return "", fmt.Errorf("unknown storage driver %q", s)
	}
}

// Options selects and configures a backend.
type Options struct {
	Driver Driver
	// Path is the SQLite file; empty means ResolveDBPath.
	Path string
	// URL is the redis:// or postgres:// connection string.
	URL string
	// Prefix namespaces keys on shared Redis instances.
	Prefix string
	Logger *slog.Logger
}

// Open returns the BlobStore described by opts.
func Open(ctx context.Context, opts Options) (BlobStore, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	driver := opts.Driver
	if driver == "" {
		driver = DriverSQLite
	}

	switch driver {
	case DriverSQLite:
		path := opts.Path
		if path == "" {
			p, err := ResolveDBPath()
			if err != nil {
				return nil, err
			}
			path = p
		}
		db, err := OpenSQLite(ctx, path)
		if err != nil {
			return nil, err
		}
		log.Debug("storage opened", "driver", driver, "path", path)
		return NewSQLiteStore(db), nil
	case DriverRedis:
		s, err := NewRedisStore(ctx, opts.URL, opts.Prefix)
		if err != nil {
			return nil, err
		}
		log.Debug("storage opened", "driver", driver)
		return s, nil
	case DriverPostgres:
		s, err := NewPostgresStore(ctx, opts.URL)
		if err != nil {
			return nil, err
		}
		log.Debug("storage opened", "driver", driver)
		return s, nil
	case DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
