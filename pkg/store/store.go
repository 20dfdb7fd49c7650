// Package store keeps named streets.
//
// # Backends
//
//   - [MemoryStore]: in-process map, for tests and the HTTP server's
//     ephemeral mode
//   - [FileStore]: one JSON street file per name in a directory
//   - [GdataStore]: the platform's application data directory via
//     quasilyte/gdata
//   - [RedisStore]: one key per street plus a set of names
//   - [MongoStore]: one document per street
//
// Every backend stores the JSON street file format of package io, so a
// street moved between backends keeps its building identifiers.
//
// # Usage
//
//	st, err := store.Open(ctx, store.Config{Backend: "file", Dir: dir})
//	if err != nil {
//	    return err
//	}
//	defer st.Close()
//
//	s, err := st.Get(ctx, "main")
//	if errors.Is(err, errors.ErrCodeNotFound) {
//	    // no such street
//	}
package store

import (
	"context"

	"github.com/matzehuels/skyline/pkg/errors"
	streetio "github.com/matzehuels/skyline/pkg/io"
	"github.com/matzehuels/skyline/pkg/street"
)

// Store is the interface for street storage backends.
//
// Get returns a street the caller owns: mutating it does not change the
// stored copy until Put is called.
type Store interface {
	// Get loads a street by name.
	// Returns a NOT_FOUND error if no street has that name.
	Get(ctx context.Context, name string) (*street.Street, error)

	// Put stores a street under name, replacing any previous one.
	Put(ctx context.Context, name string, s *street.Street) error

	// Delete removes a street.
	// Returns a NOT_FOUND error if no street has that name.
	Delete(ctx context.Context, name string) error

	// List returns all street names in ascending order.
	List(ctx context.Context) ([]string, error)

	// Close releases connections held by the backend.
	Close() error
}

// Backend names accepted by [Open].
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendGdata  = "gdata"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Backends lists every backend name.
var Backends = []string{BackendMemory, BackendFile, BackendGdata, BackendRedis, BackendMongo}

// Config selects and configures a backend.
type Config struct {
	Backend       string
	Dir           string // file: street directory
	AppName       string // gdata: application name (default "skyline")
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string // default "skyline:"
	MongoURI      string
	MongoDatabase string // default "skyline"
}

// Open creates the backend named by cfg.Backend.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendFile, "":
		return NewFileStore(cfg.Dir)
	case BackendGdata:
		return NewGdataStore(cfg.AppName)
	case BackendRedis:
		return NewRedisStore(ctx, RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
	case BackendMongo:
		return NewMongoStore(ctx, MongoConfig{URI: cfg.MongoURI, Database: cfg.MongoDatabase})
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown store backend %q (want memory, file, gdata, redis or mongo)", cfg.Backend)
}

func notFound(name string) error {
	return errors.New(errors.ErrCodeNotFound, "street %q not found", name)
}

func encode(name string, s *street.Street) ([]byte, error) {
	return streetio.Marshal(s, name, streetio.FormatJSON)
}

func decode(name string, data []byte) (*street.Street, error) {
	s, _, err := streetio.Unmarshal(data, streetio.FormatJSON)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode stored street %q", name)
	}
	return s, nil
}
