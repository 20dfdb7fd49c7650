package store

import (
	"context"
	stderrors "errors"
	"slices"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/skyline/pkg/errors"
	"github.com/matzehuels/skyline/pkg/street"
)

// RedisConfig configures a [RedisStore].
type RedisConfig struct {
	Addr     string // default "localhost:6379"
	Password string
	DB       int
	Prefix   string // key prefix, default "skyline:"
}

// RedisStore keeps each street under "<prefix>street:<name>" and the set of
// names under "<prefix>streets".
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to Redis and checks the connection.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	if cfg.Addr == "" {
		cfg.Addr = "localhost:6379"
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "skyline:"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to redis at %s", cfg.Addr)
	}
	return &RedisStore{client: client, prefix: cfg.Prefix}, nil
}

func (r *RedisStore) key(name string) string { return r.prefix + "street:" + name }
func (r *RedisStore) index() string          { return r.prefix + "streets" }

func (r *RedisStore) Get(ctx context.Context, name string) (*street.Street, error) {
	if err := errors.ValidateStreetName(name); err != nil {
		return nil, err
	}
	data, err := r.client.Get(ctx, r.key(name)).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, notFound(name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "redis get %q", name)
	}
	return decode(name, data)
}

func (r *RedisStore) Put(ctx context.Context, name string, s *street.Street) error {
	if err := errors.ValidateStreetName(name); err != nil {
		return err
	}
	data, err := encode(name, s)
	if err != nil {
		return err
	}
	_, err = r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, r.key(name), data, 0)
		p.SAdd(ctx, r.index(), name)
		return nil
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "redis put %q", name)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateStreetName(name); err != nil {
		return err
	}
	var del *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		del = p.Del(ctx, r.key(name))
		p.SRem(ctx, r.index(), name)
		return nil
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "redis delete %q", name)
	}
	if del.Val() == 0 {
		return notFound(name)
	}
	return nil
}

func (r *RedisStore) List(ctx context.Context) ([]string, error) {
	names, err := r.client.SMembers(ctx, r.index()).Result()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "redis list")
	}
	slices.Sort(names)
	return names, nil
}

func (r *RedisStore) Close() error { return r.client.Close() }

var _ Store = (*RedisStore)(nil)
