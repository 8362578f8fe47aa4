package repository

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/redis/go-redis/v9"

	perr "mortgage-agent/errors"
)

// RedisSource reads documents stored as plain string values, one key per document.
type RedisSource struct {
	client *redis.Client
	prefix string
}

func NewRedisSource(addr, prefix string) *RedisSource {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return NewRedisSourceFromClient(rdb, prefix)
}

func NewRedisSourceFromClient(client *redis.Client, prefix string) *RedisSource {
	return &RedisSource{
		client: client,
		prefix: prefix,
	}
}

func (r *RedisSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	val, err := r.client.Get(ctx, r.prefix+name).Result()
	if errors.Is(err, redis.Nil) {
		return nil, perr.New(perr.ErrorCodeNotFound, notFoundMessage(name))
	}
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "redis source unavailable")
	}
	return io.NopCloser(strings.NewReader(val)), nil
}

// Put stores a document under name, replacing any previous one.
func (r *RedisSource) Put(ctx context.Context, name, content string) error {
	return r.client.Set(ctx, r.prefix+name, content, 0).Err()
}

func (r *RedisSource) Close() error {
	return r.client.Close()
}

func (r *RedisSource) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
