package main

import (
	"context"
	"fmt"

	"mortgage-agent/config"
	perr "mortgage-agent/errors"
	"mortgage-agent/repository"
)

// openSource builds the configured SourceRepository and a func releasing it.
func openSource(ctx context.Context, cfg config.Config) (repository.SourceRepository, func() error, error) {
	switch cfg.Source {
	case config.SourceRedis:
		src := repository.NewRedisSource(cfg.RedisAddr, cfg.RedisPrefix)
		if err := src.Ping(ctx); err != nil {
			_ = src.Close()
			return nil, nil, perr.Wrap(err, perr.ErrorCodeUnavailable, fmt.Sprintf("redis %s unreachable", cfg.RedisAddr))
		}
		return src, src.Close, nil
	default:
		return repository.NewFileSource(cfg.InputDir), func() error { return nil }, nil
	}
}
