// Package redis wraps the go-redis client so stores depend on a narrow,
// mockable interface.
package redis

import (
	"crypto/tls"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/spell-cards/internal/errors"
)

// Options selects the redis instance. URL takes precedence over Addr.
type Options struct {
	// URL is a redis:// or rediss:// connection string
	URL      string
	Addr     string
	Password string
	DB       int
	PoolSize int
	// UseTLS applies to Addr only; URLs choose TLS by scheme
	UseTLS bool
}

// Open creates a client. Connections are made lazily on first use.
func Open(opts *Options) (Client, error) {
	if opts == nil {
		return nil, errors.InvalidArgument("redis options are required")
	}

	if opts.URL != "" {
		parsed, err := redis.ParseURL(opts.URL)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid redis url")
		}
		if opts.PoolSize > 0 {
			parsed.PoolSize = opts.PoolSize
		}
		return redis.NewClient(parsed), nil
	}

	if opts.Addr == "" {
		return nil, errors.InvalidArgument("redis address or url is required")
	}

	redisOpts := &redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
		PoolSize: opts.PoolSize,
	}
	if opts.UseTLS {
		redisOpts.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}

	return redis.NewClient(redisOpts), nil
}
