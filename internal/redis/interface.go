package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is the subset of go-redis the stores use. Any go-redis client,
// including redismock's, satisfies it.
type Client interface {
	redis.UniversalClient
}
