package spellbook

import (
	"context"
	"encoding/json"
	"log/slog"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/spell-cards/internal/entities/spellcard"
	"github.com/KirkDiggler/spell-cards/internal/errors"
	redisclient "github.com/KirkDiggler/spell-cards/internal/redis"
)

const errBookNil = "book cannot be nil"

// RedisConfig holds the dependencies for the redis repository
type RedisConfig struct {
	Client redisclient.Client
	// Key defaults to DefaultKey
	Key string
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Client == nil {
		vb.RequiredField("Client")
	}
	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
	key    string
}

// NewRedisRepository creates a redis-backed spell book repository
func NewRedisRepository(cfg *RedisConfig) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	key := cfg.Key
	if key == "" {
		key = DefaultKey
	}

	return &redisRepository{
		client: cfg.Client,
		key:    key,
	}, nil
}

func (r *redisRepository) Get(ctx context.Context, _ GetInput) (*GetOutput, error) {
	result, err := r.client.Get(ctx, r.key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("no spell book stored under %s", r.key)
		}
		return nil, errors.Wrapf(err, "failed to get spell book")
	}

	book, err := spellcard.DecodeBookJSON([]byte(result))
	if err != nil {
		slog.ErrorContext(ctx, "stored spell book is corrupt",
			"key", r.key,
			"error", err)
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to decode spell book")
	}

	return &GetOutput{Book: book}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Book == nil {
		return nil, errors.InvalidArgument(errBookNil)
	}

	data, err := json.Marshal(input.Book)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal spell book")
	}

	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to save spell book")
	}

	slog.DebugContext(ctx, "saved spell book",
		"key", r.key,
		"cards", len(input.Book.Spells))

	return &SaveOutput{}, nil
}

func (r *redisRepository) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "redis is unreachable")
	}
	return nil
}
