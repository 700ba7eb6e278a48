package carddraft

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/spell-cards/internal/entities/spellcard"
	"github.com/KirkDiggler/spell-cards/internal/errors"
	redisclient "github.com/KirkDiggler/spell-cards/internal/redis"
)

const (
	draftKeyPrefix = "draft:"
	// DefaultTTL is how long an untouched draft is kept
	DefaultTTL = 24 * time.Hour

	// Error messages
	errDraftNil     = "draft cannot be nil"
	errDraftIDEmpty = "draft ID cannot be empty"
	errCardNil      = "draft card cannot be nil"
	errDraftExpired = "draft has already expired"
)

type redisRepository struct {
	client redisclient.Client
}

// NewRedisRepository creates a new Redis-backed card draft repository
func NewRedisRepository(client redisclient.Client) Repository {
	return &redisRepository{
		client: client,
	}
}

func validateDraft(draft *spellcard.Draft) error {
	if draft == nil {
		return errors.InvalidArgument(errDraftNil)
	}
	if draft.ID == "" {
		return errors.InvalidArgument(errDraftIDEmpty)
	}
	if draft.Card == nil {
		return errors.InvalidArgument(errCardNil)
	}
	return nil
}

// ttlFor returns the remaining lifetime of a draft. Drafts without an expiry
// get DefaultTTL.
func ttlFor(draft *spellcard.Draft) (time.Duration, error) {
	if draft.ExpiresAt <= 0 {
		return DefaultTTL, nil
	}
	ttl := time.Until(time.Unix(draft.ExpiresAt, 0))
	if ttl <= 0 {
		return 0, errors.InvalidArgument(errDraftExpired)
	}
	return ttl, nil
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateDraft(input.Draft); err != nil {
		return nil, err
	}

	// Check expiration before any Redis operations
	ttl, err := ttlFor(input.Draft)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(input.Draft)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal draft")
	}

	created, err := r.client.SetNX(ctx, draftKeyPrefix+input.Draft.ID, data, ttl).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create draft")
	}
	if !created {
		return nil, errors.FailedPreconditionf("draft with ID %s already exists", input.Draft.ID)
	}

	return &CreateOutput{}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errDraftIDEmpty)
	}

	key := draftKeyPrefix + input.ID
	result, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("draft with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get draft")
	}

	var draft spellcard.Draft
	if err := json.Unmarshal([]byte(result), &draft); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal draft")
	}
	if draft.Card == nil {
		draft.Card = spellcard.New()
	}
	draft.Card.Normalize()

	return &GetOutput{Draft: &draft}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateDraft(input.Draft); err != nil {
		return nil, err
	}

	key := draftKeyPrefix + input.Draft.ID

	// Check if exists
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists == 0 {
		return nil, errors.NotFoundf("draft with ID %s not found", input.Draft.ID)
	}

	data, err := json.Marshal(input.Draft)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal draft")
	}

	ttl, err := ttlFor(input.Draft)
	if err != nil {
		return nil, err
	}

	// Update with TTL
	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to update draft")
	}

	return &UpdateOutput{}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errDraftIDEmpty)
	}

	deleted, err := r.client.Del(ctx, draftKeyPrefix+input.ID).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete draft")
	}
	if deleted == 0 {
		return nil, errors.NotFoundf("draft with ID %s not found", input.ID)
	}

	return &DeleteOutput{}, nil
}
