package party

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-shards/internal/entities"
	"github.com/KirkDiggler/rpg-shards/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-shards/internal/redis"
)

const (
	// Key pattern: party:{party_id}
	keyPrefix = "party:"

	errPartyIDEmpty = "party ID cannot be empty"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil || c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
}

// NewRedis creates a new Redis party repository
func NewRedis(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{client: cfg.Client}, nil
}

var _ Repository = (*redisRepository)(nil)

// Get retrieves a party by ID
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errPartyIDEmpty)
	}

	data, err := r.client.Get(ctx, keyPrefix+input.ID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("party %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get party %s", input.ID)
	}

	var p entities.Party
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal party %s", input.ID)
	}

	return &GetOutput{Party: &p}, nil
}

// Save creates or replaces a party
func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Party == nil {
		return nil, errors.InvalidArgument("party cannot be nil")
	}
	if input.Party.ID == "" {
		return nil, errors.InvalidArgument(errPartyIDEmpty)
	}
	for i, member := range input.Party.Members {
		if member == "" {
			return nil, errors.InvalidArgumentf("party member %d has no character ID", i)
		}
	}

	data, err := json.Marshal(input.Party)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal party")
	}

	if err := r.client.Set(ctx, keyPrefix+input.Party.ID, data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to save party %s", input.Party.ID)
	}

	return &SaveOutput{}, nil
}

// Delete removes a party
func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errPartyIDEmpty)
	}

	n, err := r.client.Del(ctx, keyPrefix+input.ID).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete party %s", input.ID)
	}

	return &DeleteOutput{Existed: n > 0}, nil
}
