package inventory

import (
	"context"
	"log/slog"
	"strconv"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-shards/internal/entities"
	"github.com/KirkDiggler/rpg-shards/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-shards/internal/redis"
)

const (
	// Key pattern: inventory:party:{party_id}, hash of item ref -> count
	keyPrefix = "inventory:party:"

	maxTakeAttempts = 3

	errPartyIDEmpty = "party ID cannot be empty"
)

// Key returns the redis hash key for a party inventory
func Key(partyID string) string {
	return keyPrefix + partyID
}

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

// NewRedis creates a new Redis inventory repository
func NewRedis(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{client: cfg.Client}, nil
}

var _ Repository = (*redisRepository)(nil)

// Get returns every positive item count for a party. A party with no inventory
// yields an empty map.
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.PartyID == "" {
		return nil, errors.InvalidArgument(errPartyIDEmpty)
	}

	fields, err := r.client.HGetAll(ctx, Key(input.PartyID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get inventory for party %s", input.PartyID)
	}

	return &GetOutput{Counts: ParseCounts(fields)}, nil
}

// Give adds units of an item
func (r *redisRepository) Give(ctx context.Context, input GiveInput) (*GiveOutput, error) {
	if err := validateChange(input.PartyID, input.Item, input.Quantity); err != nil {
		return nil, err
	}

	count, err := r.client.HIncrBy(ctx, Key(input.PartyID), input.Item.String(), int64(input.Quantity)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to give %s to party %s", input.Item, input.PartyID)
	}

	return &GiveOutput{Count: int(count)}, nil
}

// Take removes units of an item. The count is checked and decremented under WATCH
// so concurrent takers cannot drive it negative.
func (r *redisRepository) Take(ctx context.Context, input TakeInput) (*TakeOutput, error) {
	if err := validateChange(input.PartyID, input.Item, input.Quantity); err != nil {
		return nil, err
	}

	key := Key(input.PartyID)
	field := input.Item.String()

	var remaining int
	txf := func(tx *redis.Tx) error {
		have, err := tx.HGet(ctx, key, field).Int()
		if err != nil && err != redis.Nil {
			return errors.Wrapf(err, "failed to read %s for party %s", field, input.PartyID)
		}
		if have < input.Quantity {
			return errors.InventoryMismatch(input.Item, input.Quantity, have)
		}

		remaining = have - input.Quantity
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if remaining == 0 {
				pipe.HDel(ctx, key, field)
			} else {
				pipe.HSet(ctx, key, field, remaining)
			}
			return nil
		})
		return err
	}

	for attempt := 1; attempt <= maxTakeAttempts; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return &TakeOutput{Count: remaining}, nil
		}
		if err != redis.TxFailedErr {
			var customErr *errors.Error
			if errors.As(err, &customErr) {
				return nil, err
			}
			return nil, errors.Wrapf(err, "failed to take %s from party %s", field, input.PartyID)
		}
		slog.DebugContext(ctx, "inventory take conflict, retrying",
			"party_id", input.PartyID,
			"item", field,
			"attempt", attempt)
	}

	return nil, errors.Abortedf("inventory for party %s changed concurrently", input.PartyID)
}

// ParseCounts converts a raw inventory hash into item counts, dropping
// unparseable fields and non-positive counts
func ParseCounts(fields map[string]string) map[entities.ItemRef]int {
	counts := make(map[entities.ItemRef]int, len(fields))
	for field, raw := range fields {
		item, err := entities.ParseItemRef(field)
		if err != nil || item.IsNone() {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			continue
		}
		counts[item] = n
	}
	return counts
}

func validateChange(partyID string, item entities.ItemRef, qty int) error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("PartyID", partyID, vb)
	if item.IsNone() {
		vb.RequiredField("Item")
	}
	errors.ValidateMin("Quantity", qty, 1, vb)
	return vb.Build()
}
