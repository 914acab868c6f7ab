package loadout

import (
	"bytes"
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-shards/internal/entities"
	"github.com/KirkDiggler/rpg-shards/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-shards/internal/redis"
	"github.com/KirkDiggler/rpg-shards/internal/repositories/inventory"
)

const (
	// Key pattern: loadout:character:{character_id}
	keyPrefix = "loadout:character:"

	errCharacterIDEmpty = "character ID cannot be empty"
)

// Key returns the redis key for a character's loadout
func Key(characterID string) string {
	return keyPrefix + characterID
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

// NewRedis creates a new Redis loadout repository
func NewRedis(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{client: cfg.Client}, nil
}

var _ Repository = (*redisRepository)(nil)

// Get retrieves a character's loadout
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	data, err := r.client.Get(ctx, Key(input.CharacterID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("loadout for character %s not found", input.CharacterID)
		}
		return nil, errors.Wrapf(err, "failed to get loadout for character %s", input.CharacterID)
	}

	l, err := decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal loadout for character %s", input.CharacterID)
	}

	return &GetOutput{Loadout: l}, nil
}

// Commit writes the loadout and applies the inventory delta in one MULTI block.
// Both keys are watched: the stored loadout must still equal Expected and no
// item count may drop below zero, otherwise nothing is written.
func (r *redisRepository) Commit(ctx context.Context, input CommitInput) (*CommitOutput, error) {
	if err := validateCommit(input); err != nil {
		return nil, err
	}

	loadoutKey := Key(input.Loadout.CharacterID)
	inventoryKey := inventory.Key(input.PartyID)
	watched := []string{loadoutKey}
	if input.PartyID != "" {
		watched = append(watched, inventoryKey)
	}

	data, err := json.Marshal(input.Loadout)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal loadout")
	}

	var expected []byte
	if input.Expected != nil {
		expected, err = json.Marshal(input.Expected.Clone())
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal expected loadout")
		}
	}

	counts := make(map[entities.ItemRef]int, len(input.InventoryDelta))
	txf := func(tx *redis.Tx) error {
		if err := checkExpected(ctx, tx, loadoutKey, expected); err != nil {
			return err
		}

		for item, delta := range input.InventoryDelta {
			have, err := tx.HGet(ctx, inventoryKey, item.String()).Int()
			if err != nil && err != redis.Nil {
				return errors.Wrapf(err, "failed to read %s", item)
			}
			if have+delta < 0 {
				return errors.InventoryMismatch(item, -delta, have)
			}
			counts[item] = have + delta
		}

		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, loadoutKey, data, 0)
			for item, n := range counts {
				if n == 0 {
					pipe.HDel(ctx, inventoryKey, item.String())
					continue
				}
				pipe.HSet(ctx, inventoryKey, item.String(), n)
			}
			return nil
		})
		return err
	}

	if err := r.client.Watch(ctx, txf, watched...); err != nil {
		if err == redis.TxFailedErr {
			return nil, errors.Abortedf("loadout for character %s changed concurrently", input.Loadout.CharacterID)
		}
		var customErr *errors.Error
		if errors.As(err, &customErr) {
			return nil, err
		}
		return nil, errors.Wrapf(err, "failed to commit loadout for character %s", input.Loadout.CharacterID)
	}

	return &CommitOutput{Counts: counts}, nil
}

// Delete removes a character's loadout
func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	n, err := r.client.Del(ctx, Key(input.CharacterID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete loadout for character %s", input.CharacterID)
	}

	return &DeleteOutput{Existed: n > 0}, nil
}

func checkExpected(ctx context.Context, tx *redis.Tx, key string, expected []byte) error {
	current, err := tx.Get(ctx, key).Bytes()
	switch {
	case err == redis.Nil:
		if expected != nil {
			return errors.Aborted("loadout was removed concurrently")
		}
		return nil
	case err != nil:
		return errors.Wrap(err, "failed to read current loadout")
	}

	if expected == nil {
		return errors.Aborted("loadout was created concurrently")
	}

	// compare decoded forms so formatting differences between writers do not count
	stored, err := decode(current)
	if err != nil {
		return errors.Wrap(err, "failed to unmarshal current loadout")
	}
	normalized, err := json.Marshal(stored)
	if err != nil {
		return errors.Wrap(err, "failed to marshal current loadout")
	}
	if !bytes.Equal(normalized, expected) {
		return errors.Aborted("loadout changed concurrently")
	}
	return nil
}

func decode(data []byte) (*entities.Loadout, error) {
	var l entities.Loadout
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, err
	}
	if l.Slots == nil {
		l.Slots = []entities.ItemRef{}
	}
	if len(l.Locked) == 0 {
		l.Locked = nil
	}
	return &l, nil
}

func validateCommit(input CommitInput) error {
	if input.Loadout == nil {
		return errors.InvalidArgument("loadout cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("Loadout.CharacterID", input.Loadout.CharacterID, vb)
	if input.Expected != nil && input.Expected.CharacterID != input.Loadout.CharacterID {
		vb.Field("Expected.CharacterID", "must match Loadout.CharacterID")
	}
	if len(input.InventoryDelta) > 0 {
		errors.ValidateRequired("PartyID", input.PartyID, vb)
	}
	for item := range input.InventoryDelta {
		if item.IsNone() {
			vb.Field("InventoryDelta", "cannot contain the empty item")
		}
	}
	return vb.Build()
}
