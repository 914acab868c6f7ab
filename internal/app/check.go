package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-shards/internal/entities"
	"github.com/KirkDiggler/rpg-shards/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-shards/internal/redis"
	"github.com/KirkDiggler/rpg-shards/internal/repositories/inventory"
	"github.com/KirkDiggler/rpg-shards/internal/repositories/loadout"
)

// Problem is a stored record the service cannot use as is
type Problem struct {
	Key    string
	Reason string
}

// CheckReport summarizes a data check
type CheckReport struct {
	Checked  int
	Problems []Problem
}

// CheckData scans stored loadouts and party inventories for undecodable
// loadouts, slot counts above maxSlots, locks outside the slot range and
// inventory fields that are not item refs with positive counts. In cluster
// mode only the node serving the scan is checked.
func CheckData(ctx context.Context, client redisclient.Client, maxSlots int) (*CheckReport, error) {
	if client == nil {
		return nil, errors.InvalidArgument("redis client is required")
	}

	loadoutRepo, err := loadout.NewRedis(&loadout.Config{Client: client})
	if err != nil {
		return nil, err
	}

	report := &CheckReport{}

	iter := client.Scan(ctx, 0, loadout.Key("*"), 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		report.Checked++

		characterID := strings.TrimPrefix(key, loadout.Key(""))
		out, err := loadoutRepo.Get(ctx, loadout.GetInput{CharacterID: characterID})
		if err != nil {
			if errors.IsNotFound(err) {
				continue
			}
			report.Problems = append(report.Problems, Problem{Key: key, Reason: err.Error()})
			continue
		}
		if reason := loadoutProblem(out.Loadout, maxSlots); reason != "" {
			report.Problems = append(report.Problems, Problem{Key: key, Reason: reason})
		}
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to scan loadouts")
	}

	iter = client.Scan(ctx, 0, inventory.Key("*"), 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		report.Checked++

		fields, err := client.HGetAll(ctx, key).Result()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", key)
		}
		if reason := inventoryProblem(fields); reason != "" {
			report.Problems = append(report.Problems, Problem{Key: key, Reason: reason})
		}
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to scan inventories")
	}

	return report, nil
}

// DeleteProblems removes every key named in the report and returns how many were deleted
func DeleteProblems(ctx context.Context, client redisclient.Client, report *CheckReport) (int, error) {
	deleted := 0
	for _, p := range report.Problems {
		n, err := client.Del(ctx, p.Key).Result()
		if err != nil {
			return deleted, errors.Wrapf(err, "failed to delete %s", p.Key)
		}
		deleted += int(n)
	}
	return deleted, nil
}

func loadoutProblem(l *entities.Loadout, maxSlots int) string {
	if l.SlotCount() > maxSlots {
		return fmt.Sprintf("slot count %d exceeds max slots %d", l.SlotCount(), maxSlots)
	}
	for i, slot := range l.Locked {
		if !l.InRange(slot) {
			return fmt.Sprintf("locked slot %d is outside the %d slots", slot, l.SlotCount())
		}
		if i > 0 && l.Locked[i-1] >= slot {
			return "locked slots are not a sorted set"
		}
	}
	return ""
}

func inventoryProblem(fields map[string]string) string {
	for field, raw := range fields {
		item, err := entities.ParseItemRef(field)
		if err != nil || item.IsNone() {
			return fmt.Sprintf("field %q is not an item", field)
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return fmt.Sprintf("field %q has invalid count %q", field, raw)
		}
	}
	return ""
}
