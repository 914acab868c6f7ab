package shards

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-shards/internal/entities"
)

// publishAbilities announces a non-empty ability delta. Subscriber failures are
// logged; the loadout is already committed at this point.
func (o *orchestrator) publishAbilities(ctx context.Context, characterID string, m *mutation) {
	if m.delta.IsEmpty() {
		return
	}

	event := events.NewGameEvent(EventAbilitiesChanged, &entities.CharacterEntity{ID: characterID}, nil)
	event.Context().Set(EventKeyID, o.idGen.Generate())
	event.Context().Set(EventKeyOccurredAt, o.clock.Now())
	event.Context().Set(EventKeyAdded, m.delta.Added)
	event.Context().Set(EventKeyRemoved, m.delta.Removed)
	event.Context().Set(EventKeyAbilities, m.view.Abilities)

	if err := o.eventBus.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish ability change",
			"character_id", characterID,
			"error", err)
	}
}
