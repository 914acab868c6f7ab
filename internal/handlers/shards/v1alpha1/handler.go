package v1alpha1

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-shards/internal/errors"
	"github.com/KirkDiggler/rpg-shards/internal/orchestrators/shards"
)

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	ShardService shards.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.ShardService == nil {
		return errors.InvalidArgument("shard service is required")
	}
	return nil
}

// exchangeHint answers clients that still ask to bypass the inventory exchange
const exchangeHint = "persisted equips always exchange with the party inventory; use PreviewEquip to try an item"

// Handler implements the shard loadout gRPC service
type Handler struct {
	shardService shards.Service
}

var _ ShardServiceServer = (*Handler)(nil)

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{shardService: cfg.ShardService}, nil
}

// GetLoadout returns a character's loadout view
func (h *Handler) GetLoadout(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)
	characterID, err := r.requiredString("character_id")
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.shardService.GetLoadout(ctx, &shards.GetLoadoutInput{CharacterID: characterID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return h.respond(map[string]any{"loadout": loadoutValue(out.Loadout)})
}

// ResizeSlots grows or shrinks a character's slot count
func (h *Handler) ResizeSlots(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)
	input := &shards.ResizeSlotsInput{}

	var err error
	if input.CharacterID, err = r.requiredString("character_id"); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if input.PartyID, err = r.optionalString("party_id"); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if input.Delta, err = r.requiredInt("delta"); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.shardService.ResizeSlots(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	fields := mutationFields(out.MutationOutput)
	fields["applied"] = out.Applied
	fields["evicted"] = itemList(out.Evicted)
	return h.respond(fields)
}

// SetSlotLock locks or unlocks one slot, or every slot when slot is omitted
func (h *Handler) SetSlotLock(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)
	input := &shards.SetSlotLockInput{}

	var err error
	if input.CharacterID, err = r.requiredString("character_id"); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if input.Locked, err = r.optionalBool("locked"); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if r.has("slot") {
		slot, err := r.optionalInt("slot")
		if err != nil {
			return nil, errors.ToGRPCError(err)
		}
		input.Slot = &slot
	}

	out, err := h.shardService.SetSlotLock(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return h.respond(mutationFields(out.MutationOutput))
}

// EquipShard places a shard into a slot
func (h *Handler) EquipShard(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)
	input := &shards.EquipShardInput{}

	var err error
	if input.CharacterID, err = r.requiredString("character_id"); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if input.PartyID, err = r.optionalString("party_id"); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if input.Slot, err = r.requiredInt("slot"); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if input.Item, err = r.item("item"); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if err = r.unsupported("skip_inventory", exchangeHint); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.shardService.EquipShard(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	fields := mutationFields(out.MutationOutput)
	fields["replaced"] = out.Replaced.String()
	return h.respond(fields)
}

// UnequipShard clears a slot
func (h *Handler) UnequipShard(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)
	input := &shards.UnequipShardInput{}

	var err error
	if input.CharacterID, err = r.requiredString("character_id"); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if input.PartyID, err = r.optionalString("party_id"); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if input.Slot, err = r.requiredInt("slot"); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if err = r.unsupported("skip_inventory", exchangeHint); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.shardService.UnequipShard(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	fields := mutationFields(out.MutationOutput)
	fields["item"] = out.Item.String()
	return h.respond(fields)
}

// RemoveShard removes the first slot holding a shard, by item or shard id
func (h *Handler) RemoveShard(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)
	input := &shards.RemoveShardInput{}

	var err error
	if input.CharacterID, err = r.requiredString("character_id"); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if input.PartyID, err = r.optionalString("party_id"); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if input.Target, err = r.target(); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if input.Unlock, err = r.optionalBool("unlock"); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.shardService.RemoveShard(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	fields := mutationFields(out.MutationOutput)
	fields["result"] = removeResultValue(out.Result)
	return h.respond(fields)
}

// SetOrbImage selects the orb image shown for a character
func (h *Handler) SetOrbImage(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)
	input := &shards.SetOrbImageInput{}

	var err error
	if input.CharacterID, err = r.requiredString("character_id"); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if input.ImageID, err = r.requiredInt("image_id"); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.shardService.SetOrbImage(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return h.respond(mutationFields(out.MutationOutput))
}

// PreviewEquip simulates an equip without persisting it
func (h *Handler) PreviewEquip(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)
	input := &shards.PreviewEquipInput{}

	var err error
	if input.CharacterID, err = r.requiredString("character_id"); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if input.Slot, err = r.requiredInt("slot"); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if input.Item, err = r.item("item"); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.shardService.PreviewEquip(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return h.respond(map[string]any{
		"current":       loadoutValue(out.Current),
		"preview":       loadoutValue(out.Preview),
		"stats_delta":   statsValue(out.StatsDelta),
		"ability_delta": deltaValue(out.AbilityDelta),
	})
}

// LevelUp grants the class slot gains for a level range
func (h *Handler) LevelUp(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)
	input := &shards.LevelUpInput{}

	var err error
	if input.CharacterID, err = r.requiredString("character_id"); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if input.PartyID, err = r.optionalString("party_id"); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if input.ClassID, err = r.optionalInt("class_id"); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if input.FromLevel, err = r.requiredInt("from_level"); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if input.ToLevel, err = r.requiredInt("to_level"); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.shardService.LevelUp(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	fields := mutationFields(out.MutationOutput)
	fields["requested"] = out.Requested
	fields["applied"] = out.Applied
	fields["evicted"] = itemList(out.Evicted)
	fields["message"] = out.Message
	return h.respond(fields)
}

// HasShard reports whether a character has a shard equipped
func (h *Handler) HasShard(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)
	input := &shards.HasShardInput{}

	var err error
	if input.CharacterID, err = r.requiredString("character_id"); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if input.Target, err = r.target(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.shardService.HasShard(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return h.respond(map[string]any{"has": out.Has})
}

// PartyHasShard reports whether any party member has a shard equipped
func (h *Handler) PartyHasShard(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)
	input := &shards.PartyHasShardInput{}

	var err error
	if input.PartyID, err = r.optionalString("party_id"); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if input.Target, err = r.target(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.shardService.PartyHasShard(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return h.respond(map[string]any{
		"has":          out.Has,
		"character_id": out.CharacterID,
	})
}

// ListShardItems lists the shards a party holds
func (h *Handler) ListShardItems(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)
	partyID, err := r.optionalString("party_id")
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.shardService.ListShardItems(ctx, &shards.ListShardItemsInput{PartyID: partyID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	items := make([]any, 0, len(out.Items))
	for _, item := range out.Items {
		items = append(items, shardItemValue(item))
	}
	return h.respond(map[string]any{"items": items})
}

func (h *Handler) respond(fields map[string]any) (*structpb.Struct, error) {
	out, err := toStruct(fields)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return out, nil
}
