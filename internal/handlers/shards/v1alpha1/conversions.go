package v1alpha1

import (
	"math"
	"strconv"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-shards/internal/engine"
	"github.com/KirkDiggler/rpg-shards/internal/entities"
	"github.com/KirkDiggler/rpg-shards/internal/errors"
	"github.com/KirkDiggler/rpg-shards/internal/orchestrators/shards"
)

// request wraps a Struct payload with typed field readers
type request struct {
	fields map[string]*structpb.Value
}

func newRequest(req *structpb.Struct) request {
	return request{fields: req.GetFields()}
}

func (r request) has(name string) bool {
	v, ok := r.fields[name]
	if !ok {
		return false
	}
	_, isNull := v.GetKind().(*structpb.Value_NullValue)
	return !isNull
}

// unsupported fails when a retired field is still sent
func (r request) unsupported(name, hint string) error {
	if r.has(name) {
		return errors.InvalidArgumentf("%s is not supported, %s", name, hint)
	}
	return nil
}

func (r request) requiredString(name string) (string, error) {
	s, err := r.optionalString(name)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", errors.InvalidArgumentf("%s is required", name)
	}
	return s, nil
}

func (r request) optionalString(name string) (string, error) {
	if !r.has(name) {
		return "", nil
	}
	kind, ok := r.fields[name].GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", errors.InvalidArgumentf("%s must be a string", name)
	}
	return kind.StringValue, nil
}

func (r request) requiredInt(name string) (int, error) {
	if !r.has(name) {
		return 0, errors.InvalidArgumentf("%s is required", name)
	}
	return r.optionalInt(name)
}

func (r request) optionalInt(name string) (int, error) {
	if !r.has(name) {
		return 0, nil
	}
	kind, ok := r.fields[name].GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, errors.InvalidArgumentf("%s must be a number", name)
	}
	n := kind.NumberValue
	if n != math.Trunc(n) || n > math.MaxInt32 || n < math.MinInt32 {
		return 0, errors.InvalidArgumentf("%s must be an integer", name)
	}
	return int(n), nil
}

func (r request) optionalBool(name string) (bool, error) {
	if !r.has(name) {
		return false, nil
	}
	kind, ok := r.fields[name].GetKind().(*structpb.Value_BoolValue)
	if !ok {
		return false, errors.InvalidArgumentf("%s must be a bool", name)
	}
	return kind.BoolValue, nil
}

func (r request) item(name string) (entities.ItemRef, error) {
	raw, err := r.optionalString(name)
	if err != nil {
		return entities.None(), err
	}
	return entities.ParseItemRef(raw)
}

// target reads either "item" or "shard_id"
func (r request) target() (engine.RemoveTarget, error) {
	item, err := r.item("item")
	if err != nil {
		return engine.RemoveTarget{}, err
	}
	shardID, err := r.optionalInt("shard_id")
	if err != nil {
		return engine.RemoveTarget{}, err
	}

	switch {
	case !item.IsNone() && shardID != 0:
		return engine.RemoveTarget{}, errors.InvalidArgument("item and shard_id are mutually exclusive")
	case !item.IsNone():
		return engine.RemoveTarget{Item: item}, nil
	case shardID > 0:
		return engine.RemoveTarget{ShardID: shardID}, nil
	default:
		return engine.RemoveTarget{}, errors.InvalidArgument("item or shard_id is required")
	}
}

func intList(values []int) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}

func itemList(items []entities.ItemRef) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, item.String())
	}
	return out
}

// statsValue keys stat totals by the decimal stat id
func statsValue(stats map[int]int) map[string]any {
	out := make(map[string]any, len(stats))
	for stat, v := range stats {
		out[strconv.Itoa(stat)] = v
	}
	return out
}

func deltaValue(d engine.AbilityDelta) map[string]any {
	return map[string]any{
		"added":   intList(d.Added),
		"removed": intList(d.Removed),
	}
}

func loadoutValue(v *shards.LoadoutView) any {
	if v == nil {
		return nil
	}

	slots := make([]any, 0, len(v.Slots))
	for _, slot := range v.Slots {
		slots = append(slots, map[string]any{
			"index":      slot.Index,
			"item":       slot.Item.String(),
			"shard_id":   slot.ShardID,
			"name":       slot.Name,
			"icon_index": slot.IconIndex,
			"locked":     slot.Locked,
			"linked":     slot.Linked,
		})
	}

	return map[string]any{
		"character_id":   v.CharacterID,
		"slots":          slots,
		"slot_count":     v.SlotCount,
		"equipped_count": v.EquippedCount,
		"max_slots":      v.MaxSlots,
		"orb_image_id":   v.OrbImageID,
		"abilities":      intList(v.Abilities),
		"stats":          statsValue(v.Stats),
	}
}

func mutationFields(m shards.MutationOutput) map[string]any {
	return map[string]any{
		"loadout":       loadoutValue(m.Loadout),
		"ability_delta": deltaValue(m.AbilityDelta),
	}
}

func removeResultValue(r engine.RemoveResult) map[string]any {
	return map[string]any{
		"removed":  r.Removed,
		"slot":     r.Slot,
		"item":     r.Item.String(),
		"unlocked": r.Unlocked,
	}
}

func shardItemValue(item shards.ShardItem) map[string]any {
	out := map[string]any{"count": item.Count}
	if item.Entry != nil {
		out["item"] = item.Entry.Item.String()
		out["shard_id"] = item.Entry.ShardID
		out["name"] = item.Entry.Name
		out["icon_index"] = item.Entry.IconIndex
		out["params"] = statsValue(item.Entry.Params)
	}
	return out
}

func toStruct(fields map[string]any) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode response")
	}
	return out, nil
}
