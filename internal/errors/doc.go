// Package errors provides the structured error type shared by every layer of rpg-shards.
//
// Errors carry a Code, a user facing Message, an optional Cause and free-form Meta.
// Shard transactions additionally tag their failures with a Reason so callers can
// tell a locked slot from an out-of-range slot without string matching:
//
//	if err := eng.Equip(loadout, inv, slot, item, true); err != nil {
//	    if errors.IsSlotLocked(err) {
//	        // show the lock indicator
//	    }
//	    return errors.Wrap(err, "failed to equip shard")
//	}
//
// Repository layer:
//   - Return NotFound / InvalidArgument with the relevant ids in Meta
//   - Wrap redis failures with context
//
// Orchestrator layer:
//   - Validate inputs and return InvalidArgument
//   - Surface engine reasons unchanged
//
// Handler layer:
//   - Convert with ToGRPCError
package errors
