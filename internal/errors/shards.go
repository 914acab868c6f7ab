package errors

import "fmt"

// Reason distinguishes shard transaction failures that share a Code
type Reason string

// Shard transaction reasons
const (
	ReasonSlotOutOfRange    Reason = "slot_out_of_range"
	ReasonSlotLocked        Reason = "slot_locked"
	ReasonInventoryMismatch Reason = "inventory_mismatch"
)

// SlotOutOfRange reports a slot index outside [0, slotCount)
func SlotOutOfRange(slot, slotCount int) *Error {
	return OutOfRangef("slot %d is out of range (slot count %d)", slot, slotCount).
		WithReason(ReasonSlotOutOfRange).
		WithMeta("slot", slot).
		WithMeta("slot_count", slotCount)
}

// SlotLocked reports a mutation attempted on a locked slot
func SlotLocked(slot int) *Error {
	return FailedPreconditionf("slot %d is locked", slot).
		WithReason(ReasonSlotLocked).
		WithMeta("slot", slot)
}

// InventoryMismatch reports that an item is not available in the required quantity
func InventoryMismatch(item fmt.Stringer, want, have int) *Error {
	return FailedPreconditionf("need %d of %s, have %d", want, item, have).
		WithReason(ReasonInventoryMismatch).
		WithMeta("item", item.String()).
		WithMeta("want", want).
		WithMeta("have", have)
}

// GetReason extracts the shard reason from an error chain
func GetReason(err error) Reason {
	var customErr *Error
	for err != nil {
		if !As(err, &customErr) {
			return ""
		}
		if customErr.Reason != "" {
			return customErr.Reason
		}
		err = customErr.Cause
	}
	return ""
}

// IsSlotOutOfRange checks if an error is a slot out of range error
func IsSlotOutOfRange(err error) bool {
	return GetReason(err) == ReasonSlotOutOfRange
}

// IsSlotLocked checks if an error is a locked slot error
func IsSlotLocked(err error) bool {
	return GetReason(err) == ReasonSlotLocked
}

// IsInventoryMismatch checks if an error is an inventory mismatch error
func IsInventoryMismatch(err error) bool {
	return GetReason(err) == ReasonInventoryMismatch
}
