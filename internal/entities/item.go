package entities

import (
	"sort"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-shards/internal/errors"
)

// ItemKind is the catalog table an item lives in
type ItemKind string

// Item kinds
const (
	ItemKindNone   ItemKind = ""
	ItemKindWeapon ItemKind = "weapon"
	ItemKindArmor  ItemKind = "armor"
)

// ItemRef identifies a concrete catalog item: Weapon(id), Armor(id) or None.
// It encodes as its text form in JSON, both as a value and as a map key.
type ItemRef struct {
	Kind ItemKind
	ID   int
}

// Weapon references a weapon by catalog id
func Weapon(id int) ItemRef {
	return ItemRef{Kind: ItemKindWeapon, ID: id}
}

// Armor references an armor by catalog id
func Armor(id int) ItemRef {
	return ItemRef{Kind: ItemKindArmor, ID: id}
}

// None is the empty reference
func None() ItemRef {
	return ItemRef{}
}

// IsNone reports whether the reference points at nothing
func (r ItemRef) IsNone() bool {
	return r.Kind == ItemKindNone
}

// String returns the text form: w10, a4 or none
func (r ItemRef) String() string {
	switch r.Kind {
	case ItemKindWeapon:
		return "w" + strconv.Itoa(r.ID)
	case ItemKindArmor:
		return "a" + strconv.Itoa(r.ID)
	default:
		return "none"
	}
}

// ParseItemRef parses the text form produced by String. Parsing is case-insensitive
// and an empty string parses as None.
func ParseItemRef(s string) (ItemRef, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "none" {
		return None(), nil
	}

	var kind ItemKind
	switch s[0] {
	case 'w':
		kind = ItemKindWeapon
	case 'a':
		kind = ItemKindArmor
	default:
		return None(), errors.InvalidArgumentf("invalid item reference %q (expected w<id>, a<id> or none)", s)
	}

	id, err := strconv.Atoi(s[1:])
	if err != nil || id <= 0 {
		return None(), errors.InvalidArgumentf("invalid item id in reference %q", s)
	}

	return ItemRef{Kind: kind, ID: id}, nil
}

// MarshalText implements encoding.TextMarshaler
func (r ItemRef) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (r *ItemRef) UnmarshalText(text []byte) error {
	parsed, err := ParseItemRef(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// CatalogEntry is the read-only catalog view of a weapon or armor
type CatalogEntry struct {
	Item ItemRef `json:"item"`
	// ShardID groups items into shards; 0 means the item is not a shard
	ShardID   int         `json:"shard_id"`
	Name      string      `json:"name"`
	IconIndex int         `json:"icon_index"`
	Params    map[int]int `json:"params,omitempty"`
}

// IsShard reports whether the entry classifies as a shard
func (e *CatalogEntry) IsShard() bool {
	return e != nil && e.ShardID > 0
}

// SortItemRefs orders references by kind then id
func SortItemRefs(refs []ItemRef) {
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Kind != refs[j].Kind {
			return refs[i].Kind > refs[j].Kind
		}
		return refs[i].ID < refs[j].ID
	})
}
