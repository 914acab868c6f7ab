package entities

// ClassLearning grants shard slots when a class reaches Level. Slots may be negative.
type ClassLearning struct {
	Level int `json:"level"`
	Slots int `json:"slots"`
}

// Class is a character class with its level-up slot grants
type Class struct {
	ID        int             `json:"id"`
	Learnings []ClassLearning `json:"learnings"`
}

// SlotGrants returns the slot deltas for each level in (from, to], in level
// order. Levels without a grant are skipped.
func (c *Class) SlotGrants(from, to int) []int {
	if c == nil {
		return nil
	}

	var grants []int
	for level := from + 1; level <= to; level++ {
		for _, learning := range c.Learnings {
			if learning.Level == level && learning.Slots != 0 {
				grants = append(grants, learning.Slots)
			}
		}
	}
	return grants
}

// Actor holds a character's catalog defaults
type Actor struct {
	ID      string `json:"id"`
	ClassID int    `json:"class_id"`
	// OrbImageID seeds the orb artwork of a new loadout
	OrbImageID int `json:"orb_image_id"`
}
