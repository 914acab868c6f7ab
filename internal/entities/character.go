package entities

import "github.com/KirkDiggler/rpg-toolkit/core"

// EntityTypeCharacter is the core.Entity type for shard owners
const EntityTypeCharacter = "character"

// CharacterEntity adapts a character id to the rpg-toolkit core.Entity interface
type CharacterEntity struct {
	ID string
}

// GetID returns the character id
func (c *CharacterEntity) GetID() string {
	return c.ID
}

// GetType returns the entity type
func (c *CharacterEntity) GetType() string {
	return EntityTypeCharacter
}

var _ core.Entity = (*CharacterEntity)(nil)
