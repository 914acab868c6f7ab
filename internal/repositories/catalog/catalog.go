// Package catalog provides the read-only item catalog that classifies shards
package catalog

import (
	"encoding/json"
	"io"
	"os"

	"github.com/KirkDiggler/rpg-shards/internal/entities"
	"github.com/KirkDiggler/rpg-shards/internal/errors"
)

// Catalog is an immutable in-memory catalog of items, classes and actors
type Catalog struct {
	entries map[entities.ItemRef]*entities.CatalogEntry
	classes map[int]*entities.Class
	actors  map[string]*entities.Actor
}

// Document is the on-disk catalog format
type Document struct {
	Items   []*entities.CatalogEntry `json:"items"`
	Classes []*entities.Class        `json:"classes,omitempty"`
	Actors  []*entities.Actor        `json:"actors,omitempty"`
}

// New builds an item-only catalog. Entries with a None item are rejected.
func New(entries []*entities.CatalogEntry) (*Catalog, error) {
	return FromDocument(&Document{Items: entries})
}

// FromDocument builds a catalog, validating every table
func FromDocument(doc *Document) (*Catalog, error) {
	if doc == nil {
		return nil, errors.InvalidArgument("catalog document is required")
	}

	c := &Catalog{
		entries: make(map[entities.ItemRef]*entities.CatalogEntry, len(doc.Items)),
		classes: make(map[int]*entities.Class, len(doc.Classes)),
		actors:  make(map[string]*entities.Actor, len(doc.Actors)),
	}
	if err := c.addItems(doc.Items); err != nil {
		return nil, err
	}
	if err := c.addClasses(doc.Classes); err != nil {
		return nil, err
	}
	if err := c.addActors(doc.Actors); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) addItems(entries []*entities.CatalogEntry) error {
	for i, entry := range entries {
		if entry == nil || entry.Item.IsNone() {
			return errors.InvalidArgumentf("catalog entry %d has no item", i)
		}
		if entry.ShardID < 0 {
			return errors.InvalidArgumentf("catalog entry %s has negative shard id", entry.Item)
		}
		if _, exists := c.entries[entry.Item]; exists {
			return errors.InvalidArgumentf("duplicate catalog entry %s", entry.Item)
		}
		copied := *entry
		c.entries[entry.Item] = &copied
	}
	return nil
}

func (c *Catalog) addClasses(classes []*entities.Class) error {
	for i, class := range classes {
		if class == nil || class.ID <= 0 {
			return errors.InvalidArgumentf("catalog class %d needs a positive id", i)
		}
		if _, exists := c.classes[class.ID]; exists {
			return errors.InvalidArgumentf("duplicate catalog class %d", class.ID)
		}
		for _, learning := range class.Learnings {
			if learning.Level < 1 {
				return errors.InvalidArgumentf("class %d has a learning below level 1", class.ID)
			}
		}
		copied := *class
		copied.Learnings = append([]entities.ClassLearning(nil), class.Learnings...)
		c.classes[class.ID] = &copied
	}
	return nil
}

func (c *Catalog) addActors(actors []*entities.Actor) error {
	for i, actor := range actors {
		if actor == nil || actor.ID == "" {
			return errors.InvalidArgumentf("catalog actor %d has no id", i)
		}
		if _, exists := c.actors[actor.ID]; exists {
			return errors.InvalidArgumentf("duplicate catalog actor %s", actor.ID)
		}
		if actor.OrbImageID < 0 {
			return errors.InvalidArgumentf("actor %s has a negative orb image id", actor.ID)
		}
		if _, ok := c.classes[actor.ClassID]; actor.ClassID != 0 && !ok {
			return errors.InvalidArgumentf("actor %s names unknown class %d", actor.ID, actor.ClassID)
		}
		copied := *actor
		c.actors[actor.ID] = &copied
	}
	return nil
}

// Load decodes a JSON catalog document
func Load(r io.Reader) (*Catalog, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode catalog")
	}
	return FromDocument(&doc)
}

// LoadFile decodes a JSON catalog file
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from operator configuration
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open catalog %s", path)
	}
	defer func() {
		_ = f.Close() // nolint:errcheck // read-only file
	}()

	return Load(f)
}

// Lookup returns the entry for item
func (c *Catalog) Lookup(item entities.ItemRef) (*entities.CatalogEntry, bool) {
	entry, ok := c.entries[item]
	return entry, ok
}

// Class returns a class by id
func (c *Catalog) Class(id int) (*entities.Class, bool) {
	class, ok := c.classes[id]
	return class, ok
}

// Actor returns the catalog defaults for a character
func (c *Catalog) Actor(id string) (*entities.Actor, bool) {
	actor, ok := c.actors[id]
	return actor, ok
}

// Shards returns every shard entry, weapons first, ordered by id
func (c *Catalog) Shards() []*entities.CatalogEntry {
	refs := make([]entities.ItemRef, 0, len(c.entries))
	for ref, entry := range c.entries {
		if entry.IsShard() {
			refs = append(refs, ref)
		}
	}
	entities.SortItemRefs(refs)

	out := make([]*entities.CatalogEntry, len(refs))
	for i, ref := range refs {
		out[i] = c.entries[ref]
	}
	return out
}

// Len returns the number of entries
func (c *Catalog) Len() int {
	return len(c.entries)
}
