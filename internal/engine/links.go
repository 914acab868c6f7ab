package engine

import (
	"bufio"
	"io"
	"regexp"
	"sort"
	"strconv"

	"github.com/KirkDiggler/rpg-shards/internal/entities"
	"github.com/KirkDiggler/rpg-shards/internal/errors"
)

var linkSeparator = regexp.MustCompile(`[,\s]+`)

type shardPair struct {
	low, high int
}

func pairOf(a, b int) shardPair {
	if a > b {
		a, b = b, a
	}
	return shardPair{low: a, high: b}
}

// LinkRule grants Ability when shards A and B sit in adjacent slots
type LinkRule struct {
	A       int
	B       int
	Ability int
}

// Rules maps unordered shard id pairs to granted abilities. It is immutable once built.
type Rules struct {
	pairs map[shardPair]int
}

// NewRules builds a rule set. A later rule for the same pair replaces an earlier one.
func NewRules(rules []LinkRule) *Rules {
	r := &Rules{pairs: make(map[shardPair]int, len(rules))}
	for _, rule := range rules {
		if rule.Ability <= 0 || rule.A < 0 || rule.B < 0 {
			continue
		}
		r.pairs[pairOf(rule.A, rule.B)] = rule.Ability
	}
	return r
}

// ParseRules reads one "shardA,shardB,ability" triple per line. Commas and spaces
// both separate fields and anything after the third field is ignored, so
// "1,3,9 # Learn Fire" is valid. Malformed lines are skipped.
func ParseRules(r io.Reader) (*Rules, error) {
	var rules []LinkRule

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if rule, ok := parseRuleLine(scanner.Text()); ok {
			rules = append(rules, rule)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read link rules")
	}

	return NewRules(rules), nil
}

func parseRuleLine(line string) (LinkRule, bool) {
	fields := linkSeparator.Split(line, -1)
	if len(fields) > 0 && fields[0] == "" {
		fields = fields[1:]
	}
	if len(fields) < 3 {
		return LinkRule{}, false
	}

	var values [3]int
	for i := range values {
		n, err := strconv.Atoi(fields[i])
		if err != nil {
			return LinkRule{}, false
		}
		values[i] = n
	}

	return LinkRule{A: values[0], B: values[1], Ability: values[2]}, true
}

// Lookup returns the ability for a pair of shard ids in either order
func (r *Rules) Lookup(a, b int) (int, bool) {
	if r == nil {
		return 0, false
	}
	ability, ok := r.pairs[pairOf(a, b)]
	return ability, ok
}

// Len returns the number of distinct pairs
func (r *Rules) Len() int {
	if r == nil {
		return 0
	}
	return len(r.pairs)
}

// Resolve derives linked slots and granted abilities from the current slots.
// Slots form a ring: each occupied slot is paired with the next one, the last
// wrapping to slot 0, and an empty neighbor counts as shard 0. Loadouts with
// fewer than two slots have no pairs.
func (e *Engine) Resolve(l *entities.Loadout, rules *Rules) LinkResult {
	count := l.SlotCount()
	result := LinkResult{Abilities: []int{}, Linked: []int{}}
	if count <= 1 || rules.Len() == 0 {
		return result
	}

	ids := make([]int, count)
	for i, item := range l.Slots {
		ids[i] = e.ShardID(item)
	}

	granted := make(map[int]struct{})
	linked := make(map[int]struct{})
	for i := 0; i < count; i++ {
		if l.Slots[i].IsNone() {
			continue
		}
		next := (i + 1) % count

		ability, ok := rules.Lookup(ids[i], ids[next])
		if !ok {
			continue
		}

		linked[i] = struct{}{}
		linked[next] = struct{}{}
		if _, seen := granted[ability]; !seen {
			granted[ability] = struct{}{}
			result.Abilities = append(result.Abilities, ability)
		}
	}

	for slot := range linked {
		result.Linked = append(result.Linked, slot)
	}
	sort.Ints(result.Linked)

	return result
}

// DiffAbilities returns the abilities gained and lost between two ability lists
func DiffAbilities(before, after []int) AbilityDelta {
	delta := AbilityDelta{Added: []int{}, Removed: []int{}}

	had := make(map[int]struct{}, len(before))
	for _, a := range before {
		had[a] = struct{}{}
	}
	has := make(map[int]struct{}, len(after))
	for _, a := range after {
		has[a] = struct{}{}
		if _, ok := had[a]; !ok {
			delta.Added = append(delta.Added, a)
		}
	}
	for _, a := range before {
		if _, ok := has[a]; !ok {
			delta.Removed = append(delta.Removed, a)
		}
	}

	sort.Ints(delta.Added)
	sort.Ints(delta.Removed)
	return delta
}
