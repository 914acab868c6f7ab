// Package commands executes MSHARDS command lines against the shard service.
//
//	MSHARDS SLOTS ref n              add (or with n < 0 remove) slots
//	MSHARDS LOCK ref [slot]          lock one slot, or all when omitted or 0
//	MSHARDS UNLOCK ref [slot]        unlock one slot, or all when omitted or 0
//	MSHARDS CHANGE ref slot item     equip w<id>/a<id>, or clear with none
//	MSHARDS REMOVE ref item [unlock] remove by w<id>/a<id> or bare shard id
//	MSHARDS IMG ref n                select the orb image
//
// Slots are 1-based. ref is v<n> (character id read from variable n), a positive
// actor number, 0 or a negative roster position (0 and -1 are the leader), or a
// literal character id. Numeric arguments also accept v<n>.
package commands

import (
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-shards/internal/errors"
)

// Keyword prefixes every command line
const Keyword = "MSHARDS"

// Op is a command verb
type Op string

// Command verbs
const (
	OpSlots  Op = "SLOTS"
	OpLock   Op = "LOCK"
	OpUnlock Op = "UNLOCK"
	OpChange Op = "CHANGE"
	OpRemove Op = "REMOVE"
	OpImg    Op = "IMG"
	OpScene  Op = "SCENE"
	OpMenu   Op = "MENU"
)

// Command is a parsed command line
type Command struct {
	Op   Op
	Args []string
}

// Arg returns argument i or "" when absent
func (c *Command) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}

// Parse splits a command line. The keyword and verb are case-insensitive.
func Parse(line string) (*Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, errors.InvalidArgument("empty command")
	}
	if !strings.EqualFold(fields[0], Keyword) {
		return nil, errors.InvalidArgumentf("command must start with %s", Keyword)
	}
	if len(fields) < 2 {
		return nil, errors.InvalidArgumentf("%s requires an operation", Keyword)
	}

	return &Command{
		Op:   Op(strings.ToUpper(fields[1])),
		Args: fields[2:],
	}, nil
}

// Variables supplies game variable values for v<n> arguments
type Variables interface {
	Variable(id int) int
}

// MapVariables is an in-memory variable table; unset variables read as 0
type MapVariables map[int]int

// Variable returns the value of variable id
func (m MapVariables) Variable(id int) int {
	return m[id]
}

// ParseVariables reads "id=value" pairs
func ParseVariables(pairs []string) (MapVariables, error) {
	vars := make(MapVariables, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, errors.InvalidArgumentf("variable %q must be id=value", pair)
		}
		id, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil {
			return nil, errors.InvalidArgumentf("invalid variable id in %q", pair)
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, errors.InvalidArgumentf("invalid variable value in %q", pair)
		}
		vars[id] = n
	}
	return vars, nil
}

// variableID returns n for a v<n> token
func variableID(token string) (int, bool) {
	if len(token) < 2 || (token[0] != 'v' && token[0] != 'V') {
		return 0, false
	}
	id, err := strconv.Atoi(token[1:])
	if err != nil {
		return 0, false
	}
	return id, true
}
