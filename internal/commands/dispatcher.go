package commands

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-shards/internal/engine"
	"github.com/KirkDiggler/rpg-shards/internal/entities"
	"github.com/KirkDiggler/rpg-shards/internal/errors"
	"github.com/KirkDiggler/rpg-shards/internal/orchestrators/shards"
	"github.com/KirkDiggler/rpg-shards/internal/repositories/party"
)

// ActorPrefix builds character ids for positive actor numbers
const ActorPrefix = "actor_"

// Config holds the dependencies for the dispatcher
type Config struct {
	Service   shards.Service
	PartyRepo party.Repository
	// Variables backs v<n> arguments; nil reads every variable as 0
	Variables Variables
	// PartyID is the roster used for positional references and inventory
	PartyID string
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.Service == nil {
		vb.RequiredField("Service")
	}
	if c.PartyRepo == nil {
		vb.RequiredField("PartyRepo")
	}
	return vb.Build()
}

// Dispatcher executes parsed commands
type Dispatcher struct {
	svc       shards.Service
	partyRepo party.Repository
	vars      Variables
	partyID   string
}

// Result describes what one command did
type Result struct {
	Op          Op
	CharacterID string
	// Output is the service output of the operation
	Output any
}

// New creates a dispatcher
func New(cfg *Config) (*Dispatcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	vars := cfg.Variables
	if vars == nil {
		vars = MapVariables{}
	}

	return &Dispatcher{
		svc:       cfg.Service,
		partyRepo: cfg.PartyRepo,
		vars:      vars,
		partyID:   cfg.PartyID,
	}, nil
}

// ExecuteLine parses and executes one command line
func (d *Dispatcher) ExecuteLine(ctx context.Context, line string) (*Result, error) {
	cmd, err := Parse(line)
	if err != nil {
		return nil, err
	}
	return d.Execute(ctx, cmd)
}

// ExecuteScript runs every command in r, skipping blank lines and # comments.
// It stops at the first failing line.
func (d *Dispatcher) ExecuteScript(ctx context.Context, r io.Reader) ([]*Result, error) {
	var results []*Result

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		result, err := d.ExecuteLine(ctx, line)
		if err != nil {
			return results, errors.Wrapf(err, "line %d", lineNo).WithMeta("line", lineNo)
		}
		results = append(results, result)
	}
	if err := scanner.Err(); err != nil {
		return results, errors.Wrap(err, "failed to read command script")
	}

	return results, nil
}

// Execute runs a parsed command
func (d *Dispatcher) Execute(ctx context.Context, cmd *Command) (*Result, error) {
	if cmd == nil {
		return nil, errors.InvalidArgument("command is required")
	}

	switch cmd.Op {
	case OpScene, OpMenu:
		return nil, errors.Unimplementedf("%s %s addresses the menu and is not supported", Keyword, cmd.Op)
	case OpSlots, OpLock, OpUnlock, OpChange, OpRemove, OpImg:
	default:
		return nil, errors.InvalidArgumentf("unknown %s operation %q", Keyword, cmd.Op)
	}

	characterID, err := d.resolveCharacter(ctx, cmd.Arg(0))
	if err != nil {
		return nil, err
	}

	var output any
	switch cmd.Op {
	case OpSlots:
		output, err = d.slots(ctx, characterID, cmd)
	case OpLock, OpUnlock:
		output, err = d.lock(ctx, characterID, cmd)
	case OpChange:
		output, err = d.change(ctx, characterID, cmd)
	case OpRemove:
		output, err = d.remove(ctx, characterID, cmd)
	case OpImg:
		output, err = d.img(ctx, characterID, cmd)
	}
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "shard command executed",
		"op", string(cmd.Op),
		"character_id", characterID,
		"args", cmd.Args)

	return &Result{Op: cmd.Op, CharacterID: characterID, Output: output}, nil
}

func (d *Dispatcher) slots(ctx context.Context, characterID string, cmd *Command) (any, error) {
	n, err := d.value(cmd.Arg(1), "slot change")
	if err != nil {
		return nil, err
	}
	return d.svc.ResizeSlots(ctx, &shards.ResizeSlotsInput{
		CharacterID: characterID,
		PartyID:     d.partyID,
		Delta:       n,
	})
}

func (d *Dispatcher) lock(ctx context.Context, characterID string, cmd *Command) (any, error) {
	input := &shards.SetSlotLockInput{
		CharacterID: characterID,
		Locked:      cmd.Op == OpLock,
	}

	if raw := cmd.Arg(1); raw != "" {
		n, err := d.value(raw, "slot")
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, errors.InvalidArgumentf("slot must not be negative, got %d", n)
		}
		if n > 0 {
			slot := n - 1
			input.Slot = &slot
		}
	}

	return d.svc.SetSlotLock(ctx, input)
}

func (d *Dispatcher) change(ctx context.Context, characterID string, cmd *Command) (any, error) {
	n, err := d.value(cmd.Arg(1), "slot")
	if err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, errors.InvalidArgumentf("slot must be 1 or more, got %d", n)
	}

	item, err := entities.ParseItemRef(cmd.Arg(2))
	if err != nil {
		return nil, err
	}

	return d.svc.EquipShard(ctx, &shards.EquipShardInput{
		CharacterID: characterID,
		PartyID:     d.partyID,
		Slot:        n - 1,
		Item:        item,
	})
}

func (d *Dispatcher) remove(ctx context.Context, characterID string, cmd *Command) (any, error) {
	target, err := parseTarget(cmd.Arg(1))
	if err != nil {
		return nil, err
	}

	return d.svc.RemoveShard(ctx, &shards.RemoveShardInput{
		CharacterID: characterID,
		PartyID:     d.partyID,
		Target:      target,
		Unlock:      strings.EqualFold(cmd.Arg(2), "true"),
	})
}

func (d *Dispatcher) img(ctx context.Context, characterID string, cmd *Command) (any, error) {
	n, err := d.value(cmd.Arg(1), "image")
	if err != nil {
		return nil, err
	}
	return d.svc.SetOrbImage(ctx, &shards.SetOrbImageInput{CharacterID: characterID, ImageID: n})
}

// resolveCharacter maps a character reference to a character id
func (d *Dispatcher) resolveCharacter(ctx context.Context, ref string) (string, error) {
	if ref == "" {
		return "", errors.InvalidArgument("character reference is required")
	}

	if id, ok := variableID(ref); ok {
		n := d.vars.Variable(id)
		if n < 0 {
			n = -n
		}
		if n == 0 {
			return "", errors.InvalidArgumentf("variable %d holds no actor", id)
		}
		return ActorPrefix + strconv.Itoa(n), nil
	}

	n, err := strconv.Atoi(ref)
	if err != nil {
		return ref, nil
	}
	if n > 0 {
		return ActorPrefix + strconv.Itoa(n), nil
	}

	position := -n - 1
	if position < 0 {
		position = 0
	}

	if d.partyID == "" {
		return "", errors.InvalidArgument("a party is required for positional references")
	}
	out, err := d.partyRepo.Get(ctx, party.GetInput{ID: d.partyID})
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve party member")
	}
	member, ok := out.Party.MemberAt(position)
	if !ok {
		return "", errors.NotFoundf("party %s has no member at position %d", d.partyID, position+1)
	}
	return member, nil
}

// value reads an integer argument, which may be a v<n> variable
func (d *Dispatcher) value(raw, name string) (int, error) {
	if raw == "" {
		return 0, errors.InvalidArgumentf("%s is required", name)
	}
	if id, ok := variableID(raw); ok {
		return d.vars.Variable(id), nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.InvalidArgumentf("invalid %s %q", name, raw)
	}
	return n, nil
}

// parseTarget reads a w<id>/a<id> item or a bare shard id
func parseTarget(raw string) (engine.RemoveTarget, error) {
	if raw == "" {
		return engine.RemoveTarget{}, errors.InvalidArgument("shard to remove is required")
	}
	if n, err := strconv.Atoi(raw); err == nil {
		if n <= 0 {
			return engine.RemoveTarget{}, errors.InvalidArgumentf("shard id must be positive, got %d", n)
		}
		return engine.RemoveTarget{ShardID: n}, nil
	}

	item, err := entities.ParseItemRef(raw)
	if err != nil {
		return engine.RemoveTarget{}, err
	}
	if item.IsNone() {
		return engine.RemoveTarget{}, errors.InvalidArgument("shard to remove is required")
	}
	return engine.RemoveTarget{Item: item}, nil
}
