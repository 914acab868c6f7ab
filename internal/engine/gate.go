package engine

import (
	"context"
	"sync"

	"github.com/KirkDiggler/rpg-shards/internal/errors"
)

// RulesGate publishes the link rules once they have been loaded. Readers either
// ask without blocking (Rules) or wait for readiness (Wait).
type RulesGate struct {
	once  sync.Once
	ready chan struct{}
	rules *Rules
}

// NewRulesGate returns a gate that is not ready yet
func NewRulesGate() *RulesGate {
	return &RulesGate{ready: make(chan struct{})}
}

// ReadyGate returns a gate that is already open with rules
func ReadyGate(rules *Rules) *RulesGate {
	g := NewRulesGate()
	g.Set(rules)
	return g
}

// Set opens the gate. Only the first call has any effect.
func (g *RulesGate) Set(rules *Rules) {
	g.once.Do(func() {
		if rules == nil {
			rules = NewRules(nil)
		}
		g.rules = rules
		close(g.ready)
	})
}

// Rules returns the loaded rules or an unavailable error
func (g *RulesGate) Rules() (*Rules, error) {
	select {
	case <-g.ready:
		return g.rules, nil
	default:
		return nil, errors.Unavailable("shard link rules are still loading")
	}
}

// Wait blocks until the rules are loaded or ctx is done
func (g *RulesGate) Wait(ctx context.Context) (*Rules, error) {
	select {
	case <-g.ready:
		return g.rules, nil
	case <-ctx.Done():
		return nil, errors.WrapWithCode(ctx.Err(), errors.CodeDeadlineExceeded, "waiting for shard link rules")
	}
}
