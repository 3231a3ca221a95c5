package agent

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/kevinzhu12/monopoly-bench/internal/engine"
)

var (
	ErrUnknownAgent    = errors.New("unknown agent")
	ErrScriptExhausted = errors.New("action script exhausted")
)

// Agent chooses actions for one seat. Act may block; the match does not
// advance until it returns.
type Agent interface {
	Name() string
	Act(ctx context.Context, obs engine.Observation) (engine.Action, error)
}

// Factory builds an agent for a seat. Arg is whatever followed the colon
// in the agent spec ("lua:policy.lua" gives "policy.lua").
type Factory func(playerID string, seed int64, arg string) (Agent, error)

// Registry maps agent names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry knows every built-in agent.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("random", func(id string, seed int64, _ string) (Agent, error) { return NewRandom(id, seed), nil })
	r.Register("greedy", func(id string, _ int64, _ string) (Agent, error) { return NewGreedy(id), nil })
	r.Register("passive", func(id string, _ int64, _ string) (Agent, error) { return NewPassive(id), nil })
	r.Register("script", func(id string, _ int64, path string) (Agent, error) { return LoadScripted(id, path) })
	r.Register("lua", func(id string, _ int64, path string) (Agent, error) { return LoadLua(id, path) })
	return r
}

func (r *Registry) Register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
}

// New builds an agent from a spec of the form "name" or "name:arg".
func (r *Registry) New(spec, playerID string, seed int64) (Agent, error) {
	name, arg, _ := strings.Cut(strings.TrimSpace(spec), ":")
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("agent: %w %q", ErrUnknownAgent, name)
	}
	a, err := f(playerID, seed, arg)
	if err != nil {
		return nil, fmt.Errorf("agent: %s for %s: %w", name, playerID, err)
	}
	return a, nil
}

// Names lists registered agent names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for n := range r.factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
