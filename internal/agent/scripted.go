package agent

import (
	"context"
	"fmt"
	"os"

	"github.com/kevinzhu12/monopoly-bench/internal/engine"
	"github.com/kevinzhu12/monopoly-bench/internal/protocol"
)

// Scripted replays a fixed list of actions, then hands over to a fallback
// agent. Without a fallback it fails with ErrScriptExhausted.
type Scripted struct {
	id       string
	actions  []engine.Action
	next     int
	fallback Agent
}

func NewScripted(playerID string, actions []engine.Action, fallback Agent) *Scripted {
	return &Scripted{id: playerID, actions: actions, fallback: fallback}
}

// LoadScripted reads a JSON-lines action script; the passive agent takes over at the end.
func LoadScripted(playerID, path string) (*Scripted, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()
	actions, err := protocol.ReadActions(f)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", path, err)
	}
	return NewScripted(playerID, actions, NewPassive(playerID)), nil
}

func (s *Scripted) Name() string { return "script" }

// Remaining is the number of scripted actions not yet played.
func (s *Scripted) Remaining() int { return len(s.actions) - s.next }

func (s *Scripted) Act(ctx context.Context, obs engine.Observation) (engine.Action, error) {
	if s.next < len(s.actions) {
		a := s.actions[s.next]
		s.next++
		return a, nil
	}
	if s.fallback == nil {
		return engine.Action{}, fmt.Errorf("%s: %w", s.id, ErrScriptExhausted)
	}
	return s.fallback.Act(ctx, obs)
}
