package match

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kevinzhu12/monopoly-bench/internal/agent"
	"github.com/kevinzhu12/monopoly-bench/internal/board"
	"github.com/kevinzhu12/monopoly-bench/internal/engine"
	"github.com/kevinzhu12/monopoly-bench/internal/logger"
	"github.com/kevinzhu12/monopoly-bench/internal/protocol"
)

// DefaultMaxSteps caps the actions one match may take.
const DefaultMaxSteps = 20000

var (
	ErrStepLimit = errors.New("step limit reached")
	ErrNoAgent   = errors.New("no agent for player")
)

// Result summarizes a finished (or cut off) match.
type Result struct {
	MatchID   string              `json:"match_id"`
	Turns     int                 `json:"turns"`
	Steps     int                 `json:"steps"`
	Rejected  int                 `json:"rejected"`
	Winner    string              `json:"winner,omitempty"`
	Standings []engine.ScoreEntry `json:"standings"`
}

// Runner drives one match: it asks the acting player's agent for an action,
// applies it, and repeats until the game is over.
type Runner struct {
	MatchID    string
	Seed       int64
	Game       *engine.Game
	Agents     map[string]agent.Agent
	Log        logrus.FieldLogger
	MaxSteps   int
	Transcript *protocol.Transcript // nil = none
}

// New starts the roster and creates the game for it.
func New(r *Roster, defs []board.Definition, cfg engine.Config) (*Runner, error) {
	if err := r.Start(); err != nil {
		return nil, err
	}
	g, err := engine.NewGame(r.IDs(), defs, cfg)
	if err != nil {
		return nil, fmt.Errorf("match: %w", err)
	}
	var log logrus.FieldLogger = cfg.Log
	if log == nil {
		log = logger.Discard()
	}
	return &Runner{
		MatchID:  uuid.NewString(),
		Seed:     cfg.Seed,
		Game:     g,
		Agents:   r.Agents(),
		Log:      log,
		MaxSteps: DefaultMaxSteps,
	}, nil
}

// Run plays the match to the end. It stops early, with the partial result,
// when the step limit is hit, the context is done, or an agent fails.
// Agents that implement io.Closer are closed when Run returns.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	g := r.Game
	log := r.Log.WithField("match", r.MatchID)
	maxSteps := r.MaxSteps
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}

	names := make([]string, 0, len(g.Order))
	for _, id := range g.Order {
		if a, ok := r.Agents[id]; ok {
			names = append(names, a.Name())
		}
	}
	r.write(log, protocol.MsgMatchStart, protocol.MatchStartMsg{
		MatchID: r.MatchID,
		Players: append([]string(nil), g.Order...),
		Agents:  names,
		Seed:    r.Seed,
	})
	log.WithFields(logrus.Fields{"players": g.Order, "agents": names}).Info("match started")

	res := Result{MatchID: r.MatchID}
	lastTurn, lastPlayer := -1, ""
	for !g.IsOver() {
		if res.Steps >= maxSteps {
			return r.finish(log, res), fmt.Errorf("match %s: %w (%d)", r.MatchID, ErrStepLimit, maxSteps)
		}
		if err := ctx.Err(); err != nil {
			return r.finish(log, res), err
		}

		if cp := g.CurrentPlayer(); cp != nil && (g.Turn != lastTurn || cp.ID != lastPlayer) {
			lastTurn, lastPlayer = g.Turn, cp.ID
			log.WithFields(logrus.Fields{"turn": g.Turn, "player": cp.ID, "cash": cp.Cash}).Debug("turn started")
		}

		id := g.ActingPlayer()
		a, ok := r.Agents[id]
		if !ok {
			return r.finish(log, res), fmt.Errorf("match %s: %w %s", r.MatchID, ErrNoAgent, id)
		}
		action, err := a.Act(ctx, g.ObservationFor(id))
		if err != nil {
			return r.finish(log, res), fmt.Errorf("match %s: agent %s (%s): %w", r.MatchID, id, a.Name(), err)
		}

		seen := g.Recorded
		turn := g.Turn
		phase, err := g.Apply(id, action)
		res.Steps++
		if err != nil {
			res.Rejected++
		}
		if msg, encErr := protocol.NewActionMsg(turn, id, action, phase, err); encErr != nil {
			log.WithError(encErr).Warn("transcript action not recorded")
		} else {
			r.write(log, protocol.MsgAction, msg)
		}
		for _, e := range g.EventsSince(seen) {
			r.write(log, protocol.MsgEvent, e)
		}
	}
	return r.finish(log, res), nil
}

func (r *Runner) finish(log logrus.FieldLogger, res Result) Result {
	for id, a := range r.Agents {
		if c, ok := a.(io.Closer); ok {
			if err := c.Close(); err != nil {
				log.WithError(err).WithField("player", id).Warn("agent close failed")
			}
		}
	}
	res.Turns = r.Game.Turn
	res.Winner = r.Game.Winner()
	res.Standings = r.Game.Standings()
	r.write(log, protocol.MsgResult, protocol.ResultMsg{
		MatchID:   res.MatchID,
		Turns:     res.Turns,
		Steps:     res.Steps,
		Winner:    res.Winner,
		Standings: res.Standings,
	})
	log.WithFields(logrus.Fields{
		"turns":    res.Turns,
		"steps":    res.Steps,
		"rejected": res.Rejected,
		"winner":   res.Winner,
	}).Info("match finished")
	return res
}

// write appends to the transcript; a failing transcript is logged, not fatal.
func (r *Runner) write(log logrus.FieldLogger, typ string, payload interface{}) {
	if err := r.Transcript.Write(typ, payload); err != nil {
		log.WithError(err).Warn("transcript write failed")
	}
}
