package protocol

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/kevinzhu12/monopoly-bench/internal/engine"
)

// Transcript record types.
const (
	MsgMatchStart = "match_start"
	MsgAction     = "action"
	MsgEvent      = "event"
	MsgResult     = "result"
)

// MatchStartMsg opens a transcript.
type MatchStartMsg struct {
	MatchID string   `json:"match_id"`
	Players []string `json:"players"`
	Agents  []string `json:"agents"`
	Seed    int64    `json:"seed"`
}

// ActionMsg records one submitted action and its outcome. Action holds the
// envelope form, so a player's records replay through DecodeAction.
type ActionMsg struct {
	Turn   int             `json:"turn"`
	Player string          `json:"player"`
	Action json.RawMessage `json:"action"`
	Phase  string          `json:"phase"` // phase after the action
	Error  string          `json:"error,omitempty"`
}

// NewActionMsg builds the record for action; applyErr is the engine's
// rejection, if any.
func NewActionMsg(turn int, player string, action engine.Action, phase engine.GamePhase, applyErr error) (ActionMsg, error) {
	data, err := EncodeAction(action)
	if err != nil {
		return ActionMsg{}, fmt.Errorf("protocol: encode %s: %w", action.Type, err)
	}
	msg := ActionMsg{Turn: turn, Player: player, Action: data, Phase: phase.String()}
	if applyErr != nil {
		msg.Error = applyErr.Error()
	}
	return msg, nil
}

// ResultMsg closes a transcript.
type ResultMsg struct {
	MatchID   string              `json:"match_id"`
	Turns     int                 `json:"turns"`
	Steps     int                 `json:"steps"`
	Winner    string              `json:"winner,omitempty"`
	Standings []engine.ScoreEntry `json:"standings"`
}

// Transcript writes envelopes as JSON lines. A nil *Transcript discards.
type Transcript struct {
	mu  sync.Mutex
	enc *json.Encoder
}

func NewTranscript(w io.Writer) *Transcript {
	return &Transcript{enc: json.NewEncoder(w)}
}

// Write appends one record.
func (t *Transcript) Write(typ string, payload interface{}) error {
	if t == nil {
		return nil
	}
	env, err := NewEnvelope(typ, payload)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.enc.Encode(env); err != nil {
		return fmt.Errorf("protocol: write %s: %w", typ, err)
	}
	return nil
}
