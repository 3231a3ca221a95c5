package protocol

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/kevinzhu12/monopoly-bench/internal/engine"
)

var ErrUnknownAction = errors.New("unknown action type")

// DecodeAction parses one action. Both the flat form
//
//	{"type":"build_house","tile_id":15}
//
// and the envelope form
//
//	{"type":"build_house","payload":{"tile_id":15}}
//
// are accepted.
func DecodeAction(data []byte) (engine.Action, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return engine.Action{}, fmt.Errorf("protocol: decode action: %w", err)
	}

	var action engine.Action
	body := data
	if len(env.Payload) > 0 && !bytes.Equal(env.Payload, []byte("null")) {
		body = env.Payload
	}
	if err := json.Unmarshal(body, &action); err != nil {
		return engine.Action{}, fmt.Errorf("protocol: decode %s: %w", env.Type, err)
	}
	action.Type = engine.ActionType(env.Type)
	if !action.Type.Valid() {
		return engine.Action{}, fmt.Errorf("protocol: %w %q", ErrUnknownAction, env.Type)
	}
	return action, nil
}

// EncodeAction writes the envelope form of an action.
func EncodeAction(a engine.Action) ([]byte, error) {
	payload := a
	payload.Type = ""
	env, err := NewEnvelope(string(a.Type), payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(env)
}

// ReadActions reads a JSON-lines action script. Blank lines and lines
// starting with # are skipped.
func ReadActions(r io.Reader) ([]engine.Action, error) {
	var actions []engine.Action
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := bytes.TrimSpace(sc.Bytes())
		if len(text) == 0 || text[0] == '#' {
			continue
		}
		a, err := DecodeAction(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		actions = append(actions, a)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("protocol: read actions: %w", err)
	}
	return actions, nil
}
