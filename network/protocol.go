package network

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lixenwraith/flipcard/engine"
	"github.com/lixenwraith/flipcard/event"
)

// Outbound message types
const (
	MsgState = "state"
	MsgWin   = "win"
	MsgError = "error"
)

var (
	ErrMalformed      = errors.New("malformed message")
	ErrUnknownMessage = errors.New("unknown message type")
	ErrBusy           = errors.New("input queue full")
)

// Inbound is a client request: {"type": "tap_cell", "payload": {"index": 3}}
type Inbound struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Outbound is a server message, exactly one body field is set per type
type Outbound struct {
	Type  string      `json:"type"`
	State *Snapshot   `json:"state,omitempty"`
	Win   *WinPayload `json:"win,omitempty"`
	Error string      `json:"error,omitempty"`
}

// WinPayload announces a cleared board
type WinPayload struct {
	Session    string `json:"session"`
	Generation uint64 `json:"generation"`
	ElapsedMs  int64  `json:"elapsed_ms"`
}

// Decode parses a client message into a game event
func Decode(data []byte) (event.GameEvent, error) {
	var in Inbound
	if err := json.Unmarshal(data, &in); err != nil {
		return event.GameEvent{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	et, ok := event.GetEventType(in.Type)
	if !ok {
		return event.GameEvent{}, fmt.Errorf("%w: %q", ErrUnknownMessage, in.Type)
	}

	payload := event.NewPayloadStruct(et)
	if payload != nil {
		if len(in.Payload) == 0 {
			return event.GameEvent{}, fmt.Errorf("%w: %s requires a payload", ErrMalformed, in.Type)
		}
		if err := json.Unmarshal(in.Payload, payload); err != nil {
			return event.GameEvent{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}

	return event.GameEvent{Type: et, Payload: payload}, nil
}

func encodeWin(ev engine.WinEvent) ([]byte, error) {
	return json.Marshal(Outbound{
		Type: MsgWin,
		Win: &WinPayload{
			Session:    ev.Session,
			Generation: ev.Generation,
			ElapsedMs:  ev.Elapsed.Milliseconds(),
		},
	})
}

func encodeError(err error) []byte {
	data, _ := json.Marshal(Outbound{Type: MsgError, Error: err.Error()})
	return data
}
