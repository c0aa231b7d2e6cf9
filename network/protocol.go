package network

import (
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/lixenwraith/planetfall/engine"
	"github.com/lixenwraith/planetfall/event"
)

// Wire format:
//   - Binary frames, server to client: msgpack engine.Snapshot
//   - Text frames, server to client: json EventFrame for engine notifications
//   - Text frames, client to server: json CommandFrame

// CommandFrame is a command sent by a client
type CommandFrame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// EventFrame is a notification pushed to clients
type EventFrame struct {
	Type    string `json:"type"`
	Frame   int64  `json:"frame"`
	Payload any    `json:"payload,omitempty"`
}

// EncodeSnapshot serializes a snapshot for a binary frame
func EncodeSnapshot(s *engine.Snapshot) ([]byte, error) {
	data, err := msgpack.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a binary frame
func DecodeSnapshot(data []byte) (*engine.Snapshot, error) {
	var s engine.Snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &s, nil
}

// DecodeCommandFrame parses a client text frame into an engine command
func DecodeCommandFrame(data []byte) (event.GameEvent, error) {
	var cf CommandFrame
	if err := json.Unmarshal(data, &cf); err != nil {
		return event.GameEvent{}, fmt.Errorf("decode command: %w", err)
	}
	return event.DecodeCommand(cf.Type, cf.Payload)
}

// EncodeEvent serializes a notification for a text frame
func EncodeEvent(ev event.GameEvent) ([]byte, error) {
	data, err := json.Marshal(EventFrame{
		Type:    event.GetEventName(ev.Type),
		Frame:   ev.Frame,
		Payload: ev.Payload,
	})
	if err != nil {
		return nil, fmt.Errorf("encode event: %w", err)
	}
	return data, nil
}
