package event

// EventType represents the type of game event
type EventType int

const (
	// EventNone is the zero value, never pushed
	EventNone EventType = iota

	// EventTap reports a pointer press in world coordinates
	// Trigger: terminal input adapter, remote client
	// Consumer: TurnSystem | Payload: *TapPayload
	EventTap

	// EventTapCell reports a press already resolved to a cell index
	// Trigger: remote client
	// Consumer: TurnSystem | Payload: *TapCellPayload
	EventTapCell

	// EventGameReset requests a fresh board
	// Trigger: restart key, remote client
	// Consumer: Game | Payload: nil
	EventGameReset
)

// GameEvent is a single queued input or request
type GameEvent struct {
	Type    EventType
	Payload any
}
