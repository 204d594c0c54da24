package input

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit    // q, Esc, Ctrl+C, closed screen
	IntentRestart // r
	IntentResize  // Terminal resize event

	// Board
	IntentTap // Left-click on the board
)

// Intent is a parsed input action
// X and Y carry the world-space point of a tap
type Intent struct {
	Type IntentType
	X, Y float64
}
