package input

import "github.com/gdamore/tcell/v2"

// KeyTable maps keys to intents
type KeyTable struct {
	// Special keys (Ctrl+*, Esc)
	SpecialKeys map[tcell.Key]IntentType

	// Plain rune bindings
	Runes map[rune]IntentType
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]IntentType{
			tcell.KeyEscape: IntentQuit,
			tcell.KeyCtrlC:  IntentQuit,
			tcell.KeyCtrlQ:  IntentQuit,
			tcell.KeyCtrlR:  IntentRestart,
		},
		Runes: map[rune]IntentType{
			'q': IntentQuit,
			'Q': IntentQuit,
			'r': IntentRestart,
			'R': IntentRestart,
		},
	}
}
