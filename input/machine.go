package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/flipcard/render"
)

// Machine parses tcell events into intents
// A tap fires on the press edge of the left button; held or dragged buttons do not repeat it
type Machine struct {
	keyTable *KeyTable
	held     bool
}

// NewMachine creates a new input machine
func NewMachine() *Machine {
	return &Machine{
		keyTable: DefaultKeyTable(),
	}
}

// Reset clears all pending state
func (m *Machine) Reset() {
	m.held = false
}

// Process parses a terminal event and returns an Intent
// vp converts mouse cells to world coordinates; returns nil for events with no action
func (m *Machine) Process(ev tcell.Event, vp render.Viewport) *Intent {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		return &Intent{Type: IntentResize}
	case *tcell.EventKey:
		return m.processKey(ev)
	case *tcell.EventMouse:
		return m.processMouse(ev, vp)
	case *tcell.EventError:
		return &Intent{Type: IntentQuit}
	}
	return nil
}

func (m *Machine) processKey(ev *tcell.EventKey) *Intent {
	if ev.Key() == tcell.KeyRune {
		if ev.Modifiers()&tcell.ModCtrl != 0 && (ev.Rune() == 'c' || ev.Rune() == 'q') {
			return &Intent{Type: IntentQuit}
		}
		if it, ok := m.keyTable.Runes[ev.Rune()]; ok {
			return &Intent{Type: it}
		}
		return nil
	}
	if it, ok := m.keyTable.SpecialKeys[ev.Key()]; ok {
		return &Intent{Type: it}
	}
	return nil
}

func (m *Machine) processMouse(ev *tcell.EventMouse, vp render.Viewport) *Intent {
	pressed := ev.Buttons()&tcell.Button1 != 0
	wasHeld := m.held
	m.held = pressed

	if !pressed || wasHeld {
		return nil
	}

	col, row := ev.Position()
	if row >= vp.Rows {
		// Status bar
		return nil
	}
	x, y := vp.ToWorld(col, row)
	return &Intent{Type: IntentTap, X: x, Y: y}
}
