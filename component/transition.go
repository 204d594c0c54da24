package component

import "time"

// TransitionKind identifies the visual interpolation a cell is running
type TransitionKind uint8

const (
	TransitionFlipUp TransitionKind = iota
	TransitionFlipDown
	TransitionFade
)

func (k TransitionKind) String() string {
	switch k {
	case TransitionFlipUp:
		return "flip-up"
	case TransitionFlipDown:
		return "flip-down"
	case TransitionFade:
		return "fade"
	default:
		return "unknown"
	}
}

// Transition is a timed linear interpolation attached to a cell
// Elapsed only grows; the owning cell drops the transition once Elapsed >= Duration
type Transition struct {
	Kind     TransitionKind
	Elapsed  time.Duration
	Duration time.Duration
}

// Advance adds dt to the elapsed time and reports whether the transition has run its course
// Negative steps are ignored to keep Elapsed monotonic
func (t *Transition) Advance(dt time.Duration) bool {
	if dt > 0 {
		t.Elapsed += dt
	}
	return t.Done()
}

// Done reports whether the transition has reached its duration
func (t *Transition) Done() bool {
	return t.Elapsed >= t.Duration
}

// Progress returns Elapsed/Duration clamped to [0, 1]
func (t *Transition) Progress() float64 {
	if t.Duration <= 0 || t.Elapsed >= t.Duration {
		return 1
	}
	return float64(t.Elapsed) / float64(t.Duration)
}
