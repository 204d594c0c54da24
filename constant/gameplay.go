package constant

import "time"

// Board Dimensions
const (
	// GridRows is the default number of card rows
	GridRows = 4

	// GridCols is the default number of card columns
	GridCols = 3

	// PairCount is the number of distinct card faces; each appears (GridRows*GridCols)/PairCount times
	PairCount = 6

	// MaxActiveCells is the number of face-up cells a single turn may hold
	MaxActiveCells = 2
)

// Card Animation Timing
const (
	FlipUpDuration   = 200 * time.Millisecond
	FlipDownDuration = 200 * time.Millisecond
	FadeDuration     = 200 * time.Millisecond

	// FadeDelay is the pause between a completed flip-up and the start of a matched pair's fade
	FadeDelay = 200 * time.Millisecond

	// HideLead pulls the hide step ahead of the fade end so the pair never redraws at full size
	HideLead = 50 * time.Millisecond
)

// Turn & Session Timing
const (
	// ShowAllDuration is how long the whole board stays face-up after a reset
	ShowAllDuration = 3 * time.Second

	// MismatchDelay is how long a mismatched pair stays face-up before reverting
	MismatchDelay = 500 * time.Millisecond

	// WinDelay is the pause between clearing the last pair and the win notification
	WinDelay = 500 * time.Millisecond
)
