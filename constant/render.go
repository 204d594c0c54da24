package constant

import "time"

// World Layout
// Coordinates are in world units; adapters scale them to their own surface
const (
	WorldWidth  = 640.0
	WorldHeight = 1385.0

	// LayoutStartX is the left edge of the card grid
	LayoutStartX = 80.0

	// LayoutStartY is the top edge of the card grid
	LayoutStartY = 540.0

	// LayoutGap is the spacing between neighbouring cards
	LayoutGap = WorldWidth / 64

	// Card art is 329x343, height follows width
	CardAspectWidth  = 329.0
	CardAspectHeight = 343.0
)

// Terminal Presentation
const (
	// WinBannerDuration is how long the win banner stays in the status bar
	WinBannerDuration = 2 * time.Second

	// StatusBarHeight is the number of terminal rows reserved below the board
	StatusBarHeight = 1
)
