package render

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/flipcard/constant"
	"github.com/lixenwraith/flipcard/engine"
	"github.com/lixenwraith/flipcard/status"
)

// TerminalRenderer draws the board and a status bar onto a tcell screen
// Render and Won run on the game loop
type TerminalRenderer struct {
	screen tcell.Screen
	atlas  *Atlas

	bannerPending bool
	bannerUntil   time.Duration

	// Cached metric pointers
	statRemaining  *atomic.Int64
	statTaps       *atomic.Int64
	statMatches    *atomic.Int64
	statMismatches *atomic.Int64
	statWins       *atomic.Int64
	statReady      *atomic.Bool
}

// NewTerminalRenderer creates a renderer over an initialized screen
func NewTerminalRenderer(screen tcell.Screen, atlas *Atlas, reg *status.Registry) *TerminalRenderer {
	return &TerminalRenderer{
		screen:         screen,
		atlas:          atlas,
		statRemaining:  reg.Ints.Get(status.KeyRemaining),
		statTaps:       reg.Ints.Get(status.KeyTaps),
		statMatches:    reg.Ints.Get(status.KeyMatches),
		statMismatches: reg.Ints.Get(status.KeyMismatches),
		statWins:       reg.Ints.Get(status.KeyWins),
		statReady:      reg.Bools.Get(status.KeyReady),
	}
}

// Viewport returns the current board area of the screen
func (r *TerminalRenderer) Viewport(l engine.Layout) Viewport {
	w, h := r.screen.Size()
	return NewViewport(l, w, h-constant.StatusBarHeight)
}

// Won queues the win banner for the next frame
func (r *TerminalRenderer) Won(engine.WinEvent) {
	r.bannerPending = true
}

// Render draws one frame
func (r *TerminalRenderer) Render(g *engine.Game) {
	if r.bannerPending {
		r.bannerPending = false
		r.bannerUntil = g.Scheduler.Now() + constant.WinBannerDuration
	}

	r.screen.Fill(' ', r.atlas.Background)
	vp := r.Viewport(g.Layout)

	for i, c := range g.Board.Cells() {
		proj, visible := Project(c)
		if !visible {
			continue
		}
		glyph, err := r.atlas.Region(proj.Region)
		if err != nil {
			// Atlas coverage is checked at startup
			glyph = r.atlas.Back()
		}
		r.drawCard(vp, g.Layout, i, proj, glyph)
	}

	r.drawStatusBar(g.Scheduler.Now() < r.bannerUntil)
	r.screen.Show()
}

// drawCard fills the card's scaled box around its center
func (r *TerminalRenderer) drawCard(vp Viewport, l engine.Layout, index int, proj Projection, glyph Glyph) {
	if proj.ScaleX <= 0 || proj.ScaleY <= 0 {
		return
	}

	cx, cy := l.Center(index)
	hw := l.CellWidth * proj.ScaleX / 2
	hh := l.CellHeight * proj.ScaleY / 2

	x0, y0 := vp.ToScreen(cx-hw, cy-hh)
	x1, y1 := vp.ToScreen(cx+hw, cy+hh)
	// Keep a sliver visible while the card is edge-on
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}

	fill := ' '
	if proj.Region.IsBack() {
		fill = glyph.Rune
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			r.screen.SetContent(x, y, fill, nil, glyph.Style)
		}
	}
	if !proj.Region.IsBack() {
		r.screen.SetContent((x0+x1-1)/2, (y0+y1-1)/2, glyph.Rune, nil, glyph.Style)
	}
}

func (r *TerminalRenderer) drawStatusBar(banner bool) {
	w, h := r.screen.Size()
	y := h - constant.StatusBarHeight
	if y < 0 {
		return
	}

	style := tcell.StyleDefault.Reverse(true)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}

	var text string
	switch {
	case banner:
		text = fmt.Sprintf(" CLEARED! wins %d ", r.statWins.Load())
		style = style.Bold(true)
	case !r.statReady.Load():
		text = " memorize the cards... "
	default:
		text = fmt.Sprintf(" remaining %d  taps %d  matches %d  misses %d  wins %d ",
			r.statRemaining.Load(), r.statTaps.Load(), r.statMatches.Load(),
			r.statMismatches.Load(), r.statWins.Load())
	}
	drawText(r.screen, 0, y, text, style)

	help := " [r] restart  [q] quit "
	if x := w - len(help); x > len([]rune(text)) {
		drawText(r.screen, x, y, help, tcell.StyleDefault.Reverse(true))
	}
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, ch := range text {
		screen.SetContent(x, y, ch, nil, style)
		x++
	}
}
