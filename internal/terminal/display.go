// Package terminal renders the game with tcell and turns terminal input into clicks.
package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/gkobilansky/reaction-goat/internal/game"
)

const hint = "space / enter / click to play   q to quit"

// Palette maps indicator states to background colours.
type Palette struct {
	Neutral tcell.Color
	Go      tcell.Color
}

func DefaultPalette() Palette {
	return Palette{
		Neutral: tcell.GetColor("#202124"),
		Go:      tcell.GetColor("#D4AF37"),
	}
}

// PaletteFromNames parses colour names or #rrggbb values.
func PaletteFromNames(neutral, goColor string) Palette {
	return Palette{
		Neutral: tcell.GetColor(neutral),
		Go:      tcell.GetColor(goColor),
	}
}

// Cue is notified when the indicator switches to go.
type Cue interface {
	Play()
}

// Display implements game.Display on a tcell screen. It must only be used
// from the event loop goroutine.
type Display struct {
	screen  tcell.Screen
	palette Palette
	cue     Cue

	instruction string
	result      string
	best        string
	indicator   game.Indicator
}

var _ game.Display = (*Display)(nil)

func NewDisplay(screen tcell.Screen, palette Palette, cue Cue) *Display {
	return &Display{screen: screen, palette: palette, cue: cue}
}

func (d *Display) SetInstruction(text string) {
	d.instruction = text
	d.Draw()
}

func (d *Display) SetResult(text string) {
	d.result = text
	d.Draw()
}

func (d *Display) SetBest(text string) {
	d.best = text
	d.Draw()
}

func (d *Display) SetIndicator(ind game.Indicator) {
	prev := d.indicator
	d.indicator = ind
	d.Draw()

	if ind == game.IndicatorGo && prev != game.IndicatorGo && d.cue != nil {
		d.cue.Play()
	}
}

// Draw repaints the whole screen from the current texts and indicator.
func (d *Display) Draw() {
	bg, fg := d.palette.Neutral, tcell.ColorWhite
	if d.indicator == game.IndicatorGo {
		bg, fg = d.palette.Go, tcell.ColorBlack
	}
	style := tcell.StyleDefault.Background(bg).Foreground(fg)

	d.screen.Fill(' ', style)

	w, h := d.screen.Size()
	mid := h / 2
	d.centre(mid-1, w, d.instruction, style.Bold(true))
	d.centre(mid+1, w, d.result, style.Bold(true))
	d.centre(mid+3, w, d.best, style)
	d.centre(h-1, w, hint, style.Dim(true))

	d.screen.Show()
}

// centre lays text out by cell width; wide runes occupy two cells.
func (d *Display) centre(y, w int, text string, style tcell.Style) {
	x := (w - runewidth.StringWidth(text)) / 2
	if x < 0 {
		x = 0
	}
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if x+rw > w {
			break
		}
		d.screen.SetContent(x, y, r, nil, style)
		x += rw
	}
}
