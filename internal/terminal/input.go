package terminal

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/gkobilansky/reaction-goat/internal/loop"
)

type Action int

const (
	ActionNone Action = iota
	ActionClick
	ActionQuit
	ActionResize
)

// Input classifies tcell events. Mouse clicks are reported on the press
// edge of the primary button only, so holding or dragging counts once.
type Input struct {
	buttons tcell.ButtonMask
}

func (in *Input) Classify(ev tcell.Event) Action {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return ActionQuit
		case tcell.KeyEnter:
			return ActionClick
		case tcell.KeyRune:
			switch ev.Rune() {
			case ' ':
				return ActionClick
			case 'q', 'Q':
				return ActionQuit
			}
		}

	case *tcell.EventMouse:
		prev := in.buttons
		in.buttons = ev.Buttons()
		if in.buttons&tcell.Button1 != 0 && prev&tcell.Button1 == 0 {
			return ActionClick
		}

	case *tcell.EventResize:
		return ActionResize
	}

	return ActionNone
}

// App connects a screen to the event loop.
type App struct {
	screen  tcell.Screen
	display *Display
	loop    *loop.Loop
	log     zerolog.Logger
}

func NewApp(screen tcell.Screen, display *Display, l *loop.Loop, logger zerolog.Logger) *App {
	return &App{screen: screen, display: display, loop: l, log: logger}
}

// Run polls terminal events, posting onClick to the loop for every click,
// and runs the loop until the user quits or ctx is cancelled.
func (a *App) Run(ctx context.Context, onClick func()) error {
	a.screen.EnableMouse()

	go a.poll(onClick)

	a.loop.Post(a.display.Draw)
	return a.loop.Run(ctx)
}

func (a *App) poll(onClick func()) {
	var in Input
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			// Screen finalized.
			return
		}

		switch in.Classify(ev) {
		case ActionClick:
			a.loop.Post(onClick)
		case ActionResize:
			a.loop.Post(func() {
				a.screen.Sync()
				a.display.Draw()
			})
		case ActionQuit:
			a.log.Debug().Msg("quit requested")
			a.loop.Stop()
			return
		}
	}
}
