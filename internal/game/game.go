// Package game implements the reaction-time state machine.
//
// A ReactionGame is driven by two kinds of events: clicks, delivered through
// OnClick, and the delayed signal it schedules on entering StateWaiting. The
// caller must deliver both from a single goroutine; the game holds no locks.
package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

const (
	DefaultMinDelay = 1000 * time.Millisecond
	DefaultMaxDelay = 5000 * time.Millisecond
)

var ErrInvalidDelay = errors.New("invalid delay range")

// Config wires a ReactionGame to its collaborators. Display, Store and
// Scheduler are required; everything else has a default.
type Config struct {
	Display   Display
	Store     Store
	Scheduler Scheduler

	Clock    Clock
	Rand     *rand.Rand
	MinDelay time.Duration
	MaxDelay time.Duration
	Messages Messages
	Logger   *zerolog.Logger
}

type ReactionGame struct {
	display Display
	store   Store
	sched   Scheduler
	clock   Clock
	rng     *rand.Rand
	log     zerolog.Logger
	msg     Messages

	minDelay time.Duration
	maxDelay time.Duration

	state       State
	start       time.Time
	pending     Handle
	best        *float64
	lastElapsed *int64
}

func New(cfg Config) (*ReactionGame, error) {
	if cfg.Display == nil || cfg.Store == nil || cfg.Scheduler == nil {
		return nil, errors.New("display, store and scheduler are required")
	}

	minDelay, maxDelay := cfg.MinDelay, cfg.MaxDelay
	if minDelay == 0 && maxDelay == 0 {
		minDelay, maxDelay = DefaultMinDelay, DefaultMaxDelay
	}
	if minDelay < 0 || maxDelay-minDelay < time.Millisecond {
		return nil, fmt.Errorf("%w: [%s, %s)", ErrInvalidDelay, minDelay, maxDelay)
	}

	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &ReactionGame{
		display:  cfg.Display,
		store:    cfg.Store,
		sched:    cfg.Scheduler,
		clock:    clock,
		rng:      cfg.Rand,
		log:      logger,
		msg:      withDefaults(cfg.Messages),
		minDelay: minDelay,
		maxDelay: maxDelay,
		state:    StateReady,
	}, nil
}

// Initialize loads the best time and renders the ready screen. A store that
// cannot be read leaves the best time absent.
func (g *ReactionGame) Initialize(ctx context.Context) {
	best, err := g.store.BestTime(ctx)
	if err != nil {
		g.log.Warn().Err(err).Msg("failed to load best time")
		best = nil
	}
	g.best = best

	g.cancelPending()
	g.state = StateReady
	g.display.SetBest(g.bestText())
	g.display.SetResult("")
	g.display.SetInstruction(g.msg.Start)
	g.display.SetIndicator(IndicatorNeutral)

	g.log.Debug().Str("state", g.state.String()).Interface("best_ms", g.best).Msg("game initialized")
}

// OnClick advances the state machine by one click.
func (g *ReactionGame) OnClick(ctx context.Context) {
	prev := g.state

	switch g.state {
	case StateReady:
		g.startRound()
	case StateWaiting:
		g.tooEarly()
	case StateSignaled:
		g.finishRound(ctx)
	case StateResult:
		g.reset()
	}

	g.log.Debug().Str("from", prev.String()).Str("to", g.state.String()).Msg("click")
}

// Shutdown cancels any pending signal. The game stays usable afterwards.
func (g *ReactionGame) Shutdown() {
	if g.state == StateWaiting {
		g.cancelPending()
		g.state = StateReady
	}
}

func (g *ReactionGame) State() State {
	return g.state
}

// BestTime returns a copy of the best time, or nil if none is recorded.
func (g *ReactionGame) BestTime() *float64 {
	if g.best == nil {
		return nil
	}
	v := *g.best
	return &v
}

// LastElapsed returns the most recent measured reaction time in ms.
func (g *ReactionGame) LastElapsed() (int64, bool) {
	if g.lastElapsed == nil {
		return 0, false
	}
	return *g.lastElapsed, true
}

func (g *ReactionGame) startRound() {
	g.state = StateWaiting
	g.display.SetInstruction(g.msg.Wait)
	g.display.SetResult("")
	g.display.SetIndicator(IndicatorNeutral)

	delay := g.nextDelay()
	var h Handle
	h = g.sched.Schedule(delay, func() { g.signal(h) })
	g.pending = h

	g.log.Debug().Dur("delay", delay).Uint64("handle", uint64(h)).Msg("signal scheduled")
}

func (g *ReactionGame) signal(h Handle) {
	if g.state != StateWaiting || g.pending != h {
		g.log.Debug().Uint64("handle", uint64(h)).Str("state", g.state.String()).Msg("ignoring stale signal")
		return
	}
	g.pending = 0
	g.state = StateSignaled
	g.display.SetIndicator(IndicatorGo)
	g.start = g.clock.Now()
}

func (g *ReactionGame) tooEarly() {
	g.cancelPending()
	g.state = StateResult
	g.display.SetInstruction(g.msg.TooEarly)
	g.display.SetResult("")
	g.display.SetIndicator(IndicatorNeutral)
}

func (g *ReactionGame) finishRound(ctx context.Context) {
	elapsed := g.clock.Now().Sub(g.start).Milliseconds()
	if elapsed < 0 {
		elapsed = 0
	}
	g.lastElapsed = &elapsed

	g.state = StateResult
	g.display.SetInstruction(g.msg.TryAgain)
	g.display.SetResult(fmt.Sprintf(g.msg.ResultFmt, elapsed))

	g.log.Info().Int64("elapsed_ms", elapsed).Msg("round complete")

	ms := float64(elapsed)
	// Ties keep the existing best.
	if g.best != nil && ms >= *g.best {
		return
	}
	g.best = &ms
	if err := g.store.SetBestTime(ctx, ms); err != nil {
		g.log.Warn().Err(err).Float64("best_ms", ms).Msg("failed to persist best time")
	}
	g.display.SetBest(g.bestText())
}

func (g *ReactionGame) reset() {
	g.state = StateReady
	g.display.SetResult("")
	g.display.SetInstruction(g.msg.Start)
	g.display.SetIndicator(IndicatorNeutral)
}

func (g *ReactionGame) cancelPending() {
	if g.pending == 0 {
		return
	}
	g.sched.Cancel(g.pending)
	g.log.Debug().Uint64("handle", uint64(g.pending)).Msg("signal cancelled")
	g.pending = 0
}

// nextDelay picks a whole number of milliseconds uniformly from [min, max).
func (g *ReactionGame) nextDelay() time.Duration {
	span := int64((g.maxDelay - g.minDelay) / time.Millisecond)
	var n int64
	if g.rng != nil {
		n = g.rng.Int64N(span)
	} else {
		n = rand.Int64N(span)
	}
	return g.minDelay + time.Duration(n)*time.Millisecond
}

func (g *ReactionGame) bestText() string {
	if g.best == nil {
		return ""
	}
	return fmt.Sprintf(g.msg.BestFmt, *g.best)
}

func withDefaults(m Messages) Messages {
	d := DefaultMessages()
	if m.Start == "" {
		m.Start = d.Start
	}
	if m.Wait == "" {
		m.Wait = d.Wait
	}
	if m.TooEarly == "" {
		m.TooEarly = d.TooEarly
	}
	if m.TryAgain == "" {
		m.TryAgain = d.TryAgain
	}
	if m.ResultFmt == "" {
		m.ResultFmt = d.ResultFmt
	}
	if m.BestFmt == "" {
		m.BestFmt = d.BestFmt
	}
	return m
}
