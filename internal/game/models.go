package game

import (
	"context"
	"time"
)

type State int

const (
	StateReady State = iota
	StateWaiting
	StateSignaled
	StateResult
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateWaiting:
		return "waiting"
	case StateSignaled:
		return "signaled"
	case StateResult:
		return "result"
	default:
		return "unknown"
	}
}

// Indicator is the colour of the play area.
type Indicator int

const (
	IndicatorNeutral Indicator = iota
	IndicatorGo
)

func (i Indicator) String() string {
	if i == IndicatorGo {
		return "go"
	}
	return "neutral"
}

// Handle identifies a scheduled signal. The zero Handle means nothing is pending.
type Handle uint64

// Display renders game output. Implementations must not block or panic.
type Display interface {
	SetInstruction(text string)
	SetResult(text string)
	SetBest(text string)
	SetIndicator(ind Indicator)
}

// Store persists the best reaction time in milliseconds.
// A nil best with a nil error means no round has been recorded yet.
type Store interface {
	BestTime(ctx context.Context) (*float64, error)
	SetBestTime(ctx context.Context, ms float64) error
}

// Scheduler runs fn once after delay unless the handle is cancelled first.
// Cancel must be a no-op for handles that already fired or were cancelled.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) Handle
	Cancel(h Handle)
}

// Clock is satisfied by clockwork.Clock.
type Clock interface {
	Now() time.Time
}

// Messages holds every text the game shows.
type Messages struct {
	Start     string `yaml:"start"`
	Wait      string `yaml:"wait"`
	TooEarly  string `yaml:"too_early"`
	TryAgain  string `yaml:"try_again"`
	ResultFmt string `yaml:"result_format"`
	BestFmt   string `yaml:"best_format"`
}

func DefaultMessages() Messages {
	return Messages{
		Start:     "Click to start. Click again when the color changes to yellow.",
		Wait:      "Wait for yellow...",
		TooEarly:  "Too early! Click to try again.",
		TryAgain:  "Click to try again",
		ResultFmt: "%d ms",
		BestFmt:   "Best time: %.1f ms",
	}
}
