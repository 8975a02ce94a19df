// Package audio plays the short tone that accompanies the go signal.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"
)

const (
	sampleRate = beep.SampleRate(44100)
	toneHz     = 880
	toneLength = 80 * time.Millisecond
)

// Cue plays a sine beep. The zero value is silent.
type Cue struct {
	mu          sync.Mutex
	initialized bool
	log         zerolog.Logger
}

// NewCue initialises the speaker. Audio failures are logged and leave the
// cue silent; the game runs without sound.
func NewCue(logger zerolog.Logger) *Cue {
	c := &Cue{log: logger}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		logger.Warn().Err(err).Msg("audio initialization failed, continuing without sound")
		return c
	}
	c.initialized = true
	return c
}

func (c *Cue) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}

	sine, err := generators.SineTone(sampleRate, toneHz)
	if err != nil {
		c.log.Warn().Err(err).Msg("failed to build tone")
		return
	}
	speaker.Play(beep.Take(sampleRate.N(toneLength), sine))
}

// Close releases the speaker.
func (c *Cue) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Close()
	c.initialized = false
}
