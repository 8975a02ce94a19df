// Package scheduler implements game.Scheduler on top of clockwork timers.
//
// Timers fire on their own goroutines, but callbacks are never run there:
// they are handed to a post function (normally loop.Loop.Post) so that they
// execute on the same goroutine as clicks. A handle cancelled on that
// goroutine is therefore guaranteed never to run its callback.
package scheduler

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/gkobilansky/reaction-goat/internal/game"
)

type entry struct {
	timer clockwork.Timer
	done  chan struct{}
}

type Scheduler struct {
	clock clockwork.Clock
	post  func(func())
	log   zerolog.Logger

	mu      sync.Mutex
	next    game.Handle
	entries map[game.Handle]*entry
}

var _ game.Scheduler = (*Scheduler)(nil)

func New(clock clockwork.Clock, post func(func()), logger zerolog.Logger) *Scheduler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Scheduler{
		clock:   clock,
		post:    post,
		log:     logger,
		entries: make(map[game.Handle]*entry),
	}
}

func (s *Scheduler) Schedule(delay time.Duration, fn func()) game.Handle {
	s.mu.Lock()
	s.next++
	h := s.next
	e := &entry{
		timer: s.clock.NewTimer(delay),
		done:  make(chan struct{}),
	}
	s.entries[h] = e
	s.mu.Unlock()

	go func() {
		select {
		case <-e.timer.Chan():
			s.post(func() {
				if !s.take(h) {
					return
				}
				fn()
			})
		case <-e.done:
		}
	}()

	s.log.Debug().Uint64("handle", uint64(h)).Dur("delay", delay).Msg("timer armed")
	return h
}

// Cancel stops the timer behind h. Unknown, fired and cancelled handles are ignored.
func (s *Scheduler) Cancel(h game.Handle) {
	s.mu.Lock()
	e, ok := s.entries[h]
	if ok {
		delete(s.entries, h)
	}
	s.mu.Unlock()

	if !ok {
		return
	}
	stopAndDrainTimer(e.timer)
	close(e.done)
	s.log.Debug().Uint64("handle", uint64(h)).Msg("timer cancelled")
}

// Pending reports how many handles have neither fired nor been cancelled.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// take removes h and reports whether it was still registered.
func (s *Scheduler) take(h game.Handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[h]
	if !ok {
		return false
	}
	delete(s.entries, h)
	close(e.done)
	return true
}

func stopAndDrainTimer(timer clockwork.Timer) {
	if !timer.Stop() {
		select {
		case <-timer.Chan():
		default:
		}
	}
}
