package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/gkobilansky/reaction-goat/internal/game"
)

func setupScheduler(t *testing.T) (*Scheduler, *clockwork.FakeClock, chan func()) {
	t.Helper()

	clock := clockwork.NewFakeClock()
	posted := make(chan func(), 8)
	s := New(clock, func(fn func()) { posted <- fn }, zerolog.Nop())
	return s, clock, posted
}

func waitForTimers(t *testing.T, clock *clockwork.FakeClock, n int) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := clock.BlockUntilContext(ctx, n); err != nil {
		t.Fatalf("timers never armed: %v", err)
	}
}

func receive(t *testing.T, posted chan func()) func() {
	t.Helper()

	select {
	case fn := <-posted:
		return fn
	case <-time.After(time.Second):
		t.Fatal("callback was never posted")
		return nil
	}
}

func assertNothingPosted(t *testing.T, posted chan func()) {
	t.Helper()

	select {
	case <-posted:
		t.Fatal("unexpected callback posted")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSchedule_FiresThroughPost(t *testing.T) {
	s, clock, posted := setupScheduler(t)

	fired := false
	h := s.Schedule(2*time.Second, func() { fired = true })
	if h == 0 {
		t.Fatal("expected non-zero handle")
	}
	waitForTimers(t, clock, 1)

	clock.Advance(time.Second)
	assertNothingPosted(t, posted)

	clock.Advance(time.Second)
	receive(t, posted)()

	if !fired {
		t.Error("callback did not run")
	}
	if s.Pending() != 0 {
		t.Errorf("pending = %d, want 0", s.Pending())
	}
}

func TestCancel_BeforeFire(t *testing.T) {
	s, clock, posted := setupScheduler(t)

	h := s.Schedule(time.Second, func() { t.Error("cancelled callback ran") })
	waitForTimers(t, clock, 1)

	s.Cancel(h)
	if s.Pending() != 0 {
		t.Errorf("pending = %d, want 0", s.Pending())
	}

	clock.Advance(10 * time.Second)
	assertNothingPosted(t, posted)
}

func TestCancel_AfterPostBeforeRun(t *testing.T) {
	s, clock, posted := setupScheduler(t)

	h := s.Schedule(time.Second, func() { t.Error("cancelled callback ran") })
	waitForTimers(t, clock, 1)

	clock.Advance(time.Second)
	fn := receive(t, posted)

	s.Cancel(h)
	fn()
}

func TestCancel_Idempotent(t *testing.T) {
	s, clock, posted := setupScheduler(t)

	h := s.Schedule(time.Second, func() {})
	waitForTimers(t, clock, 1)
	clock.Advance(time.Second)
	receive(t, posted)()

	s.Cancel(h)
	s.Cancel(h)
	s.Cancel(game.Handle(999))

	h2 := s.Schedule(time.Second, func() {})
	s.Cancel(h2)
	s.Cancel(h2)

	if s.Pending() != 0 {
		t.Errorf("pending = %d, want 0", s.Pending())
	}
}

func TestSchedule_HandlesAreUnique(t *testing.T) {
	s, _, _ := setupScheduler(t)

	seen := make(map[game.Handle]bool)
	for i := 0; i < 20; i++ {
		h := s.Schedule(time.Hour, func() {})
		if seen[h] {
			t.Fatalf("handle %d reused", h)
		}
		seen[h] = true
	}
	if s.Pending() != 20 {
		t.Errorf("pending = %d, want 20", s.Pending())
	}

	for h := range seen {
		s.Cancel(h)
	}
	if s.Pending() != 0 {
		t.Errorf("pending = %d, want 0", s.Pending())
	}
}
