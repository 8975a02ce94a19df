package loop

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLoop_RunsInPostOrder(t *testing.T) {
	l := New(16)
	var got []int

	for i := 0; i < 10; i++ {
		i := i
		l.Post(func() { got = append(got, i) })
	}
	l.Post(l.Stop)

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(got) != 10 {
		t.Fatalf("ran %d tasks, want 10", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Errorf("task %d ran as %d", i, v)
		}
	}
}

func TestLoop_PostFromOtherGoroutines(t *testing.T) {
	l := New(1)
	count := 0

	go func() {
		for i := 0; i < 100; i++ {
			l.Post(func() { count++ })
		}
		l.Post(l.Stop)
	}()

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if count != 100 {
		t.Errorf("count = %d, want 100", count)
	}
}

func TestLoop_ContextCancel(t *testing.T) {
	l := New(0)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := l.Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("got %v, want deadline exceeded", err)
	}

	ran := false
	l.Post(func() { ran = true })
	if ran {
		t.Error("post after stop ran inline")
	}
}

func TestLoop_PostAfterStopDoesNotBlock(t *testing.T) {
	l := New(0)
	l.Stop()
	l.Stop()

	done := make(chan struct{})
	go func() {
		l.Post(func() {})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("post blocked on a stopped loop")
	}
}
