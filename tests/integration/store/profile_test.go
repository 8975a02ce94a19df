package store_test

import (
	"context"
	"testing"

	"github.com/gkobilansky/reaction-goat/internal/store"
	"github.com/gkobilansky/reaction-goat/tests/testutil"
)

func TestProfile_SQLite(t *testing.T) {
	s := testutil.SetupTestStore(t)
	ctx := context.Background()
	p := store.ForKey(s, "alice")

	best, err := p.BestTime(ctx)
	if err != nil {
		t.Fatalf("failed to read best time: %v", err)
	}
	if best != nil {
		t.Fatalf("expected no best time, got %f", *best)
	}

	if err := p.SetBestTime(ctx, 233); err != nil {
		t.Fatalf("failed to set best time: %v", err)
	}

	best, err = p.BestTime(ctx)
	if err != nil {
		t.Fatalf("failed to read best time: %v", err)
	}
	if best == nil || *best != 233 {
		t.Errorf("expected 233, got %v", best)
	}

	// Other profiles are untouched.
	other, err := store.ForKey(s, "bob").BestTime(ctx)
	if err != nil || other != nil {
		t.Errorf("expected bob to have no best time, got %v, %v", other, err)
	}
}
