package store

import (
	"context"
	"errors"

	"github.com/gkobilansky/reaction-goat/internal/game"
)

// Profile exposes a single best-time key of a Store to the game.
type Profile struct {
	store Store
	key   string
}

var _ game.Store = (*Profile)(nil)

// ForKey binds s to key. An empty key means DefaultKey.
func ForKey(s Store, key string) *Profile {
	if key == "" {
		key = DefaultKey
	}
	return &Profile{store: s, key: key}
}

func (p *Profile) Key() string {
	return p.key
}

func (p *Profile) BestTime(ctx context.Context) (*float64, error) {
	bt, err := p.store.GetBestTime(ctx, p.key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	ms := bt.Millis
	return &ms, nil
}

func (p *Profile) SetBestTime(ctx context.Context, ms float64) error {
	return p.store.SetBestTime(ctx, p.key, ms)
}
