package store

import "context"

// Store defines the interface for best-time storage operations
type Store interface {
	// Best time operations
	GetBestTime(ctx context.Context, key string) (*BestTime, error)
	SetBestTime(ctx context.Context, key string, millis float64) error
	ListBestTimes(ctx context.Context) ([]*BestTime, error)
	DeleteBestTime(ctx context.Context, key string) error

	// Settings
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error

	// Lifecycle
	Close() error
}
