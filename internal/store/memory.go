package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore keeps everything in process memory. Nothing survives Close.
type MemoryStore struct {
	mu       sync.Mutex
	best     map[string]BestTime
	settings map[string]string
}

var _ Store = (*MemoryStore)(nil)

func NewMemory() *MemoryStore {
	return &MemoryStore{
		best:     make(map[string]BestTime),
		settings: make(map[string]string),
	}
}

func (m *MemoryStore) GetBestTime(ctx context.Context, key string) (*BestTime, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	bt, ok := m.best[key]
	if !ok {
		return nil, ErrNotFound
	}
	return &bt, nil
}

func (m *MemoryStore) SetBestTime(ctx context.Context, key string, millis float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.best[key] = BestTime{Key: key, Millis: millis, UpdatedAt: time.Now()}
	return nil
}

func (m *MemoryStore) ListBestTimes(ctx context.Context) ([]*BestTime, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	times := make([]*BestTime, 0, len(m.best))
	for _, bt := range m.best {
		bt := bt
		times = append(times, &bt)
	}
	sort.Slice(times, func(i, j int) bool {
		if times[i].Millis != times[j].Millis {
			return times[i].Millis < times[j].Millis
		}
		return times[i].Key < times[j].Key
	})
	return times, nil
}

func (m *MemoryStore) DeleteBestTime(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.best[key]; !ok {
		return ErrNotFound
	}
	delete(m.best, key)
	return nil
}

func (m *MemoryStore) GetSetting(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.settings[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryStore) SetSetting(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.settings[key] = value
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
