package store

import "time"

// DefaultKey is the profile best times are stored under when none is given.
const DefaultKey = "default"

type BestTime struct {
	Key       string
	Millis    float64
	UpdatedAt time.Time
}
