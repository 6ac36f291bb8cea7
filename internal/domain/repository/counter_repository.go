package repository

import "context"

// SeedFunc computes the starting value of a counter that does not exist yet
type SeedFunc func(ctx context.Context) (int64, error)

// CounterRepository hands out values of named sequences atomically
type CounterRepository interface {
	// Next increments the named counter and returns the new value. A missing
	// counter is first created with the value returned by seed.
	Next(ctx context.Context, name string, seed SeedFunc) (int64, error)
	// Current returns the last value handed out, or false if the counter
	// has never been used.
	Current(ctx context.Context, name string) (int64, bool, error)
}
