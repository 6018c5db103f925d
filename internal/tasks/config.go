package tasks

import "time"

// Config holds configuration for the task queue.
type Config struct {
	Workers         int           // concurrent workers, default 1
	ReleaseAfter    time.Duration // stuck tasks go back to the queue after this, default 15m
	CleanupInterval time.Duration // how often finished tasks are purged, default 1h
}

// DefaultConfig returns a Config suited to a single-user server.
func DefaultConfig() Config {
	return Config{
		Workers:         1,
		ReleaseAfter:    15 * time.Minute,
		CleanupInterval: time.Hour,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Workers <= 0 {
		c.Workers = d.Workers
	}
	if c.ReleaseAfter <= 0 {
		c.ReleaseAfter = d.ReleaseAfter
	}
	if c.CleanupInterval <= 0 {
		c.CleanupInterval = d.CleanupInterval
	}
	return c
}
