package store

import "time"

// SetNow replaces the cache clock in tests.
func (c *Cached) SetNow(now func() time.Time) {
	c.now = now
}
