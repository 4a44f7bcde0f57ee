package installer

import "time"

// SetClock replaces the clock used for record timestamps.
func (r *Registry) SetClock(now func() time.Time) {
	r.now = now
}
