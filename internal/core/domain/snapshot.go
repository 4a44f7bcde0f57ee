package domain

import (
	"strconv"
	"strings"
	"time"

	"go.trai.ch/zerr"
)

// SnapshotLayout is the time format of snapshot identifiers, e.g. 20250314T093000Z.
const SnapshotLayout = "20060102T150405Z"

// SnapshotPin restricts package-repository queries to a point in time.
type SnapshotPin struct {
	Time time.Time
}

// NewSnapshotPin truncates t to second precision in UTC.
func NewSnapshotPin(t time.Time) SnapshotPin {
	return SnapshotPin{Time: t.UTC().Truncate(time.Second)}
}

// SnapshotFromUnix builds a pin from a unix timestamp as printed by `git show --format=%at`.
func SnapshotFromUnix(raw string) (SnapshotPin, error) {
	secs, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return SnapshotPin{}, zerr.With(zerr.Wrap(ErrInvalidSnapshot, "not a unix timestamp"), "value", raw)
	}
	return NewSnapshotPin(time.Unix(secs, 0)), nil
}

// ParseSnapshot parses a snapshot identifier in SnapshotLayout.
func ParseSnapshot(id string) (SnapshotPin, error) {
	t, err := time.Parse(SnapshotLayout, strings.TrimSpace(id))
	if err != nil {
		return SnapshotPin{}, zerr.With(zerr.Wrap(ErrInvalidSnapshot, err.Error()), "value", id)
	}
	return NewSnapshotPin(t), nil
}

// String formats the pin as a snapshot identifier.
func (p SnapshotPin) String() string {
	return p.Time.UTC().Format(SnapshotLayout)
}

// Allows reports whether something published at t is visible under the pin.
// A zero t is treated as unknown and allowed.
func (p SnapshotPin) Allows(t time.Time) bool {
	return t.IsZero() || !t.After(p.Time)
}
