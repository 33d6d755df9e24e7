package domain

import "time"

// appleEpoch is the reference instant for message timestamps: raw values are
// nanoseconds since 2001-01-01 00:00:00 UTC.
var appleEpoch = time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)

// TimeFromAppleTicks converts a raw message timestamp to an absolute time.
func TimeFromAppleTicks(ticks int64) time.Time {
	return appleEpoch.Add(time.Duration(ticks))
}

// AppleTicks converts an absolute time to the raw message timestamp unit.
func AppleTicks(t time.Time) int64 {
	return t.Sub(appleEpoch).Nanoseconds()
}
