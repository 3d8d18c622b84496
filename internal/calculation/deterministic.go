package calculation

import "time"

// nowFunc returns the current time (override in tests for determinism).
var nowFunc = time.Now

// SetNowFunc overrides the time provider (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }

// seedFunc returns a pseudo-random seed used when no explicit seed is configured.
var seedFunc = func() int64 { return time.Now().UnixNano() }

// SetSeedFunc overrides the seed provider (use only in tests).
func SetSeedFunc(f func() int64) { seedFunc = f }

// runIDFunc returns the identifier stamped on each report.
var runIDFunc = newRunID

// SetRunIDFunc overrides the report identifier provider (use only in tests).
func SetRunIDFunc(f func() string) { runIDFunc = f }
