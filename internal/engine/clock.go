// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package engine

import (
	"fmt"
	"time"
)

// Clock represents simulated time, in the same units as the physical-layer
// constants in internal/sim (microseconds), stored as a time.Duration so
// arithmetic and formatting come for free.
type Clock time.Duration

// ClockInfinity is a sentinel Clock value larger than any real simulated
// time, used as the run_until bound for "run until nothing is left to do".
const ClockInfinity = Clock(1<<63 - 1)

// Microsecond is one microsecond of simulated time.
const Microsecond = Clock(time.Microsecond)

func (c Clock) String() string {
	return fmt.Sprintf("%d", time.Duration(c).Microseconds())
}

// Micros returns the Clock value as a plain int64 count of microseconds,
// the unit the event log and CLI flags are expressed in.
func (c Clock) Micros() int64 {
	return time.Duration(c).Microseconds()
}

// FromMicros constructs a Clock from a microsecond count.
func FromMicros(us int64) Clock {
	return Clock(time.Duration(us) * time.Microsecond)
}

// addSat adds a and b, saturating at ClockInfinity instead of overflowing,
// so a Timeout/Select deadline derived from ClockInfinity (an unbounded
// wait) stays a large positive value no matter what it's offset from.
func addSat(a, b Clock) Clock {
	if b > 0 && a > ClockInfinity-b {
		return ClockInfinity
	}
	return a + b
}
