// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package sim

import (
	"math/rand"

	"github.com/heistp/rawcell/internal/engine"
)

// Config is the immutable parameter bag passed to NewCell, which gives
// every Node a pointer to it. Nothing here is read from a package-level
// global; a Config is built once by the CLI (or a test). Medium and the
// engine Scheduler take no Config and read none of its fields.
type Config struct {
	// NumSTAs is the number of contending stations (AP is node 0 and is
	// not counted here).
	NumSTAs int
	// NumGroups is the number of RAW groups in one schedule cycle.
	NumGroups int
	// SlotSize is the duration of one RAW slot.
	SlotSize engine.Clock
	// Width and Height bound the scenario rectangle in meters.
	Width, Height float64
	// Rate is the mean packet generation rate, in packets per
	// microsecond, the parameter of each station's exponential
	// inter-arrival distribution.
	Rate float64
	// Length is the simulated duration to run.
	Length engine.Clock
	// Verbosity gates which log lines are emitted (see Logger).
	Verbosity int
	// Rand is the single random source used by every station's
	// inter-arrival, backoff, and reception draws, and by the placement
	// step. Injecting it (rather than seeding a package-level source)
	// is what makes a run reproducible from a seed alone.
	Rand *rand.Rand
	// Metrics receives outcome counts as the simulation runs. Defaults to
	// NoopMetrics when unset.
	Metrics Metrics
}

// StationSeed is one station's placement and group assignment, as produced
// either by parsing a groups file or by the random-placement /
// round-robin-group fallback (see topology.go).
type StationSeed struct {
	X, Y  float64
	Group int
}

// DefaultConfig returns a Config with the CLI's documented defaults, but
// no Rand — callers must set one before use.
func DefaultConfig() Config {
	return Config{
		NumSTAs:   1,
		NumGroups: 1,
		SlotSize:  engine.FromMicros(50000),
		Width:     1000,
		Height:    1000,
		Rate:      10000,
		Length:    engine.FromMicros(2e7),
		Verbosity: 0,
		Metrics:   NoopMetrics,
	}
}
