// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package sim

import "github.com/heistp/rawcell/internal/engine"

// EnergySample is one timestamped received-power observation.
type EnergySample struct {
	When               engine.Clock
	LevelDbm           float64
	ActiveTransmitters int
}

// EnergyHistory is an append-only, lazily-pruned ring of EnergySamples
// covering at least the last DataPacketTime of simulated time, adapted
// from a clockRing-style fixed window generalized to carry a (level,
// count) pair per sample rather than a bare Clock. A slice-backed ring is
// used instead of a fixed-capacity array since the number of
// simultaneous transmitters bounds neither a compile-time constant nor a
// hard cap here.
type EnergyHistory struct {
	samples []EnergySample
}

// NewEnergyHistory returns a new EnergyHistory seeded with the background
// noise floor and zero active transmitters.
func NewEnergyHistory(now engine.Clock) *EnergyHistory {
	return &EnergyHistory{
		samples: []EnergySample{{When: now, LevelDbm: BackgroundNoise, ActiveTransmitters: 0}},
	}
}

// Current returns the most recent sample.
func (h *EnergyHistory) Current() EnergySample {
	return h.samples[len(h.samples)-1]
}

// Increase appends a new sample reflecting one more active transmitter
// contributing delta dBm of received power.
func (h *EnergyHistory) Increase(now engine.Clock, delta float64) EnergySample {
	cur := h.Current()
	s := EnergySample{
		When:               now,
		LevelDbm:           sumDbm(cur.LevelDbm, delta),
		ActiveTransmitters: cur.ActiveTransmitters + 1,
	}
	h.push(s)
	return s
}

// Decrease appends a new sample reflecting one fewer active transmitter
// whose contribution was delta dBm. If this was the last transmitter,
// the level snaps exactly to BackgroundNoise rather than being computed
// via subDbm, avoiding dBm-subtraction drift.
func (h *EnergyHistory) Decrease(now engine.Clock, delta float64) EnergySample {
	cur := h.Current()
	if cur.ActiveTransmitters <= 0 {
		panic(&InvariantViolation{Msg: "EnergyHistory.Decrease with no active transmitters"})
	}
	var s EnergySample
	if cur.ActiveTransmitters == 1 {
		s = EnergySample{When: now, LevelDbm: BackgroundNoise, ActiveTransmitters: 0}
	} else {
		s = EnergySample{
			When:               now,
			LevelDbm:           subDbm(cur.LevelDbm, delta),
			ActiveTransmitters: cur.ActiveTransmitters - 1,
		}
	}
	h.push(s)
	return s
}

// push appends s and prunes samples older than now-DataPacketTime from the
// front. The oldest sample is dropped only while the *next* one is also
// past the cutoff, so the history always retains the one sample
// immediately preceding the window in addition to everything inside it —
// otherwise a reception walk starting partway through that last-dropped
// sample's span would have no state to attribute to it.
func (h *EnergyHistory) push(s EnergySample) {
	h.samples = append(h.samples, s)
	cutoff := s.When - DataPacketTime
	for len(h.samples) > 1 && h.samples[1].When < cutoff {
		h.samples = h.samples[1:]
	}
}

// Walk calls fn for each sample from newest to oldest, stopping early if fn
// returns false. Samples with When >= before are skipped, matching the
// reception walk's rule of skipping samples at or after the
// transmission's end.
func (h *EnergyHistory) Walk(before engine.Clock, fn func(EnergySample) bool) {
	for i := len(h.samples) - 1; i >= 0; i-- {
		s := h.samples[i]
		if s.When >= before {
			continue
		}
		if !fn(s) {
			return
		}
	}
}
