// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/heistp/rawcell/internal/engine"
)

func TestNewEnergyHistorySeedsBackgroundNoise(t *testing.T) {
	h := NewEnergyHistory(0)
	cur := h.Current()
	require.Equal(t, BackgroundNoise, cur.LevelDbm)
	require.Equal(t, 0, cur.ActiveTransmitters)
}

func TestIncreaseThenDecreaseReturnsToBackgroundNoise(t *testing.T) {
	h := NewEnergyHistory(0)
	s := h.Increase(engine.FromMicros(10), -70)
	require.Equal(t, 1, s.ActiveTransmitters)
	require.Greater(t, s.LevelDbm, BackgroundNoise)

	s = h.Decrease(engine.FromMicros(20), -70)
	require.Equal(t, 0, s.ActiveTransmitters)
	require.Equal(t, BackgroundNoise, s.LevelDbm)
}

func TestDecreaseWithMultipleTransmittersUsesSubDbm(t *testing.T) {
	h := NewEnergyHistory(0)
	h.Increase(engine.FromMicros(10), -70)
	h.Increase(engine.FromMicros(20), -75)
	s := h.Decrease(engine.FromMicros(30), -75)
	require.Equal(t, 1, s.ActiveTransmitters)
	require.NotEqual(t, BackgroundNoise, s.LevelDbm)
}

func TestDecreaseBelowZeroActiveTransmittersPanics(t *testing.T) {
	h := NewEnergyHistory(0)
	require.Panics(t, func() {
		h.Decrease(engine.FromMicros(10), -70)
	})
}

func TestPushRetainsOneSamplePrecedingWindow(t *testing.T) {
	h := NewEnergyHistory(0)
	// Push a sample well outside DataPacketTime from the next push, then a
	// sample that starts a fresh window; the prior sample must survive
	// since it's the state in effect at the start of the retained window.
	h.push(EnergySample{When: 0, LevelDbm: BackgroundNoise})
	h.push(EnergySample{When: DataPacketTime * 2, LevelDbm: -70})
	require.Len(t, h.samples, 2)
	require.Equal(t, engine.Clock(0), h.samples[0].When)
}

func TestPushPrunesSamplesOlderThanTwoWindowsBack(t *testing.T) {
	h := NewEnergyHistory(0)
	h.push(EnergySample{When: 0, LevelDbm: BackgroundNoise})
	h.push(EnergySample{When: DataPacketTime, LevelDbm: -80})
	h.push(EnergySample{When: DataPacketTime * 3, LevelDbm: -70})
	// Both the t=0 samples are more than DataPacketTime behind the newest
	// cutoff, so only the t=DataPacketTime sample and the newest remain.
	require.Len(t, h.samples, 2)
	require.Equal(t, DataPacketTime, h.samples[0].When)
	require.Equal(t, DataPacketTime*3, h.samples[1].When)
}

func TestWalkSkipsSamplesAtOrAfterBefore(t *testing.T) {
	h := NewEnergyHistory(0)
	h.push(EnergySample{When: engine.FromMicros(10), LevelDbm: -80})
	h.push(EnergySample{When: engine.FromMicros(20), LevelDbm: -70})

	var seen []engine.Clock
	h.Walk(engine.FromMicros(20), func(s EnergySample) bool {
		seen = append(seen, s.When)
		return true
	})
	require.Equal(t, []engine.Clock{engine.FromMicros(10), 0}, seen)
}

func TestWalkStopsEarlyWhenFnReturnsFalse(t *testing.T) {
	h := NewEnergyHistory(0)
	h.push(EnergySample{When: engine.FromMicros(10), LevelDbm: -80})
	h.push(EnergySample{When: engine.FromMicros(20), LevelDbm: -70})

	calls := 0
	h.Walk(engine.ClockInfinity, func(s EnergySample) bool {
		calls++
		return false
	})
	require.Equal(t, 1, calls)
}
