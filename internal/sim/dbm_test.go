// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDbmMwRoundTrip(t *testing.T) {
	for _, dbm := range []float64{-95, -70, -40, 0, 15} {
		require.InDelta(t, dbm, mwToDbm(dbmToMw(dbm)), 1e-9)
	}
}

func TestSumDbmEqualPowersIsPlusThreeDb(t *testing.T) {
	got := sumDbm(-70, -70)
	require.InDelta(t, -70+10*math.Log10(2), got, 1e-9)
}

func TestSubDbmRecoversOriginalLevel(t *testing.T) {
	sum := sumDbm(-70, -80)
	got := subDbm(sum, -80)
	require.InDelta(t, -70, got, 0.01)
}

func TestSubDbmClampsNonPositiveDifferenceToNoiseFloor(t *testing.T) {
	got := subDbm(-70, -70)
	require.Equal(t, BackgroundNoise, got)

	got = subDbm(-80, -70)
	require.Equal(t, BackgroundNoise, got)
}

func TestPathLossZeroDistanceIsZero(t *testing.T) {
	require.Equal(t, 0.0, pathLoss(0))
	require.Equal(t, 0.0, pathLoss(-1))
}

func TestPathLossIncreasesWithDistance(t *testing.T) {
	near := pathLoss(10)
	far := pathLoss(100)
	require.Greater(t, far, near)
	// 40*log10(10x) - 40*log10(x) = 40 for a 10x distance increase.
	require.InDelta(t, 40, far-near, 1e-9)
}

func TestClampProbability(t *testing.T) {
	require.Equal(t, 0.0, clampProbability(-0.5))
	require.Equal(t, 1.0, clampProbability(1.5))
	require.Equal(t, 0.5, clampProbability(0.5))
}

func TestClampPower(t *testing.T) {
	require.Equal(t, BackgroundNoise, clampPower(-120))
	require.Equal(t, -50.0, clampPower(-50))
}

func TestPathLossMatchesFormula(t *testing.T) {
	d := 250.0
	want := -10*math.Log10(2*AntennaGain*math.Pow(AntennaHeight, 4)) + 40*math.Log10(d)
	require.InDelta(t, want, pathLoss(d), 1e-9)
}
