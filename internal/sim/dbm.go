// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package sim

import "math"

// dbmToMw converts a dBm value to linear milliwatts.
func dbmToMw(dbm float64) float64 {
	return math.Pow(10, dbm/10)
}

// mwToDbm converts linear milliwatts back to dBm.
func mwToDbm(mw float64) float64 {
	return 10 * math.Log10(mw)
}

// sumDbm adds two dBm quantities by summing their linear-milliwatt
// equivalents.
func sumDbm(a, b float64) float64 {
	return mwToDbm(dbmToMw(a) + dbmToMw(b))
}

// subDbm subtracts b from a in linear milliwatts. Callers must only invoke
// this when a is known to exceed b (active transmitter count above one);
// the last-transmitter-off case is handled separately by snapping to
// BackgroundNoise rather than by calling subDbm, to avoid the NaN/-Inf that
// subtracting two near-equal dBm values in linear space would otherwise
// produce.
func subDbm(a, b float64) float64 {
	d := dbmToMw(a) - dbmToMw(b)
	if d <= 0 {
		// Numeric domain error: floating point error made an expected
		// positive difference non-positive. Clamp to the noise floor
		// rather than propagating -Inf/NaN.
		return BackgroundNoise
	}
	return mwToDbm(d)
}

// pathLoss computes the free-space-like path loss in dB for a distance d
// (meters):
// loss = -10*log10(2*G*h^4) + 40*log10(d); for d==0, loss is 0.
func pathLoss(d float64) float64 {
	if d <= 0 {
		return 0
	}
	return -10*math.Log10(2*AntennaGain*math.Pow(AntennaHeight, 4)) + 40*math.Log10(d)
}

// clampProbability clamps a probability to [0,1], guarding against the
// small floating-point excursions erfc/pow can produce near the domain
// edges.
func clampProbability(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// clampPower clamps a power in dBm to be no lower than BackgroundNoise.
func clampPower(p float64) float64 {
	if p < BackgroundNoise {
		return BackgroundNoise
	}
	return p
}
