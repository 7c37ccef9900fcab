// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package sim

import "github.com/heistp/rawcell/internal/engine"

// Timing constants, all in microseconds unless noted otherwise. These are
// the fixed physical/MAC-layer parameters of the simulated cell; they are
// not configurable from the CLI (only topology, schedule, and traffic
// parameters are — see Config).
const (
	SlotTime = engine.Clock(52 * engine.Microsecond)
	Sifs     = engine.Clock(160 * engine.Microsecond)
	Difs     = Sifs + 2*SlotTime // 264us

	SymbolDuration = engine.Clock(40 * engine.Microsecond)
	BitsPerSymbol  = 26

	// DataPacketSize and AckSize are whole symbol counts computed from a
	// byte length (bytes*8/BitsPerSymbol, integer division); both divide
	// evenly for the byte sizes used here.
	DataPacketSize = 520 * 8 / BitsPerSymbol // 160 symbols
	AckSize        = 39 * 8 / BitsPerSymbol  // 12 symbols

	DataPacketTime = engine.Clock(DataPacketSize) * SymbolDuration
	AckPacketTime  = engine.Clock(AckSize) * SymbolDuration

	AckTimeout = Sifs + AckPacketTime + SlotTime

	RetryLimit = 7
	CwMin      = 15
	CwMax      = 1023
)

// Power constants, in dBm except AntennaGain/AntennaHeight which are plain
// scale factors used by the path-loss formula.
const (
	CSThreshold       = -70.0
	BackgroundNoise   = -95.0
	TransmissionPower = 15.0
	AntennaGain       = 3.0
	AntennaHeight     = 1.0
)
