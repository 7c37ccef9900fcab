// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package sim

import "github.com/heistp/rawcell/internal/logschema"

// Local aliases for the shared log schema, so call sites in this package
// read as plain identifiers instead of repeating the logschema qualifier
// on every Log/LogNode call.
const (
	KindPacketGenerated  = logschema.PacketGenerated
	KindGroupDefer       = logschema.GroupDefer
	KindGroupProceed     = logschema.GroupProceed
	KindBackoffDrawn     = logschema.BackoffDrawn
	KindSlotAbort        = logschema.SlotAbort
	KindWaitIdleStart    = logschema.WaitIdleStart
	KindWaitIdleEnd      = logschema.WaitIdleEnd
	KindDifsStart        = logschema.DifsStart
	KindDifsInterrupted  = logschema.DifsInterrupted
	KindDifsDone         = logschema.DifsDone
	KindBackoffStart     = logschema.BackoffStart
	KindBackoffInterrupt = logschema.BackoffInterrupt
	KindBackoffDone      = logschema.BackoffDone
	KindTxStart          = logschema.TxStart
	KindTxEnd            = logschema.TxEnd
	KindRxStart          = logschema.RxStart
	KindRxEnd            = logschema.RxEnd
	KindPER              = logschema.PER
	KindDropped          = logschema.Dropped
	KindReceived         = logschema.Received
	KindSifsWait         = logschema.SifsWait
	KindSuccess          = logschema.Success
	KindAckTimeout       = logschema.AckTimeout
	KindEnergyIncrease   = logschema.EnergyIncrease
	KindEnergyDecrease   = logschema.EnergyDecrease
	KindPowerMatrix      = logschema.PowerMatrix
)

const (
	LvlOutcome = logschema.LvlOutcome
	LvlMAC     = logschema.LvlMAC
	LvlGroup   = logschema.LvlGroup
	LvlPER     = logschema.LvlPER
	LvlEnergy  = logschema.LvlEnergy
	LvlMatrix  = logschema.LvlMatrix
)
