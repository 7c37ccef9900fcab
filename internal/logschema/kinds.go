// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

// Package logschema holds the event-log kind vocabulary shared by the
// simulator (producer) and the analyzer (consumer). Keeping these as a
// shared package, rather than duplicating string literals on both sides,
// is what makes the schema an enforceable contract instead of an
// implicit convention.
package logschema

// Kind is one event-log line kind.
const (
	PacketGenerated  = "+"
	GroupDefer       = "D" // also reused for retry-limit drop, context-dependent
	GroupProceed     = "G"
	BackoffDrawn     = "Cw"
	SlotAbort        = "A"
	WaitIdleStart    = "Ms"
	WaitIdleEnd      = "Mi"
	DifsStart        = "MDs"
	DifsInterrupted  = "MDi"
	DifsDone         = "MDo"
	BackoffStart     = "Bs"
	BackoffInterrupt = "Bi"
	BackoffDone      = "Bo"
	TxStart          = "Ts"
	TxEnd            = "To"
	RxStart          = "Rs"
	RxEnd            = "Ro"
	PER              = "PER"
	Dropped          = "d"
	Received         = "r"
	SifsWait         = "MS"
	Success          = "S"
	AckTimeout       = "Ato"
	EnergyIncrease   = "Ei"
	EnergyDecrease   = "Ed"
	PowerMatrix      = "PM"

	InputParseError    = "InputParseError"
	IOError            = "IOError"
	NumericDomainError = "NumericDomainError"
	InvariantViolation = "InvariantViolation"
)

// Verbosity levels: a line is written only if its level is <= the
// configured verbosity. Nearly the entire per-packet trace (+/D/A/Ms/Mi/
// MDs/MDi/MDo/Bs/Bi/Bo/Ts/To/S/Ato/Rs/Ro/d/r/MS) is default-on at
// verbosity 0; the group-schedule diagnostics G and Cw step up to 1;
// energy deltas and PER are the next tier at 2; the power matrix dump is
// the noisiest and needs verbosity 3 or above.
const (
	LvlOutcome = 0
	LvlMAC     = 0
	LvlGroup   = 1
	LvlPER     = 2
	LvlEnergy  = 2
	LvlMatrix  = 3
)
