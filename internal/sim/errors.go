// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package sim

import "fmt"

// InputParseError reports a malformed groups file or log line.
type InputParseError struct {
	Source string
	Line   int
	Msg    string
}

func (e *InputParseError) Error() string {
	return fmt.Sprintf("InputParseError: %s:%d: %s", e.Source, e.Line, e.Msg)
}

// IOError reports that a required file could not be opened.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("IOError: %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// NumericDomainError reports degenerate SINR math that was contained by a
// clamp rather than propagated as NaN/-Inf. This is recorded, not fatal:
// the snap-to-BACKGROUND_NOISE and clamp rules in dbm.go already produce
// a sane value; constructing this error is for callers that want to
// surface the occurrence (e.g. in a future diagnostics mode) without
// treating it as an InvariantViolation.
type NumericDomainError struct {
	Op   string
	A, B float64
}

func (e *NumericDomainError) Error() string {
	return fmt.Sprintf("NumericDomainError: %s(%.3f, %.3f) out of domain", e.Op, e.A, e.B)
}

// InvariantViolation reports a state the simulator's invariants disallow,
// e.g. decrementing active_transmitters below zero. This is a fatal bug;
// callers panic with it rather than attempting to continue.
type InvariantViolation struct {
	Msg string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("InvariantViolation: %s", e.Msg)
}
