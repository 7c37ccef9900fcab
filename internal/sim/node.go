// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package sim

import (
	"github.com/heistp/rawcell/internal/engine"
)

// NodeID identifies a Node. 0 is always the AP.
type NodeID int

// APID is the AP's fixed identity.
const APID NodeID = 0

// APGroup is the Group value AP nodes carry: never equal to any valid
// group-in-cycle value, so the AP never "has a turn" under the RAW
// schedule.
const APGroup = -1

// MACState is a station's CSMA/CA state.
type MACState int

const (
	StateIdle MACState = iota
	StateCCA
	StateDIFS
	StateBackoff
	StateTX
)

func (s MACState) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateCCA:
		return "CCA"
	case StateDIFS:
		return "DIFS"
	case StateBackoff:
		return "BACKOFF"
	case StateTX:
		return "TX"
	default:
		return "?"
	}
}

// Node is a single station (or the AP, at ID 0). Medium and AP are kept
// as direct references rather than looked up through an arena-by-index
// indirection: in Go, sharing pointers to heap-allocated Nodes is the
// idiomatic and safe choice, since the scheduler already guarantees only
// one goroutine ever mutates shared state at a time.
type Node struct {
	ID    NodeID
	X, Y  float64
	Group int

	state          MACState
	backoffCounter int
	nextPacketID   int

	energy *EnergyHistory
	medium *Medium
	ap     *Node

	cfg *Config
	log *Logger

	// Current per-phase event handles, used so a cross-node energy
	// callback can find the node's difsAction/backoffAction, if in that
	// state and not yet triggered.
	channelIdle   *engine.Event
	difsAction    *engine.Event
	backoffAction *engine.Event
	ackAction     *engine.Event

	haveLastSuccess bool
	lastSuccessAt   engine.Clock
}

// NewNode returns a new Node. AP nodes are constructed with Group
// APGroup and no ap reference (ap == nil signals "this Node is the AP").
func NewNode(id NodeID, x, y float64, group int, cfg *Config, log *Logger, medium *Medium, ap *Node, now engine.Clock) *Node {
	return &Node{
		ID:     id,
		X:      x,
		Y:      y,
		Group:  group,
		state:  StateIdle,
		energy: NewEnergyHistory(now),
		medium: medium,
		ap:     ap,
		cfg:    cfg,
		log:    log,
	}
}

// IsAP reports whether this Node is the access point.
func (n *Node) IsAP() bool { return n.ap == nil }

// setState transitions the node's MAC state. State changes themselves are
// not separately logged (the per-transition event kinds already carry
// that information); this just centralizes the field write.
func (n *Node) setState(s MACState) { n.state = s }

// currentLevel returns the node's most recently observed received-power
// level, used by CCA.
func (n *Node) currentLevel() float64 {
	return n.energy.Current().LevelDbm
}

// increaseReceivedEnergy applies a received-power increase from a peer
// starting transmission, logs it, and wakes any DIFS/backoff wait that the
// new level invalidates.
func (n *Node) increaseReceivedEnergy(p engine.Proc, now engine.Clock, delta float64) {
	prev := n.currentLevel()
	s := n.energy.Increase(now, delta)
	n.log.LogNode(KindEnergyIncrease, now, n.ID, LvlEnergy, "%.3f -> %.3f [ %d ]", prev, s.LevelDbm, s.ActiveTransmitters)
	if s.LevelDbm <= CSThreshold {
		return
	}
	switch n.state {
	case StateDIFS:
		if n.difsAction != nil && !n.difsAction.Triggered() {
			p.Succeed(n.difsAction)
		}
	case StateBackoff:
		if n.backoffAction != nil && !n.backoffAction.Triggered() {
			p.Succeed(n.backoffAction)
		}
	}
}

// decreaseReceivedEnergy applies a received-power decrease from a peer
// stopping transmission, logs it, and wakes a CCA wait that the medium
// going idle resolves.
func (n *Node) decreaseReceivedEnergy(p engine.Proc, now engine.Clock, delta float64) {
	prev := n.currentLevel()
	s := n.energy.Decrease(now, delta)
	n.log.LogNode(KindEnergyDecrease, now, n.ID, LvlEnergy, "%.3f -> %.3f [ %d ]", prev, s.LevelDbm, s.ActiveTransmitters)
	if s.LevelDbm > CSThreshold {
		return
	}
	if n.state == StateCCA && n.channelIdle != nil && !n.channelIdle.Triggered() {
		p.Succeed(n.channelIdle)
	}
}
