// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package analyze

import (
	"math"
	"strconv"

	"github.com/heistp/rawcell/internal/logschema"
)

// Stats accumulates the per-packet sets and frame-level counters needed
// for the analyzer's report. The shape of this accumulator — dedup sets
// keyed by (origin, pktId) for packet-level counts, plain running totals
// for frame-level attempt counts — mirrors the reference analyzer this
// was ported from line for line (genPackets, mediumAccessPackets,
// receiverSuccess, totalAttempts, totalAckAttempts,
// receivedWithCollision/droppedWithCollision).
type Stats struct {
	genTime        map[string]int64 // packetKey -> generation instant
	aborted        map[string]bool
	reachedMedium  map[string]bool // first MDs seen
	forwardSuccess map[string]int64 // first forward "r" instant
	ackSuccess     map[string]bool // any "r [ack]" seen

	generated int

	totalAttempts    int // count of data "To" (completed frame transmissions)
	totalAckAttempts int // count of ack "To"

	receivedWithoutCollision int
	receivedWithCollision    int
	droppedWithCollision     int
}

// NewStats returns an empty Stats accumulator.
func NewStats() *Stats {
	return &Stats{
		genTime:        make(map[string]int64),
		aborted:        make(map[string]bool),
		reachedMedium:  make(map[string]bool),
		forwardSuccess: make(map[string]int64),
		ackSuccess:     make(map[string]bool),
	}
}

// Add folds one Event into the running totals.
func (st *Stats) Add(ev Event) {
	switch ev.Kind {
	case logschema.PacketGenerated:
		if len(ev.Fields) < 2 {
			return
		}
		st.generated++
		st.genTime[packetKey(ev.Fields[0], ev.Fields[1])] = ev.Now

	case logschema.SlotAbort:
		if len(ev.Fields) < 2 {
			return
		}
		st.aborted[packetKey(ev.Fields[0], ev.Fields[1])] = true

	case logschema.DifsStart:
		if len(ev.Fields) < 2 {
			return
		}
		k := packetKey(ev.Fields[0], ev.Fields[1])
		if !st.reachedMedium[k] {
			st.reachedMedium[k] = true
		}

	case logschema.TxEnd:
		// Node-scoped bodies start with the logging node's own id: a
		// completed data frame ("_id_ pktId") has 2 fields, a completed
		// ack frame ("_id_ _src_ pktId [ack]") has 4.
		switch len(ev.Fields) {
		case 2:
			st.totalAttempts++
		case 4:
			st.totalAckAttempts++
		}

	case logschema.Received:
		st.addReceived(ev)

	case logschema.Dropped:
		st.addDropped(ev)
	}
}

// addReceived records a successful "r" line: data (AP-scoped, "_id_ _src_
// pktId maxSimTx") or ack (station-scoped, "_id_ pktId [ack] maxSimTx").
func (st *Stats) addReceived(ev Event) {
	if len(ev.Fields) < 4 {
		return
	}
	if ev.Fields[2] == "[ack]" {
		st.ackSuccess[packetKey(ev.Fields[0], ev.Fields[1])] = true
		return
	}
	k := packetKey(ev.Fields[1], ev.Fields[2])
	if _, ok := st.forwardSuccess[k]; !ok {
		st.forwardSuccess[k] = ev.Now
	}
	if maxSimTx(ev.Fields[3]) > 1 {
		st.receivedWithCollision++
	} else {
		st.receivedWithoutCollision++
	}
}

// addDropped records a "d" data-frame line, for the collision breakdown.
// Ack drops don't contribute to the collision breakdown (the reference
// analyzer only tallies droppedWithCollision for data frames).
func (st *Stats) addDropped(ev Event) {
	if len(ev.Fields) < 4 || ev.Fields[2] == "[ack]" {
		return
	}
	if maxSimTx(ev.Fields[3]) > 1 {
		st.droppedWithCollision++
	}
}

func maxSimTx(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func packetKey(id, pktID string) string { return id + ":" + pktID }

// Report is the computed, human-readable summary of a Stats accumulation.
type Report struct {
	Generated             int
	Aborted               int
	ReachedMediumAccess   int
	Delivered             int
	DeliveryRateGenerated float64
	DeliveryRateReached   float64
	ForwardSuccessRate    float64
	BackwardSuccessRate   float64
	BidirectionalRate     float64
	MeanDelayUs           float64
	StdevDelayUs          float64
	ReceivedNoCollision   int
	ReceivedWithCollision int
	DroppedWithCollision  int
	CollisionFraction     float64
}

// Report computes the final Report from the accumulated Stats, following
// the reference analyzer's formulas.
func (st *Stats) Report() Report {
	r := Report{
		Generated:             st.generated,
		Aborted:               len(st.aborted),
		ReachedMediumAccess:   len(st.reachedMedium),
		Delivered:             len(st.forwardSuccess),
		ReceivedNoCollision:   st.receivedWithoutCollision,
		ReceivedWithCollision: st.receivedWithCollision,
		DroppedWithCollision:  st.droppedWithCollision,
	}
	if st.generated > 0 {
		r.DeliveryRateGenerated = float64(r.Delivered) / float64(st.generated)
	}
	if r.ReachedMediumAccess > 0 {
		r.DeliveryRateReached = float64(r.Delivered) / float64(r.ReachedMediumAccess)
	}
	if st.totalAttempts > 0 {
		r.ForwardSuccessRate = float64(st.totalAckAttempts) / float64(st.totalAttempts)
		r.BidirectionalRate = float64(len(st.ackSuccess)) / float64(st.totalAttempts)
	}
	if st.totalAckAttempts > 0 {
		r.BackwardSuccessRate = float64(len(st.ackSuccess)) / float64(st.totalAckAttempts)
	}
	total := st.receivedWithoutCollision + st.receivedWithCollision + st.droppedWithCollision
	if total > 0 {
		r.CollisionFraction = float64(st.receivedWithCollision+st.droppedWithCollision) / float64(st.totalAttempts)
	}
	if n := len(st.forwardSuccess); n > 0 {
		var sum, sq float64
		for k, recvAt := range st.forwardSuccess {
			d := float64(recvAt - st.genTime[k])
			sum += d
		}
		mean := sum / float64(n)
		for k, recvAt := range st.forwardSuccess {
			d := float64(recvAt - st.genTime[k])
			sq += (d - mean) * (d - mean)
		}
		r.MeanDelayUs = mean
		if n > 1 {
			r.StdevDelayUs = math.Sqrt(sq / float64(n-1))
		}
	}
	return r
}
