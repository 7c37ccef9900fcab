// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package sim

import (
	"fmt"
	"math"

	"github.com/heistp/rawcell/internal/engine"
)

// receiveData is the AP's reception process for a data frame, spawned by
// the transmitting station's transmit.
func (ap *Node) receiveData(p engine.Proc, src *Node, pktID int) {
	ap.receive(p, src, pktID, false, DataPacketTime)
}

// receiveAck is a station's reception process for the AP's ack frame,
// spawned by the AP's transmitAck.
func (n *Node) receiveAck(p engine.Proc, src *Node, pktID int) {
	n.receive(p, src, pktID, true, AckPacketTime)
}

// receive is the shared time-integrated BPSK symbol-error reception model
// for both data and ack frames.
func (self *Node) receive(p engine.Proc, src *Node, pktID int, isAck bool, frameTime engine.Clock) {
	transmissionStart := p.Now()
	self.log.LogNode(KindRxStart, transmissionStart, self.ID, LvlMAC, rxTag(isAck, src.ID, pktID))
	p.Timeout(frameTime)
	transmissionEnd := p.Now()
	self.log.LogNode(KindRxEnd, transmissionEnd, self.ID, LvlMAC, rxTag(isAck, src.ID, pktID))

	receivingPower := self.medium.GetPower(src.ID, self.ID)
	receptionProbability := 1.0
	currentStateEnd := transmissionEnd
	maxSimTx := 0

	self.energy.Walk(transmissionEnd, func(s EnergySample) bool {
		var dur engine.Clock
		last := false
		if s.When <= transmissionStart {
			dur = currentStateEnd - transmissionStart
			currentStateEnd = transmissionStart
			last = true
		} else {
			dur = currentStateEnd - s.When
			currentStateEnd = s.When
		}
		symbols := float64(dur) / float64(SymbolDuration)
		interferenceDbm := subDbm(s.LevelDbm, receivingPower)
		sinrDbm := receivingPower - interferenceDbm
		if s.ActiveTransmitters > maxSimTx {
			maxSimTx = s.ActiveTransmitters
		}
		pSymErr := math.Erfc(math.Sqrt(dbmToMw(sinrDbm))) / 2
		receptionProbability *= math.Pow(1-pSymErr, symbols)
		return !last
	})
	receptionProbability = clampProbability(receptionProbability)

	self.log.LogNode(KindPER, transmissionEnd, self.ID, LvlPER, "%s %d %.6f", idTag(src.ID), pktID, receptionProbability)

	u := self.cfg.Rand.Float64()
	if u > receptionProbability {
		self.log.LogNode(KindDropped, transmissionEnd, self.ID, LvlMAC, dropRecvTag(isAck, src.ID, pktID, maxSimTx))
		if !isAck {
			self.cfg.Metrics.Dropped()
		}
		return
	}
	self.log.LogNode(KindReceived, transmissionEnd, self.ID, LvlMAC, dropRecvTag(isAck, src.ID, pktID, maxSimTx))

	if isAck {
		if self.ackAction != nil && !self.ackAction.Triggered() {
			p.Succeed(self.ackAction)
		}
		return
	}

	self.log.LogNode(KindSifsWait, p.Now(), self.ID, LvlMAC, "%s %d [ack]", idTag(src.ID), pktID)
	p.Timeout(Sifs)
	self.transmitAck(p, src, pktID)
}

func rxTag(isAck bool, src NodeID, pktID int) string {
	if isAck {
		return fmt.Sprintf("%s %d [ack]", idTag(src), pktID)
	}
	return fmt.Sprintf("%s %d", idTag(src), pktID)
}

func dropRecvTag(isAck bool, src NodeID, pktID, maxSimTx int) string {
	if isAck {
		return fmt.Sprintf("%d [ack] %d", pktID, maxSimTx)
	}
	return fmt.Sprintf("%s %d %d", idTag(src), pktID, maxSimTx)
}
