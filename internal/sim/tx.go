// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package sim

import "github.com/heistp/rawcell/internal/engine"

// transmit is the station's data transmission. The AP's receiveData
// process is spawned before the caller's own timeout(DataPacketTime), so
// it begins at the same instant transmission starts.
func (n *Node) transmit(p engine.Proc, pktID int) {
	now := p.Now()
	n.log.LogNode(KindTxStart, now, n.ID, LvlMAC, "%d", pktID)
	n.medium.StartTransmission(p, now, n.ID)
	src := n
	p.Spawn(func(child engine.Proc) {
		n.ap.receiveData(child, src, pktID)
	})
	p.Timeout(DataPacketTime)
	now = p.Now()
	n.log.LogNode(KindTxEnd, now, n.ID, LvlMAC, "%d", pktID)
	n.medium.StopTransmission(p, now, n.ID)
}

// transmitAck is the AP's ack transmission back to station.
func (ap *Node) transmitAck(p engine.Proc, station *Node, pktID int) {
	now := p.Now()
	ap.log.LogNode(KindTxStart, now, ap.ID, LvlMAC, "%s %d [ack]", idTag(station.ID), pktID)
	ap.medium.StartTransmission(p, now, ap.ID)
	p.Spawn(func(child engine.Proc) {
		station.receiveAck(child, ap, pktID)
	})
	p.Timeout(AckPacketTime)
	now = p.Now()
	ap.medium.StopTransmission(p, now, ap.ID)
	ap.log.LogNode(KindTxEnd, now, ap.ID, LvlMAC, "%s %d [ack]", idTag(station.ID), pktID)
}
