// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package sim

import (
	"math"
	"math/rand"

	"github.com/heistp/rawcell/internal/engine"
)

// Run is the station's top-level per-packet loop. It never returns on
// its own; the driving Scheduler stops calling RunUntil past the
// configured run length, which simply leaves this process (and its
// descendants) suspended forever.
func (n *Node) Run(p engine.Proc) {
	for {
		n.generateAndSend(p)
	}
}

// generateAndSend runs steps 1 through 5 of the station process for one
// packet.
func (n *Node) generateAndSend(p engine.Proc) {
	// Step 5: back to IDLE once this packet is done, however it ends.
	defer n.setState(StateIdle)

	// Step 1: inter-arrival.
	delta := nextArrival(n.cfg.Rand, n.cfg.Rate)
	p.Timeout(delta)
	pktID := n.nextPacketID
	n.nextPacketID++
	now := p.Now()
	n.log.LogNode(KindPacketGenerated, now, n.ID, LvlOutcome, "%d", pktID)
	n.cfg.Metrics.Generated()

	// Step 2: group schedule gate.
	var endOfSlot engine.Clock
	cycle, groupInCycle := cycleAndGroup(now, n.cfg.NumGroups, n.cfg.SlotSize)
	if groupInCycle != n.Group {
		wait := timeUntilGroup(now, n.Group, n.cfg.NumGroups, n.cfg.SlotSize)
		n.log.LogNode(KindGroupDefer, now, n.ID, LvlMAC, "%d %d", pktID, wait.Micros())
		p.Timeout(wait)
		endOfSlot = p.Now() + n.cfg.SlotSize
	} else {
		endOfSlot = endOfOwnSlot(cycle, n.Group, n.cfg.NumGroups, n.cfg.SlotSize)
		n.log.LogNode(KindGroupProceed, now, n.ID, LvlGroup, "%d %d", pktID, endOfSlot.Micros())
	}

	// Step 3: initial contention-window draw.
	cw := CwMin
	attempts := 0
	needsBackoff := n.haveLastSuccess && n.lastSuccessAt == p.Now()
	n.backoffCounter = drawBackoff(n.cfg.Rand, cw)
	n.log.LogNode(KindBackoffDrawn, p.Now(), n.ID, LvlGroup, "%d %d", pktID, cw)

	// Step 4: inner attempt loop.
	for {
		now = p.Now()

		// a. slot-end abort.
		if now > endOfSlot {
			n.log.LogNode(KindSlotAbort, now, n.ID, LvlMAC, "%d", pktID)
			return
		}

		// b. CCA.
		n.setState(StateCCA)
		if n.currentLevel() > CSThreshold {
			needsBackoff = true
			n.log.LogNode(KindWaitIdleStart, p.Now(), n.ID, LvlMAC, "%d", pktID)
			n.channelIdle = p.NewEvent()
			p.Select(n.channelIdle, engine.ClockInfinity)
			n.log.LogNode(KindWaitIdleEnd, p.Now(), n.ID, LvlMAC, "%d", pktID)
		}

		// c. DIFS.
		n.setState(StateDIFS)
		n.log.LogNode(KindDifsStart, p.Now(), n.ID, LvlMAC, "%d", pktID)
		n.difsAction = p.NewEvent()
		fired := p.Select(n.difsAction, Difs)
		if fired {
			n.log.LogNode(KindDifsInterrupted, p.Now(), n.ID, LvlMAC, "%d", pktID)
			needsBackoff = true
			n.setState(StateIdle)
			continue
		}
		n.log.LogNode(KindDifsDone, p.Now(), n.ID, LvlMAC, "%d", pktID)

		// d. Backoff.
		if needsBackoff {
			n.setState(StateBackoff)
			backoffStart := p.Now()
			n.log.LogNode(KindBackoffStart, backoffStart, n.ID, LvlMAC, "%d %d", pktID, n.backoffCounter)
			n.backoffAction = p.NewEvent()
			fired = p.Select(n.backoffAction, engine.Clock(n.backoffCounter)*SlotTime)
			n.log.LogNode(KindBackoffInterrupt, p.Now(), n.ID, LvlMAC, "%d", pktID)
			if fired {
				elapsedSlots := int((p.Now() - backoffStart) / SlotTime)
				n.backoffCounter -= elapsedSlots
				if n.backoffCounter < 0 {
					n.backoffCounter = 0
				}
				n.setState(StateIdle)
				continue
			}
			n.log.LogNode(KindBackoffDone, p.Now(), n.ID, LvlMAC, "%d", pktID)
		}

		// e. Slot fit check.
		if p.Now()+DataPacketTime > endOfSlot {
			n.log.LogNode(KindSlotAbort, p.Now(), n.ID, LvlMAC, "%d", pktID)
			wait := waitForNextCycleSlot(p.Now(), n.Group, n.cfg.NumGroups, n.cfg.SlotSize)
			p.Timeout(wait)
			return
		}

		// f. Transmit.
		n.setState(StateTX)
		n.transmit(p, pktID)

		// g. Wait ack.
		n.ackAction = p.NewEvent()
		fired = p.Select(n.ackAction, AckTimeout)
		if fired {
			n.log.LogNode(KindSuccess, p.Now(), n.ID, LvlOutcome, "%d", pktID)
			n.lastSuccessAt = p.Now()
			n.haveLastSuccess = true
			n.cfg.Metrics.Delivered()
			return
		}
		n.log.LogNode(KindAckTimeout, p.Now(), n.ID, LvlMAC, "%d [ack]", pktID)
		attempts++
		if attempts > RetryLimit {
			n.log.LogNode(KindGroupDefer, p.Now(), n.ID, LvlMAC, "%d", pktID)
			n.cfg.Metrics.RetryLimitDropped()
			return
		}
		cw = min(2*(cw+1)-1, CwMax)
		n.backoffCounter = drawBackoff(n.cfg.Rand, cw)
		needsBackoff = true
		n.log.LogNode(KindBackoffDrawn, p.Now(), n.ID, LvlGroup, "%d %d", pktID, cw)
	}
}

// nextArrival draws the inter-arrival time from Exponential(rate), where
// rate is in packets per microsecond.
func nextArrival(r *rand.Rand, rate float64) engine.Clock {
	us := r.ExpFloat64() / rate
	return engine.FromMicros(int64(math.Round(us)))
}

// drawBackoff draws Uniform{0..cw}.
func drawBackoff(r *rand.Rand, cw int) int {
	return r.Intn(cw + 1)
}
