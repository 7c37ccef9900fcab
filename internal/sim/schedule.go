// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package sim

import "github.com/heistp/rawcell/internal/engine"

// cycleAndGroup computes the RAW cycle index and the group-in-cycle for
// time now:
// cycle = floor(t/(G*S)); group_in_cycle = floor((t - cycle*G*S)/S).
func cycleAndGroup(now engine.Clock, numGroups int, slotSize engine.Clock) (cycle int64, groupInCycle int) {
	cycleLen := engine.Clock(numGroups) * slotSize
	cycle = int64(now / cycleLen)
	rem := now - engine.Clock(cycle)*cycleLen
	groupInCycle = int(rem / slotSize)
	return
}

// endOfOwnSlot returns the instant the station's current RAW slot ends,
// given the cycle and its own group:
// endOfSlot = (cycle*G + own_group + 1)*S.
func endOfOwnSlot(cycle int64, ownGroup, numGroups int, slotSize engine.Clock) engine.Clock {
	return engine.Clock(cycle*int64(numGroups)+int64(ownGroup)+1) * slotSize
}

// timeUntilGroup returns the wait needed, from now, until ownGroup next
// becomes the active group-in-cycle. Only valid when the caller already
// knows cur != ownGroup (the group-schedule gate at packet generation,
// which only calls this when the station isn't in its own slot); a
// station aborting out of its own current slot must instead use
// waitForNextCycleSlot, which always waits a full cycle ahead.
func timeUntilGroup(now engine.Clock, ownGroup, numGroups int, slotSize engine.Clock) engine.Clock {
	cycle, cur := cycleAndGroup(now, numGroups, slotSize)
	if cur == ownGroup {
		return 0
	}
	cycleLen := engine.Clock(numGroups) * slotSize
	cycleStart := engine.Clock(cycle) * cycleLen
	target := cycleStart + engine.Clock(ownGroup)*slotSize
	if ownGroup <= cur {
		target += cycleLen
	}
	return target - now
}

// waitForNextCycleSlot returns the wait, from now, until ownGroup's slot
// in the next schedule cycle: ((cycle+1)*G + own_group)*S - now. Used
// when a station aborts out of its own current slot (it is still inside
// that slot, so timeUntilGroup's cur==ownGroup case doesn't apply) and
// must wait a full cycle for its next turn.
func waitForNextCycleSlot(now engine.Clock, ownGroup, numGroups int, slotSize engine.Clock) engine.Clock {
	cycle, _ := cycleAndGroup(now, numGroups, slotSize)
	cycleLen := engine.Clock(numGroups) * slotSize
	target := engine.Clock(cycle+1)*cycleLen + engine.Clock(ownGroup)*slotSize
	return target - now
}
