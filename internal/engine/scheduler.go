// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

// Package engine implements the cooperative, single-threaded discrete-event
// scheduler the rest of the simulator is built on. It generalizes the
// teacher's round-robin Sim/node loop (a fixed set of goroutines handed off
// one at a time through channels) with two things that loop didn't need:
// dynamically spawned processes, and a one-shot "event" latch that composes
// with a timeout via Select. The concurrency invariant is unchanged: exactly
// one process goroutine is ever runnable at a time, so cross-process state
// mutation performed while "active" (i.e. not blocked in a channel receive)
// never races.
package engine

import "fmt"

// procID identifies a process for internal bookkeeping. Ids are assigned
// in start order; nothing else reads them.
type procID int

// Proc is the handle a running process uses to talk to the Scheduler. It
// generalizes a Timer/Send/Now/Logf/Shutdown style node interface down to
// Timeout/Event/Select/Spawn.
type Proc interface {
	// Now returns the process's most recently observed simulated time.
	Now() Clock
	// Timeout suspends the calling process until Now()+d.
	Timeout(d Clock)
	// NewEvent creates a fresh one-shot latch. It is tied to a process only
	// while that process waits on it in Select.
	NewEvent() *Event
	// Succeed triggers ev, waking any process blocked in Select(ev, ...).
	// A no-op if ev already fired (idempotent under repeated notification).
	Succeed(ev *Event)
	// Select suspends until either ev is Succeed()-ed or d elapses,
	// whichever is first; the loser does not fire. Returns true if ev won.
	Select(ev *Event, d Clock) bool
	// Spawn schedules a new process, starting at the current time, exactly
	// as if it had always been running.
	Spawn(fn func(Proc))
}

// Event is a one-shot latch, created with Proc.NewEvent. A process that
// waits on it in Select is recorded as its waiter, which Succeed wakes.
type Event struct {
	triggered bool
	waiter    *process
}

// Triggered reports whether Succeed has already fired this event.
func (e *Event) Triggered() bool { return e.triggered }

// process is the scheduler's private bookkeeping for one Proc.
type process struct {
	id       procID
	now      Clock
	wake     chan wakeSignal
	curWait  *waitSession
	finished bool
}

// wakeSignal is sent to a parked process to resume it.
type wakeSignal struct {
	now   Clock
	fired bool
}

// waitSession is allocated fresh for every Select call, and lets the
// scheduler tell a late-arriving loser (timeout after the event already
// fired, or vice versa) that it has nothing left to do.
type waitSession struct {
	resolved bool
}

// itemKind identifies what a readyItem represents.
type itemKind int

const (
	itemStart itemKind = iota
	itemTimeout
	itemEventFire
)

// readyItem is one entry in the scheduler's time-ordered ready queue. All
// suspension and resumption, including zero-delay spawns and immediate
// event fires, flows through this single queue so that ties at equal
// simulated time are broken by insertion order, as the determinism
// requirement demands.
type readyItem struct {
	at      Clock
	seq     uint64
	kind    itemKind
	proc    *process
	startFn func(Proc)
	wait    *waitSession // non-nil only for itemTimeout entries from Select
}

// Scheduler drives the simulation: a sorted ready queue plus a single
// handoff channel shared by whichever process is currently running.
type Scheduler struct {
	now      Clock
	ready    []readyItem
	seq      uint64
	yield    chan yieldMsg
	live     int
	nextID   procID
	err      error
	deadline Clock
}

// yieldMsg is sent by the currently-running process's goroutine when it
// either suspends (Timeout/Select) or returns (finished).
type yieldMsg struct {
	done bool
	err  error
}

// New returns a new, empty Scheduler.
func New() *Scheduler {
	return &Scheduler{
		yield: make(chan yieldMsg),
	}
}

// Now returns the scheduler's current simulated time.
func (s *Scheduler) Now() Clock { return s.now }

// Spawn schedules fn to start running at the current time. Safe to call
// before Run (to seed initial processes) or from within a running process
// (to spawn children, e.g. the AP's receive process).
func (s *Scheduler) Spawn(fn func(Proc)) {
	s.insert(readyItem{at: s.now, kind: itemStart, startFn: fn})
}

// insert adds an item to the sorted ready queue. The insertion point is
// found by scanning back from the tail past every item with a later
// timestamp, so items with equal timestamps stay in FIFO order.
func (s *Scheduler) insert(it readyItem) {
	s.seq++
	it.seq = s.seq
	i := len(s.ready)
	for i > 0 && (s.ready[i-1].at > it.at) {
		i--
	}
	s.ready = append(s.ready, readyItem{})
	copy(s.ready[i+1:], s.ready[i:])
	s.ready[i] = it
}

// pop removes and returns the earliest ready item.
func (s *Scheduler) pop() (readyItem, bool) {
	if len(s.ready) == 0 {
		return readyItem{}, false
	}
	it := s.ready[0]
	s.ready = s.ready[1:]
	return it, true
}

// RunUntil advances the simulation until simulated time reaches until, or
// until there is no pending work (timers, pending selects, or spawns). Any
// item past the deadline is left in the queue so a later RunUntil call (to
// a larger deadline) can still process it.
func (s *Scheduler) RunUntil(until Clock) error {
	s.deadline = until
	for {
		if len(s.ready) == 0 || s.ready[0].at > until {
			return s.err
		}
		it, _ := s.pop()
		s.now = it.at
		switch it.kind {
		case itemStart:
			s.runNew(it.startFn)
		case itemTimeout:
			if it.wait != nil && it.wait.resolved {
				continue // lost a Select race to the event branch
			}
			if it.wait != nil {
				it.wait.resolved = true
			}
			s.resume(it.proc, wakeSignal{now: it.at, fired: false})
		case itemEventFire:
			s.resume(it.proc, wakeSignal{now: it.at, fired: true})
		}
		if s.err != nil {
			return s.err
		}
	}
}

// runNew launches a brand-new process goroutine and blocks until it either
// suspends or finishes.
func (s *Scheduler) runNew(fn func(Proc)) {
	s.nextID++
	p := &process{id: s.nextID, now: s.now, wake: make(chan wakeSignal)}
	s.live++
	go func() {
		fn(&procHandle{s: s, p: p})
		s.yield <- yieldMsg{done: true}
	}()
	s.await(p)
}

// resume hands control back to an already-parked process and blocks until
// it suspends again or finishes.
func (s *Scheduler) resume(p *process, w wakeSignal) {
	if p.finished {
		return
	}
	p.now = w.now
	p.wake <- w
	s.await(p)
}

// await blocks on the shared yield channel, the one point in the whole
// scheduler where exactly one goroutine (the process that was just handed
// control) is the only thing running.
func (s *Scheduler) await(p *process) {
	msg := <-s.yield
	if msg.done {
		p.finished = true
		s.live--
	}
	if msg.err != nil && s.err == nil {
		s.err = msg.err
	}
}

// procHandle implements Proc for a single process, forwarding suspension
// requests to the owning Scheduler.
type procHandle struct {
	s *Scheduler
	p *process
}

func (h *procHandle) Now() Clock { return h.p.now }

func (h *procHandle) Timeout(d Clock) {
	if d < 0 {
		panic(fmt.Sprintf("engine: negative timeout %d", d))
	}
	at := addSat(h.p.now, d)
	h.s.insert(readyItem{at: at, kind: itemTimeout, proc: h.p})
	h.s.yield <- yieldMsg{}
	w := <-h.p.wake
	h.p.now = w.now
}

func (h *procHandle) NewEvent() *Event {
	return &Event{}
}

func (h *procHandle) Succeed(ev *Event) {
	if ev.triggered {
		return
	}
	ev.triggered = true
	w := ev.waiter
	if w == nil {
		return
	}
	ev.waiter = nil
	if w.curWait == nil || w.curWait.resolved {
		return
	}
	w.curWait.resolved = true
	h.s.insert(readyItem{at: h.s.now, kind: itemEventFire, proc: w})
}

func (h *procHandle) Select(ev *Event, d Clock) bool {
	if ev.triggered {
		return true
	}
	ws := &waitSession{}
	h.p.curWait = ws
	ev.waiter = h.p
	at := addSat(h.p.now, d)
	h.s.insert(readyItem{at: at, kind: itemTimeout, proc: h.p, wait: ws})
	h.s.yield <- yieldMsg{}
	w := <-h.p.wake
	h.p.now = w.now
	h.p.curWait = nil
	return w.fired
}

func (h *procHandle) Spawn(fn func(Proc)) {
	h.s.Spawn(fn)
}
