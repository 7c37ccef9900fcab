// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package sim

import (
	"fmt"
	"io"
	"math"

	"github.com/heistp/rawcell/internal/engine"
)

// Medium holds the shared received-power matrix and broadcasts energy
// changes to every registered node on transmission start/stop. The node
// list and power matrix are populated once during setup and are
// read-only during the run; nothing here is mutated concurrently with a
// run.
type Medium struct {
	nodes  []*Node
	power  [][]float64 // power[i][j] = received power at j of a transmission from i
}

// NewMedium returns an empty Medium.
func NewMedium() *Medium {
	return &Medium{}
}

// AddNode registers n and recomputes the power matrix against every
// previously registered node (including n itself), computed once at
// node insertion from free-space-like path loss.
func (m *Medium) AddNode(n *Node) {
	m.nodes = append(m.nodes, n)
	size := len(m.nodes)
	next := make([][]float64, size)
	for i := 0; i < size-1; i++ {
		next[i] = make([]float64, size)
		copy(next[i], m.power[i])
	}
	for i := 0; i < size; i++ {
		if next[i] == nil {
			next[i] = make([]float64, size)
		}
		a := m.nodes[i]
		for j := 0; j < size; j++ {
			b := m.nodes[j]
			d := distance(a.X, a.Y, b.X, b.Y)
			next[i][j] = TransmissionPower - pathLoss(d)
		}
	}
	m.power = next
}

func distance(x1, y1, x2, y2 float64) float64 {
	dx := x1 - x2
	dy := y1 - y2
	return math.Sqrt(dx*dx + dy*dy)
}

// GetPower returns the received power in dBm at dst of a transmission
// from src.
func (m *Medium) GetPower(src, dst NodeID) float64 {
	return m.power[src][dst]
}

// Nodes returns the registered nodes in insertion order.
func (m *Medium) Nodes() []*Node { return m.nodes }

// StartTransmission notifies every registered node, including the
// transmitter itself, that tx has begun transmitting — it hears its own
// signal. Iteration is in node-registration order, and every callback
// runs synchronously at the same simulated instant now.
func (m *Medium) StartTransmission(p engine.Proc, now engine.Clock, tx NodeID) {
	for _, n := range m.nodes {
		n.increaseReceivedEnergy(p, now, m.GetPower(tx, n.ID))
	}
}

// StopTransmission is the mirror of StartTransmission for the end of a
// transmission.
func (m *Medium) StopTransmission(p engine.Proc, now engine.Clock, tx NodeID) {
	for _, n := range m.nodes {
		n.decreaseReceivedEnergy(p, now, m.GetPower(tx, n.ID))
	}
}

// WritePowerMatrix writes one PM line per ordered pair of distinct
// registered nodes to log.
func (m *Medium) WritePowerMatrix(log *Logger, now engine.Clock) {
	for _, a := range m.nodes {
		for _, b := range m.nodes {
			if a.ID == b.ID {
				continue
			}
			log.Log(KindPowerMatrix, now, LvlMatrix, "%d -> %d @ %.3f", a.ID, b.ID, m.GetPower(a.ID, b.ID))
		}
	}
}

// WritePERDump writes one line per ordered pair (i,j), "j->i j i value",
// including self-pairs.
func (m *Medium) WritePERDump(w io.Writer) {
	for _, i := range m.nodes {
		for _, j := range m.nodes {
			fmt.Fprintf(w, "%d->%d %d %d %.3f\n", j.ID, i.ID, j.ID, i.ID, m.GetPower(j.ID, i.ID))
		}
	}
}
