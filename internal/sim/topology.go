// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package sim

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/heistp/rawcell/internal/engine"
)

// Cell is the fully wired simulation scenario: scheduler, medium, AP, and
// stations, ready to Run. It is the one-shot topology and grouping
// setup.
type Cell struct {
	Sched   *engine.Scheduler
	Medium  *Medium
	AP      *Node
	Nodes   []*Node // stations only, in creation order
	Log     *Logger
	Config  Config
}

// NewCell builds a Cell from cfg and an optional list of station seeds. If
// seeds is nil, stations are placed uniformly at random within
// [0,Width]x[0,Height] and assigned groups round-robin.
func NewCell(cfg Config, log *Logger, seeds []StationSeed) *Cell {
	if cfg.Metrics == nil {
		cfg.Metrics = NoopMetrics
	}
	if seeds == nil {
		seeds = randomSeeds(cfg)
	}
	sched := engine.New()
	medium := NewMedium()

	ap := NewNode(APID, cfg.Width/2, cfg.Height/2, APGroup, &cfg, log, medium, nil, 0)
	medium.AddNode(ap)

	nodes := make([]*Node, 0, len(seeds))
	for i, s := range seeds {
		id := NodeID(i + 1)
		n := NewNode(id, s.X, s.Y, s.Group, &cfg, log, medium, ap, 0)
		medium.AddNode(n)
		nodes = append(nodes, n)
	}

	return &Cell{Sched: sched, Medium: medium, AP: ap, Nodes: nodes, Log: log, Config: cfg}
}

// Start spawns every station's top-level process. Call once before driving
// the scheduler with RunUntil.
func (c *Cell) Start() {
	for _, n := range c.Nodes {
		node := n
		c.Sched.Spawn(func(p engine.Proc) {
			node.Run(p)
		})
	}
}

// randomSeeds places NumSTAs stations uniformly at random and assigns
// groups round-robin. This is the fallback used when no groups file is
// given. Coordinates are redrawn on collision with an already-used
// position, since a colocated pair gives distance 0 and a degenerate
// zero-loss link.
func randomSeeds(cfg Config) []StationSeed {
	seeds := make([]StationSeed, cfg.NumSTAs)
	used := make(map[[2]float64]bool, cfg.NumSTAs)
	for i := range seeds {
		var x, y float64
		for {
			x = cfg.Rand.Float64() * cfg.Width
			y = cfg.Rand.Float64() * cfg.Height
			k := [2]float64{x, y}
			if !used[k] {
				used[k] = true
				break
			}
		}
		seeds[i] = StationSeed{X: x, Y: y, Group: i % cfg.NumGroups}
	}
	return seeds
}

// ParseGroupsFile parses the groups file format: each line
// "C[XXX, YYY]" where C is the group id and XXX/YYY are float
// coordinates; whitespace and '[',']',',' are separators. Node i (1-based)
// is created from line i with the given group.
func ParseGroupsFile(r io.Reader) ([]StationSeed, error) {
	var seeds []StationSeed
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == '[' || r == ']' || r == ',' || r == ' ' || r == '\t'
		})
		if len(fields) != 3 {
			return nil, &InputParseError{Source: "groups", Line: lineNo, Msg: fmt.Sprintf("expected 3 fields, got %d", len(fields))}
		}
		group, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, &InputParseError{Source: "groups", Line: lineNo, Msg: "bad group id: " + err.Error()}
		}
		x, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, &InputParseError{Source: "groups", Line: lineNo, Msg: "bad x: " + err.Error()}
		}
		y, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, &InputParseError{Source: "groups", Line: lineNo, Msg: "bad y: " + err.Error()}
		}
		seeds = append(seeds, StationSeed{X: x, Y: y, Group: group})
	}
	if err := sc.Err(); err != nil {
		return nil, &IOError{Path: "groups", Err: err}
	}
	return seeds, nil
}

// WritePositions writes the positions output file format: "ap X Y" for
// the AP, then "i posX posY" for each station.
func (c *Cell) WritePositions(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "ap %.3f %.3f\n", c.AP.X, c.AP.Y); err != nil {
		return err
	}
	for _, n := range c.Nodes {
		if _, err := fmt.Fprintf(w, "%d %.3f %.3f\n", n.ID, n.X, n.Y); err != nil {
			return err
		}
	}
	return nil
}

// WritePropagationModel writes the propagation-model file format: first
// line is the station count, then for every ordered pair (a,b) of
// non-AP nodes, "a->b a b distance loss_dB", sorted by textual id.
func (c *Cell) WritePropagationModel(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%d\n", len(c.Nodes)); err != nil {
		return err
	}
	type pair struct{ a, b *Node }
	var pairs []pair
	for _, a := range c.Nodes {
		for _, b := range c.Nodes {
			if a.ID == b.ID {
				continue
			}
			pairs = append(pairs, pair{a, b})
		}
	}
	// Sort by the "a->b" textual id string.
	sort.Slice(pairs, func(i, j int) bool {
		return pairKey(pairs[i]) < pairKey(pairs[j])
	})
	for _, pr := range pairs {
		d := distance(pr.a.X, pr.a.Y, pr.b.X, pr.b.Y)
		loss := pathLoss(d)
		if _, err := fmt.Fprintf(w, "%d->%d %d %d %.3f %.3f\n", pr.a.ID, pr.b.ID, pr.a.ID, pr.b.ID, d, loss); err != nil {
			return err
		}
	}
	return nil
}

func pairKey(p struct{ a, b *Node }) string {
	return fmt.Sprintf("%d->%d", p.a.ID, p.b.ID)
}
