// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package sim

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/heistp/rawcell/internal/engine"
)

func TestCellRunsAndProducesDeliveries(t *testing.T) {
	cfg := Config{
		NumSTAs:   3,
		NumGroups: 1,
		SlotSize:  engine.FromMicros(50000),
		Width:     50,
		Height:    50,
		Rate:      0.01,
		Verbosity: LvlOutcome,
		Rand:      rand.New(rand.NewSource(1)),
	}
	var buf bytes.Buffer
	log := NewLogger(&buf, cfg.Verbosity, false)
	cell := NewCell(cfg, log, nil)
	cell.Start()
	require.NoError(t, cell.Sched.RunUntil(engine.FromMicros(2_000_000)))
	require.NoError(t, log.Close())

	out := buf.String()
	require.Contains(t, out, KindPacketGenerated)
	require.Contains(t, out, KindSuccess)
}

func TestCellWithGroupsPartitionsStationsByGroup(t *testing.T) {
	seeds := []StationSeed{
		{X: 1, Y: 1, Group: 0},
		{X: 2, Y: 2, Group: 1},
	}
	cfg := Config{
		NumGroups: 2,
		SlotSize:  engine.FromMicros(50000),
		Width:     50,
		Height:    50,
		Rate:      0.01,
		Rand:      rand.New(rand.NewSource(2)),
	}
	var buf bytes.Buffer
	log := NewLogger(&buf, LvlOutcome, false)
	cell := NewCell(cfg, log, seeds)
	require.Len(t, cell.Nodes, 2)
	require.Equal(t, 0, cell.Nodes[0].Group)
	require.Equal(t, 1, cell.Nodes[1].Group)
	require.Equal(t, APGroup, cell.AP.Group)
}

func TestWritePositionsFormat(t *testing.T) {
	cfg := Config{
		NumGroups: 1,
		SlotSize:  engine.FromMicros(50000),
		Width:     50,
		Height:    50,
		Rate:      0.01,
		Rand:      rand.New(rand.NewSource(3)),
	}
	var logBuf bytes.Buffer
	log := NewLogger(&logBuf, LvlOutcome, false)
	seeds := []StationSeed{{X: 5, Y: 5, Group: 0}}
	cell := NewCell(cfg, log, seeds)

	var buf bytes.Buffer
	require.NoError(t, cell.WritePositions(&buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "ap "))
	require.True(t, strings.HasPrefix(lines[1], "1 "))
}
