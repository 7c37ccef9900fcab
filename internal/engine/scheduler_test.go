// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTimeoutOrdering(t *testing.T) {
	s := New()
	var order []string
	s.Spawn(func(p Proc) {
		p.Timeout(FromMicros(10))
		order = append(order, "a@"+p.Now().String())
	})
	s.Spawn(func(p Proc) {
		p.Timeout(FromMicros(5))
		order = append(order, "b@"+p.Now().String())
	})
	require.NoError(t, s.RunUntil(ClockInfinity))
	require.Equal(t, []string{"b@5", "a@10"}, order)
}

func TestEqualTimestampInsertionOrder(t *testing.T) {
	s := New()
	var order []string
	s.Spawn(func(p Proc) {
		p.Timeout(FromMicros(10))
		order = append(order, "first")
	})
	s.Spawn(func(p Proc) {
		p.Timeout(FromMicros(10))
		order = append(order, "second")
	})
	require.NoError(t, s.RunUntil(ClockInfinity))
	require.Equal(t, []string{"first", "second"}, order)
}

func TestSelectEventWinsOverTimeout(t *testing.T) {
	s := New()
	var result bool
	var ev *Event
	s.Spawn(func(p Proc) {
		ev = p.NewEvent()
		result = p.Select(ev, FromMicros(100))
	})
	s.Spawn(func(p Proc) {
		p.Timeout(FromMicros(1))
		p.Succeed(ev)
	})
	require.NoError(t, s.RunUntil(ClockInfinity))
	require.True(t, result)
}

func TestSelectTimeoutWinsWhenEventNeverFires(t *testing.T) {
	s := New()
	var result bool
	s.Spawn(func(p Proc) {
		ev := p.NewEvent()
		result = p.Select(ev, FromMicros(5))
	})
	require.NoError(t, s.RunUntil(ClockInfinity))
	require.False(t, result)
}

func TestSucceedIsIdempotent(t *testing.T) {
	s := New()
	calls := 0
	var ev *Event
	s.Spawn(func(p Proc) {
		ev = p.NewEvent()
		p.Select(ev, FromMicros(100))
		calls++
	})
	s.Spawn(func(p Proc) {
		p.Timeout(FromMicros(1))
		p.Succeed(ev)
		p.Succeed(ev) // must be a no-op
	})
	require.NoError(t, s.RunUntil(ClockInfinity))
	require.Equal(t, 1, calls)
}

func TestSpawnStartsAtCurrentTime(t *testing.T) {
	s := New()
	var childStart Clock
	s.Spawn(func(p Proc) {
		p.Timeout(FromMicros(7))
		p.Spawn(func(c Proc) {
			childStart = c.Now()
		})
	})
	require.NoError(t, s.RunUntil(ClockInfinity))
	require.Equal(t, FromMicros(7), childStart)
}

func TestRunUntilStopsAtDeadline(t *testing.T) {
	s := New()
	ran := false
	s.Spawn(func(p Proc) {
		p.Timeout(FromMicros(100))
		ran = true
	})
	require.NoError(t, s.RunUntil(FromMicros(50)))
	require.False(t, ran)
}
