// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package analyze

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// syntheticLog is a small, hand-built event log exercising every branch
// Stats.Add switches on: a packet delivered and acked cleanly, a packet
// that aborts before reaching the medium, a packet delivered under
// collision, and a packet dropped under collision.
const syntheticLog = `+ 0 _1_ 5
MDs 10 _1_ 5
To 100 _1_ 5
r 110 _0_ _1_ 5 1
To 120 _0_ _1_ 5 [ack]
r 130 _1_ 5 [ack] 1
+ 1000 _2_ 7
A 1005 _2_ 7
+ 2000 _3_ 9
MDs 2001 _3_ 9
To 2005 _3_ 9
r 2010 _0_ _3_ 9 2
+ 3000 _4_ 11
MDs 3001 _4_ 11
To 3005 _4_ 11
d 3010 _0_ _4_ 11 2
`

func buildStats(t *testing.T, log string) *Stats {
	t.Helper()
	st := NewStats()
	require.NoError(t, Parse(strings.NewReader(log), st.Add))
	return st
}

func TestReportBasicCounts(t *testing.T) {
	st := buildStats(t, syntheticLog)
	r := st.Report()
	require.Equal(t, 4, r.Generated)
	require.Equal(t, 1, r.Aborted)
	require.Equal(t, 3, r.ReachedMediumAccess)
	require.Equal(t, 2, r.Delivered)
	require.Equal(t, 1, r.ReceivedNoCollision)
	require.Equal(t, 1, r.ReceivedWithCollision)
	require.Equal(t, 1, r.DroppedWithCollision)
}

func TestReportRates(t *testing.T) {
	st := buildStats(t, syntheticLog)
	r := st.Report()
	require.InDelta(t, 0.5, r.DeliveryRateGenerated, 1e-9)
	require.InDelta(t, 2.0/3.0, r.DeliveryRateReached, 1e-9)
	require.InDelta(t, 1.0/3.0, r.ForwardSuccessRate, 1e-9)
	require.InDelta(t, 1.0, r.BackwardSuccessRate, 1e-9)
	require.InDelta(t, 1.0/3.0, r.BidirectionalRate, 1e-9)
	require.InDelta(t, 2.0/3.0, r.CollisionFraction, 1e-9)
}

func TestReportDelayStats(t *testing.T) {
	st := buildStats(t, syntheticLog)
	r := st.Report()
	require.InDelta(t, 60, r.MeanDelayUs, 1e-9)
	require.InDelta(t, math.Sqrt(5000), r.StdevDelayUs, 1e-6)
}

func TestReportEmptyStatsHasNoDivideByZero(t *testing.T) {
	st := NewStats()
	r := st.Report()
	require.Equal(t, 0, r.Generated)
	require.Equal(t, 0.0, r.DeliveryRateGenerated)
	require.Equal(t, 0.0, r.DeliveryRateReached)
	require.Equal(t, 0.0, r.ForwardSuccessRate)
	require.Equal(t, 0.0, r.BackwardSuccessRate)
	require.Equal(t, 0.0, r.MeanDelayUs)
	require.Equal(t, 0.0, r.StdevDelayUs)
}

func TestSingleDeliveryHasZeroStdev(t *testing.T) {
	log := `+ 0 _1_ 5
To 100 _1_ 5
r 110 _0_ _1_ 5 1
`
	st := buildStats(t, log)
	r := st.Report()
	require.Equal(t, 1, r.Delivered)
	require.InDelta(t, 110, r.MeanDelayUs, 1e-9)
	require.Equal(t, 0.0, r.StdevDelayUs)
}
