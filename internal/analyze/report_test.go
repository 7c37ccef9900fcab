// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package analyze

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteReportContainsAllFields(t *testing.T) {
	st := buildStats(t, syntheticLog)
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, st.Report()))
	out := buf.String()
	for _, label := range []string{
		"generated:", "aborted:", "reached medium access:", "delivered:",
		"delivery rate (gen):", "delivery rate (reach):",
		"forward success rate:", "backward success rate:",
		"bidirectional rate:", "mean delay (us):", "stdev delay (us):",
		"received, no collision:", "received, collision:",
		"dropped, collision:", "collision fraction:",
	} {
		require.True(t, strings.Contains(out, label), "missing %q in report", label)
	}
}
