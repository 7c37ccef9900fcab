// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package analyze

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseWellFormedLines(t *testing.T) {
	log := "+ 100 0 1\nTo 200 0 1\nr 210 0 0 1 1\n"
	var events []Event
	require.NoError(t, Parse(strings.NewReader(log), func(e Event) {
		events = append(events, e)
	}))
	require.Len(t, events, 3)
	require.Equal(t, "+", events[0].Kind)
	require.Equal(t, int64(100), events[0].Now)
	require.Equal(t, []string{"0", "1"}, events[0].Fields)
}

func TestParseSkipsBlankAndMalformedLines(t *testing.T) {
	log := "\n+ 100 0 1\nbadline\nTo notanumber 0 1\nTo 200 0 1\n"
	var events []Event
	require.NoError(t, Parse(strings.NewReader(log), func(e Event) {
		events = append(events, e)
	}))
	require.Len(t, events, 2)
	require.Equal(t, "+", events[0].Kind)
	require.Equal(t, "To", events[1].Kind)
}

func TestParseToleratesUnknownKinds(t *testing.T) {
	log := "SomeUnknownKind 50 x y z\n"
	var events []Event
	require.NoError(t, Parse(strings.NewReader(log), func(e Event) {
		events = append(events, e)
	}))
	require.Len(t, events, 1)
	require.Equal(t, "SomeUnknownKind", events[0].Kind)
}
