// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package sim

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/heistp/rawcell/internal/engine"
)

// Logger is the structured, append-only event sink. Its wire format (one
// "KIND time body\n" line per event) is a fixed contract the analyzer
// depends on, so — unlike the free-text operational logging this repo
// does with the stdlib log package — it is not a good fit for a generic
// leveled/structured logging library: field order, the exact kind
// vocabulary, and line-per-event framing are externally specified, and a
// library's own framing (JSON, key=value, timestamps) would have to be
// stripped right back out again. See DESIGN.md for the full
// justification. The shape here (buffered writer, explicit Close,
// optional compression) follows an Xplot-sink style rather than a
// single-purpose logf helper, since this needs an injectable sink rather
// than one hard-coded to stderr.
type Logger struct {
	w         *bufio.Writer
	closer    io.Closer
	gz        *gzip.Writer
	verbosity int
}

// NewLogger returns a Logger writing to w at the given verbosity. If gz is
// true, output is gzip-compressed; Close must be called to flush the
// gzip trailer.
func NewLogger(w io.Writer, verbosity int, gz bool) *Logger {
	l := &Logger{verbosity: verbosity}
	if gz {
		zw := gzip.NewWriter(w)
		l.gz = zw
		l.w = bufio.NewWriter(zw)
	} else {
		l.w = bufio.NewWriter(w)
	}
	if c, ok := w.(io.Closer); ok {
		l.closer = c
	}
	return l
}

// Log writes one event line if level is within the configured verbosity.
func (l *Logger) Log(kind string, now engine.Clock, level int, format string, a ...any) {
	if level > l.verbosity {
		return
	}
	fmt.Fprintf(l.w, "%s %s %s\n", kind, now, fmt.Sprintf(format, a...))
}

// LogNode writes a node-scoped event line, prepending the node id as the
// first body field, wrapped in underscores (_id_) per the wire schema.
func (l *Logger) LogNode(kind string, now engine.Clock, id NodeID, level int, format string, a ...any) {
	if level > l.verbosity {
		return
	}
	body := fmt.Sprintf(format, a...)
	if body == "" {
		fmt.Fprintf(l.w, "%s %s %s\n", kind, now, idTag(id))
	} else {
		fmt.Fprintf(l.w, "%s %s %s %s\n", kind, now, idTag(id), body)
	}
}

// idTag formats a node id wrapped in underscores, the wire-format
// convention for any id or src field embedded in an event body.
func idTag(id NodeID) string {
	return fmt.Sprintf("_%d_", id)
}

// Flush flushes buffered output without closing the sink.
func (l *Logger) Flush() error {
	return l.w.Flush()
}

// Close flushes and, for a gzip-wrapped sink, writes the gzip trailer and
// closes the underlying writer if it is an io.Closer.
func (l *Logger) Close() error {
	if err := l.w.Flush(); err != nil {
		return err
	}
	if l.gz != nil {
		if err := l.gz.Close(); err != nil {
			return err
		}
	}
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}
