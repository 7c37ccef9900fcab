// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

// Command rawcell-analyze post-processes a rawcell event log into
// human-readable delivery, delay, and collision totals.
package main

import (
	"compress/gzip"
	"io"
	"log"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/heistp/rawcell/internal/analyze"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	path := flag.StringP("file", "f", "", "input event log path")
	gz := flag.BoolP("zip", "z", false, "input log is gzip-compressed")
	flag.Parse()

	if *path == "" {
		log.Fatal("rawcell-analyze: -f is required")
	}

	f, err := os.Open(*path)
	if err != nil {
		return err
	}
	defer f.Close()

	var r io.Reader = f
	if *gz {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return err
		}
		defer zr.Close()
		r = zr
	}

	st := analyze.NewStats()
	if err := analyze.Parse(r, st.Add); err != nil {
		return err
	}

	return analyze.WriteReport(os.Stdout, st.Report())
}
