// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

// Command rawcell simulates an IEEE 802.11-style RAW-grouped single-hop
// wireless cell and writes a structured event log plus optional scenario
// dump files.
package main

import (
	"io"
	"log"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	flag "github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/heistp/rawcell/internal/appconfig"
	"github.com/heistp/rawcell/internal/engine"
	"github.com/heistp/rawcell/internal/metrics"
	"github.com/heistp/rawcell/internal/sim"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var (
		numSTAs     = flag.IntP("stations", "n", 1, "number of contending stations")
		numGroups   = flag.IntP("groups", "g", 1, "number of RAW groups")
		groupsFile  = flag.StringP("groups-file", "G", "", "path to a groups file, overrides -g")
		slotSize    = flag.Int64P("slot-size", "S", 50000, "RAW slot size, microseconds")
		width       = flag.Float64P("width", "W", 1000, "scenario width, meters")
		height      = flag.Float64P("height", "H", 1000, "scenario height, meters")
		seed        = flag.Int64P("seed", "s", 0, "random seed, 0 means derive from the clock")
		rate        = flag.Float64P("rate", "r", 10000, "mean packet generation rate, packets/microsecond")
		length      = flag.Int64P("length", "l", 2e7, "simulated run length, microseconds")
		verbosity   = flag.IntP("verbosity", "v", 0, "log verbosity, 0-4")
		printPos    = flag.StringP("print-positions", "P", "", "write node positions to this path")
		printPER    = flag.StringP("print-per", "E", "", "write the PER dump to this path")
		zip         = flag.BoolP("zip", "z", false, "gzip-compress the event log")
		propModel   = flag.StringP("propagation-model", "m", "", "write the propagation-model dump to this path")
		configFile  = flag.StringP("config", "c", "", "YAML config file, layered under flags")
		metricsAddr = flag.String("metrics-addr", "", "if set, serve Prometheus metrics on this address")
		logPath     = flag.StringP("log", "L", "", "event log output path, default stdout")
	)
	flag.Parse()

	if cfgFile, err := appconfig.Load(*configFile); err == nil {
		applyFileDefaults(cfgFile, numSTAs, numGroups, slotSize, width, height, rate, length, verbosity, metricsAddr)
	} else if *configFile != "" {
		return err
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	reg := prometheus.NewRegistry()
	rec := metrics.NewRecorder(reg)
	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.Handler(reg))
			log.Printf("metrics listening on %s", *metricsAddr)
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				log.Printf("metrics server: %v", err)
			}
		}()
	}

	cfg := sim.Config{
		NumSTAs:   *numSTAs,
		NumGroups: *numGroups,
		SlotSize:  engine.FromMicros(*slotSize),
		Width:     *width,
		Height:    *height,
		Rate:      *rate,
		Length:    engine.FromMicros(*length),
		Verbosity: *verbosity,
		Rand:      rng,
		Metrics:   rec,
	}

	var seeds []sim.StationSeed
	if *groupsFile != "" {
		f, err := os.Open(*groupsFile)
		if err != nil {
			return &sim.IOError{Path: *groupsFile, Err: err}
		}
		defer f.Close()
		seeds, err = sim.ParseGroupsFile(f)
		if err != nil {
			return err
		}
		cfg.NumSTAs = len(seeds)
		maxGroup := 0
		for _, s := range seeds {
			if s.Group > maxGroup {
				maxGroup = s.Group
			}
		}
		cfg.NumGroups = maxGroup + 1
	}

	logW := io.WriteCloser(os.Stdout)
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			return &sim.IOError{Path: *logPath, Err: err}
		}
		logW = f
	}
	sink := sim.NewLogger(logW, *verbosity, *zip)
	defer sink.Close()

	cell := sim.NewCell(cfg, sink, seeds)
	cell.Medium.WritePowerMatrix(sink, 0)
	cell.Start()

	var eg errgroup.Group
	if *printPos != "" {
		eg.Go(func() error { return writeFile(*printPos, cell.WritePositions) })
	}
	if *printPER != "" {
		eg.Go(func() error {
			return writeFile(*printPER, func(w io.Writer) error {
				cell.Medium.WritePERDump(w)
				return nil
			})
		})
	}
	if *propModel != "" {
		eg.Go(func() error { return writeFile(*propModel, cell.WritePropagationModel) })
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	return cell.Sched.RunUntil(engine.FromMicros(*length))
}

func applyFileDefaults(f appconfig.File, numSTAs, numGroups *int, slotSize *int64, width, height *float64, rate *float64, length *int64, verbosity *int, metricsAddr *string) {
	if !flag.CommandLine.Changed("stations") && f.NumSTAs != 0 {
		*numSTAs = f.NumSTAs
	}
	if !flag.CommandLine.Changed("groups") && f.NumGroups != 0 {
		*numGroups = f.NumGroups
	}
	if !flag.CommandLine.Changed("slot-size") && f.SlotSizeUs != 0 {
		*slotSize = f.SlotSizeUs
	}
	if !flag.CommandLine.Changed("width") && f.Width != 0 {
		*width = f.Width
	}
	if !flag.CommandLine.Changed("height") && f.Height != 0 {
		*height = f.Height
	}
	if !flag.CommandLine.Changed("rate") && f.Rate != 0 {
		*rate = f.Rate
	}
	if !flag.CommandLine.Changed("length") && f.LengthUs != 0 {
		*length = f.LengthUs
	}
	if !flag.CommandLine.Changed("verbosity") && f.Verbosity != 0 {
		*verbosity = f.Verbosity
	}
	if !flag.CommandLine.Changed("metrics-addr") && f.MetricsAddr != "" {
		*metricsAddr = f.MetricsAddr
	}
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return &sim.IOError{Path: path, Err: err}
	}
	defer f.Close()
	return write(f)
}
