// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

// Package appconfig loads rawcell's scenario parameters from, in increasing
// priority: built-in defaults, an optional YAML config file, environment
// variables prefixed RAWCELL_, then command-line flags. This layering
// mirrors dantte-lp-gobfd's koanf-based configuration setup.
package appconfig

import (
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// File holds the subset of rawcell's parameters that may come from a YAML
// config file or the environment, on top of the CLI flag defaults. Flags
// always win; this only fills in values the user didn't pass explicitly.
type File struct {
	NumSTAs       int     `koanf:"stations"`
	NumGroups     int     `koanf:"groups"`
	SlotSizeUs    int64   `koanf:"slot_size_us"`
	Width         float64 `koanf:"width"`
	Height        float64 `koanf:"height"`
	Rate          float64 `koanf:"rate"`
	LengthUs      int64   `koanf:"length_us"`
	Verbosity     int     `koanf:"verbosity"`
	MetricsAddr   string  `koanf:"metrics_addr"`
}

// Load reads defaults, then path (if non-empty), then RAWCELL_*
// environment variables, into a File.
func Load(path string) (File, error) {
	k := koanf.New(".")
	var f File
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return f, err
		}
	}
	if err := k.Load(env.Provider("RAWCELL_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "RAWCELL_"))
	}), nil); err != nil {
		return f, err
	}
	if err := k.Unmarshal("", &f); err != nil {
		return f, err
	}
	return f, nil
}
