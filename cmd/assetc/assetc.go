// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/gogpu/assets"
	"github.com/gogpu/assets/internal/config"
	"github.com/gogpu/assets/kinds"
)

var errNoKinds = errors.New("no asset kind selected (use -all or one of -" + strings.Join(kinds.Names, ", -") + ")")

// Config holds the resolved settings of one assetc run.
type Config struct {
	config.Config
}

// ParseConfig parses flags into a Config. Settings come from the optional
// -config YAML file and the ASSETS_* environment; flags that are set on
// the command line override both.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var (
		path    = fs.String("config", "", "YAML config file")
		in      = fs.String("in", "", "asset directory (default ./assets)")
		out     = fs.String("out", "", "output directory for "+assets.BundleFile+" (default .)")
		all     = fs.Bool("all", false, "compile every asset kind")
		verbose = fs.Bool("v", false, "debug logging")
	)
	selected := make(map[string]*bool, len(kinds.Names))
	for _, name := range kinds.Names {
		selected[name] = fs.Bool(name, false, "compile "+name)
	}
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	base, err := config.Load(*path)
	if err != nil {
		return Config{}, err
	}
	cfg := Config{Config: base}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["in"] {
		cfg.AssetDir = *in
	}
	if set["out"] {
		cfg.OutDir = *out
	}
	if set["v"] {
		cfg.Verbose = *verbose
	}

	var flagged []string
	for _, name := range kinds.Names {
		if *all || *selected[name] {
			flagged = append(flagged, name)
		}
	}
	if len(flagged) > 0 {
		cfg.Kinds = flagged
	}
	return cfg, nil
}

// Run compiles the selected kinds into a bundle and reports it on out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		return errors.New("output is required")
	}
	if len(cfg.Kinds) == 0 {
		return errNoKinds
	}
	mappers, err := kinds.Select(cfg.Kinds...)
	if err != nil {
		return err
	}

	s := assets.NewSerializer(
		assets.WithMappers(mappers),
		assets.WithAssetDirectory(cfg.AssetDir),
		assets.WithOutPath(cfg.OutDir),
	)
	data, err := s.Serialize(ctx)
	if err != nil {
		return err
	}

	bins, err := assets.DecodeBundle(data)
	if err != nil {
		return err
	}
	for _, name := range slices.Sorted(maps.Keys(bins)) {
		fmt.Fprintf(out, "%-10s %d\n", name, len(bins[name]))
	}
	_, err = fmt.Fprintf(out, "wrote %s (%d bytes)\n", s.OutFile(), len(data))
	return err
}
