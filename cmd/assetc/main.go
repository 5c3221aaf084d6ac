// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command assetc compiles a game's raw asset files into a single
// data.bin bundle.
//
// Usage:
//
//	assetc [-config assets.yaml] [-in ./assets] [-out .] [-v] -all
//	assetc -shaders -models
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gogpu/assets"
	"github.com/gogpu/assets/internal/config"
)

func main() {
	cfg, err := ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("assetc: %v", err)
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	assets.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := Run(ctx, cfg, os.Stdout); err != nil {
		stop()
		config.Exitf("assetc: %v", err)
	}
}
