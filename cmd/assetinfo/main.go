// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command assetinfo lists the contents of a data.bin bundle.
//
// Usage:
//
//	assetinfo [--json] [--build] [--config FILE] data.bin
//
// With --build every bucket is also built on a headless GPU device, which
// checks that each record decodes and converts into its runtime asset.
// Buckets of unknown kinds fail the build unless strict mode is turned
// off with "strict: false" in the config file or ASSETS_STRICT=false.
package main

import (
	"os"

	"github.com/gogpu/assets/internal/config"
)

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		config.Exitf("assetinfo: %v", err)
	}
}
