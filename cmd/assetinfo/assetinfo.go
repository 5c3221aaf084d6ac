// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"text/tabwriter"

	"github.com/urfave/cli"

	"github.com/gogpu/assets"
	"github.com/gogpu/assets/internal/config"
	"github.com/gogpu/assets/kinds"
)

// entry describes one record of a bundle.
type entry struct {
	Kind  string `json:"kind"`
	Name  string `json:"name"`
	Bytes int    `json:"bytes"`
}

type report struct {
	File    string  `json:"file"`
	Version uint    `json:"version"`
	Records int     `json:"records"`
	Entries []entry `json:"entries"`
	Built   bool    `json:"built,omitempty"`
}

func newApp(w, e io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "assetinfo"
	app.Usage = "list the contents of an asset bundle"
	app.ArgsUsage = "FILE"
	app.HideVersion = true
	app.Writer = w
	app.ErrWriter = e

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "json, j",
			Usage: "print the listing as JSON",
		},
		cli.BoolFlag{
			Name:  "build, b",
			Usage: "build every bucket on a headless device",
		},
		cli.StringFlag{
			Name:  "config, c",
			Usage: "YAML config `FILE` read by --build",
		},
	}
	app.Action = runInfo
	return app
}

func runInfo(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return errors.New("missing bundle file")
	}

	bins, err := assets.ReadBundle(path)
	if err != nil {
		return err
	}
	r := report{File: path, Version: assets.BundleVersion, Records: bins.Len(), Entries: entries(bins)}

	if c.Bool("build") {
		cfg, err := config.Load(c.String("config"))
		if err != nil {
			return err
		}
		if err := build(path, cfg.Strict); err != nil {
			return err
		}
		r.Built = true
	}

	if c.Bool("json") {
		return printJSON(c.App.Writer, r)
	}
	return printTable(c.App.Writer, r)
}

// entries lists bins sorted by kind and then by name.
func entries(bins assets.BinTypeMap) []entry {
	out := make([]entry, 0, bins.Len())
	for _, kind := range slices.Sorted(maps.Keys(bins)) {
		bm := bins[kind]
		for _, name := range slices.Sorted(maps.Keys(bm)) {
			out = append(out, entry{Kind: kind, Name: name, Bytes: len(bm[name])})
		}
	}
	return out
}

// build decodes and builds the bundle at path. With strict set, buckets
// no registered kind consumes are an error.
func build(path string, strict bool) error {
	bc, err := assets.NewHeadlessBuildContext()
	if err != nil {
		return err
	}
	defer bc.Close()

	d := kinds.NewDeserializer(assets.WithStrict(strict))
	tm, err := d.DeserializeFile(context.Background(), path, bc)
	if err != nil {
		return err
	}
	tm.Destroy(bc.Device)
	return nil
}

func printTable(w io.Writer, r report) error {
	fmt.Fprintf(w, "%s: version %d, %d records\n", r.File, r.Version, r.Records)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tNAME\tBYTES")
	for _, e := range r.Entries {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", e.Kind, e.Name, e.Bytes)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if r.Built {
		fmt.Fprintln(w, "build: ok")
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}
