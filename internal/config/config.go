// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package config loads settings for the asset command-line tools.
//
// Settings are layered: built-in defaults, then an optional YAML file,
// then ASSETS_* environment variables. Command-line flags are applied by
// the tools on top of the result.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds the asset pipeline settings shared by the tools.
type Config struct {
	// AssetDir is the directory raw asset files are read from.
	AssetDir string `yaml:"asset_dir" env:"ASSETS_DIR"`
	// OutDir is the directory data.bin is written to.
	OutDir string `yaml:"out_dir" env:"ASSETS_OUT"`
	// Kinds lists the asset kinds to process.
	Kinds []string `yaml:"kinds" env:"ASSETS_KINDS" envSeparator:","`
	// Strict makes unconsumed bundle buckets an error.
	Strict bool `yaml:"strict" env:"ASSETS_STRICT"`
	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose" env:"ASSETS_VERBOSE"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		AssetDir: "./assets",
		OutDir:   ".",
		Strict:   true,
	}
}

// Load returns the defaults overlaid with the YAML file at path, if path
// is not empty, and then with the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := ParseYAML(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseYAML overlays the YAML document data onto cfg. Keys missing from
// the document keep their current value; unknown keys are an error.
func ParseYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse yaml: %w", err)
	}
	return nil
}

// ParseEnv overlays environment variables onto target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
