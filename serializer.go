// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package assets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/gogpu/assets")

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Serializer reads raw asset files through its mappers and writes them as
// one bundle.
type Serializer struct {
	opts options
}

// NewSerializer creates a serializer. Without options it reads ./assets,
// writes ./data.bin and has no mappers.
func NewSerializer(opts ...Option) *Serializer {
	return &Serializer{opts: applyOptions(opts)}
}

// Mappers returns the registered asset type names in sorted order.
func (s *Serializer) Mappers() []string {
	return sortedNames(s.opts.mappers)
}

// AssetDirectory returns the directory raw files are read from.
func (s *Serializer) AssetDirectory() string { return s.opts.assetDir }

// OutFile returns the path of the bundle Serialize writes.
func (s *Serializer) OutFile() string {
	return filepath.Join(s.opts.outPath, BundleFile)
}

// Serialize loads every kind, encodes the bundle, writes it to the output
// directory and returns its bytes. Mappers run in name order; ctx is
// checked between them.
//
// A missing asset directory fails with [ErrConfig].
func (s *Serializer) Serialize(ctx context.Context) (data []byte, err error) {
	ctx, span := tracer.Start(ctx, "assets.Serialize", trace.WithAttributes(
		attribute.String("assets.dir", s.opts.assetDir),
		attribute.Int("assets.mappers", len(s.opts.mappers)),
	))
	defer func() { endSpan(span, err) }()

	fi, err := os.Stat(s.opts.assetDir)
	if err != nil {
		return nil, fmt.Errorf("%w: asset directory: %v", ErrConfig, err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("%w: asset directory %s is not a directory", ErrConfig, s.opts.assetDir)
	}

	bins := make(BinTypeMap, len(s.opts.mappers))
	for _, name := range s.Mappers() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		bm, err := s.serializeKind(ctx, name, s.opts.mappers[name])
		if err != nil {
			return nil, err
		}
		bins[name] = bm
	}

	data, err = EncodeBundle(bins)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(s.opts.outPath, 0o755); err != nil {
		return nil, fmt.Errorf("assets: create output directory: %w", err)
	}
	out := s.OutFile()
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return nil, fmt.Errorf("assets: write bundle: %w", err)
	}

	Logger().Info("assets: bundle written",
		"path", out, "kinds", len(bins), "records", bins.Len(), "bytes", len(data))
	return data, nil
}

func (s *Serializer) serializeKind(ctx context.Context, name string, m Mapper) (bm BinMap, err error) {
	_, span := tracer.Start(ctx, "assets.Serialize/"+name)
	defer func() { endSpan(span, err) }()

	propagateCodec(m, s.opts.codec)
	if err := m.Load(s.opts.assetDir); err != nil {
		return nil, fmt.Errorf("assets: load %s: %w", name, err)
	}
	bm, err = m.ToBinMap()
	if err != nil {
		return nil, fmt.Errorf("assets: encode %s: %w", name, err)
	}
	span.SetAttributes(attribute.Int("assets.records", len(bm)))
	Logger().Debug("assets: kind serialized", "kind", name, "records", len(bm))
	return bm, nil
}
