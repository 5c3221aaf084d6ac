// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package assets

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Deserializer turns a bundle back into runtime assets.
type Deserializer struct {
	opts options
}

// NewDeserializer creates a deserializer. It is strict unless configured
// with WithStrict(false).
func NewDeserializer(opts ...Option) *Deserializer {
	return &Deserializer{opts: applyOptions(opts)}
}

// Mappers returns the registered asset type names in sorted order.
func (d *Deserializer) Mappers() []string {
	return sortedNames(d.opts.mappers)
}

// Strict reports whether unconsumed buckets are an error.
func (d *Deserializer) Strict() bool { return d.opts.strict }

// Deserialize decodes data and builds every bucket that has a registered
// mapper into a [TypeMap] keyed by the mapper names.
//
// Buckets without a mapper fail a strict deserializer with an
// [*UnconsumedError] before any asset is built. If building fails, GPU
// resources of the assets already built are released.
func (d *Deserializer) Deserialize(ctx context.Context, data []byte, bc *BuildContext) (tm *TypeMap, err error) {
	ctx, span := tracer.Start(ctx, "assets.Deserialize", trace.WithAttributes(
		attribute.Int("assets.bytes", len(data)),
	))
	defer func() { endSpan(span, err) }()

	bins, err := DecodeBundle(data)
	if err != nil {
		return nil, err
	}

	var unconsumed []string
	for _, ty := range sortedNames(bins) {
		if _, ok := d.opts.mappers[ty]; !ok {
			unconsumed = append(unconsumed, ty)
		}
	}
	if len(unconsumed) > 0 {
		if d.opts.strict {
			return nil, &UnconsumedError{Types: unconsumed}
		}
		Logger().Warn("assets: bundle not fully read", "unconsumed", unconsumed)
	}

	tm = NewTypeMap()
	for _, name := range d.Mappers() {
		if err := ctx.Err(); err != nil {
			destroyTypeMap(bc, tm)
			return nil, err
		}
		bm, ok := bins[name]
		if !ok {
			Logger().Debug("assets: bundle has no bucket for mapper", "kind", name)
			continue
		}
		am, err := d.deserializeKind(ctx, name, d.opts.mappers[name], bm, bc)
		if err != nil {
			destroyTypeMap(bc, tm)
			return nil, err
		}
		tm.InsertMap(name, am)
	}

	Logger().Info("assets: bundle loaded", "kinds", tm.Len(), "records", bins.Len())
	return tm, nil
}

// DeserializeFile reads the bundle at path and deserializes it.
func (d *Deserializer) DeserializeFile(ctx context.Context, path string, bc *BuildContext) (*TypeMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("assets: read bundle: %w", err)
	}
	return d.Deserialize(ctx, data, bc)
}

func (d *Deserializer) deserializeKind(ctx context.Context, name string, m Mapper, bm BinMap, bc *BuildContext) (am *Map, err error) {
	_, span := tracer.Start(ctx, "assets.Deserialize/"+name, trace.WithAttributes(
		attribute.Int("assets.records", len(bm)),
	))
	defer func() { endSpan(span, err) }()

	propagateCodec(m, d.opts.codec)
	if err := m.LoadBinMap(bm); err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", name, err)
	}
	am, err = m.ToAssetMap(bc)
	if err != nil {
		return nil, fmt.Errorf("assets: build %s: %w", name, err)
	}
	Logger().Debug("assets: kind deserialized", "kind", name, "assets", am.Len())
	return am, nil
}

// destroyTypeMap releases GPU resources of the assets in tm. It is only
// used on maps that never left the package, so no handles can be alive.
func destroyTypeMap(bc *BuildContext, tm *TypeMap) {
	if bc == nil || bc.Device == nil {
		return
	}
	tm.Destroy(bc.Device)
}
