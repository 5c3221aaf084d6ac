// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package assets

// Option configures a [Serializer] or a [Deserializer].
//
// Example:
//
//	s := assets.NewSerializer(
//	    assets.WithMapper("shaders", shaders.NewMapper()),
//	    assets.WithAssetDirectory("./game/assets"),
//	    assets.WithOutPath("./build"),
//	)
type Option func(*options)

type options struct {
	mappers  map[string]Mapper
	assetDir string
	outPath  string
	codec    Codec
	strict   bool
}

func defaultOptions() options {
	return options{
		mappers:  make(map[string]Mapper),
		assetDir: "./assets",
		outPath:  ".",
		codec:    CBOR,
		strict:   true,
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithMapper registers m under the asset type name. The name is both the
// bucket key in the bundle and in the resulting [TypeMap]. Registering a
// name twice keeps the last mapper.
func WithMapper(name string, m Mapper) Option {
	return func(o *options) {
		o.mappers[name] = m
	}
}

// WithMappers registers every mapper of table.
func WithMappers(table map[string]Mapper) Option {
	return func(o *options) {
		for name, m := range table {
			o.mappers[name] = m
		}
	}
}

// WithAssetDirectory sets the directory raw files are read from.
// The default is "./assets".
func WithAssetDirectory(dir string) Option {
	return func(o *options) {
		o.assetDir = dir
	}
}

// WithOutPath sets the directory the bundle is written to.
// The default is the working directory.
func WithOutPath(dir string) Option {
	return func(o *options) {
		o.outPath = dir
	}
}

// WithCodec sets the record codec handed to every mapper that accepts one.
// The default is [CBOR].
func WithCodec(c Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithStrict controls how a Deserializer treats bundle buckets no mapper
// consumes. Strict deserialization (the default) fails with an
// [*UnconsumedError]; otherwise the buckets are logged and skipped.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}
