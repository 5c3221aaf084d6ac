// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package assets

import (
	"fmt"
	"os"

	"github.com/fxamacker/cbor/v2"
)

// BinMap maps asset names to encoded raw records of one kind.
type BinMap map[string][]byte

// BinTypeMap maps asset type names to their encoded records.
type BinTypeMap map[string]BinMap

// Len returns the total number of records across all buckets.
func (b BinTypeMap) Len() int {
	n := 0
	for _, bm := range b {
		n += len(bm)
	}
	return n
}

// Bundle file layout.
//
// A bundle is a CBOR tag numbered BundleTag whose content is the array
// [version, assets]. The tag acts as the file magic.
const (
	BundleTag     uint64 = 0x61737374 // "asst"
	BundleVersion uint   = 1

	// BundleFile is the file name written by [Serializer.Serialize].
	BundleFile = "data.bin"
)

type bundleBody struct {
	_       struct{} `cbor:",toarray"`
	Version uint
	Assets  BinTypeMap
}

type bundleHeader struct {
	_       struct{} `cbor:",toarray"`
	Version uint
	Assets  cbor.RawMessage
}

// EncodeBundle encodes assets into the bundle format.
func EncodeBundle(assets BinTypeMap) ([]byte, error) {
	if assets == nil {
		assets = BinTypeMap{}
	}
	c := CBOR.(*cborCodec)
	data, err := c.enc.Marshal(cbor.Tag{
		Number:  BundleTag,
		Content: bundleBody{Version: BundleVersion, Assets: assets},
	})
	if err != nil {
		return nil, fmt.Errorf("assets: encode bundle: %w", err)
	}
	return data, nil
}

// DecodeBundle decodes a bundle produced by [EncodeBundle].
//
// Data that is not a bundle fails with [ErrBinaryDecode]; a bundle written
// with another format version fails with [ErrVersionMismatch].
func DecodeBundle(data []byte) (BinTypeMap, error) {
	c := CBOR.(*cborCodec)

	var tag cbor.RawTag
	if err := c.dec.Unmarshal(data, &tag); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBinaryDecode, err)
	}
	if tag.Number != BundleTag {
		return nil, fmt.Errorf("%w: unexpected tag %#x", ErrBinaryDecode, tag.Number)
	}

	var hdr bundleHeader
	if err := c.dec.Unmarshal(tag.Content, &hdr); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrBinaryDecode, err)
	}
	if hdr.Version != BundleVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrVersionMismatch, hdr.Version, BundleVersion)
	}

	assets := BinTypeMap{}
	if err := c.dec.Unmarshal(hdr.Assets, &assets); err != nil {
		return nil, fmt.Errorf("%w: assets: %v", ErrBinaryDecode, err)
	}
	return assets, nil
}

// ReadBundle reads and decodes the bundle at path.
func ReadBundle(path string) (BinTypeMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("assets: read bundle: %w", err)
	}
	return DecodeBundle(data)
}
