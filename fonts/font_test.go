// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package fonts

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/assets"
)

func TestFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goregular.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	d, err := FromDisk(path)
	if err != nil {
		t.Fatalf("FromDisk() = %v", err)
	}
	if d.Name != "goregular" {
		t.Errorf("Name = %q, want goregular", d.Name)
	}
	if !bytes.Equal(d.Data, goregular.TTF) {
		t.Error("Data does not match file content")
	}
}

func TestFromDiskInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.ttf")
	if err := os.WriteFile(path, []byte("not a font"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := FromDisk(path); !errors.Is(err, ErrInvalidFont) {
		t.Errorf("FromDisk() = %v, want ErrInvalidFont", err)
	}
}

func TestToAsset(t *testing.T) {
	f, err := FontData{Name: "regular", Data: goregular.TTF}.ToAsset(nil)
	if err != nil {
		t.Fatalf("ToAsset() = %v", err)
	}
	if f.Family != "Go" {
		t.Errorf("Family = %q, want Go", f.Family)
	}
	if f.UnitsPerEm != 2048 {
		t.Errorf("UnitsPerEm = %d, want 2048", f.UnitsPerEm)
	}
	if f.NumGlyphs == 0 {
		t.Error("NumGlyphs = 0")
	}
	if !f.HasGlyph('A') {
		t.Error("HasGlyph('A') = false")
	}
	f.Destroy(nil)
	if f.HasGlyph('A') {
		t.Error("HasGlyph after Destroy should be false")
	}
}

func TestToAssetInvalid(t *testing.T) {
	if _, err := (FontData{Name: "x", Data: []byte{0, 1, 0, 0}}).ToAsset(nil); !errors.Is(err, ErrInvalidFont) {
		t.Errorf("ToAsset() = %v, want ErrInvalidFont", err)
	}
}

func TestBinaryRoundTrip(t *testing.T) {
	records := map[string]FontData{"regular": {Name: "regular", Data: goregular.TTF}}
	bm, err := assets.EncodeBinMap(assets.CBOR, records)
	if err != nil {
		t.Fatal(err)
	}
	got, err := assets.DecodeBinMap[FontData](assets.CBOR, bm)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, records) {
		t.Error("round trip mismatch")
	}
}
