// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package textures

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/gogpu/assets"
)

func encodePNG(t *testing.T, w, h int, c color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func headless(t *testing.T) *assets.BuildContext {
	t.Helper()
	bc, err := assets.NewHeadlessBuildContext()
	if err != nil {
		t.Fatalf("NewHeadlessBuildContext() = %v", err)
	}
	t.Cleanup(bc.Close)
	return bc
}

func TestFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "brick.png")
	data := encodePNG(t, 4, 2, color.NRGBA{R: 200, A: 255})
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := FromDisk(path)
	if err != nil {
		t.Fatalf("FromDisk() = %v", err)
	}
	if d.Name != "brick" {
		t.Errorf("Name = %q, want brick", d.Name)
	}
	if !bytes.Equal(d.Data, data) {
		t.Error("Data does not match file content")
	}
}

func TestFromDiskNotImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.png")
	if err := os.WriteFile(path, []byte("plain text, not pixels"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := FromDisk(path); !errors.Is(err, ErrNotImage) {
		t.Errorf("FromDisk() = %v, want ErrNotImage", err)
	}
}

func TestDecode(t *testing.T) {
	img, err := Decode(encodePNG(t, 3, 5, color.NRGBA{R: 10, G: 20, B: 30, A: 255}))
	if err != nil {
		t.Fatalf("Decode() = %v", err)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 5 {
		t.Errorf("bounds = %v, want 3x5", img.Bounds())
	}
	got := img.RGBAAt(1, 1)
	if got != (color.RGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("pixel = %v", got)
	}
}

func TestFit(t *testing.T) {
	small := image.NewRGBA(image.Rect(0, 0, 16, 16))
	if fit(small) != small {
		t.Error("fit should not touch images within MaxDimension")
	}

	big := image.NewRGBA(image.Rect(0, 0, MaxDimension*2, 4))
	got := fit(big)
	if got.Bounds().Dx() != MaxDimension || got.Bounds().Dy() != 2 {
		t.Errorf("fit() bounds = %v, want %dx2", got.Bounds(), MaxDimension)
	}
}

func TestBinaryRoundTrip(t *testing.T) {
	records := map[string]TextureData{
		"a": {Name: "a", Data: encodePNG(t, 1, 1, color.NRGBA{A: 255})},
		"b": {Name: "b", Data: encodePNG(t, 2, 2, color.NRGBA{G: 255, A: 255})},
	}
	bm, err := assets.EncodeBinMap(assets.CBOR, records)
	if err != nil {
		t.Fatal(err)
	}
	got, err := assets.DecodeBinMap[TextureData](assets.CBOR, bm)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, records) {
		t.Error("round trip mismatch")
	}
}

func TestToAsset(t *testing.T) {
	bc := headless(t)
	d := TextureData{Name: "grass", Data: encodePNG(t, 8, 4, color.NRGBA{G: 255, A: 255})}

	tex, err := d.ToAsset(bc)
	if err != nil {
		t.Fatalf("ToAsset() = %v", err)
	}
	if tex.Width != 8 || tex.Height != 4 {
		t.Errorf("size = %dx%d, want 8x4", tex.Width, tex.Height)
	}
	if tex.MipLevels != 4 {
		t.Errorf("MipLevels = %d, want 4", tex.MipLevels)
	}
	if tex.Texture == nil || tex.View == nil {
		t.Fatal("texture or view is nil")
	}
	tex.Destroy(bc.Device)
	if tex.Texture != nil || tex.View != nil {
		t.Error("Destroy did not clear handles")
	}
}

func TestToAssetErrors(t *testing.T) {
	d := TextureData{Name: "x", Data: encodePNG(t, 1, 1, color.NRGBA{A: 255})}
	if _, err := d.ToAsset(nil); !errors.Is(err, assets.ErrNoDevice) {
		t.Errorf("ToAsset(nil) = %v, want ErrNoDevice", err)
	}
	bc := headless(t)
	if _, err := (TextureData{Name: "junk", Data: []byte{1, 2, 3}}).ToAsset(bc); !errors.Is(err, ErrNotImage) {
		t.Errorf("ToAsset(junk) = %v, want ErrNotImage", err)
	}
}

func TestMapperSkipsOtherFiles(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, Kind)
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	files := map[string][]byte{
		"stone.png":  encodePNG(t, 2, 2, color.NRGBA{A: 255}),
		"readme.txt": []byte("not a texture"),
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(sub, name), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	m := NewMapper()
	if err := m.Load(dir); err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if _, ok := m.Records()["stone"]; !ok || m.Len() != 1 {
		t.Errorf("records = %v, want only stone", m.Records())
	}
}
