// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texts

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/gogpu/assets"
)

func TestFromDisk(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"plain", "hello", "hello"},
		{"bom", "\ufeffhello", "hello"},
		// e + combining acute composes to U+00E9
		{"nfc", "cafe\u0301", "caf\u00e9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "intro.txt")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			d, err := FromDisk(path)
			if err != nil {
				t.Fatalf("FromDisk() = %v", err)
			}
			if d.Name != "intro" || d.Text != tt.want {
				t.Errorf("FromDisk() = %+v, want text %q", d, tt.want)
			}
		})
	}
}

func TestFromDiskInvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	if err := os.WriteFile(path, []byte{0xff, 0xfe, 0xfd}, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := FromDisk(path); !errors.Is(err, ErrInvalidUTF8) {
		t.Errorf("FromDisk() = %v, want ErrInvalidUTF8", err)
	}
}

func TestToAsset(t *testing.T) {
	tests := []struct {
		text  string
		lines []string
	}{
		{"", nil},
		{"one", []string{"one"}},
		{"one\ntwo\n", []string{"one", "two"}},
		{"one\r\ntwo", []string{"one", "two"}},
		{"one\n\nthree", []string{"one", "", "three"}},
	}
	for _, tt := range tests {
		b, err := TextData{Name: "t", Text: tt.text}.ToAsset(nil)
		if err != nil {
			t.Fatalf("ToAsset(%q) = %v", tt.text, err)
		}
		if !reflect.DeepEqual(b.Lines, tt.lines) {
			t.Errorf("ToAsset(%q).Lines = %q, want %q", tt.text, b.Lines, tt.lines)
		}
	}

	b, _ := TextData{Name: "t", Text: "héllo"}.ToAsset(nil)
	if b.RuneCount() != 5 {
		t.Errorf("RuneCount() = %d, want 5", b.RuneCount())
	}
	if _, err := (TextData{Name: "t", Text: "\xff"}).ToAsset(nil); !errors.Is(err, ErrInvalidUTF8) {
		t.Errorf("ToAsset(invalid) = %v, want ErrInvalidUTF8", err)
	}
}

func TestBinaryRoundTrip(t *testing.T) {
	records := map[string]TextData{
		"a": {Name: "a", Text: "first"},
		"b": {Name: "b", Text: "zweite Zeile\nmit Umlaut ü"},
	}
	bm, err := assets.EncodeBinMap(assets.CBOR, records)
	if err != nil {
		t.Fatal(err)
	}
	got, err := assets.DecodeBinMap[TextData](assets.CBOR, bm)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, records) {
		t.Errorf("round trip = %+v", got)
	}
}
