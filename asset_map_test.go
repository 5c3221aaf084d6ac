// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package assets

import (
	"errors"
	"reflect"
	"slices"
	"testing"
)

func TestMapInsertReturnsPrevious(t *testing.T) {
	m := NewMap[string]()

	if _, replaced, err := MapInsert(m, "a", "first"); err != nil || replaced {
		t.Fatalf("MapInsert(new) = replaced %v, %v", replaced, err)
	}
	old, replaced, err := MapInsert(m, "a", "second")
	if err != nil || !replaced || old != "first" {
		t.Fatalf("MapInsert(existing) = %q, %v, %v; want first, true, nil", old, replaced, err)
	}

	ref, err := MapGet[string](m, "a")
	if err != nil {
		t.Fatal(err)
	}
	defer ref.Release()
	if ref.Value() != "second" {
		t.Errorf("MapGet() = %q, want second", ref.Value())
	}
}

func TestMapInsertTypeBound(t *testing.T) {
	m := NewMap[int]()
	if _, _, err := MapInsert(m, "x", "not an int"); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("MapInsert(string) = %v, want ErrTypeMismatch", err)
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d after rejected insert", m.Len())
	}
}

func TestMapInsertOverReferenced(t *testing.T) {
	m := MapFromAsset("a", 1)
	ref, err := MapGet[int](m, "a")
	if err != nil {
		t.Fatal(err)
	}

	_, replaced, err := MapInsert(m, "a", 2)
	var te *TakeError
	if !errors.As(err, &te) || !errors.Is(err, ErrInvalidTake) || !replaced {
		t.Fatalf("MapInsert() = %v, want TakeError with ErrInvalidTake", err)
	}
	// The displaced value comes back through the error.
	ref.Release()
	old, err := Take[int](te.Storage)
	if err != nil || old != 1 {
		t.Errorf("Take(displaced) = %d, %v; want 1", old, err)
	}

	cur, err := MapTake[int](m, "a")
	if err != nil || cur != 2 {
		t.Errorf("MapTake() = %d, %v; want 2", cur, err)
	}
}

func TestMapGet(t *testing.T) {
	m := MapFromAsset("a", 1.5)
	tests := []struct {
		name string
		get  func() error
		want error
	}{
		{"missing", func() error { _, err := MapGet[float64](m, "b"); return err }, ErrAssetNotFound},
		{"mismatch", func() error { _, err := MapGet[int](m, "a"); return err }, ErrTypeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.get(); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestMapTakeKeepsReferenced(t *testing.T) {
	m := MapFromAsset("a", "v")
	ref, _ := MapGet[string](m, "a")

	if _, err := MapTake[string](m, "a"); !errors.Is(err, ErrInvalidTake) {
		t.Fatalf("MapTake() = %v, want ErrInvalidTake", err)
	}
	if !m.Contains("a") {
		t.Fatal("failed MapTake removed the entry")
	}
	ref.Release()
	if v, err := MapTake[string](m, "a"); err != nil || v != "v" {
		t.Errorf("MapTake() = %q, %v", v, err)
	}
	if m.Contains("a") {
		t.Error("entry still present after MapTake")
	}
}

func TestMapDrainNoLoss(t *testing.T) {
	m := MapFrom(map[string]int{"a": 1, "b": 2, "c": 3})
	ref, err := MapGet[int](m, "b")
	if err != nil {
		t.Fatal(err)
	}

	_, err = MapDrain[int](m)
	var de *DrainError
	if !errors.As(err, &de) || !errors.Is(err, ErrInvalidTake) {
		t.Fatalf("MapDrain() = %v, want DrainError with ErrInvalidTake", err)
	}
	if de.Name != "b" {
		t.Errorf("DrainError.Name = %q, want b", de.Name)
	}
	if got := de.Map.Names(); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Fatalf("map after failed drain = %v, want [a b c]", got)
	}

	ref.Release()
	out, err := MapDrain[int](m)
	if err != nil {
		t.Fatalf("MapDrain() retry = %v", err)
	}
	if !reflect.DeepEqual(out, map[string]int{"a": 1, "b": 2, "c": 3}) {
		t.Errorf("MapDrain() = %v", out)
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d after drain", m.Len())
	}
}

func TestMapDrainTypeMismatch(t *testing.T) {
	m := MapFromAsset("a", 1)
	if _, err := MapDrain[string](m); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("MapDrain[string]() = %v, want ErrTypeMismatch", err)
	}
	if m.Len() != 1 {
		t.Error("mismatched drain modified the map")
	}
}

func TestMapRefs(t *testing.T) {
	m := MapFrom(map[string]int{"a": 1, "b": 2})
	refs, err := MapRefs[int](m)
	if err != nil {
		t.Fatalf("MapRefs() = %v", err)
	}
	if len(refs) != 2 || refs["b"].Value() != 2 {
		t.Errorf("MapRefs() = %v", refs)
	}
	if _, err := MapTake[int](m, "a"); !errors.Is(err, ErrInvalidTake) {
		t.Errorf("MapTake() with snapshot alive = %v", err)
	}
	ReleaseRefs(refs)
	if _, err := MapTake[int](m, "a"); err != nil {
		t.Errorf("MapTake() after ReleaseRefs = %v", err)
	}
	if _, err := MapRefs[string](m); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("MapRefs[string]() = %v, want ErrTypeMismatch", err)
	}
}

func TestMapExtend(t *testing.T) {
	m := MapFrom(map[string]int{"a": 1, "b": 2})
	other := MapFrom(map[string]int{"b": 20, "c": 30})

	if err := m.Extend(other); err != nil {
		t.Fatalf("Extend() = %v", err)
	}
	if got := m.Names(); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("Names() = %v", got)
	}
	if other.Len() != 0 {
		t.Errorf("other.Len() = %d, want 0", other.Len())
	}
	b, _ := MapTake[int](m, "b")
	if b != 20 {
		t.Errorf("b = %d, want 20 (other wins)", b)
	}

	wrong := MapFromAsset("d", "x")
	if err := m.Extend(wrong); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("Extend(mismatch) = %v", err)
	}
	if m.Len() != 2 || wrong.Len() != 1 {
		t.Errorf("mismatched Extend modified maps: %d, %d", m.Len(), wrong.Len())
	}
}

func TestMapType(t *testing.T) {
	if got := NewMap[*mesh]().Type(); got != reflect.TypeFor[*mesh]() {
		t.Errorf("Type() = %v", got)
	}
	if got := NewMapOf(reflect.TypeFor[int]()).Type(); got.Kind() != reflect.Int {
		t.Errorf("NewMapOf().Type() = %v", got)
	}
}
