// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package assets

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the assets package.
var (
	// ErrTypeMismatch is returned when the dynamic type of a stored asset,
	// or the bound type of an asset map, differs from the requested type.
	ErrTypeMismatch = errors.New("assets: asset type mismatch")

	// ErrInvalidTake is returned when unique extraction is attempted while
	// shared handles to the asset are still alive.
	ErrInvalidTake = errors.New("assets: cannot take asset with live references")

	// ErrTaken is returned by operations on a storage cell whose value
	// has already been taken.
	ErrTaken = errors.New("assets: asset already taken")

	// ErrAssetNotFound is returned when no asset exists under a name.
	ErrAssetNotFound = errors.New("assets: asset not found")

	// ErrAssetTypeNotFound is returned when no asset map exists for a type name.
	ErrAssetTypeNotFound = errors.New("assets: asset type not found")

	// ErrBinaryDecode is returned when a bundle or record cannot be decoded.
	ErrBinaryDecode = errors.New("assets: binary decode failed")

	// ErrVersionMismatch is returned when a bundle was written with a
	// different format version.
	ErrVersionMismatch = errors.New("assets: bundle version mismatch")

	// ErrMapperMissing is returned when a decoded bundle contains asset
	// types that no registered mapper consumes.
	ErrMapperMissing = errors.New("assets: no mapper for asset type")

	// ErrConfig is returned for invalid pipeline configuration, such as a
	// missing asset directory.
	ErrConfig = errors.New("assets: invalid configuration")

	// ErrDuplicateName is returned when two files of the same kind share a
	// file stem.
	ErrDuplicateName = errors.New("assets: duplicate asset name")
)

// TakeError reports a failed unique extraction together with the storage
// cell that could not be taken. The cell is unchanged and still usable.
type TakeError struct {
	Err     error
	Name    string
	Storage *Storage
}

func (e *TakeError) Error() string {
	if e.Name == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v: %q", e.Err, e.Name)
}

func (e *TakeError) Unwrap() error { return e.Err }

// DrainError is returned when a map could not be fully converted into
// owned values. Map holds every asset that was not returned, including
// the ones extracted before the failure.
type DrainError struct {
	Err  error
	Name string // entry that could not be taken
	Map  *Map
}

func (e *DrainError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("assets: drain: %v", e.Err)
	}
	return fmt.Sprintf("assets: drain stopped at %q: %v", e.Name, e.Err)
}

func (e *DrainError) Unwrap() error { return e.Err }

// CombineError is returned by TypeMap.Combine when a bucket could not be
// merged. Merged lists the buckets already merged by the same call;
// Remaining holds every bucket that was not merged, the failing one
// included.
type CombineError struct {
	Type      string
	Err       error
	Merged    []string
	Remaining *TypeMap
}

func (e *CombineError) Error() string {
	return fmt.Sprintf("assets: combine %q: %v", e.Type, e.Err)
}

func (e *CombineError) Unwrap() error { return e.Err }

// UnconsumedError lists bundle buckets that no registered mapper consumed.
type UnconsumedError struct {
	Types []string
}

func (e *UnconsumedError) Error() string {
	return fmt.Sprintf("assets: bundle not fully read, no mapper for [%s]", strings.Join(e.Types, ", "))
}

func (e *UnconsumedError) Unwrap() error { return ErrMapperMissing }
