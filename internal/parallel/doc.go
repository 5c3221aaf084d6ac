// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package parallel provides the work-stealing pool used to read and decode
// raw asset files concurrently.
package parallel
