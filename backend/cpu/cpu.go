// Copyright 2026 Axon ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the host compute provider for tensor operations.
//
// The backend keeps buffers in ordinary Go memory at the raw capability
// tier (bulk byte dump/load) and implements its linear-algebra kernels on
// gonum. It is the reference Provider implementation; other providers may
// sit at lower capability tiers.
package cpu

import (
	internalcpu "github.com/axon-ml/axon/internal/backend/cpu"
	"github.com/axon-ml/axon/tensor"
)

// Backend is the host provider implementation.
type Backend = internalcpu.Backend

// Compile-time check that Backend implements tensor.Provider.
var _ tensor.Provider = (*Backend)(nil)

// New creates a host backend.
//
// Example:
//
//	p := cpu.New()
//	x, _ := tensor.New(tensor.Shape{2, 3}, tensor.Float32, p)
func New() *Backend {
	return internalcpu.New()
}
