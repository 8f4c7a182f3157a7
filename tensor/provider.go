// Copyright 2026 Axon ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/axon-ml/axon/internal/tensor"

// Provider supplies buffer allocation and numeric kernels for tensors.
//
// Implementations:
//   - backend/cpu: host memory plus gonum-backed kernels
//
// The core never implements elementwise or linear-algebra kernels itself;
// it shapes inputs and outputs around these calls.
type Provider = tensor.Provider

// LinAlg is a provider's linear-algebra kernel surface.
type LinAlg = tensor.LinAlg

// Buffer is a fixed-length, fixed-dtype element store allocated by a
// Provider.
type Buffer = tensor.Buffer

// RawBuffer is the bulk-transfer tier of Buffer: buffers in addressable
// host memory expose their raw byte image for dump/load.
type RawBuffer = tensor.RawBuffer

// Capability is a provider's declared level of support for copying buffers.
type Capability = tensor.Capability

// Capability tiers, lowest to highest.
const (
	CapabilityNone    Capability = tensor.CapabilityNone
	CapabilityElement Capability = tensor.CapabilityElement
	CapabilityRaw     Capability = tensor.CapabilityRaw
)

// Op identifies an elementwise binary operator.
type Op = tensor.Op

// Elementwise operators.
const (
	OpAdd Op = tensor.OpAdd
	OpSub Op = tensor.OpSub
	OpMul Op = tensor.OpMul
	OpDiv Op = tensor.OpDiv
)

// ReduceOp identifies a numeric accumulation delegated to the provider.
type ReduceOp = tensor.ReduceOp

// Reduction operators.
const (
	ReduceMean   ReduceOp = tensor.ReduceMean
	ReduceMin    ReduceOp = tensor.ReduceMin
	ReduceMax    ReduceOp = tensor.ReduceMax
	ReduceArgMin ReduceOp = tensor.ReduceArgMin
	ReduceArgMax ReduceOp = tensor.ReduceArgMax
)
