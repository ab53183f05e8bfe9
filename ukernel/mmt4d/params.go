// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mmt4d

import "github.com/ajroetker/go-ukernel/ukernel"

// Type is the (lhs, rhs, out) element type triple of an mmt4d.
type Type = ukernel.TypeTriple

// Supported mmt4d types.
const (
	TypeF32F32F32 = Type(uint32(ukernel.TypeFloat32) | uint32(ukernel.TypeFloat32)<<8 | uint32(ukernel.TypeFloat32)<<16)
	TypeI8I8I32   = Type(uint32(ukernel.TypeInt8) | uint32(ukernel.TypeInt8)<<8 | uint32(ukernel.TypeInt32)<<16)
)

// Params describes one mmt4d call: a matrix multiplication with the
// right-hand side transposed, on operands that are already tiled.
//
// LHS is [M, K, M0, K0] with dim-0 stride LHSStride0, RHS is [N, K, N0, K0]
// with dim-0 stride RHSStride0 and the output is [M, N, M0, N0] with dim-0
// stride OutStride0. Inner dims are contiguous and strides count elements.
//
//	out[m, n, m0, n0] (+)= sum over k, k0 of lhs[m, k, m0, k0] * rhs[n, k, n0, k0]
//
// With FlagMmt4dAccumulate the sum is added to the existing output,
// otherwise the output is overwritten.
type Params struct {
	Type       Type
	Flags      uint32
	LHSStride0 int
	RHSStride0 int
	OutStride0 int
	M          int
	N          int
	K          int
	M0         int
	N0         int
	K0         int
	LHSBuffer  []byte
	RHSBuffer  []byte
	OutBuffer  []byte
	CPUData    []uint64
}

// LHSType returns the left-hand side element type.
func (p *Params) LHSType() ukernel.Type {
	return p.Type.At(0)
}

// RHSType returns the right-hand side element type.
func (p *Params) RHSType() ukernel.Type {
	return p.Type.At(1)
}

// OutType returns the output element type.
func (p *Params) OutType() ukernel.Type {
	return p.Type.At(2)
}

func (p *Params) accumulate() bool {
	return p.Flags&ukernel.FlagMmt4dAccumulate != 0
}

func isSupportedType(t Type) bool {
	return t == TypeF32F32F32 || t == TypeI8I8I32
}
