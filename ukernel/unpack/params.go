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

package unpack

import "github.com/ajroetker/go-ukernel/ukernel"

// Type is the (input, output) element type pair of an unpack.
type Type = ukernel.TypePair

// Supported unpack types, the same as for pack.
const (
	TypeF32F32   = Type(uint16(ukernel.TypeFloat32) | uint16(ukernel.TypeFloat32)<<8)
	TypeI8I8     = Type(uint16(ukernel.TypeInt8) | uint16(ukernel.TypeInt8)<<8)
	TypeI32I32   = Type(uint16(ukernel.TypeInt32) | uint16(ukernel.TypeInt32)<<8)
	TypeF16F16   = Type(uint16(ukernel.TypeFloat16) | uint16(ukernel.TypeFloat16)<<8)
	TypeBF16BF16 = Type(uint16(ukernel.TypeBFloat16) | uint16(ukernel.TypeBFloat16)<<8)
)

// Params describes one unpack call. The field order is part of the ABI
// shared with generated code.
//
// The input is a 4-D tiled array [InSize0, InSize1, InSize2, InSize3] whose
// dim 0 has stride InStride0 and whose inner three dims are contiguous. The
// output is a row-major OutSize0 x OutSize1 matrix with row stride
// OutStride0. Without flags, input element [o0, o1, t0, t1] lands at output
// element [o0*InSize2 + t0, o1*InSize3 + t1]; elements that land outside the
// output are padding and are dropped. FlagUnpackTransposeOuter swaps the
// roles of input dims 0 and 1, FlagUnpackTransposeInner those of dims 2 and
// 3. All strides count elements.
type Params struct {
	Type       Type
	Flags      uint32
	InStride0  int
	OutStride0 int
	InSize0    int
	InSize1    int
	InSize2    int
	InSize3    int
	OutSize0   int
	OutSize1   int
	InBuffer   []byte
	OutBuffer  []byte
	CPUData    []uint64
}

// InType returns the input element type.
func (p *Params) InType() ukernel.Type {
	return p.Type.At(0)
}

// OutType returns the output element type.
func (p *Params) OutType() ukernel.Type {
	return p.Type.At(1)
}

type layout struct {
	outerSize0, outerSize1 int
	tileSize0, tileSize1   int
	inStrideL0, inStrideL1 int
	elemSize               int
	transposeInner         bool
}

func (p *Params) layout() layout {
	l := layout{
		outerSize0:     p.InSize0,
		outerSize1:     p.InSize1,
		tileSize0:      p.InSize2,
		tileSize1:      p.InSize3,
		inStrideL0:     p.InStride0,
		inStrideL1:     p.InSize2 * p.InSize3,
		transposeInner: p.Flags&ukernel.FlagUnpackTransposeInner != 0,
	}
	if p.Flags&ukernel.FlagUnpackTransposeOuter != 0 {
		l.outerSize0, l.outerSize1 = l.outerSize1, l.outerSize0
		l.inStrideL0, l.inStrideL1 = l.inStrideL1, l.inStrideL0
	}
	if l.transposeInner {
		l.tileSize0, l.tileSize1 = l.tileSize1, l.tileSize0
	}
	if isSupportedType(p.Type) {
		l.elemSize = p.OutType().Size()
	}
	return l
}

func isSupportedType(t Type) bool {
	switch t {
	case TypeF32F32, TypeI8I8, TypeI32I32, TypeF16F16, TypeBF16BF16:
		return true
	}
	return false
}
