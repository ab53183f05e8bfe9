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

package pack

import "github.com/ajroetker/go-ukernel/ukernel"

// Type is the (input, output) element type pair of a pack.
type Type = ukernel.TypePair

// Supported pack types. Pack only moves bits, so both sides always match.
const (
	TypeF32F32   = Type(uint16(ukernel.TypeFloat32) | uint16(ukernel.TypeFloat32)<<8)
	TypeI8I8     = Type(uint16(ukernel.TypeInt8) | uint16(ukernel.TypeInt8)<<8)
	TypeI32I32   = Type(uint16(ukernel.TypeInt32) | uint16(ukernel.TypeInt32)<<8)
	TypeF16F16   = Type(uint16(ukernel.TypeFloat16) | uint16(ukernel.TypeFloat16)<<8)
	TypeBF16BF16 = Type(uint16(ukernel.TypeBFloat16) | uint16(ukernel.TypeBFloat16)<<8)
)

// Params describes one pack call. The field order is part of the ABI shared
// with generated code.
//
// The input is a row-major InSize0 x InSize1 matrix with row stride
// InStride0. The output is a 4-D array [OutSize0, OutSize1, OutSize2,
// OutSize3] whose dim 0 has stride OutStride0 and whose inner three dims are
// contiguous. Without flags, output element [o0, o1, t0, t1] is input
// element [o0*OutSize2 + t0, o1*OutSize3 + t1]. FlagPackTransposeOuter
// swaps the roles of output dims 0 and 1, FlagPackTransposeInner those of
// dims 2 and 3. All strides count elements, not bytes.
//
// Elements of partial boundary tiles that fall outside the input are set to
// the element whose bit pattern is the low bits of PaddingValue.
//
// The caller owns every buffer. Pack never retains any of them.
type Params struct {
	Type         Type
	Flags        uint32
	InStride0    int
	OutStride0   int
	InSize0      int
	InSize1      int
	OutSize0     int
	OutSize1     int
	OutSize2     int
	OutSize3     int
	InBuffer     []byte
	OutBuffer    []byte
	PaddingValue uint64
	CPUData      []uint64
}

// InType returns the input element type.
func (p *Params) InType() ukernel.Type {
	return p.Type.At(0)
}

// OutType returns the output element type.
func (p *Params) OutType() ukernel.Type {
	return p.Type.At(1)
}

// layout is Params resolved into the loop structure of the pack driver.
type layout struct {
	outerSize0, outerSize1   int
	tileSize0, tileSize1     int
	outStrideL0, outStrideL1 int
	elemSize                 int
	transposeInner           bool
}

func (p *Params) layout() layout {
	l := layout{
		outerSize0:     p.OutSize0,
		outerSize1:     p.OutSize1,
		tileSize0:      p.OutSize2,
		tileSize1:      p.OutSize3,
		outStrideL0:    p.OutStride0,
		outStrideL1:    p.OutSize2 * p.OutSize3,
		transposeInner: p.Flags&ukernel.FlagPackTransposeInner != 0,
	}
	if p.Flags&ukernel.FlagPackTransposeOuter != 0 {
		l.outerSize0, l.outerSize1 = l.outerSize1, l.outerSize0
		l.outStrideL0, l.outStrideL1 = l.outStrideL1, l.outStrideL0
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
