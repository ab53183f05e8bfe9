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

package device

import (
	"math"

	"github.com/pkg/errors"
	"github.com/x448/float16"

	"github.com/ajroetker/go-ukernel/ukernel"
)

// PaddingBits encodes v as an element of type t, in the form pack expects
// in Params.PaddingValue: the element's bit pattern in the low bits.
//
// Floating-point values are rounded to nearest even. Integer types require
// an integral v that fits t either signed or unsigned.
func PaddingBits(t ukernel.Type, v float64) (uint64, error) {
	if t.IsFloat() {
		switch t {
		case ukernel.TypeFloat64:
			return math.Float64bits(v), nil
		case ukernel.TypeFloat32:
			return uint64(math.Float32bits(float32(v))), nil
		case ukernel.TypeFloat16:
			return uint64(float16.Fromfloat32(float32(v)).Bits()), nil
		case ukernel.TypeBFloat16:
			return uint64(bfloat16Bits(float32(v))), nil
		}
		return 0, errors.Errorf("no padding encoding for floating-point type %s", t)
	}
	switch t.Category() {
	case ukernel.TypeCategoryOpaque, ukernel.TypeCategoryInteger,
		ukernel.TypeCategorySignedInteger, ukernel.TypeCategoryUnsignedInteger:
	default:
		return 0, errors.Errorf("no padding encoding for type %s", t)
	}
	bits := t.BitCount()
	if bits < 8 || bits > 64 {
		return 0, errors.Errorf("no padding encoding for %d-bit type %s", bits, t)
	}
	if v != math.Trunc(v) {
		return 0, errors.Errorf("padding value %v is not an integer, type %s", v, t)
	}
	lo, hi := -math.Ldexp(1, bits-1), math.Ldexp(1, bits)
	if v < lo || v >= hi {
		return 0, errors.Errorf("padding value %v out of range for %s", v, t)
	}
	var word uint64
	if v < 0 {
		word = uint64(int64(v))
	} else {
		word = uint64(v)
	}
	if bits < 64 {
		word &= 1<<bits - 1
	}
	return word, nil
}

// bfloat16Bits rounds f to the nearest bfloat16, ties to even. NaNs stay
// NaN, quieted, with their sign.
func bfloat16Bits(f float32) uint16 {
	bits := math.Float32bits(f)
	if bits&0x7FFFFFFF > 0x7F800000 {
		return uint16(bits>>16) | 0x0040
	}
	bits += 0x7FFF + (bits>>16)&1
	return uint16(bits >> 16)
}
