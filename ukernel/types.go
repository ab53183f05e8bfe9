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

package ukernel

import "strconv"

// Type is the compact element type id of a buffer passed to a microkernel.
//
// It is a bit-field:
//   - Bits 4..7 encode the category, see TypeCategoryMask.
//   - Bit 3 is reserved and must be 0.
//   - Bits 0..2 encode log2 of the bit width, so widths 1..128 are
//     representable as long as they are powers of two.
//
// The encoding is shared with generated code and must not change.
type Type uint8

// TypeCategory is the category field of a Type, i.e. Type & TypeCategoryMask.
type TypeCategory uint8

const (
	// TypeCategoryMask selects the category bits of a Type.
	TypeCategoryMask = 0xF0

	// TypeBitCountLog2Mask selects the bit-count-log2 bits of a Type.
	TypeBitCountLog2Mask = 0x07
)

// Integer-ish categories count up from 1, float-ish categories count down
// from 0xF, so "is floating point" stays a single comparison.
const (
	// TypeCategoryNone is only used by TypeNone.
	TypeCategoryNone TypeCategory = 0x00

	// TypeCategoryOpaque values are just bits, for kernels that only move data.
	TypeCategoryOpaque TypeCategory = 0x10

	// TypeCategoryInteger is a signless integer, for same-width arithmetic
	// that does not depend on signedness.
	TypeCategoryInteger TypeCategory = 0x20

	// TypeCategorySignedInteger is used where sign extension matters.
	TypeCategorySignedInteger TypeCategory = 0x30

	// TypeCategoryUnsignedInteger is used where zero extension matters.
	TypeCategoryUnsignedInteger TypeCategory = 0x40

	// TypeCategoryBrainFloat is the bfloat16 family.
	TypeCategoryBrainFloat TypeCategory = 0xE0

	// TypeCategoryIEEEFloat is IEEE 754 binary floating point.
	TypeCategoryIEEEFloat TypeCategory = 0xF0
)

// Element types.
const (
	TypeNone     = Type(TypeCategoryNone) | 0
	TypeOpaque8  = Type(TypeCategoryOpaque) | 3
	TypeOpaque16 = Type(TypeCategoryOpaque) | 4
	TypeOpaque32 = Type(TypeCategoryOpaque) | 5
	TypeOpaque64 = Type(TypeCategoryOpaque) | 6
	TypeInt8     = Type(TypeCategoryInteger) | 3
	TypeInt16    = Type(TypeCategoryInteger) | 4
	TypeInt32    = Type(TypeCategoryInteger) | 5
	TypeInt64    = Type(TypeCategoryInteger) | 6
	TypeSInt8    = Type(TypeCategorySignedInteger) | 3
	TypeSInt16   = Type(TypeCategorySignedInteger) | 4
	TypeSInt32   = Type(TypeCategorySignedInteger) | 5
	TypeSInt64   = Type(TypeCategorySignedInteger) | 6
	TypeUInt8    = Type(TypeCategoryUnsignedInteger) | 3
	TypeUInt16   = Type(TypeCategoryUnsignedInteger) | 4
	TypeUInt32   = Type(TypeCategoryUnsignedInteger) | 5
	TypeUInt64   = Type(TypeCategoryUnsignedInteger) | 6
	TypeFloat16  = Type(TypeCategoryIEEEFloat) | 4
	TypeFloat32  = Type(TypeCategoryIEEEFloat) | 5
	TypeFloat64  = Type(TypeCategoryIEEEFloat) | 6
	TypeBFloat16 = Type(TypeCategoryBrainFloat) | 4
)

// Category returns the category field of t.
func (t Type) Category() TypeCategory {
	return TypeCategory(t & TypeCategoryMask)
}

// BitCountLog2 returns log2 of the bit width of t.
func (t Type) BitCountLog2() int {
	return int(t & TypeBitCountLog2Mask)
}

// BitCount returns the bit width of t.
func (t Type) BitCount() int {
	return 1 << t.BitCountLog2()
}

// SizeLog2 returns log2 of the byte size of t.
//
// The result is meaningless if the bit count of t is not a multiple of 8.
// It may currently be negative in that case; do not rely on it.
func (t Type) SizeLog2() int {
	return t.BitCountLog2() - 3
}

// Size returns the byte size of t.
//
// PRECONDITION: the bit count of t is a multiple of 8. Otherwise the shift
// amount is negative and Size panics; there is no masking.
func (t Type) Size() int {
	return 1 << t.SizeLog2()
}

// IsFloat reports whether t is a floating-point type of any flavor.
func (t Type) IsFloat() bool {
	return t.Category() >= TypeCategoryBrainFloat
}

// KnownTypes returns every named element type, in encoding order.
func KnownTypes() []Type {
	return []Type{
		TypeNone,
		TypeOpaque8, TypeOpaque16, TypeOpaque32, TypeOpaque64,
		TypeInt8, TypeInt16, TypeInt32, TypeInt64,
		TypeSInt8, TypeSInt16, TypeSInt32, TypeSInt64,
		TypeUInt8, TypeUInt16, TypeUInt32, TypeUInt64,
		TypeBFloat16,
		TypeFloat16, TypeFloat32, TypeFloat64,
	}
}

// String returns the short MLIR-like name of t ("f32", "i8", ...), or the
// hex encoding for ids without a name.
func (t Type) String() string {
	var prefix string
	switch t.Category() {
	case TypeCategoryNone:
		if t == TypeNone {
			return "none"
		}
	case TypeCategoryOpaque:
		prefix = "x"
	case TypeCategoryInteger:
		prefix = "i"
	case TypeCategorySignedInteger:
		prefix = "si"
	case TypeCategoryUnsignedInteger:
		prefix = "ui"
	case TypeCategoryBrainFloat:
		prefix = "bf"
	case TypeCategoryIEEEFloat:
		prefix = "f"
	}
	if prefix == "" || t&0x08 != 0 || t.BitCountLog2() < 3 {
		return "type(0x" + strconv.FormatUint(uint64(t), 16) + ")"
	}
	return prefix + strconv.Itoa(t.BitCount())
}

// ParseType is the inverse of Type.String for the types in KnownTypes.
func ParseType(name string) (Type, bool) {
	for _, t := range KnownTypes() {
		if t.String() == name {
			return t, true
		}
	}
	return TypeNone, false
}

// TypePair is two Types packed side by side, position i in bits [8i, 8i+8).
// Kernels switch on pairs and triples instead of nesting switches.
type TypePair uint16

// TypeTriple is three Types packed side by side, see TypePair.
type TypeTriple uint32

// PackTypes2 packs t0 and t1 into a pair.
func PackTypes2(t0, t1 Type) TypePair {
	return TypePair(uint16(t0) | uint16(t1)<<8)
}

// PackTypes3 packs t0, t1 and t2 into a triple.
func PackTypes3(t0, t1, t2 Type) TypeTriple {
	return TypeTriple(uint32(t0) | uint32(t1)<<8 | uint32(t2)<<16)
}

// UnpackType extracts the Type at byte position pos of word.
func UnpackType(pos int, word uint32) Type {
	return Type(word >> (8 * pos))
}

// At returns the Type at position pos (0 or 1) of the pair.
func (p TypePair) At(pos int) Type {
	return UnpackType(pos, uint32(p))
}

// String formats the pair as e.g. "f32f32".
func (p TypePair) String() string {
	return p.At(0).String() + p.At(1).String()
}

// At returns the Type at position pos (0, 1 or 2) of the triple.
func (t TypeTriple) At(pos int) Type {
	return UnpackType(pos, uint32(t))
}

// String formats the triple as e.g. "i8i8i32".
func (t TypeTriple) String() string {
	return t.At(0).String() + t.At(1).String() + t.At(2).String()
}
