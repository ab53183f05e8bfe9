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

import "testing"

func TestTypeAccessors(t *testing.T) {
	tests := []struct {
		typ      Type
		category TypeCategory
		bits     int
		size     int
	}{
		{TypeOpaque8, TypeCategoryOpaque, 8, 1},
		{TypeInt8, TypeCategoryInteger, 8, 1},
		{TypeSInt16, TypeCategorySignedInteger, 16, 2},
		{TypeUInt32, TypeCategoryUnsignedInteger, 32, 4},
		{TypeInt64, TypeCategoryInteger, 64, 8},
		{TypeFloat16, TypeCategoryIEEEFloat, 16, 2},
		{TypeFloat32, TypeCategoryIEEEFloat, 32, 4},
		{TypeFloat64, TypeCategoryIEEEFloat, 64, 8},
		{TypeBFloat16, TypeCategoryBrainFloat, 16, 2},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			if got := tt.typ.Category(); got != tt.category {
				t.Errorf("Category() = %#x, want %#x", got, tt.category)
			}
			if got := tt.typ.BitCount(); got != tt.bits {
				t.Errorf("BitCount() = %d, want %d", got, tt.bits)
			}
			if got := tt.typ.Size(); got != tt.size {
				t.Errorf("Size() = %d, want %d", got, tt.size)
			}
			if got := 1 << tt.typ.SizeLog2(); got != tt.size {
				t.Errorf("1<<SizeLog2() = %d, want %d", got, tt.size)
			}
		})
	}
}

func TestTypeEncoding(t *testing.T) {
	if TypeNone != 0 {
		t.Fatalf("TypeNone = %#x, want 0", TypeNone)
	}
	// Values generated code relies on.
	if TypeFloat32 != 0xF5 || TypeInt8 != 0x23 || TypeInt32 != 0x25 || TypeBFloat16 != 0xE4 {
		t.Errorf("unexpected encodings: f32=%#x i8=%#x i32=%#x bf16=%#x",
			uint8(TypeFloat32), uint8(TypeInt8), uint8(TypeInt32), uint8(TypeBFloat16))
	}
}

func TestKnownTypesInvariants(t *testing.T) {
	categories := map[TypeCategory]bool{
		TypeCategoryNone:            true,
		TypeCategoryOpaque:          true,
		TypeCategoryInteger:         true,
		TypeCategorySignedInteger:   true,
		TypeCategoryUnsignedInteger: true,
		TypeCategoryBrainFloat:      true,
		TypeCategoryIEEEFloat:       true,
	}
	for _, typ := range KnownTypes() {
		bits := typ.BitCount()
		if bits < 1 || bits > 128 || bits&(bits-1) != 0 {
			t.Errorf("%v: BitCount() = %d, want a power of two in [1,128]", typ, bits)
		}
		if !categories[typ.Category()] {
			t.Errorf("%v: Category() = %#x is not a defined category", typ, typ.Category())
		}
		if typ&0x08 != 0 {
			t.Errorf("%v: reserved bit 3 is set", typ)
		}
		if got, ok := ParseType(typ.String()); !ok || got != typ {
			t.Errorf("ParseType(%q) = %v, %v; want %v", typ.String(), got, ok, typ)
		}
	}
}

func TestIsFloat(t *testing.T) {
	for _, typ := range KnownTypes() {
		want := typ.Category() == TypeCategoryIEEEFloat || typ.Category() == TypeCategoryBrainFloat
		if got := typ.IsFloat(); got != want {
			t.Errorf("%v.IsFloat() = %v, want %v", typ, got, want)
		}
	}
}

func TestPackUnpackTypes(t *testing.T) {
	types := KnownTypes()
	for _, t0 := range types {
		for _, t1 := range types {
			pair := PackTypes2(t0, t1)
			if got := UnpackType(0, uint32(pair)); got != t0 {
				t.Errorf("UnpackType(0, %#x) = %v, want %v", pair, got, t0)
			}
			if got := UnpackType(1, uint32(pair)); got != t1 {
				t.Errorf("UnpackType(1, %#x) = %v, want %v", pair, got, t1)
			}
		}
	}
	triple := PackTypes3(TypeInt8, TypeInt8, TypeInt32)
	if triple != 0x252323 {
		t.Errorf("PackTypes3(i8, i8, i32) = %#x, want 0x252323", triple)
	}
	for pos, want := range []Type{TypeInt8, TypeInt8, TypeInt32} {
		if got := triple.At(pos); got != want {
			t.Errorf("triple.At(%d) = %v, want %v", pos, got, want)
		}
	}
	if got := triple.String(); got != "i8i8i32" {
		t.Errorf("triple.String() = %q, want %q", got, "i8i8i32")
	}
	if got := PackTypes2(TypeFloat32, TypeFloat32).String(); got != "f32f32" {
		t.Errorf("pair.String() = %q, want %q", got, "f32f32")
	}
}

func TestTypeStringUnnamed(t *testing.T) {
	if got := Type(0x15 | 0x08).String(); got != "type(0x1d)" {
		t.Errorf("String() = %q, want %q", got, "type(0x1d)")
	}
	if got := Type(0x21).String(); got != "type(0x21)" {
		t.Errorf("String() of a 2-bit integer = %q, want %q", got, "type(0x21)")
	}
}
