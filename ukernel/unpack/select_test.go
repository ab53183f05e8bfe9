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

import (
	"math/rand/v2"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ajroetker/go-ukernel/ukernel"
)

func funcPointer(f TileFunc) uintptr {
	return reflect.ValueOf(f).Pointer()
}

func TestSpecializationsMatchGeneric(t *testing.T) {
	rng := rand.New(rand.NewPCG(31, 32))
	for _, v := range Specializations() {
		t.Run(v.Name, func(t *testing.T) {
			generic := tileGenericDirect
			if v.TransposeInner {
				generic = tileGenericTranspose
			}
			for _, outer1 := range []int{0, 1, 3} {
				inStrideL1 := v.TileSize0*v.TileSize1 + 3
				in := randomBytes(rng, (outer1*inStrideL1+1)*v.ElemSize)
				outStride0 := outer1*v.TileSize1 + 2
				want := randomBytes(rng, v.TileSize0*outStride0*v.ElemSize)
				got := append([]byte(nil), want...)
				wantRest := generic(want, in, outer1, inStrideL1, outStride0, v.ElemSize, v.TileSize0, v.TileSize1)
				gotRest := v.Func(got, in, outer1, inStrideL1, outStride0, v.ElemSize, v.TileSize0, v.TileSize1)
				if diff := cmp.Diff(want, got); diff != "" {
					t.Errorf("outer1=%d: output mismatch (-generic +%s):\n%s", outer1, v.Name, diff)
				}
				if len(gotRest) != len(wantRest) {
					t.Errorf("outer1=%d: returned %d bytes remaining, generic returned %d", outer1, len(gotRest), len(wantRest))
				}
			}
		})
	}
}

func TestSelectTileFunc(t *testing.T) {
	rng := rand.New(rand.NewPCG(33, 34))
	for _, v := range Specializations() {
		typ := TypeI8I8
		if v.ElemSize == 4 {
			typ = TypeF32F32
		}
		var flags uint32
		if v.TransposeInner {
			flags = ukernel.FlagUnpackTransposeInner
		}
		p := newParams(rng, typ, flags, v.TileSize0, v.TileSize1, v.TileSize0, v.TileSize1)
		if got := SelectTileFuncForArch(v.Arch, p); funcPointer(got) != funcPointer(v.Func) {
			t.Errorf("%s: selector did not pick the variant", v.Name)
		}
		if got := SelectTileFuncForArch(ukernel.ArchX86_64, p); funcPointer(got) == funcPointer(v.Func) {
			t.Errorf("%s: selected on x86_64", v.Name)
		}
	}
	p := &Params{Type: ukernel.PackTypes2(ukernel.TypeInt8, ukernel.TypeInt32), InSize2: 8, InSize3: 8}
	if SelectTileFunc(p) != nil {
		t.Errorf("SelectTileFunc() != nil for an unsupported type")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Params {
		return &Params{
			Type:       TypeI32I32,
			InStride0:  8,
			OutStride0: 4,
			InSize0:    2,
			InSize1:    2,
			InSize2:    2,
			InSize3:    2,
			OutSize0:   4,
			OutSize1:   4,
			InBuffer:   make([]byte, 16*4),
			OutBuffer:  make([]byte, 16*4),
		}
	}
	tests := []struct {
		name   string
		modify func(p *Params)
		want   ukernel.Status
	}{
		{"Valid", func(p *Params) {}, ukernel.StatusOK},
		{"Padded", func(p *Params) { p.OutSize0, p.OutSize1 = 3, 3 }, ukernel.StatusOK},
		{"UnknownFlag", func(p *Params) { p.Flags = 0x10 }, ukernel.StatusBadFlags},
		{"BadType", func(p *Params) { p.Type = ukernel.PackTypes2(ukernel.TypeFloat64, ukernel.TypeFloat64) }, ukernel.StatusBadType},
		{"NegativeSize", func(p *Params) { p.OutSize1 = -4 }, ukernel.StatusUnsupportedHugeOrNegativeDimension},
		{"HugeStride", func(p *Params) { p.InStride0 = 1 << 40 }, ukernel.StatusUnsupportedHugeOrNegativeDimension},
		{"ZeroTileSize", func(p *Params) { p.InSize2 = 0 }, ukernel.StatusShapesMismatch},
		{"OuterMismatch", func(p *Params) { p.OutSize0 = 5 }, ukernel.StatusShapesMismatch},
		{"ShortOutStride", func(p *Params) { p.OutStride0 = 3 }, ukernel.StatusShapesMismatch},
		{"ShortInStride", func(p *Params) { p.InStride0 = 7 }, ukernel.StatusShapesMismatch},
		{"PaddedTileTooLarge", func(p *Params) {
			p.InSize0, p.InSize1 = 1, 1
			p.InSize2, p.InSize3 = 40, 40
			p.InStride0 = 1600
			p.OutSize0, p.OutSize1 = 39, 40
			p.OutStride0 = 40
			p.InBuffer = make([]byte, 1600*4)
			p.OutBuffer = make([]byte, 1600*4)
		}, ukernel.StatusUnsupportedGenericTileSize},
		{"ShortInBuffer", func(p *Params) { p.InBuffer = p.InBuffer[:60] }, ukernel.StatusShapesMismatch},
		{"ShortOutBuffer", func(p *Params) { p.OutBuffer = nil }, ukernel.StatusShapesMismatch},
		{"Empty", func(p *Params) {
			p.InSize0, p.OutSize0 = 0, 0
			p.InBuffer, p.OutBuffer = nil, nil
		}, ukernel.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid()
			tt.modify(p)
			if got := Validate(p); got != tt.want {
				t.Errorf("Validate() = %v, want %v", got, tt.want)
			}
		})
	}
}
