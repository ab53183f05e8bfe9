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
	rng := rand.New(rand.NewPCG(51, 52))
	for _, v := range Specializations() {
		t.Run(v.Name, func(t *testing.T) {
			generic := selectTileFuncGeneric(&Params{Type: v.Type})
			for _, k := range []int{1, 2, 7} {
				for _, flags := range []uint32{0, ukernel.FlagMmt4dAccumulate} {
					p := newParams(rng, v.Type, flags, 1, 1, k, v.M0, v.N0, v.K0)
					want := append([]byte(nil), p.OutBuffer...)
					generic(want, p.LHSBuffer, p.RHSBuffer, p)
					v.Func(p.OutBuffer, p.LHSBuffer, p.RHSBuffer, p)
					if diff := cmp.Diff(want, p.OutBuffer); diff != "" {
						t.Errorf("k=%d flags=%d: mismatch (-generic +%s):\n%s", k, flags, v.Name, diff)
					}
				}
			}
		})
	}
}

func TestSelectTileFunc(t *testing.T) {
	for _, v := range Specializations() {
		p := &Params{Type: v.Type, M0: v.M0, N0: v.N0, K0: v.K0, CPUData: []uint64{v.Features}}
		if got := SelectTileFuncForArch(v.Arch, p); funcPointer(got) != funcPointer(v.Func) {
			t.Errorf("%s: not selected with exactly its required features", v.Name)
		}
		if got := SelectTileFuncForArch(ukernel.ArchGeneric, p); funcPointer(got) == funcPointer(v.Func) {
			t.Errorf("%s: selected for the generic architecture", v.Name)
		}
		if v.Features == 0 {
			continue
		}
		p.CPUData = []uint64{0}
		if got := SelectTileFuncForArch(v.Arch, p); funcPointer(got) == funcPointer(v.Func) {
			t.Errorf("%s: selected without its required features", v.Name)
		}
		p.CPUData = nil
		if got := SelectTileFuncForArch(v.Arch, p); funcPointer(got) == funcPointer(v.Func) {
			t.Errorf("%s: selected with no CPU data", v.Name)
		}
	}
	if got := SelectTileFunc(&Params{Type: ukernel.PackTypes3(ukernel.TypeInt8, ukernel.TypeInt8, ukernel.TypeInt16)}); got != nil {
		t.Errorf("SelectTileFunc() != nil for an unsupported type")
	}
}

// TestSelectorMonotonicPreference checks that adding features never makes
// the selector fall back to a less specific kernel.
func TestSelectorMonotonicPreference(t *testing.T) {
	const (
		base = ukernel.CPUData0X86_64AVX512Base
		vnni = ukernel.CPUData0X86_64AVX512VNNI
		avx2 = ukernel.CPUData0X86_64AVX2FMA
	)
	tests := []struct {
		name     string
		features uint64
		want     TileFunc
	}{
		{"None", 0, tileI8I8I32Generic},
		{"AVX2Only", avx2, tileI8I8I32Generic},
		{"Base", base, tile16x16x2I8X86_64AVX512Base},
		{"BaseAndAVX2", base | avx2, tile16x16x2I8X86_64AVX512Base},
		{"VNNIWithoutBase", vnni, tileI8I8I32Generic},
		{"BaseAndVNNI", base | vnni, tile16x16x2I8X86_64AVX512VNNI},
		{"Everything", ^uint64(0), tile16x16x2I8X86_64AVX512VNNI},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Params{Type: TypeI8I8I32, M0: 16, N0: 16, K0: 2, CPUData: []uint64{tt.features, 0, 0, 0, 0, 0, 0, 0}}
			if got := SelectTileFuncForArch(ukernel.ArchX86_64, p); funcPointer(got) != funcPointer(tt.want) {
				t.Errorf("features %#x: selected the wrong kernel", tt.features)
			}
		})
	}

	// Every strict superset of a variant's features must still select a
	// variant at least as specific.
	variants := Specializations()
	for _, v := range variants {
		if v.Arch != ukernel.ArchX86_64 {
			continue
		}
		for extra := range uint64(8) {
			p := &Params{Type: v.Type, M0: v.M0, N0: v.N0, K0: v.K0, CPUData: []uint64{v.Features | extra}}
			got := funcPointer(SelectTileFuncForArch(v.Arch, p))
			var picked *Variant
			for i := range variants {
				if funcPointer(variants[i].Func) == got {
					picked = &variants[i]
				}
			}
			if picked == nil {
				t.Errorf("%s + %#x: fell back to the generic kernel", v.Name, extra)
				continue
			}
			if picked.Features&v.Features != v.Features {
				t.Errorf("%s + %#x: picked %s, which requires fewer features", v.Name, extra, picked.Name)
			}
		}
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Params {
		return &Params{
			Type:       TypeF32F32F32,
			LHSStride0: 3 * 8,
			RHSStride0: 3 * 8,
			OutStride0: 2 * 64,
			M:          2,
			N:          2,
			K:          3,
			M0:         8,
			N0:         8,
			K0:         1,
			LHSBuffer:  make([]byte, 2*24*4),
			RHSBuffer:  make([]byte, 2*24*4),
			OutBuffer:  make([]byte, 2*128*4),
		}
	}
	tests := []struct {
		name   string
		modify func(p *Params)
		want   ukernel.Status
	}{
		{"Valid", func(p *Params) {}, ukernel.StatusOK},
		{"Accumulate", func(p *Params) { p.Flags = ukernel.FlagMmt4dAccumulate }, ukernel.StatusOK},
		{"UnknownFlag", func(p *Params) { p.Flags = 0x2 }, ukernel.StatusBadFlags},
		{"BadType", func(p *Params) { p.Type = ukernel.PackTypes3(ukernel.TypeFloat16, ukernel.TypeFloat16, ukernel.TypeFloat32) }, ukernel.StatusBadType},
		{"NegativeM", func(p *Params) { p.M = -1 }, ukernel.StatusUnsupportedHugeOrNegativeDimension},
		{"HugeK", func(p *Params) { p.K = ukernel.MaxDim + 1 }, ukernel.StatusUnsupportedHugeOrNegativeDimension},
		{"HugeTileArea", func(p *Params) { p.M0, p.N0 = 1<<20, 1<<20 }, ukernel.StatusUnsupportedHugeOrNegativeDimension},
		{"ZeroK0", func(p *Params) { p.K0 = 0 }, ukernel.StatusShapesMismatch},
		{"ShortLHSStride", func(p *Params) { p.LHSStride0 = 23 }, ukernel.StatusShapesMismatch},
		{"ShortRHSStride", func(p *Params) { p.RHSStride0 = 23 }, ukernel.StatusShapesMismatch},
		{"ShortOutStride", func(p *Params) { p.OutStride0 = 127 }, ukernel.StatusShapesMismatch},
		{"GenericTileTooLarge", func(p *Params) {
			p.M0, p.N0 = 33, 32
			p.M, p.N, p.K = 1, 1, 1
			p.LHSBuffer = make([]byte, 33*4)
			p.RHSBuffer = make([]byte, 32*4)
			p.OutBuffer = make([]byte, 33*32*4)
		}, ukernel.StatusUnsupportedGenericTileSize},
		{"ShortLHSBuffer", func(p *Params) { p.LHSBuffer = p.LHSBuffer[:4*47] }, ukernel.StatusShapesMismatch},
		{"ShortRHSBuffer", func(p *Params) { p.RHSBuffer = nil }, ukernel.StatusShapesMismatch},
		{"ShortOutBuffer", func(p *Params) { p.OutBuffer = p.OutBuffer[:4*255] }, ukernel.StatusShapesMismatch},
		{"EmptyM", func(p *Params) { p.M = 0; p.LHSBuffer, p.OutBuffer = nil, nil }, ukernel.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid()
			tt.modify(p)
			for _, arch := range []ukernel.Arch{ukernel.ArchGeneric, ukernel.ArchARM64, ukernel.ArchX86_64} {
				if got := ValidateForArch(arch, p); got != tt.want {
					t.Errorf("ValidateForArch(%v) = %v, want %v", arch, got, tt.want)
				}
			}
		})
	}
}
