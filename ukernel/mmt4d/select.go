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

// TileFunc computes one M0 x N0 output tile from an LHS panel
// [K, M0, K0] and an RHS panel [K, N0, K0]. Only the shape fields, K and
// Flags of p are read.
type TileFunc func(out, lhs, rhs []byte, p *Params)

// Feature sets the kernels require. Each kernel names the full set it
// depends on, so a more specific set is a superset of a less specific one.
const (
	cpuARM64DotProd     = ukernel.CPUData0ARM64DotProd
	cpuARM64I8MM        = ukernel.CPUData0ARM64I8MM
	cpuX86_64AVX2FMA    = ukernel.CPUData0X86_64AVX2FMA
	cpuX86_64AVX512Base = ukernel.CPUData0X86_64AVX512Base
	cpuX86_64AVX512VNNI = ukernel.CPUData0X86_64AVX512Base | ukernel.CPUData0X86_64AVX512VNNI
)

func hasFeatures(p *Params, mask uint64) bool {
	return ukernel.HasCPUFeatures(p.CPUData, mask)
}

// Variant describes an architecture-specific tile function.
type Variant struct {
	Name     string
	Arch     ukernel.Arch
	Features uint64 // required CPU data word 0 bits
	Type     Type
	M0       int
	N0       int
	K0       int
	Func     TileFunc
}

// Specializations lists every architecture-specific mmt4d tile function.
// Within an architecture, variants of the same type and tile shape are
// listed in the order the selector prefers them.
func Specializations() []Variant {
	return []Variant{
		{"mmt4d_tile_i8i8i32_8x8x8_arm_64_i8mm", ukernel.ArchARM64, cpuARM64I8MM, TypeI8I8I32, 8, 8, 8, tile8x8x8I8ARM64I8MM},
		{"mmt4d_tile_i8i8i32_8x8x4_arm_64_dotprod", ukernel.ArchARM64, cpuARM64DotProd, TypeI8I8I32, 8, 8, 4, tile8x8x4I8ARM64DotProd},
		{"mmt4d_tile_i8i8i32_8x8x1_arm_64", ukernel.ArchARM64, 0, TypeI8I8I32, 8, 8, 1, tile8x8x1I8ARM64},
		{"mmt4d_tile_f32f32f32_8x8x1_arm_64", ukernel.ArchARM64, 0, TypeF32F32F32, 8, 8, 1, tile8x8x1F32ARM64},
		{"mmt4d_tile_i8i8i32_16x16x2_x86_64_avx512_vnni", ukernel.ArchX86_64, cpuX86_64AVX512VNNI, TypeI8I8I32, 16, 16, 2, tile16x16x2I8X86_64AVX512VNNI},
		{"mmt4d_tile_i8i8i32_16x16x2_x86_64_avx512_base", ukernel.ArchX86_64, cpuX86_64AVX512Base, TypeI8I8I32, 16, 16, 2, tile16x16x2I8X86_64AVX512Base},
		{"mmt4d_tile_i8i8i32_8x8x2_x86_64_avx2_fma", ukernel.ArchX86_64, cpuX86_64AVX2FMA, TypeI8I8I32, 8, 8, 2, tile8x8x2I8X86_64AVX2FMA},
		{"mmt4d_tile_f32f32f32_16x16x1_x86_64_avx512_base", ukernel.ArchX86_64, cpuX86_64AVX512Base, TypeF32F32F32, 16, 16, 1, tile16x16x1F32X86_64AVX512Base},
		{"mmt4d_tile_f32f32f32_8x8x1_x86_64_avx2_fma", ukernel.ArchX86_64, cpuX86_64AVX2FMA, TypeF32F32F32, 8, 8, 1, tile8x8x1F32X86_64AVX2FMA},
	}
}

// SelectTileFunc returns the tile function Mmt4d uses for p on this host.
func SelectTileFunc(p *Params) TileFunc {
	return SelectTileFuncForArch(ukernel.HostArch(), p)
}

// SelectTileFuncForArch returns the most specific tile function of arch
// whose type, tile shape and CPU features match p, else the generic one,
// or nil if p's type is not supported.
func SelectTileFuncForArch(arch ukernel.Arch, p *Params) TileFunc {
	if !isSupportedType(p.Type) {
		return nil
	}
	if f := selectTileFuncArch(arch, p); f != nil {
		return f
	}
	return selectTileFuncGeneric(p)
}

func selectTileFuncArch(arch ukernel.Arch, p *Params) TileFunc {
	switch arch {
	case ukernel.ArchARM64:
		return selectTileFuncARM64(p)
	case ukernel.ArchX86_64:
		return selectTileFuncX86_64(p)
	}
	return nil
}
