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

// x86-64 kernels. AVX-512 doubles the AVX2 tile in both dimensions; the
// VNNI kernel differs from the AVX-512 base one only in how int8 pairs are
// accumulated.

func tile8x8x1F32X86_64AVX2FMA(out, lhs, rhs []byte, p *Params) {
	var acc [64]float32
	loadAccF32(acc[:], out, p.accumulate())
	for k := range p.K {
		outerProductF32(acc[:], lhs[k*32:][:32], rhs[k*32:][:32], 8, 8)
	}
	storeAccF32(out[:256], acc[:])
}

func tile16x16x1F32X86_64AVX512Base(out, lhs, rhs []byte, p *Params) {
	var acc [256]float32
	loadAccF32(acc[:], out, p.accumulate())
	for k := range p.K {
		outerProductF32(acc[:], lhs[k*64:][:64], rhs[k*64:][:64], 16, 16)
	}
	storeAccF32(out[:1024], acc[:])
}

func tile8x8x2I8X86_64AVX2FMA(out, lhs, rhs []byte, p *Params) {
	var acc [64]int32
	loadAccI32(acc[:], out, p.accumulate())
	for k := range p.K {
		pairProductI8(acc[:], lhs[k*16:][:16], rhs[k*16:][:16], 8, 8)
	}
	storeAccI32(out[:256], acc[:])
}

func tile16x16x2I8X86_64AVX512Base(out, lhs, rhs []byte, p *Params) {
	var acc [256]int32
	loadAccI32(acc[:], out, p.accumulate())
	for k := range p.K {
		pairProductI8(acc[:], lhs[k*32:][:32], rhs[k*32:][:32], 16, 16)
	}
	storeAccI32(out[:1024], acc[:])
}

func tile16x16x2I8X86_64AVX512VNNI(out, lhs, rhs []byte, p *Params) {
	var acc [256]int32
	loadAccI32(acc[:], out, p.accumulate())
	for k := range p.K {
		pairProductAccI8(acc[:], lhs[k*32:][:32], rhs[k*32:][:32], 16, 16)
	}
	storeAccI32(out[:1024], acc[:])
}

// selectTileFuncX86_64 tries the kernels of a tile shape from the most to
// the least demanding feature set.
func selectTileFuncX86_64(p *Params) TileFunc {
	switch {
	case p.Type == TypeI8I8I32 && p.M0 == 16 && p.N0 == 16 && p.K0 == 2:
		if hasFeatures(p, cpuX86_64AVX512VNNI) {
			return tile16x16x2I8X86_64AVX512VNNI
		}
		if hasFeatures(p, cpuX86_64AVX512Base) {
			return tile16x16x2I8X86_64AVX512Base
		}
	case p.Type == TypeI8I8I32 && p.M0 == 8 && p.N0 == 8 && p.K0 == 2:
		if hasFeatures(p, cpuX86_64AVX2FMA) {
			return tile8x8x2I8X86_64AVX2FMA
		}
	case p.Type == TypeF32F32F32 && p.M0 == 16 && p.N0 == 16 && p.K0 == 1:
		if hasFeatures(p, cpuX86_64AVX512Base) {
			return tile16x16x1F32X86_64AVX512Base
		}
	case p.Type == TypeF32F32F32 && p.M0 == 8 && p.N0 == 8 && p.K0 == 1:
		if hasFeatures(p, cpuX86_64AVX2FMA) {
			return tile8x8x1F32X86_64AVX2FMA
		}
	}
	return nil
}
