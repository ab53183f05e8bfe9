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

// AArch64 kernels. Tile shapes follow the instructions they model: sdot
// consumes 4 int8 per lane, smmla a 2x8 by 8x2 block.

func tile8x8x1F32ARM64(out, lhs, rhs []byte, p *Params) {
	var acc [64]float32
	loadAccF32(acc[:], out, p.accumulate())
	for k := range p.K {
		outerProductF32(acc[:], lhs[k*32:][:32], rhs[k*32:][:32], 8, 8)
	}
	storeAccF32(out[:256], acc[:])
}

func tile8x8x1I8ARM64(out, lhs, rhs []byte, p *Params) {
	var acc [64]int32
	loadAccI32(acc[:], out, p.accumulate())
	for k := range p.K {
		outerProductI8(acc[:], lhs[k*8:][:8], rhs[k*8:][:8], 8, 8)
	}
	storeAccI32(out[:256], acc[:])
}

func tile8x8x4I8ARM64DotProd(out, lhs, rhs []byte, p *Params) {
	var acc [64]int32
	loadAccI32(acc[:], out, p.accumulate())
	for k := range p.K {
		dotProductI8(acc[:], lhs[k*32:][:32], rhs[k*32:][:32], 8, 8, 4)
	}
	storeAccI32(out[:256], acc[:])
}

func tile8x8x8I8ARM64I8MM(out, lhs, rhs []byte, p *Params) {
	var acc [64]int32
	loadAccI32(acc[:], out, p.accumulate())
	for k := range p.K {
		matmulBlocksI8(acc[:], lhs[k*64:][:64], rhs[k*64:][:64], 8, 8)
	}
	storeAccI32(out[:256], acc[:])
}

func selectTileFuncARM64(p *Params) TileFunc {
	switch {
	case p.Type == TypeI8I8I32 && p.M0 == 8 && p.N0 == 8 && p.K0 == 8:
		if hasFeatures(p, cpuARM64I8MM) {
			return tile8x8x8I8ARM64I8MM
		}
	case p.Type == TypeI8I8I32 && p.M0 == 8 && p.N0 == 8 && p.K0 == 4:
		if hasFeatures(p, cpuARM64DotProd) {
			return tile8x8x4I8ARM64DotProd
		}
	case p.Type == TypeI8I8I32 && p.M0 == 8 && p.N0 == 8 && p.K0 == 1:
		return tile8x8x1I8ARM64
	case p.Type == TypeF32F32F32 && p.M0 == 8 && p.N0 == 8 && p.K0 == 1:
		return tile8x8x1F32ARM64
	}
	return nil
}
