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
	"encoding/binary"
	"math"

	"github.com/ajroetker/go-ukernel/ukernel"
)

// Accumulator tiles of the generic kernels live on the stack.
const (
	maxGenericAccF32 = ukernel.ScratchTileBytes / 4
	maxGenericAccI32 = ukernel.ScratchTileBytes / 4
)

func loadAccF32(acc []float32, out []byte, accumulate bool) {
	if !accumulate {
		clear(acc)
		return
	}
	for i := range acc {
		acc[i] = math.Float32frombits(binary.NativeEndian.Uint32(out[4*i:]))
	}
}

func storeAccF32(out []byte, acc []float32) {
	for i, v := range acc {
		binary.NativeEndian.PutUint32(out[4*i:], math.Float32bits(v))
	}
}

func loadAccI32(acc []int32, out []byte, accumulate bool) {
	if !accumulate {
		clear(acc)
		return
	}
	for i := range acc {
		acc[i] = int32(binary.NativeEndian.Uint32(out[4*i:]))
	}
}

func storeAccI32(out []byte, acc []int32) {
	for i, v := range acc {
		binary.NativeEndian.PutUint32(out[4*i:], uint32(v))
	}
}

func loadF32(buf []byte, i int) float32 {
	return math.Float32frombits(binary.NativeEndian.Uint32(buf[4*i:]))
}

// tileF32F32F32Generic computes one M0 x N0 output tile. Products are
// rounded to float32 before they are added, so every kernel produces
// bit-identical results.
func tileF32F32F32Generic(out, lhs, rhs []byte, p *Params) {
	m0, n0, k0 := p.M0, p.N0, p.K0
	var accBuf [maxGenericAccF32]float32
	acc := accBuf[:m0*n0]
	loadAccF32(acc, out, p.accumulate())
	for k := range p.K {
		l := lhs[k*m0*k0*4:]
		r := rhs[k*n0*k0*4:]
		for i := range m0 {
			for j := range n0 {
				a := acc[i*n0+j]
				for kk := range k0 {
					a += float32(loadF32(l, i*k0+kk) * loadF32(r, j*k0+kk))
				}
				acc[i*n0+j] = a
			}
		}
	}
	storeAccF32(out, acc)
}

// tileI8I8I32Generic computes one M0 x N0 output tile with wrapping int32
// accumulation of sign-extended int8 products.
func tileI8I8I32Generic(out, lhs, rhs []byte, p *Params) {
	m0, n0, k0 := p.M0, p.N0, p.K0
	var accBuf [maxGenericAccI32]int32
	acc := accBuf[:m0*n0]
	loadAccI32(acc, out, p.accumulate())
	for k := range p.K {
		l := lhs[k*m0*k0:]
		r := rhs[k*n0*k0:]
		for i := range m0 {
			for j := range n0 {
				a := acc[i*n0+j]
				for kk := range k0 {
					a += int32(int8(l[i*k0+kk])) * int32(int8(r[j*k0+kk]))
				}
				acc[i*n0+j] = a
			}
		}
	}
	storeAccI32(out, acc)
}

func selectTileFuncGeneric(p *Params) TileFunc {
	switch p.Type {
	case TypeF32F32F32:
		return tileF32F32F32Generic
	case TypeI8I8I32:
		return tileI8I8I32Generic
	}
	return nil
}
