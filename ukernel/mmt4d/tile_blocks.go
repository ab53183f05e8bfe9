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

// Building blocks of the fixed-shape kernels. Each works on a register-like
// accumulator tile of at most 16x16 and reads one K step of the panels.

// outerProductF32 adds the outer product of an m0-vector and an n0-vector
// of float32 (K0 == 1) to acc.
func outerProductF32(acc []float32, lhs, rhs []byte, m0, n0 int) {
	var lv, rv [16]float32
	for i := range m0 {
		lv[i] = loadF32(lhs, i)
	}
	for j := range n0 {
		rv[j] = loadF32(rhs, j)
	}
	for i := range m0 {
		row := acc[i*n0 : (i+1)*n0]
		for j := range row {
			row[j] += float32(lv[i] * rv[j])
		}
	}
}

// outerProductI8 is outerProductF32 for sign-extended int8.
func outerProductI8(acc []int32, lhs, rhs []byte, m0, n0 int) {
	var lv, rv [16]int32
	for i := range m0 {
		lv[i] = int32(int8(lhs[i]))
	}
	for j := range n0 {
		rv[j] = int32(int8(rhs[j]))
	}
	for i := range m0 {
		row := acc[i*n0 : (i+1)*n0]
		for j := range row {
			row[j] += lv[i] * rv[j]
		}
	}
}

// dotI8 returns the int32 dot product of the first n int8 of a and b.
func dotI8(a, b []byte, n int) int32 {
	var sum int32
	for i := range n {
		sum += int32(int8(a[i])) * int32(int8(b[i]))
	}
	return sum
}

// dotProductI8 adds, for every (i, j), the k0-long dot product of lhs row i
// and rhs row j to acc, like a row of sdot instructions.
func dotProductI8(acc []int32, lhs, rhs []byte, m0, n0, k0 int) {
	for i := range m0 {
		l := lhs[i*k0:]
		for j := range n0 {
			acc[i*n0+j] += dotI8(l, rhs[j*k0:], k0)
		}
	}
}

// matmulBlocksI8 walks the tile in 2x2 blocks of 8-deep dot products, the
// granularity of smmla.
func matmulBlocksI8(acc []int32, lhs, rhs []byte, m0, n0 int) {
	for i := 0; i < m0; i += 2 {
		for j := 0; j < n0; j += 2 {
			l0, l1 := lhs[i*8:][:8], lhs[(i+1)*8:][:8]
			r0, r1 := rhs[j*8:][:8], rhs[(j+1)*8:][:8]
			acc[i*n0+j] += dotI8(l0, r0, 8)
			acc[i*n0+j+1] += dotI8(l0, r1, 8)
			acc[(i+1)*n0+j] += dotI8(l1, r0, 8)
			acc[(i+1)*n0+j+1] += dotI8(l1, r1, 8)
		}
	}
}

// pairProductI8 handles K0 == 2 the way pmaddwd does: both products of a
// pair are summed in int32 first and the pair sum is then accumulated.
func pairProductI8(acc []int32, lhs, rhs []byte, m0, n0 int) {
	for i := range m0 {
		l0, l1 := int32(int8(lhs[2*i])), int32(int8(lhs[2*i+1]))
		for j := range n0 {
			r0, r1 := int32(int8(rhs[2*j])), int32(int8(rhs[2*j+1]))
			acc[i*n0+j] += l0*r0 + l1*r1
		}
	}
}

// pairProductAccI8 is pairProductI8 with both products accumulated
// directly, the way vpdpwssd does.
func pairProductAccI8(acc []int32, lhs, rhs []byte, m0, n0 int) {
	for i := range m0 {
		l0, l1 := int32(int8(lhs[2*i])), int32(int8(lhs[2*i+1]))
		row := acc[i*n0 : (i+1)*n0]
		for j := range row {
			a := row[j]
			a += l0 * int32(int8(rhs[2*j]))
			a += l1 * int32(int8(rhs[2*j+1]))
			row[j] = a
		}
	}
}
