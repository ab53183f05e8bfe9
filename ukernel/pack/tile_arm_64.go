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

package pack

import (
	"encoding/binary"

	"github.com/ajroetker/go-ukernel/ukernel"
)

// AArch64 tile kernels for the tile shapes the compiler picks on that
// target. They move whole 32/64-bit words and ignore the elemSize and tile
// size arguments, which the selector has already matched.

// tile8x1x32ARM64Direct gathers one 8-row column of 32-bit elements per tile.
// With a single column, transposing the tile is a no-op.
func tile8x1x32ARM64Direct(out, in []byte, outerSize1, outStrideL1, inStride0, _, _, _ int) []byte {
	rowBytes := inStride0 * 4
	for o1 := range outerSize1 {
		o := out[o1*outStrideL1*4:][:32]
		i := in[o1*4:]
		for r := range 8 {
			binary.NativeEndian.PutUint32(o[4*r:], binary.NativeEndian.Uint32(i[r*rowBytes:]))
		}
	}
	return ukernel.AdvanceBytes(out, outerSize1*outStrideL1*4)
}

func tile8x8x32ARM64Direct(out, in []byte, outerSize1, outStrideL1, inStride0, _, _, _ int) []byte {
	rowBytes := inStride0 * 4
	for o1 := range outerSize1 {
		o := out[o1*outStrideL1*4:][:256]
		i := in[o1*32:]
		for r := range 8 {
			src := i[r*rowBytes:][:32]
			dst := o[32*r:][:32]
			binary.NativeEndian.PutUint64(dst[0:], binary.NativeEndian.Uint64(src[0:]))
			binary.NativeEndian.PutUint64(dst[8:], binary.NativeEndian.Uint64(src[8:]))
			binary.NativeEndian.PutUint64(dst[16:], binary.NativeEndian.Uint64(src[16:]))
			binary.NativeEndian.PutUint64(dst[24:], binary.NativeEndian.Uint64(src[24:]))
		}
	}
	return ukernel.AdvanceBytes(out, outerSize1*outStrideL1*4)
}

// tile8x8x32ARM64Transpose loads the whole 8x8 tile before storing it
// transposed, like the zip-based register transpose.
func tile8x8x32ARM64Transpose(out, in []byte, outerSize1, outStrideL1, inStride0, _, _, _ int) []byte {
	rowBytes := inStride0 * 4
	var tile [8][8]uint32
	for o1 := range outerSize1 {
		o := out[o1*outStrideL1*4:][:256]
		i := in[o1*32:]
		for r := range 8 {
			src := i[r*rowBytes:][:32]
			for c := range 8 {
				tile[r][c] = binary.NativeEndian.Uint32(src[4*c:])
			}
		}
		for c := range 8 {
			dst := o[32*c:][:32]
			for r := range 8 {
				binary.NativeEndian.PutUint32(dst[4*r:], tile[r][c])
			}
		}
	}
	return ukernel.AdvanceBytes(out, outerSize1*outStrideL1*4)
}

func tile8x1x8ARM64Direct(out, in []byte, outerSize1, outStrideL1, inStride0, _, _, _ int) []byte {
	for o1 := range outerSize1 {
		o := out[o1*outStrideL1:][:8]
		i := in[o1:]
		for r := range 8 {
			o[r] = i[r*inStride0]
		}
	}
	return ukernel.AdvanceBytes(out, outerSize1*outStrideL1)
}

func tile8x4x8ARM64Direct(out, in []byte, outerSize1, outStrideL1, inStride0, _, _, _ int) []byte {
	for o1 := range outerSize1 {
		o := out[o1*outStrideL1:][:32]
		i := in[o1*4:]
		for r := range 8 {
			binary.NativeEndian.PutUint32(o[4*r:], binary.NativeEndian.Uint32(i[r*inStride0:]))
		}
	}
	return ukernel.AdvanceBytes(out, outerSize1*outStrideL1)
}

func tile8x8x8ARM64Direct(out, in []byte, outerSize1, outStrideL1, inStride0, _, _, _ int) []byte {
	for o1 := range outerSize1 {
		o := out[o1*outStrideL1:][:64]
		i := in[o1*8:]
		for r := range 8 {
			binary.NativeEndian.PutUint64(o[8*r:], binary.NativeEndian.Uint64(i[r*inStride0:]))
		}
	}
	return ukernel.AdvanceBytes(out, outerSize1*outStrideL1)
}

func selectTileFuncARM64(l layout) TileFunc {
	switch {
	case l.elemSize == 4 && l.tileSize0 == 8 && l.tileSize1 == 1:
		return tile8x1x32ARM64Direct
	case l.elemSize == 4 && l.tileSize0 == 8 && l.tileSize1 == 8:
		if l.transposeInner {
			return tile8x8x32ARM64Transpose
		}
		return tile8x8x32ARM64Direct
	case l.elemSize == 1 && l.tileSize0 == 8 && l.tileSize1 == 1:
		return tile8x1x8ARM64Direct
	case l.elemSize == 1 && l.tileSize0 == 8 && l.tileSize1 == 4 && !l.transposeInner:
		return tile8x4x8ARM64Direct
	case l.elemSize == 1 && l.tileSize0 == 8 && l.tileSize1 == 8 && !l.transposeInner:
		return tile8x8x8ARM64Direct
	}
	return nil
}
