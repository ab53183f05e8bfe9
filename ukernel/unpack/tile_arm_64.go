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
	"encoding/binary"

	"github.com/ajroetker/go-ukernel/ukernel"
)

// AArch64 unpack tile kernels. Like their pack counterparts they move whole
// words and ignore the elemSize and tile size arguments.

// tile8x1x32ARM64Direct scatters one 8-element column per tile.
func tile8x1x32ARM64Direct(out, in []byte, outerSize1, inStrideL1, outStride0, _, _, _ int) []byte {
	rowBytes := outStride0 * 4
	for o1 := range outerSize1 {
		i := in[o1*inStrideL1*4:][:32]
		o := out[o1*4:]
		for r := range 8 {
			binary.NativeEndian.PutUint32(o[r*rowBytes:], binary.NativeEndian.Uint32(i[4*r:]))
		}
	}
	return ukernel.AdvanceBytes(out, outerSize1*4)
}

func tile8x8x32ARM64Direct(out, in []byte, outerSize1, inStrideL1, outStride0, _, _, _ int) []byte {
	rowBytes := outStride0 * 4
	for o1 := range outerSize1 {
		i := in[o1*inStrideL1*4:][:256]
		o := out[o1*32:]
		for r := range 8 {
			src := i[32*r:][:32]
			dst := o[r*rowBytes:][:32]
			binary.NativeEndian.PutUint64(dst[0:], binary.NativeEndian.Uint64(src[0:]))
			binary.NativeEndian.PutUint64(dst[8:], binary.NativeEndian.Uint64(src[8:]))
			binary.NativeEndian.PutUint64(dst[16:], binary.NativeEndian.Uint64(src[16:]))
			binary.NativeEndian.PutUint64(dst[24:], binary.NativeEndian.Uint64(src[24:]))
		}
	}
	return ukernel.AdvanceBytes(out, outerSize1*32)
}

func tile8x8x32ARM64Transpose(out, in []byte, outerSize1, inStrideL1, outStride0, _, _, _ int) []byte {
	rowBytes := outStride0 * 4
	var tile [8][8]uint32
	for o1 := range outerSize1 {
		i := in[o1*inStrideL1*4:][:256]
		o := out[o1*32:]
		for c := range 8 {
			src := i[32*c:][:32]
			for r := range 8 {
				tile[r][c] = binary.NativeEndian.Uint32(src[4*r:])
			}
		}
		for r := range 8 {
			dst := o[r*rowBytes:][:32]
			for c := range 8 {
				binary.NativeEndian.PutUint32(dst[4*c:], tile[r][c])
			}
		}
	}
	return ukernel.AdvanceBytes(out, outerSize1*32)
}

func tile8x8x8ARM64Direct(out, in []byte, outerSize1, inStrideL1, outStride0, _, _, _ int) []byte {
	for o1 := range outerSize1 {
		i := in[o1*inStrideL1:][:64]
		o := out[o1*8:]
		for r := range 8 {
			binary.NativeEndian.PutUint64(o[r*outStride0:], binary.NativeEndian.Uint64(i[8*r:]))
		}
	}
	return ukernel.AdvanceBytes(out, outerSize1*8)
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
	case l.elemSize == 1 && l.tileSize0 == 8 && l.tileSize1 == 8 && !l.transposeInner:
		return tile8x8x8ARM64Direct
	}
	return nil
}
