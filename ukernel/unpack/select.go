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

import "github.com/ajroetker/go-ukernel/ukernel"

// TileFunc unpacks outerSize1 consecutive tiles into one tile row of the
// output.
//
// in points at the first input tile; consecutive tiles are inStrideL1
// elements apart. out points at the first output element of the tile row;
// output rows are outStride0 elements apart and consecutive tiles land
// tileSize1 elements apart. The returned slice is out advanced by
// outerSize1*tileSize1 elements.
type TileFunc func(out, in []byte, outerSize1, inStrideL1, outStride0, elemSize, tileSize0, tileSize1 int) []byte

// Variant describes an architecture-specific tile function.
type Variant struct {
	Name           string
	Arch           ukernel.Arch
	Features       uint64
	ElemSize       int
	TileSize0      int
	TileSize1      int
	TransposeInner bool
	Func           TileFunc
}

// Specializations lists every architecture-specific unpack tile function.
func Specializations() []Variant {
	return []Variant{
		{"unpack_tile_8x1_x32_arm_64_direct", ukernel.ArchARM64, 0, 4, 8, 1, false, tile8x1x32ARM64Direct},
		{"unpack_tile_8x8_x32_arm_64_direct", ukernel.ArchARM64, 0, 4, 8, 8, false, tile8x8x32ARM64Direct},
		{"unpack_tile_8x8_x32_arm_64_transpose", ukernel.ArchARM64, 0, 4, 8, 8, true, tile8x8x32ARM64Transpose},
		{"unpack_tile_8x8_x8_arm_64_direct", ukernel.ArchARM64, 0, 1, 8, 8, false, tile8x8x8ARM64Direct},
	}
}

// SelectTileFunc returns the tile function Unpack uses for p on this host.
func SelectTileFunc(p *Params) TileFunc {
	return SelectTileFuncForArch(ukernel.HostArch(), p)
}

// SelectTileFuncForArch returns the architecture-specific tile function for
// p on arch if there is one, else the generic one, or nil if p's type is
// not supported.
func SelectTileFuncForArch(arch ukernel.Arch, p *Params) TileFunc {
	if !isSupportedType(p.Type) {
		return nil
	}
	l := p.layout()
	if arch == ukernel.ArchARM64 {
		if f := selectTileFuncARM64(l); f != nil {
			return f
		}
	}
	if l.transposeInner {
		return tileGenericTranspose
	}
	return tileGenericDirect
}
