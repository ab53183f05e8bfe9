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

import "github.com/ajroetker/go-ukernel/ukernel"

// TileFunc packs outerSize1 consecutive tiles of one tile row.
//
// in points at the first input element of the row's first tile; rows are
// inStride0 elements apart and consecutive tiles tileSize1 elements apart.
// out points at the first output tile; consecutive tiles are outStrideL1
// elements apart. The returned slice is out advanced past the last tile, so
// calls can be chained along the row.
//
// The parameter order is fixed: generated code calls tile functions
// directly. Tile functions do not check their arguments.
type TileFunc func(out, in []byte, outerSize1, outStrideL1, inStride0, elemSize, tileSize0, tileSize1 int) []byte

// Variant describes an architecture-specific tile function.
type Variant struct {
	Name           string
	Arch           ukernel.Arch
	Features       uint64 // required CPU data word 0 bits
	ElemSize       int
	TileSize0      int
	TileSize1      int
	TransposeInner bool
	Func           TileFunc
}

// Specializations lists every architecture-specific pack tile function, for
// all architectures, in the order the selector prefers them.
func Specializations() []Variant {
	return []Variant{
		{"pack_tile_8x1_x32_arm_64_direct", ukernel.ArchARM64, 0, 4, 8, 1, false, tile8x1x32ARM64Direct},
		{"pack_tile_8x8_x32_arm_64_direct", ukernel.ArchARM64, 0, 4, 8, 8, false, tile8x8x32ARM64Direct},
		{"pack_tile_8x8_x32_arm_64_transpose", ukernel.ArchARM64, 0, 4, 8, 8, true, tile8x8x32ARM64Transpose},
		{"pack_tile_8x1_x8_arm_64_direct", ukernel.ArchARM64, 0, 1, 8, 1, false, tile8x1x8ARM64Direct},
		{"pack_tile_8x4_x8_arm_64_direct", ukernel.ArchARM64, 0, 1, 8, 4, false, tile8x4x8ARM64Direct},
		{"pack_tile_8x8_x8_arm_64_direct", ukernel.ArchARM64, 0, 1, 8, 8, false, tile8x8x8ARM64Direct},
	}
}

// SelectTileFunc returns the tile function Pack uses for p on this host.
func SelectTileFunc(p *Params) TileFunc {
	return SelectTileFuncForArch(ukernel.HostArch(), p)
}

// SelectTileFuncForArch returns the best tile function for p on arch: an
// architecture-specific one if arch has one for p's element size, tile
// shape and CPU data, else the generic one. It returns nil if p's type is
// not supported at all.
func SelectTileFuncForArch(arch ukernel.Arch, p *Params) TileFunc {
	if !isSupportedType(p.Type) {
		return nil
	}
	l := p.layout()
	if f := selectTileFuncArch(arch, l); f != nil {
		return f
	}
	if l.transposeInner {
		return tileGenericTranspose
	}
	return tileGenericDirect
}

func selectTileFuncArch(arch ukernel.Arch, l layout) TileFunc {
	switch arch {
	case ukernel.ArchARM64:
		return selectTileFuncARM64(l)
	}
	return nil
}
