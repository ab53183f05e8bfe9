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

// Unpack performs the unpack described by p with the host's tile functions.
//
// PRECONDITION: Validate(p) == ukernel.StatusOK.
func Unpack(p *Params) {
	UnpackForArch(ukernel.HostArch(), p)
}

// UnpackForArch is Unpack with the tile functions of arch.
func UnpackForArch(arch ukernel.Arch, p *Params) {
	l := p.layout()
	if p.OutSize0 == 0 || p.OutSize1 == 0 {
		return
	}
	tileFunc := SelectTileFuncForArch(arch, p)
	esz := l.elemSize
	full0 := p.OutSize0 / l.tileSize0
	full1 := p.OutSize1 / l.tileSize1
	for o0 := range l.outerSize0 {
		in := p.InBuffer[o0*l.inStrideL0*esz:]
		out := p.OutBuffer[o0*l.tileSize0*p.OutStride0*esz:]
		if o0 < full0 {
			tileFunc(out, in, full1, l.inStrideL1, p.OutStride0, esz, l.tileSize0, l.tileSize1)
			if full1 < l.outerSize1 {
				unpadRow(out, in, p, l, l.tileSize0, full1)
			}
			continue
		}
		unpadRow(out, in, p, l, p.OutSize0-o0*l.tileSize0, 0)
	}
}

// unpadRow unpacks tiles [o1Begin, outerSize1) of a tile row of which only
// rows output rows exist. Each tile goes through a scratch tile and only
// its in-range part is copied out.
func unpadRow(out, in []byte, p *Params, l layout, rows, o1Begin int) {
	var scratch [ukernel.ScratchTileBytes]byte
	esz := l.elemSize
	rowBytes := l.tileSize1 * esz
	tile := scratch[:l.tileSize0*rowBytes]
	for o1 := o1Begin; o1 < l.outerSize1; o1++ {
		cols := min(l.tileSize1, p.OutSize1-o1*l.tileSize1)
		inTile := in[o1*l.inStrideL1*esz:]
		if l.transposeInner {
			tileGenericTranspose(tile, inTile, 1, 0, l.tileSize1, esz, l.tileSize0, l.tileSize1)
		} else {
			tileGenericDirect(tile, inTile, 1, 0, l.tileSize1, esz, l.tileSize0, l.tileSize1)
		}
		for r := range rows {
			dst := out[(r*p.OutStride0+o1*l.tileSize1)*esz:]
			copy(dst[:cols*esz], tile[r*rowBytes:])
		}
	}
}
