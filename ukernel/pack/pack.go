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

// Pack performs the pack described by p with the host's tile functions.
//
// PRECONDITION: Validate(p) == ukernel.StatusOK. Pack checks nothing;
// invalid params may panic or write anywhere in p.OutBuffer.
func Pack(p *Params) {
	PackForArch(ukernel.HostArch(), p)
}

// PackForArch is Pack with the tile functions of arch.
func PackForArch(arch ukernel.Arch, p *Params) {
	l := p.layout()
	if l.outerSize0 == 0 || l.outerSize1 == 0 {
		return
	}
	tileFunc := SelectTileFuncForArch(arch, p)
	esz := l.elemSize
	full0 := p.InSize0 / l.tileSize0
	full1 := p.InSize1 / l.tileSize1
	for o0 := range l.outerSize0 {
		out := p.OutBuffer[o0*l.outStrideL0*esz:]
		in := p.InBuffer[o0*l.tileSize0*p.InStride0*esz:]
		if o0 < full0 {
			out = tileFunc(out, in, full1, l.outStrideL1, p.InStride0, esz, l.tileSize0, l.tileSize1)
			if full1 < l.outerSize1 {
				padRow(out, in, p, l, l.tileSize0, full1)
			}
			continue
		}
		padRow(out, in, p, l, p.InSize0-o0*l.tileSize0, 0)
	}
}

// padRow packs the tiles [o1Begin, outerSize1) of a tile row that has only
// rows input rows, filling everything outside the input with padding.
// Tiles are assembled in a scratch tile and packed with the generic tile
// functions, which do not retain it, so scratch stays on the stack.
func padRow(out, in []byte, p *Params, l layout, rows, o1Begin int) {
	var scratch [ukernel.ScratchTileBytes]byte
	esz := l.elemSize
	tile := scratch[:l.tileSize0*l.tileSize1*esz]
	rowBytes := l.tileSize1 * esz
	for o1 := o1Begin; o1 < l.outerSize1; o1++ {
		cols := min(l.tileSize1, p.InSize1-o1*l.tileSize1)
		fillPadding(tile, p.PaddingValue, esz)
		for r := range rows {
			src := in[(r*p.InStride0+o1*l.tileSize1)*esz:]
			copy(tile[r*rowBytes:r*rowBytes+cols*esz], src)
		}
		if l.transposeInner {
			out = tileGenericTranspose(out, tile, 1, l.outStrideL1, l.tileSize1, esz, l.tileSize0, l.tileSize1)
		} else {
			out = tileGenericDirect(out, tile, 1, l.outStrideL1, l.tileSize1, esz, l.tileSize0, l.tileSize1)
		}
	}
}
