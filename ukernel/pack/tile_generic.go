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

// tileGenericDirect packs outerSize1 consecutive tiles of one tile row.
// Each tile is copied one input row (tileSize1 elements) at a time.
func tileGenericDirect(out, in []byte, outerSize1, outStrideL1, inStride0, elemSize, tileSize0, tileSize1 int) []byte {
	rowBytes := tileSize1 * elemSize
	for o1 := range outerSize1 {
		outTile := out[o1*outStrideL1*elemSize:]
		inTile := in[o1*rowBytes:]
		for t0 := range tileSize0 {
			copy(outTile[t0*rowBytes:(t0+1)*rowBytes], inTile[t0*inStride0*elemSize:])
		}
	}
	return ukernel.AdvanceBytes(out, outerSize1*outStrideL1*elemSize)
}

// tileGenericTranspose is tileGenericDirect with each tile stored
// transposed: input tile element (t0, t1) goes to t1*tileSize0 + t0.
func tileGenericTranspose(out, in []byte, outerSize1, outStrideL1, inStride0, elemSize, tileSize0, tileSize1 int) []byte {
	for o1 := range outerSize1 {
		outTile := out[o1*outStrideL1*elemSize:]
		inTile := in[o1*tileSize1*elemSize:]
		for t0 := range tileSize0 {
			inRow := inTile[t0*inStride0*elemSize:]
			for t1 := range tileSize1 {
				dst := (t1*tileSize0 + t0) * elemSize
				copy(outTile[dst:dst+elemSize], inRow[t1*elemSize:])
			}
		}
	}
	return ukernel.AdvanceBytes(out, outerSize1*outStrideL1*elemSize)
}

// fillPadding writes the low elemSize bytes of value, in native byte
// order, to every element of buf.
func fillPadding(buf []byte, value uint64, elemSize int) {
	switch elemSize {
	case 1:
		for i := range buf {
			buf[i] = byte(value)
		}
	case 2:
		for i := 0; i+2 <= len(buf); i += 2 {
			binary.NativeEndian.PutUint16(buf[i:], uint16(value))
		}
	case 4:
		for i := 0; i+4 <= len(buf); i += 4 {
			binary.NativeEndian.PutUint32(buf[i:], uint32(value))
		}
	case 8:
		for i := 0; i+8 <= len(buf); i += 8 {
			binary.NativeEndian.PutUint64(buf[i:], value)
		}
	}
}
