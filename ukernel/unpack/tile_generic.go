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

// tileGenericDirect unpacks outerSize1 consecutive tiles into one tile row
// of the output, one tile row (tileSize1 elements) at a time.
func tileGenericDirect(out, in []byte, outerSize1, inStrideL1, outStride0, elemSize, tileSize0, tileSize1 int) []byte {
	rowBytes := tileSize1 * elemSize
	for o1 := range outerSize1 {
		inTile := in[o1*inStrideL1*elemSize:]
		outTile := out[o1*rowBytes:]
		for t0 := range tileSize0 {
			copy(outTile[t0*outStride0*elemSize:][:rowBytes], inTile[t0*rowBytes:])
		}
	}
	return ukernel.AdvanceBytes(out, outerSize1*rowBytes)
}

// tileGenericTranspose is tileGenericDirect for tiles stored transposed:
// output tile element (t0, t1) comes from t1*tileSize0 + t0.
func tileGenericTranspose(out, in []byte, outerSize1, inStrideL1, outStride0, elemSize, tileSize0, tileSize1 int) []byte {
	for o1 := range outerSize1 {
		inTile := in[o1*inStrideL1*elemSize:]
		outTile := out[o1*tileSize1*elemSize:]
		for t0 := range tileSize0 {
			outRow := outTile[t0*outStride0*elemSize:]
			for t1 := range tileSize1 {
				src := (t1*tileSize0 + t0) * elemSize
				copy(outRow[t1*elemSize:][:elemSize], inTile[src:])
			}
		}
	}
	return ukernel.AdvanceBytes(out, outerSize1*tileSize1*elemSize)
}
