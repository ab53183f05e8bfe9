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

const allFlags = ukernel.FlagPackTransposeInner | ukernel.FlagPackTransposeOuter

// Validate checks p fully and returns the first problem found, or
// ukernel.StatusOK. It has no side effects; Pack does not call it.
func Validate(p *Params) ukernel.Status {
	if p.Flags&^allFlags != 0 {
		return ukernel.StatusBadFlags
	}
	if !isSupportedType(p.Type) {
		return ukernel.StatusBadType
	}
	for _, v := range [...]int{p.InStride0, p.OutStride0, p.InSize0, p.InSize1,
		p.OutSize0, p.OutSize1, p.OutSize2, p.OutSize3} {
		if !ukernel.InUnsignedIntRange(v, 31) {
			return ukernel.StatusUnsupportedHugeOrNegativeDimension
		}
	}
	l := p.layout()
	if !ukernel.InUnsignedIntRange(l.tileSize0*l.tileSize1, 31) {
		return ukernel.StatusUnsupportedHugeOrNegativeDimension
	}
	if l.tileSize0 == 0 || l.tileSize1 == 0 {
		return ukernel.StatusShapesMismatch
	}
	// The outer dims must cover the input, with at most one partial tile
	// per dimension.
	if l.outerSize0 != ceilDiv(p.InSize0, l.tileSize0) || l.outerSize1 != ceilDiv(p.InSize1, l.tileSize1) {
		return ukernel.StatusShapesMismatch
	}
	if p.InSize0 > 0 && p.InStride0 < p.InSize1 {
		return ukernel.StatusShapesMismatch
	}
	tileElems := p.OutSize2 * p.OutSize3
	if p.OutSize0 > 1 && p.OutStride0 < p.OutSize1*tileElems {
		return ukernel.StatusShapesMismatch
	}
	needsPadding := p.InSize0%l.tileSize0 != 0 || p.InSize1%l.tileSize1 != 0
	if needsPadding && tileElems*l.elemSize > ukernel.ScratchTileBytes {
		return ukernel.StatusUnsupportedGenericTileSize
	}
	if p.InSize0 > 0 && p.InSize1 > 0 {
		if (p.InSize0-1)*p.InStride0+p.InSize1 > len(p.InBuffer)/l.elemSize {
			return ukernel.StatusShapesMismatch
		}
	}
	if l.outerSize0 > 0 && l.outerSize1 > 0 {
		if (p.OutSize0-1)*p.OutStride0+p.OutSize1*tileElems > len(p.OutBuffer)/l.elemSize {
			return ukernel.StatusShapesMismatch
		}
	}
	return ukernel.StatusOK
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
