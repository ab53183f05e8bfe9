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

import "github.com/ajroetker/go-ukernel/ukernel"

// Validate checks p for the host architecture, see ValidateForArch.
func Validate(p *Params) ukernel.Status {
	return ValidateForArch(ukernel.HostArch(), p)
}

// ValidateForArch checks p fully and returns the first problem found, or
// ukernel.StatusOK. The result depends on arch only through the generic
// tile size limit, which does not apply to tiles an architecture-specific
// kernel handles.
func ValidateForArch(arch ukernel.Arch, p *Params) ukernel.Status {
	if p.Flags&^ukernel.FlagMmt4dAccumulate != 0 {
		return ukernel.StatusBadFlags
	}
	if !isSupportedType(p.Type) {
		return ukernel.StatusBadType
	}
	for _, v := range [...]int{p.LHSStride0, p.RHSStride0, p.OutStride0,
		p.M, p.N, p.K, p.M0, p.N0, p.K0} {
		if !ukernel.InUnsignedIntRange(v, 31) {
			return ukernel.StatusUnsupportedHugeOrNegativeDimension
		}
	}
	for _, v := range [...]int{p.M0 * p.N0, p.M0 * p.K0, p.N0 * p.K0} {
		if !ukernel.InUnsignedIntRange(v, 31) {
			return ukernel.StatusUnsupportedHugeOrNegativeDimension
		}
	}
	if p.M0 == 0 || p.N0 == 0 || p.K0 == 0 {
		return ukernel.StatusShapesMismatch
	}
	lhsPanel := p.K * p.M0 * p.K0
	rhsPanel := p.K * p.N0 * p.K0
	outRow := p.N * p.M0 * p.N0
	if p.M > 1 && (p.LHSStride0 < lhsPanel || p.OutStride0 < outRow) {
		return ukernel.StatusShapesMismatch
	}
	if p.N > 1 && p.RHSStride0 < rhsPanel {
		return ukernel.StatusShapesMismatch
	}
	outSize := p.OutType().Size()
	if selectTileFuncArch(arch, p) == nil && p.M0*p.N0*outSize > ukernel.ScratchTileBytes {
		return ukernel.StatusUnsupportedGenericTileSize
	}
	if p.M > 0 && p.K > 0 && (p.M-1)*p.LHSStride0+lhsPanel > len(p.LHSBuffer)/p.LHSType().Size() {
		return ukernel.StatusShapesMismatch
	}
	if p.N > 0 && p.K > 0 && (p.N-1)*p.RHSStride0+rhsPanel > len(p.RHSBuffer)/p.RHSType().Size() {
		return ukernel.StatusShapesMismatch
	}
	if p.M > 0 && p.N > 0 && (p.M-1)*p.OutStride0+outRow > len(p.OutBuffer)/outSize {
		return ukernel.StatusShapesMismatch
	}
	return ukernel.StatusOK
}
