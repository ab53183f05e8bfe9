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

// Mmt4d performs the mmt4d described by p with the host's tile functions.
//
// PRECONDITION: Validate(p) == ukernel.StatusOK.
func Mmt4d(p *Params) {
	Mmt4dForArch(ukernel.HostArch(), p)
}

// Mmt4dForArch is Mmt4d with the tile functions of arch.
func Mmt4dForArch(arch ukernel.Arch, p *Params) {
	if p.M == 0 || p.N == 0 {
		return
	}
	outSize := p.OutType().Size()
	outTileBytes := p.M0 * p.N0 * outSize
	if p.K == 0 {
		// The panels are empty and may be absent.
		if !p.accumulate() {
			for m := range p.M {
				clear(p.OutBuffer[m*p.OutStride0*outSize:][:p.N*outTileBytes])
			}
		}
		return
	}
	tileFunc := SelectTileFuncForArch(arch, p)
	lhsSize := p.LHSType().Size()
	rhsSize := p.RHSType().Size()
	for m := range p.M {
		lhs := p.LHSBuffer[m*p.LHSStride0*lhsSize:]
		out := p.OutBuffer[m*p.OutStride0*outSize:]
		for n := range p.N {
			rhs := p.RHSBuffer[n*p.RHSStride0*rhsSize:]
			tileFunc(out[n*outTileBytes:][:outTileBytes], lhs, rhs, p)
		}
	}
}
