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

//go:build arm64

package cpuinfo

import (
	"golang.org/x/sys/cpu"

	"github.com/ajroetker/go-ukernel/ukernel"
)

// I8MM is not reported by x/sys/cpu and can only be enabled by override.
func queryWord0() uint64 {
	var word uint64
	if cpu.ARM64.HasASIMDDP {
		word |= ukernel.CPUData0ARM64DotProd
	}
	return word
}

// HostFlags lists the raw x/sys/cpu flags relevant to this architecture.
func HostFlags() []HostFlag {
	return []HostFlag{
		{"ASIMD", cpu.ARM64.HasASIMD, "NEON baseline"},
		{"FP", cpu.ARM64.HasFP, "floating point"},
		{"FPHP", cpu.ARM64.HasFPHP, "FP16 scalar, ARMv8.2-A"},
		{"ASIMDHP", cpu.ARM64.HasASIMDHP, "FP16 NEON, ARMv8.2-A"},
		{"ASIMDDP", cpu.ARM64.HasASIMDDP, "dot product, sdot/udot"},
		{"ASIMDFHM", cpu.ARM64.HasASIMDFHM, "FP16 FMA, ARMv8.4-A"},
		{"SVE", cpu.ARM64.HasSVE, "scalable vector extension"},
		{"SVE2", cpu.ARM64.HasSVE2, ""},
		{"ATOMICS", cpu.ARM64.HasATOMICS, "large system extensions"},
	}
}
