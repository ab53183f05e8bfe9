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

package ukernel

// CPU feature data is an array of 64-bit words supplied by the caller, who is
// responsible for querying the OS or hardware. Kernels only read it. The
// meaning of each bit depends on the target architecture; all bits defined
// so far live in word 0.

// CPUDataFieldCount is the number of words in a full CPU data array.
const CPUDataFieldCount = 8

// ARM64 bits of CPU data word 0.
const (
	CPUData0ARM64DotProd uint64 = 1 << 0
	CPUData0ARM64I8MM    uint64 = 1 << 1
)

// x86_64 bits of CPU data word 0.
const (
	CPUData0X86_64AVX2FMA    uint64 = 1 << 0
	CPUData0X86_64AVX512Base uint64 = 1 << 1
	CPUData0X86_64AVX512VNNI uint64 = 1 << 2
)

// HasCPUFeatures reports whether all bits of mask are set in word 0 of data.
// Empty data has no features; a zero mask is always satisfied.
func HasCPUFeatures(data []uint64, mask uint64) bool {
	if mask == 0 {
		return true
	}
	if len(data) == 0 {
		return false
	}
	return data[0]&mask == mask
}
