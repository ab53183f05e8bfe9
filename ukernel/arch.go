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

// Arch identifies the CPU architecture a kernel variant is written for.
//
// Selection depends on the architecture the binary was built for, never on
// the OS: HostArch is fixed by build constraints, and the noasm build tag
// forces ArchGeneric everywhere.
type Arch int

const (
	// ArchGeneric is portable code with no architecture assumption.
	ArchGeneric Arch = iota

	// ArchARM64 is AArch64.
	ArchARM64

	// ArchX86_64 is x86-64.
	ArchX86_64
)

// String returns the architecture name used in kernel names ("arm_64", ...).
func (a Arch) String() string {
	switch a {
	case ArchGeneric:
		return "generic"
	case ArchARM64:
		return "arm_64"
	case ArchX86_64:
		return "x86_64"
	default:
		return "unknown"
	}
}

// HostArch returns the architecture this binary selects kernels for.
func HostArch() Arch {
	return hostArch
}
