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

// Flag bits, shared bit-for-bit with the compiler that emits microkernel
// calls. Each operation interprets only its own flags; bits of another
// operation may alias.
const (
	// FlagMmt4dAccumulate makes mmt4d add to the existing output instead of
	// overwriting it.
	FlagMmt4dAccumulate uint32 = 0x1

	// FlagPackTransposeInner stores each tile transposed.
	FlagPackTransposeInner uint32 = 0x1

	// FlagPackTransposeOuter swaps the two outer dimensions of the output.
	FlagPackTransposeOuter uint32 = 0x2

	// FlagUnpackTransposeInner reads each tile as transposed.
	FlagUnpackTransposeInner uint32 = 0x1

	// FlagUnpackTransposeOuter swaps the two outer dimensions of the input.
	FlagUnpackTransposeOuter uint32 = 0x2
)

// MaxDim is the largest dimension or stride a microkernel accepts. It keeps
// every size representable on targets with 32-bit pointers.
const MaxDim = 1<<31 - 1

// InUnsignedIntRange reports whether v fits in an unsigned integer of the
// given bit count.
func InUnsignedIntRange(v int, bitCount uint) bool {
	return v >= 0 && v>>bitCount == 0
}

// ScratchTileBytes is the size of the fixed scratch tile that generic code
// paths keep on the stack for padding and accumulation.
const ScratchTileBytes = 4096

// AdvanceBytes returns buf advanced by n bytes. Tile kernels return their
// output this way so calls can be chained along an outer loop. Advancing to
// or past the end yields an empty slice, since nothing can be written there.
func AdvanceBytes(buf []byte, n int) []byte {
	if n >= len(buf) {
		return buf[len(buf):]
	}
	return buf[n:]
}
