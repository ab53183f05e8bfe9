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

// Package ukernel is the common layer of a bare-metal microkernel library:
// the element type encoding, status codes, flag bits, CPU feature bits and
// architecture identification shared by the tile kernels in the pack,
// unpack and mmt4d packages.
//
// Rules every kernel package follows:
//
//  1. No OS access and no dependency outside the standard library. CPU
//     identification is done by the caller (see package cpuinfo) and passed
//     in as CPU data words.
//  2. Code may be specialized per CPU architecture, never per OS.
//  3. Kernels are pure, reentrant and stateless: the only effect of a call
//     is writing to the output buffer it was given. Any number of calls may
//     run concurrently on disjoint outputs without locking.
//
// Kernels are called on tiles after the caller has split and distributed
// the work, so they do not validate their arguments. Validation is a
// separate, optional step that returns a Status.
package ukernel
