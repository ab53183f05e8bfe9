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

//go:build amd64

package cpuinfo

import (
	"golang.org/x/sys/cpu"

	"github.com/ajroetker/go-ukernel/ukernel"
)

func queryWord0() uint64 {
	var word uint64
	x := cpu.X86
	if x.HasAVX2 && x.HasFMA {
		word |= ukernel.CPUData0X86_64AVX2FMA
	}
	if x.HasAVX512F && x.HasAVX512CD && x.HasAVX512VL && x.HasAVX512DQ && x.HasAVX512BW {
		word |= ukernel.CPUData0X86_64AVX512Base
		if x.HasAVX512VNNI {
			word |= ukernel.CPUData0X86_64AVX512VNNI
		}
	}
	return word
}

// HostFlags lists the raw x/sys/cpu flags relevant to this architecture.
func HostFlags() []HostFlag {
	x := cpu.X86
	return []HostFlag{
		{"SSE2", x.HasSSE2, "baseline"},
		{"SSE41", x.HasSSE41, ""},
		{"AVX", x.HasAVX, ""},
		{"AVX2", x.HasAVX2, ""},
		{"FMA", x.HasFMA, ""},
		{"AVX512F", x.HasAVX512F, ""},
		{"AVX512CD", x.HasAVX512CD, ""},
		{"AVX512VL", x.HasAVX512VL, ""},
		{"AVX512DQ", x.HasAVX512DQ, ""},
		{"AVX512BW", x.HasAVX512BW, ""},
		{"AVX512VNNI", x.HasAVX512VNNI, "vpdpwssd"},
	}
}
