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

// Package cpuinfo builds the CPU feature data blob that microkernels take
// as an argument. Kernels never query the hardware themselves; the runtime
// queries it once per device through this package and passes the result
// unchanged into every call.
package cpuinfo

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/ajroetker/go-ukernel/ukernel"
)

// Feature is a named bit of CPU data word 0.
type Feature struct {
	Name string
	Arch ukernel.Arch
	Bit  uint64
}

// Features returns the named feature bits of every architecture.
func Features() []Feature {
	return []Feature{
		{"dotprod", ukernel.ArchARM64, ukernel.CPUData0ARM64DotProd},
		{"i8mm", ukernel.ArchARM64, ukernel.CPUData0ARM64I8MM},
		{"avx2_fma", ukernel.ArchX86_64, ukernel.CPUData0X86_64AVX2FMA},
		{"avx512_base", ukernel.ArchX86_64, ukernel.CPUData0X86_64AVX512Base},
		{"avx512_vnni", ukernel.ArchX86_64, ukernel.CPUData0X86_64AVX512VNNI},
	}
}

// Query returns the CPU data of the host, as detected by
// golang.org/x/sys/cpu. The result always has ukernel.CPUDataFieldCount
// words.
func Query() []uint64 {
	data := make([]uint64, ukernel.CPUDataFieldCount)
	data[0] = queryWord0()
	return data
}

// FeatureNames lists the names of the features of arch set in data.
func FeatureNames(arch ukernel.Arch, data []uint64) []string {
	return lo.FilterMap(Features(), func(f Feature, _ int) (string, bool) {
		return f.Name, f.Arch == arch && ukernel.HasCPUFeatures(data, f.Bit)
	})
}

// ApplyOverrides returns a copy of data with the named features of arch
// set, or cleared for names prefixed with '-'. Names are case-insensitive.
func ApplyOverrides(arch ukernel.Arch, data []uint64, names []string) ([]uint64, error) {
	out := make([]uint64, ukernel.CPUDataFieldCount)
	copy(out, data)
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		clearBit := strings.HasPrefix(name, "-")
		name = strings.TrimPrefix(name, "-")
		f, ok := lo.Find(Features(), func(f Feature) bool {
			return f.Name == name && f.Arch == arch
		})
		if !ok {
			return nil, errors.Errorf("unknown %s CPU feature %q", arch, name)
		}
		if clearBit {
			out[0] &^= f.Bit
		} else {
			out[0] |= f.Bit
		}
	}
	return out, nil
}

// ParseFeatures is ApplyOverrides on an empty blob.
func ParseFeatures(arch ukernel.Arch, names []string) ([]uint64, error) {
	return ApplyOverrides(arch, nil, names)
}

// HostFlag is one raw feature flag reported by golang.org/x/sys/cpu, for
// diagnostics.
type HostFlag struct {
	Name    string
	Enabled bool
	Note    string
}
