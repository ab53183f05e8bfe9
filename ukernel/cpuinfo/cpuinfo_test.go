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

package cpuinfo

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ajroetker/go-ukernel/ukernel"
)

func TestQuery(t *testing.T) {
	data := Query()
	if len(data) != ukernel.CPUDataFieldCount {
		t.Fatalf("len(Query()) = %d, want %d", len(data), ukernel.CPUDataFieldCount)
	}
	for i, w := range data[1:] {
		if w != 0 {
			t.Errorf("word %d = %#x, want 0", i+1, w)
		}
	}
	if data[0]&ukernel.CPUData0X86_64AVX512VNNI != 0 && ukernel.HostArch() == ukernel.ArchX86_64 {
		if data[0]&ukernel.CPUData0X86_64AVX512Base == 0 {
			t.Errorf("VNNI reported without the AVX-512 base set")
		}
	}
	t.Logf("host features: %v", FeatureNames(ukernel.HostArch(), data))
}

func TestParseFeatures(t *testing.T) {
	tests := []struct {
		arch    ukernel.Arch
		names   []string
		want    uint64
		wantErr bool
	}{
		{ukernel.ArchARM64, nil, 0, false},
		{ukernel.ArchARM64, []string{"dotprod"}, ukernel.CPUData0ARM64DotProd, false},
		{ukernel.ArchARM64, []string{"DotProd", " i8mm "}, ukernel.CPUData0ARM64DotProd | ukernel.CPUData0ARM64I8MM, false},
		{ukernel.ArchARM64, []string{"i8mm", "-i8mm"}, 0, false},
		{ukernel.ArchX86_64, []string{"avx512_base", "avx512_vnni", ""}, ukernel.CPUData0X86_64AVX512Base | ukernel.CPUData0X86_64AVX512VNNI, false},
		{ukernel.ArchX86_64, []string{"dotprod"}, 0, true},
		{ukernel.ArchGeneric, []string{"avx2_fma"}, 0, true},
		{ukernel.ArchX86_64, []string{"sse9"}, 0, true},
	}
	for _, tt := range tests {
		data, err := ParseFeatures(tt.arch, tt.names)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseFeatures(%v, %q): expected error", tt.arch, tt.names)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFeatures(%v, %q): %v", tt.arch, tt.names, err)
			continue
		}
		if data[0] != tt.want {
			t.Errorf("ParseFeatures(%v, %q) = %#x, want %#x", tt.arch, tt.names, data[0], tt.want)
		}
	}
}

func TestApplyOverridesCopies(t *testing.T) {
	data := []uint64{ukernel.CPUData0X86_64AVX2FMA | ukernel.CPUData0X86_64AVX512Base}
	got, err := ApplyOverrides(ukernel.ArchX86_64, data, []string{"-avx512_base"})
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != ukernel.CPUData0X86_64AVX2FMA {
		t.Errorf("word 0 = %#x, want %#x", got[0], ukernel.CPUData0X86_64AVX2FMA)
	}
	if data[0] != ukernel.CPUData0X86_64AVX2FMA|ukernel.CPUData0X86_64AVX512Base {
		t.Errorf("input modified")
	}
}

func TestFeatureNames(t *testing.T) {
	data := []uint64{^uint64(0)}
	if diff := cmp.Diff([]string{"dotprod", "i8mm"}, FeatureNames(ukernel.ArchARM64, data)); diff != "" {
		t.Errorf("arm_64 (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"avx2_fma", "avx512_base", "avx512_vnni"}, FeatureNames(ukernel.ArchX86_64, data)); diff != "" {
		t.Errorf("x86_64 (-want +got):\n%s", diff)
	}
	if got := FeatureNames(ukernel.ArchX86_64, nil); len(got) != 0 {
		t.Errorf("nil data: got %v", got)
	}
}
