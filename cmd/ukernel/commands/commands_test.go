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

package commands

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ajroetker/go-ukernel/ukernel"
)

// runCommand executes the command tree with args in an empty working
// directory and home, so no config file is picked up.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCPUInfo(t *testing.T) {
	out, err := runCommand(t, "cpuinfo", "--all")
	if err != nil {
		t.Fatalf("cpuinfo: %v\n%s", err, out)
	}
	for _, want := range []string{
		"Architecture: ",
		"Host Flags",
		"Feature Data",
		"Tile Functions",
		"pack_tile_8x8_x32_arm_64_transpose",
		"mmt4d_tile_i8i8i32_16x16x2_x86_64_avx512_vnni",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
}

func TestCPUInfoGenericOnly(t *testing.T) {
	out, err := runCommand(t, "cpuinfo", "--all", "--generic-only")
	if err != nil {
		t.Fatalf("cpuinfo: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Architecture: generic") {
		t.Errorf("output does not report the generic architecture:\n%s", out)
	}
	if strings.Contains(out, " available\n") {
		t.Errorf("generic-only run reports available tile functions:\n%s", out)
	}
}

func TestSelftest(t *testing.T) {
	out, err := runCommand(t, "selftest", "--iterations", "2", "--seed", "5", "--ops", "pack,mmt4d")
	if err != nil {
		t.Fatalf("selftest: %v\n%s", err, out)
	}
	if !strings.Contains(out, ", 0 failed") {
		t.Errorf("output lacks the summary line:\n%s", out)
	}
	if strings.Contains(out, "unpack_tile_") {
		t.Errorf("--ops did not filter out unpack:\n%s", out)
	}
}

func TestRoundtrip(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"Default", nil},
		{"I8Transposed", []string{"--type", "i8", "--tile1", "4", "--transpose-inner", "--transpose-outer"}},
		{"BF16Padding", []string{"--type", "bf16", "--rows", "9", "--cols", "3", "--padding", "1.5"}},
		{"Parallel", []string{"--workers", "4", "--min-rows", "1", "--rows", "100", "--cols", "17"}},
		{"Empty", []string{"--rows", "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCommand(t, append([]string{"roundtrip"}, tt.args...)...)
			if err != nil {
				t.Fatalf("roundtrip: %v\n%s", err, out)
			}
			if !strings.HasSuffix(strings.TrimSpace(out), ", ok") {
				t.Errorf("unexpected output:\n%s", out)
			}
		})
	}
}

func TestRoundtripErrors(t *testing.T) {
	if _, err := runCommand(t, "roundtrip", "--type", "f64"); !errors.Is(err, ukernel.StatusBadType) {
		t.Errorf("f64 roundtrip: got %v, want %v", err, ukernel.StatusBadType)
	}
	if _, err := runCommand(t, "roundtrip", "--type", "q4"); err == nil {
		t.Errorf("unknown type: no error")
	}
	if _, err := runCommand(t, "roundtrip", "--tile0", "0"); err == nil {
		t.Errorf("zero tile: no error")
	}
	if _, err := runCommand(t, "cpuinfo", "--features", "warp_drive"); err == nil {
		t.Errorf("unknown feature: no error")
	}
}
