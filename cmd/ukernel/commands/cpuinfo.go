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
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ajroetker/go-ukernel/ukernel"
	"github.com/ajroetker/go-ukernel/ukernel/cpuinfo"
	"github.com/ajroetker/go-ukernel/ukernel/mmt4d"
	"github.com/ajroetker/go-ukernel/ukernel/pack"
	"github.com/ajroetker/go-ukernel/ukernel/unpack"
)

// kernelInfo is the part of a Variant the report needs, for any op.
type kernelInfo struct {
	name     string
	arch     ukernel.Arch
	features uint64
}

func allKernels() []kernelInfo {
	var all []kernelInfo
	for _, v := range pack.Specializations() {
		all = append(all, kernelInfo{v.Name, v.Arch, v.Features})
	}
	for _, v := range unpack.Specializations() {
		all = append(all, kernelInfo{v.Name, v.Arch, v.Features})
	}
	for _, v := range mmt4d.Specializations() {
		all = append(all, kernelInfo{v.Name, v.Arch, v.Features})
	}
	return all
}

func newCPUInfoCommand(a *app) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "cpuinfo",
		Short: "Show the CPU features and tile functions available on this host",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := a.cfg.CPUData()
			if err != nil {
				return err
			}
			arch := ukernel.HostArch()
			if a.cfg.GenericOnly {
				arch = ukernel.ArchGeneric
			}
			writeCPUInfo(cmd.OutOrStdout(), arch, data, cpuinfo.HostFlags(), all)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "list tile functions of every architecture")
	return cmd
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n", cases.Title(language.English).String(title))
}

func writeCPUInfo(w io.Writer, arch ukernel.Arch, data []uint64, flags []cpuinfo.HostFlag, all bool) {
	fmt.Fprintf(w, "Architecture: %s (host %s)\n", arch, ukernel.HostArch())

	section(w, "host flags")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, f := range flags {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", f.Name, yesNo(f.Enabled), f.Note)
	}
	tw.Flush()

	section(w, "feature data")
	fmt.Fprintf(w, "  word0: %#x\n", data[0])
	names := cpuinfo.FeatureNames(ukernel.HostArch(), data)
	if len(names) == 0 {
		names = []string{"none"}
	}
	fmt.Fprintf(w, "  features: %s\n", strings.Join(names, ", "))

	section(w, "tile functions")
	kernels := lo.Filter(allKernels(), func(k kernelInfo, _ int) bool {
		return all || k.arch == ukernel.HostArch()
	})
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, k := range kernels {
		usable := k.arch == arch && ukernel.HasCPUFeatures(data, k.features)
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", k.name, k.arch, lo.Ternary(usable, "available", "unavailable"))
	}
	tw.Flush()
	if len(kernels) == 0 {
		fmt.Fprintln(w, "  none: every op uses the generic tile functions")
	}
}

func yesNo(b bool) string {
	return lo.Ternary(b, "yes", "no")
}
