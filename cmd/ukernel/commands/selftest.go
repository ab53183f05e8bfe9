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
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ajroetker/go-ukernel/internal/selftest"
)

func newSelftestCommand(a *app) *cobra.Command {
	var ops []string
	cmd := &cobra.Command{
		Use:   "selftest",
		Short: "Check every architecture-specific tile function against the generic one",
		Long: `selftest runs each specialized pack, unpack and mmt4d tile function, for
every architecture, through the full kernel on random shapes and compares the
result with the generic path byte for byte. Specialized kernels are portable
Go, so all of them are checked on any host.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := selftest.Run(cmd.Context(), selftest.Options{
				Iterations:  a.cfg.Selftest.Iterations,
				Seed:        a.cfg.Selftest.Seed,
				Parallelism: a.cfg.Selftest.Parallelism,
				Ops:         ops,
			})
			if err != nil {
				return err
			}
			writeReport(cmd.OutOrStdout(), report)
			return report.Err()
		},
	}
	fs := cmd.Flags()
	fs.Int("iterations", 0, "random cases per tile function")
	fs.Uint64("seed", 0, "random seed")
	fs.Int("parallelism", 0, "tile functions checked concurrently, 0 for GOMAXPROCS")
	fs.StringSliceVar(&ops, "ops", nil, "restrict to some of: pack, unpack, mmt4d")
	return cmd
}

func writeReport(w io.Writer, r *selftest.Report) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, res := range r.Results {
		status := "PASS"
		if res.Err != nil {
			status = "FAIL"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d cases\t%s\n", status, res.Variant, res.Arch, res.Cases, res.Elapsed.Round(time.Microsecond))
	}
	tw.Flush()
	for _, res := range r.Failed() {
		fmt.Fprintf(w, "\n%s: %v\n", res.Variant, res.Err)
	}
	fmt.Fprintf(w, "\n%d passed, %d failed\n", len(r.Results)-len(r.Failed()), len(r.Failed()))
}
