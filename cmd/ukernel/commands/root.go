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

// Package commands implements the ukernel command tree.
package commands

import (
	"flag"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/ajroetker/go-ukernel/internal/config"
)

// app holds what the root command resolves before any subcommand runs.
type app struct {
	cfgFile string
	cfg     *config.Config
}

// Execute runs the command line in os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand builds the full command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "ukernel",
		Short: "Inspect and exercise the pack, unpack and mmt4d microkernels",
		Long: `ukernel reports the CPU features the microkernels see on this host,
checks every architecture-specific tile function against the generic one and
round-trips matrices through pack and unpack.

Settings come from ukernel.yaml, UKERNEL_* environment variables and flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			if err := initLogging(cfg.Log.Verbosity); err != nil {
				return err
			}
			a.cfg = cfg
			klog.V(1).Infof("config: %+v", *cfg)
			return nil
		},
	}

	fs := root.PersistentFlags()
	fs.StringVar(&a.cfgFile, "config", "", "config file (default ./ukernel.yaml or $HOME/.config/ukernel/ukernel.yaml)")
	fs.IntP("verbosity", "v", 0, "log verbosity")
	fs.Int("workers", 0, "worker goroutines, 0 for GOMAXPROCS")
	fs.Int("min-rows", 0, "minimum outer tile rows per task")
	fs.Bool("generic-only", false, "disable architecture-specific tile functions")
	fs.StringSlice("features", nil, "CPU feature overrides, e.g. avx512_base,-avx512_vnni")

	root.AddCommand(
		newCPUInfoCommand(a),
		newSelftestCommand(a),
		newRoundtripCommand(a),
	)
	return root
}

// initLogging routes klog to stderr at the given verbosity.
func initLogging(verbosity int) error {
	fs := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(fs)
	if err := fs.Set("logtostderr", "true"); err != nil {
		return errors.WithStack(err)
	}
	if err := fs.Set("v", strconv.Itoa(verbosity)); err != nil {
		return errors.Wrap(err, "setting log verbosity")
	}
	return nil
}
