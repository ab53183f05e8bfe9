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

// Package selftest cross-checks every architecture-specific tile function
// against the generic path. Each check drives the full kernel with random
// shapes, including partial boundary tiles, once on the variant's
// architecture and once generic, and compares the output buffers byte for
// byte. It also checks that the selector picks the variant when given
// exactly the variant's CPU features.
package selftest

import (
	"context"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"

	"github.com/ajroetker/go-ukernel/ukernel"
	"github.com/ajroetker/go-ukernel/ukernel/mmt4d"
	"github.com/ajroetker/go-ukernel/ukernel/pack"
	"github.com/ajroetker/go-ukernel/ukernel/unpack"
)

// Op names accepted in Options.Ops.
const (
	OpPack   = "pack"
	OpUnpack = "unpack"
	OpMmt4d  = "mmt4d"
)

// Ops lists every operation the self-test covers.
func Ops() []string {
	return []string{OpPack, OpUnpack, OpMmt4d}
}

// Options configures Run.
type Options struct {
	// Iterations is the number of random cases per variant.
	Iterations int

	// Seed makes runs reproducible. Each variant derives its own stream.
	Seed uint64

	// Parallelism bounds the number of variants checked concurrently.
	// 0 means GOMAXPROCS.
	Parallelism int

	// Ops restricts the run to some operations. Empty means all.
	Ops []string
}

// Result is the outcome of checking one variant.
type Result struct {
	Op       string
	Variant  string
	Arch     ukernel.Arch
	Features []uint64
	Cases    int
	Elapsed  time.Duration
	Err      error
}

// Report collects the results of a run, in table order.
type Report struct {
	Results []Result
}

// Failed returns the results that have an error.
func (r *Report) Failed() []Result {
	return lo.Filter(r.Results, func(res Result, _ int) bool { return res.Err != nil })
}

// Err summarizes the failures, or returns nil if every variant passed.
func (r *Report) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}
	names := lo.Map(failed, func(res Result, _ int) string { return res.Variant })
	return errors.Errorf("%d of %d variants failed: %v", len(failed), len(r.Results), names)
}

// check is one variant and the function that runs a random case for it.
type check struct {
	op       string
	name     string
	arch     ukernel.Arch
	features uint64
	run      func(rng *rand.Rand, cpuData []uint64) error
}

func checks(ops []string) []check {
	var all []check
	if len(ops) == 0 || lo.Contains(ops, OpPack) {
		for _, v := range pack.Specializations() {
			all = append(all, check{OpPack, v.Name, v.Arch, v.Features, func(rng *rand.Rand, cpuData []uint64) error {
				return packCase(rng, v, cpuData)
			}})
		}
	}
	if len(ops) == 0 || lo.Contains(ops, OpUnpack) {
		for _, v := range unpack.Specializations() {
			all = append(all, check{OpUnpack, v.Name, v.Arch, v.Features, func(rng *rand.Rand, cpuData []uint64) error {
				return unpackCase(rng, v, cpuData)
			}})
		}
	}
	if len(ops) == 0 || lo.Contains(ops, OpMmt4d) {
		for _, v := range mmt4d.Specializations() {
			all = append(all, check{OpMmt4d, v.Name, v.Arch, v.Features, func(rng *rand.Rand, cpuData []uint64) error {
				return mmt4dCase(rng, v, cpuData)
			}})
		}
	}
	return all
}

// Run checks every selected variant. A variant failing is reported in its
// Result, not as an error; Run only returns an error for bad options or a
// canceled context.
func Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.Iterations < 1 {
		return nil, errors.Errorf("selftest: iterations must be >= 1, got %d", opts.Iterations)
	}
	if unknown, _ := lo.Difference(opts.Ops, Ops()); len(unknown) > 0 {
		return nil, errors.Errorf("selftest: unknown ops %v, known: %v", unknown, Ops())
	}
	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}

	all := checks(opts.Ops)
	report := &Report{Results: make([]Result, len(all))}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for i, c := range all {
		g.Go(func() error {
			res := &report.Results[i]
			*res = Result{
				Op:       c.op,
				Variant:  c.name,
				Arch:     c.arch,
				Features: []uint64{c.features},
			}
			rng := rand.New(rand.NewPCG(opts.Seed, uint64(i)))
			start := time.Now()
			for range opts.Iterations {
				if err := ctx.Err(); err != nil {
					return errors.WithStack(err)
				}
				res.Cases++
				if err := c.run(rng, res.Features); err != nil {
					res.Err = errors.Wrapf(err, "%s case %d", c.name, res.Cases)
					break
				}
			}
			res.Elapsed = time.Since(start)
			if res.Err != nil {
				klog.Errorf("selftest: %v", res.Err)
			} else {
				klog.V(1).Infof("selftest: %s passed %d cases in %s", c.name, res.Cases, res.Elapsed)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}
	return report, nil
}

// mismatch reports the first differing byte of two buffers.
func mismatch(what string, want, got []byte) error {
	if len(want) != len(got) {
		return errors.Errorf("%s: length %d, want %d", what, len(got), len(want))
	}
	for i := range want {
		if want[i] != got[i] {
			return errors.Errorf("%s: first mismatch at byte %d: got %#02x, want %#02x", what, i, got[i], want[i])
		}
	}
	return nil
}
