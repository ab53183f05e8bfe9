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
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ajroetker/go-ukernel/ukernel"
	"github.com/ajroetker/go-ukernel/ukernel/device"
	"github.com/ajroetker/go-ukernel/ukernel/pack"
	"github.com/ajroetker/go-ukernel/ukernel/unpack"
)

type roundtripOptions struct {
	typeName       string
	rows, cols     int
	tile0, tile1   int
	transposeInner bool
	transposeOuter bool
	padding        float64
}

func newRoundtripCommand(a *app) *cobra.Command {
	o := roundtripOptions{}
	cmd := &cobra.Command{
		Use:   "roundtrip",
		Short: "Pack a random matrix into tiles and unpack it again",
		Long: `roundtrip packs a random rows x cols matrix into tile0 x tile1 tiles on a
device built from the configuration, unpacks the result and checks that the
original matrix comes back bit for bit. The matrix is seeded by
selftest.seed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := a.cfg.DeviceOptions()
			if err != nil {
				return err
			}
			d, err := device.New(opts...)
			if err != nil {
				return err
			}
			defer d.Close()
			summary, err := roundtrip(d, o, a.cfg.Selftest.Seed)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), summary)
			return nil
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&o.typeName, "type", "f32", "element type: f32, i8, i32, f16 or bf16")
	fs.IntVar(&o.rows, "rows", 37, "matrix rows")
	fs.IntVar(&o.cols, "cols", 29, "matrix columns")
	fs.IntVar(&o.tile0, "tile0", 8, "tile rows")
	fs.IntVar(&o.tile1, "tile1", 8, "tile columns")
	fs.BoolVar(&o.transposeInner, "transpose-inner", false, "transpose each tile")
	fs.BoolVar(&o.transposeOuter, "transpose-outer", false, "transpose the tile grid")
	fs.Float64Var(&o.padding, "padding", 0, "value of padding elements in partial tiles")
	return cmd
}

// roundtrip runs one pack/unpack cycle on d and returns a one-line summary.
func roundtrip(d *device.Device, o roundtripOptions, seed uint64) (string, error) {
	typ, ok := ukernel.ParseType(o.typeName)
	if !ok {
		return "", errors.Errorf("unknown type %q", o.typeName)
	}
	if o.rows < 0 || o.cols < 0 || o.tile0 < 1 || o.tile1 < 1 {
		return "", errors.Errorf("need rows, cols >= 0 and tiles >= 1, got %dx%d with %dx%d tiles",
			o.rows, o.cols, o.tile0, o.tile1)
	}
	paddingBits, err := device.PaddingBits(typ, o.padding)
	if err != nil {
		return "", err
	}
	pair := ukernel.PackTypes2(typ, typ)
	esz := typ.Size()

	var packFlags, unpackFlags uint32
	if o.transposeInner {
		packFlags |= ukernel.FlagPackTransposeInner
		unpackFlags |= ukernel.FlagUnpackTransposeInner
	}
	if o.transposeOuter {
		packFlags |= ukernel.FlagPackTransposeOuter
		unpackFlags |= ukernel.FlagUnpackTransposeOuter
	}

	outer0 := (o.rows + o.tile0 - 1) / o.tile0
	outer1 := (o.cols + o.tile1 - 1) / o.tile1
	dims := [4]int{outer0, outer1, o.tile0, o.tile1}
	if o.transposeOuter {
		dims[0], dims[1] = dims[1], dims[0]
	}
	if o.transposeInner {
		dims[2], dims[3] = dims[3], dims[2]
	}
	tileStride := dims[1] * dims[2] * dims[3]

	rng := rand.New(rand.NewPCG(seed, uint64(o.rows)<<32|uint64(o.cols)))
	in := make([]byte, o.rows*o.cols*esz)
	for i := range in {
		in[i] = byte(rng.Uint32())
	}
	tiled := make([]byte, dims[0]*tileStride*esz)

	start := time.Now()
	if err := d.Pack(&pack.Params{
		Type:         pair,
		Flags:        packFlags,
		InStride0:    o.cols,
		OutStride0:   tileStride,
		InSize0:      o.rows,
		InSize1:      o.cols,
		OutSize0:     dims[0],
		OutSize1:     dims[1],
		OutSize2:     dims[2],
		OutSize3:     dims[3],
		InBuffer:     in,
		OutBuffer:    tiled,
		PaddingValue: paddingBits,
	}); err != nil {
		return "", err
	}
	packTime := time.Since(start)

	out := make([]byte, len(in))
	start = time.Now()
	if err := d.Unpack(&unpack.Params{
		Type:       pair,
		Flags:      unpackFlags,
		InStride0:  tileStride,
		OutStride0: o.cols,
		InSize0:    dims[0],
		InSize1:    dims[1],
		InSize2:    dims[2],
		InSize3:    dims[3],
		OutSize0:   o.rows,
		OutSize1:   o.cols,
		InBuffer:   tiled,
		OutBuffer:  out,
	}); err != nil {
		return "", err
	}
	unpackTime := time.Since(start)

	if !bytes.Equal(in, out) {
		i := 0
		for in[i] == out[i] {
			i++
		}
		e := i / esz
		return "", errors.Errorf("roundtrip mismatch at element [%d, %d]", e/o.cols, e%o.cols)
	}
	padded := dims[0]*dims[1]*dims[2]*dims[3] - o.rows*o.cols
	return fmt.Sprintf("%s %dx%d -> %v on %s with %d workers: %d padding elements, pack %s, unpack %s, ok",
		typ, o.rows, o.cols, dims, d.Arch(), d.NumWorkers(), padded,
		packTime.Round(time.Microsecond), unpackTime.Round(time.Microsecond)), nil
}
