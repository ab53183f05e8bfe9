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

package unpack

import (
	"encoding/binary"
	"math"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ajroetker/go-ukernel/ukernel"
	"github.com/ajroetker/go-ukernel/ukernel/pack"
)

func randomBytes(rng *rand.Rand, n int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte(rng.Uint32())
	}
	return buf
}

func float32Bytes(values ...float32) []byte {
	buf := make([]byte, 4*len(values))
	for i, v := range values {
		binary.NativeEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	return buf
}

// newParams builds params for an outSize0 x outSize1 output unpacked from
// densely stored tile0 x tile1 tiles.
func newParams(rng *rand.Rand, typ Type, flags uint32, outSize0, outSize1, tile0, tile1 int) *Params {
	esz := typ.At(1).Size()
	p := &Params{
		Type:       typ,
		Flags:      flags,
		OutStride0: outSize1,
		OutSize0:   outSize0,
		OutSize1:   outSize1,
		InSize0:    (outSize0 + tile0 - 1) / tile0,
		InSize1:    (outSize1 + tile1 - 1) / tile1,
		InSize2:    tile0,
		InSize3:    tile1,
	}
	if flags&ukernel.FlagUnpackTransposeOuter != 0 {
		p.InSize0, p.InSize1 = p.InSize1, p.InSize0
	}
	if flags&ukernel.FlagUnpackTransposeInner != 0 {
		p.InSize2, p.InSize3 = p.InSize3, p.InSize2
	}
	p.InStride0 = p.InSize1 * p.InSize2 * p.InSize3
	p.InBuffer = randomBytes(rng, p.InSize0*p.InStride0*esz)
	p.OutBuffer = randomBytes(rng, outSize0*outSize1*esz)
	return p
}

// referenceUnpack computes the expected output element by element.
func referenceUnpack(p *Params) []byte {
	esz := p.OutType().Size()
	out := append([]byte(nil), p.OutBuffer...)
	transposeOuter := p.Flags&ukernel.FlagUnpackTransposeOuter != 0
	transposeInner := p.Flags&ukernel.FlagUnpackTransposeInner != 0
	for d0 := range p.InSize0 {
		for d1 := range p.InSize1 {
			for d2 := range p.InSize2 {
				for d3 := range p.InSize3 {
					o0, o1, t0, t1 := d0, d1, d2, d3
					tile0, tile1 := p.InSize2, p.InSize3
					if transposeOuter {
						o0, o1 = o1, o0
					}
					if transposeInner {
						t0, t1 = t1, t0
						tile0, tile1 = tile1, tile0
					}
					i0, i1 := o0*tile0+t0, o1*tile1+t1
					if i0 >= p.OutSize0 || i1 >= p.OutSize1 {
						continue
					}
					src := (d0*p.InStride0 + (d1*p.InSize2+d2)*p.InSize3 + d3) * esz
					copy(out[(i0*p.OutStride0+i1)*esz:][:esz], p.InBuffer[src:])
				}
			}
		}
	}
	return out
}

func TestUnpack4x4F32(t *testing.T) {
	tiled := []float32{0.5, 1.5, 4.5, 5.5, 2.5, 3.5, 6.5, 7.5, 8.5, 9.5, 12.5, 13.5, 10.5, 11.5, 14.5, 15.5}
	p := &Params{
		Type:       TypeF32F32,
		InStride0:  8,
		OutStride0: 4,
		InSize0:    2,
		InSize1:    2,
		InSize2:    2,
		InSize3:    2,
		OutSize0:   4,
		OutSize1:   4,
		InBuffer:   float32Bytes(tiled...),
		OutBuffer:  make([]byte, 16*4),
	}
	if s := Validate(p); s != ukernel.StatusOK {
		t.Fatalf("Validate() = %v", s)
	}
	Unpack(p)
	want := make([]float32, 16)
	for i := range want {
		want[i] = float32(i) + 0.5
	}
	if diff := cmp.Diff(float32Bytes(want...), p.OutBuffer); diff != "" {
		t.Errorf("unpacked matrix mismatch (-want +got):\n%s", diff)
	}
}

func TestUnpackMatchesReference(t *testing.T) {
	rng := rand.New(rand.NewPCG(21, 22))
	types := []Type{TypeF32F32, TypeI8I8, TypeI32I32, TypeF16F16, TypeBF16BF16}
	shapes := []struct{ out0, out1, tile0, tile1 int }{
		{16, 16, 8, 8},
		{17, 13, 8, 4},
		{5, 3, 8, 1},
		{9, 24, 8, 8},
		{3, 7, 2, 3},
		{1, 1, 1, 1},
		{6, 10, 16, 16},
	}
	for _, typ := range types {
		for flags := range uint32(4) {
			for _, s := range shapes {
				for _, arch := range []ukernel.Arch{ukernel.ArchGeneric, ukernel.ArchARM64} {
					p := newParams(rng, typ, flags, s.out0, s.out1, s.tile0, s.tile1)
					if status := Validate(p); status != ukernel.StatusOK {
						t.Fatalf("%v flags=%d %+v: Validate() = %v", typ, flags, s, status)
					}
					want := referenceUnpack(p)
					UnpackForArch(arch, p)
					if diff := cmp.Diff(want, p.OutBuffer); diff != "" {
						t.Errorf("%v %v flags=%d %+v: mismatch (-want +got):\n%s", arch, typ, flags, s, diff)
					}
				}
			}
		}
	}
}

func TestUnpackStridedOutput(t *testing.T) {
	rng := rand.New(rand.NewPCG(23, 24))
	p := newParams(rng, TypeI32I32, 0, 11, 6, 8, 8)
	const stride = 10
	p.OutStride0 = stride
	p.OutBuffer = randomBytes(rng, (10*stride+6)*4)
	if s := Validate(p); s != ukernel.StatusOK {
		t.Fatalf("Validate() = %v", s)
	}
	want := referenceUnpack(p)
	Unpack(p)
	// referenceUnpack leaves the gap columns alone, so this also checks that
	// Unpack never writes outside the output rows.
	if diff := cmp.Diff(want, p.OutBuffer); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

// TestPackUnpackRoundTrip checks that unpack inverts pack when no padding
// is involved, and also with padding since padding is dropped on unpack.
func TestPackUnpackRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(25, 26))
	for _, typ := range []Type{TypeF32F32, TypeI8I8, TypeI32I32, TypeF16F16} {
		for flags := range uint32(4) {
			for _, s := range [][4]int{{16, 16, 8, 8}, {24, 8, 8, 1}, {8, 12, 8, 4}, {13, 9, 4, 2}} {
				rows, cols, tile0, tile1 := s[0], s[1], s[2], s[3]
				esz := typ.At(0).Size()
				matrix := randomBytes(rng, rows*cols*esz)
				pp := &pack.Params{
					Type:      typ,
					Flags:     flags,
					InStride0: cols,
					InSize0:   rows,
					InSize1:   cols,
					OutSize0:  (rows + tile0 - 1) / tile0,
					OutSize1:  (cols + tile1 - 1) / tile1,
					OutSize2:  tile0,
					OutSize3:  tile1,
					InBuffer:  matrix,
				}
				if flags&ukernel.FlagPackTransposeOuter != 0 {
					pp.OutSize0, pp.OutSize1 = pp.OutSize1, pp.OutSize0
				}
				if flags&ukernel.FlagPackTransposeInner != 0 {
					pp.OutSize2, pp.OutSize3 = pp.OutSize3, pp.OutSize2
				}
				pp.OutStride0 = pp.OutSize1 * pp.OutSize2 * pp.OutSize3
				pp.OutBuffer = make([]byte, pp.OutSize0*pp.OutStride0*esz)
				if status := pack.Validate(pp); status != ukernel.StatusOK {
					t.Fatalf("pack.Validate() = %v", status)
				}
				pack.Pack(pp)

				up := &Params{
					Type:       typ,
					Flags:      flags,
					InStride0:  pp.OutStride0,
					OutStride0: cols,
					InSize0:    pp.OutSize0,
					InSize1:    pp.OutSize1,
					InSize2:    pp.OutSize2,
					InSize3:    pp.OutSize3,
					OutSize0:   rows,
					OutSize1:   cols,
					InBuffer:   pp.OutBuffer,
					OutBuffer:  make([]byte, len(matrix)),
				}
				if status := Validate(up); status != ukernel.StatusOK {
					t.Fatalf("Validate() = %v", status)
				}
				Unpack(up)
				if diff := cmp.Diff(matrix, up.OutBuffer); diff != "" {
					t.Errorf("%v flags=%d shape=%v: round trip mismatch (-want +got):\n%s", typ, flags, s, diff)
				}
			}
		}
	}
}

func TestUnpackConcurrent(t *testing.T) {
	rng := rand.New(rand.NewPCG(27, 28))
	params := make([]*Params, 8)
	wants := make([][]byte, len(params))
	for i := range params {
		params[i] = newParams(rng, TypeI8I8, uint32(i%4), 20+i, 17, 8, 8)
		wants[i] = referenceUnpack(params[i])
	}
	var wg sync.WaitGroup
	for _, p := range params {
		wg.Go(func() {
			for range 10 {
				Unpack(p)
			}
		})
	}
	wg.Wait()
	for i, p := range params {
		if diff := cmp.Diff(wants[i], p.OutBuffer); diff != "" {
			t.Errorf("worker %d: mismatch (-want +got):\n%s", i, diff)
		}
	}
}
