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

package selftest

import (
	"encoding/binary"
	"math"
	"math/rand/v2"
	"reflect"

	"github.com/pkg/errors"

	"github.com/ajroetker/go-ukernel/ukernel"
	"github.com/ajroetker/go-ukernel/ukernel/mmt4d"
	"github.com/ajroetker/go-ukernel/ukernel/pack"
	"github.com/ajroetker/go-ukernel/ukernel/unpack"
)

func randomBytes(rng *rand.Rand, n int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte(rng.Uint32())
	}
	return buf
}

// randomFloat32s returns small integral values so that sums are exact.
func randomFloat32s(rng *rand.Rand, n int) []byte {
	buf := make([]byte, 4*n)
	for i := range n {
		binary.NativeEndian.PutUint32(buf[4*i:], math.Float32bits(float32(rng.IntN(17)-8)))
	}
	return buf
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// sameFunc reports whether two func values refer to the same function.
func sameFunc(a, b any) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

// pairTypes returns the same-type pairs with the given element size.
func pairTypes(elemSize int) []ukernel.TypePair {
	switch elemSize {
	case 1:
		return []ukernel.TypePair{pack.TypeI8I8}
	case 2:
		return []ukernel.TypePair{pack.TypeF16F16, pack.TypeBF16BF16}
	case 4:
		return []ukernel.TypePair{pack.TypeF32F32, pack.TypeI32I32}
	}
	return nil
}

func pickPairType(rng *rand.Rand, elemSize int) (ukernel.TypePair, error) {
	types := pairTypes(elemSize)
	if len(types) == 0 {
		return 0, errors.Errorf("no type with element size %d", elemSize)
	}
	return types[rng.IntN(len(types))], nil
}

func packCase(rng *rand.Rand, v pack.Variant, cpuData []uint64) error {
	typ, err := pickPairType(rng, v.ElemSize)
	if err != nil {
		return err
	}
	var flags uint32
	if v.TransposeInner {
		flags |= ukernel.FlagPackTransposeInner
	}
	if rng.IntN(2) == 1 {
		flags |= ukernel.FlagPackTransposeOuter
	}
	inSize0 := 1 + rng.IntN(3*v.TileSize0+2)
	inSize1 := 1 + rng.IntN(3*v.TileSize1+2)
	p := pack.Params{
		Type:         typ,
		Flags:        flags,
		InStride0:    inSize1 + rng.IntN(3),
		InSize0:      inSize0,
		InSize1:      inSize1,
		OutSize0:     ceilDiv(inSize0, v.TileSize0),
		OutSize1:     ceilDiv(inSize1, v.TileSize1),
		OutSize2:     v.TileSize0,
		OutSize3:     v.TileSize1,
		PaddingValue: rng.Uint64(),
		CPUData:      cpuData,
	}
	if flags&ukernel.FlagPackTransposeOuter != 0 {
		p.OutSize0, p.OutSize1 = p.OutSize1, p.OutSize0
	}
	if flags&ukernel.FlagPackTransposeInner != 0 {
		p.OutSize2, p.OutSize3 = p.OutSize3, p.OutSize2
	}
	p.OutStride0 = p.OutSize1*p.OutSize2*p.OutSize3 + rng.IntN(3)
	p.InBuffer = randomBytes(rng, ((inSize0-1)*p.InStride0+inSize1)*v.ElemSize)
	p.OutBuffer = randomBytes(rng, p.OutSize0*p.OutStride0*v.ElemSize)

	if s := pack.Validate(&p); s != ukernel.StatusOK {
		return errors.Wrapf(s, "generated pack %v %dx%d flags=%#x", typ, inSize0, inSize1, flags)
	}
	if f := pack.SelectTileFuncForArch(v.Arch, &p); !sameFunc(f, v.Func) {
		return errors.Errorf("selector did not pick %s for %v flags=%#x", v.Name, typ, flags)
	}
	generic := p
	generic.OutBuffer = append([]byte(nil), p.OutBuffer...)
	pack.PackForArch(ukernel.ArchGeneric, &generic)
	pack.PackForArch(v.Arch, &p)
	return mismatch("pack output", generic.OutBuffer, p.OutBuffer)
}

func unpackCase(rng *rand.Rand, v unpack.Variant, cpuData []uint64) error {
	typ, err := pickPairType(rng, v.ElemSize)
	if err != nil {
		return err
	}
	var flags uint32
	if v.TransposeInner {
		flags |= ukernel.FlagUnpackTransposeInner
	}
	if rng.IntN(2) == 1 {
		flags |= ukernel.FlagUnpackTransposeOuter
	}
	outSize0 := 1 + rng.IntN(3*v.TileSize0+2)
	outSize1 := 1 + rng.IntN(3*v.TileSize1+2)
	p := unpack.Params{
		Type:       typ,
		Flags:      flags,
		OutStride0: outSize1 + rng.IntN(3),
		InSize0:    ceilDiv(outSize0, v.TileSize0),
		InSize1:    ceilDiv(outSize1, v.TileSize1),
		InSize2:    v.TileSize0,
		InSize3:    v.TileSize1,
		OutSize0:   outSize0,
		OutSize1:   outSize1,
		CPUData:    cpuData,
	}
	if flags&ukernel.FlagUnpackTransposeOuter != 0 {
		p.InSize0, p.InSize1 = p.InSize1, p.InSize0
	}
	if flags&ukernel.FlagUnpackTransposeInner != 0 {
		p.InSize2, p.InSize3 = p.InSize3, p.InSize2
	}
	p.InStride0 = p.InSize1*p.InSize2*p.InSize3 + rng.IntN(3)
	p.InBuffer = randomBytes(rng, p.InSize0*p.InStride0*v.ElemSize)
	p.OutBuffer = randomBytes(rng, ((outSize0-1)*p.OutStride0+outSize1)*v.ElemSize)

	if s := unpack.Validate(&p); s != ukernel.StatusOK {
		return errors.Wrapf(s, "generated unpack %v %dx%d flags=%#x", typ, outSize0, outSize1, flags)
	}
	if f := unpack.SelectTileFuncForArch(v.Arch, &p); !sameFunc(f, v.Func) {
		return errors.Errorf("selector did not pick %s for %v flags=%#x", v.Name, typ, flags)
	}
	generic := p
	generic.OutBuffer = append([]byte(nil), p.OutBuffer...)
	unpack.UnpackForArch(ukernel.ArchGeneric, &generic)
	unpack.UnpackForArch(v.Arch, &p)
	return mismatch("unpack output", generic.OutBuffer, p.OutBuffer)
}

func mmt4dCase(rng *rand.Rand, v mmt4d.Variant, cpuData []uint64) error {
	var flags uint32
	if rng.IntN(2) == 1 {
		flags |= ukernel.FlagMmt4dAccumulate
	}
	m, n, k := 1+rng.IntN(3), 1+rng.IntN(3), 1+rng.IntN(4)
	p := mmt4d.Params{
		Type:       v.Type,
		Flags:      flags,
		LHSStride0: k*v.M0*v.K0 + rng.IntN(3),
		RHSStride0: k*v.N0*v.K0 + rng.IntN(3),
		OutStride0: n*v.M0*v.N0 + rng.IntN(3),
		M:          m,
		N:          n,
		K:          k,
		M0:         v.M0,
		N0:         v.N0,
		K0:         v.K0,
		CPUData:    cpuData,
	}
	operand := func(t ukernel.Type, elems int) []byte {
		if t == ukernel.TypeFloat32 {
			return randomFloat32s(rng, elems)
		}
		return randomBytes(rng, elems*t.Size())
	}
	p.LHSBuffer = operand(p.LHSType(), m*p.LHSStride0)
	p.RHSBuffer = operand(p.RHSType(), n*p.RHSStride0)
	p.OutBuffer = operand(p.OutType(), m*p.OutStride0)

	if s := mmt4d.ValidateForArch(v.Arch, &p); s != ukernel.StatusOK {
		return errors.Wrapf(s, "generated mmt4d %v %dx%dx%d", v.Type, m, n, k)
	}
	if f := mmt4d.SelectTileFuncForArch(v.Arch, &p); !sameFunc(f, v.Func) {
		return errors.Errorf("selector did not pick %s with features %#x", v.Name, v.Features)
	}
	generic := p
	generic.OutBuffer = append([]byte(nil), p.OutBuffer...)
	mmt4d.Mmt4dForArch(ukernel.ArchGeneric, &generic)
	mmt4d.Mmt4dForArch(v.Arch, &p)
	return mismatch("mmt4d output", generic.OutBuffer, p.OutBuffer)
}
