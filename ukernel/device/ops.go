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

package device

import (
	"k8s.io/klog/v2"

	"github.com/ajroetker/go-ukernel/ukernel"
	"github.com/ajroetker/go-ukernel/ukernel/mmt4d"
	"github.com/ajroetker/go-ukernel/ukernel/pack"
	"github.com/ajroetker/go-ukernel/ukernel/unpack"
)

// Pack validates p and packs it. p.CPUData defaults to the Device's.
func (d *Device) Pack(p *pack.Params) error {
	q := *p
	if q.CPUData == nil {
		q.CPUData = d.cpuData
	}
	if err := statusError(pack.Validate(&q), "pack %s [%d, %d] into [%d, %d, %d, %d]",
		q.Type, q.InSize0, q.InSize1, q.OutSize0, q.OutSize1, q.OutSize2, q.OutSize3); err != nil {
		return err
	}
	rows, tile0 := q.OutSize0, q.OutSize2
	if q.Flags&ukernel.FlagPackTransposeOuter != 0 {
		rows = q.OutSize1
	}
	if q.Flags&ukernel.FlagPackTransposeInner != 0 {
		tile0 = q.OutSize3
	}
	esz := q.OutType().Size()
	tasks := d.run(rows, func(start, end int) {
		sub := q
		sub.InSize0 = max(0, min(q.InSize0, end*tile0)-start*tile0)
		sub.InBuffer = tail(q.InBuffer, start*tile0*q.InStride0*esz)
		if q.Flags&ukernel.FlagPackTransposeOuter != 0 {
			sub.OutSize1 = end - start
			sub.OutBuffer = tail(q.OutBuffer, start*q.OutSize2*q.OutSize3*esz)
		} else {
			sub.OutSize0 = end - start
			sub.OutBuffer = tail(q.OutBuffer, start*q.OutStride0*esz)
		}
		klog.V(4).Infof("pack task: tile rows [%d, %d)", start, end)
		pack.PackForArch(d.arch, &sub)
	})
	klog.V(2).Infof("pack %s flags=%#x [%d, %d] tiles %dx%d: %d tasks on %s",
		q.Type, q.Flags, q.InSize0, q.InSize1, q.OutSize2, q.OutSize3, tasks, d.arch)
	return nil
}

// Unpack validates p and unpacks it. p.CPUData defaults to the Device's.
func (d *Device) Unpack(p *unpack.Params) error {
	q := *p
	if q.CPUData == nil {
		q.CPUData = d.cpuData
	}
	if err := statusError(unpack.Validate(&q), "unpack %s [%d, %d, %d, %d] into [%d, %d]",
		q.Type, q.InSize0, q.InSize1, q.InSize2, q.InSize3, q.OutSize0, q.OutSize1); err != nil {
		return err
	}
	rows, tile0 := q.InSize0, q.InSize2
	if q.Flags&ukernel.FlagUnpackTransposeOuter != 0 {
		rows = q.InSize1
	}
	if q.Flags&ukernel.FlagUnpackTransposeInner != 0 {
		tile0 = q.InSize3
	}
	esz := q.OutType().Size()
	tasks := d.run(rows, func(start, end int) {
		sub := q
		sub.OutSize0 = max(0, min(q.OutSize0, end*tile0)-start*tile0)
		sub.OutBuffer = tail(q.OutBuffer, start*tile0*q.OutStride0*esz)
		if q.Flags&ukernel.FlagUnpackTransposeOuter != 0 {
			sub.InSize1 = end - start
			sub.InBuffer = tail(q.InBuffer, start*q.InSize2*q.InSize3*esz)
		} else {
			sub.InSize0 = end - start
			sub.InBuffer = tail(q.InBuffer, start*q.InStride0*esz)
		}
		klog.V(4).Infof("unpack task: tile rows [%d, %d)", start, end)
		unpack.UnpackForArch(d.arch, &sub)
	})
	klog.V(2).Infof("unpack %s flags=%#x [%d, %d] tiles %dx%d: %d tasks on %s",
		q.Type, q.Flags, q.OutSize0, q.OutSize1, q.InSize2, q.InSize3, tasks, d.arch)
	return nil
}

// Mmt4d validates p and runs it. p.CPUData defaults to the Device's.
func (d *Device) Mmt4d(p *mmt4d.Params) error {
	q := *p
	if q.CPUData == nil {
		q.CPUData = d.cpuData
	}
	if err := statusError(mmt4d.ValidateForArch(d.arch, &q), "mmt4d %s M=%d N=%d K=%d tile %dx%dx%d",
		q.Type, q.M, q.N, q.K, q.M0, q.N0, q.K0); err != nil {
		return err
	}
	lhsSize := q.LHSType().Size()
	outSize := q.OutType().Size()
	tasks := d.run(q.M, func(start, end int) {
		sub := q
		sub.M = end - start
		sub.LHSBuffer = tail(q.LHSBuffer, start*q.LHSStride0*lhsSize)
		sub.OutBuffer = tail(q.OutBuffer, start*q.OutStride0*outSize)
		klog.V(4).Infof("mmt4d task: rows [%d, %d)", start, end)
		mmt4d.Mmt4dForArch(d.arch, &sub)
	})
	klog.V(2).Infof("mmt4d %s flags=%#x M=%d N=%d K=%d tile %dx%dx%d: %d tasks on %s",
		q.Type, q.Flags, q.M, q.N, q.K, q.M0, q.N0, q.K0, tasks, d.arch)
	return nil
}

// tail returns buf from offset on. Offsets past the end occur for rows of
// empty operands, whose buffers validation does not constrain.
func tail(buf []byte, offset int) []byte {
	return buf[min(len(buf), offset):]
}
