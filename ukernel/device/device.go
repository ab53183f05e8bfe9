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

// Package device is the caller side of the microkernels: it owns the CPU
// feature data and a worker pool, validates parameters, reports bad ones as
// errors and splits each call into independent row ranges that run in
// parallel.
package device

import (
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/ajroetker/go-ukernel/ukernel"
	"github.com/ajroetker/go-ukernel/ukernel/cpuinfo"
	"github.com/ajroetker/go-ukernel/ukernel/workerpool"
)

// DefaultMinRowsPerTask is the default minimum number of outer tile rows a
// task gets before a call is split.
const DefaultMinRowsPerTask = 4

type options struct {
	cpuData        []uint64
	workers        int
	pool           *workerpool.Pool
	genericOnly    bool
	minRowsPerTask int
}

// Option configures a Device.
type Option func(*options)

// WithCPUData uses data instead of querying the host. Missing words are
// zero.
func WithCPUData(data []uint64) Option {
	return func(o *options) {
		o.cpuData = data
	}
}

// WithWorkers sets the size of the pool the Device creates. 0 means
// GOMAXPROCS, 1 runs every call on the calling goroutine.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithPool shares an existing pool. The Device does not close it.
func WithPool(pool *workerpool.Pool) Option {
	return func(o *options) {
		o.pool = pool
	}
}

// WithGenericOnly disables every architecture-specific tile function.
func WithGenericOnly(genericOnly bool) Option {
	return func(o *options) {
		o.genericOnly = genericOnly
	}
}

// WithMinRowsPerTask sets the minimum number of outer tile rows per task.
func WithMinRowsPerTask(n int) Option {
	return func(o *options) {
		o.minRowsPerTask = n
	}
}

// Device runs microkernel calls for one runtime context. It is safe for
// concurrent use as long as concurrent calls write disjoint outputs.
type Device struct {
	arch           ukernel.Arch
	cpuData        []uint64
	pool           *workerpool.Pool
	ownsPool       bool
	minRowsPerTask int
}

// New creates a Device for the host.
func New(opts ...Option) (*Device, error) {
	o := options{minRowsPerTask: DefaultMinRowsPerTask}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 0 {
		return nil, errors.Errorf("invalid number of workers %d", o.workers)
	}
	if o.minRowsPerTask < 1 {
		return nil, errors.Errorf("invalid minimum rows per task %d", o.minRowsPerTask)
	}
	if len(o.cpuData) > ukernel.CPUDataFieldCount {
		return nil, errors.Errorf("CPU data has %d words, at most %d are defined", len(o.cpuData), ukernel.CPUDataFieldCount)
	}
	d := &Device{
		arch:           ukernel.HostArch(),
		cpuData:        make([]uint64, ukernel.CPUDataFieldCount),
		pool:           o.pool,
		minRowsPerTask: o.minRowsPerTask,
	}
	if o.cpuData != nil {
		copy(d.cpuData, o.cpuData)
	} else {
		copy(d.cpuData, cpuinfo.Query())
	}
	if o.genericOnly {
		d.arch = ukernel.ArchGeneric
	}
	if d.pool == nil && o.workers != 1 {
		d.pool = workerpool.New(o.workers)
		d.ownsPool = true
	}
	klog.V(1).Infof("ukernel device: arch=%s features=%v workers=%d",
		d.arch, cpuinfo.FeatureNames(d.arch, d.cpuData), d.pool.NumWorkers())
	return d, nil
}

// Arch returns the architecture whose tile functions the Device uses.
func (d *Device) Arch() ukernel.Arch {
	return d.arch
}

// CPUData returns a copy of the feature data passed to every call.
func (d *Device) CPUData() []uint64 {
	return append([]uint64(nil), d.cpuData...)
}

// NumWorkers returns the number of workers calls are split across.
func (d *Device) NumWorkers() int {
	return d.pool.NumWorkers()
}

// Close stops the Device's own pool. The Device must not be used after.
func (d *Device) Close() {
	if d.ownsPool {
		d.pool.Close()
	}
}

// run calls fn on row ranges covering [0, rows), in parallel when there is
// enough work, and returns the number of tasks. Each worker gets one
// contiguous range unless that would leave ranges under minRowsPerTask.
func (d *Device) run(rows int, fn func(start, end int)) int {
	workers := d.pool.NumWorkers()
	if workers == 1 || rows < 2*d.minRowsPerTask {
		fn(0, rows)
		return 1
	}
	perWorker := (rows + workers - 1) / workers
	if perWorker >= d.minRowsPerTask {
		d.pool.ParallelFor(rows, fn)
		return (rows + perWorker - 1) / perWorker
	}
	d.pool.ParallelForBatched(rows, d.minRowsPerTask, fn)
	return (rows + d.minRowsPerTask - 1) / d.minRowsPerTask
}

// statusError turns a non-OK status into an error that still matches the
// status under errors.Is.
func statusError(s ukernel.Status, format string, args ...any) error {
	if s == ukernel.StatusOK {
		return nil
	}
	return errors.Wrapf(s, format, args...)
}
