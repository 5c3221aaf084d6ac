// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package assets

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// ErrNoDevice is returned when a GPU asset is built without a device.
var ErrNoDevice = errors.New("assets: build context has no device")

// BuildContext carries the GPU handles that raw records need to become
// runtime assets. Records that do not touch the GPU ignore it.
type BuildContext struct {
	Device hal.Device
	Queue  hal.Queue

	release func()
}

// NewBuildContext wraps an existing device and queue. The caller keeps
// ownership of both; Close does not destroy them.
func NewBuildContext(device hal.Device, queue hal.Queue) *BuildContext {
	return &BuildContext{Device: device, Queue: queue}
}

// BuildContextFromProvider takes the device and queue from a host
// application such as gogpu. The provider must also expose
// HalDevice() any and HalQueue() any returning hal.Device and hal.Queue.
func BuildContextFromProvider(provider gpucontext.DeviceProvider) (*BuildContext, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("assets: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("assets: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("assets: provider HalQueue is not hal.Queue")
	}
	return NewBuildContext(device, queue), nil
}

// NewHeadlessBuildContext opens a device on the noop HAL backend. GPU
// calls succeed without rendering anything, which lets tools and tests
// build every asset kind without a window or a real adapter.
//
// Close releases the device.
func NewHeadlessBuildContext() (*BuildContext, error) {
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		return nil, fmt.Errorf("assets: create noop instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("assets: noop backend reported no adapters")
	}
	open, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("assets: open noop device: %w", err)
	}

	bc := NewBuildContext(open.Device, open.Queue)
	bc.release = func() {
		open.Device.Destroy()
		instance.Destroy()
	}
	return bc, nil
}

// RequireDevice returns [ErrNoDevice] if bc is nil or has no device or queue.
func (bc *BuildContext) RequireDevice() error {
	if bc == nil || bc.Device == nil || bc.Queue == nil {
		return ErrNoDevice
	}
	return nil
}

// Close releases resources owned by the context. It is a no-op for
// contexts created with NewBuildContext and safe to call more than once.
func (bc *BuildContext) Close() {
	if bc == nil || bc.release == nil {
		return
	}
	bc.release()
	bc.release = nil
}

// Destroyer is implemented by runtime assets that own GPU resources.
type Destroyer interface {
	Destroy(device hal.Device)
}
