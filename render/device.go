// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Device is an opened GPU device with its submission queue.
//
// Adapter is nil when the device was adopted from a host with
// FromProvider; such devices are not destroyed by Close.
type Device struct {
	Adapter hal.Adapter
	Device  hal.Device
	Queue   hal.Queue
	Info    gputypes.AdapterInfo

	owned bool
}

// Open enumerates adapters that can present to surface and opens a device
// on the first one. Both failure modes are fatal for the caller:
// ErrNoAdapter when nothing is compatible, ErrDeviceUnavailable when the
// device cannot be opened.
func Open(instance hal.Instance, surface hal.Surface) (*Device, error) {
	adapters := instance.EnumerateAdapters(surface)
	if len(adapters) == 0 {
		return nil, ErrNoAdapter
	}

	exposed := adapters[0]
	open, err := exposed.Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDeviceUnavailable, exposed.Info.Name, err)
	}

	slogger().Info("render: adapter selected",
		"name", exposed.Info.Name,
		"vendor", exposed.Info.Vendor,
		"candidates", len(adapters))

	return &Device{
		Adapter: exposed.Adapter,
		Device:  open.Device,
		Queue:   open.Queue,
		Info:    exposed.Info,
		owned:   true,
	}, nil
}

// FromProvider adopts the device of a host application. Two provider
// shapes are accepted: one exposing HalDevice() any and HalQueue() any
// directly, and a gpucontext.DeviceProvider whose Device() is a wgpu
// device with typed HalDevice and HalQueue accessors, as gogpu's GPU
// context provider returns.
func FromProvider(provider any) (*Device, error) {
	device, queue := halHandles(provider)
	if device == nil || queue == nil {
		return nil, fmt.Errorf("%w (got %T)", ErrNoHALProvider, provider)
	}

	slogger().Debug("render: using shared host device")
	return &Device{Device: device, Queue: queue}, nil
}

func halHandles(provider any) (hal.Device, hal.Queue) {
	type untypedHAL interface {
		HalDevice() any
		HalQueue() any
	}
	type typedHAL interface {
		HalDevice() hal.Device
		HalQueue() hal.Queue
	}

	switch p := provider.(type) {
	case untypedHAL:
		device, _ := p.HalDevice().(hal.Device)
		queue, _ := p.HalQueue().(hal.Queue)
		return device, queue
	case gpucontext.DeviceProvider:
		if t, ok := p.Device().(typedHAL); ok {
			return t.HalDevice(), t.HalQueue()
		}
	}
	return nil, nil
}

// Close waits for outstanding GPU work and destroys the device if Open
// created it. Adopted host devices are left alone.
func (d *Device) Close() {
	if d == nil || d.Device == nil {
		return
	}
	if d.owned {
		if err := d.Device.WaitIdle(); err != nil {
			slogger().Warn("render: wait idle before device destroy", "err", err)
		}
		d.Device.Destroy()
	}
	d.Device = nil
	d.Queue = nil
}
