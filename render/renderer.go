// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/mandelbrot/geometry"
	"github.com/gogpu/mandelbrot/view"
)

// Renderer owns the GPU resource group for the fractal view and draws one
// frame per Render call. It is not safe for concurrent use.
type Renderer struct {
	device hal.Device
	queue  hal.Queue
	target Target
	opts   options

	uniformBuf    hal.Buffer
	uniformLayout hal.BindGroupLayout
	bindGroup     hal.BindGroup
	shader        hal.ShaderModule
	pipeLayout    hal.PipelineLayout
	pipeline      hal.RenderPipeline
	vertexBuf     hal.Buffer
	indexBuf      hal.Buffer

	// uniform is the staging copy of the encoded view state.
	uniform [view.UniformSize]byte

	// inFlight holds submitted command buffers until the queue reports
	// their submission index as completed.
	inFlight []submission

	reconfigure bool
	frames      uint64
}

type submission struct {
	index uint64
	cmd   hal.CommandBuffer
}

// New builds the resource group on device and uploads the initial view
// state and the quad geometry. On failure everything created so far is
// released.
func New(device hal.Device, queue hal.Queue, target Target, initial view.State, opts ...Option) (*Renderer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	r := &Renderer{
		device: device,
		queue:  queue,
		target: target,
		opts:   o,
	}
	if err := r.createResources(initial); err != nil {
		r.destroyResources()
		return nil, err
	}
	slogger().Debug("render: resources created",
		"format", target.Format().String(),
		"state", initial.String())
	return r, nil
}

func (r *Renderer) label(s string) string { return r.opts.label + "_" + s }

//nolint:funlen // sequential resource creation
func (r *Renderer) createResources(initial view.State) error {
	uniformBuf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: r.label("view_uniform"),
		Size:  view.UniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("render: create view uniform buffer: %w", err)
	}
	r.uniformBuf = uniformBuf
	initial.PutBytes(r.uniform[:])
	if err := r.queue.WriteBuffer(r.uniformBuf, 0, r.uniform[:]); err != nil {
		return fmt.Errorf("render: upload initial view: %w", err)
	}

	uniformLayout, err := r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: r.label("view_layout"),
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("render: create view bind group layout: %w", err)
	}
	r.uniformLayout = uniformLayout

	bindGroup, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  r.label("view_bind"),
		Layout: r.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: r.uniformBuf.NativeHandle(), Offset: 0, Size: view.UniformSize,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("render: create view bind group: %w", err)
	}
	r.bindGroup = bindGroup

	shader, err := createShaderModule(r.device, r.label("shader"), mandelbrotShaderSource)
	if err != nil {
		return fmt.Errorf("render: create shader module: %w", err)
	}
	r.shader = shader

	pipeLayout, err := r.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            r.label("pipe_layout"),
		BindGroupLayouts: []hal.BindGroupLayout{r.uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("render: create pipeline layout: %w", err)
	}
	r.pipeLayout = pipeLayout

	replace := gputypes.BlendStateReplace()
	pipeline, err := r.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  r.label("pipeline"),
		Layout: r.pipeLayout,
		Vertex: hal.VertexState{
			Module:     r.shader,
			EntryPoint: vertexEntryPoint,
			Buffers:    []gputypes.VertexBufferLayout{geometry.Layout()},
		},
		Fragment: &hal.FragmentState{
			Module:     r.shader,
			EntryPoint: fragmentEntryPoint,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    r.target.Format(),
					Blend:     &replace,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
		},
		Multisample: gputypes.DefaultMultisampleState(),
	})
	if err != nil {
		return fmt.Errorf("render: create render pipeline: %w", err)
	}
	r.pipeline = pipeline

	vertexBytes := geometry.VertexBytes()
	vertexBuf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: r.label("vertices"),
		Size:  uint64(len(vertexBytes)),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("render: create vertex buffer: %w", err)
	}
	r.vertexBuf = vertexBuf
	if err := r.queue.WriteBuffer(r.vertexBuf, 0, vertexBytes); err != nil {
		return fmt.Errorf("render: upload vertices: %w", err)
	}

	indexBytes := geometry.IndexBytes()
	indexBuf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: r.label("indices"),
		Size:  uint64(len(indexBytes)),
		Usage: gputypes.BufferUsageIndex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("render: create index buffer: %w", err)
	}
	r.indexBuf = indexBuf
	if err := r.queue.WriteBuffer(r.indexBuf, 0, indexBytes); err != nil {
		return fmt.Errorf("render: upload indices: %w", err)
	}

	return nil
}

// Render draws s into the next image of the target.
//
// It returns nil when the frame was drawn or deliberately skipped (lost or
// outdated surface, transient acquisition failure). ErrOutOfMemory means
// the loop must stop. Other errors describe a frame that failed after
// acquisition; the image has been discarded and the next frame may be
// attempted.
func (r *Renderer) Render(s view.State) error {
	if r.pipeline == nil {
		return ErrDestroyed
	}
	r.reclaim()

	if r.reconfigure {
		r.reconfigure = false
		if err := r.reconfigureTarget(); err != nil {
			slogger().Warn("render: reconfigure suboptimal surface", "err", err)
		}
	}

	frame, err := r.target.Acquire()
	if err != nil {
		return r.acquireFailed(err)
	}
	if frame.Suboptimal {
		r.reconfigure = true
	}

	s.PutBytes(r.uniform[:])
	if err := r.queue.WriteBuffer(r.uniformBuf, 0, r.uniform[:]); err != nil {
		r.target.Discard(frame)
		return fmt.Errorf("render: upload view: %w", err)
	}

	cmd, err := r.record(frame.View)
	if err != nil {
		r.target.Discard(frame)
		return err
	}

	index, err := r.queue.Submit([]hal.CommandBuffer{cmd})
	if err != nil {
		r.device.FreeCommandBuffer(cmd)
		r.target.Discard(frame)
		return fmt.Errorf("render: submit: %w", err)
	}
	r.inFlight = append(r.inFlight, submission{index: index, cmd: cmd})

	if err := r.target.Present(frame); err != nil {
		return err
	}
	r.frames++
	return nil
}

// record encodes the single render pass of a frame.
func (r *Renderer) record(target hal.TextureView) (hal.CommandBuffer, error) {
	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: r.label("encoder"),
	})
	if err != nil {
		return nil, fmt.Errorf("render: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(r.label("frame")); err != nil {
		return nil, fmt.Errorf("render: begin encoding: %w", err)
	}

	pass := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: r.label("pass"),
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:       target,
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: r.opts.clearColor,
			},
		},
	})
	pass.SetPipeline(r.pipeline)
	pass.SetBindGroup(0, r.bindGroup, nil)
	pass.SetVertexBuffer(0, r.vertexBuf, 0)
	pass.SetIndexBuffer(r.indexBuf, geometry.IndexFormat, 0)
	pass.DrawIndexed(geometry.IndexCount, 1, 0, 0, 0)
	pass.End()

	cmd, err := encoder.EndEncoding()
	if err != nil {
		encoder.DiscardEncoding()
		return nil, fmt.Errorf("render: end encoding: %w", err)
	}
	return cmd, nil
}

// acquireFailed classifies a surface acquisition error.
func (r *Renderer) acquireFailed(err error) error {
	switch {
	case errors.Is(err, hal.ErrSurfaceLost), errors.Is(err, hal.ErrSurfaceOutdated):
		w, h := r.target.Size()
		slogger().Debug("render: surface needs reconfigure", "err", err, "width", w, "height", h)
		if cerr := r.reconfigureTarget(); cerr != nil {
			slogger().Warn("render: reconfigure surface", "err", cerr)
		}
		return nil
	case errors.Is(err, hal.ErrDeviceOutOfMemory):
		return fmt.Errorf("%w: %w", ErrOutOfMemory, err)
	default:
		slogger().Warn("render: frame skipped", "err", err)
		return nil
	}
}

func (r *Renderer) reconfigureTarget() error {
	w, h := r.target.Size()
	return r.target.Configure(w, h)
}

// Resize reconfigures the target for a new surface size. A zero dimension
// (minimized window) is ignored.
func (r *Renderer) Resize(width, height uint32) error {
	if width == 0 || height == 0 {
		return nil
	}
	if w, h := r.target.Size(); w == width && h == height {
		return nil
	}
	if err := r.target.Configure(width, height); err != nil {
		return err
	}
	slogger().Debug("render: resized", "width", width, "height", height)
	return nil
}

// FrameCount returns the number of frames presented so far.
func (r *Renderer) FrameCount() uint64 { return r.frames }

// Target returns the presentation target.
func (r *Renderer) Target() Target { return r.target }

// reclaim frees command buffers the GPU has finished with.
func (r *Renderer) reclaim() {
	if len(r.inFlight) == 0 {
		return
	}
	done := r.queue.PollCompleted()
	n := 0
	for _, s := range r.inFlight {
		if s.index <= done {
			r.device.FreeCommandBuffer(s.cmd)
			continue
		}
		r.inFlight[n] = s
		n++
	}
	r.inFlight = r.inFlight[:n]
}

// Destroy waits for the GPU to go idle and releases the resource group.
// Safe to call more than once.
func (r *Renderer) Destroy() {
	if r.device == nil {
		return
	}
	if len(r.inFlight) > 0 {
		if err := r.device.WaitIdle(); err != nil {
			slogger().Warn("render: wait idle before destroy", "err", err)
		}
		for _, s := range r.inFlight {
			r.device.FreeCommandBuffer(s.cmd)
		}
		r.inFlight = nil
	}
	r.destroyResources()
	r.device = nil
}

// destroyResources releases the resource group in reverse creation order.
func (r *Renderer) destroyResources() {
	if r.indexBuf != nil {
		r.device.DestroyBuffer(r.indexBuf)
		r.indexBuf = nil
	}
	if r.vertexBuf != nil {
		r.device.DestroyBuffer(r.vertexBuf)
		r.vertexBuf = nil
	}
	if r.pipeline != nil {
		r.device.DestroyRenderPipeline(r.pipeline)
		r.pipeline = nil
	}
	if r.pipeLayout != nil {
		r.device.DestroyPipelineLayout(r.pipeLayout)
		r.pipeLayout = nil
	}
	if r.shader != nil {
		r.device.DestroyShaderModule(r.shader)
		r.shader = nil
	}
	if r.bindGroup != nil {
		r.device.DestroyBindGroup(r.bindGroup)
		r.bindGroup = nil
	}
	if r.uniformLayout != nil {
		r.device.DestroyBindGroupLayout(r.uniformLayout)
		r.uniformLayout = nil
	}
	if r.uniformBuf != nil {
		r.device.DestroyBuffer(r.uniformBuf)
		r.uniformBuf = nil
	}
}
