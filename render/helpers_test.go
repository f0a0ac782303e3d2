package render

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// createNoopDevice opens a device on the noop backend together with a
// surface from the same instance.
func createNoopDevice(t *testing.T) (*Device, hal.Surface, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	surface, err := instance.CreateSurface(0, 0)
	if err != nil {
		instance.Destroy()
		t.Fatalf("CreateSurface failed: %v", err)
	}
	dev, err := Open(instance, surface)
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		dev.Close()
		surface.Destroy()
		instance.Destroy()
	}
	return dev, surface, cleanup
}

// recordingDevice wraps a hal.Device and records what the renderer does
// with it.
type recordingDevice struct {
	hal.Device

	failPipeline bool

	destroyed     []string
	freed         int
	waitIdle      int
	deviceDestroy int
	encoders      []*recordingEncoder
}

func (d *recordingDevice) CreateRenderPipeline(desc *hal.RenderPipelineDescriptor) (hal.RenderPipeline, error) {
	if d.failPipeline {
		return nil, errors.New("pipeline rejected")
	}
	return d.Device.CreateRenderPipeline(desc)
}

func (d *recordingDevice) CreateCommandEncoder(desc *hal.CommandEncoderDescriptor) (hal.CommandEncoder, error) {
	enc, err := d.Device.CreateCommandEncoder(desc)
	if err != nil {
		return nil, err
	}
	re := &recordingEncoder{CommandEncoder: enc}
	d.encoders = append(d.encoders, re)
	return re, nil
}

func (d *recordingDevice) DestroyBuffer(b hal.Buffer) {
	d.destroyed = append(d.destroyed, "buffer")
	d.Device.DestroyBuffer(b)
}

func (d *recordingDevice) DestroyBindGroupLayout(l hal.BindGroupLayout) {
	d.destroyed = append(d.destroyed, "bind_group_layout")
	d.Device.DestroyBindGroupLayout(l)
}

func (d *recordingDevice) DestroyBindGroup(g hal.BindGroup) {
	d.destroyed = append(d.destroyed, "bind_group")
	d.Device.DestroyBindGroup(g)
}

func (d *recordingDevice) DestroyShaderModule(m hal.ShaderModule) {
	d.destroyed = append(d.destroyed, "shader")
	d.Device.DestroyShaderModule(m)
}

func (d *recordingDevice) DestroyPipelineLayout(l hal.PipelineLayout) {
	d.destroyed = append(d.destroyed, "pipeline_layout")
	d.Device.DestroyPipelineLayout(l)
}

func (d *recordingDevice) DestroyRenderPipeline(p hal.RenderPipeline) {
	d.destroyed = append(d.destroyed, "pipeline")
	d.Device.DestroyRenderPipeline(p)
}

func (d *recordingDevice) FreeCommandBuffer(cb hal.CommandBuffer) {
	d.freed++
	d.Device.FreeCommandBuffer(cb)
}

func (d *recordingDevice) WaitIdle() error {
	d.waitIdle++
	return d.Device.WaitIdle()
}

func (d *recordingDevice) Destroy() {
	d.deviceDestroy++
	d.Device.Destroy()
}

type recordingEncoder struct {
	hal.CommandEncoder
	passes []*recordingPass
}

func (e *recordingEncoder) BeginRenderPass(desc *hal.RenderPassDescriptor) hal.RenderPassEncoder {
	p := &recordingPass{RenderPassEncoder: e.CommandEncoder.BeginRenderPass(desc), desc: *desc}
	e.passes = append(e.passes, p)
	return p
}

type drawCall struct {
	indexCount, instanceCount, firstIndex uint32
	baseVertex                            int32
	firstInstance                         uint32
}

type recordingPass struct {
	hal.RenderPassEncoder
	desc      hal.RenderPassDescriptor
	draws     []drawCall
	indexFmt  gputypes.IndexFormat
	pipelines int
	ended     bool
}

func (p *recordingPass) SetPipeline(pipeline hal.RenderPipeline) {
	p.pipelines++
	p.RenderPassEncoder.SetPipeline(pipeline)
}

func (p *recordingPass) SetIndexBuffer(buffer hal.Buffer, format gputypes.IndexFormat, offset uint64) {
	p.indexFmt = format
	p.RenderPassEncoder.SetIndexBuffer(buffer, format, offset)
}

func (p *recordingPass) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) {
	p.draws = append(p.draws, drawCall{indexCount, instanceCount, firstIndex, baseVertex, firstInstance})
	p.RenderPassEncoder.DrawIndexed(indexCount, instanceCount, firstIndex, baseVertex, firstInstance)
}

func (p *recordingPass) End() {
	p.ended = true
	p.RenderPassEncoder.End()
}

// recordingQueue keeps the last bytes written to each buffer.
type recordingQueue struct {
	hal.Queue

	submitErr error
	writes    map[hal.Buffer][]byte
	submits   int
}

func (q *recordingQueue) WriteBuffer(buffer hal.Buffer, offset uint64, data []byte) error {
	if q.writes == nil {
		q.writes = make(map[hal.Buffer][]byte)
	}
	q.writes[buffer] = append([]byte(nil), data...)
	return q.Queue.WriteBuffer(buffer, offset, data)
}

func (q *recordingQueue) Submit(cmds []hal.CommandBuffer) (uint64, error) {
	if q.submitErr != nil {
		return 0, q.submitErr
	}
	q.submits++
	return q.Queue.Submit(cmds)
}

// fakeTarget is a scripted Target.
type fakeTarget struct {
	format        gputypes.TextureFormat
	width, height uint32

	// acquireErrs are returned by successive Acquire calls before frames
	// are handed out.
	acquireErrs []error
	suboptimal  bool

	configures [][2]uint32
	acquires   int
	presents   int
	discards   int
}

func newFakeTarget(w, h uint32) *fakeTarget {
	return &fakeTarget{format: gputypes.TextureFormatBGRA8Unorm, width: w, height: h}
}

func (t *fakeTarget) Format() gputypes.TextureFormat { return t.format }

func (t *fakeTarget) Size() (uint32, uint32) { return t.width, t.height }

func (t *fakeTarget) Configure(w, h uint32) error {
	if w == 0 || h == 0 {
		return ErrZeroSize
	}
	t.configures = append(t.configures, [2]uint32{w, h})
	t.width, t.height = w, h
	return nil
}

func (t *fakeTarget) Acquire() (*Frame, error) {
	t.acquires++
	if len(t.acquireErrs) > 0 {
		err := t.acquireErrs[0]
		t.acquireErrs = t.acquireErrs[1:]
		return nil, err
	}
	return &Frame{Suboptimal: t.suboptimal}, nil
}

func (t *fakeTarget) Present(*Frame) error {
	t.presents++
	return nil
}

func (t *fakeTarget) Discard(*Frame) { t.discards++ }
