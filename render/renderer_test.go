// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/mandelbrot/geometry"
	"github.com/gogpu/mandelbrot/view"
)

type rendererFixture struct {
	r      *Renderer
	device *recordingDevice
	queue  *recordingQueue
	target *fakeTarget
}

func newRendererFixture(t *testing.T, opts ...Option) *rendererFixture {
	t.Helper()
	dev, _, cleanup := createNoopDevice(t)
	t.Cleanup(cleanup)

	f := &rendererFixture{
		device: &recordingDevice{Device: dev.Device},
		queue:  &recordingQueue{Queue: dev.Queue},
		target: newFakeTarget(800, 600),
	}
	r, err := New(f.device, f.queue, f.target, view.NewState(), opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(r.Destroy)
	f.r = r
	return f
}

func (f *rendererFixture) lastPass(t *testing.T) *recordingPass {
	t.Helper()
	if len(f.device.encoders) == 0 {
		t.Fatal("no command encoder created")
	}
	enc := f.device.encoders[len(f.device.encoders)-1]
	if len(enc.passes) != 1 {
		t.Fatalf("encoder has %d render passes, want 1", len(enc.passes))
	}
	return enc.passes[0]
}

func TestNewUploadsResources(t *testing.T) {
	f := newRendererFixture(t)

	initial := view.NewState()
	if got := f.queue.writes[f.r.uniformBuf]; !bytes.Equal(got, initial.Bytes()) {
		t.Errorf("initial uniform = %v, want %v", got, initial.Bytes())
	}
	if got := f.queue.writes[f.r.vertexBuf]; !bytes.Equal(got, geometry.VertexBytes()) {
		t.Error("vertex buffer contents differ from quad geometry")
	}
	if got := f.queue.writes[f.r.indexBuf]; !bytes.Equal(got, geometry.IndexBytes()) {
		t.Error("index buffer contents differ from quad geometry")
	}
	if f.r.FrameCount() != 0 {
		t.Errorf("FrameCount() = %d before any frame", f.r.FrameCount())
	}
}

func TestNewReleasesOnFailure(t *testing.T) {
	dev, _, cleanup := createNoopDevice(t)
	defer cleanup()

	rec := &recordingDevice{Device: dev.Device, failPipeline: true}
	r, err := New(rec, dev.Queue, newFakeTarget(100, 100), view.NewState())
	if err == nil {
		r.Destroy()
		t.Fatal("New() should fail when the pipeline is rejected")
	}

	want := []string{"pipeline_layout", "shader", "bind_group", "bind_group_layout", "buffer"}
	if len(rec.destroyed) != len(want) {
		t.Fatalf("destroyed %v, want %v", rec.destroyed, want)
	}
	for i := range want {
		if rec.destroyed[i] != want[i] {
			t.Errorf("destroyed[%d] = %q, want %q", i, rec.destroyed[i], want[i])
		}
	}
}

func TestRenderDrawsQuad(t *testing.T) {
	f := newRendererFixture(t)

	s := view.State{Offset: [2]float32{-0.75, 0.1}, Scale: 4, AspectRatio: 1.5}
	if err := f.r.Render(s); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if got := f.queue.writes[f.r.uniformBuf]; !bytes.Equal(got, s.Bytes()) {
		t.Errorf("uniform = %v, want %v", got, s.Bytes())
	}

	pass := f.lastPass(t)
	if len(pass.draws) != 1 {
		t.Fatalf("got %d draws, want 1", len(pass.draws))
	}
	want := drawCall{indexCount: geometry.IndexCount, instanceCount: 1}
	if pass.draws[0] != want {
		t.Errorf("draw = %+v, want %+v", pass.draws[0], want)
	}
	if pass.indexFmt != gputypes.IndexFormatUint32 {
		t.Errorf("index format = %v, want Uint32", pass.indexFmt)
	}
	if !pass.ended {
		t.Error("render pass not ended")
	}

	att := pass.desc.ColorAttachments
	if len(att) != 1 {
		t.Fatalf("got %d color attachments, want 1", len(att))
	}
	if att[0].LoadOp != gputypes.LoadOpClear || att[0].StoreOp != gputypes.StoreOpStore {
		t.Errorf("attachment ops = %v/%v, want clear/store", att[0].LoadOp, att[0].StoreOp)
	}
	if att[0].ClearValue != (gputypes.Color{R: 1, G: 1, B: 1, A: 1}) {
		t.Errorf("clear color = %+v, want opaque white", att[0].ClearValue)
	}

	if f.queue.submits != 1 || f.target.presents != 1 {
		t.Errorf("submits=%d presents=%d, want 1 and 1", f.queue.submits, f.target.presents)
	}
	if f.r.FrameCount() != 1 {
		t.Errorf("FrameCount() = %d, want 1", f.r.FrameCount())
	}
}

func TestRenderClearColorOption(t *testing.T) {
	black := gputypes.Color{A: 1}
	f := newRendererFixture(t, WithClearColor(black))

	if err := f.r.Render(view.NewState()); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got := f.lastPass(t).desc.ColorAttachments[0].ClearValue; got != black {
		t.Errorf("clear color = %+v, want %+v", got, black)
	}
}

func TestRenderSurfaceLostOrOutdated(t *testing.T) {
	for _, acquireErr := range []error{hal.ErrSurfaceLost, hal.ErrSurfaceOutdated} {
		t.Run(acquireErr.Error(), func(t *testing.T) {
			f := newRendererFixture(t)
			f.target.acquireErrs = []error{acquireErr}

			if err := f.r.Render(view.NewState()); err != nil {
				t.Fatalf("Render() error = %v, want nil", err)
			}
			if len(f.target.configures) != 1 || f.target.configures[0] != [2]uint32{800, 600} {
				t.Errorf("configures = %v, want one at 800x600", f.target.configures)
			}
			if f.r.FrameCount() != 0 || f.queue.submits != 0 {
				t.Errorf("skipped frame was drawn: frames=%d submits=%d", f.r.FrameCount(), f.queue.submits)
			}

			if err := f.r.Render(view.NewState()); err != nil {
				t.Fatalf("Render() after reconfigure error = %v", err)
			}
			if f.r.FrameCount() != 1 {
				t.Errorf("FrameCount() = %d after recovery, want 1", f.r.FrameCount())
			}
		})
	}
}

func TestRenderOutOfMemory(t *testing.T) {
	f := newRendererFixture(t)
	f.target.acquireErrs = []error{hal.ErrDeviceOutOfMemory}

	err := f.r.Render(view.NewState())
	if !errors.Is(err, ErrOutOfMemory) {
		t.Fatalf("Render() error = %v, want ErrOutOfMemory", err)
	}
	if !errors.Is(err, hal.ErrDeviceOutOfMemory) {
		t.Error("out-of-memory error should wrap the backend error")
	}
}

func TestRenderSkipsTransientAcquireError(t *testing.T) {
	f := newRendererFixture(t)
	f.target.acquireErrs = []error{hal.ErrTimeout}

	if err := f.r.Render(view.NewState()); err != nil {
		t.Fatalf("Render() error = %v, want nil", err)
	}
	if len(f.target.configures) != 0 {
		t.Errorf("transient error reconfigured target: %v", f.target.configures)
	}
	if f.r.FrameCount() != 0 {
		t.Errorf("FrameCount() = %d, want 0", f.r.FrameCount())
	}
}

func TestRenderSuboptimalReconfiguresNextFrame(t *testing.T) {
	f := newRendererFixture(t)
	f.target.suboptimal = true

	if err := f.r.Render(view.NewState()); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if f.target.presents != 1 {
		t.Errorf("suboptimal frame not presented")
	}
	if len(f.target.configures) != 0 {
		t.Errorf("reconfigured mid-frame: %v", f.target.configures)
	}

	f.target.suboptimal = false
	if err := f.r.Render(view.NewState()); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(f.target.configures) != 1 {
		t.Errorf("configures = %v, want one before second frame", f.target.configures)
	}
}

func TestRenderSubmitFailureDiscardsFrame(t *testing.T) {
	f := newRendererFixture(t)
	f.queue.submitErr = errors.New("queue lost")

	if err := f.r.Render(view.NewState()); err == nil {
		t.Fatal("Render() should report submit failure")
	}
	if f.target.discards != 1 || f.target.presents != 0 {
		t.Errorf("discards=%d presents=%d, want 1 and 0", f.target.discards, f.target.presents)
	}
	if f.device.freed != 1 {
		t.Errorf("freed %d command buffers, want 1", f.device.freed)
	}
}

func TestRenderReclaimsCommandBuffers(t *testing.T) {
	f := newRendererFixture(t)

	for i := 0; i < 3; i++ {
		if err := f.r.Render(view.NewState()); err != nil {
			t.Fatalf("Render() #%d error = %v", i, err)
		}
	}
	// The newest submission is reclaimed on the next frame.
	if f.device.freed != 2 {
		t.Errorf("freed = %d after 3 frames, want 2", f.device.freed)
	}

	f.r.Destroy()
	if f.device.freed != 3 {
		t.Errorf("freed = %d after Destroy, want 3", f.device.freed)
	}
	if f.device.waitIdle != 1 {
		t.Errorf("waitIdle = %d, want 1", f.device.waitIdle)
	}
}

func TestRendererResize(t *testing.T) {
	f := newRendererFixture(t)

	if err := f.r.Resize(0, 480); err != nil {
		t.Fatalf("Resize(0, 480) error = %v", err)
	}
	if err := f.r.Resize(800, 600); err != nil {
		t.Fatalf("Resize(800, 600) error = %v", err)
	}
	if len(f.target.configures) != 0 {
		t.Errorf("zero or unchanged resize reconfigured: %v", f.target.configures)
	}

	if err := f.r.Resize(1024, 768); err != nil {
		t.Fatalf("Resize(1024, 768) error = %v", err)
	}
	if w, h := f.target.Size(); w != 1024 || h != 768 {
		t.Errorf("target size = %dx%d, want 1024x768", w, h)
	}
}

func TestRendererDestroy(t *testing.T) {
	f := newRendererFixture(t)

	f.r.Destroy()
	if len(f.device.destroyed) != 8 {
		t.Errorf("destroyed %d resources, want 8: %v", len(f.device.destroyed), f.device.destroyed)
	}
	if f.device.destroyed[0] != "buffer" || f.device.destroyed[2] != "pipeline" {
		t.Errorf("resources not released in reverse order: %v", f.device.destroyed)
	}

	f.r.Destroy()
	if len(f.device.destroyed) != 8 {
		t.Errorf("second Destroy released again: %v", f.device.destroyed)
	}

	if err := f.r.Render(view.NewState()); !errors.Is(err, ErrDestroyed) {
		t.Errorf("Render() after Destroy error = %v, want ErrDestroyed", err)
	}
}
