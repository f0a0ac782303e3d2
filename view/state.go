// Package view holds the camera that maps the viewport onto the complex
// plane and the controller that drives it from input events.
//
// State is mirrored byte-for-byte into the uniform buffer read by the
// fragment stage. Controller is a pure transition function over a closed
// set of events; it owns only transient interaction state (the pan flag,
// the last cursor position and the live surface size).
package view

import (
	"encoding/binary"
	"fmt"
	"math"
)

// UniformSize is the size in bytes of the encoded State.
const UniformSize = 16

// State is the camera: the plane point shown at the viewport center, the
// zoom factor (larger is closer) and the surface width/height ratio.
//
// Scale and AspectRatio are always strictly positive.
type State struct {
	Offset      [2]float32
	Scale       float32
	AspectRatio float32
}

// NewState returns the startup camera: offset (-0.5, 0), scale 1, aspect 1.
func NewState() State {
	return State{
		Offset:      [2]float32{-0.5, 0},
		Scale:       1,
		AspectRatio: 1,
	}
}

// Bytes encodes the state in uniform layout.
func (s State) Bytes() []byte {
	buf := make([]byte, UniformSize)
	s.PutBytes(buf)
	return buf
}

// PutBytes writes offset.x, offset.y, scale, aspect_ratio as little-endian
// float32 into buf[:16]. It panics if buf is shorter than UniformSize.
func (s State) PutBytes(buf []byte) {
	_ = buf[UniformSize-1]
	binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(s.Offset[0]))
	binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(s.Offset[1]))
	binary.LittleEndian.PutUint32(buf[8:], math.Float32bits(s.Scale))
	binary.LittleEndian.PutUint32(buf[12:], math.Float32bits(s.AspectRatio))
}

// StateFromBytes decodes a uniform-layout buffer.
func StateFromBytes(buf []byte) (State, error) {
	if len(buf) < UniformSize {
		return State{}, fmt.Errorf("view: uniform too short: %d bytes", len(buf))
	}
	return State{
		Offset: [2]float32{
			math.Float32frombits(binary.LittleEndian.Uint32(buf[0:])),
			math.Float32frombits(binary.LittleEndian.Uint32(buf[4:])),
		},
		Scale:       math.Float32frombits(binary.LittleEndian.Uint32(buf[8:])),
		AspectRatio: math.Float32frombits(binary.LittleEndian.Uint32(buf[12:])),
	}, nil
}

// String returns a compact human-readable form for logs.
func (s State) String() string {
	return fmt.Sprintf("offset=(%g, %g) scale=%g aspect=%g",
		s.Offset[0], s.Offset[1], s.Scale, s.AspectRatio)
}
