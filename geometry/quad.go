// Package geometry provides the fixed full-viewport quad drawn by the
// renderer and the memory layout the vertex stage reads it with.
package geometry

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"
)

// Vertex is a single quad corner in normalized device coordinates.
type Vertex struct {
	Position [3]float32
}

// VertexSize is the tightly packed size of a Vertex in bytes.
const VertexSize = 12

// IndexCount is the number of indices in the quad (two triangles).
const IndexCount = 6

// IndexFormat is the element type of the index buffer.
const IndexFormat = gputypes.IndexFormatUint32

var vertices = [4]Vertex{
	{Position: [3]float32{1, 1, 0}},
	{Position: [3]float32{-1, 1, 0}},
	{Position: [3]float32{-1, -1, 0}},
	{Position: [3]float32{1, -1, 0}},
}

var indices = [IndexCount]uint32{0, 1, 2, 0, 2, 3}

// Vertices returns a copy of the quad corners.
func Vertices() []Vertex {
	out := make([]Vertex, len(vertices))
	copy(out, vertices[:])
	return out
}

// Indices returns a copy of the triangle-list indices.
func Indices() []uint32 {
	out := make([]uint32, len(indices))
	copy(out, indices[:])
	return out
}

// Layout describes how the vertex stage reads the vertex buffer:
// one Float32x3 position at location 0, stride 12.
func Layout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: VertexSize,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
		},
	}
}

// VertexBytes returns the quad vertices packed little-endian.
func VertexBytes() []byte {
	buf := make([]byte, len(vertices)*VertexSize)
	for i, v := range vertices {
		off := i * VertexSize
		for j, c := range v.Position {
			binary.LittleEndian.PutUint32(buf[off+j*4:], math.Float32bits(c))
		}
	}
	return buf
}

// IndexBytes returns the quad indices packed little-endian.
func IndexBytes() []byte {
	buf := make([]byte, len(indices)*4)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}
