// Package mesh holds CPU-side mesh data: the vertex buffer a renderer uploads
// and the index list that defines its triangles.
package mesh

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Faultbox/meshdeform/pkg/math"
)

// ErrVertexCountMismatch is returned when a published buffer changes the vertex count.
var ErrVertexCountMismatch = errors.New("vertex count mismatch")

// Bounds holds the axis-aligned bounding box of the mesh in local space.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Contains reports whether p lies inside the box (inclusive).
func (b Bounds) Contains(p math.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Mesh owns a vertex buffer and its triangle indices.
// The buffer is only ever replaced as a whole through SetVertices.
type Mesh struct {
	mu       sync.RWMutex
	vertices []math.Vec3
	indices  []uint32
	bounds   Bounds
	revision uint64
}

// New creates a mesh from vertices and triangle indices.
// Both slices are copied.
func New(vertices []math.Vec3, indices []uint32) (*Mesh, error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("index count %d is not a multiple of 3", len(indices))
	}
	for i, idx := range indices {
		if int(idx) >= len(vertices) {
			return nil, fmt.Errorf("index %d at position %d out of range (%d vertices)", idx, i, len(vertices))
		}
	}

	m := &Mesh{
		vertices: append([]math.Vec3(nil), vertices...),
		indices:  append([]uint32(nil), indices...),
	}
	m.bounds = computeBounds(m.vertices)
	return m, nil
}

// Vertices returns a copy of the current vertex buffer.
func (m *Mesh) Vertices() []math.Vec3 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]math.Vec3(nil), m.vertices...)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.vertices)
}

// Vertex returns vertex i.
func (m *Mesh) Vertex(i int) math.Vec3 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.vertices[i]
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.indices) / 3
}

// Triangle returns the three corners of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c math.Vec3) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	base := i * 3
	return m.vertices[m.indices[base]], m.vertices[m.indices[base+1]], m.vertices[m.indices[base+2]]
}

// Bounds returns the current bounding box.
func (m *Mesh) Bounds() Bounds {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bounds
}

// Revision counts successful SetVertices calls. A renderer compares it
// against the last value it uploaded to decide whether to re-upload.
func (m *Mesh) Revision() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.revision
}

// SetVertices replaces the whole vertex buffer. The new buffer must have the
// same length as the current one; the mesh takes ownership of v.
func (m *Mesh) SetVertices(v []math.Vec3) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(v) != len(m.vertices) {
		return fmt.Errorf("%w: have %d, got %d", ErrVertexCountMismatch, len(m.vertices), len(v))
	}

	m.vertices = v
	m.bounds = computeBounds(v)
	m.revision++
	return nil
}

func computeBounds(vertices []math.Vec3) Bounds {
	if len(vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: vertices[0], Max: vertices[0]}
	for _, v := range vertices[1:] {
		b.Min = b.Min.Min(v)
		b.Max = b.Max.Max(v)
	}
	return b
}
