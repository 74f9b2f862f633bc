package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/meshdeform/pkg/math"
)

func TestNewRejectsBadIndices(t *testing.T) {
	verts := []math.Vec3{{}, {X: 1}, {Z: 1}}

	_, err := New(verts, []uint32{0, 1})
	assert.Error(t, err, "index count not a multiple of 3")

	_, err = New(verts, []uint32{0, 1, 3})
	assert.Error(t, err, "index out of range")

	m, err := New(verts, []uint32{0, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, 1, m.TriangleCount())
}

func TestVerticesReturnsCopy(t *testing.T) {
	m, err := New([]math.Vec3{{X: 1}}, nil)
	require.NoError(t, err)

	v := m.Vertices()
	v[0].X = 99

	assert.Equal(t, float32(1), m.Vertex(0).X)
}

func TestSetVertices(t *testing.T) {
	m, err := New([]math.Vec3{{}, {X: 1}}, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), m.Revision())

	err = m.SetVertices([]math.Vec3{{Y: -1}, {X: 1, Y: -2}})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), m.Revision())
	assert.Equal(t, math.Vec3{Y: -1}, m.Vertex(0))
	assert.Equal(t, Bounds{Min: math.Vec3{Y: -2}, Max: math.Vec3{X: 1, Y: -1}}, m.Bounds())
}

func TestSetVerticesRejectsLengthChange(t *testing.T) {
	m, err := New([]math.Vec3{{}, {X: 1}}, nil)
	require.NoError(t, err)

	err = m.SetVertices([]math.Vec3{{}})
	assert.ErrorIs(t, err, ErrVertexCountMismatch)
	assert.Equal(t, uint64(0), m.Revision())
	assert.Equal(t, 2, m.VertexCount())
}

func TestNewGrid(t *testing.T) {
	m, err := NewGrid(4, 2, 0.5)
	require.NoError(t, err)

	assert.Equal(t, 5*3, m.VertexCount())
	assert.Equal(t, 4*2*2, m.TriangleCount())

	b := m.Bounds()
	assert.Equal(t, math.Vec3{X: -1, Y: 0, Z: -0.5}, b.Min)
	assert.Equal(t, math.Vec3{X: 1, Y: 0, Z: 0.5}, b.Max)
	assert.True(t, b.Contains(math.Vec3{}))
}

func TestNewGridTrianglesFaceUp(t *testing.T) {
	m, err := NewGrid(3, 3, 1)
	require.NoError(t, err)

	for i := range m.TriangleCount() {
		a, b, c := m.Triangle(i)
		n := b.Sub(a).Cross(c.Sub(a))
		assert.Greater(t, n.Y, float32(0), "triangle %d normal %v", i, n)
	}
}

func TestNewGridInvalid(t *testing.T) {
	_, err := NewGrid(0, 4, 1)
	assert.Error(t, err)
	_, err = NewGrid(4, 4, 0)
	assert.Error(t, err)
}
