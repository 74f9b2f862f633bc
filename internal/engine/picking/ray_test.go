package picking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/meshdeform/internal/engine/mesh"
	"github.com/Faultbox/meshdeform/internal/engine/scene"
	"github.com/Faultbox/meshdeform/pkg/math"
)

func TestIntersectPlaneY(t *testing.T) {
	r := NewRay(math.Vec3{X: 1, Y: 10, Z: 2}, math.Down())
	x, z, ok := r.IntersectPlaneY(0)
	require.True(t, ok)
	assert.Equal(t, float32(1), x)
	assert.Equal(t, float32(2), z)

	_, _, ok = r.IntersectPlaneY(20)
	assert.False(t, ok, "plane behind origin")

	flat := NewRay(math.Vec3{}, math.Vec3{X: 1})
	_, _, ok = flat.IntersectPlaneY(0)
	assert.False(t, ok, "parallel ray")
}

func TestIntersectAABB(t *testing.T) {
	box := NewAABB(math.Vec3{X: 1, Y: 1, Z: 1}, math.Vec3{X: -1, Y: -1, Z: -1})
	assert.Equal(t, math.Vec3{X: -1, Y: -1, Z: -1}, box.Min)

	tests := []struct {
		name string
		ray  Ray
		hit  bool
		t    float32
	}{
		{"from above", NewRay(math.Vec3{Y: 5}, math.Down()), true, 4},
		{"from inside", NewRay(math.Vec3{}, math.Up()), true, 1},
		{"miss beside", NewRay(math.Vec3{X: 3, Y: 5}, math.Down()), false, 0},
		{"pointing away", NewRay(math.Vec3{Y: 5}, math.Up()), false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.ray.IntersectAABB(box)
			assert.Equal(t, tt.hit, hit)
			if tt.hit {
				assert.InDelta(t, tt.t, got, 1e-5)
			}
		})
	}
}

func TestIntersectTriangle(t *testing.T) {
	a := math.Vec3{X: 0, Z: 0}
	b := math.Vec3{X: 0, Z: 1}
	c := math.Vec3{X: 1, Z: 0}

	got, ok := NewRay(math.Vec3{X: 0.2, Y: 3, Z: 0.2}, math.Down()).IntersectTriangle(a, b, c)
	require.True(t, ok)
	assert.InDelta(t, 3, got, 1e-5)

	_, ok = NewRay(math.Vec3{X: 0.8, Y: 3, Z: 0.8}, math.Down()).IntersectTriangle(a, b, c)
	assert.False(t, ok, "outside the hypotenuse")

	_, ok = NewRay(math.Vec3{X: 0.2, Y: -3, Z: 0.2}, math.Down()).IntersectTriangle(a, b, c)
	assert.False(t, ok, "triangle behind the origin")

	// Back face is hit as well
	got, ok = NewRay(math.Vec3{X: 0.2, Y: -3, Z: 0.2}, math.Up()).IntersectTriangle(a, b, c)
	require.True(t, ok)
	assert.InDelta(t, 3, got, 1e-5)
}

func TestMeshColliderRaycast(t *testing.T) {
	grid, err := mesh.NewGrid(10, 10, 1)
	require.NoError(t, err)
	xf := scene.NewTransformAt(math.Vec3{X: 100, Y: 2, Z: 0})
	col := NewMeshCollider(grid, xf)

	hit, ok := col.Raycast(NewRay(math.Vec3{X: 101.5, Y: 10, Z: 0.5}, math.Down()))
	require.True(t, ok)
	assert.InDelta(t, 101.5, hit.Point.X, 1e-4)
	assert.InDelta(t, 2, hit.Point.Y, 1e-4)
	assert.InDelta(t, 0.5, hit.Point.Z, 1e-4)
	assert.InDelta(t, 8, hit.Distance, 1e-4)
	assert.GreaterOrEqual(t, hit.Triangle, 0)

	_, ok = col.Raycast(NewRay(math.Vec3{X: 0, Y: 10, Z: 0}, math.Down()))
	assert.False(t, ok, "ray outside the mesh bounds")
}

func TestMeshColliderSeesDeformedSurface(t *testing.T) {
	grid, err := mesh.NewGrid(2, 2, 1)
	require.NoError(t, err)
	col := NewMeshCollider(grid, scene.NewTransform())

	verts := grid.Vertices()
	for i := range verts {
		verts[i].Y = -1.5
	}
	require.NoError(t, grid.SetVertices(verts))

	hit, ok := col.Raycast(NewRay(math.Vec3{X: 0.25, Y: 5, Z: 0.25}, math.Down()))
	require.True(t, ok)
	assert.InDelta(t, -1.5, hit.Point.Y, 1e-4)
}

func TestMeshColliderNil(t *testing.T) {
	var col MeshCollider
	_, ok := col.Raycast(NewRay(math.Vec3{}, math.Down()))
	assert.False(t, ok)
}
