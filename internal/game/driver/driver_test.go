package driver

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/meshdeform/internal/engine/deform"
	"github.com/Faultbox/meshdeform/internal/engine/jobs"
	"github.com/Faultbox/meshdeform/internal/engine/mesh"
	"github.com/Faultbox/meshdeform/internal/engine/picking"
	"github.com/Faultbox/meshdeform/internal/engine/scene"
	"github.com/Faultbox/meshdeform/pkg/math"
)

// recorder is a Deformable that remembers the points it was given.
type recorder struct {
	points []math.Vec3
	err    error
}

func (r *recorder) Deform(p math.Vec3) error {
	r.points = append(r.points, p)
	return r.err
}

// fixedRaycaster always reports the same result.
type fixedRaycaster struct {
	hit picking.Hit
	ok  bool
}

func (f fixedRaycaster) Raycast(picking.Ray) (picking.Hit, bool) {
	return f.hit, f.ok
}

func TestDeformerNoHitIsNoOp(t *testing.T) {
	rec := &recorder{}
	d := NewDeformer(rec, scene.NewTransform(), fixedRaycaster{})

	ran, err := d.Tick()
	require.NoError(t, err)
	assert.False(t, ran)
	assert.Empty(t, rec.points)
}

func TestDeformerMissingCollaborators(t *testing.T) {
	hit := fixedRaycaster{hit: picking.Hit{Point: math.Vec3{X: 1}}, ok: true}

	tests := []struct {
		name string
		d    *Deformer
	}{
		{"no target", NewDeformer(nil, scene.NewTransform(), hit)},
		{"no source", NewDeformer(&recorder{}, nil, hit)},
		{"no raycaster", NewDeformer(&recorder{}, scene.NewTransform(), nil)},
		{"disabled", func() *Deformer {
			d := NewDeformer(&recorder{}, scene.NewTransform(), hit)
			d.Enabled = false
			return d
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ran, err := tt.d.Tick()
			assert.NoError(t, err)
			assert.False(t, ran)
		})
	}
}

func TestDeformerForwardsHitPoint(t *testing.T) {
	rec := &recorder{}
	d := NewDeformer(rec, scene.NewTransform(), fixedRaycaster{hit: picking.Hit{Point: math.Vec3{X: 1, Y: 2, Z: 3}}, ok: true})

	ran, err := d.Tick()
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, []math.Vec3{{X: 1, Y: 2, Z: 3}}, rec.points)
}

func TestDeformerReturnsDeformError(t *testing.T) {
	rec := &recorder{err: errors.New("boom")}
	d := NewDeformer(rec, scene.NewTransform(), fixedRaycaster{ok: true})

	ran, err := d.Tick()
	assert.Error(t, err)
	assert.False(t, ran)
}

func TestDeformerEndToEnd(t *testing.T) {
	grid, err := mesh.NewGrid(8, 8, 0.5)
	require.NoError(t, err)
	xf := scene.NewTransformAt(math.Vec3{Y: 1})
	obj, err := deform.NewMeshObject(grid, xf, jobs.NewPool(4), deform.DefaultParams())
	require.NoError(t, err)

	source := scene.NewTransformAt(math.Vec3{X: 0.1, Y: 10, Z: 0.1})
	d := NewDeformer(obj, source, picking.NewMeshCollider(grid, xf))

	ran, err := d.Tick()
	require.NoError(t, err)
	require.True(t, ran)
	first := obj.DeformedVertCount()
	assert.Greater(t, first, 0)

	// The dented surface is now further away but still under the source
	ran, err = d.Tick()
	require.NoError(t, err)
	require.True(t, ran)
	assert.GreaterOrEqual(t, obj.DeformedVertCount(), first)

	// Off the mesh: nothing happens
	source.Position = math.Vec3{X: 50, Y: 10}
	ran, err = d.Tick()
	require.NoError(t, err)
	assert.False(t, ran)
}

func TestMoverUpdate(t *testing.T) {
	xf := scene.NewTransform()
	m := NewMover(xf)

	m.Update(1, 0, time.Second)
	assert.InDelta(t, 5, xf.Position.X, 1e-5)

	// Diagonal input is normalized
	xf.Position = math.Vec3{}
	m.Update(1, 1, time.Second)
	assert.InDelta(t, 5, xf.Position.Length(), 1e-4)

	// No input, no movement
	xf.Position = math.Vec3{}
	m.Update(0, 0, time.Second)
	assert.Equal(t, math.Vec3{}, xf.Position)
}

func TestMoverMoveTowards(t *testing.T) {
	xf := scene.NewTransformAt(math.Vec3{Y: 3})
	m := &Mover{Transform: xf, Speed: 1}
	target := math.Vec3{X: 2, Y: 99}

	assert.False(t, m.MoveTowards(target, time.Second))
	assert.InDelta(t, 1, xf.Position.X, 1e-5)
	assert.Equal(t, float32(3), xf.Position.Y, "height is left alone")

	assert.True(t, m.MoveTowards(target, 5*time.Second))
	assert.InDelta(t, 2, xf.Position.X, 1e-5)
}

func TestPath(t *testing.T) {
	xf := scene.NewTransform()
	m := &Mover{Transform: xf, Speed: 10}
	p := NewPath(m, []math.Vec3{{X: 1}, {X: 1, Z: 1}}, false)

	assert.False(t, p.Done())
	p.Update(time.Second)
	p.Update(time.Second)
	assert.True(t, p.Done())
	assert.InDelta(t, 1, xf.Position.X, 1e-5)
	assert.InDelta(t, 1, xf.Position.Z, 1e-5)

	// Finished paths stay put
	p.Update(time.Second)
	assert.InDelta(t, 1, xf.Position.Z, 1e-5)
}

func TestPathLoop(t *testing.T) {
	xf := scene.NewTransform()
	m := &Mover{Transform: xf, Speed: 100}
	p := NewPath(m, []math.Vec3{{X: 1}, {X: 0}}, true)

	for range 5 {
		p.Update(time.Second)
	}
	assert.False(t, p.Done())
	assert.InDelta(t, 1, xf.Position.X, 1e-5)
}
