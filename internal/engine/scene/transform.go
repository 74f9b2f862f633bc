// Package scene provides the scene-graph pieces a deformable object needs:
// a position/rotation/scale transform that maps between world and local space.
package scene

import (
	"github.com/Faultbox/meshdeform/pkg/math"
)

// Transform is an object's placement in the world.
// The local-to-world matrix is Translate * Rotate * Scale.
type Transform struct {
	Position math.Vec3
	Rotation math.Quat
	Scale    math.Vec3
}

// NewTransform returns an identity transform.
func NewTransform() *Transform {
	return &Transform{
		Rotation: math.QuatIdentity(),
		Scale:    math.Vec3{X: 1, Y: 1, Z: 1},
	}
}

// NewTransformAt returns a transform placed at pos with no rotation or scale.
func NewTransformAt(pos math.Vec3) *Transform {
	t := NewTransform()
	t.Position = pos
	return t
}

// Matrix returns the local-to-world matrix.
func (t *Transform) Matrix() math.Mat4 {
	return math.Translate(t.Position.X, t.Position.Y, t.Position.Z).
		Mul(t.Rotation.ToMat4()).
		Mul(math.Scale(t.Scale.X, t.Scale.Y, t.Scale.Z))
}

// InverseMatrix returns the world-to-local matrix.
// A degenerate transform (zero scale on any axis) yields identity.
func (t *Transform) InverseMatrix() math.Mat4 {
	return t.Matrix().Inverse()
}

// TransformPoint converts a local-space point to world space.
func (t *Transform) TransformPoint(local math.Vec3) math.Vec3 {
	return t.Matrix().TransformVec3(local)
}

// InverseTransformPoint converts a world-space point to local space.
func (t *Transform) InverseTransformPoint(world math.Vec3) math.Vec3 {
	return t.InverseMatrix().TransformVec3(world)
}

// InverseTransformDirection converts a world-space direction to local space.
// Scale is included, so the result is not normalized.
func (t *Transform) InverseTransformDirection(world math.Vec3) math.Vec3 {
	return t.InverseMatrix().TransformDirVec3(world)
}

// Translate moves the transform by delta in world space.
func (t *Transform) Translate(delta math.Vec3) {
	t.Position = t.Position.Add(delta)
}

// Rotate applies an additional world-space rotation.
func (t *Transform) Rotate(q math.Quat) {
	t.Rotation = q.Mul(t.Rotation).Normalize()
}
