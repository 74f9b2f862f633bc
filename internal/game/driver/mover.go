package driver

import (
	"time"

	"github.com/Faultbox/meshdeform/internal/engine/scene"
	"github.com/Faultbox/meshdeform/pkg/math"
)

// DefaultMoveSpeed is the mover speed in world units per second.
const DefaultMoveSpeed = 5

// arrivalThreshold is how close the mover must get to a waypoint.
const arrivalThreshold = 0.01

// Mover moves a transform on the XZ plane.
type Mover struct {
	Transform *scene.Transform
	Speed     float32
}

// NewMover creates a mover with the default speed.
func NewMover(xf *scene.Transform) *Mover {
	return &Mover{Transform: xf, Speed: DefaultMoveSpeed}
}

// Update moves along the input axes (horizontal = X, vertical = Z) for dt.
// The input direction is normalized so diagonals are not faster.
func (m *Mover) Update(horizontal, vertical float32, dt time.Duration) {
	if m.Transform == nil {
		return
	}
	dir := math.Vec3{X: horizontal, Z: vertical}.Normalize()
	m.Transform.Translate(dir.Scale(m.Speed * float32(dt.Seconds())))
}

// MoveTowards moves toward target on the XZ plane for dt without overshooting.
// It reports whether the target was reached.
func (m *Mover) MoveTowards(target math.Vec3, dt time.Duration) bool {
	if m.Transform == nil {
		return false
	}
	pos := m.Transform.Position
	delta := math.Vec3{X: target.X - pos.X, Z: target.Z - pos.Z}
	dist := delta.Length()
	if dist < arrivalThreshold {
		return true
	}

	step := m.Speed * float32(dt.Seconds())
	if step >= dist {
		m.Transform.Translate(delta)
		return true
	}
	m.Transform.Translate(delta.Scale(step / dist))
	return false
}
