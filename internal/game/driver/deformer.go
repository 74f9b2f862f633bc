// Package driver feeds deformable objects from the world: it casts rays from a
// moving source and dents whatever they hit.
package driver

import (
	"go.uber.org/zap"

	"github.com/Faultbox/meshdeform/internal/engine/deform"
	"github.com/Faultbox/meshdeform/internal/engine/picking"
	"github.com/Faultbox/meshdeform/internal/engine/scene"
	"github.com/Faultbox/meshdeform/internal/logger"
	"github.com/Faultbox/meshdeform/pkg/math"
)

// Deformer casts a ray straight down from Source every tick and deforms Target
// at the hit point.
type Deformer struct {
	Target    deform.Deformable
	Source    *scene.Transform
	Raycaster picking.Raycaster
	Enabled   bool

	log *zap.Logger
}

// NewDeformer creates an enabled deformer.
func NewDeformer(target deform.Deformable, source *scene.Transform, rc picking.Raycaster) *Deformer {
	return &Deformer{
		Target:    target,
		Source:    source,
		Raycaster: rc,
		Enabled:   true,
		log:       logger.Named("driver"),
	}
}

// Tick runs one frame. It reports whether a deform pass ran.
// A missing target, source or raycaster, or a ray that hits nothing, is a no-op.
func (d *Deformer) Tick() (bool, error) {
	if !d.Enabled || d.Target == nil || d.Source == nil || d.Raycaster == nil {
		return false, nil
	}

	ray := picking.NewRay(d.Source.Position, math.Down())
	hit, ok := d.Raycaster.Raycast(ray)
	if !ok {
		return false, nil
	}

	if err := d.Target.Deform(hit.Point); err != nil {
		d.log.Warn("deform failed",
			zap.Float32("x", hit.Point.X),
			zap.Float32("y", hit.Point.Y),
			zap.Float32("z", hit.Point.Z),
			zap.Error(err),
		)
		return false, err
	}
	return true, nil
}
