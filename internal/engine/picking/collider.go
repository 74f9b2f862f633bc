package picking

import (
	"github.com/Faultbox/meshdeform/internal/engine/mesh"
	"github.com/Faultbox/meshdeform/internal/engine/scene"
	"github.com/Faultbox/meshdeform/pkg/math"
)

// Hit is the result of a successful raycast.
type Hit struct {
	Point    math.Vec3 // world space
	Distance float32   // world units along the ray
	Triangle int
}

// Raycaster finds the first surface a ray hits.
type Raycaster interface {
	Raycast(r Ray) (Hit, bool)
}

// MeshCollider raycasts against a mesh's current triangles, so dents made by
// earlier deform passes are taken into account.
type MeshCollider struct {
	Mesh      *mesh.Mesh
	Transform *scene.Transform
}

// NewMeshCollider creates a collider for m placed by xf.
func NewMeshCollider(m *mesh.Mesh, xf *scene.Transform) *MeshCollider {
	return &MeshCollider{Mesh: m, Transform: xf}
}

// Raycast returns the nearest triangle hit.
func (c *MeshCollider) Raycast(r Ray) (Hit, bool) {
	if c.Mesh == nil || c.Transform == nil {
		return Hit{}, false
	}

	// Direction keeps the inverse scale, so t stays valid for local.At
	local := Ray{
		Origin:    c.Transform.InverseTransformPoint(r.Origin),
		Direction: c.Transform.InverseTransformDirection(r.Direction),
	}

	b := c.Mesh.Bounds()
	if _, ok := local.IntersectAABB(AABB{Min: b.Min, Max: b.Max}); !ok {
		return Hit{}, false
	}

	best := Hit{Triangle: -1}
	var bestT float32
	for i := range c.Mesh.TriangleCount() {
		v0, v1, v2 := c.Mesh.Triangle(i)
		t, ok := local.IntersectTriangle(v0, v1, v2)
		if !ok {
			continue
		}
		if best.Triangle < 0 || t < bestT {
			bestT = t
			best.Triangle = i
		}
	}
	if best.Triangle < 0 {
		return Hit{}, false
	}

	best.Point = c.Transform.TransformPoint(local.At(bestT))
	best.Distance = best.Point.Distance(r.Origin)
	return best, true
}
