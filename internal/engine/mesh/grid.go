package mesh

import (
	"fmt"

	"github.com/Faultbox/meshdeform/pkg/math"
)

// NewGrid builds a flat XZ plane of (columns+1) x (rows+1) vertices centred on
// the origin, two triangles per cell.
func NewGrid(columns, rows int, spacing float32) (*Mesh, error) {
	if columns < 1 || rows < 1 {
		return nil, fmt.Errorf("grid needs at least one cell, got %dx%d", columns, rows)
	}
	if spacing <= 0 {
		return nil, fmt.Errorf("grid spacing must be positive, got %v", spacing)
	}

	vx := columns + 1
	vz := rows + 1
	halfW := float32(columns) * spacing / 2
	halfD := float32(rows) * spacing / 2

	vertices := make([]math.Vec3, 0, vx*vz)
	for z := range vz {
		for x := range vx {
			vertices = append(vertices, math.Vec3{
				X: float32(x)*spacing - halfW,
				Y: 0,
				Z: float32(z)*spacing - halfD,
			})
		}
	}

	// Counter-clockwise when viewed from +Y
	indices := make([]uint32, 0, columns*rows*6)
	for z := range rows {
		for x := range columns {
			i0 := uint32(z*vx + x)
			i1 := i0 + 1
			i2 := i0 + uint32(vx)
			i3 := i2 + 1
			indices = append(indices, i0, i2, i1, i1, i2, i3)
		}
	}

	return New(vertices, indices)
}
