package driver

import (
	"time"

	"github.com/Faultbox/meshdeform/pkg/math"
)

// Path walks a Mover through waypoints in order.
type Path struct {
	Mover     *Mover
	Waypoints []math.Vec3
	Loop      bool

	next int
}

// NewPath creates a path over waypoints.
func NewPath(m *Mover, waypoints []math.Vec3, loop bool) *Path {
	return &Path{Mover: m, Waypoints: waypoints, Loop: loop}
}

// Done reports whether a non-looping path has reached its last waypoint.
func (p *Path) Done() bool {
	return len(p.Waypoints) == 0 || (!p.Loop && p.next >= len(p.Waypoints))
}

// Update advances along the path for dt.
func (p *Path) Update(dt time.Duration) {
	if p.Done() {
		return
	}
	if p.Mover.MoveTowards(p.Waypoints[p.next], dt) {
		p.next++
		if p.Loop && p.next >= len(p.Waypoints) {
			p.next = 0
		}
	}
}
