package deform

import (
	"github.com/Faultbox/meshdeform/pkg/math"
)

// Job pushes every vertex closer than the threshold away along the up axis.
// Each Execute touches only Vertices[i], so batches never overlap.
type Job struct {
	Vertices  []math.Vec3
	Impact    math.Vec3 // local space
	Threshold float32   // compared against squared distance, strict <
	Power     float32
	Counter   ConcurrentCounter
}

// Execute deforms vertex i if it is in range.
func (j Job) Execute(i int) {
	v := j.Vertices[i]
	if v.DistanceSquared(j.Impact) < j.Threshold {
		j.Vertices[i] = v.Sub(math.Up().Scale(j.Power))
		j.Counter.Increment()
	}
}
