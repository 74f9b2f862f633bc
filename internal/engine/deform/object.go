// Package deform dents meshes at an impact point.
//
// A MeshObject stages a copy of its mesh's vertex buffer, fans a Job out over
// every vertex on a jobs.Pool, joins, and publishes the result back to the mesh
// only when at least one vertex moved.
package deform

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/meshdeform/internal/engine/jobs"
	"github.com/Faultbox/meshdeform/internal/logger"
	"github.com/Faultbox/meshdeform/pkg/math"
)

// Errors returned by MeshObject.
var (
	ErrNoMesh             = errors.New("no target mesh")
	ErrNoTransform        = errors.New("no world transform")
	ErrInvalidImpactPoint = errors.New("impact point is not finite")
	ErrDeformInProgress   = errors.New("deform already in progress on this object")
)

// Deformable is anything that can be dented at a world-space point.
type Deformable interface {
	Deform(worldPoint math.Vec3) error
}

// VertexMesh is the mesh side of a MeshObject: a vertex buffer that is read
// as a copy and replaced as a whole.
type VertexMesh interface {
	Vertices() []math.Vec3
	SetVertices(v []math.Vec3) error
}

// WorldTransform maps world-space points into the mesh's local space.
type WorldTransform interface {
	InverseTransformPoint(world math.Vec3) math.Vec3
}

// State is a step of a deform pass.
type State int32

const (
	StateIdle State = iota
	StateStaging
	StateDispatching
	StateCommitting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStaging:
		return "staging"
	case StateDispatching:
		return "dispatching"
	case StateCommitting:
		return "committing"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Result describes the last deform pass.
type Result struct {
	Impact    math.Vec3 // local space
	Deformed  int
	Published bool
	Elapsed   time.Duration
}

// MeshObject is a mesh that can be deformed in place.
//
// Deform calls on the same object must not overlap. A second call made while
// one is running fails with ErrDeformInProgress and changes nothing.
type MeshObject struct {
	mesh      VertexMesh
	transform WorldTransform
	pool      *jobs.Pool
	params    Params
	log       *zap.Logger

	state             atomic.Int32
	deformedVertCount int
	lastResult        Result
}

// NewMeshObject binds a mesh and its transform to a worker pool.
// A nil pool uses one worker per CPU.
func NewMeshObject(mesh VertexMesh, transform WorldTransform, pool *jobs.Pool, params Params) (*MeshObject, error) {
	if mesh == nil {
		return nil, ErrNoMesh
	}
	if transform == nil {
		return nil, ErrNoTransform
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid deform params: %w", err)
	}
	if pool == nil {
		pool = jobs.NewPool(0)
	}

	return &MeshObject{
		mesh:      mesh,
		transform: transform,
		pool:      pool,
		params:    params,
		log:       logger.Named("deform"),
	}, nil
}

// Params returns the object's configuration.
func (o *MeshObject) Params() Params {
	return o.params
}

// DeformedVertCount returns the total number of vertex displacements across
// all passes. It never decreases.
func (o *MeshObject) DeformedVertCount() int {
	return o.deformedVertCount
}

// LastResult returns the outcome of the most recent successful pass.
func (o *MeshObject) LastResult() Result {
	return o.lastResult
}

// State returns the current pass step.
func (o *MeshObject) State() State {
	return State(o.state.Load())
}

// Deform dents the mesh around worldPoint.
//
// The pass is all-or-nothing: on error neither the mesh nor the cumulative
// count changes.
func (o *MeshObject) Deform(worldPoint math.Vec3) error {
	if !worldPoint.IsFinite() {
		return fmt.Errorf("%w: %v", ErrInvalidImpactPoint, worldPoint)
	}
	if !o.state.CompareAndSwap(int32(StateIdle), int32(StateStaging)) {
		return ErrDeformInProgress
	}
	defer o.state.Store(int32(StateIdle))

	start := time.Now()

	local := o.transform.InverseTransformPoint(worldPoint)
	staged := o.mesh.Vertices()
	threshold := o.params.Threshold()

	o.state.Store(int32(StateDispatching))
	pending := NewCounter().Schedule(o.pool, len(staged), o.params.BatchSize, func(cc ConcurrentCounter) jobs.ParallelJob {
		return Job{
			Vertices:  staged,
			Impact:    local,
			Threshold: threshold,
			Power:     o.params.Power,
			Counter:   cc,
		}
	})
	joined, err := pending.Join()
	defer joined.Release()
	if err != nil {
		o.log.Error("deform pass failed", zap.Error(err))
		return fmt.Errorf("deform dispatch: %w", err)
	}

	o.state.Store(int32(StateCommitting))
	count := joined.Count()
	published := false
	if count > 0 {
		if err := o.mesh.SetVertices(staged); err != nil {
			return fmt.Errorf("publish vertices: %w", err)
		}
		published = true
	}
	o.deformedVertCount += count

	o.lastResult = Result{
		Impact:    local,
		Deformed:  count,
		Published: published,
		Elapsed:   time.Since(start),
	}
	o.log.Debug("deform pass",
		zap.Int("vertices", len(staged)),
		zap.Int("deformed", count),
		zap.Int("total", o.deformedVertCount),
		zap.Bool("published", published),
		zap.Duration("elapsed", o.lastResult.Elapsed),
	)

	return nil
}
