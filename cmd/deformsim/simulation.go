package main

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/meshdeform/internal/config"
	"github.com/Faultbox/meshdeform/internal/engine/deform"
	"github.com/Faultbox/meshdeform/internal/engine/jobs"
	"github.com/Faultbox/meshdeform/internal/engine/mesh"
	"github.com/Faultbox/meshdeform/internal/engine/picking"
	"github.com/Faultbox/meshdeform/internal/engine/scene"
	"github.com/Faultbox/meshdeform/internal/game/driver"
	"github.com/Faultbox/meshdeform/internal/logger"
	"github.com/Faultbox/meshdeform/pkg/math"
)

// stats summarizes a simulation run.
type stats struct {
	Ticks             int
	Passes            int
	DeformedVertCount int
	Publishes         uint64
	Deepest           float32
	Elapsed           time.Duration
}

// simulation moves a ray source over a grid and dents it every tick.
type simulation struct {
	cfg      *config.Config
	mesh     *mesh.Mesh
	object   *deform.MeshObject
	deformer *driver.Deformer
	path     *driver.Path
	log      *zap.Logger
}

func newSimulation(cfg *config.Config) (*simulation, error) {
	params, err := cfg.DeformParams()
	if err != nil {
		return nil, err
	}

	grid, err := mesh.NewGrid(cfg.Mesh.Columns, cfg.Mesh.Rows, cfg.Mesh.Spacing)
	if err != nil {
		return nil, fmt.Errorf("building grid: %w", err)
	}
	xf := scene.NewTransformAt(math.Vec3From(cfg.Mesh.Position))

	pool := jobs.NewPool(cfg.Deform.Workers)
	obj, err := deform.NewMeshObject(grid, xf, pool, params)
	if err != nil {
		return nil, err
	}

	waypoints := cfg.Waypoints()
	source := scene.NewTransformAt(waypoints[0])
	mover := driver.NewMover(source)
	mover.Speed = cfg.Simulation.MoveSpeed

	log := logger.Named("sim")
	log.Info("simulation ready",
		zap.Int("vertices", grid.VertexCount()),
		zap.Int("triangles", grid.TriangleCount()),
		zap.Int("workers", pool.Workers()),
		zap.Int("batch_size", params.BatchSize),
		zap.String("radius_mode", string(params.RadiusMode)),
		zap.Float32("threshold", params.Threshold()),
	)

	return &simulation{
		cfg:      cfg,
		mesh:     grid,
		object:   obj,
		deformer: driver.NewDeformer(obj, source, picking.NewMeshCollider(grid, xf)),
		path:     driver.NewPath(mover, waypoints, cfg.Simulation.Loop),
		log:      log,
	}, nil
}

// Run advances the simulation for the configured number of ticks using a
// fixed time step.
func (s *simulation) Run() (stats, error) {
	start := time.Now()
	dt := s.cfg.Simulation.TickRate

	var st stats
	for tick := range s.cfg.Simulation.Ticks {
		s.path.Update(dt)

		ran, err := s.deformer.Tick()
		if err != nil {
			return st, fmt.Errorf("tick %d: %w", tick, err)
		}
		st.Ticks++
		if ran {
			st.Passes++
			res := s.object.LastResult()
			s.log.Debug("tick",
				zap.Int("tick", tick),
				zap.Int("deformed", res.Deformed),
				zap.Int("total", s.object.DeformedVertCount()),
			)
		}
	}

	st.DeformedVertCount = s.object.DeformedVertCount()
	st.Publishes = s.mesh.Revision()
	st.Deepest = s.mesh.Bounds().Min.Y
	st.Elapsed = time.Since(start)
	return st, nil
}
