// Package config handles simulation configuration loading and management.
package config

import (
	"fmt"
	"time"

	"github.com/Faultbox/meshdeform/internal/engine/deform"
	"github.com/Faultbox/meshdeform/pkg/math"
)

// Config holds all settings.
type Config struct {
	Deform     DeformConfig     `yaml:"deform"`
	Mesh       MeshConfig       `yaml:"mesh"`
	Simulation SimulationConfig `yaml:"simulation"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// DeformConfig holds deformation settings.
type DeformConfig struct {
	Radius     float32 `yaml:"radius"`
	Power      float32 `yaml:"power"`
	RadiusMode string  `yaml:"radius_mode"` // "raw" or "squared"
	BatchSize  int     `yaml:"batch_size"`
	Workers    int     `yaml:"workers"` // 0 = one per CPU
}

// MeshConfig describes the procedural grid to deform.
type MeshConfig struct {
	Columns  int        `yaml:"columns"`
	Rows     int        `yaml:"rows"`
	Spacing  float32    `yaml:"spacing"`
	Position [3]float32 `yaml:"position"` // world position of the mesh
}

// SimulationConfig holds the driver loop settings.
type SimulationConfig struct {
	Ticks        int           `yaml:"ticks"`
	TickRate     time.Duration `yaml:"tick_rate"`
	MoveSpeed    float32       `yaml:"move_speed"`
	SourceHeight float32       `yaml:"source_height"`
	Path         [][2]float32  `yaml:"path"` // XZ waypoints; empty = diagonal sweep
	Loop         bool          `yaml:"loop"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Deform: DeformConfig{
			Radius:     deform.DefaultRadius,
			Power:      deform.DefaultPower,
			RadiusMode: string(deform.RadiusRaw),
			BatchSize:  deform.DefaultBatchSize,
			Workers:    0,
		},
		Mesh: MeshConfig{
			Columns: 64,
			Rows:    64,
			Spacing: 0.25,
		},
		Simulation: SimulationConfig{
			Ticks:        120,
			TickRate:     16 * time.Millisecond,
			MoveSpeed:    5,
			SourceHeight: 5,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// DeformParams converts the deform section to deform.Params.
func (c *Config) DeformParams() (deform.Params, error) {
	mode, err := deform.ParseRadiusMode(c.Deform.RadiusMode)
	if err != nil {
		return deform.Params{}, err
	}
	return deform.Params{
		Radius:     c.Deform.Radius,
		Power:      c.Deform.Power,
		RadiusMode: mode,
		BatchSize:  c.Deform.BatchSize,
	}, nil
}

// Waypoints returns the simulation path in world space at source height.
// An empty path sweeps diagonally across the mesh.
func (c *Config) Waypoints() []math.Vec3 {
	h := c.Simulation.SourceHeight
	origin := math.Vec3From(c.Mesh.Position)
	if len(c.Simulation.Path) == 0 {
		halfW := float32(c.Mesh.Columns) * c.Mesh.Spacing / 2
		halfD := float32(c.Mesh.Rows) * c.Mesh.Spacing / 2
		return []math.Vec3{
			{X: origin.X - halfW, Y: h, Z: origin.Z - halfD},
			{X: origin.X + halfW, Y: h, Z: origin.Z + halfD},
		}
	}
	points := make([]math.Vec3, len(c.Simulation.Path))
	for i, p := range c.Simulation.Path {
		points[i] = math.Vec3{X: p[0], Y: h, Z: p[1]}
	}
	return points
}

// Validate checks the configuration for values the simulation cannot run with.
func (c *Config) Validate() error {
	p, err := c.DeformParams()
	if err != nil {
		return fmt.Errorf("deform: %w", err)
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("deform: %w", err)
	}
	if c.Deform.Workers < 0 {
		return fmt.Errorf("deform: workers must be >= 0, got %d", c.Deform.Workers)
	}
	if c.Mesh.Columns < 1 || c.Mesh.Rows < 1 {
		return fmt.Errorf("mesh: need at least one cell, got %dx%d", c.Mesh.Columns, c.Mesh.Rows)
	}
	if c.Mesh.Spacing <= 0 {
		return fmt.Errorf("mesh: spacing must be positive, got %v", c.Mesh.Spacing)
	}
	if c.Simulation.Ticks < 0 {
		return fmt.Errorf("simulation: ticks must be >= 0, got %d", c.Simulation.Ticks)
	}
	if c.Simulation.TickRate <= 0 {
		return fmt.Errorf("simulation: tick_rate must be positive, got %v", c.Simulation.TickRate)
	}
	return nil
}
