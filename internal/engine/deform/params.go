package deform

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

// Default configuration values.
const (
	DefaultRadius    = 0.8
	DefaultPower     = 1.0
	DefaultBatchSize = 500
)

// Configuration errors.
var (
	ErrNegativeRadius    = errors.New("radius of deformation must be >= 0")
	ErrInvalidPower      = errors.New("power of deformation must be finite")
	ErrUnknownRadiusMode = errors.New("unknown radius mode")
)

// RadiusMode selects how Radius is compared with a vertex's squared distance
// from the impact point.
type RadiusMode string

const (
	// RadiusRaw compares squared distance against Radius as configured.
	// A radius of 0.8 therefore reaches about 0.894 units.
	RadiusRaw RadiusMode = "raw"
	// RadiusSquared squares Radius before comparing, so Radius is a distance.
	RadiusSquared RadiusMode = "squared"
)

// ParseRadiusMode parses a RadiusMode. The empty string is RadiusRaw.
func ParseRadiusMode(s string) (RadiusMode, error) {
	switch RadiusMode(s) {
	case "", RadiusRaw:
		return RadiusRaw, nil
	case RadiusSquared:
		return RadiusSquared, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRadiusMode, s)
	}
}

// Params configures a deformer. They are fixed for the lifetime of the
// object that owns them.
type Params struct {
	// Radius of effect; see RadiusMode.
	Radius float32
	// Power is how far affected vertices move down. Negative values move them up.
	Power float32
	// RadiusMode selects the Radius units.
	RadiusMode RadiusMode
	// BatchSize is the number of vertices per parallel batch (<= 0: auto).
	BatchSize int
}

// DefaultParams returns the default configuration.
func DefaultParams() Params {
	return Params{
		Radius:     DefaultRadius,
		Power:      DefaultPower,
		RadiusMode: RadiusRaw,
		BatchSize:  DefaultBatchSize,
	}
}

// Validate checks the parameters. Invalid values are rejected, never clamped.
func (p Params) Validate() error {
	if math32.IsNaN(p.Radius) || p.Radius < 0 {
		return fmt.Errorf("%w: got %v", ErrNegativeRadius, p.Radius)
	}
	if math32.IsNaN(p.Power) || math32.IsInf(p.Power, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidPower, p.Power)
	}
	if _, err := ParseRadiusMode(string(p.RadiusMode)); err != nil {
		return err
	}
	return nil
}

// Threshold returns the value squared distances are compared against.
func (p Params) Threshold() float32 {
	if p.RadiusMode == RadiusSquared {
		return p.Radius * p.Radius
	}
	return p.Radius
}
