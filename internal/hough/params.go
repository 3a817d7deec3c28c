package hough

import (
	"errors"
	"fmt"
)

// ErrInvalidParameters is returned when a transform is configured with a
// non-positive resolution or image size.
var ErrInvalidParameters = errors.New("invalid hough parameters")

// Parameters controls the resolution of the accumulator.
type Parameters struct {
	// NAng is the number of angular steps over [0, pi).
	NAng int `json:"n_ang" toml:"n_ang"`

	// NRad is the number of radial steps in each signed direction from the
	// reference point. The accumulator has 2*NRad+1 radial bins.
	NRad int `json:"n_rad" toml:"n_rad"`
}

// DefaultParameters returns 256 angular and 128 radial steps.
func DefaultParameters() Parameters {
	return Parameters{NAng: 256, NRad: 128}
}

// Validate reports whether both resolutions are positive.
func (p Parameters) Validate() error {
	if p.NAng <= 0 {
		return fmt.Errorf("%w: n_ang must be > 0, got %d", ErrInvalidParameters, p.NAng)
	}
	if p.NRad <= 0 {
		return fmt.Errorf("%w: n_rad must be > 0, got %d", ErrInvalidParameters, p.NRad)
	}
	return nil
}

// radialBins is the height of the accumulator.
func (p Parameters) radialBins() int {
	return 2*p.NRad + 1
}
