// Package sim implements the spectral ocean wave simulation: a statistical
// wave height field is synthesised in the frequency domain from a Phillips
// spectrum, evolved in time with the deep-water dispersion relation, and
// inverse-transformed each frame into displacement and normal maps ready for
// GPU upload.
package sim

import (
	"fmt"
	"math"
)

// Gravity is the gravitational acceleration used by the dispersion relation.
const Gravity = 9.81

// Allowed tile resolutions (power-of-two grid sides).
const (
	MinTileSize = 16
	MaxTileSize = 1024
)

// Params describes one periodic N x N patch of the water surface.
// The spectrum and wave-vector grid are a pure function of these values
// plus the RNG seed.
type Params struct {
	// TileSize is the grid resolution N. Must be a power of two in
	// [MinTileSize, MaxTileSize].
	TileSize int

	// TileLength is the world-space side length L of the patch.
	TileLength float64

	// WindDir is the wind direction; normalised by Validate.
	WindDirX float64
	WindDirZ float64

	// WindSpeed sets the fully-developed wave length scale v^2/g.
	WindSpeed float64

	// PhillipsConst is the global spectrum amplitude A.
	PhillipsConst float64

	// Damping suppresses wavelengths shorter than roughly its value.
	Damping float64

	// AnimationPeriod quantises the dispersion relation to 2*pi/T so the
	// animation loops perfectly with period T.
	AnimationPeriod float64

	// Lambda scales horizontal (choppy) displacement; typically in [-1, 0].
	Lambda float64

	// ComputeJacobian fills the displacement w channel with the surface
	// deformation Jacobian for foam estimation.
	ComputeJacobian bool

	// Seed for the Gaussian stream used during spectrum construction.
	Seed uint64
}

// DefaultParams returns the parameter set the application starts with.
func DefaultParams() Params {
	invSqrt2 := 1.0 / math.Sqrt2
	return Params{
		TileSize:        512,
		TileLength:      1000,
		WindDirX:        invSqrt2,
		WindDirZ:        invSqrt2,
		WindSpeed:       30,
		PhillipsConst:   3e-7,
		Damping:         0.1,
		AnimationPeriod: 200,
		Lambda:          -1,
		ComputeJacobian: true,
		Seed:            1,
	}
}

// Validate checks the parameter domain and normalises the wind direction.
// It must pass before any spectrum allocation happens.
func (p *Params) Validate() error {
	if !isPowerOfTwo(p.TileSize) || p.TileSize < MinTileSize || p.TileSize > MaxTileSize {
		return fmt.Errorf("tile size %d: must be a power of two in [%d, %d]",
			p.TileSize, MinTileSize, MaxTileSize)
	}
	if p.TileLength <= 0 {
		return fmt.Errorf("tile length %g: must be positive", p.TileLength)
	}
	if p.WindSpeed < 0 {
		return fmt.Errorf("wind speed %g: must be non-negative", p.WindSpeed)
	}
	if p.PhillipsConst <= 0 {
		return fmt.Errorf("phillips constant %g: must be positive", p.PhillipsConst)
	}
	if p.Damping < 0 {
		return fmt.Errorf("damping %g: must be non-negative", p.Damping)
	}
	if p.AnimationPeriod <= 0 {
		return fmt.Errorf("animation period %g: must be positive", p.AnimationPeriod)
	}

	mag := math.Hypot(p.WindDirX, p.WindDirZ)
	if mag == 0 {
		return fmt.Errorf("wind direction is a zero vector")
	}
	p.WindDirX /= mag
	p.WindDirZ /= mag

	return nil
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
