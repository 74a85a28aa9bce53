package sim

import (
	"go.uber.org/zap"
)

// Surface ties the spectrum, evolver, FFT bundle and assembler together and
// is the unit the frame orchestrator drives: Reconfigure on parameter change,
// Update once per frame.
type Surface struct {
	log *zap.Logger

	params    Params
	spectrum  *Spectrum
	evolver   *Evolver
	fft       *fftBundle
	assembler *assembler

	amplitude float32
}

// NewSurface validates the parameters and prepares all per-configuration
// state. Invalid parameters are rejected before any allocation.
func NewSurface(p Params, log *zap.Logger) (*Surface, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Surface{log: log.Named("sim")}
	if err := s.Reconfigure(p); err != nil {
		return nil, err
	}
	return s, nil
}

// Reconfigure rebuilds the wave-vector grid, base amplitudes, FFT plan and
// per-frame arrays for a new parameter set. Old state is dropped wholesale;
// nothing survives a reconfiguration except the logger.
func (s *Surface) Reconfigure(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}

	s.params = p
	s.spectrum = NewSpectrum(p)
	s.evolver = NewEvolver(s.spectrum, p.ComputeJacobian)
	s.fft = newFFTBundle(p.TileSize, s.evolver.spectra())
	s.assembler = newAssembler(p.TileSize, p.Lambda, p.ComputeJacobian)
	s.amplitude = 0

	s.log.Info("surface configured",
		zap.Int("tileSize", p.TileSize),
		zap.Float64("tileLength", p.TileLength),
		zap.Float64("windSpeed", p.WindSpeed),
		zap.Int("spectra", len(s.evolver.spectra())),
	)
	return nil
}

// SetLambda changes the choppy factor without rebuilding the spectrum; it
// only affects assembly, so the next Update picks it up.
func (s *Surface) SetLambda(lambda float64) {
	s.params.Lambda = lambda
	s.assembler.lambda = lambda
}

// Update evolves the spectra to time t, runs the inverse transforms and
// assembles the displacement and normal fields. It is a pure function of t
// given the immutable base state: calling it twice with the same t yields
// identical fields.
func (s *Surface) Update(t float64) {
	s.evolver.Evolve(t)
	s.fft.Execute()
	s.amplitude = s.assembler.assemble(s.evolver)
}

// Amplitude returns the height normalisation amplitude from the last Update.
// Zero means a perfectly flat surface.
func (s *Surface) Amplitude() float32 { return s.amplitude }

// Displacement returns the packed displacement field (x, y, z, w), four
// float32 per cell, row-major N x N. Valid until the next Update.
func (s *Surface) Displacement() []float32 { return s.assembler.displacement }

// Normal returns the packed normal/derivative field (slopeX, slopeZ,
// d(dispX)/dx, d(dispZ)/dz). Valid until the next Update.
func (s *Surface) Normal() []float32 { return s.assembler.normal }

// Params returns the active parameter set.
func (s *Surface) Params() Params { return s.params }

// Size returns the grid side N.
func (s *Surface) Size() int { return s.params.TileSize }
