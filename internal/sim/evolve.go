package sim

import "math"

// Evolver produces the instantaneous spectra at a given time from the base
// amplitudes. The arrays are regenerated in place every frame; cells are
// fully independent of each other.
type Evolver struct {
	spec     *Spectrum
	jacobian bool

	// Height spectrum and its derived spectra.
	height  []complex128
	slopeX  []complex128
	slopeZ  []complex128
	dispX   []complex128
	dispZ   []complex128
	dDispXx []complex128 // d(dispX)/dx
	dDispZz []complex128 // d(dispZ)/dz
	dDispXz []complex128 // d(dispX)/dz, Jacobian only
	dDispZx []complex128 // d(dispZ)/dx, Jacobian only
}

// NewEvolver allocates the per-frame spectrum arrays for the given base
// spectrum. The two cross-derivative arrays exist only when the Jacobian is
// requested.
func NewEvolver(spec *Spectrum, jacobian bool) *Evolver {
	n2 := spec.n * spec.n
	e := &Evolver{
		spec:     spec,
		jacobian: jacobian,
		height:   make([]complex128, n2),
		slopeX:   make([]complex128, n2),
		slopeZ:   make([]complex128, n2),
		dispX:    make([]complex128, n2),
		dispZ:    make([]complex128, n2),
		dDispXx:  make([]complex128, n2),
		dDispZz:  make([]complex128, n2),
	}
	if jacobian {
		e.dDispXz = make([]complex128, n2)
		e.dDispZx = make([]complex128, n2)
	}
	return e
}

// Evolve fills the height spectrum for time t,
//
//	H(k,t) = h0(k) e^{i w t} + h0*(-k) e^{-i w t},
//
// and derives slopes, horizontal displacement and displacement derivatives
// from it.
func (e *Evolver) Evolve(t float64) {
	for i := range e.height {
		b := &e.spec.base[i]
		w := &e.spec.waves[i]

		sin, cos := math.Sincos(b.omega * t)
		h := b.h0*complex(cos, sin) + b.h0Conj*complex(cos, -sin)

		e.height[i] = h
		e.slopeX[i] = mulI(h, w.kx)
		e.slopeZ[i] = mulI(h, w.kz)

		dx := mulI(h, -w.ux)
		dz := mulI(h, -w.uz)
		e.dispX[i] = dx
		e.dispZ[i] = dz
		e.dDispXx[i] = mulI(dx, w.kx)
		e.dDispZz[i] = mulI(dz, w.kz)
		if e.jacobian {
			e.dDispXz[i] = mulI(dx, w.kz)
			e.dDispZx[i] = mulI(dz, w.kx)
		}
	}
}

// spectra lists every active spectrum array, the set the FFT bundle
// transforms each frame.
func (e *Evolver) spectra() [][]complex128 {
	s := [][]complex128{
		e.height, e.slopeX, e.slopeZ,
		e.dispX, e.dispZ, e.dDispXx, e.dDispZz,
	}
	if e.jacobian {
		s = append(s, e.dDispXz, e.dDispZx)
	}
	return s
}

// mulI returns i*s*z, the multiplication by the imaginary unit scaled by s.
func mulI(z complex128, s float64) complex128 {
	return complex(-imag(z)*s, real(z)*s)
}
