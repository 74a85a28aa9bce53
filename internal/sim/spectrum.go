package sim

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Wave-vector magnitudes below this collapse to a zero unit direction.
const dirEpsilon = 1e-5

// Wave-vector magnitudes below this carry zero Phillips energy.
const phillipsEpsilon = 1e-6

// waveVector is one cell of the frequency grid: the wave vector itself and
// its unit direction (zero when the magnitude is below dirEpsilon).
type waveVector struct {
	kx, kz float64
	ux, uz float64
}

// baseWave pairs the two Fourier amplitudes fixed at configuration time with
// the quantised dispersion frequency. h0 is drawn at k, h0Conj is the
// conjugate of the h0 drawn at the lattice point holding -k; the pairing
// makes the evolved spectrum Hermitian, which is what guarantees a
// real-valued height field after the inverse transform.
type baseWave struct {
	h0     complex128
	h0Conj complex128
	omega  float64
}

// Spectrum holds the immutable per-configuration wave data: the wave-vector
// grid and the base amplitudes. Everything here is deterministic in the
// Params (including the seed).
type Spectrum struct {
	n      int
	length float64

	waves []waveVector
	base  []baseWave
}

// NewSpectrum builds the wave-vector grid and draws the base amplitudes.
// Params must already be validated.
func NewSpectrum(p Params) *Spectrum {
	n := p.TileSize
	s := &Spectrum{
		n:      n,
		length: p.TileLength,
		waves:  make([]waveVector, n*n),
		base:   make([]baseWave, n*n),
	}

	norm := distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewSource(p.Seed)}

	omega0 := 2 * math.Pi / p.AnimationPeriod
	invSqrt2 := 1.0 / math.Sqrt2

	for m := 0; m < n; m++ {
		kz := math.Pi * float64(2*m-n) / p.TileLength
		for col := 0; col < n; col++ {
			kx := math.Pi * float64(2*col-n) / p.TileLength
			i := m*n + col

			w := waveVector{kx: kx, kz: kz}
			mag := math.Hypot(kx, kz)
			if mag >= dirEpsilon {
				w.ux = kx / mag
				w.uz = kz / mag
			}
			s.waves[i] = w

			ar, ai := norm.Rand(), norm.Rand()
			sq := invSqrt2 * math.Sqrt(phillips(kx, kz, mag, &p))

			s.base[i] = baseWave{
				h0:    complex(ar*sq, ai*sq),
				omega: math.Floor(math.Sqrt(Gravity*mag)/omega0) * omega0,
			}
		}
	}

	// Pair each cell with the lattice point holding its mirrored wave
	// vector. Row and column zero carry the Nyquist frequencies and mirror
	// onto themselves, so their evolved amplitudes stay real.
	for m := 0; m < n; m++ {
		for col := 0; col < n; col++ {
			mirror := &s.base[((n-m)%n)*n+(n-col)%n].h0
			s.base[m*n+col].h0Conj = complex(real(*mirror), -imag(*mirror))
		}
	}

	return s
}

// phillips evaluates the Phillips spectrum at the wave vector (kx, kz) with
// magnitude mag:
//
//	P(k) = A * exp(-1/(|k| Lw)^2) / |k|^4 * (k^.w^)^2 * exp(-|k|^2 d^2)
//
// where Lw = v^2/g is the largest wave scale for wind speed v and d damps
// wavelengths below roughly d.
func phillips(kx, kz, mag float64, p *Params) float64 {
	if mag < phillipsEpsilon {
		return 0
	}

	lw := p.WindSpeed * p.WindSpeed / Gravity
	k2 := mag * mag
	dot := (kx/mag)*p.WindDirX + (kz/mag)*p.WindDirZ

	return p.PhillipsConst *
		math.Exp(-1/(k2*lw*lw)) / (k2 * k2) *
		dot * dot *
		math.Exp(-k2*p.Damping*p.Damping)
}

// Size returns the grid side N.
func (s *Spectrum) Size() int { return s.n }

// Length returns the world-space patch side L.
func (s *Spectrum) Length() float64 { return s.length }
