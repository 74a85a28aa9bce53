package sim

import "math"

// TexelStride is the number of floats per texel in both output fields.
const TexelStride = 4

// assembler folds the sign-corrected inverse-transform outputs into the two
// tightly packed texel fields the GPU consumes:
//
//	displacement: (lambda*dx, height, lambda*dz, jacobian or 1)
//	normal/derivative: (slopeX, slopeZ, d(dispX)/dx, d(dispZ)/dz)
//
// During the pass it tracks the height envelope; afterwards the height
// channel is normalised into [-1, 1] by the amplitude A = max(|min|, |max|),
// which is returned so the shader can recover world-scale height.
type assembler struct {
	n        int
	lambda   float64
	jacobian bool

	displacement []float32
	normal       []float32
}

func newAssembler(n int, lambda float64, jacobian bool) *assembler {
	return &assembler{
		n:            n,
		lambda:       lambda,
		jacobian:     jacobian,
		displacement: make([]float32, TexelStride*n*n),
		normal:       make([]float32, TexelStride*n*n),
	}
}

// assemble writes both fields in a single pass over the grid and returns the
// normalisation amplitude. Cell order is irrelevant; only the real parts of
// the spectra are consumed.
func (a *assembler) assemble(e *Evolver) float32 {
	minH := math.Inf(1)
	maxH := math.Inf(-1)
	l := a.lambda

	for i := 0; i < a.n*a.n; i++ {
		h := real(e.height[i])
		if h < minH {
			minH = h
		}
		if h > maxH {
			maxH = h
		}

		w := 1.0
		if a.jacobian {
			jxx := 1 + l*real(e.dDispXx[i])
			jzz := 1 + l*real(e.dDispZz[i])
			jxz := l * real(e.dDispXz[i])
			jzx := l * real(e.dDispZx[i])
			w = jxx*jzz - jxz*jzx
		}

		d := a.displacement[TexelStride*i:]
		d[0] = float32(l * real(e.dispX[i]))
		d[1] = float32(h)
		d[2] = float32(l * real(e.dispZ[i]))
		d[3] = float32(w)

		nrm := a.normal[TexelStride*i:]
		nrm[0] = float32(real(e.slopeX[i]))
		nrm[1] = float32(real(e.slopeZ[i]))
		nrm[2] = float32(real(e.dDispXx[i]))
		nrm[3] = float32(real(e.dDispZz[i]))
	}

	amp := math.Max(math.Abs(minH), math.Abs(maxH))
	if amp == 0 {
		// Flat surface (e.g. zero wind); heights are already all zero.
		return 0
	}

	inv := float32(1 / amp)
	for i := 0; i < a.n*a.n; i++ {
		y := a.displacement[TexelStride*i+1] * inv
		// float32 rounding can push the extreme cell a hair past the bound.
		if y > 1 {
			y = 1
		} else if y < -1 {
			y = -1
		}
		a.displacement[TexelStride*i+1] = y
	}

	return float32(amp)
}
