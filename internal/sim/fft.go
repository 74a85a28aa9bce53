package sim

import "gonum.org/v1/gonum/dsp/fourier"

// fftBundle executes the fixed set of 2D inverse complex-to-complex
// transforms over the evolver's spectrum arrays. The underlying plan is
// created once per configuration and shared by all arrays.
//
// The inverse convention is out[m][n] = sum_{p,q} in[p][q] e^{+2pi i(mp+nq)/N}
// with no 1/N^2 scaling, which is exactly what fourier.CmplxFFT.Sequence
// computes; a row pass followed by a column pass yields the 2D transform.
// After each transform a checkerboard (-1)^{m+n} factor re-centres the grid
// to [-N/2, N/2), compensating the origin shift in the wave-vector indexing.
type fftBundle struct {
	n    int
	plan *fourier.CmplxFFT

	arrays [][]complex128

	// Scratch for one row or column; Sequence cannot run fully in place.
	line []complex128
	out  []complex128
}

// newFFTBundle plans transforms of size n x n over the given arrays.
func newFFTBundle(n int, arrays [][]complex128) *fftBundle {
	return &fftBundle{
		n:      n,
		plan:   fourier.NewCmplxFFT(n),
		arrays: arrays,
		line:   make([]complex128, n),
		out:    make([]complex128, n),
	}
}

// Execute runs every planned transform sequentially, in place. Serial
// invocation is part of the contract: the assembler that follows observes a
// consistent snapshot of all arrays.
func (f *fftBundle) Execute() {
	for _, a := range f.arrays {
		f.inverse2D(a)
	}
}

func (f *fftBundle) inverse2D(a []complex128) {
	n := f.n

	// Rows.
	for m := 0; m < n; m++ {
		row := a[m*n : (m+1)*n]
		f.plan.Sequence(f.out, row)
		copy(row, f.out)
	}

	// Columns.
	for col := 0; col < n; col++ {
		for m := 0; m < n; m++ {
			f.line[m] = a[m*n+col]
		}
		f.plan.Sequence(f.out, f.line)
		for m := 0; m < n; m++ {
			a[m*n+col] = f.out[m]
		}
	}

	// Checkerboard sign correction.
	for m := 0; m < n; m++ {
		for col := 0; col < n; col++ {
			if (m+col)&1 == 1 {
				a[m*n+col] = -a[m*n+col]
			}
		}
	}
}
