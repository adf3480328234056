// Package linalg wraps the gonum dense matrix types with the small set of
// operations the matrix demo exercises: element-wise construction, LU
// factorisation with a row-swap record, substitution and inversion.
package linalg

import (
	"errors"
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrSingular is returned when LU factorisation meets a zero pivot.
	ErrSingular = errors.New("matrix is singular")
	// ErrNotSquare is returned for operations that need a square matrix.
	ErrNotSquare = errors.New("matrix is not square")
	// ErrDimensionMismatch is returned when operand shapes do not conform.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

// Ramp returns the r×c matrix with m(i,j) = 3i + j.
func Ramp(r, c int) *mat.Dense {
	m := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.Set(i, j, float64(3*i+j))
		}
	}
	return m
}

// ComplexRamp returns the r×c matrix with m(i,j) = (3i+j) + (3i+j)i.
func ComplexRamp(r, c int) *mat.CDense {
	m := mat.NewCDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := float64(3*i + j)
			m.Set(i, j, complex(v, v))
		}
	}
	return m
}

// Negate returns -m.
func Negate(m mat.Matrix) *mat.Dense {
	var out mat.Dense
	out.Scale(-1, m)
	return &out
}

// Product returns a·b.
func Product(a, b mat.Matrix) (*mat.Dense, error) {
	_, ac := a.Dims()
	br, _ := b.Dims()
	if ac != br {
		return nil, fmt.Errorf("Product: %d columns times %d rows: %w", ac, br, ErrDimensionMismatch)
	}
	var out mat.Dense
	out.Mul(a, b)
	return &out, nil
}

// Identity returns the n×n identity.
func Identity(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}

func cmap(m mat.CMatrix, transpose bool, f func(complex128) complex128) *mat.CDense {
	r, c := m.Dims()
	if transpose {
		r, c = c, r
	}
	out := mat.NewCDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if transpose {
				out.Set(i, j, f(m.At(j, i)))
			} else {
				out.Set(i, j, f(m.At(i, j)))
			}
		}
	}
	return out
}

func identity(v complex128) complex128 { return v }

// CNegate returns -m.
func CNegate(m mat.CMatrix) *mat.CDense {
	return cmap(m, false, func(v complex128) complex128 { return -v })
}

// Conj returns the element-wise conjugate of m.
func Conj(m mat.CMatrix) *mat.CDense {
	return cmap(m, false, cmplx.Conj)
}

// Real returns the real parts of m.
func Real(m mat.CMatrix) *mat.Dense {
	return split(m, func(v complex128) float64 { return real(v) })
}

// Imag returns the imaginary parts of m.
func Imag(m mat.CMatrix) *mat.Dense {
	return split(m, func(v complex128) float64 { return imag(v) })
}

func split(m mat.CMatrix, f func(complex128) float64) *mat.Dense {
	r, c := m.Dims()
	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, f(m.At(i, j)))
		}
	}
	return out
}

// Trans returns the transpose of m.
func Trans(m mat.CMatrix) *mat.CDense {
	return cmap(m, true, identity)
}

// Herm returns the conjugate transpose of m.
func Herm(m mat.CMatrix) *mat.CDense {
	return cmap(m, true, cmplx.Conj)
}
