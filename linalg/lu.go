package linalg

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/lapack/lapack64"
	"gonum.org/v1/gonum/mat"
)

// Permutation records the row swaps of a partial-pivoting factorisation:
// at step i row i was exchanged with row p[i].
type Permutation []int

// IdentityPermutation is the permutation that swaps nothing.
func IdentityPermutation(n int) Permutation {
	p := make(Permutation, n)
	for i := range p {
		p[i] = i
	}
	return p
}

// LU is a factored working copy of a square matrix.
type LU struct {
	factors *mat.Dense
	perm    Permutation
}

// Factorize computes the LU factorisation of a copy of m with partial
// pivoting. A zero pivot yields ErrSingular; m is never modified.
func Factorize(m mat.Matrix) (*LU, error) {
	r, c := m.Dims()
	if r != c {
		return nil, fmt.Errorf("Factorize: %dx%d: %w", r, c, ErrNotSquare)
	}
	work := mat.DenseCopyOf(m)
	ipiv := make([]int, r)
	raw := work.RawMatrix()
	if ok := lapack64.Getrf(raw, ipiv); !ok {
		for i := 0; i < r; i++ {
			if raw.Data[i*raw.Stride+i] == 0 {
				return nil, fmt.Errorf("Factorize: zero pivot at row %d: %w", i, ErrSingular)
			}
		}
		return nil, fmt.Errorf("Factorize: %w", ErrSingular)
	}
	return &LU{factors: work, perm: Permutation(ipiv)}, nil
}

// Permutation returns the row-swap record.
func (lu *LU) Permutation() Permutation {
	return append(Permutation(nil), lu.perm...)
}

// Factors returns the packed L and U factors.
func (lu *LU) Factors() *mat.Dense {
	return mat.DenseCopyOf(lu.factors)
}

// Substitute solves A x = b for every column of b.
func (lu *LU) Substitute(b mat.Matrix) (*mat.Dense, error) {
	n, _ := lu.factors.Dims()
	br, _ := b.Dims()
	if br != n {
		return nil, fmt.Errorf("Substitute: %d rows against %d: %w", br, n, ErrDimensionMismatch)
	}
	x := mat.DenseCopyOf(b)
	lapack64.Getrs(blas.NoTrans, lu.factors.RawMatrix(), x.RawMatrix(), lu.perm)
	return x, nil
}

// SolveVec solves A x = y.
func (lu *LU) SolveVec(y *mat.VecDense) (*mat.VecDense, error) {
	x, err := lu.Substitute(y)
	if err != nil {
		return nil, err
	}
	return mat.NewVecDense(y.Len(), x.RawMatrix().Data), nil
}

// Invert returns the inverse of m by substituting the identity.
func Invert(m mat.Matrix) (*mat.Dense, error) {
	lu, err := Factorize(m)
	if err != nil {
		return nil, fmt.Errorf("Invert: %w", err)
	}
	n, _ := m.Dims()
	return lu.Substitute(Identity(n))
}

// Solve solves A x = y in one call.
func Solve(a mat.Matrix, y *mat.VecDense) (*mat.VecDense, Permutation, error) {
	lu, err := Factorize(a)
	if err != nil {
		return nil, nil, fmt.Errorf("Solve: %w", err)
	}
	x, err := lu.SolveVec(y)
	if err != nil {
		return nil, nil, fmt.Errorf("Solve: %w", err)
	}
	return x, lu.Permutation(), nil
}
