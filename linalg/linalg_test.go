package linalg_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/meenmo/qldemo/linalg"
)

func fiveByFive() (*mat.Dense, *mat.VecDense) {
	a := mat.NewDense(5, 5, []float64{
		2, 3, 0, 0, 0,
		3, 0, 4, 0, 6,
		0, -1, -3, 2, 0,
		0, 0, 1, 0, 0,
		0, 4, 2, 0, 1,
	})
	y := mat.NewVecDense(5, []float64{8, 45, -3, 3, 19})
	return a, y
}

func TestRampAndNegate(t *testing.T) {
	t.Parallel()

	m := linalg.Ramp(3, 3)
	assert.Equal(t, "[3,3]((0,1,2),(3,4,5),(6,7,8))", linalg.Format(m))
	assert.Equal(t, "[3,3]((-0,-1,-2),(-3,-4,-5),(-6,-7,-8))", linalg.Format(linalg.Negate(m)))
	assert.Equal(t, 0.0, m.At(0, 0), "input untouched")
}

func TestComplexOperations(t *testing.T) {
	t.Parallel()

	m := linalg.ComplexRamp(2, 2)
	assert.Equal(t, "[2,2](((0,0),(1,1)),((3,3),(4,4)))", linalg.FormatComplex(m))
	assert.Equal(t, "[2,2](((-0,-0),(-1,-1)),((-3,-3),(-4,-4)))", linalg.FormatComplex(linalg.CNegate(m)))
	assert.Equal(t, "[2,2](((0,-0),(1,-1)),((3,-3),(4,-4)))", linalg.FormatComplex(linalg.Conj(m)))
	assert.Equal(t, "[2,2]((0,1),(3,4))", linalg.Format(linalg.Real(m)))
	assert.Equal(t, "[2,2]((0,1),(3,4))", linalg.Format(linalg.Imag(m)))
	assert.Equal(t, "[2,2](((0,0),(3,3)),((1,1),(4,4)))", linalg.FormatComplex(linalg.Trans(m)))
	assert.Equal(t, "[2,2](((0,-0),(3,-3)),((1,-1),(4,-4)))", linalg.FormatComplex(linalg.Herm(m)))

	rect := linalg.ComplexRamp(2, 3)
	r, c := linalg.Herm(rect).Dims()
	assert.Equal(t, []int{3, 2}, []int{r, c})
}

func TestProduct(t *testing.T) {
	t.Parallel()

	m := linalg.Ramp(3, 3)
	p, err := linalg.Product(m, m)
	require.NoError(t, err)
	assert.Equal(t, "[3,3]((15,18,21),(42,54,66),(69,90,111))", linalg.Format(p))

	_, err = linalg.Product(linalg.Ramp(2, 3), linalg.Ramp(2, 3))
	require.ErrorIs(t, err, linalg.ErrDimensionMismatch)
}

func TestFactorize_Singular(t *testing.T) {
	t.Parallel()

	m := linalg.Ramp(3, 3)
	_, err := linalg.Factorize(m)
	require.ErrorIs(t, err, linalg.ErrSingular)

	_, err = linalg.Invert(m)
	require.ErrorIs(t, err, linalg.ErrSingular)
	assert.Equal(t, "[3,3]((0,1,2),(3,4,5),(6,7,8))", linalg.Format(m))

	_, err = linalg.Factorize(linalg.Ramp(2, 3))
	require.ErrorIs(t, err, linalg.ErrNotSquare)
}

func TestInvert(t *testing.T) {
	t.Parallel()

	a := mat.NewDense(3, 3, []float64{1, 2, 3, 5, 1, 4, 6, 7, 1})
	inv, err := linalg.Invert(a)
	require.NoError(t, err)

	p, err := linalg.Product(a, inv)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(p, linalg.Identity(3), 1e-12))
}

func TestSolve_FiveByFive(t *testing.T) {
	t.Parallel()

	a, y := fiveByFive()
	assert.Equal(t, "[5](8,45,-3,3,19)", linalg.FormatVector(y))
	assert.Equal(t, "[5](0,1,2,3,4)", linalg.FormatPermutation(linalg.IdentityPermutation(5)))

	x, perm, err := linalg.Solve(a, y)
	require.NoError(t, err)
	assert.True(t, floats.EqualApprox(x.RawVector().Data, []float64{1, 2, 3, 4, 5}, 1e-12))
	assert.Equal(t, linalg.Permutation{1, 4, 4, 4, 4}, perm)
	assert.Equal(t, "[5](1,2,3,4,5)", linalg.FormatVector(x))

	// Inputs are not modified.
	assert.Equal(t, 2.0, a.At(0, 0))
	assert.Equal(t, 8.0, y.AtVec(0))
}

func TestSubstitute_MatrixRightHandSide(t *testing.T) {
	t.Parallel()

	a, _ := fiveByFive()
	lu, err := linalg.Factorize(a)
	require.NoError(t, err)

	b := mat.NewDense(5, 2, []float64{8, 2, 45, 3, -3, 0, 3, 0, 19, 0})
	x, err := lu.Substitute(b)
	require.NoError(t, err)
	var back mat.Dense
	back.Mul(a, x)
	assert.True(t, mat.EqualApprox(&back, b, 1e-12))

	_, err = lu.Substitute(mat.NewDense(3, 1, nil))
	require.ErrorIs(t, err, linalg.ErrDimensionMismatch)
	assert.False(t, math.IsNaN(lu.Factors().At(0, 0)))
}
