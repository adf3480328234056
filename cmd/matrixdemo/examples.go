package main

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/meenmo/qldemo/linalg"
)

func negation(w io.Writer, _ *zap.Logger) error {
	fmt.Fprintln(w, linalg.Format(linalg.Negate(linalg.Ramp(3, 3))))
	return nil
}

func complexOps(w io.Writer, _ *zap.Logger) error {
	m := linalg.ComplexRamp(3, 3)
	fmt.Fprintln(w, linalg.FormatComplex(linalg.CNegate(m)))
	fmt.Fprintln(w, "conj: "+linalg.FormatComplex(linalg.Conj(m)))
	fmt.Fprintln(w, "real: "+linalg.Format(linalg.Real(m)))
	fmt.Fprintln(w, "imag: "+linalg.Format(linalg.Imag(m)))
	fmt.Fprintln(w, "trans: "+linalg.FormatComplex(linalg.Trans(m)))
	fmt.Fprintln(w, "herm: "+linalg.FormatComplex(linalg.Herm(m)))
	return nil
}

// inversion reports a singular input instead of printing an inverse.
func inversion(w io.Writer, logger *zap.Logger) error {
	a := linalg.Ramp(3, 3)
	fmt.Fprintln(w, "A="+linalg.Format(a))
	z, err := linalg.Invert(a)
	if errors.Is(err, linalg.ErrSingular) {
		logger.Debug("inversion failed", zap.Error(err))
		fmt.Fprintln(w, "Z=<singular, no inverse>")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "Z="+linalg.Format(z))
	return nil
}

func product(w io.Writer, _ *zap.Logger) error {
	m1, m2 := linalg.Ramp(3, 3), linalg.Ramp(3, 3)
	p, err := linalg.Product(m1, m2)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "m1="+linalg.Format(m1))
	fmt.Fprintln(w, "m2="+linalg.Format(m2))
	fmt.Fprintln(w, "prod="+linalg.Format(p))
	return nil
}

func system() (*mat.Dense, *mat.VecDense) {
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

func solve(w io.Writer, logger *zap.Logger) error {
	a, y := system()
	fmt.Fprintln(w, linalg.FormatVector(y))
	fmt.Fprintln(w, linalg.FormatPermutation(linalg.IdentityPermutation(5)))

	lu, err := linalg.Factorize(a)
	if err != nil {
		return err
	}
	x, err := lu.SolveVec(y)
	if err != nil {
		return err
	}
	logger.Debug("factorised", zap.Ints("permutation", lu.Permutation()))
	fmt.Fprintln(w, linalg.FormatPermutation(lu.Permutation()))
	fmt.Fprintln(w, linalg.FormatVector(x))
	return nil
}
