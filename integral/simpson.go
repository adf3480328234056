// Package integral integrates an option payoff against the lognormal
// terminal density and cross-checks the result.
package integral

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate/quad"

	"github.com/meenmo/qldemo/config"
)

// ErrMaxIterations is returned when the integrator does not converge.
var ErrMaxIterations = errors.New("max number of iterations reached")

// Simpson refines a trapezoid estimate by doubling the interval count and
// Richardson-extrapolates each pair of trapezoids to Simpson's rule.
type Simpson struct {
	AbsAccuracy   float64
	MaxIterations int

	evaluations int
}

// NewSimpson returns an integrator; non-positive arguments fall back to the
// active config.
func NewSimpson(absAccuracy float64, maxIterations int) *Simpson {
	cfg := config.GetConfig()
	if absAccuracy <= 0 {
		absAccuracy = cfg.IntegrationAccuracy
	}
	if maxIterations <= 0 {
		maxIterations = cfg.IntegrationMaxIterations
	}
	return &Simpson{AbsAccuracy: absAccuracy, MaxIterations: maxIterations}
}

// Evaluations is the number of integrand calls made by the last Integrate.
func (s *Simpson) Evaluations() int { return s.evaluations }

// Integrate returns the integral of f over [a, b]. Reversed bounds flip the
// sign.
func (s *Simpson) Integrate(f func(float64) float64, a, b float64) (float64, error) {
	s.evaluations = 0
	if a == b {
		return 0, nil
	}
	if b < a {
		v, err := s.integrate(f, b, a)
		return -v, err
	}
	return s.integrate(f, a, b)
}

func (s *Simpson) integrate(f func(float64) float64, a, b float64) (float64, error) {
	eval := func(x float64) float64 {
		s.evaluations++
		return f(x)
	}

	n := 1
	trap := (eval(a) + eval(b)) * (b - a) / 2
	adj := trap
	for i := 1; i < s.MaxIterations; i++ {
		next := refineTrapezoid(eval, a, b, trap, n)
		n *= 2
		nextAdj := (4*next - trap) / 3
		// At least six refinements before accepting.
		if math.Abs(adj-nextAdj) <= s.AbsAccuracy && i > 5 {
			return nextAdj, nil
		}
		trap = next
		adj = nextAdj
	}
	return 0, fmt.Errorf("Simpson.Integrate: %d iterations: %w", s.MaxIterations, ErrMaxIterations)
}

// refineTrapezoid halves the step of a trapezoid estimate over n intervals.
func refineTrapezoid(f func(float64) float64, a, b, prev float64, n int) float64 {
	dx := (b - a) / float64(n)
	x := a + dx/2
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += f(x)
		x += dx
	}
	return (prev + dx*sum) / 2
}

// GaussLegendre integrates f over [a, b] with an n-point Legendre rule.
func GaussLegendre(f func(float64) float64, a, b float64, n int) float64 {
	return quad.Fixed(f, a, b, n, quad.Legendre{}, 0)
}
