package model

import (
	"fmt"
	"math"

	"github.com/meenmo/qldemo/lattice"
)

// Vasicek is dr = a (b - r) dt + sigma dW with market price of risk lambda.
// The tree is built on x = r - b.
type Vasicek struct {
	R0     float64
	A      float64
	B      float64
	Sigma  float64
	Lambda float64
}

// NewVasicek validates the parameters.
func NewVasicek(r0, a, b, sigma, lambda float64) (*Vasicek, error) {
	if a < 0 || sigma < 0 {
		return nil, fmt.Errorf("NewVasicek: a=%g sigma=%g: %w", a, sigma, ErrInvalidParameter)
	}
	return &Vasicek{R0: r0, A: a, B: b, Sigma: sigma, Lambda: lambda}, nil
}

func (m *Vasicek) Name() string { return "Vasicek" }

func (m *Vasicek) Params() Params {
	return Params{A: m.A, B: m.B, Sigma: m.Sigma, Lambda: m.Lambda, R0: m.R0}
}

func (m *Vasicek) process() lattice.OrnsteinUhlenbeck {
	return lattice.OrnsteinUhlenbeck{Speed: m.A, Vol: m.Sigma, Start: m.R0 - m.B}
}

// Tree builds the trinomial lattice for the model on grid.
func (m *Vasicek) Tree(grid *lattice.TimeGrid) (*lattice.ShortRateTree, error) {
	if grid == nil {
		return nil, fmt.Errorf("Vasicek.Tree: %w", lattice.ErrInvalidGrid)
	}
	if m.Sigma <= 0 {
		return nil, fmt.Errorf("Vasicek.Tree: sigma=%g leaves the tree without spacing: %w", m.Sigma, ErrInvalidParameter)
	}
	tree := lattice.NewTrinomialTree(m.process(), grid)
	b := m.B
	return lattice.NewShortRateTree(tree, func(_ int, _, x float64) float64 { return x + b }), nil
}

func (m *Vasicek) bFactor(t, T float64) float64 {
	if m.A < math.Sqrt(lattice.Epsilon) {
		return T - t
	}
	return (1 - math.Exp(-m.A*(T-t))) / m.A
}

func (m *Vasicek) aFactor(t, T float64) float64 {
	s2 := m.Sigma * m.Sigma
	bt := m.bFactor(t, T)
	if m.A < math.Sqrt(lattice.Epsilon) {
		// Zero reversion: r follows a Brownian motion with drift lambda*sigma.
		tau := T - t
		return math.Exp(-0.5*m.Lambda*m.Sigma*tau*tau + s2*tau*tau*tau/6)
	}
	rs := m.B + m.Lambda*m.Sigma/m.A - 0.5*s2/(m.A*m.A)
	return math.Exp((bt-(T-t))*rs - 0.25*s2*bt*bt/m.A)
}

// DiscountBond is the analytic price at t of a zero-coupon bond maturing at
// T given short rate r at t.
func (m *Vasicek) DiscountBond(t, T, r float64) float64 {
	return m.aFactor(t, T) * math.Exp(-m.bFactor(t, T)*r)
}
