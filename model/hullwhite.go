package model

import (
	"fmt"
	"math"

	"github.com/meenmo/qldemo/curve"
	"github.com/meenmo/qldemo/lattice"
)

// HullWhite is dr = (theta(t) - a r) dt + sigma dW fitted to a yield curve.
// The tree is built on an Ornstein-Uhlenbeck x starting at zero; the shift
// phi(t) = r - x is solved step by step so that the tree reprices the
// curve's discount bonds.
type HullWhite struct {
	curve curve.YieldCurve
	a     float64
	sigma float64
	r0    float64
}

// NewHullWhite fits the model to c.
func NewHullWhite(c curve.YieldCurve, a, sigma float64) (*HullWhite, error) {
	if c == nil {
		return nil, fmt.Errorf("NewHullWhite: %w", curve.ErrNilCurve)
	}
	if a < 0 || sigma < 0 {
		return nil, fmt.Errorf("NewHullWhite: a=%g sigma=%g: %w", a, sigma, ErrInvalidParameter)
	}
	return &HullWhite{curve: c, a: a, sigma: sigma, r0: instantaneousForward(c, 0)}, nil
}

// instantaneousForward is the continuously compounded forward at t.
func instantaneousForward(c curve.YieldCurve, t float64) float64 {
	const dt = 1e-4
	return math.Log(c.Discount(t)/c.Discount(t+dt)) / dt
}

func (m *HullWhite) Name() string { return "HullWhite" }

func (m *HullWhite) Curve() curve.YieldCurve { return m.curve }

func (m *HullWhite) A() float64 { return m.a }

// B is the long-run level of the underlying Vasicek form, always zero.
func (m *HullWhite) B() float64 { return 0 }

func (m *HullWhite) Sigma() float64 { return m.sigma }

// Lambda is the market price of risk, always zero.
func (m *HullWhite) Lambda() float64 { return 0 }

// R0 is the instantaneous forward rate of the curve at time zero.
func (m *HullWhite) R0() float64 { return m.r0 }

func (m *HullWhite) Params() Params {
	return Params{A: m.a, B: 0, Sigma: m.sigma, Lambda: 0, R0: m.r0}
}

// Tree builds the fitted lattice. phi at node i is set once the state
// prices of step i are known, which only depend on phi up to i-1.
func (m *HullWhite) Tree(grid *lattice.TimeGrid) (*lattice.ShortRateTree, error) {
	if grid == nil {
		return nil, fmt.Errorf("HullWhite.Tree: %w", lattice.ErrInvalidGrid)
	}
	if m.sigma <= 0 {
		return nil, fmt.Errorf("HullWhite.Tree: sigma=%g leaves the tree without spacing: %w", m.sigma, ErrInvalidParameter)
	}
	tree := lattice.NewTrinomialTree(lattice.OrnsteinUhlenbeck{Speed: m.a, Vol: m.sigma}, grid)
	phi := make([]float64, grid.Size())
	srt := lattice.NewShortRateTree(tree, func(i int, _, x float64) float64 { return x + phi[i] })

	for i := 0; i < grid.Size()-1; i++ {
		discountBond := m.curve.Discount(grid.At(i + 1))
		prices := srt.StatePrices(i)
		dt := grid.Dt(i)
		dx := tree.Dx(i)
		x := tree.Underlying(i, 0)
		value := 0.0
		for _, q := range prices {
			value += q * math.Exp(-x*dt)
			x += dx
		}
		phi[i] = math.Log(value/discountBond) / dt
		if math.IsNaN(phi[i]) || math.IsInf(phi[i], 0) {
			return nil, fmt.Errorf("HullWhite.Tree: fitting failed at t=%g", grid.At(i))
		}
	}
	return srt, nil
}
