package lattice

import (
	"fmt"
	"math"
)

// ShortRateFunc maps the process value x at grid node i (time t) to the
// short rate applied over the following step.
type ShortRateFunc func(i int, t, x float64) float64

// ShortRateTree discounts a trinomial tree of process values with a short
// rate. Arrow-Debreu state prices are induced forward on demand and cached.
type ShortRateTree struct {
	tree        *TrinomialTree
	shortRate   ShortRateFunc
	statePrices [][]float64
}

// NewShortRateTree wraps tree with the rate mapping.
func NewShortRateTree(tree *TrinomialTree, rate ShortRateFunc) *ShortRateTree {
	return &ShortRateTree{
		tree:        tree,
		shortRate:   rate,
		statePrices: [][]float64{{1}},
	}
}

func (l *ShortRateTree) Grid() *TimeGrid { return l.tree.grid }

func (l *ShortRateTree) Tree() *TrinomialTree { return l.tree }

func (l *ShortRateTree) Size(i int) int { return l.tree.Size(i) }

// ShortRate is the rate at node index of step i.
func (l *ShortRateTree) ShortRate(i, index int) float64 {
	return l.shortRate(i, l.tree.grid.At(i), l.tree.Underlying(i, index))
}

// Discount is the one-step discount factor at node index of step i.
func (l *ShortRateTree) Discount(i, index int) float64 {
	return math.Exp(-l.ShortRate(i, index) * l.tree.grid.Dt(i))
}

// StatePrices returns the Arrow-Debreu prices of the nodes at step i.
func (l *ShortRateTree) StatePrices(i int) []float64 {
	for n := len(l.statePrices) - 1; n < i; n++ {
		prev := l.statePrices[n]
		next := make([]float64, l.tree.Size(n+1))
		for j, price := range prev {
			disc := l.Discount(n, j)
			for b := 0; b < 3; b++ {
				next[l.tree.Descendant(n, j, b)] += price * disc * l.tree.Probability(n, j, b)
			}
		}
		l.statePrices = append(l.statePrices, next)
	}
	return l.statePrices[i]
}

// StepBack discounts the expectation of values at step i+1 to step i.
func (l *ShortRateTree) StepBack(i int, values []float64) []float64 {
	out := make([]float64, l.tree.Size(i))
	for j := range out {
		v := 0.0
		for b := 0; b < 3; b++ {
			v += l.tree.Probability(i, j, b) * values[l.tree.Descendant(i, j, b)]
		}
		out[j] = v * l.Discount(i, j)
	}
	return out
}

// Initialize sets asset at time t with values sized for that step.
func (l *ShortRateTree) Initialize(asset *DiscretizedAsset, t float64) error {
	i, err := l.tree.grid.Index(t)
	if err != nil {
		return fmt.Errorf("Initialize: %w", err)
	}
	asset.lattice = l
	asset.time = t
	asset.reset(l.tree.Size(i))
	return nil
}

// PartialRollback rolls asset back to time to, applying the asset
// adjustments at every intermediate node but not at to itself.
func (l *ShortRateTree) PartialRollback(asset *DiscretizedAsset, to float64) error {
	from := asset.time
	if closeEnough(from, to) {
		return nil
	}
	if to > from {
		return fmt.Errorf("PartialRollback: cannot roll forward from %g to %g", from, to)
	}
	grid := l.tree.grid
	iFrom, err := grid.Index(from)
	if err != nil {
		return fmt.Errorf("PartialRollback: %w", err)
	}
	iTo, err := grid.Index(to)
	if err != nil {
		return fmt.Errorf("PartialRollback: %w", err)
	}
	for i := iFrom - 1; i >= iTo; i-- {
		asset.values = l.StepBack(i, asset.values)
		asset.time = grid.At(i)
		if i != iTo {
			asset.AdjustValues()
		}
	}
	return nil
}

// Rollback rolls asset back to time to and applies the adjustments there.
func (l *ShortRateTree) Rollback(asset *DiscretizedAsset, to float64) error {
	if err := l.PartialRollback(asset, to); err != nil {
		return err
	}
	asset.AdjustValues()
	return nil
}

// PresentValue prices asset with the state prices of its current step.
func (l *ShortRateTree) PresentValue(asset *DiscretizedAsset) (float64, error) {
	i, err := l.tree.grid.Index(asset.time)
	if err != nil {
		return 0, fmt.Errorf("PresentValue: %w", err)
	}
	prices := l.StatePrices(i)
	pv := 0.0
	for j, v := range asset.values {
		pv += v * prices[j]
	}
	return pv, nil
}
