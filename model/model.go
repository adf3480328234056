package model

import (
	"errors"

	"github.com/meenmo/qldemo/curve"
	"github.com/meenmo/qldemo/lattice"
)

var (
	// ErrNilModel is returned when an engine is given no model.
	ErrNilModel = errors.New("nil short-rate model")
	// ErrInvalidParameter is returned for a negative volatility or reversion.
	ErrInvalidParameter = errors.New("invalid model parameter")
)

// ShortRateModel builds a short-rate lattice on a time grid.
type ShortRateModel interface {
	Name() string
	Tree(grid *lattice.TimeGrid) (*lattice.ShortRateTree, error)
}

// CurveConsistent is implemented by models fitted to a yield curve; engines
// take the reference date and day count for date-to-time mapping from it.
type CurveConsistent interface {
	Curve() curve.YieldCurve
}

// Params are the affine parameters shared by Vasicek and Hull-White.
type Params struct {
	A      float64
	B      float64
	Sigma  float64
	Lambda float64
	R0     float64
}
