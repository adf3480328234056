package pricing

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/meenmo/qldemo/bond"
	"github.com/meenmo/qldemo/config"
	"github.com/meenmo/qldemo/curve"
	"github.com/meenmo/qldemo/lattice"
	"github.com/meenmo/qldemo/model"
)

// ErrNoCashflows is returned when the bond has nothing left to pay.
var ErrNoCashflows = errors.New("no cashflows after settlement")

// TreeCallableBondEngine prices callable fixed-rate bonds by backward
// induction on a short-rate lattice.
//
// Dates are mapped to times with the model's curve when the model is fitted
// to one, otherwise with Curve, which then only supplies the reference date
// and day count.
type TreeCallableBondEngine struct {
	Model     model.ShortRateModel
	TimeSteps int
	Curve     curve.YieldCurve
	Logger    *zap.Logger
}

// NewTreeCallableBondEngine builds an engine; c may be nil for models fitted
// to a curve.
func NewTreeCallableBondEngine(m model.ShortRateModel, steps int, c curve.YieldCurve, logger *zap.Logger) *TreeCallableBondEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TreeCallableBondEngine{Model: m, TimeSteps: steps, Curve: c, Logger: logger}
}

func (e *TreeCallableBondEngine) referenceCurve() (curve.YieldCurve, error) {
	if fitted, ok := e.Model.(model.CurveConsistent); ok && fitted.Curve() != nil {
		return fitted.Curve(), nil
	}
	if e.Curve == nil {
		return nil, fmt.Errorf("%s model needs a reference curve: %w", e.Model.Name(), curve.ErrNilCurve)
	}
	return e.Curve, nil
}

// Calculate implements bond.PricingEngine. The settlement value is the
// present value at the reference date.
func (e *TreeCallableBondEngine) Calculate(args bond.EngineArguments) (bond.EngineResults, error) {
	if e.Model == nil {
		return bond.EngineResults{}, fmt.Errorf("TreeCallableBondEngine.Calculate: %w", model.ErrNilModel)
	}
	if len(args.CouponDates) == 0 && !args.RedemptionDate.After(args.SettlementDate) {
		return bond.EngineResults{}, fmt.Errorf("TreeCallableBondEngine.Calculate: %w", ErrNoCashflows)
	}
	if len(args.CallDates) != len(args.CallPrices) || len(args.CallDates) != len(args.CallTypes) ||
		len(args.CouponDates) != len(args.CouponAmounts) {
		return bond.EngineResults{}, fmt.Errorf("TreeCallableBondEngine.Calculate: mismatched argument lengths")
	}
	ref, err := e.referenceCurve()
	if err != nil {
		return bond.EngineResults{}, fmt.Errorf("TreeCallableBondEngine.Calculate: %w", err)
	}
	steps := e.TimeSteps
	if steps <= 0 {
		steps = config.GetConfig().TreeTimeSteps
	}
	logger := e.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	db := newDiscretizedCallableBond(args, ref.TimeFrom)
	grid, err := lattice.NewTimeGrid(db.MandatoryTimes(), steps)
	if err != nil {
		return bond.EngineResults{}, fmt.Errorf("TreeCallableBondEngine.Calculate: %w", err)
	}
	tree, err := e.Model.Tree(grid)
	if err != nil {
		return bond.EngineResults{}, fmt.Errorf("TreeCallableBondEngine.Calculate: %w", err)
	}
	logger.Debug("lattice built",
		zap.String("model", e.Model.Name()),
		zap.Int("steps", steps),
		zap.Int("nodes", grid.Size()),
		zap.Float64("maturity", db.redemptionTime),
		zap.Int("calls", len(db.callTimes)))

	asset := lattice.NewDiscretizedAsset(db)
	if err := tree.Initialize(asset, db.redemptionTime); err != nil {
		return bond.EngineResults{}, fmt.Errorf("TreeCallableBondEngine.Calculate: %w", err)
	}
	if err := asset.Rollback(0); err != nil {
		return bond.EngineResults{}, fmt.Errorf("TreeCallableBondEngine.Calculate: %w", err)
	}
	pv, err := asset.PresentValue()
	if err != nil {
		return bond.EngineResults{}, fmt.Errorf("TreeCallableBondEngine.Calculate: %w", err)
	}
	return bond.EngineResults{Value: pv, SettlementValue: pv}, nil
}
