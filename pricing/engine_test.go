package pricing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/qldemo/bond"
	"github.com/meenmo/qldemo/calendar"
	"github.com/meenmo/qldemo/curve"
	"github.com/meenmo/qldemo/lattice"
	"github.com/meenmo/qldemo/model"
	"github.com/meenmo/qldemo/pricing"
	"github.com/meenmo/qldemo/utils"
)

var today = utils.Date(2007, time.October, 16)

func bbCurve(t *testing.T) *curve.FlatForward {
	t.Helper()
	rate, err := curve.NewInterestRate(0.055, utils.ActActBond, curve.Compounded, curve.Semiannual)
	require.NoError(t, err)
	return curve.NewFlatForward(today, rate)
}

func bac(t *testing.T, calls []bond.Callability) *bond.CallableFixedRateBond {
	t.Helper()
	s, err := bond.GenerateSchedule(bond.ScheduleSpec{
		Effective:   utils.Date(2004, time.September, 16),
		Termination: utils.Date(2012, time.September, 15),
		TenorMonths: 3,
		Calendar:    calendar.USGovernmentBond,
		Convention:  calendar.Unadjusted,
		Rule:        bond.Backward,
	})
	require.NoError(t, err)
	b, err := bond.NewCallableFixedRateBond(bond.FixedRateBond{
		SettlementDays:    3,
		FaceAmount:        100,
		Schedule:          s,
		CouponRate:        0.0465,
		DayCount:          utils.ActActBond,
		PaymentConvention: calendar.Unadjusted,
		Redemption:        100,
		IssueDate:         utils.Date(2004, time.September, 16),
	}, calls)
	require.NoError(t, err)
	return b
}

func bacCalls() []bond.Callability {
	return bond.CallSchedule(utils.Date(2006, time.September, 15), 24, 3, 100, calendar.NullCalendar)
}

var yieldSpec = bond.YieldSpec{
	DayCount:      utils.ActActBond,
	Compounding:   curve.Compounded,
	Frequency:     curve.Quarterly,
	Accuracy:      1e-8,
	MaxIterations: 1000,
}

func TestHullWhiteEngine_TracksBloombergReferences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sigma      float64
		cleanPrice float64
		yieldPct   float64
	}{
		{lattice.Epsilon, 96.50, 5.47},
		{0.01, 95.68, 5.66},
		{0.03, 92.34, 6.49},
		{0.06, 87.16, 7.83},
		{0.12, 77.31, 10.65},
	}

	c := bbCurve(t)
	b := bac(t, bacCalls())
	for _, tt := range tests {
		hw, err := model.NewHullWhite(c, 0.03, tt.sigma)
		require.NoError(t, err)

		res, err := b.Price(pricing.NewTreeCallableBondEngine(hw, 40, nil, nil), today)
		require.NoError(t, err)
		assert.InDelta(t, tt.cleanPrice, res.CleanPrice, 0.12, "sigma %g", tt.sigma)

		y, err := b.YieldOf(res, yieldSpec)
		require.NoError(t, err)
		assert.InDelta(t, tt.yieldPct, 100*y.Yield, 0.03, "sigma %g", tt.sigma)
	}
}

func TestVasicekEngine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sigma      float64
		cleanPrice float64
	}{
		{lattice.Epsilon, 96.15},
		{0.01, 95.48},
		{0.03, 92.68},
		{0.06, 88.83},
		{0.12, 83.18},
	}

	c := bbCurve(t)
	b := bac(t, bacCalls())
	prev := 101.0
	for _, tt := range tests {
		v, err := model.NewVasicek(0.055, 0.03, 0.055, tt.sigma, 0)
		require.NoError(t, err)

		res, err := b.Price(pricing.NewTreeCallableBondEngine(v, 40, c, nil), today)
		require.NoError(t, err)
		assert.InDelta(t, tt.cleanPrice, res.CleanPrice, 0.02, "sigma %g", tt.sigma)
		assert.Less(t, res.CleanPrice, prev)
		prev = res.CleanPrice
	}
}

func TestEngine_NoCallsMatchesCurveDiscounting(t *testing.T) {
	t.Parallel()

	c := bbCurve(t)
	b := bac(t, nil)
	hw, err := model.NewHullWhite(c, 0.03, 0.01)
	require.NoError(t, err)

	res, err := b.Price(pricing.NewTreeCallableBondEngine(hw, 40, nil, nil), today)
	require.NoError(t, err)

	// A fitted tree prices straight cashflows off the curve.
	want := 0.0
	for _, cf := range b.Cashflows() {
		if cf.Date.After(res.SettlementDate) {
			want += cf.Amount() * c.DF(cf.Date)
		}
	}
	assert.InDelta(t, want, res.NPV, 1e-9)
}

func TestEngine_CallOptionLowersValue(t *testing.T) {
	t.Parallel()

	c := bbCurve(t)
	hw, err := model.NewHullWhite(c, 0.03, 0.03)
	require.NoError(t, err)
	engine := pricing.NewTreeCallableBondEngine(hw, 40, nil, nil)

	straight, err := bac(t, nil).Price(engine, today)
	require.NoError(t, err)
	callable, err := bac(t, bacCalls()).Price(engine, today)
	require.NoError(t, err)
	assert.Less(t, callable.CleanPrice, straight.CleanPrice)

	puts := bacCalls()
	for i := range puts {
		puts[i].Type = bond.Put
	}
	puttable, err := bac(t, puts).Price(engine, today)
	require.NoError(t, err)
	assert.Greater(t, puttable.CleanPrice, straight.CleanPrice)
}

func TestEngine_Errors(t *testing.T) {
	t.Parallel()

	b := bac(t, bacCalls())
	args := b.Arguments(utils.Date(2007, time.October, 19))

	_, err := pricing.NewTreeCallableBondEngine(nil, 40, nil, nil).Calculate(args)
	require.ErrorIs(t, err, model.ErrNilModel)

	v, err := model.NewVasicek(0.055, 0.03, 0.055, 0.01, 0)
	require.NoError(t, err)
	_, err = pricing.NewTreeCallableBondEngine(v, 40, nil, nil).Calculate(args)
	require.ErrorIs(t, err, curve.ErrNilCurve)

	_, err = pricing.NewTreeCallableBondEngine(v, 40, bbCurve(t), nil).Calculate(bond.EngineArguments{
		SettlementDate: utils.Date(2013, time.January, 1),
		RedemptionDate: utils.Date(2012, time.September, 15),
	})
	require.ErrorIs(t, err, pricing.ErrNoCashflows)
}
