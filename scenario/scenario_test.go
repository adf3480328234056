package scenario_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/qldemo/bond"
	"github.com/meenmo/qldemo/curve"
	"github.com/meenmo/qldemo/lattice"
	"github.com/meenmo/qldemo/scenario"
	"github.com/meenmo/qldemo/utils"
)

func TestDefault_BuildsBAC(t *testing.T) {
	t.Parallel()

	s := scenario.Default()
	require.NoError(t, s.Validate())
	assert.Equal(t, utils.Date(2007, time.October, 16), s.Evaluation())

	b, err := s.CallableBond()
	require.NoError(t, err)
	assert.Len(t, b.Coupons(), 32)
	assert.Len(t, b.Callabilities, 24)
	assert.Equal(t, utils.Date(2012, time.June, 15), b.Callabilities[23].Date)
	assert.Equal(t, utils.Date(2007, time.October, 19), b.SettlementDate(s.Evaluation()))

	c, err := s.FlatCurve()
	require.NoError(t, err)
	assert.Equal(t, curve.Semiannual, c.Rate().Frequency)
	assert.Equal(t, s.Evaluation(), c.ReferenceDate())

	y, err := s.YieldConventions()
	require.NoError(t, err)
	assert.Equal(t, curve.Quarterly, y.Frequency)
	assert.Equal(t, 1000, y.MaxIterations)

	ref, ok := s.ReferenceFor(lattice.Epsilon)
	require.True(t, ok)
	assert.Equal(t, 5.47, ref.YieldPct)
}

func TestParse_OverlaysDefault(t *testing.T) {
	t.Parallel()

	s, err := scenario.Parse([]byte(`
name: shorter run
model:
  sigmas: [0.02]
  time_steps: 80
calls:
  type: PUT
`))
	require.NoError(t, err)
	assert.Equal(t, "shorter run", s.Name)
	assert.Equal(t, []float64{0.02}, s.Model.Sigmas)
	assert.Equal(t, 80, s.Model.TimeSteps)
	assert.Equal(t, 0.03, s.Model.Reversion)
	assert.Equal(t, 0.0465, s.Bond.Coupon)

	b, err := s.CallableBond()
	require.NoError(t, err)
	assert.Equal(t, bond.Put, b.Callabilities[0].Type)
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"bad date":        "evaluation_date: 16/10/2007",
		"bad day count":   "curve: {day_count: BUS/252}",
		"no frequency":    "curve: {frequency: NONE}",
		"bad calendar":    "bond: {calendar: MARS}",
		"reversed bond":   "bond: {maturity: 2003-01-01}",
		"negative sigma":  "model: {sigmas: [-0.01]}",
		"zero sigma":      "model: {sigmas: [0.01, 0]}",
		"infinite sigma":  "model: {sigmas: [.inf]}",
		"no sigmas":       "model: {sigmas: []}",
		"bad call type":   "calls: {type: CONVERT}",
		"bad price type":  "calls: {price_type: MID}",
		"bad convention":  "bond: {payment_convention: NEAREST}",
		"zero time steps": "model: {time_steps: 0}",
	}
	for name, doc := range tests {
		_, err := scenario.Parse([]byte(doc))
		require.ErrorIs(t, err, scenario.ErrInvalidScenario, name)
	}

	_, err := scenario.Parse([]byte("model: [unclosed"))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "bac.yaml")
	out, err := scenario.Default().Marshal()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, out, 0o644))

	s, err := scenario.Load(path)
	require.NoError(t, err)
	assert.Equal(t, scenario.Default(), s)

	_, err = scenario.Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}
