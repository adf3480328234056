package comparison_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/qldemo/internal/comparison"
	"github.com/meenmo/qldemo/scenario"
)

func singleSigma(sigma float64) *scenario.Scenario {
	s := scenario.Default()
	s.Model.Sigmas = []float64{sigma}
	return s
}

func TestRunOrdersModelsAsGiven(t *testing.T) {
	t.Parallel()

	r, err := comparison.NewRunner(singleSigma(0.01), nil)
	require.NoError(t, err)

	sections, err := r.Run(comparison.Vasicek, comparison.HullWhite)
	require.NoError(t, err)
	require.Len(t, sections, 1)

	sec := sections[0]
	require.True(t, sec.HasReference)
	assert.InDelta(t, 95.68, sec.Reference.Price, 1e-12)
	require.Len(t, sec.Results, 2)
	assert.Equal(t, comparison.Vasicek, sec.Results[0].Model)
	assert.Equal(t, comparison.HullWhite, sec.Results[1].Model)
	assert.InDelta(t, 95.48, sec.Results[0].CleanPrice, 0.02)
	assert.InDelta(t, 95.64, sec.Results[1].CleanPrice, 0.02)
	assert.InDelta(t, 5.67, sec.Results[1].YieldPct, 0.02)
}

func TestRunDefaultsToBothModels(t *testing.T) {
	t.Parallel()

	r, err := comparison.NewRunner(singleSigma(0.03), nil)
	require.NoError(t, err)

	sections, err := r.Run()
	require.NoError(t, err)
	require.Len(t, sections[0].Results, 2)
}

func TestRunUnknownModel(t *testing.T) {
	t.Parallel()

	r, err := comparison.NewRunner(singleSigma(0.03), nil)
	require.NoError(t, err)

	_, err = r.Run("CIR")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CIR")
}

func TestNewRunnerRejectsInvalidScenario(t *testing.T) {
	t.Parallel()

	s := scenario.Default()
	s.Model.Sigmas = nil
	_, err := comparison.NewRunner(s, nil)
	require.ErrorIs(t, err, scenario.ErrInvalidScenario)
}

func TestPrintLayout(t *testing.T) {
	t.Parallel()

	sections := []comparison.Section{
		{
			Sigma: 0.06,
			Results: []comparison.Priced{
				{Model: comparison.Vasicek, Sigma: 0.06, CleanPrice: 88.834, YieldPct: 7.383},
				{Model: comparison.HullWhite, Sigma: 0.06, CleanPrice: 87.078, YieldPct: 7.848},
			},
		},
	}
	sections[0].Reference, sections[0].HasReference = scenario.Default().ReferenceFor(0.06)

	var buf bytes.Buffer
	comparison.Print(&buf, sections)

	want := strings.Join([]string{
		"sigma/vol (%) = 6.00",
		"QL Vasicek price/yld (%)   88.83 / 7.38",
		"QL HullWhite price/yld (%) 87.08 / 7.85",
		"Bloomberg price/yld (%)    87.16 / 7.83",
		"",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())

	rows := comparison.Rows(sections)
	require.Len(t, rows, 2)
	assert.InDelta(t, 87.078-87.16, rows[1].PriceDiff, 1e-12)
}

func TestBanner(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	comparison.Banner(&buf, scenario.Default(), comparison.HullWhite, comparison.Vasicek)
	out := buf.String()

	assert.Contains(t, out, "Hull White model w/ reversion parameter = 0.03\n")
	assert.Contains(t, out, "Vasicek model w/ long term mean & r0 = 0.055\n")
	assert.Contains(t, out, "BAC4.65 09/15/12  ISIN: US06060WBJ36\n")
	assert.True(t, strings.HasSuffix(out, "reference date is : October 16th, 2007\n\n"))
}
