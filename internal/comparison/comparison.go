// Package comparison prices a scenario's callable bond under the short-rate
// models for every volatility in the scenario and lays the results out next
// to the reference quotes.
package comparison

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/meenmo/qldemo/bond"
	"github.com/meenmo/qldemo/curve"
	"github.com/meenmo/qldemo/model"
	"github.com/meenmo/qldemo/pricing"
	"github.com/meenmo/qldemo/report"
	"github.com/meenmo/qldemo/scenario"
)

// Model names accepted by Run.
const (
	HullWhite = "HullWhite"
	Vasicek   = "Vasicek"
)

// Priced is one model's clean price and yield for one volatility.
type Priced struct {
	Model      string
	Sigma      float64
	CleanPrice float64
	YieldPct   float64
	Iterations int
}

// Section groups the model results of one volatility with its reference.
type Section struct {
	Sigma        float64
	Results      []Priced
	Reference    report.Quote
	HasReference bool
}

// Runner holds the market objects built once from a scenario.
type Runner struct {
	scenario *scenario.Scenario
	bond     *bond.CallableFixedRateBond
	curve    *curve.FlatForward
	yield    bond.YieldSpec
	logger   *zap.Logger
}

// NewRunner validates s and builds its curve, bond and yield conventions.
func NewRunner(s *scenario.Scenario, logger *zap.Logger) (*Runner, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	c, err := s.FlatCurve()
	if err != nil {
		return nil, err
	}
	b, err := s.CallableBond()
	if err != nil {
		return nil, err
	}
	y, err := s.YieldConventions()
	if err != nil {
		return nil, err
	}
	return &Runner{scenario: s, bond: b, curve: c, yield: y, logger: logger}, nil
}

// Scenario returns the scenario the runner was built from.
func (r *Runner) Scenario() *scenario.Scenario { return r.scenario }

// HullWhite returns the curve-fitted model for sigma.
func (r *Runner) HullWhite(sigma float64) (*model.HullWhite, error) {
	return model.NewHullWhite(r.curve, r.scenario.Model.Reversion, sigma)
}

// Vasicek returns the unfitted model for sigma.
func (r *Runner) Vasicek(sigma float64) (*model.Vasicek, error) {
	m := r.scenario.Model
	return model.NewVasicek(m.VasicekR0, m.Reversion, m.VasicekMean, sigma, 0)
}

func (r *Runner) build(name string, sigma float64) (model.ShortRateModel, error) {
	switch name {
	case HullWhite:
		return r.HullWhite(sigma)
	case Vasicek:
		return r.Vasicek(sigma)
	default:
		return nil, fmt.Errorf("unknown model %q", name)
	}
}

// Price values the bond under m and solves for its yield.
func (r *Runner) Price(m model.ShortRateModel, sigma float64) (Priced, error) {
	engine := pricing.NewTreeCallableBondEngine(m, r.scenario.Model.TimeSteps, r.curve, r.logger)
	res, err := r.bond.Price(engine, r.scenario.Evaluation())
	if err != nil {
		return Priced{}, fmt.Errorf("%s sigma=%g: %w", m.Name(), sigma, err)
	}
	y, err := r.bond.YieldOf(res, r.yield)
	if err != nil {
		return Priced{}, fmt.Errorf("%s sigma=%g: %w", m.Name(), sigma, err)
	}
	r.logger.Debug("priced",
		zap.String("model", m.Name()),
		zap.Float64("sigma", sigma),
		zap.Float64("dirty", res.DirtyPrice),
		zap.Float64("accrued", res.Accrued),
		zap.Int("yield_iterations", y.Iterations),
	)
	return Priced{
		Model:      m.Name(),
		Sigma:      sigma,
		CleanPrice: res.CleanPrice,
		YieldPct:   100 * y.Yield,
		Iterations: y.Iterations,
	}, nil
}

// Run prices every scenario volatility under models, in the order given.
func (r *Runner) Run(models ...string) ([]Section, error) {
	if len(models) == 0 {
		models = []string{Vasicek, HullWhite}
	}
	sections := make([]Section, 0, len(r.scenario.Model.Sigmas))
	for _, sigma := range r.scenario.Model.Sigmas {
		sec := Section{Sigma: sigma}
		sec.Reference, sec.HasReference = r.scenario.ReferenceFor(sigma)
		for _, name := range models {
			m, err := r.build(name, sigma)
			if err != nil {
				return nil, err
			}
			p, err := r.Price(m, sigma)
			if err != nil {
				return nil, err
			}
			sec.Results = append(sec.Results, p)
		}
		sections = append(sections, sec)
	}
	return sections, nil
}

func label(name string) string {
	switch name {
	case Vasicek:
		return report.VasicekLabel
	case HullWhite:
		return report.HullWhiteLabel
	}
	return fmt.Sprintf("%-27s", "QL "+name+" price/yld (%)")
}

// Print writes each section as a volatility header, one line per model and
// the reference line, followed by a blank line.
func Print(w io.Writer, sections []Section) {
	for _, sec := range sections {
		fmt.Fprintln(w, report.SigmaHeader(sec.Sigma))
		for _, p := range sec.Results {
			fmt.Fprintln(w, report.PriceYield(label(p.Model), p.CleanPrice, p.YieldPct))
		}
		fmt.Fprintln(w, report.ReferenceLine(sec.Reference, sec.HasReference))
		fmt.Fprintln(w)
	}
}

// Rows flattens sections into CSV rows.
func Rows(sections []Section) []report.Row {
	var rows []report.Row
	for _, sec := range sections {
		var ref *report.Quote
		if sec.HasReference {
			q := sec.Reference
			ref = &q
		}
		for _, p := range sec.Results {
			rows = append(rows, report.NewRow(p.Sigma, p.Model, p.CleanPrice, p.YieldPct, ref))
		}
	}
	return rows
}

// Banner writes the description of the scenario printed before the table.
func Banner(w io.Writer, s *scenario.Scenario, models ...string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "This example prices a callable fixed rate bond using")
	for _, name := range models {
		switch name {
		case HullWhite:
			fmt.Fprintf(w, "Hull White model w/ reversion parameter = %g\n", s.Model.Reversion)
		case Vasicek:
			fmt.Fprintf(w, "Vasicek model w/ long term mean & r0 = %g\n", s.Model.VasicekMean)
			fmt.Fprintln(w, "& same reversion parameter")
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "The bond:")
	fmt.Fprintf(w, "%s  ISIN: %s\n", s.Name, s.ISIN)
	fmt.Fprintln(w, "roughly five year tenor, quarterly coupon and call dates")
	fmt.Fprintf(w, "reference date is : %s\n\n", report.LongDate(s.Evaluation()))
}
