// Package scenario describes the callable bond comparison run: market
// curve, bond terms, call schedule, model parameters and reference quotes.
// Scenarios are YAML documents overlaid on Default.
package scenario

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/meenmo/qldemo/bond"
	"github.com/meenmo/qldemo/calendar"
	"github.com/meenmo/qldemo/curve"
	"github.com/meenmo/qldemo/lattice"
	"github.com/meenmo/qldemo/report"
	"github.com/meenmo/qldemo/utils"
)

// ErrInvalidScenario wraps every validation failure.
var ErrInvalidScenario = errors.New("invalid scenario")

// Scenario is the full input of the callable bond programs.
type Scenario struct {
	Name           string         `yaml:"name"`
	ISIN           string         `yaml:"isin"`
	EvaluationDate string         `yaml:"evaluation_date"`
	Curve          CurveSpec      `yaml:"curve"`
	Bond           BondSpec       `yaml:"bond"`
	Calls          CallSpec       `yaml:"calls"`
	Model          ModelSpec      `yaml:"model"`
	Yield          YieldSpec      `yaml:"yield"`
	References     []report.Quote `yaml:"references"`
}

// CurveSpec is a flat yield curve quote.
type CurveSpec struct {
	Rate        float64 `yaml:"rate"`
	DayCount    string  `yaml:"day_count"`
	Compounding string  `yaml:"compounding"`
	Frequency   string  `yaml:"frequency"`
}

// BondSpec holds the fixed-rate bond terms.
type BondSpec struct {
	DatedDate         string  `yaml:"dated_date"`
	IssueDate         string  `yaml:"issue_date"`
	Maturity          string  `yaml:"maturity"`
	Coupon            float64 `yaml:"coupon"`
	TenorMonths       int     `yaml:"tenor_months"`
	SettlementDays    int     `yaml:"settlement_days"`
	Calendar          string  `yaml:"calendar"`
	DayCount          string  `yaml:"day_count"`
	AccrualConvention string  `yaml:"accrual_convention"`
	PaymentConvention string  `yaml:"payment_convention"`
	Redemption        float64 `yaml:"redemption"`
	FaceAmount        float64 `yaml:"face_amount"`
}

// CallSpec is a regular call schedule.
type CallSpec struct {
	FirstDate  string  `yaml:"first_date"`
	Count      int     `yaml:"count"`
	StepMonths int     `yaml:"step_months"`
	Price      float64 `yaml:"price"`
	PriceType  string  `yaml:"price_type"`
	Type       string  `yaml:"type"`
	Calendar   string  `yaml:"calendar"`
}

// ModelSpec are the short-rate model inputs shared by both models. The
// Vasicek long-run mean and initial rate are separate because Vasicek is
// not fitted to the curve.
type ModelSpec struct {
	Reversion   float64   `yaml:"reversion"`
	VasicekR0   float64   `yaml:"vasicek_r0"`
	VasicekMean float64   `yaml:"vasicek_mean"`
	Sigmas      []float64 `yaml:"sigmas"`
	TimeSteps   int       `yaml:"time_steps"`
}

// YieldSpec are the conventions the yield is quoted in.
type YieldSpec struct {
	DayCount      string  `yaml:"day_count"`
	Compounding   string  `yaml:"compounding"`
	Frequency     string  `yaml:"frequency"`
	Accuracy      float64 `yaml:"accuracy"`
	MaxIterations int     `yaml:"max_iterations"`
}

// Default is the BAC 4.65 09/15/12 callable bond against the Bloomberg
// OAS1 flat 5.5% semiannual curve.
func Default() *Scenario {
	return &Scenario{
		Name:           "BAC4.65 09/15/12",
		ISIN:           "US06060WBJ36",
		EvaluationDate: "2007-10-16",
		Curve: CurveSpec{
			Rate:        0.055,
			DayCount:    string(utils.ActActBond),
			Compounding: "COMPOUNDED",
			Frequency:   "SEMIANNUAL",
		},
		Bond: BondSpec{
			DatedDate:         "2004-09-16",
			IssueDate:         "2004-09-16",
			Maturity:          "2012-09-15",
			Coupon:            0.0465,
			TenorMonths:       3,
			SettlementDays:    3,
			Calendar:          string(calendar.USGovernmentBond),
			DayCount:          string(utils.ActActBond),
			AccrualConvention: string(calendar.Unadjusted),
			PaymentConvention: string(calendar.Unadjusted),
			Redemption:        100,
			FaceAmount:        100,
		},
		Calls: CallSpec{
			FirstDate:  "2006-09-15",
			Count:      24,
			StepMonths: 3,
			Price:      100,
			PriceType:  string(bond.Clean),
			Type:       string(bond.Call),
			Calendar:   string(calendar.NullCalendar),
		},
		Model: ModelSpec{
			Reversion:   0.03,
			VasicekR0:   0.055,
			VasicekMean: 0.055,
			Sigmas:      []float64{lattice.Epsilon, 0.01, 0.03, 0.06, 0.12},
			TimeSteps:   40,
		},
		Yield: YieldSpec{
			DayCount:      string(utils.ActActBond),
			Compounding:   "COMPOUNDED",
			Frequency:     "QUARTERLY",
			Accuracy:      1e-8,
			MaxIterations: 1000,
		},
		References: report.BloombergBAC(),
	}
}

// Load reads a YAML scenario from path on top of Default.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (*Scenario, error) {
	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Marshal renders the scenario as YAML.
func (s *Scenario) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidScenario)
}

// Validate checks that every field can be turned into a market object.
func (s *Scenario) Validate() error {
	if _, err := utils.ParseDate(s.EvaluationDate); err != nil {
		return invalid("evaluation_date %q", s.EvaluationDate)
	}
	if _, err := s.FlatCurve(); err != nil {
		return err
	}
	if _, err := s.CallableBond(); err != nil {
		return err
	}
	if _, err := s.YieldConventions(); err != nil {
		return err
	}
	if s.Model.Reversion < 0 {
		return invalid("model.reversion %g is negative", s.Model.Reversion)
	}
	if len(s.Model.Sigmas) == 0 {
		return invalid("model.sigmas is empty")
	}
	for _, sigma := range s.Model.Sigmas {
		if !(sigma > 0) || math.IsInf(sigma, 0) {
			return invalid("model.sigmas contains %g, volatilities must be positive", sigma)
		}
	}
	if s.Model.TimeSteps <= 0 {
		return invalid("model.time_steps must be positive")
	}
	return nil
}

// Evaluation returns the evaluation date.
func (s *Scenario) Evaluation() time.Time {
	d, _ := utils.ParseDate(s.EvaluationDate)
	return d
}

// FlatCurve builds the market curve anchored at the evaluation date.
func (s *Scenario) FlatCurve() (*curve.FlatForward, error) {
	eval, err := utils.ParseDate(s.EvaluationDate)
	if err != nil {
		return nil, invalid("evaluation_date %q", s.EvaluationDate)
	}
	rate, err := interestRate(s.Curve.Rate, s.Curve.DayCount, s.Curve.Compounding, s.Curve.Frequency)
	if err != nil {
		return nil, invalid("curve: %v", err)
	}
	return curve.NewFlatForward(eval, rate), nil
}

func interestRate(r float64, dc, comp, freq string) (curve.InterestRate, error) {
	dayCount, err := utils.ParseDayCount(dc)
	if err != nil {
		return curve.InterestRate{}, err
	}
	c, err := curve.ParseCompounding(comp)
	if err != nil {
		return curve.InterestRate{}, err
	}
	f, err := curve.ParseFrequency(freq)
	if err != nil {
		return curve.InterestRate{}, err
	}
	return curve.NewInterestRate(r, dayCount, c, f)
}

// YieldConventions returns the yield solver settings.
func (s *Scenario) YieldConventions() (bond.YieldSpec, error) {
	y, err := interestRate(0, s.Yield.DayCount, s.Yield.Compounding, s.Yield.Frequency)
	if err != nil {
		return bond.YieldSpec{}, invalid("yield: %v", err)
	}
	return bond.YieldSpec{
		DayCount:      y.DayCount,
		Compounding:   y.Compounding,
		Frequency:     y.Frequency,
		Accuracy:      s.Yield.Accuracy,
		MaxIterations: s.Yield.MaxIterations,
	}, nil
}

// CallableBond builds the bond and its call schedule.
func (s *Scenario) CallableBond() (*bond.CallableFixedRateBond, error) {
	b := s.Bond
	dated, err := utils.ParseDate(b.DatedDate)
	if err != nil {
		return nil, invalid("bond.dated_date %q", b.DatedDate)
	}
	issue := dated
	if b.IssueDate != "" {
		if issue, err = utils.ParseDate(b.IssueDate); err != nil {
			return nil, invalid("bond.issue_date %q", b.IssueDate)
		}
	}
	maturity, err := utils.ParseDate(b.Maturity)
	if err != nil {
		return nil, invalid("bond.maturity %q", b.Maturity)
	}
	cal, err := calendar.ParseCalendar(b.Calendar)
	if err != nil {
		return nil, invalid("bond.calendar: %v", err)
	}
	dc, err := utils.ParseDayCount(b.DayCount)
	if err != nil {
		return nil, invalid("bond.day_count: %v", err)
	}
	accrual, err := calendar.ParseConvention(b.AccrualConvention)
	if err != nil {
		return nil, invalid("bond.accrual_convention: %v", err)
	}
	payment, err := calendar.ParseConvention(b.PaymentConvention)
	if err != nil {
		return nil, invalid("bond.payment_convention: %v", err)
	}

	sched, err := bond.GenerateSchedule(bond.ScheduleSpec{
		Effective:   dated,
		Termination: maturity,
		TenorMonths: b.TenorMonths,
		Calendar:    cal,
		Convention:  accrual,
		Rule:        bond.Backward,
	})
	if err != nil {
		return nil, invalid("bond schedule: %v", err)
	}

	calls, err := s.callSchedule()
	if err != nil {
		return nil, err
	}
	out, err := bond.NewCallableFixedRateBond(bond.FixedRateBond{
		SettlementDays:    b.SettlementDays,
		FaceAmount:        b.FaceAmount,
		Schedule:          sched,
		CouponRate:        b.Coupon,
		DayCount:          dc,
		PaymentConvention: payment,
		Redemption:        b.Redemption,
		IssueDate:         issue,
		Calendar:          cal,
	}, calls)
	if err != nil {
		return nil, invalid("bond: %v", err)
	}
	return out, nil
}

func (s *Scenario) callSchedule() ([]bond.Callability, error) {
	c := s.Calls
	if c.Count == 0 {
		return nil, nil
	}
	first, err := utils.ParseDate(c.FirstDate)
	if err != nil {
		return nil, invalid("calls.first_date %q", c.FirstDate)
	}
	if c.Count < 0 || c.StepMonths <= 0 || c.Price <= 0 {
		return nil, invalid("calls: count=%d step_months=%d price=%g", c.Count, c.StepMonths, c.Price)
	}
	cal, err := calendar.ParseCalendar(c.Calendar)
	if err != nil {
		return nil, invalid("calls.calendar: %v", err)
	}
	priceType := bond.PriceType(c.PriceType)
	if priceType != bond.Clean && priceType != bond.Dirty {
		return nil, invalid("calls.price_type %q", c.PriceType)
	}
	kind := bond.CallabilityType(c.Type)
	if kind != bond.Call && kind != bond.Put {
		return nil, invalid("calls.type %q", c.Type)
	}

	calls := bond.CallSchedule(first, c.Count, c.StepMonths, c.Price, cal)
	for i := range calls {
		calls[i].PriceType = priceType
		calls[i].Type = kind
	}
	return calls, nil
}

// ReferenceFor returns the quote recorded for sigma.
func (s *Scenario) ReferenceFor(sigma float64) (report.Quote, bool) {
	return report.Lookup(s.References, sigma)
}
