package integral

import (
	"fmt"
	"math"

	gaussian "github.com/chobie/go-gaussian"
	"gonum.org/v1/gonum/stat/distuv"
)

// CallParams describe a European call under Black-Scholes dynamics.
type CallParams struct {
	Spot   float64
	Strike float64
	Rate   float64
	Vol    float64
	Expiry float64
}

func (p CallParams) validate() error {
	if p.Spot <= 0 || p.Strike <= 0 || p.Vol <= 0 || p.Expiry <= 0 {
		return fmt.Errorf("invalid call parameters %+v", p)
	}
	return nil
}

// CallPayoff is max(x - strike, 0).
func CallPayoff(strike float64) func(float64) float64 {
	return func(x float64) float64 {
		return math.Max(x-strike, 0)
	}
}

// TerminalDensity is the lognormal density of the spot at expiry, with
// log-mean ln S + (r - vol^2/2) t and log-deviation vol sqrt(t).
func TerminalDensity(p CallParams) distuv.LogNormal {
	return distuv.LogNormal{
		Mu:    math.Log(p.Spot) + (p.Rate-0.5*p.Vol*p.Vol)*p.Expiry,
		Sigma: p.Vol * math.Sqrt(p.Expiry),
	}
}

// ExpectedCallPayoff is the integrand payoff(x) * density(x).
func ExpectedCallPayoff(p CallParams) func(float64) float64 {
	payoff := CallPayoff(p.Strike)
	density := TerminalDensity(p)
	return func(x float64) float64 {
		return payoff(x) * density.Prob(x)
	}
}

// Bounds is the integration range used for the call: the payoff is zero
// below the strike and the density is negligible past ten strikes.
func Bounds(p CallParams) (float64, float64) {
	return p.Strike, 10 * p.Strike
}

// PriceCallByIntegration integrates the expected payoff with s and
// discounts it at the risk-free rate.
func PriceCallByIntegration(p CallParams, s *Simpson) (float64, error) {
	if err := p.validate(); err != nil {
		return 0, fmt.Errorf("PriceCallByIntegration: %w", err)
	}
	a, b := Bounds(p)
	v, err := s.Integrate(ExpectedCallPayoff(p), a, b)
	if err != nil {
		return 0, fmt.Errorf("PriceCallByIntegration: %w", err)
	}
	return v * math.Exp(-p.Rate*p.Expiry), nil
}

// PriceCallByGaussLegendre is the same integral on an n-point rule.
func PriceCallByGaussLegendre(p CallParams, n int) (float64, error) {
	if err := p.validate(); err != nil {
		return 0, fmt.Errorf("PriceCallByGaussLegendre: %w", err)
	}
	a, b := Bounds(p)
	return GaussLegendre(ExpectedCallPayoff(p), a, b, n) * math.Exp(-p.Rate*p.Expiry), nil
}

// BlackScholesCall is the closed-form call value.
func BlackScholesCall(p CallParams) (float64, error) {
	if err := p.validate(); err != nil {
		return 0, fmt.Errorf("BlackScholesCall: %w", err)
	}
	std := p.Vol * math.Sqrt(p.Expiry)
	d1 := (math.Log(p.Spot/p.Strike) + (p.Rate+0.5*p.Vol*p.Vol)*p.Expiry) / std
	d2 := d1 - std
	n := gaussian.NewGaussian(0, 1)
	return p.Spot*n.Cdf(d1) - p.Strike*math.Exp(-p.Rate*p.Expiry)*n.Cdf(d2), nil
}
