package lattice

import "math"

// Process1D is a one-dimensional diffusion described by its conditional
// mean and variance over a step.
type Process1D interface {
	X0() float64
	Expectation(t0, x0, dt float64) float64
	Variance(t0, x0, dt float64) float64
}

// OrnsteinUhlenbeck is dx = Speed (Level - x) dt + Vol dW.
type OrnsteinUhlenbeck struct {
	Speed float64
	Vol   float64
	Start float64
	Level float64
}

func (p OrnsteinUhlenbeck) X0() float64 { return p.Start }

func (p OrnsteinUhlenbeck) Expectation(_, x0, dt float64) float64 {
	return p.Level + (x0-p.Level)*math.Exp(-p.Speed*dt)
}

func (p OrnsteinUhlenbeck) Variance(_, _, dt float64) float64 {
	if p.Speed < math.Sqrt(Epsilon) {
		// Brownian limit.
		return p.Vol * p.Vol * dt
	}
	return 0.5 * p.Vol * p.Vol / p.Speed * (1 - math.Exp(-2*p.Speed*dt))
}
