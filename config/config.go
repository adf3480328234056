package config

// Config holds solver, lattice and quadrature parameters shared by the
// pricing and integration packages.
type Config struct {
	// YieldAccuracy is the price tolerance for the bond yield solver.
	YieldAccuracy float64

	// YieldMaxIterations is the maximum number of yield solver steps.
	YieldMaxIterations int

	// YieldGuess is the starting point of the yield solver (decimal).
	YieldGuess float64

	// TreeTimeSteps is the default number of lattice steps between the
	// reference date and the last mandatory time.
	TreeTimeSteps int

	// IntegrationAccuracy is the absolute accuracy of the Simpson integrator.
	IntegrationAccuracy float64

	// IntegrationMaxIterations caps the number of interval doublings.
	IntegrationMaxIterations int

	// CloseEnoughULPs scales machine epsilon when deciding whether two times
	// coincide on a time grid.
	CloseEnoughULPs float64

	// DerivativeThreshold is the minimum derivative magnitude.
	// Below this, Newton iteration falls back to bisection.
	DerivativeThreshold float64
}

// DefaultConfig provides the values the demo programs run with.
var DefaultConfig = Config{
	YieldAccuracy:            1e-8,
	YieldMaxIterations:       1000,
	YieldGuess:               0.05,
	TreeTimeSteps:            40,
	IntegrationAccuracy:      1e-5,
	IntegrationMaxIterations: 1000,
	CloseEnoughULPs:          42,
	DerivativeThreshold:      1e-15,
}

// cfg is the active configuration. Defaults to DefaultConfig.
var cfg = DefaultConfig

// SetConfig replaces the active configuration.
func SetConfig(c Config) {
	cfg = c
}

// GetConfig returns the active configuration.
func GetConfig() Config {
	return cfg
}
