package main

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/meenmo/qldemo/internal/comparison"
	"github.com/meenmo/qldemo/internal/logging"
	"github.com/meenmo/qldemo/scenario"
)

const sigma = 0.01

func main() {
	logger, err := logging.New(false)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	code := run(scenario.Default(), os.Stdout, os.Stderr, logger)
	_ = logger.Sync()
	os.Exit(code)
}

func run(s *scenario.Scenario, stdout, stderr io.Writer, logger *zap.Logger) int {
	runner, err := comparison.NewRunner(s, logger)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	hw, err := runner.HullWhite(sigma)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	p, err := runner.Price(hw, sigma)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	fmt.Fprintf(stdout, "%s  ISIN: %s\n", s.Name, s.ISIN)
	fmt.Fprintf(stdout, "Hull-White a=%.2f sigma=%.2f%%, %d steps\n", s.Model.Reversion, 100*sigma, s.Model.TimeSteps)
	fmt.Fprintf(stdout, "Clean price: %.4f\n", p.CleanPrice)
	fmt.Fprintf(stdout, "Yield (%%): %.4f\n", p.YieldPct)
	if ref, ok := s.ReferenceFor(sigma); ok {
		fmt.Fprintf(stdout, "Bloomberg: %.2f / %.2f\n", ref.Price, ref.YieldPct)
	}
	return 0
}
