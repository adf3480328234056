package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meenmo/qldemo/integral"
	"github.com/meenmo/qldemo/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

const gaussLegendrePoints = 200

func run(args []string, stdout, stderr io.Writer) int {
	var (
		p             = integral.CallParams{Spot: 100, Strike: 110, Rate: 0.03, Vol: 0.20, Expiry: 0.5}
		accuracy      float64
		maxIterations int
		verbose       bool
		logger        *zap.Logger
	)
	cmd := &cobra.Command{
		Use:   "callintegral",
		Short: "Value a European call by integrating its payoff against the lognormal density",
		Long: `Integrates max(S_T - K, 0) times the lognormal density of S_T over
[K, 10K] with Simpson's rule and discounts at the risk-free rate.

With --verbose the Gauss-Legendre and Black-Scholes values are printed as
cross-checks.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger = logging.NewWriter(stderr, verbose)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s := integral.NewSimpson(accuracy, maxIterations)
			v, err := integral.PriceCallByIntegration(p, s)
			if err != nil {
				return err
			}
			logger.Debug("integrated", zap.Int("evaluations", s.Evaluations()))
			fmt.Fprintf(stdout, "Call option value is: %.6g\n", v)
			if !verbose {
				return nil
			}

			gl, err := integral.PriceCallByGaussLegendre(p, gaussLegendrePoints)
			if err != nil {
				return err
			}
			bs, err := integral.BlackScholesCall(p)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Gauss-Legendre (%d points): %.10f\n", gaussLegendrePoints, gl)
			fmt.Fprintf(stdout, "Black-Scholes closed form: %.10f\n", bs)
			fmt.Fprintf(stdout, "Simpson evaluations: %d\n", s.Evaluations())
			return nil
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	f := cmd.Flags()
	f.Float64Var(&p.Spot, "spot", p.Spot, "spot price")
	f.Float64Var(&p.Strike, "strike", p.Strike, "strike price")
	f.Float64Var(&p.Rate, "rate", p.Rate, "continuously compounded risk-free rate")
	f.Float64Var(&p.Vol, "vol", p.Vol, "lognormal volatility")
	f.Float64Var(&p.Expiry, "expiry", p.Expiry, "time to expiry in years")
	f.Float64Var(&accuracy, "accuracy", 1e-5, "Simpson absolute accuracy")
	f.IntVar(&maxIterations, "max-iterations", 1000, "Simpson refinement limit")
	f.BoolVarP(&verbose, "verbose", "v", false, "print cross-checks and log diagnostics")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}
