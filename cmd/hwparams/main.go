package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meenmo/qldemo/internal/comparison"
	"github.com/meenmo/qldemo/internal/logging"
	"github.com/meenmo/qldemo/lattice"
	"github.com/meenmo/qldemo/report"
	"github.com/meenmo/qldemo/scenario"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var (
		scenarioPath string
		verbose      bool
		logger       *zap.Logger
	)
	cmd := &cobra.Command{
		Use:           "hwparams",
		Short:         "Print Hull-White parameters and the Hull-White price table",
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
			s := scenario.Default()
			if scenarioPath != "" {
				var err error
				if s, err = scenario.Load(scenarioPath); err != nil {
					return err
				}
			}
			return printParams(stdout, s, logger)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "YAML scenario overlaid on the default bond")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log lattice and solver diagnostics to stderr")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func printParams(w io.Writer, s *scenario.Scenario, logger *zap.Logger) error {
	runner, err := comparison.NewRunner(s, logger)
	if err != nil {
		return err
	}
	hw, err := runner.HullWhite(lattice.Epsilon)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Pricing a callable fixed rate bond using")
	fmt.Fprintf(w, "Hull White model w/ reversion parameter = %g\n", s.Model.Reversion)
	fmt.Fprintf(w, "%s  ISIN: %s\n", s.Name, s.ISIN)
	fmt.Fprintln(w, "roughly five year tenor, quarterly coupon and call dates")
	fmt.Fprintf(w, "reference date is : %s\n\n", report.LongDate(s.Evaluation()))

	p := hw.Params()
	fmt.Fprintf(w, "a      = %.6g\n", p.A)
	fmt.Fprintf(w, "b      = %.6g\n", p.B)
	fmt.Fprintf(w, "sigma  = %.6g\n", p.Sigma)
	fmt.Fprintf(w, "lambda = %.6g\n", p.Lambda)
	fmt.Fprintf(w, "r0     = %.6g\n\n", p.R0)

	sections, err := runner.Run(comparison.HullWhite)
	if err != nil {
		return err
	}
	comparison.Print(w, sections)
	return nil
}
