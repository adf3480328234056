package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meenmo/qldemo/internal/comparison"
	"github.com/meenmo/qldemo/internal/logging"
	"github.com/meenmo/qldemo/report"
	"github.com/meenmo/qldemo/scenario"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	scenarioPath string
	csvPath      string
	verbose      bool
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		opts   options
		logger *zap.Logger
	)
	cmd := &cobra.Command{
		Use:   "callablebond",
		Short: "Price a callable bond under Hull-White and Vasicek trees",
		Long: `Prices the scenario's callable fixed rate bond on trinomial short-rate
lattices for each volatility in the scenario and prints Vasicek and
Hull-White clean prices and yields next to the Bloomberg OAS1 quotes.

Without --scenario the BAC 4.65 09/15/12 bond is used.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger = logging.NewWriter(stderr, opts.verbose)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return price(opts, logger, stdout)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.Flags().StringVar(&opts.scenarioPath, "scenario", "", "YAML scenario overlaid on the default bond")
	cmd.Flags().StringVar(&opts.csvPath, "csv", "", "also write the results table to this CSV file")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log lattice and solver diagnostics to stderr")
	return cmd
}

func loadScenario(path string, logger *zap.Logger) (*scenario.Scenario, error) {
	if path == "" {
		logger.Debug("using default scenario")
		return scenario.Default(), nil
	}
	logger.Debug("loading scenario", zap.String("path", path))
	return scenario.Load(path)
}

func price(opts options, logger *zap.Logger, stdout io.Writer) error {
	start := time.Now()

	s, err := loadScenario(opts.scenarioPath, logger)
	if err != nil {
		return err
	}
	runner, err := comparison.NewRunner(s, logger)
	if err != nil {
		return err
	}

	comparison.Banner(stdout, s, comparison.HullWhite, comparison.Vasicek)
	sections, err := runner.Run(comparison.Vasicek, comparison.HullWhite)
	if err != nil {
		return err
	}
	comparison.Print(stdout, sections)

	if opts.csvPath != "" {
		if err := writeCSV(opts.csvPath, comparison.Rows(sections)); err != nil {
			return err
		}
		logger.Info("wrote results", zap.String("path", opts.csvPath))
	}

	fmt.Fprint(stdout, report.ElapsedString(time.Since(start)))
	return nil
}

func writeCSV(path string, rows []report.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := report.WriteCSV(f, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
