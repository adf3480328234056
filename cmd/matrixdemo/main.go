package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meenmo/qldemo/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

var examples = []func(w io.Writer, logger *zap.Logger) error{
	negation,
	complexOps,
	inversion,
	product,
	solve,
}

func run(args []string, stdout, stderr io.Writer) int {
	var (
		example int
		all     bool
		verbose bool
		logger  *zap.Logger
	)
	cmd := &cobra.Command{
		Use:   "matrixdemo",
		Short: "Dense matrix examples: negation, complex ops, inversion, product, LU solve",
		Long: `Runs the matrix examples:
  1  negation of a 3x3 ramp
  2  complex negation, conj, real, imag, trans, herm
  3  inversion by LU factorisation (the ramp is singular)
  4  matrix product
  5  5x5 linear system by LU factorisation and substitution

Only example 5 runs by default.`,
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
			if all {
				for i, ex := range examples {
					logger.Debug("running example", zap.Int("example", i+1))
					if err := ex(stdout, logger); err != nil {
						return fmt.Errorf("example %d: %w", i+1, err)
					}
				}
				return nil
			}
			if example < 1 || example > len(examples) {
				return fmt.Errorf("example must be between 1 and %d, got %d", len(examples), example)
			}
			if err := examples[example-1](stdout, logger); err != nil {
				return fmt.Errorf("example %d: %w", example, err)
			}
			return nil
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	cmd.Flags().IntVarP(&example, "example", "e", 5, "example to run (1-5)")
	cmd.Flags().BoolVar(&all, "all", false, "run every example")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log diagnostics to stderr")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}
