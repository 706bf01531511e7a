package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"backtest_backend/internal/platform/logging"
)

func main() {
	_ = godotenv.Load()
	logging.Setup()

	rootCmd := &cobra.Command{
		Use:           "backtest",
		Short:         "Replay trading signals against historical candles",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(tokenCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func tokenCmd() *cobra.Command {
	var (
		subject    string
		expiration time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a signed JWT for the backtest API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printToken(cmd.OutOrStdout(), subject, expiration)
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "Token subject (required)")
	cmd.Flags().DurationVar(&expiration, "expiration", 0, "Token lifetime (defaults to JWT_EXPIRATION or 24h)")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

func runCmd() *cobra.Command {
	var (
		file   string
		dbPath string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a backtest described by a YAML file and print the report as JSON",
		Long: `Run a backtest described by a YAML file.

Candles come from the run file's candles_file when set, otherwise from the
configured database (DB_DRIVER, SQLITE_PATH, ...). --db points at a SQLite file.

Example:
  backtest run -f run.yaml
  backtest run -f run.yaml --db data/backtest.db`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBacktest(cmd.Context(), cmd.OutOrStdout(), file, dbPath)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Run file (YAML)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
