package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/example/ledgerview/internal/config"
	"github.com/example/ledgerview/internal/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app carries what every subcommand needs once flags are parsed
type app struct {
	configPath string
	logLevel   string

	cfg *config.Config
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "ledgerview",
		Short: "Normalize bank transactions and build dashboard chart data",
		Long: `Ledgerview turns transaction and account records fetched from the banking
GraphQL API into display-ready transactions, balance series and
income/expense aggregates, either as one-shot commands or as a JSON service.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a TOML config file")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	cmd.AddCommand(
		newNormalizeCmd(a),
		newSeriesCmd(a),
		newDonutCmd(a),
		newMonthlyCmd(a),
		newAccountsCmd(a),
		newServeCmd(a),
	)
	return cmd
}

func (a *app) setup(logOut io.Writer) error {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	log, err := logger.NewFromConfig(cfg.Log.Level, cfg.Log.Format, logOut)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
