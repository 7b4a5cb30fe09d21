package main

import (
	"fmt"
	"os"

	"github.com/dshills/healthcheck/internal/audit"
	"github.com/dshills/healthcheck/internal/bank"
	"github.com/dshills/healthcheck/internal/config"
	"github.com/dshills/healthcheck/internal/logger"
	"github.com/dshills/healthcheck/internal/schema"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app is the per-invocation state shared by the subcommands.
type app struct {
	cfg  *config.Config
	log  *zap.Logger
	bank *audit.Bank
}

// setup resolves config, builds the logger, and loads and validates the
// configured bank.
func setup(cmd *cobra.Command) (*app, error) {
	flags := cmd.Flags()
	cfgPath, _ := flags.GetString("config")

	cfg, err := config.Load(cfgPath, flags)
	if err != nil {
		return nil, exitError(3, "failed to load config: %v", err)
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		cfg.Log.Level = "debug"
	}

	log, err := logger.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return nil, exitError(3, "failed to build logger: %v", err)
	}
	if cfg.File != "" {
		log.Debug("loaded config", zap.String("file", cfg.File))
	}

	log.Debug("loading bank", zap.String("bank", cfg.Bank))
	b, err := bank.Resolve(cfg.Bank)
	if err != nil {
		return nil, exitError(3, "failed to load bank: %v", err)
	}

	errs := schema.Validate(b)
	errs = append(errs, schema.ValidateCUE(b)...)
	if len(errs) > 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "Bank validation errors:")
		for _, e := range errs {
			fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", e)
		}
		return nil, exitError(5, "bank %s failed validation", cfg.Bank)
	}
	log.Debug("bank ready",
		zap.String("name", b.Name),
		zap.Int("questions", len(b.Questions)),
		zap.Int("tiers", len(b.Tiers)),
	)

	return &app{cfg: cfg, log: log, bank: b}, nil
}

func (a *app) close() {
	_ = a.log.Sync()
}

// writeOutput writes to path, or to the command's stdout when path is empty.
func writeOutput(cmd *cobra.Command, path, output string) error {
	if path == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), output)
		return err
	}
	if err := os.WriteFile(path, []byte(output), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
