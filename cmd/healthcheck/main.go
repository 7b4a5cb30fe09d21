package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, ee.msg)
			stop()
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "healthcheck",
		Short:         "Score a business process health-check questionnaire",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "Config file (default: .healthcheckrc.{yaml,yml,json,toml} if present)")
	flags.String("bank", "xero", "Question bank: built-in name or path to a .yaml, .json, or .toml file")
	flags.String("format", "console", "Output format: console, json, or md")
	flags.Bool("color", true, "Colour console output")
	flags.Bool("breakdown", false, "Include the per-question breakdown in console output")
	flags.Int("width", 72, "Wrap console output at this many columns")
	flags.String("log-level", "warn", "Log level: debug, info, warn, or error")
	flags.String("log-file", "", "Also write JSON logs to this file (rotated)")
	flags.BoolP("verbose", "v", false, "Log processing steps to stderr (same as --log-level debug)")

	root.AddCommand(newScoreCmd())
	root.AddCommand(newTakeCmd())
	root.AddCommand(newQuestionsCmd())
	root.AddCommand(newBanksCmd())

	return root
}

type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func exitError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}
