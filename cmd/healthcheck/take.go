package main

import (
	"path/filepath"

	"github.com/dshills/healthcheck/internal/answers"
	"github.com/dshills/healthcheck/internal/audit"
	"github.com/dshills/healthcheck/internal/prompt"
	"github.com/dshills/healthcheck/internal/render"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type takeFlags struct {
	from         string
	skipAnswered bool
	out          string
}

func newTakeCmd() *cobra.Command {
	f := &takeFlags{}

	cmd := &cobra.Command{
		Use:   "take",
		Short: "Answer the questionnaire interactively",
		Long: `Ask each question in turn and print the report when done.

Type an option number, press Enter to skip, or q to stop early and score
what has been answered. Questions go to stderr so the report can be piped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			return runTake(cmd, a, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.from, "from", "", "Answers file to start from")
	flags.BoolVar(&f.skipAnswered, "skip-answered", false, "Only ask questions missing from --from")
	flags.StringVar(&f.out, "out", "", "Output file path (default: stdout)")

	return cmd
}

func runTake(cmd *cobra.Command, a *app, f *takeFlags) error {
	input := audit.Input{Bank: a.bank.Name, BankTitle: a.bank.Title}
	opts := prompt.Options{SkipAnswered: f.skipAnswered}
	if f.from != "" {
		af, err := answers.Load(f.from)
		if err != nil {
			return exitError(3, "failed to load answers: %v", err)
		}
		opts.Start = af.Answers
		input.AnswersFile = filepath.Base(af.FilePath)
	}

	set, err := prompt.Run(cmd.Context(), cmd.InOrStdin(), cmd.ErrOrStderr(), a.bank, opts)
	if err != nil {
		return exitError(1, "questionnaire interrupted: %v", err)
	}
	a.log.Debug("collected answers", zap.Int("count", len(set)))

	rep, err := buildReport(a.bank, set, input)
	if err != nil {
		return err
	}
	a.log.Info("scored",
		zap.Int("percentage", rep.Result.Percentage),
		zap.String("tier", rep.Result.Tier),
		zap.Int("answered", rep.Progress.Answered),
		zap.Int("total", rep.Progress.Total),
	)

	output, err := formatReport(rep, a.cfg.Format, render.ConsoleOptions{
		Color:     a.cfg.Color && f.out == "",
		Breakdown: a.cfg.Breakdown,
		Width:     a.cfg.Width,
	})
	if err != nil {
		return err
	}
	return writeOutput(cmd, f.out, output)
}
