package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dshills/healthcheck/internal/answers"
	"github.com/dshills/healthcheck/internal/audit"
	"github.com/dshills/healthcheck/internal/bank"
	"github.com/dshills/healthcheck/internal/render"
	"github.com/dshills/healthcheck/internal/schema"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type scoreFlags struct {
	answers         []string
	out             string
	strict          bool
	requireComplete bool
	failOn          string
}

func newScoreCmd() *cobra.Command {
	f := &scoreFlags{}

	cmd := &cobra.Command{
		Use:   "score [answers-file]",
		Short: "Score an answer set and print the result",
		Long: `Score an answer set against the question bank.

Answers come from an optional YAML or JSON file mapping question ID to
option index (0-based), and from repeated --answer id=index flags, which
win over the file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return runScore(cmd, a, path, f)
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVarP(&f.answers, "answer", "a", nil, "Answer as id=index (may be repeated)")
	flags.StringVar(&f.out, "out", "", "Output file path (default: stdout)")
	flags.BoolVar(&f.strict, "strict", false, "Reject unknown question IDs and out-of-range option indexes")
	flags.BoolVar(&f.requireComplete, "require-complete", false, "Exit non-zero unless every question is answered")
	flags.StringVar(&f.failOn, "fail-on", "", "Exit non-zero if the result tier is at or below this tier ID")

	return cmd
}

func runScore(cmd *cobra.Command, a *app, path string, f *scoreFlags) error {
	input := audit.Input{Bank: a.bank.Name, BankTitle: a.bank.Title}

	// 1. Collect answers
	set := audit.AnswerSet{}
	if path != "" {
		a.log.Debug("loading answers", zap.String("file", path))
		af, err := answers.Load(path)
		if err != nil {
			return exitError(3, "failed to load answers: %v", err)
		}
		set = af.Answers
		input.AnswersFile = filepath.Base(af.FilePath)
		input.AnswersHash = af.Hash
	}
	if len(f.answers) > 0 {
		flagSet, err := answers.Parse(f.answers)
		if err != nil {
			return exitError(3, "invalid --answer: %v", err)
		}
		set = answers.Merge(set, flagSet)
	}
	a.log.Debug("collected answers", zap.Int("count", len(set)))

	// 2. Validate
	if f.strict {
		if errs := schema.ValidateAnswers(a.bank, set); len(errs) > 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), "Answer validation errors:")
			for _, e := range errs {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", e)
			}
			return exitError(5, "answers failed validation")
		}
	}

	// 3. Fail-on threshold must name a real tier before anything is printed
	failRank := 0
	if f.failOn != "" {
		r, ok := tierRank(a.bank, f.failOn)
		if !ok {
			return exitError(3, "unknown --fail-on tier %q (have %s)", f.failOn, strings.Join(tierIDs(a.bank), ", "))
		}
		failRank = r
	}

	// 4. Score
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

	// 5. Output
	output, err := formatReport(rep, a.cfg.Format, render.ConsoleOptions{
		Color:     a.cfg.Color && f.out == "",
		Breakdown: a.cfg.Breakdown,
		Width:     a.cfg.Width,
	})
	if err != nil {
		return err
	}
	if f.out != "" {
		a.log.Debug("writing output", zap.String("file", f.out))
	}
	if err := writeOutput(cmd, f.out, output); err != nil {
		return err
	}

	// 6. Exit code
	if f.requireComplete && !rep.Progress.Complete {
		return exitError(4, "answered %d of %d questions (--require-complete)", rep.Progress.Answered, rep.Progress.Total)
	}
	if failRank > 0 && rep.Result.Rank <= failRank {
		return exitError(2, "result tier %s is at or below fail threshold %s", rep.Result.Tier, f.failOn)
	}
	return nil
}

func buildReport(b *audit.Bank, set audit.AnswerSet, input audit.Input) (*audit.Report, error) {
	hash, err := bank.Hash(b)
	if err != nil {
		return nil, err
	}
	input.BankHash = hash
	return &audit.Report{
		Tool:      "healthcheck",
		Version:   version,
		Input:     input,
		Progress:  audit.ComputeProgress(b, set),
		Result:    audit.ComputeResult(b, set),
		Breakdown: audit.ComputeBreakdown(b, set),
	}, nil
}

func formatReport(rep *audit.Report, format string, opts render.ConsoleOptions) (string, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal output: %w", err)
		}
		return string(data) + "\n", nil
	case "md":
		return render.Markdown(rep), nil
	case "console":
		return render.Console(rep, opts), nil
	default:
		return "", exitError(3, "unknown format: %s", format)
	}
}

// tierRank returns the 1-based rank of the tier with the given ID, matched
// case-insensitively with '-' treated as '_'.
func tierRank(b *audit.Bank, id string) (int, bool) {
	want := strings.ReplaceAll(strings.ToUpper(id), "-", "_")
	for i, t := range b.Tiers {
		if strings.ReplaceAll(strings.ToUpper(t.ID), "-", "_") == want {
			return i + 1, true
		}
	}
	return 0, false
}

func tierIDs(b *audit.Bank) []string {
	ids := make([]string, len(b.Tiers))
	for i, t := range b.Tiers {
		ids[i] = t.ID
	}
	return ids
}
