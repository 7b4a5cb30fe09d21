package main

import (
	"fmt"
	"strings"

	"github.com/dshills/healthcheck/internal/bank"
	"github.com/spf13/cobra"
)

func newQuestionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "questions",
		Short: "Print the questions, options, and tiers of the bank",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			_, err = fmt.Fprint(cmd.OutOrStdout(), bank.FormatText(a.bank))
			return err
		},
	}
}

func newBanksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "banks",
		Short: "List the built-in question banks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := bank.List()
			if err != nil {
				return err
			}
			for _, name := range names {
				b, err := bank.LoadBuiltin(name)
				if err != nil {
					return exitError(5, "built-in bank %s: %v", name, err)
				}
				title := strings.TrimSpace(b.Title)
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s (%d questions)\n", name, title, len(b.Questions))
			}
			return nil
		},
	}
}
