package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bpmsetup/internal/preflight"
	"bpmsetup/internal/runner"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the environment without changing anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			results := preflight.RunAll(cmd.Context(), cfg, runner.Env{}, runner.System{})
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderPreflightTable(results))

			for _, result := range results {
				if !result.Passed {
					fmt.Fprintln(out, "\nSome checks failed; run bpmsetup to provision the environment.")
					break
				}
			}
			return nil
		},
	}
}
