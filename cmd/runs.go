package cmd

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var runsLimit int

// runsCmd lists the merge history.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent merges (requires a database)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		rt, err := newRuntime(ctx)
		if err != nil {
			return err
		}
		defer rt.close()

		runs, err := rt.service(rt.resolver(rt.cfg.Dataset.ReadOptions(), false)).Runs(ctx, runsLimit)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(runs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode runs: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "Maximum number of runs to list")
	RootCmd.AddCommand(runsCmd)
}
