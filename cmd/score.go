package cmd

import (
	"fmt"

	"row-merger/core/similarity"

	"github.com/spf13/cobra"
)

// scoreCmd prints the similarity of two strings.
var scoreCmd = &cobra.Command{
	Use:   "score <a> <b>",
	Short: "Print the token similarity (0-100) of two strings",
	Long: `Score compares two strings the way merge compares rows: tokens are matched
regardless of order, and the score reflects how much text the strings share.

Example:
  score "John Doe Accounting" "Doe John Accounting"`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%.2f\n", similarity.TokenRatio(args[0], args[1]))
	},
}

func init() {
	RootCmd.AddCommand(scoreCmd)
}
