package cmd

import (
	"context"
	"fmt"
	"os"

	"row-merger/core/dataset"
	"row-merger/feature/merge"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the merge command
	mergeOld       string
	mergeNew       string
	mergeOut       string
	mergeThreshold float64
	mergeDelimiter string
	mergeNoHeader  bool
	mergeNormalize bool
	mergeJSON      bool
)

// mergeCmd merges two datasets.
var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge an old and a new dataset, collapsing similar rows",
	Long: `Merge combines the rows of two datasets. Rows whose text scores at or above
the threshold against an earlier row are folded into its group, and each group
emits its best-matching row. Output rows are sorted by the group's first row.

Datasets are referenced as:
  path/to/file.csv     local file (.tsv implies tab)
  s3://key             object in the configured bucket
  table://name         table in the configured database

Examples:
  # Merge two local files to stdout
  merge --old old.csv --new new.csv

  # Merge objects into a table with a stricter threshold
  merge --old s3://crm/2023.csv --new s3://crm/2024.csv --out table://contacts --threshold 90

  # Print the result and summary as JSON
  merge --old old.csv --new new.csv --json`,
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().StringVar(&mergeOld, "old", "", "Old dataset reference")
	mergeCmd.Flags().StringVar(&mergeNew, "new", "", "New dataset reference")
	mergeCmd.Flags().StringVar(&mergeOut, "out", "", "Output reference (stdout when empty)")
	mergeCmd.Flags().Float64Var(&mergeThreshold, "threshold", 0, "Minimum similarity (0-100) to group rows (default from config)")
	mergeCmd.Flags().StringVar(&mergeDelimiter, "delimiter", "", "Field delimiter (default from config)")
	mergeCmd.Flags().BoolVar(&mergeNoHeader, "no-header", false, "Treat the first record as data")
	mergeCmd.Flags().BoolVar(&mergeNormalize, "normalize", false, "Apply NFKC normalization to every field")
	mergeCmd.Flags().BoolVar(&mergeJSON, "json", false, "Print the result as JSON")
	_ = mergeCmd.MarkFlagRequired("old")
	_ = mergeCmd.MarkFlagRequired("new")

	RootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.close()

	opts, err := readOptions(cmd, rt)
	if err != nil {
		return err
	}

	resolver := rt.resolver(opts, true)
	oldSrc, err := resolver.Source(mergeOld)
	if err != nil {
		return fmt.Errorf("old: %w", err)
	}
	newSrc, err := resolver.Source(mergeNew)
	if err != nil {
		return fmt.Errorf("new: %w", err)
	}

	var sink dataset.Sink
	switch {
	case mergeOut != "":
		if sink, err = resolver.Sink(mergeOut); err != nil {
			return fmt.Errorf("out: %w", err)
		}
	case !mergeJSON:
		sink = &dataset.WriterSink{W: os.Stdout, Delimiter: opts.Delimiter}
	}

	req := merge.Request{Old: oldSrc, New: newSrc, Output: sink}
	if cmd.Flags().Changed("threshold") {
		req.Threshold = &mergeThreshold
	}

	res, err := rt.service(resolver).Merge(ctx, req)
	if err != nil {
		return err
	}

	if mergeJSON {
		out, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		fmt.Println(string(out))
	}

	rt.log.Info("Merge report",
		zap.String("run_id", res.RunID),
		zap.Int("old_rows", res.Summary.OldRows),
		zap.Int("new_rows", res.Summary.NewRows),
		zap.Int("output_rows", res.Summary.OutputRows),
		zap.Int("merged_groups", res.Summary.MergedGroups),
		zap.Int("blank_rows", res.Summary.BlankRows),
		zap.String("output", res.Output),
	)

	return nil
}

// readOptions applies the dataset flags on top of the configured defaults.
func readOptions(cmd *cobra.Command, rt *runtime) (dataset.ReadOptions, error) {
	cfg := rt.cfg.Dataset
	if cmd.Flags().Changed("delimiter") {
		cfg.Delimiter = mergeDelimiter
	}
	if mergeNoHeader {
		cfg.HasHeader = false
	}
	if mergeNormalize {
		cfg.Normalize = true
	}
	if err := cfg.Validate(); err != nil {
		return dataset.ReadOptions{}, err
	}
	return cfg.ReadOptions(), nil
}
