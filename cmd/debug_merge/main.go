package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"row-merger/core/config"
	"row-merger/core/dataset"
	"row-merger/core/reconcile"
	"row-merger/core/similarity"

	"github.com/goccy/go-json"
)

// debug_merge dumps the full merge plan of two local datasets: every group with its
// members and their scores, plus the near misses just under the threshold.
func main() {
	oldPath := flag.String("old", "", "old dataset file")
	newPath := flag.String("new", "", "new dataset file")
	threshold := flag.Float64("threshold", 0, "threshold (default from config)")
	nearMiss := flag.Float64("near", 10, "report pairs within this distance below the threshold")
	flag.Parse()

	if *oldPath == "" || *newPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}
	*threshold = resolveThreshold(flag.CommandLine, *threshold, cfg.Merge.Threshold)

	opts := cfg.Dataset.ReadOptions()
	ctx := context.Background()
	oldDS, newDS, err := dataset.LoadPair(ctx,
		&dataset.FileSource{Path: *oldPath, Options: opts},
		&dataset.FileSource{Path: *newPath, Options: opts})
	if err != nil {
		log.Fatal(err)
	}

	plan, err := reconcile.BuildPlan(ctx, oldDS.Rows, newDS.Rows, reconcile.Options{Threshold: *threshold})
	if err != nil {
		log.Fatal(err)
	}

	// Near misses: pairs that scored close to, but below, the threshold
	type pair struct {
		A     string  `json:"a"`
		B     string  `json:"b"`
		Score float64 `json:"score"`
	}
	var misses []pair
	keys := make([]string, 0, len(plan.Groups))
	for _, g := range plan.Groups {
		keys = append(keys, g.KeyText())
	}
	for i := 0; i < len(keys); i++ {
		for j := i + 1; j < len(keys); j++ {
			s := similarity.TokenRatio(keys[i], keys[j])
			if s < *threshold && s >= *threshold-*nearMiss {
				misses = append(misses, pair{A: keys[i], B: keys[j], Score: s})
			}
		}
	}
	sort.Slice(misses, func(i, j int) bool { return misses[i].Score > misses[j].Score })

	out, err := json.MarshalIndent(map[string]any{
		"plan":        plan,
		"near_misses": misses,
	}, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(out))
}

// resolveThreshold returns the -threshold flag when it was given, even if negative,
// and the configured default otherwise.
func resolveThreshold(fs *flag.FlagSet, value, def float64) float64 {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "threshold" {
			set = true
		}
	})
	if set {
		return value
	}
	return def
}
