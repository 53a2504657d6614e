package reconcile

import (
	"context"
	"sort"

	"row-merger/core/similarity"
)

// poolEntry is a row waiting to be grouped, with its canonical text precomputed.
type poolEntry struct {
	fields []string
	text   string
}

// Merge collapses old and new rows into one row per logical record.
// Rows scoring at least threshold against a reference row are grouped with it and
// the best scoring variant of each group is kept. Output is sorted by the key text
// of each group and carries no header. The inputs are not modified.
func Merge(oldRows, newRows [][]string, threshold float64) [][]string {
	// Background context never cancels, so BuildPlan cannot fail here.
	plan, _ := BuildPlan(context.Background(), oldRows, newRows, Options{Threshold: threshold})
	return plan.Rows()
}

// MergeContext is Merge with options and cancellation. The context is checked
// once per reference row.
func MergeContext(ctx context.Context, oldRows, newRows [][]string, opts Options) ([][]string, error) {
	plan, err := BuildPlan(ctx, oldRows, newRows, opts)
	if err != nil {
		return nil, err
	}
	return plan.Rows(), nil
}

// BuildPlan groups old and new rows and returns every group with its members and scores.
// It does NOT emit rows; use MergePlan.Rows for that.
//
// The first remaining row becomes the reference (head). Every other remaining row is
// scored against it, scanning from the end of the pool; rows at or above the threshold
// join the head's group and leave the pool. The head leaves the pool last. This repeats
// until the pool is empty, so the work is O(n²) comparisons.
func BuildPlan(ctx context.Context, oldRows, newRows [][]string, opts Options) (*MergePlan, error) {
	score := opts.scorer()
	pool := buildPool(oldRows, newRows)

	groups := make(map[string]*MatchGroup)
	var blank []*MatchGroup
	duplicates := 0

	for len(pool) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		head := pool[0]

		group, exists := groups[head.text]
		if exists {
			duplicates++
		} else {
			group = NewMatchGroup(head.fields)
		}

		for j := len(pool) - 1; j >= 1; j-- {
			candidate := pool[j]
			s := score(head.text, candidate.text)
			if s >= opts.Threshold {
				group.Add(RowRecord{Fields: candidate.fields, Score: s})
				pool = append(pool[:j], pool[j+1:]...)
			}
		}

		if similarity.IsBlank(head.text) {
			blank = append(blank, group)
		} else {
			groups[head.text] = group
		}

		pool = pool[1:]
	}

	sorted := make([]*MatchGroup, 0, len(groups))
	for _, g := range groups {
		sorted = append(sorted, g)
	}

	// Ordinal comparison keeps output identical across platforms and locales.
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].KeyText() < sorted[j].KeyText()
	})

	plan := &MergePlan{
		Groups: sorted,
		Blank:  blank,
	}
	plan.Summary = buildSummary(plan, len(oldRows)+len(newRows), duplicates, opts.Threshold)

	return plan, nil
}

// buildPool concatenates old and new rows into a private working copy.
func buildPool(oldRows, newRows [][]string) []poolEntry {
	pool := make([]poolEntry, 0, len(oldRows)+len(newRows))
	for _, rows := range [][][]string{oldRows, newRows} {
		for _, row := range rows {
			fields := make([]string, len(row))
			copy(fields, row)
			pool = append(pool, poolEntry{fields: fields, text: CanonicalText(fields)})
		}
	}
	return pool
}
