// Package reconcile merges the old and new versions of a tabular dataset.
//
// Rows are matched by similarity rather than equality, so edited, reordered or partially
// changed rows still collapse into one record. Unmatched rows from either side survive as-is.
//
// # Architecture
//
// The reconcile system consists of three main components:
//
// 1. Engine: greedy clustering. The first row left in the pool becomes the reference
// (head), every other remaining row is scored against it, and rows at or above the
// threshold join the head's MatchGroup and leave the pool. Repeat until empty.
//
// 2. MatchGroup: accumulates RowRecords (row plus score) and yields the best scoring
// member, or the key itself when nothing matched.
//
// 3. PlanCache: TTL-based caching of plans with stampede protection, for services that
// merge the same input repeatedly.
//
// # Ordering
//
// Output rows are sorted by the canonical text of each group key using ordinal
// (byte) comparison, never locale-aware collation.
//
// # Scale
//
// A merge is O(n²) comparisons. It is meant for datasets of a few thousand rows.
//
// # Usage Example
//
//	merged := reconcile.Merge(oldRows, newRows, reconcile.DefaultThreshold)
//
//	// With cancellation and the full grouping
//	plan, err := reconcile.BuildPlan(ctx, oldRows, newRows, reconcile.DefaultOptions())
//	for _, g := range plan.Groups {
//	    fmt.Println(g.KeyText(), len(g.Members), g.BestScore)
//	}
package reconcile
