package reconcile

import (
	"strings"

	"row-merger/core/similarity"
)

// DefaultThreshold is the minimum score for two rows to count as the same record.
const DefaultThreshold = 80.0

// Scorer compares the canonical text of two rows and returns a score in [0, 100].
type Scorer func(a, b string) float64

// Options controls a merge.
type Options struct {
	// Threshold is the minimum score a candidate needs to join a group.
	// It is not validated: <= 0 groups everything, > 100 groups nothing.
	Threshold float64

	// Scorer compares canonical texts. Nil means similarity.TokenRatio.
	Scorer Scorer
}

// DefaultOptions returns options with the default threshold and scorer.
func DefaultOptions() Options {
	return Options{Threshold: DefaultThreshold}
}

func (o Options) scorer() Scorer {
	if o.Scorer != nil {
		return o.Scorer
	}
	return similarity.TokenRatio
}

// CanonicalText reduces a row to the string the scorer works on: its fields
// joined by a single space.
func CanonicalText(fields []string) string {
	return strings.Join(fields, " ")
}

// RowRecord is a candidate row together with the score it achieved against
// the reference row of its group.
type RowRecord struct {
	// Fields holds the candidate's values in column order.
	Fields []string `json:"fields"`

	// Score is the similarity against the group key.
	Score float64 `json:"score"`
}

// MatchGroup collects every row considered the same logical record as Key.
type MatchGroup struct {
	// Key is the reference row the group was opened for.
	Key []string `json:"key"`

	// Members holds matched candidates in the order they were added.
	Members []RowRecord `json:"members"`

	// BestScore is the maximum member score, 0 while the group is empty.
	BestScore float64 `json:"best_score"`
}

// NewMatchGroup opens an empty group for the given reference row.
func NewMatchGroup(key []string) *MatchGroup {
	return &MatchGroup{Key: key, Members: []RowRecord{}}
}

// Add appends a record and keeps BestScore current.
func (g *MatchGroup) Add(record RowRecord) {
	g.Members = append(g.Members, record)
	if record.Score > g.BestScore {
		g.BestScore = record.Score
	}
}

// BestRecord returns the highest scoring member. The first member added wins ties.
// An empty group yields its key with score 0.
func (g *MatchGroup) BestRecord() RowRecord {
	if len(g.Members) == 0 {
		return RowRecord{Fields: g.Key, Score: 0}
	}

	best := g.Members[0]
	for _, m := range g.Members[1:] {
		if m.Score > best.Score {
			best = m
		}
	}
	return best
}

// Best returns the fields of BestRecord.
func (g *MatchGroup) Best() []string {
	return g.BestRecord().Fields
}

// KeyText returns the canonical text of the group key.
func (g *MatchGroup) KeyText() string {
	return CanonicalText(g.Key)
}

// Size counts the rows consumed into the group, key included.
func (g *MatchGroup) Size() int {
	return 1 + len(g.Members)
}

// MergePlan is the full grouping produced by BuildPlan.
type MergePlan struct {
	// Groups holds registered groups sorted by key text.
	Groups []*MatchGroup `json:"groups"`

	// Blank holds groups whose key has no non-whitespace text. They are never emitted.
	Blank []*MatchGroup `json:"blank"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a merge plan.
type PlanSummary struct {
	// InputRows is the number of old plus new rows.
	InputRows int `json:"input_rows"`

	// Groups counts registered groups, which is also the number of output rows.
	Groups int `json:"groups"`

	// MergedGroups counts groups that absorbed at least one candidate.
	MergedGroups int `json:"merged_groups"`

	// Singletons counts groups left with their key only.
	Singletons int `json:"singletons"`

	// BlankRows counts rows consumed into blank groups.
	BlankRows int `json:"blank_rows"`

	// DuplicateKeys counts heads whose canonical text already had a group.
	DuplicateKeys int `json:"duplicate_keys"`

	// Threshold is the threshold the plan was built with.
	Threshold float64 `json:"threshold"`
}
