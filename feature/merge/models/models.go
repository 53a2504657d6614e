package models

import (
	"time"

	"row-merger/core/dataset"
)

// InlineRequest merges two datasets sent in the request body.
type InlineRequest struct {
	Old *dataset.Dataset `json:"old"`
	New *dataset.Dataset `json:"new"`
	// Threshold overrides the configured default when set.
	Threshold *float64 `json:"threshold,omitempty"`
	// Output optionally saves the result to an object (s3://key) or table (table://name).
	Output string `json:"output,omitempty"`
}

// RefRequest merges two datasets addressed by reference.
type RefRequest struct {
	Old       string   `json:"old"`
	New       string   `json:"new"`
	Threshold *float64 `json:"threshold,omitempty"`
	Output    string   `json:"output,omitempty"`
	// Save writes the result under the configured output prefix when Output is empty.
	Save bool `json:"save,omitempty"`
}

// Summary describes one merge.
type Summary struct {
	OldRows       int     `json:"old_rows"`
	NewRows       int     `json:"new_rows"`
	Groups        int     `json:"groups"`
	MergedGroups  int     `json:"merged_groups"`
	Singletons    int     `json:"singletons"`
	BlankRows     int     `json:"blank_rows"`
	DuplicateKeys int     `json:"duplicate_keys"`
	OutputRows    int     `json:"output_rows"`
	Threshold     float64 `json:"threshold"`
	DurationMS    int64   `json:"duration_ms"`
}

// Result is the outcome of a merge.
type Result struct {
	RunID   string     `json:"run_id"`
	Header  []string   `json:"header,omitempty"`
	Rows    [][]string `json:"rows"`
	Output  string     `json:"output,omitempty"`
	Cached  bool       `json:"cached"`
	Summary Summary    `json:"summary"`
}

// ScoreResponse is the similarity of two strings.
type ScoreResponse struct {
	A     string  `json:"a"`
	B     string  `json:"b"`
	Score float64 `json:"score"`
}

// MergeRun is a persisted record of a completed merge.
type MergeRun struct {
	ID            string    `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	OldSource     string    `gorm:"column:old_source;type:varchar(512)" json:"old_source"`
	NewSource     string    `gorm:"column:new_source;type:varchar(512)" json:"new_source"`
	Output        string    `gorm:"column:output;type:varchar(512)" json:"output,omitempty"`
	Threshold     float64   `gorm:"column:threshold" json:"threshold"`
	OldRows       int       `gorm:"column:old_rows" json:"old_rows"`
	NewRows       int       `gorm:"column:new_rows" json:"new_rows"`
	Groups        int       `gorm:"column:groups_count" json:"groups"`
	MergedGroups  int       `gorm:"column:merged_groups" json:"merged_groups"`
	Singletons    int       `gorm:"column:singletons" json:"singletons"`
	BlankRows     int       `gorm:"column:blank_rows" json:"blank_rows"`
	DuplicateKeys int       `gorm:"column:duplicate_keys" json:"duplicate_keys"`
	OutputRows    int       `gorm:"column:output_rows" json:"output_rows"`
	Cached        bool      `gorm:"column:cached" json:"cached"`
	DurationMS    int64     `gorm:"column:duration_ms" json:"duration_ms"`
	CreatedAt     time.Time `gorm:"column:created_at;index" json:"created_at"`
}

func (MergeRun) TableName() string {
	return "merge_runs"
}

// NewMergeRun builds a history record from a merge result.
func NewMergeRun(res *Result, oldSource, newSource string) *MergeRun {
	s := res.Summary
	return &MergeRun{
		ID:            res.RunID,
		OldSource:     oldSource,
		NewSource:     newSource,
		Output:        res.Output,
		Threshold:     s.Threshold,
		OldRows:       s.OldRows,
		NewRows:       s.NewRows,
		Groups:        s.Groups,
		MergedGroups:  s.MergedGroups,
		Singletons:    s.Singletons,
		BlankRows:     s.BlankRows,
		DuplicateKeys: s.DuplicateKeys,
		OutputRows:    s.OutputRows,
		Cached:        res.Cached,
		DurationMS:    s.DurationMS,
	}
}
