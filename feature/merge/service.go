package merge

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"row-merger/core/dataset"
	apperrors "row-merger/core/errors"
	"row-merger/core/reconcile"
	"row-merger/core/similarity"
	"row-merger/core/storage"
	"row-merger/feature/merge/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrHistoryDisabled is returned by history lookups when no database is configured.
var ErrHistoryDisabled = fmt.Errorf("merge history is disabled: %w", apperrors.ErrNotFound)

// Request is a merge of two sources with an optional sink for the result.
type Request struct {
	Old       dataset.Source
	New       dataset.Source
	Threshold *float64
	Output    dataset.Sink
}

// Service runs merges and keeps their history.
type Service struct {
	resolver *dataset.Resolver
	cache    *reconcile.PlanCache
	history  *History
	merge    reconcile.Config
	prefix   string
	logger   *zap.Logger
}

// NewService creates a merge service. A nil history disables run tracking.
func NewService(resolver *dataset.Resolver, history *History, mergeCfg reconcile.Config, datasetCfg dataset.Config, logger *zap.Logger) *Service {
	// Run history lives next to user tables, so outputs must never replace it.
	resolver.Protect(models.MergeRun{}.TableName())
	return &Service{
		resolver: resolver,
		cache:    reconcile.NewPlanCache(mergeCfg.CacheTTL()),
		history:  history,
		merge:    mergeCfg,
		prefix:   datasetCfg.OutputPrefix,
		logger:   logger,
	}
}

// Merge loads both sources, merges them and saves the result to the output sink if one is set.
// The output keeps the old dataset's header, or the new one's when the old has none.
func (s *Service) Merge(ctx context.Context, req Request) (*models.Result, error) {
	return s.run(ctx, uuid.NewString(), req)
}

// MergeRefs resolves the references of req and merges them.
func (s *Service) MergeRefs(ctx context.Context, req models.RefRequest) (*models.Result, error) {
	oldSrc, err := s.resolver.Source(req.Old)
	if err != nil {
		return nil, fmt.Errorf("old: %w", err)
	}
	newSrc, err := s.resolver.Source(req.New)
	if err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	runID := uuid.NewString()
	output := req.Output
	if output == "" && req.Save {
		output = dataset.ObjectScheme + s.prefix + runID + ".csv"
	}

	var sink dataset.Sink
	if output != "" {
		if sink, err = s.resolver.Sink(output); err != nil {
			return nil, fmt.Errorf("output: %w", err)
		}
	}

	return s.run(ctx, runID, Request{Old: oldSrc, New: newSrc, Threshold: req.Threshold, Output: sink})
}

// MergeInline merges two datasets supplied in memory.
func (s *Service) MergeInline(ctx context.Context, req models.InlineRequest) (*models.Result, error) {
	var sink dataset.Sink
	if req.Output != "" {
		var err error
		if sink, err = s.resolver.Sink(req.Output); err != nil {
			return nil, fmt.Errorf("output: %w", err)
		}
	}

	return s.Merge(ctx, Request{
		Old:       &dataset.MemorySource{Label: "inline:old", Dataset: req.Old},
		New:       &dataset.MemorySource{Label: "inline:new", Dataset: req.New},
		Threshold: req.Threshold,
		Output:    sink,
	})
}

// Plan loads both sources and returns the full grouping without emitting rows.
func (s *Service) Plan(ctx context.Context, req Request) (*reconcile.MergePlan, error) {
	threshold, err := s.threshold(req)
	if err != nil {
		return nil, err
	}

	oldDS, newDS, err := dataset.LoadPair(ctx, req.Old, req.New)
	if err != nil {
		return nil, err
	}

	return reconcile.BuildPlan(ctx, oldDS.Rows, newDS.Rows, reconcile.Options{Threshold: threshold})
}

// Score returns the token similarity of two strings.
func (s *Service) Score(a, b string) float64 {
	return similarity.TokenRatio(a, b)
}

// Runs lists recent merge runs.
func (s *Service) Runs(ctx context.Context, limit int) ([]models.MergeRun, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	return s.history.List(ctx, limit)
}

// Run returns one merge run.
func (s *Service) Run(ctx context.Context, id string) (*models.MergeRun, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewValidationError("id", "must be a UUID")
	}
	return s.history.Get(ctx, id)
}

// Datasets lists the CSV and TSV objects under prefix in the dataset bucket.
func (s *Service) Datasets(ctx context.Context, prefix string) ([]string, error) {
	if s.resolver.Storage == nil {
		return nil, apperrors.NewValidationError("storage", "object storage is not configured")
	}
	keys, err := storage.ListKeys(ctx, s.resolver.Storage, s.resolver.Bucket, strings.TrimLeft(prefix, "/"), ".csv", ".tsv")
	if err != nil {
		return nil, apperrors.NewSourceError(dataset.ObjectScheme+prefix, "list", err)
	}
	if keys == nil {
		keys = []string{}
	}
	return keys, nil
}

// CacheStats returns the plan cache hit and miss counters.
func (s *Service) CacheStats() (hits, misses int64) {
	return s.cache.Stats()
}

func (s *Service) threshold(req Request) (float64, error) {
	if req.Old == nil || req.New == nil {
		return 0, apperrors.NewValidationError("source", "old and new datasets are required")
	}
	threshold := s.merge.Threshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}
	if math.IsNaN(threshold) {
		return 0, apperrors.NewValidationError("threshold", "must be a number")
	}
	return threshold, nil
}

func (s *Service) run(ctx context.Context, runID string, req Request) (*models.Result, error) {
	start := time.Now()

	threshold, err := s.threshold(req)
	if err != nil {
		return nil, err
	}

	oldDS, newDS, err := dataset.LoadPair(ctx, req.Old, req.New)
	if err != nil {
		return nil, err
	}

	key := reconcile.PlanKey(oldDS.Rows, newDS.Rows, threshold)
	plan, cached, err := s.cache.GetOrBuild(ctx, key, oldDS.Rows, newDS.Rows, reconcile.Options{Threshold: threshold})
	if err != nil {
		return nil, fmt.Errorf("merge failed: %w", err)
	}

	header := oldDS.Header
	if len(header) == 0 {
		header = newDS.Header
	}
	out := &dataset.Dataset{Header: header, Rows: plan.Rows()}

	res := &models.Result{
		RunID:  runID,
		Header: header,
		Rows:   out.Rows,
		Cached: cached,
	}

	if req.Output != nil {
		out.Name = req.Output.Name()
		if err := req.Output.Save(ctx, out); err != nil {
			return nil, err
		}
		res.Output = req.Output.Name()
	}

	ps := plan.Summary
	res.Summary = models.Summary{
		OldRows:       len(oldDS.Rows),
		NewRows:       len(newDS.Rows),
		Groups:        ps.Groups,
		MergedGroups:  ps.MergedGroups,
		Singletons:    ps.Singletons,
		BlankRows:     ps.BlankRows,
		DuplicateKeys: ps.DuplicateKeys,
		OutputRows:    len(out.Rows),
		Threshold:     threshold,
		DurationMS:    time.Since(start).Milliseconds(),
	}

	if s.history != nil {
		if err := s.history.Record(ctx, models.NewMergeRun(res, req.Old.Name(), req.New.Name())); err != nil {
			s.logger.Warn("Failed to record merge run", zap.String("run_id", runID), zap.Error(err))
		}
	}

	s.logger.Info("Merge completed",
		zap.String("run_id", runID),
		zap.String("old", req.Old.Name()),
		zap.String("new", req.New.Name()),
		zap.Float64("threshold", threshold),
		zap.Int("input_rows", ps.InputRows),
		zap.Int("output_rows", res.Summary.OutputRows),
		zap.Int("merged_groups", ps.MergedGroups),
		zap.Bool("cached", cached),
		zap.Duration("duration", time.Since(start)),
	)

	return res, nil
}
