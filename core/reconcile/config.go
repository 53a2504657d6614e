package reconcile

import (
	"math"
	"time"

	apperrors "row-merger/core/errors"
)

// Config holds merge settings loaded from the environment.
type Config struct {
	// Threshold is the default minimum score for grouping rows.
	Threshold float64 `mapstructure:"threshold" default:"80"`
	// CacheTTLSeconds is how long built plans are reused. Zero disables the cache.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"300"`
}

// Validate rejects thresholds that cannot be compared. Values outside [0, 100]
// are accepted on purpose; they have defined, if degenerate, results.
func (c Config) Validate() error {
	if math.IsNaN(c.Threshold) {
		return apperrors.NewValidationError("threshold", "must be a number")
	}
	if c.CacheTTLSeconds < 0 {
		return apperrors.NewValidationError("cache_ttl_seconds", "must not be negative")
	}
	return nil
}

// Options returns merge options using the configured threshold.
func (c Config) Options() Options {
	return Options{Threshold: c.Threshold}
}

// CacheTTL returns the cache TTL as a duration.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
