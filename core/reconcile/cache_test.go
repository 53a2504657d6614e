package reconcile

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanCache_ReusesFreshPlan(t *testing.T) {
	cache := NewPlanCache(time.Minute)
	oldRows := [][]string{{"John", "Doe"}}
	newRows := [][]string{{"John", "Doe"}}
	key := PlanKey(oldRows, newRows, DefaultThreshold)

	first, cached, err := cache.GetOrBuild(context.Background(), key, oldRows, newRows, DefaultOptions())
	require.NoError(t, err)
	assert.False(t, cached)

	second, cached, err := cache.GetOrBuild(context.Background(), key, oldRows, newRows, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Same(t, first, second)

	hits, misses := cache.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
}

func TestPlanCache_ZeroTTLDisablesCaching(t *testing.T) {
	cache := NewPlanCache(0)
	rows := [][]string{{"a"}}
	key := PlanKey(rows, nil, DefaultThreshold)

	first, cached, err := cache.GetOrBuild(context.Background(), key, rows, nil, DefaultOptions())
	require.NoError(t, err)
	assert.False(t, cached)

	second, cached, err := cache.GetOrBuild(context.Background(), key, rows, nil, DefaultOptions())
	require.NoError(t, err)
	assert.False(t, cached)
	assert.NotSame(t, first, second)
}

func TestPlanCache_Invalidate(t *testing.T) {
	cache := NewPlanCache(time.Minute)
	rows := [][]string{{"a"}}
	key := PlanKey(rows, nil, DefaultThreshold)

	first, _, err := cache.GetOrBuild(context.Background(), key, rows, nil, DefaultOptions())
	require.NoError(t, err)

	cache.Invalidate()

	second, cached, err := cache.GetOrBuild(context.Background(), key, rows, nil, DefaultOptions())
	require.NoError(t, err)
	assert.False(t, cached)
	assert.NotSame(t, first, second)
}

func TestPlanCache_ErrorIsNotCached(t *testing.T) {
	cache := NewPlanCache(time.Minute)
	rows := [][]string{{"a"}}
	key := PlanKey(rows, nil, DefaultThreshold)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := cache.GetOrBuild(ctx, key, rows, nil, DefaultOptions())
	assert.ErrorIs(t, err, context.Canceled)

	plan, cached, err := cache.GetOrBuild(context.Background(), key, rows, nil, DefaultOptions())
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, [][]string{{"a"}}, plan.Rows())
}

func TestPlanCache_ConcurrentCallers(t *testing.T) {
	cache := NewPlanCache(time.Minute)
	rows := [][]string{{"Jane", "Smith"}, {"Jane", "Smith", "Jr"}, {"Bob"}}
	key := PlanKey(rows, nil, DefaultThreshold)

	var wg sync.WaitGroup
	plans := make([]*MergePlan, 16)
	for i := range plans {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			plan, _, err := cache.GetOrBuild(context.Background(), key, rows, nil, DefaultOptions())
			assert.NoError(t, err)
			plans[i] = plan
		}(i)
	}
	wg.Wait()

	for _, p := range plans {
		require.NotNil(t, p)
		assert.Equal(t, plans[0].Rows(), p.Rows())
	}
}

func TestPlanCache_CancelledLeaderDoesNotFailFollower(t *testing.T) {
	cache := NewPlanCache(time.Minute)
	rows := [][]string{{"a"}, {"b"}, {"c"}}
	key := PlanKey(rows, nil, DefaultThreshold)

	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	opts := Options{Threshold: DefaultThreshold, Scorer: func(a, b string) float64 {
		once.Do(func() { close(started) })
		<-release
		return 0
	}}

	leaderCtx, cancel := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, _, err := cache.GetOrBuild(leaderCtx, key, rows, nil, opts)
		leaderErr <- err
	}()
	<-started

	type outcome struct {
		plan *MergePlan
		err  error
	}
	follower := make(chan outcome, 1)
	go func() {
		plan, _, err := cache.GetOrBuild(context.Background(), key, rows, nil, opts)
		follower <- outcome{plan, err}
	}()

	// Give the follower time to join the leader's build before it aborts.
	time.Sleep(50 * time.Millisecond)
	cancel()
	close(release)

	assert.ErrorIs(t, <-leaderErr, context.Canceled)

	res := <-follower
	require.NoError(t, res.err)
	assert.Len(t, res.plan.Groups, 3)
}

func TestPlanKey(t *testing.T) {
	base := PlanKey([][]string{{"a b"}}, nil, 80)

	assert.Equal(t, base, PlanKey([][]string{{"a b"}}, nil, 80))
	assert.NotEqual(t, base, PlanKey([][]string{{"a", "b"}}, nil, 80), "field boundaries")
	assert.NotEqual(t, base, PlanKey(nil, [][]string{{"a b"}}, 80), "old/new side")
	assert.NotEqual(t, base, PlanKey([][]string{{"a b"}}, nil, 81), "threshold")
}
