package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xentlabs/xent-sub001/internal/config"
	"github.com/xentlabs/xent-sub001/internal/xerr"
)

func TestFileStorageRoundTripsConfig(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fs := NewFileStorage(t.TempDir(), "bench-1")
	require.NoError(t, fs.Initialize(ctx))

	cfg := config.ExpandedXentBenchmarkConfig{
		ConfigType: "xent_benchmark",
		Metadata:   config.XentMetadata{BenchmarkID: "bench-1"},
	}
	require.NoError(t, fs.StoreConfig(ctx, cfg))

	got, err := fs.GetConfig(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Equal(cfg))
}

func TestFileStorageStoreConfigRejectsDifferentConfig(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fs := NewFileStorage(t.TempDir(), "bench-1")
	require.NoError(t, fs.Initialize(ctx))

	require.NoError(t, fs.StoreConfig(ctx, config.ExpandedXentBenchmarkConfig{ConfigType: "a"}))
	require.NoError(t, fs.StoreConfig(ctx, config.ExpandedXentBenchmarkConfig{ConfigType: "a"}), "storing an equal config again is a no-op")

	err := fs.StoreConfig(ctx, config.ExpandedXentBenchmarkConfig{ConfigType: "b"})
	assert.ErrorIs(t, err, xerr.ErrConfiguration)
}

func TestFileStorageStoreGameMapResultsRejectsDifferentRewrite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fs := NewFileStorage(t.TempDir(), "bench-1")
	require.NoError(t, fs.Initialize(ctx))

	key := config.GameMapResults{GameMap: config.GameMapConfig{Name: "g", MapSeed: "s"}, Player: config.PlayerConfig{ID: "p"}, Score: 1.0}
	require.NoError(t, fs.StoreGameMapResults(ctx, key))
	require.NoError(t, fs.StoreGameMapResults(ctx, key), "storing identical bytes again is a no-op")

	key.Score = 2.0
	err := fs.StoreGameMapResults(ctx, key)
	assert.ErrorIs(t, err, xerr.ErrConfiguration)
}

func TestFileStorageGetConfigMissingReturnsNil(t *testing.T) {
	t.Parallel()
	fs := NewFileStorage(t.TempDir(), "bench-1")
	got, err := fs.GetConfig(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFileStorageGameMapResultsRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fs := NewFileStorage(t.TempDir(), "bench-1")
	require.NoError(t, fs.Initialize(ctx))

	key := config.UnitKey{GameName: "single", MapSeed: "abc123", PlayerID: "p1"}
	results := config.GameMapResults{
		GameMap: config.GameMapConfig{Name: "single", MapSeed: "abc123"},
		Player:  config.PlayerConfig{ID: "p1"},
		Score:   3.5,
	}
	require.NoError(t, fs.StoreGameMapResults(ctx, results))

	got, err := fs.GetGameMapResults(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 3.5, got.Score)
}

func TestFileStorageGetGameMapResultsMissingReturnsNil(t *testing.T) {
	t.Parallel()
	fs := NewFileStorage(t.TempDir(), "bench-1")
	got, err := fs.GetGameMapResults(context.Background(), config.UnitKey{GameName: "x", MapSeed: "y", PlayerID: "z"})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFileStorageRunningState(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fs := NewFileStorage(t.TempDir(), "bench-1")
	require.NoError(t, fs.Initialize(ctx))

	running, err := fs.GetRunningState(ctx)
	require.NoError(t, err)
	assert.False(t, running)

	require.NoError(t, fs.SetRunningState(ctx, true))
	running, err = fs.GetRunningState(ctx)
	require.NoError(t, err)
	assert.True(t, running)

	require.NoError(t, fs.SetRunningState(ctx, false))
	running, err = fs.GetRunningState(ctx)
	require.NoError(t, err)
	assert.False(t, running)
}

func TestFileStorageBenchmarkResultsOrderedByUnitKey(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fs := NewFileStorage(t.TempDir(), "bench-1")
	require.NoError(t, fs.Initialize(ctx))

	cfg := config.ExpandedXentBenchmarkConfig{Metadata: config.XentMetadata{BenchmarkID: "bench-1"}}
	require.NoError(t, fs.StoreConfig(ctx, cfg))

	for _, r := range []config.GameMapResults{
		{GameMap: config.GameMapConfig{Name: "zebra", MapSeed: "s"}, Player: config.PlayerConfig{ID: "p1"}},
		{GameMap: config.GameMapConfig{Name: "alpha", MapSeed: "s"}, Player: config.PlayerConfig{ID: "p1"}},
	} {
		require.NoError(t, fs.StoreGameMapResults(ctx, r))
	}

	bench, err := fs.GetBenchmarkResults(ctx)
	require.NoError(t, err)
	require.Len(t, bench.Results, 2)
	assert.Equal(t, "alpha", bench.Results[0].GameMap.Name)
	assert.Equal(t, "zebra", bench.Results[1].GameMap.Name)
}

func TestFileStorageGetBenchmarkResultsWithoutConfigIsNil(t *testing.T) {
	t.Parallel()
	fs := NewFileStorage(t.TempDir(), "bench-1")
	got, err := fs.GetBenchmarkResults(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}
