package bench

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xentlabs/xent-sub001/internal/config"
	"github.com/xentlabs/xent-sub001/internal/storage"
	"github.com/xentlabs/xent-sub001/internal/textgen"
)

const oneShotCode = `elicit(x,5)
reward(xed(x|x))`

func mustMockPlayerConfig(t *testing.T, id string, name config.PlayerName, responses []string) config.PlayerConfig {
	t.Helper()
	return config.PlayerConfig{
		Name: name, ID: id, PlayerType: "mock",
		Options: config.PlayerOptions{"responses": responses},
	}
}

func testConfig(t *testing.T, players []config.PlayerConfig) config.ExpandedXentBenchmarkConfig {
	t.Helper()
	return config.ExpandedXentBenchmarkConfig{
		ConfigType: "expanded",
		Metadata:   config.XentMetadata{BenchmarkID: "b1", NumRoundsPerGame: 1},
		Players:    players,
		Games:      []config.GameConfig{{Name: "g1", Code: oneShotCode, PresentationFunction: "single"}},
		Maps:       []config.GameMapConfig{{Name: "g1", Code: oneShotCode, PresentationFunction: "single", MapSeed: "1a"}},
	}
}

func TestDriverRunProducesOneResultPerUnit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	players := []config.PlayerConfig{
		mustMockPlayerConfig(t, "p1", config.PlayerBlack, []string{"hello"}),
	}
	cfg := testConfig(t, players)

	d := &Driver{
		Storage: storage.NewFileStorage(t.TempDir(), "b1"),
		Corpus:  textgen.StringsCorpus{"a fixed story"},
	}

	result, err := d.Run(ctx, cfg)
	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	assert.Equal(t, "p1", result.Results[0].Player.ID)
	assert.Len(t, result.Results[0].RoundResults, 1)
}

func TestDriverRunIsIdempotentOnResume(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	players := []config.PlayerConfig{
		mustMockPlayerConfig(t, "p1", config.PlayerBlack, []string{"hello"}),
	}
	cfg := testConfig(t, players)
	root := t.TempDir()

	d1 := &Driver{Storage: storage.NewFileStorage(root, "b1"), Corpus: textgen.StringsCorpus{"a fixed story"}}
	first, err := d1.Run(ctx, cfg)
	require.NoError(t, err)

	// A second run against the same storage must not re-elicit: the mock
	// player's single response would be exhausted-but-repeating either
	// way, so the check is on the result instead. The unit is already
	// stored, so the second run skips it and returns the stored result,
	// whose score and config must equal the first run's.
	d2 := &Driver{Storage: storage.NewFileStorage(root, "b1"), Corpus: textgen.StringsCorpus{"a fixed story"}}
	second, err := d2.Run(ctx, cfg)
	require.NoError(t, err)

	assert.Equal(t, first.Results[0].Score, second.Results[0].Score)
	assert.True(t, first.ExpandedConfig.Equal(second.ExpandedConfig))
}

func TestDriverRunSkipsFailingUnitButRunsOthers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	players := []config.PlayerConfig{
		{Name: config.PlayerBlack, ID: "bad", PlayerType: "nonexistent-type"},
		mustMockPlayerConfig(t, "good", config.PlayerWhite, []string{"hi"}),
	}
	cfg := testConfig(t, players)

	d := &Driver{Storage: storage.NewFileStorage(t.TempDir(), "b1"), Corpus: textgen.StringsCorpus{"story"}}
	result, err := d.Run(ctx, cfg)
	require.NoError(t, err)

	require.Len(t, result.Results, 1)
	assert.Equal(t, "good", result.Results[0].Player.ID)
}

func TestDriverRunAppliesZeroSumAdjustment(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	players := []config.PlayerConfig{
		mustMockPlayerConfig(t, "black1", config.PlayerBlack, []string{"aaaa"}),
		mustMockPlayerConfig(t, "white1", config.PlayerWhite, []string{"bbbbbbbb"}),
	}
	cfg := testConfig(t, players)

	d := &Driver{Storage: storage.NewFileStorage(t.TempDir(), "b1"), Corpus: textgen.StringsCorpus{"story"}}
	result, err := d.Run(ctx, cfg)
	require.NoError(t, err)
	require.Len(t, result.Results, 2)

	var black, white config.GameMapResults
	for _, r := range result.Results {
		switch r.Player.Name {
		case config.PlayerBlack:
			black = r
		case config.PlayerWhite:
			white = r
		}
	}
	assert.InDelta(t, 0.0, black.Score+white.Score, 1e-9)
}

func TestEnumerateUnitsIsGamesMapsPlayersProduct(t *testing.T) {
	t.Parallel()
	cfg := config.ExpandedXentBenchmarkConfig{
		Players: []config.PlayerConfig{{ID: "p1"}, {ID: "p2"}},
		Maps:    []config.GameMapConfig{{Name: "a"}, {Name: "b"}},
	}
	units := enumerateUnits(cfg)
	assert.Len(t, units, 4)
}
