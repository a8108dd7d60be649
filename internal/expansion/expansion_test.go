package expansion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xentlabs/xent-sub001/internal/config"
)

func baseCondensed() config.CondensedXentBenchmarkConfig {
	return config.CondensedXentBenchmarkConfig{
		ConfigType: "condensed",
		Metadata:   config.XentMetadata{BenchmarkID: "b1", Seed: "seed-1", NumRoundsPerGame: 1},
		ExpansionConfig: config.ExpansionConfig{
			NumMapsPerGame: 3,
		},
		Players: []config.PlayerConfig{{Name: config.PlayerBlack, ID: "p1", PlayerType: "mock"}},
		Games:   []config.GameConfig{{Name: "simple", Code: "reward(xed(\"a\"|\"a\"))"}},
	}
}

func TestExpandProducesNMapsPerGame(t *testing.T) {
	t.Parallel()
	expanded := Expand(baseCondensed())
	require.Len(t, expanded.Maps, 3)
	for _, m := range expanded.Maps {
		assert.Equal(t, "simple", m.Name)
		assert.NotEmpty(t, m.MapSeed)
	}
}

func TestExpandMapSeedsAreDistinctAndDeterministic(t *testing.T) {
	t.Parallel()
	e1 := Expand(baseCondensed())
	e2 := Expand(baseCondensed())
	require.Equal(t, len(e1.Maps), len(e2.Maps))

	seen := map[string]bool{}
	for i := range e1.Maps {
		assert.Equal(t, e1.Maps[i].MapSeed, e2.Maps[i].MapSeed, "expansion is a pure function of its inputs")
		assert.False(t, seen[e1.Maps[i].MapSeed], "map seeds within one game must be distinct")
		seen[e1.Maps[i].MapSeed] = true
	}
}

func TestExpandDifferentSeedProducesDifferentMaps(t *testing.T) {
	t.Parallel()
	a := baseCondensed()
	b := baseCondensed()
	b.Metadata.Seed = "seed-2"

	ea := Expand(a)
	eb := Expand(b)
	assert.NotEqual(t, ea.Maps[0].MapSeed, eb.Maps[0].MapSeed)
}
