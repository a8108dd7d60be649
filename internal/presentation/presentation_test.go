package presentation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xentlabs/xent-sub001/internal/config"
	"github.com/xentlabs/xent-sub001/internal/xtypes"
)

func TestLookupKnownNames(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"single", "multi", "dex", "sequence"} {
		fn, ok := Lookup(name)
		require.True(t, ok, name)
		assert.NotNil(t, fn)
	}
}

func TestLookupUnknownName(t *testing.T) {
	t.Parallel()
	_, ok := Lookup("nonexistent")
	assert.False(t, ok)
}

func TestSingleFirstAttemptShowsStoryWithoutHistory(t *testing.T) {
	t.Parallel()
	state := State{"s": xtypes.StringValue(xtypes.NewXString("a story"))}
	out := Single(state, nil, config.XentMetadata{})
	assert.Contains(t, out, "a story")
	assert.Contains(t, out, "<move>")
	assert.NotContains(t, out, "previousAttempts")
}

func TestSingleIncludesPriorAttempts(t *testing.T) {
	t.Parallel()
	state := State{"s": xtypes.StringValue(xtypes.NewXString("a story"))}
	xl := xtypes.NewTokenXentList([]xtypes.TokenPair{{Token: "a", Xent: 1.5}})
	history := []config.EventJSON{
		{Type: config.EventElicitResponse, Response: "my prefix"},
		{Type: config.EventReward, Value: &xl},
	}
	out := Single(state, history, config.XentMetadata{})
	assert.Contains(t, out, "my prefix")
	assert.Contains(t, out, "previousAttempts")
}

func TestMultiLabelsThreeTexts(t *testing.T) {
	t.Parallel()
	state := State{
		"s1": xtypes.StringValue(xtypes.NewXString("one")),
		"s2": xtypes.StringValue(xtypes.NewXString("two")),
		"s3": xtypes.StringValue(xtypes.NewXString("three")),
	}
	out := Multi(state, nil, config.XentMetadata{})
	assert.Contains(t, out, "one")
	assert.Contains(t, out, "two")
	assert.Contains(t, out, "three")
}

func TestSequenceNewGame(t *testing.T) {
	t.Parallel()
	state := State{"s": xtypes.StringValue(xtypes.NewXString("start"))}
	out := Sequence(state, nil, config.XentMetadata{})
	assert.Contains(t, out, "starting a new game")
	assert.Contains(t, out, "start")
}
