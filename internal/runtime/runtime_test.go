package runtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xentlabs/xent-sub001/internal/config"
	"github.com/xentlabs/xent-sub001/internal/dsl"
	"github.com/xentlabs/xent-sub001/internal/judge"
	"github.com/xentlabs/xent-sub001/internal/player"
	"github.com/xentlabs/xent-sub001/internal/textgen"
)

func newTestRuntime(t *testing.T, code string, p player.Player, playerName config.PlayerName, rounds int) *Runtime {
	t.Helper()
	prog, err := dsl.Parse(code)
	require.NoError(t, err)
	corpus := textgen.StringsCorpus{"a fixed story"}
	return &Runtime{
		Program:    prog,
		Judge:      judge.New("gpt2"),
		Player:     p,
		PlayerName: playerName,
		Metadata:   config.XentMetadata{NumRoundsPerGame: rounds},
		NewTextGen: func(roundIndex int) textgen.Generator {
			return textgen.NewSequential(corpus, roundIndex)
		},
	}
}

func mustPlayer(t *testing.T, responses []string) player.Player {
	t.Helper()
	p, err := player.New(config.PlayerConfig{
		ID: "p1", PlayerType: "mock",
		Options: config.PlayerOptions{"responses": responses},
	})
	require.NoError(t, err)
	return p
}

const simpleGameCode = `assign(s=story())
reveal(s)
elicit(x,10)
assign(x1=remove_common_words(x,s))
reward(xed(s|x1))`

func TestRunUnitSimpleGameCode(t *testing.T) {
	t.Parallel()
	p := mustPlayer(t, []string{"zzzzz"})
	rt := newTestRuntime(t, simpleGameCode, p, config.PlayerBlack, 1)

	rounds, err := rt.RunUnit(context.Background())
	require.NoError(t, err)
	require.Len(t, rounds, 1)

	// "zzzzz" shares no tokens with the story, so remove_common_words is a
	// no-op and the reward is the judge's score for "zzzzz" given the story.
	assert.Greater(t, rounds[0].Score, 0.0)

	var sawElicitRequest, sawReveal bool
	for _, e := range rounds[0].History {
		if e.Type == config.EventElicitRequest {
			sawElicitRequest = true
		}
		if e.Type == config.EventReveal {
			sawReveal = true
		}
	}
	assert.True(t, sawElicitRequest)
	assert.True(t, sawReveal)
}

func TestRunUnitEnsureBeaconRetry(t *testing.T) {
	t.Parallel()
	code := `elicit(x,5)
ensure(len(x) > 0, beacon=retry)
reward(xed("a"|x))
retry:
`
	p := mustPlayer(t, []string{"", "a"})
	rt := newTestRuntime(t, code, p, config.PlayerBlack, 2)

	rounds, err := rt.RunUnit(context.Background())
	require.NoError(t, err)
	require.Len(t, rounds, 2)

	// Round 0: the empty response fails the ensure, which jumps to the
	// trailing retry: label and so skips the reward. Round 1: "a" passes.
	var sawFailedEnsure, sawReward bool
	for _, e := range rounds[0].History {
		if e.Type == config.EventFailedEnsure {
			sawFailedEnsure = true
		}
	}
	for _, e := range rounds[1].History {
		if e.Type == config.EventReward {
			sawReward = true
		}
	}
	assert.True(t, sawFailedEnsure)
	assert.True(t, sawReward)
}

func TestRunUnitNoRewardPlayerScoresZero(t *testing.T) {
	t.Parallel()
	code := `reward(xed("a"|"b"))`
	p := mustPlayer(t, []string{"unused"})
	rt := newTestRuntime(t, code, p, config.PlayerEnv, 1)

	rounds, err := rt.RunUnit(context.Background())
	require.NoError(t, err)
	require.Len(t, rounds, 1)
	assert.Equal(t, 0.0, rounds[0].Score, "env's rewards never count toward its own score")

	var sawReward bool
	for _, e := range rounds[0].History {
		if e.Type == config.EventReward {
			sawReward = true
		}
	}
	assert.True(t, sawReward, "reward is still logged even though it doesn't score")
}

func TestRunUnitHaltEndsRoundEarly(t *testing.T) {
	t.Parallel()
	code := `elicit(x,5)
reward(xed("a"|x))`
	p, err := player.New(config.PlayerConfig{ID: "h1", PlayerType: "halting"})
	require.NoError(t, err)
	rt := newTestRuntime(t, code, p, config.PlayerBlack, 1)

	rounds, err := rt.RunUnit(context.Background())
	require.NoError(t, err)
	require.Len(t, rounds, 1)

	var sawHalt, sawReward bool
	for _, e := range rounds[0].History {
		if e.Type == config.EventHalt {
			sawHalt = true
		}
		if e.Type == config.EventReward {
			sawReward = true
		}
	}
	assert.True(t, sawHalt)
	assert.False(t, sawReward, "a halt aborts the round before later instructions run")
}

func TestRunUnitBestOfNTracksMaxScore(t *testing.T) {
	t.Parallel()
	code := `elicit(x,5)
reward(xed(x|x))`
	p := mustPlayer(t, []string{"a", "bb", "ccc"})
	rt := newTestRuntime(t, code, p, config.PlayerBlack, 3)

	rounds, err := rt.RunUnit(context.Background())
	require.NoError(t, err)
	require.Len(t, rounds, 3)

	maxScore := rounds[0].Score
	for _, r := range rounds[1:] {
		if r.Score > maxScore {
			maxScore = r.Score
		}
	}
	var lastBest *float64
	for _, e := range rounds[len(rounds)-1].History {
		if e.Type == config.EventRoundFinished {
			lastBest = e.BestScore
		}
	}
	require.NotNil(t, lastBest)
	assert.Equal(t, maxScore, *lastBest)
}
