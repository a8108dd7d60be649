package judge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xentlabs/xent-sub001/internal/xtypes"
)

func TestTokenizeDetokenizeRoundTrip(t *testing.T) {
	t.Parallel()
	cases := []string{
		"This is a test string for the framework.",
		"",
		"   ",
		"\n",
		"hello,world!!  foo_bar",
	}
	for _, s := range cases {
		tokens := Tokenize(s)
		assert.Equal(t, s, Detokenize(tokens))
	}
}

func TestFirstNTokens(t *testing.T) {
	t.Parallel()
	s := "This is a test string for the framework."
	total := len(Tokenize(s))

	assert.Equal(t, s, FirstNTokens(s, total))
	assert.Equal(t, s, FirstNTokens(s, total+10))
	assert.Equal(t, "", FirstNTokens("", 5))
	assert.Equal(t, "   ", FirstNTokens("   ", 5))
	assert.Equal(t, "\n", FirstNTokens("\n", 5))
	assert.Equal(t, "", FirstNTokens(s, 0))
}

func TestJudgeXentEmptyTargetIsEmpty(t *testing.T) {
	t.Parallel()
	j := New("gpt2")
	result := j.Xent(xtypes.NewXString("some context"), xtypes.NewXString(""))
	assert.Empty(t, result.Pairs)
	assert.Equal(t, 0.0, result.TotalXent())
}

func TestJudgeXentNonNegative(t *testing.T) {
	t.Parallel()
	j := New("gpt2")
	result := j.Xent(xtypes.NewXString("the quick brown fox"), xtypes.NewXString("jumps over the lazy dog"))
	require.NotEmpty(t, result.Pairs)
	for _, p := range result.Pairs {
		assert.GreaterOrEqual(t, p.Xent, 0.0)
	}
	assert.GreaterOrEqual(t, result.TotalXent(), 0.0)
}

func TestJudgeXentDeterministic(t *testing.T) {
	t.Parallel()
	j := New("gpt2")
	ctx := xtypes.NewXString("context")
	target := xtypes.NewXString("target text")
	first := j.Xent(ctx, target)
	second := j.Xent(ctx, target)
	assert.Equal(t, first, second)
}

func TestJudgeXentDiffersByContext(t *testing.T) {
	t.Parallel()
	j := New("gpt2")
	target := xtypes.NewXString("zzzzz")
	a := j.Xent(xtypes.NewXString("context a"), target)
	b := j.Xent(xtypes.NewXString("context b"), target)
	assert.NotEqual(t, a, b)
}
