package dsl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xentlabs/xent-sub001/internal/xerr"
)

const simpleGameCode = `assign(s=story())
reveal(s)
elicit(x,10)
assign(x1=remove_common_words(x,s))
reward(xed(s|x1))`

func TestParseSimpleGameCode(t *testing.T) {
	t.Parallel()
	prog, err := Parse(simpleGameCode)
	require.NoError(t, err)
	require.Len(t, prog.Instructions, 5)

	assign, ok := prog.Instructions[0].(*Assign)
	require.True(t, ok)
	assert.Equal(t, "s", assign.Register)
	_, ok = assign.Expr.(*StoryCall)
	assert.True(t, ok)

	reveal, ok := prog.Instructions[1].(*Reveal)
	require.True(t, ok)
	assert.Equal(t, []string{"s"}, reveal.Registers)

	elicit, ok := prog.Instructions[2].(*Elicit)
	require.True(t, ok)
	assert.Equal(t, "x", elicit.Register)
	assert.Equal(t, 10, elicit.MaxTokens)

	assign2, ok := prog.Instructions[3].(*Assign)
	require.True(t, ok)
	assert.Equal(t, "x1", assign2.Register)
	rcw, ok := assign2.Expr.(*RemoveCommonWords)
	require.True(t, ok)
	_, ok = rcw.X.(*RegisterRef)
	assert.True(t, ok)

	reward, ok := prog.Instructions[4].(*Reward)
	require.True(t, ok)
	xed, ok := reward.Expr.(*Xed)
	require.True(t, ok)
	ctxRef, ok := xed.Context.(*RegisterRef)
	require.True(t, ok)
	assert.Equal(t, "s", ctxRef.Name)
	targetRef, ok := xed.Target.(*RegisterRef)
	require.True(t, ok)
	assert.Equal(t, "x1", targetRef.Name)
}

func TestParseCommentsAndBlankLines(t *testing.T) {
	t.Parallel()
	src := "# a header comment\n\nassign(s=story()) # inline comment\n\nreveal(s)\n"
	prog, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, prog.Instructions, 2)
	assert.Equal(t, 3, prog.Instructions[0].Line())
	assert.Equal(t, 5, prog.Instructions[1].Line())
}

func TestParseMissingCloseParenIsSyntaxError(t *testing.T) {
	t.Parallel()
	src := "assign(s=story()\nreveal(s)"
	_, err := Parse(src)
	require.Error(t, err)
	assert.True(t, errors.Is(err, xerr.ErrSyntax))
	var lineErr *xerr.Line
	require.True(t, errors.As(err, &lineErr))
	assert.Equal(t, 1, lineErr.LineNum())
}

func TestParseEnsureWithBeacon(t *testing.T) {
	t.Parallel()
	src := `assign(s=story())
elicit(x,10)
ensure(len(x) > 0, beacon=retry)
reward(xed(s|x))
retry:
elicit(x,10)`
	prog, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, prog.Instructions, 6)

	ensure, ok := prog.Instructions[2].(*Ensure)
	require.True(t, ok)
	require.Len(t, ensure.Conditions, 1)
	assert.Equal(t, ">", ensure.Conditions[0].Op)
	assert.Equal(t, 0.0, ensure.Conditions[0].Value)
	assert.Equal(t, "retry", ensure.Beacon)

	label, ok := prog.Instructions[4].(*Label)
	require.True(t, ok)
	assert.Equal(t, "retry", label.Name)
	assert.Contains(t, prog.Labels, "retry")
}

func TestParseUnknownBeaconIsSyntaxError(t *testing.T) {
	t.Parallel()
	src := `assign(s=story())
elicit(x,10)
ensure(len(x) > 0, beacon=nowhere)
reward(xed(s|x))`
	_, err := Parse(src)
	require.Error(t, err)
	assert.True(t, errors.Is(err, xerr.ErrSyntax))
}

func TestParseDuplicateLabelIsSyntaxError(t *testing.T) {
	t.Parallel()
	src := "retry:\nassign(s=story())\nretry:\nreveal(s)"
	_, err := Parse(src)
	require.Error(t, err)
	assert.True(t, errors.Is(err, xerr.ErrSyntax))
}

func TestParseWriteToUnknownRegisterIsSyntaxError(t *testing.T) {
	t.Parallel()
	_, err := Parse("assign(q=story())")
	require.Error(t, err)
	assert.True(t, errors.Is(err, xerr.ErrSyntax))
}

func TestParseUseBeforeAssignmentIsSyntaxError(t *testing.T) {
	t.Parallel()
	_, err := Parse("reveal(s)")
	require.Error(t, err)
	assert.True(t, errors.Is(err, xerr.ErrSyntax))
}

func TestParseElicitNonPositiveMaxTokensIsSyntaxError(t *testing.T) {
	t.Parallel()
	_, err := Parse("elicit(x,0)")
	require.Error(t, err)
	assert.True(t, errors.Is(err, xerr.ErrSyntax))
}

func TestParseUnknownOperatorIsSyntaxError(t *testing.T) {
	t.Parallel()
	_, err := Parse("assign(s=nonsense())")
	require.Error(t, err)
	assert.True(t, errors.Is(err, xerr.ErrSyntax))
}
