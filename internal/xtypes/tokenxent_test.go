package xtypes

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenXentListTotalXent(t *testing.T) {
	t.Parallel()
	tl := NewTokenXentList([]TokenPair{{Token: "a", Xent: 0.5}, {Token: "b", Xent: 1.5}})
	assert.Equal(t, 2.0, tl.TotalXent())

	scaled := tl.Scaled(2)
	assert.Equal(t, 4.0, scaled.TotalXent())
}

func TestTokenXentListNegate(t *testing.T) {
	t.Parallel()
	tl := NewTokenXentList([]TokenPair{{Token: "a", Xent: 1.0}})
	assert.Equal(t, -1.0, tl.Negate().TotalXent())
}

func TestTokenXentListAddMatchingTokens(t *testing.T) {
	t.Parallel()
	a := NewTokenXentList([]TokenPair{{Token: "x", Xent: 1.0}})
	b := NewTokenXentList([]TokenPair{{Token: "x", Xent: 2.0}})
	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, 3.0, sum.TotalXent())
	assert.Len(t, sum.Pairs, 1)
}

func TestTokenXentListAddDisjointConcatenates(t *testing.T) {
	t.Parallel()
	a := NewTokenXentList([]TokenPair{{Token: "x", Xent: 1.0}})
	b := NewTokenXentList([]TokenPair{{Token: "y", Xent: 2.0}, {Token: "z", Xent: 0.5}})
	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Len(t, sum.Pairs, 3)
	assert.Equal(t, 3.5, sum.TotalXent())
}

func TestTokenXentListJSONRoundTrip(t *testing.T) {
	t.Parallel()
	tl := NewTokenXentList([]TokenPair{{Token: "hi", Xent: 0.25}})
	tl.Scale = 2.0

	data, err := json.Marshal(tl)
	require.NoError(t, err)

	var decoded TokenXentList
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, tl.Pairs, decoded.Pairs)
	assert.Equal(t, tl.Scale, decoded.Scale)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, true, raw["__TokenXentList__"])
}
