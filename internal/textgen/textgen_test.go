package textgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequentialGeneratorWrapsAround(t *testing.T) {
	t.Parallel()
	corpus := StringsCorpus{"a", "b", "c"}
	g := NewSequential(corpus, 0)
	assert.Equal(t, "a", g.Next().Primary)
	assert.Equal(t, "b", g.Next().Primary)
	assert.Equal(t, "c", g.Next().Primary)
	assert.Equal(t, "a", g.Next().Primary)
}

func TestShuffledGeneratorIsDeterministicForSeed(t *testing.T) {
	t.Parallel()
	corpus := StringsCorpus{"a", "b", "c", "d", "e"}
	g1 := NewShuffled(corpus, 42)
	g2 := NewShuffled(corpus, 42)
	for i := 0; i < 5; i++ {
		assert.Equal(t, g1.Next().Primary, g2.Next().Primary)
	}
}

func TestShuffledGeneratorReshufflesAfterExhaustion(t *testing.T) {
	t.Parallel()
	corpus := StringsCorpus{"a", "b"}
	g := NewShuffled(corpus, 1)
	seen := make(map[string]int)
	for i := 0; i < 10; i++ {
		seen[g.Next().Primary]++
	}
	assert.Equal(t, 10, seen["a"]+seen["b"])
}

func TestEmptyCorpusProducesEmptyText(t *testing.T) {
	t.Parallel()
	g := NewSequential(StringsCorpus{}, 0)
	assert.Equal(t, "", g.Next().Primary)
}
