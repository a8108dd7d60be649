// Package textgen implements deterministic producers of story() text from
// a corpus, seeded and either sequential or shuffled (spec.md §4.F).
package textgen

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/xentlabs/xent-sub001/internal/config"
	"github.com/xentlabs/xent-sub001/internal/xerr"
	"github.com/xentlabs/xent-sub001/internal/xtypes"
)

// Generator produces successive story() texts for one round. It is not
// safe for concurrent use; each round gets its own instance.
type Generator interface {
	// Next returns the next text in the generator's sequence.
	Next() xtypes.XString
}

// Corpus is the backing text collection a generator draws from, equivalent
// to spec.md §6's "text-corpus data loaders" contract: out of scope to
// implement fully here, so callers supply one (e.g. loaded from a file).
// New draws from the supplied corpus for every generator type, including
// COMMUNITY_ARCHIVE.
type Corpus interface {
	Len() int
	At(i int) string
}

// StringsCorpus is the simplest Corpus: an in-memory slice.
type StringsCorpus []string

func (c StringsCorpus) Len() int        { return len(c) }
func (c StringsCorpus) At(i int) string { return c[i] }

// sequentialGenerator walks the corpus in order, wrapping around.
type sequentialGenerator struct {
	corpus Corpus
	cursor int
}

// NewSequential returns a Generator that walks corpus in order starting at
// cursor, wrapping when it reaches the end.
func NewSequential(corpus Corpus, cursor int) Generator {
	return &sequentialGenerator{corpus: corpus, cursor: cursor}
}

func (g *sequentialGenerator) Next() xtypes.XString {
	if g.corpus.Len() == 0 {
		return xtypes.NewXString("")
	}
	text := g.corpus.At(g.cursor % g.corpus.Len())
	g.cursor++
	return xtypes.NewXString(text)
}

// shuffledGenerator walks a seeded random permutation of the corpus,
// wrapping (and reshuffling) once exhausted, following
// internal/server/pool.go's rand.Rand + mutex idiom.
type shuffledGenerator struct {
	corpus Corpus
	rng    *rand.Rand
	mu     sync.Mutex
	order  []int
	cursor int
}

// NewShuffled returns a Generator that walks a seeded random permutation
// of corpus.
func NewShuffled(corpus Corpus, seed int64) Generator {
	g := &shuffledGenerator{corpus: corpus, rng: rand.New(rand.NewSource(seed))}
	g.reshuffle()
	return g
}

func (g *shuffledGenerator) reshuffle() {
	n := g.corpus.Len()
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	g.rng.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })
	g.order = order
	g.cursor = 0
}

func (g *shuffledGenerator) Next() xtypes.XString {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.order) == 0 {
		return xtypes.NewXString("")
	}
	if g.cursor >= len(g.order) {
		g.reshuffle()
	}
	text := g.corpus.At(g.order[g.cursor])
	g.cursor++
	return xtypes.NewXString(text)
}

// New builds a Generator per a TextGenerationConfig and a deterministic
// round seed, dispatching on GeneratorType (spec.md §4.F, §6).
func New(cfg config.TextGenerationConfig, corpus Corpus, seed int64) (Generator, error) {
	switch cfg.GeneratorType {
	case config.TextGeneratorJudge, config.TextGeneratorCommunityArchive, "":
		shuffle, _ := cfg.GeneratorConfig["shuffle"].(bool)
		if shuffle {
			return NewShuffled(corpus, seed), nil
		}
		return NewSequential(corpus, int(seed%int64(maxInt(corpus.Len(), 1)))), nil
	default:
		return nil, fmt.Errorf("unknown text generator type %q: %w", cfg.GeneratorType, xerr.ErrConfiguration)
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
