// Package judge implements a deterministic stand-in for the reference
// language model used to score text under a shared tokenizer (spec.md
// §4.B). The real scoring backend is out of scope; what matters here is
// that tokenization round-trips losslessly and that xent scores are
// reproducible and non-negative.
package judge

import "regexp"

// tokenPattern splits text into whitespace runs, word runs, and single
// punctuation characters. Every byte of the input is covered by exactly one
// match, so concatenating the matches always reconstructs the original
// string exactly.
var tokenPattern = regexp.MustCompile(`\s+|[A-Za-z0-9_]+|[^\sA-Za-z0-9_]`)

// Tokenize splits s into a reversible sequence of tokens: detokenize(tokenize(s)) == s
// for every s (spec.md §4.B, §8 "tokenization round-trip").
func Tokenize(s string) []string {
	if s == "" {
		return nil
	}
	return tokenPattern.FindAllString(s, -1)
}

// Detokenize reconstructs the original string from tokens produced by Tokenize.
func Detokenize(tokens []string) string {
	out := ""
	for _, t := range tokens {
		out += t
	}
	return out
}

// FirstNTokens returns the text reconstituted from the first n tokens of s,
// preserving whitespace. Returns s unchanged if s tokenizes to n or fewer
// tokens, and "" for "" regardless of n (spec.md §4.B).
func FirstNTokens(s string, n int) string {
	tokens := Tokenize(s)
	if n >= len(tokens) {
		return s
	}
	if n <= 0 {
		return ""
	}
	return Detokenize(tokens[:n])
}
