package xtypes

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xentlabs/xent-sub001/internal/xerr"
)

// TokenPair is one (token, xent) pair: the per-token negative
// log-probability contribution to a score.
type TokenPair struct {
	Token string
	Xent  float64
}

// TokenXentList is an ordered sequence of TokenPairs with a scalar Scale
// (default 1.0), per spec.md §4.A. TotalXent = Scale * sum(xent).
type TokenXentList struct {
	Pairs []TokenPair
	Scale float64
}

// NewTokenXentList builds a TokenXentList with the default scale of 1.0.
func NewTokenXentList(pairs []TokenPair) TokenXentList {
	return TokenXentList{Pairs: pairs, Scale: 1.0}
}

// TotalXent returns Scale * sum(xent over all pairs).
func (t TokenXentList) TotalXent() float64 {
	sum := 0.0
	for _, p := range t.Pairs {
		sum += p.Xent
	}
	return t.Scale * sum
}

func (t TokenXentList) sameTokens(other TokenXentList) bool {
	if len(t.Pairs) != len(other.Pairs) {
		return false
	}
	for i := range t.Pairs {
		if t.Pairs[i].Token != other.Pairs[i].Token {
			return false
		}
	}
	return true
}

// Add combines two TokenXentLists into one with scale 1, folding each
// side's Scale into its xent values. When both lists hold the same token
// sequence, xent values are summed pairwise. Otherwise, whether the
// lengths or the tokens differ, the lists are concatenated end-to-end,
// matching the DSL's `reward(xed(...) + xed(...))` composition over
// distinct targets. The returned error is always nil: token sequences that
// disagree are not rejected.
func (t TokenXentList) Add(other TokenXentList) (TokenXentList, error) {
	if len(t.Pairs) == len(other.Pairs) && t.sameTokens(other) {
		pairs := make([]TokenPair, len(t.Pairs))
		for i := range t.Pairs {
			pairs[i] = TokenPair{
				Token: t.Pairs[i].Token,
				Xent:  t.Pairs[i].Xent*t.Scale + other.Pairs[i].Xent*other.Scale,
			}
		}
		return TokenXentList{Pairs: pairs, Scale: 1.0}, nil
	}
	// Disjoint targets (e.g. two different reward() calls combined with
	// `+`): concatenate, scaling each side's xent into the combined list
	// so the result's own scale stays 1.
	pairs := make([]TokenPair, 0, len(t.Pairs)+len(other.Pairs))
	for _, p := range t.Pairs {
		pairs = append(pairs, TokenPair{Token: p.Token, Xent: p.Xent * t.Scale})
	}
	for _, p := range other.Pairs {
		pairs = append(pairs, TokenPair{Token: p.Token, Xent: p.Xent * other.Scale})
	}
	return TokenXentList{Pairs: pairs, Scale: 1.0}, nil
}

// Scaled returns a copy of t with Scale multiplied by factor.
func (t TokenXentList) Scaled(factor float64) TokenXentList {
	pairs := make([]TokenPair, len(t.Pairs))
	copy(pairs, t.Pairs)
	return TokenXentList{Pairs: pairs, Scale: t.Scale * factor}
}

// Negate returns a copy of t scaled by -1. The zero-sum adjustment in
// internal/bench subtracts score totals directly and does not use it.
func (t TokenXentList) Negate() TokenXentList {
	return t.Scaled(-1)
}

// String renders a human-readable per-token dump, e.g. "[tok1: 0.12,
// tok2: 0.00]".
func (t TokenXentList) String() string {
	parts := make([]string, len(t.Pairs))
	for i, p := range t.Pairs {
		parts[i] = fmt.Sprintf("%s: %.2f", p.Token, p.Xent*t.Scale)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// MarshalJSON emits the {"__TokenXentList__":true,"pairs":[[tok,xent],...],
// "scale":s} envelope specified in spec.md §6.
func (t TokenXentList) MarshalJSON() ([]byte, error) {
	pairs := make([][2]any, len(t.Pairs))
	for i, p := range t.Pairs {
		pairs[i] = [2]any{p.Token, p.Xent}
	}
	return json.Marshal(struct {
		Marker bool     `json:"__TokenXentList__"`
		Pairs  [][2]any `json:"pairs"`
		Scale  float64  `json:"scale"`
	}{Marker: true, Pairs: pairs, Scale: t.Scale})
}

// UnmarshalJSON restores a TokenXentList from its wire envelope.
func (t *TokenXentList) UnmarshalJSON(data []byte) error {
	var wire struct {
		Marker bool              `json:"__TokenXentList__"`
		Pairs  []json.RawMessage `json:"pairs"`
		Scale  float64           `json:"scale"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("decode token xent list: %w: %w", xerr.ErrInternal, err)
	}
	pairs := make([]TokenPair, len(wire.Pairs))
	for i, raw := range wire.Pairs {
		var pair [2]json.RawMessage
		if err := json.Unmarshal(raw, &pair); err != nil {
			return fmt.Errorf("decode token xent pair %d: %w: %w", i, xerr.ErrInternal, err)
		}
		var tok string
		var xent float64
		if err := json.Unmarshal(pair[0], &tok); err != nil {
			return fmt.Errorf("decode token xent pair %d token: %w: %w", i, xerr.ErrInternal, err)
		}
		if err := json.Unmarshal(pair[1], &xent); err != nil {
			return fmt.Errorf("decode token xent pair %d xent: %w: %w", i, xerr.ErrInternal, err)
		}
		pairs[i] = TokenPair{Token: tok, Xent: xent}
	}
	t.Pairs = pairs
	t.Scale = wire.Scale
	return nil
}
