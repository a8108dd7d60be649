package runtime

import (
	"fmt"
	"strings"

	"github.com/xentlabs/xent-sub001/internal/dsl"
	"github.com/xentlabs/xent-sub001/internal/judge"
	"github.com/xentlabs/xent-sub001/internal/xerr"
	"github.com/xentlabs/xent-sub001/internal/xtypes"
)

// eval evaluates a DSL expression against the current register file,
// judge, and text generator (spec.md §4.C).
func (r *roundRunner) eval(expr dsl.Expr) (value, error) {
	switch e := expr.(type) {
	case *dsl.StringLit:
		return stringValue(xtypes.NewXString(e.Value)), nil

	case *dsl.RegisterRef:
		v, ok := r.registers.Get(e.Name)
		if !ok {
			return value{}, xerr.WithLine(fmt.Errorf("register %q read before assignment: %w", e.Name, xerr.ErrGame), e.L)
		}
		return fromRegister(v), nil

	case *dsl.Concat:
		return r.evalConcat(e)

	case *dsl.StoryCall:
		return stringValue(r.textgen.Next()), nil

	case *dsl.RemoveCommonWords:
		return r.evalRemoveCommonWords(e)

	case *dsl.Xed:
		return r.evalXed(e)

	default:
		return value{}, xerr.WithLine(fmt.Errorf("unhandled expression node %T: %w", expr, xerr.ErrInternal), expr.Line())
	}
}

func (r *roundRunner) evalConcat(e *dsl.Concat) (value, error) {
	left, err := r.eval(e.Left)
	if err != nil {
		return value{}, err
	}
	right, err := r.eval(e.Right)
	if err != nil {
		return value{}, err
	}
	if left.kind == kindTokenXent || right.kind == kindTokenXent {
		if left.kind != kindTokenXent || right.kind != kindTokenXent {
			return value{}, xerr.WithLine(fmt.Errorf("cannot combine a scored value with text: %w", xerr.ErrType), e.L)
		}
		sum, err := left.txl.Add(right.txl)
		if err != nil {
			return value{}, xerr.WithLine(fmt.Errorf("%w: %w", err, xerr.ErrType), e.L)
		}
		return tokenXentValue(sum), nil
	}
	ls, err := left.toXString(e.L)
	if err != nil {
		return value{}, err
	}
	rs, err := right.toXString(e.L)
	if err != nil {
		return value{}, err
	}
	return stringValue(ls.Concat(rs)), nil
}

func (r *roundRunner) evalRemoveCommonWords(e *dsl.RemoveCommonWords) (value, error) {
	xv, err := r.eval(e.X)
	if err != nil {
		return value{}, err
	}
	yv, err := r.eval(e.Y)
	if err != nil {
		return value{}, err
	}
	xs, err := xv.toXString(e.L)
	if err != nil {
		return value{}, err
	}
	ys, err := yv.toXString(e.L)
	if err != nil {
		return value{}, err
	}
	return stringValue(removeCommonWords(xs, ys)), nil
}

// removeCommonWords returns x with tokens whose lowercased surface appears
// among y's tokens removed, preserving x's remaining tokens and separators
// verbatim (spec.md §4.C).
func removeCommonWords(x, y xtypes.XString) xtypes.XString {
	yTokens := judge.Tokenize(y.Primary)
	common := make(map[string]bool, len(yTokens))
	for _, t := range yTokens {
		common[strings.ToLower(t)] = true
	}
	xTokens := judge.Tokenize(x.Primary)
	kept := make([]string, 0, len(xTokens))
	for _, t := range xTokens {
		if common[strings.ToLower(t)] {
			continue
		}
		kept = append(kept, t)
	}
	return xtypes.NewXString(judge.Detokenize(kept))
}

func (r *roundRunner) evalXed(e *dsl.Xed) (value, error) {
	ctxVal, err := r.eval(e.Context)
	if err != nil {
		return value{}, err
	}
	targetVal, err := r.eval(e.Target)
	if err != nil {
		return value{}, err
	}
	ctx, err := ctxVal.toXString(e.L)
	if err != nil {
		return value{}, err
	}
	target, err := targetVal.toXString(e.L)
	if err != nil {
		return value{}, err
	}
	return tokenXentValue(r.judge.Xent(ctx, target)), nil
}
