package runtime

import (
	"fmt"

	"github.com/xentlabs/xent-sub001/internal/judge"
	"github.com/xentlabs/xent-sub001/internal/xerr"
	"github.com/xentlabs/xent-sub001/internal/xtypes"
)

// valueKind tags which of the three expression-result shapes a Value
// holds: a DSL expression may evaluate to an XString, an XList, or a
// TokenXentList (only reward/ensure arguments ever produce the latter).
type valueKind int

const (
	kindString valueKind = iota
	kindList
	kindTokenXent
)

// value is the runtime's expression-evaluation result: a small tagged
// union mirroring xtypes.Value but widened with TokenXentList, since
// expressions (unlike registers) may produce scored results.
type value struct {
	kind valueKind
	str  xtypes.XString
	list xtypes.XList
	txl  xtypes.TokenXentList
}

func stringValue(s xtypes.XString) value { return value{kind: kindString, str: s} }
func listValue(l xtypes.XList) value     { return value{kind: kindList, list: l} }
func tokenXentValue(t xtypes.TokenXentList) value {
	return value{kind: kindTokenXent, txl: t}
}

func fromRegister(v xtypes.Value) value {
	if v.IsList() {
		return listValue(v.AsList())
	}
	return stringValue(v.AsString())
}

// toXString converts a string or list value to XString; TokenXentList has
// no string form and yields a type-kind error.
func (v value) toXString(line int) (xtypes.XString, error) {
	switch v.kind {
	case kindString:
		return v.str, nil
	case kindList:
		return v.list.ToXString(), nil
	default:
		return xtypes.XString{}, xerr.WithLine(fmt.Errorf("cannot use a TokenXentList as text: %w", xerr.ErrType), line)
	}
}

// toTokenXentList requires a TokenXentList-shaped value.
func (v value) toTokenXentList(line int) (xtypes.TokenXentList, error) {
	if v.kind != kindTokenXent {
		return xtypes.TokenXentList{}, xerr.WithLine(fmt.Errorf("expected a scored (xed) value: %w", xerr.ErrType), line)
	}
	return v.txl, nil
}

// length is the measure `len(expr)` takes in an `ensure` condition: token
// count for text, item count for a list, pair count for a scored value.
func (v value) length() int {
	switch v.kind {
	case kindString:
		return len(judge.Tokenize(v.str.Primary))
	case kindList:
		return v.list.Len()
	default:
		return len(v.txl.Pairs)
	}
}

// toRegisterValue converts to the xtypes.Value shape a register can hold;
// TokenXentList cannot be assigned to a register.
func (v value) toRegisterValue(line int) (xtypes.Value, error) {
	switch v.kind {
	case kindString:
		return xtypes.StringValue(v.str), nil
	case kindList:
		return xtypes.ListValue(v.list), nil
	default:
		return xtypes.Value{}, xerr.WithLine(fmt.Errorf("cannot assign a TokenXentList to a register: %w", xerr.ErrType), line)
	}
}
