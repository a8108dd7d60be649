package xtypes

import (
	"fmt"

	"github.com/xentlabs/xent-sub001/internal/xerr"
)

// Register names fixed by spec.md §3/glossary.
const (
	RegA = "a"
	RegB = "b"
	RegC = "c"
	RegL = "l" // list-valued, reserved by some games
	RegS = "s"
	RegT = "t"
	RegX = "x"
	RegY = "y"
	RegP = "p"
)

// AllRegisters, StaticRegisters, PublicRegisters, and ListRegisters mirror
// constants.py's ALL_REGISTERS/STATIC_REGISTERS/PUBLIC_REGISTERS/
// LIST_REGISTERS.
var (
	AllRegisters    = []string{RegA, RegB, RegC, RegL, RegS, RegT, RegX, RegY, RegP}
	StaticRegisters = []string{RegA, RegB, RegC}
	PublicRegisters = []string{RegA, RegB, RegP}
	ListRegisters   = []string{RegL}
)

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// baseLetter returns the register-class letter for a register name. A
// register name is a fixed letter optionally followed by digits (e.g.
// "s", "s1", "x1"), one slot of that letter's variable class, matching
// NUM_VARIABLES_PER_REGISTER in the original implementation: games such
// as dex/multi address several same-letter variables (s1, s2, s3) while
// the simple one-shot games just use the bare letter.
func baseLetter(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	letter := name[:1]
	if letter < "a" || letter > "z" {
		return "", false
	}
	for _, c := range name[1:] {
		if c < '0' || c > '9' {
			return "", false
		}
	}
	return letter, true
}

// IsValidRegister reports whether name is a fixed register letter,
// optionally suffixed with digits.
func IsValidRegister(name string) bool {
	letter, ok := baseLetter(name)
	if !ok {
		return false
	}
	return contains(AllRegisters, letter)
}

// IsStaticRegister reports whether name is write-once.
func IsStaticRegister(name string) bool {
	letter, ok := baseLetter(name)
	return ok && contains(StaticRegisters, letter)
}

// IsPublicRegister reports whether name is visible to presentation.
func IsPublicRegister(name string) bool {
	letter, ok := baseLetter(name)
	return ok && contains(PublicRegisters, letter)
}

// IsListRegister reports whether name holds an XList rather than XString.
func IsListRegister(name string) bool {
	letter, ok := baseLetter(name)
	return ok && contains(ListRegisters, letter)
}

// Value is the union type a register may hold: either an XString or an
// XList, never both.
type Value struct {
	str    *XString
	list   *XList
	isList bool
}

// StringValue wraps an XString as a register Value.
func StringValue(s XString) Value {
	return Value{str: &s}
}

// ListValue wraps an XList as a register Value.
func ListValue(l XList) Value {
	return Value{list: &l, isList: true}
}

// IsList reports whether this Value holds an XList.
func (v Value) IsList() bool {
	return v.isList
}

// AsString returns the held XString. Panics (a programmer error, caught by
// callers via IsList) if this Value holds an XList.
func (v Value) AsString() XString {
	if v.isList {
		panic("xtypes: Value.AsString called on a list-valued register")
	}
	return *v.str
}

// AsList returns the held XList. Panics if this Value holds an XString.
func (v Value) AsList() XList {
	if !v.isList {
		panic("xtypes: Value.AsList called on a string-valued register")
	}
	return *v.list
}

// ToXString converts either shape to a plain XString, concatenating list
// items if necessary. Used by expressions that accept both forms.
func (v Value) ToXString() XString {
	if v.isList {
		return v.list.ToXString()
	}
	return *v.str
}

// RegisterFile is the per-round mapping from register name to Value,
// spec.md §3. At most one value per register; writing an already-set
// static register is an ErrGame.
type RegisterFile struct {
	values map[string]Value
}

// NewRegisterFile returns an empty register file.
func NewRegisterFile() *RegisterFile {
	return &RegisterFile{values: make(map[string]Value)}
}

// Get returns the value bound to name and whether it is bound.
func (r *RegisterFile) Get(name string) (Value, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Set binds name to v, stamping v with the register's static/public
// attributes. Returns an ErrGame if name is static and already bound.
func (r *RegisterFile) Set(name string, v Value) error {
	if !IsValidRegister(name) {
		return fmt.Errorf("unknown register %q: %w", name, xerr.ErrGame)
	}
	if _, ok := r.values[name]; ok && IsStaticRegister(name) {
		return fmt.Errorf("register %q is static and already assigned: %w", name, xerr.ErrGame)
	}
	static := IsStaticRegister(name)
	public := IsPublicRegister(name)
	if v.isList {
		l := v.list.WithFlags(static, public, v.list.Name)
		v = ListValue(l)
	} else {
		s := v.str.WithFlags(static, public)
		v = StringValue(s)
	}
	r.values[name] = v
	return nil
}

// PublicSnapshot returns a copy of the register file restricted to public
// registers, the view presentation functions and other players may see
// (spec.md §4.J).
func (r *RegisterFile) PublicSnapshot() map[string]Value {
	out := make(map[string]Value)
	for name, v := range r.values {
		if IsPublicRegister(name) {
			out[name] = v
		}
	}
	return out
}

// Snapshot returns a shallow copy of the full register file, public or
// not. The runtime builds the presentation state for the eliciting
// player's prompt from it; elicit_request events use PublicSnapshot.
func (r *RegisterFile) Snapshot() map[string]Value {
	out := make(map[string]Value, len(r.values))
	for name, v := range r.values {
		out[name] = v
	}
	return out
}
