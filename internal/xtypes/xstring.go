// Package xtypes implements the tokenized-score primitives shared by the
// DSL runtime: XString, XList, TokenXentList, the register file, and
// XFlag beacons (spec.md §3, §4.A).
package xtypes

// XString is an immutable text value bound to a tokenization. Primary is
// the canonical form; Aux holds alternate renderings used when judging
// variants (e.g. a rewritten candidate). Static and Public mirror the
// register attributes a value inherits once bound: Static means the
// register holding this value may only be written once; Public means the
// value may be read from presentation/untrusted contexts.
type XString struct {
	Primary string
	Aux     []string
	Static  bool
	Public  bool
}

// NewXString builds a plain, non-static, non-public XString.
func NewXString(primary string) XString {
	return XString{Primary: primary}
}

// WithFlags returns a copy of x with the given static/public flags set.
// Register writes use this to stamp a value with the register's
// attributes without mutating the original.
func (x XString) WithFlags(static, public bool) XString {
	x.Static = static
	x.Public = public
	return x
}

// String returns the primary string, satisfying fmt.Stringer.
func (x XString) String() string {
	return x.Primary
}

// Equal compares by primary string only, per spec.md §3.
func (x XString) Equal(other XString) bool {
	return x.Primary == other.Primary
}

// Concat returns a new XString with primary strings concatenated. The
// result carries neither operand's static/public flags; those are
// re-applied by whichever register the result is written to.
func (x XString) Concat(other XString) XString {
	return NewXString(x.Primary + other.Primary)
}

// MarshalJSON serializes an XString as its primary string, per spec.md §6.
func (x XString) MarshalJSON() ([]byte, error) {
	return marshalJSONString(x.Primary)
}

// UnmarshalJSON restores an XString from its primary string form. Aux,
// Static, and Public are not recoverable from this shape and are left
// zero-valued; the wire format intentionally loses them (spec.md §6).
func (x *XString) UnmarshalJSON(data []byte) error {
	s, err := unmarshalJSONString(data)
	if err != nil {
		return err
	}
	x.Primary = s
	x.Aux = nil
	x.Static = false
	x.Public = false
	return nil
}
