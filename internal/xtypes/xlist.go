package xtypes

// XList is an ordered sequence of XStrings sharing Static/Public flags and
// an optional Name, per spec.md §3. It is not associative with XString
// except through explicit conversion (ToXString).
type XList struct {
	Items  []XString
	Static bool
	Public bool
	Name   string
}

// NewXList builds a plain XList from items.
func NewXList(items ...XString) XList {
	return XList{Items: items}
}

// WithFlags returns a copy of l with the given static/public/name
// attributes, mirroring XString.WithFlags.
func (l XList) WithFlags(static, public bool, name string) XList {
	l.Static = static
	l.Public = public
	l.Name = name
	return l
}

// Len returns the number of items.
func (l XList) Len() int {
	return len(l.Items)
}

// Concat returns a new XList with both operands' items appended, carrying
// the receiver's static/public/name attributes.
func (l XList) Concat(other XList) XList {
	items := make([]XString, 0, len(l.Items)+len(other.Items))
	items = append(items, l.Items...)
	items = append(items, other.Items...)
	return XList{Items: items, Static: l.Static, Public: l.Public, Name: l.Name}
}

// ToXString concatenates all items' primary strings into a single
// XString, the explicit conversion spec.md §3 allows.
func (l XList) ToXString() XString {
	out := ""
	for _, it := range l.Items {
		out += it.Primary
	}
	return NewXString(out)
}

// MarshalJSON serializes an XList as an array of its items' primary
// strings, matching XString's own primary-string wire shape.
func (l XList) MarshalJSON() ([]byte, error) {
	primaries := make([]string, len(l.Items))
	for i, it := range l.Items {
		primaries[i] = it.Primary
	}
	return marshalJSONStrings(primaries)
}

// UnmarshalJSON restores an XList from an array of strings.
func (l *XList) UnmarshalJSON(data []byte) error {
	primaries, err := unmarshalJSONStrings(data)
	if err != nil {
		return err
	}
	items := make([]XString, len(primaries))
	for i, p := range primaries {
		items[i] = NewXString(p)
	}
	l.Items = items
	return nil
}
