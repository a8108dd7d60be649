package xtypes

import "fmt"

// XFlag is a named jump target within a program, used by `ensure` on
// failure (spec.md §3, glossary: Beacon).
type XFlag struct {
	Name string
	Line int
}

// NewXFlag builds an XFlag for the given label name and 1-indexed line.
func NewXFlag(name string, line int) XFlag {
	return XFlag{Name: name, Line: line}
}

func (f XFlag) String() string {
	return fmt.Sprintf("Flag: %s (line %d)", f.Name, f.Line)
}
