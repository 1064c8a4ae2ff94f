// Package ir defines the host IR object model for Halcyon: contexts,
// types, attributes, operations, values, blocks and regions.
//
// The model is deliberately small. It covers what dialect layers need to
// construct IR programmatically:
//   - context-interned immutable types and attributes,
//   - schema-checked operation construction,
//   - region/block containers with typed block arguments,
//   - deterministic generic-form printing for debugging and golden tests.
//
// It is not a full compiler middle end: there is no verifier pipeline, no
// pass manager and no general text parser. A Context and everything created
// through it is single-threaded by contract.
package ir

import "fmt"

// Location identifies a source position attached to an operation for
// diagnostics. The zero value is the unknown location.
type Location struct {
	File   string
	Line   int
	Column int
}

// UnknownLoc returns the unknown location.
func UnknownLoc() Location { return Location{} }

// FileLineColLoc returns a location pointing at file:line:column.
func FileLineColLoc(file string, line, column int) Location {
	return Location{File: file, Line: line, Column: column}
}

// IsUnknown reports whether the location carries no source information.
func (l Location) IsUnknown() bool { return l.File == "" && l.Line == 0 && l.Column == 0 }

func (l Location) String() string {
	if l.IsUnknown() {
		return "loc(unknown)"
	}
	return fmt.Sprintf("loc(%q:%d:%d)", l.File, l.Line, l.Column)
}
