// Package model defines the core data types shared across gerrit-cli.
package model

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Alignment controls how a column is justified when rendered as a table.
type Alignment int

const (
	AlignRight Alignment = iota
	AlignLeft
)

func (a Alignment) String() string {
	switch a {
	case AlignRight:
		return "right"
	case AlignLeft:
		return "left"
	default:
		return "unknown"
	}
}

// ParseAlignment accepts "left", "right" and the short forms "l" and "r".
// An empty string selects AlignRight.
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(s) {
	case "", "r", "right":
		return AlignRight, nil
	case "l", "left":
		return AlignLeft, nil
	default:
		return AlignRight, fmt.Errorf("%w: unknown alignment %q", ErrConfiguration, s)
	}
}

// Column describes one column of a report.
type Column struct {
	Field  string // record field the column is rendered from
	Name   string // header shown to the user
	Align  Alignment
	Length int // maximum display length, 0 means unbounded
}

// NewColumn builds a Column whose display name is field with its first
// character upper-cased.
func NewColumn(field string, align Alignment, length int) Column {
	return Column{
		Field:  field,
		Name:   DisplayName(field),
		Align:  align,
		Length: length,
	}
}

// DisplayName upper-cases the first character of field and leaves the rest
// untouched.
func DisplayName(field string) string {
	r, size := utf8.DecodeRuneInString(field)
	if r == utf8.RuneError {
		return field
	}
	return string(unicode.ToUpper(r)) + field[size:]
}

// VoteKind is the category of an approval cast on a patch set.
type VoteKind int

const (
	VoteCodeReview VoteKind = iota
	VoteWorkflow
	VoteVerified
	VoteRollcall
)

func (k VoteKind) String() string {
	switch k {
	case VoteCodeReview:
		return "Code-Review"
	case VoteWorkflow:
		return "Workflow"
	case VoteVerified:
		return "Verified"
	case VoteRollcall:
		return "Rollcall-Vote"
	default:
		return "unknown"
	}
}

// ParseVoteKind maps the approval type reported by the server to a VoteKind.
// Any other type is a protocol error.
func ParseVoteKind(s string) (VoteKind, error) {
	switch s {
	case "Code-Review":
		return VoteCodeReview, nil
	case "Workflow":
		return VoteWorkflow, nil
	case "Verified":
		return VoteVerified, nil
	case "Rollcall-Vote":
		return VoteRollcall, nil
	default:
		return 0, fmt.Errorf("%w: unknown approval type %q", ErrProtocol, s)
	}
}

// Approval is a single vote on the current patch set.
type Approval struct {
	Kind  VoteKind
	Value int
}
