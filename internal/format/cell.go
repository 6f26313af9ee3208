// Package format renders individual report cells from query records.
package format

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sprite-ai/gerrit-cli/internal/model"
)

// Field identifies the formatting rule for a column.
type Field int

const (
	FieldOther Field = iota
	FieldNumber
	FieldAge
	FieldState
	FieldSubject
	FieldOwner
	FieldCommitID
	FieldPatchSet
)

// FieldOf maps a column field name to its formatting rule. Names without a
// dedicated rule are rendered verbatim.
func FieldOf(name string) Field {
	switch name {
	case "number":
		return FieldNumber
	case "age":
		return FieldAge
	case "state":
		return FieldState
	case "subject":
		return FieldSubject
	case "owner":
		return FieldOwner
	case "commitid":
		return FieldCommitID
	case "patchset":
		return FieldPatchSet
	default:
		return FieldOther
	}
}

// Cell renders column col of review r. The number column yields an int64;
// every other known field yields a string. Unknown fields yield the record's
// value unchanged, truncated only when it is a string.
func Cell(now time.Time, col model.Column, r model.Review) (any, error) {
	var (
		text string
		err  error
	)

	switch FieldOf(col.Field) {
	case FieldNumber:
		return r.Int("number")
	case FieldAge:
		var updated int64
		updated, err = r.Int("lastUpdated")
		if err == nil {
			text = Age(now.Unix() - updated)
		}
	case FieldState:
		text, err = State(r["currentPatchSet"])
	case FieldSubject:
		text, err = r.String("subject")
		text = strings.ReplaceAll(text, "\t", "   ")
	case FieldOwner:
		text, err = owner(r)
	case FieldCommitID:
		text, err = patchSetField(r, "revision")
	case FieldPatchSet:
		text, err = patchSetField(r, "number")
	case FieldOther:
		v := r[col.Field]
		s, ok := v.(string)
		if !ok {
			if v == nil {
				return "", nil
			}
			return v, nil
		}
		text = s
	}
	if err != nil {
		return nil, fmt.Errorf("column %s: %w", col.Field, err)
	}

	return Truncate(text, col.Length), nil
}

// owner prefers the display name, then the username, then the email.
func owner(r model.Review) (string, error) {
	o, err := r.Object("owner")
	if err != nil {
		return "", err
	}
	for _, key := range []string{"name", "username", "email"} {
		if v, ok := o[key]; ok && v != nil {
			return model.ToString(v), nil
		}
	}
	return "", fmt.Errorf("%w: owner has no name, username or email", model.ErrMissingField)
}

func patchSetField(r model.Review, key string) (string, error) {
	ps, err := r.LastPatchSet()
	if err != nil {
		return "", err
	}
	v, ok := ps[key]
	if !ok || v == nil {
		return "", fmt.Errorf("%w: patch set %s", model.ErrMissingField, key)
	}
	return model.ToString(v), nil
}

// Truncate shortens s to length characters, the last three being "...".
// Caps below four keep only as many dots as fit. A length of zero leaves s
// unchanged.
func Truncate(s string, length int) string {
	if length <= 0 || utf8.RuneCountInString(s) <= length {
		return s
	}
	if length <= 3 {
		return strings.Repeat(".", length)
	}
	return string([]rune(s)[:length-3]) + "..."
}
