// Package alias expands user defined shortcuts for queries and column sets.
//
// An alias table maps a name to a list of tokens. Expansion rewrites every
// token that names an alias into that alias's tokens and repeats until a
// pass changes nothing. The token "default" stands for the table's own
// "default" entry, or the caller's default list when the table has none.
package alias

import (
	"fmt"
	"slices"

	"github.com/sprite-ai/gerrit-cli/internal/model"
)

// DefaultToken is the reserved alias that names the default list.
const DefaultToken = "default"

// Table maps alias names to token lists. Values are kept as decoded from the
// configuration file so a scalar value is caught at lookup time.
type Table map[string]any

// Expand resolves tokens against table until no token expands any further.
// An empty token list yields the default list. Order and duplicates are
// preserved.
//
// The rewrite is capped at len(table)+3 passes. An acyclic table converges
// well within that; a cyclic one is reported as a configuration error.
func Expand(tokens []string, table Table, defaults []string) ([]string, error) {
	if len(tokens) == 0 {
		return resolveDefault(table, defaults)
	}

	limit := len(table) + 3
	cur := tokens
	for i := 0; i < limit; i++ {
		next, err := rewrite(cur, table, defaults)
		if err != nil {
			return nil, err
		}
		if slices.Equal(next, cur) {
			return next, nil
		}
		cur = next
	}
	return nil, fmt.Errorf("%w: alias expansion of %v does not converge after %d passes",
		model.ErrConfiguration, tokens, limit)
}

// rewrite performs a single substitution pass.
func rewrite(tokens []string, table Table, defaults []string) ([]string, error) {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok == DefaultToken {
			d, err := resolveDefault(table, defaults)
			if err != nil {
				return nil, err
			}
			out = append(out, d...)
			continue
		}

		sub, ok, err := table.Lookup(tok)
		if err != nil {
			return nil, err
		}
		if !ok {
			out = append(out, tok)
			continue
		}
		out = append(out, sub...)
	}
	return out, nil
}

func resolveDefault(table Table, defaults []string) ([]string, error) {
	d, ok, err := table.Lookup(DefaultToken)
	if err != nil {
		return nil, err
	}
	if ok && len(d) > 0 {
		return d, nil
	}
	if len(defaults) > 0 {
		return slices.Clone(defaults), nil
	}
	return nil, fmt.Errorf("%w: no default available for expansion", model.ErrConfiguration)
}

// Lookup returns the tokens an alias expands to. ok is false when name is
// not an alias. A value that is not a list of scalars is a configuration
// error.
func (t Table) Lookup(name string) (tokens []string, ok bool, err error) {
	v, found := t[name]
	if !found || v == nil {
		return nil, false, nil
	}

	switch list := v.(type) {
	case []string:
		return slices.Clone(list), true, nil
	case []any:
		tokens = make([]string, 0, len(list))
		for _, item := range list {
			switch item.(type) {
			case map[string]any, []any, nil:
				return nil, false, fmt.Errorf("%w: alias %q contains non-scalar item %v",
					model.ErrConfiguration, name, item)
			}
			tokens = append(tokens, model.ToString(item))
		}
		return tokens, true, nil
	default:
		return nil, false, fmt.Errorf("%w: alias %q resolves to a non-list %v",
			model.ErrConfiguration, name, v)
	}
}
