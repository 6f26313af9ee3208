package alias

// DefaultQuery is used when neither the caller nor the queries table names
// a default.
var DefaultQuery = []string{"owner:self", "status:open"}

// BuildQuery expands query tokens against the queries table. No tokens means
// the default query.
func BuildQuery(tokens []string, queries Table) ([]string, error) {
	if len(tokens) == 0 {
		tokens = []string{DefaultToken}
	}
	return Expand(tokens, queries, DefaultQuery)
}
