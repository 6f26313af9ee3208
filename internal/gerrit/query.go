package gerrit

import (
	"context"
	"fmt"
)

// QueryOptions selects the optional sections of query output.
type QueryOptions struct {
	Limit int // 0 means no limit

	CurrentPatchSet bool
	PatchSets       bool
	AllApprovals    bool
	Files           bool
	Comments        bool
	CommitMessage   bool
	Dependencies    bool
	AllReviewers    bool
}

// DefaultQueryOptions requests everything the report columns can use.
func DefaultQueryOptions() QueryOptions {
	return QueryOptions{
		CurrentPatchSet: true,
		PatchSets:       true,
		AllApprovals:    true,
	}
}

// QueryArgs builds the full command line for a query.
func (s *Session) QueryArgs(tokens []string, opts QueryOptions) []string {
	args := s.sshArgs("gerrit query")
	args = append(args, "--format=JSON")

	flags := []struct {
		on   bool
		flag string
	}{
		{opts.CurrentPatchSet, "--current-patch-set"},
		{opts.PatchSets, "--patch-sets"},
		{opts.AllApprovals, "--all-approvals"},
		{opts.Files, "--files"},
		{opts.Comments, "--comments"},
		{opts.CommitMessage, "--commit-message"},
		{opts.Dependencies, "--dependencies"},
		{opts.AllReviewers, "--all-reviewers"},
	}
	for _, f := range flags {
		if f.on {
			args = append(args, f.flag)
		}
	}

	args = append(args, tokens...)
	if opts.Limit > 0 {
		args = append(args, fmt.Sprintf("limit:%d", opts.Limit))
	}
	return args
}

// Query runs a query and returns its raw line-delimited JSON output. In
// dry-run mode the output is empty.
func (s *Session) Query(ctx context.Context, tokens []string, opts QueryOptions) (string, error) {
	return s.run(ctx, s.QueryArgs(tokens, opts))
}
