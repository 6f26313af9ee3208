// Package mutate applies review state changes to every change a query
// matches.
package mutate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/sprite-ai/gerrit-cli/internal/alias"
	"github.com/sprite-ai/gerrit-cli/internal/gerrit"
	"github.com/sprite-ai/gerrit-cli/internal/model"
	"github.com/sprite-ai/gerrit-cli/internal/report"
)

// Operation is a review mutation.
type Operation int

const (
	OpUpdate Operation = iota
	OpAbandon
	OpRestore
	OpRecheck
)

func (o Operation) String() string {
	switch o {
	case OpUpdate:
		return "update"
	case OpAbandon:
		return "abandon"
	case OpRestore:
		return "restore"
	case OpRecheck:
		return "recheck"
	default:
		return "unknown"
	}
}

// columns recovers what each mutation needs from the report.
var columns = []string{"number", "subject:left:70", "commitid", "patchset"}

const (
	colNumber = iota
	colSubject
	colCommit
	colPatchSet
)

// Remote is the part of a gerrit session the driver uses.
type Remote interface {
	Query(ctx context.Context, tokens []string, opts gerrit.QueryOptions) (string, error)
	Review(ctx context.Context, req gerrit.ReviewRequest) error
}

// Request describes one mutation run.
type Request struct {
	Op         Operation
	Query      []string
	Comment    []string // ignored by OpRecheck
	CodeReview *int
	Workflow   *int
}

// Driver resolves a query and reviews each matching change in turn.
type Driver struct {
	Remote  Remote
	Queries alias.Table
	Results alias.Table
	Out     io.Writer
	Logger  *zap.Logger
}

// Run queries the server and issues one review per matching change, in
// report order. A failed review does not stop the remaining ones; all
// failures are returned together.
func (d *Driver) Run(ctx context.Context, now time.Time, req Request) error {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}
	out := d.Out
	if out == nil {
		out = io.Discard
	}

	tmpl, err := reviewTemplate(req)
	if err != nil {
		return err
	}
	query, err := alias.BuildQuery(req.Query, d.Queries)
	if err != nil {
		return err
	}
	cols, err := alias.CompileColumns(columns, d.Results, nil)
	if err != nil {
		return err
	}
	if err := checkColumns(cols); err != nil {
		return err
	}

	raw, err := d.Remote.Query(ctx, query, gerrit.DefaultQueryOptions())
	if err != nil {
		return err
	}
	rep, err := report.Generate(now, raw, cols)
	if err != nil {
		return err
	}
	log.Debug("changes to review", zap.Stringer("op", req.Op), zap.Int("count", len(rep.Rows)))

	var errs []error
	for _, row := range rep.Rows {
		fmt.Fprintf(out, "%s review %v,%v [%v]\n",
			req.Op, row[colNumber], row[colPatchSet], row[colSubject])

		rr := tmpl
		rr.Commit = model.ToString(row[colCommit])
		if err := d.Remote.Review(ctx, rr); err != nil {
			errs = append(errs, fmt.Errorf("%s review %v: %w", req.Op, row[colNumber], err))
		}
	}
	return errors.Join(errs...)
}

// reviewTemplate fills in everything but the commit.
func reviewTemplate(req Request) (gerrit.ReviewRequest, error) {
	rr := gerrit.ReviewRequest{
		Message:    req.Comment,
		CodeReview: req.CodeReview,
		Workflow:   req.Workflow,
	}
	switch req.Op {
	case OpUpdate:
	case OpRecheck:
		rr.Message = []string{"recheck"}
	case OpAbandon:
		rr.Action = gerrit.ActionAbandon
	case OpRestore:
		rr.Action = gerrit.ActionRestore
	default:
		return rr, fmt.Errorf("unknown operation %d", req.Op)
	}
	return rr, nil
}

// checkColumns guards against a results alias that renames the internal
// columns.
func checkColumns(cols []model.Column) error {
	want := []string{"number", "subject", "commitid", "patchset"}
	if len(cols) != len(want) {
		return fmt.Errorf("%w: results aliases must not redefine %v", model.ErrConfiguration, want)
	}
	for i, c := range cols {
		if c.Field != want[i] {
			return fmt.Errorf("%w: results aliases must not redefine %q", model.ErrConfiguration, want[i])
		}
	}
	return nil
}
