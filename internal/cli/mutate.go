package cli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sprite-ai/gerrit-cli/internal/mutate"
)

var (
	reviewScores   = []string{"-2", "-1", "0", "+1", "+2"}
	workflowScores = []string{"-1", "0", "+1"}
)

var mutateShort = map[mutate.Operation]string{
	mutate.OpUpdate:  "Update review(s)",
	mutate.OpAbandon: "Abandon review(s)",
	mutate.OpRestore: "Restore review(s)",
	mutate.OpRecheck: "Recheck review(s)",
}

type mutateOptions struct {
	comment  []string
	review   string
	workflow string
}

func newMutateCommand(a *app, op mutate.Operation) *cobra.Command {
	opts := &mutateOptions{}
	cmd := &cobra.Command{
		Use:   op.String() + " query...",
		Short: mutateShort[op],
		Long: fmt.Sprintf(`Run a query and %s every matching change, one review command per
change. A failure on one change does not stop the others.`, op),
		Args: requireQuery,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := opts.request(op, args)
			if err != nil {
				return err
			}
			d := &mutate.Driver{
				Remote:  a.session,
				Queries: a.cfg.Queries,
				Results: a.cfg.Results,
				Out:     cmd.OutOrStdout(),
				Logger:  a.logger,
			}
			return d.Run(cmd.Context(), a.now(), req)
		},
	}
	if op != mutate.OpRecheck {
		cmd.Flags().StringArrayVar(&opts.comment, "comment", nil, "the comment to add with this update (required)")
	}
	cmd.Flags().StringVar(&opts.review, "review", "",
		"the code review score to assign, one of "+strings.Join(reviewScores, ", "))
	cmd.Flags().StringVar(&opts.workflow, "workflow", "",
		"the workflow score to assign, one of "+strings.Join(workflowScores, ", "))
	return cmd
}

func (o *mutateOptions) request(op mutate.Operation, query []string) (mutate.Request, error) {
	req := mutate.Request{Op: op, Query: query, Comment: o.comment}
	if op != mutate.OpRecheck && len(o.comment) == 0 {
		return req, usageErrorf("%s requires --comment", op)
	}

	var err error
	if req.CodeReview, err = parseScore("review", o.review, reviewScores); err != nil {
		return req, err
	}
	if req.Workflow, err = parseScore("workflow", o.workflow, workflowScores); err != nil {
		return req, err
	}
	return req, nil
}

// parseScore validates a vote flag. An empty value means the vote is not
// changed.
func parseScore(flag, s string, choices []string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	if !slices.Contains(choices, s) {
		return nil, usageErrorf("--%s must be one of %s, got %q", flag, strings.Join(choices, ", "), s)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, usageErrorf("--%s: %v", flag, err)
	}
	return &v, nil
}
