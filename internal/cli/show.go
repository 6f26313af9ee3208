package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sprite-ai/gerrit-cli/internal/alias"
	"github.com/sprite-ai/gerrit-cli/internal/gerrit"
	"github.com/sprite-ai/gerrit-cli/internal/output"
	"github.com/sprite-ai/gerrit-cli/internal/report"
)

func newShowCommand(a *app) *cobra.Command {
	var opts gerrit.QueryOptions
	cmd := &cobra.Command{
		Use:   "show query...",
		Short: "Show review(s)",
		Long: `Run a query and print every matching change as indented JSON.
Output is coloured when stdout is a terminal.`,
		Args: requireQuery,
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := alias.BuildQuery(args, a.cfg.Queries)
			if err != nil {
				return err
			}
			a.logger.Debug("resolved query", zap.Strings("query", query))

			opts.CurrentPatchSet = true
			raw, err := a.session.Query(cmd.Context(), query, opts)
			if err != nil {
				return err
			}
			reviews, err := report.Parse(raw)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			color := output.IsTerminal(out)
			for _, r := range reviews {
				if err := output.WriteRecord(out, r, color); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.Files, "files", false, "include the files of each patch set")
	cmd.Flags().BoolVar(&opts.Comments, "comments", false, "include review comments")
	cmd.Flags().BoolVar(&opts.CommitMessage, "commit-message", false, "include the full commit message")
	cmd.Flags().BoolVar(&opts.Dependencies, "dependencies", false, "include depends-on and needed-by")
	cmd.Flags().BoolVar(&opts.AllReviewers, "all-reviewers", false, "include every reviewer")
	return cmd
}
