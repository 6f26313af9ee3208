package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sprite-ai/gerrit-cli/internal/alias"
	"github.com/sprite-ai/gerrit-cli/internal/gerrit"
	"github.com/sprite-ai/gerrit-cli/internal/output"
	"github.com/sprite-ai/gerrit-cli/internal/report"
)

type listOptions struct {
	show   []string
	format string
	limit  int
}

func (o *listOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&o.show, "show", nil, "columns to display, as field[:align[:length]] or a results alias")
	cmd.Flags().IntVar(&o.limit, "limit", 0, "return at most this many changes")
}

func newLsCommand(a *app) *cobra.Command {
	opts := &listOptions{}
	cmd := &cobra.Command{
		Use:   "ls [query...]",
		Short: "List reviews",
		Long: `Run a query and print one row per matching change. Query terms and
--show columns may be aliases from the configuration file.

Examples:
  gerrit ls
  gerrit ls status:open project:openstack/nova --show number,owner,subject:l:50
  gerrit ls mine --output-format csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.ParseFormat(opts.format)
			if err != nil {
				return &usageError{err: err}
			}
			rep, err := a.listReport(cmd.Context(), args, opts)
			if err != nil {
				return err
			}
			return output.Write(cmd.OutOrStdout(), format, rep)
		},
	}
	opts.register(cmd)
	cmd.Flags().StringVar(&opts.format, "output-format", "TABLE",
		"output format, one of "+strings.Join(output.Formats, ", "))
	return cmd
}

// listReport resolves the query and columns, runs the query and formats
// the result.
func (a *app) listReport(ctx context.Context, args []string, opts *listOptions) (*report.Report, error) {
	query, err := alias.BuildQuery(args, a.cfg.Queries)
	if err != nil {
		return nil, err
	}
	cols, err := alias.CompileColumns(opts.show, a.cfg.Results, nil)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("resolved listing",
		zap.Strings("query", query),
		zap.Any("columns", cols),
	)

	qopts := gerrit.DefaultQueryOptions()
	qopts.Limit = opts.limit
	raw, err := a.session.Query(ctx, query, qopts)
	if err != nil {
		return nil, err
	}
	return report.Generate(a.now(), raw, cols)
}
