package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sprite-ai/gerrit-cli/internal/output"
	"github.com/sprite-ai/gerrit-cli/internal/tui"
)

func newBrowseCommand(a *app) *cobra.Command {
	opts := &listOptions{}
	cmd := &cobra.Command{
		Use:   "browse [query...]",
		Short: "Browse reviews interactively",
		Long: `Run a query and open the result in an interactive table. Press enter
to inspect the full record of the selected change.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := a.listReport(cmd.Context(), args, opts)
			if err != nil {
				return err
			}
			if len(rep.Rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No changes to browse.")
				return nil
			}
			return tui.Run(rep, output.IsTerminal(os.Stdout))
		},
	}
	opts.register(cmd)
	return cmd
}
