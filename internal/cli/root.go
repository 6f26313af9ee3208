// Package cli implements the gerrit command tree.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sprite-ai/gerrit-cli/internal/config"
	"github.com/sprite-ai/gerrit-cli/internal/gerrit"
	"github.com/sprite-ai/gerrit-cli/internal/logging"
	"github.com/sprite-ai/gerrit-cli/internal/model"
	"github.com/sprite-ai/gerrit-cli/internal/mutate"
)

// app carries what every subcommand needs once the root command has run
// its setup.
type app struct {
	cfg     config.Config
	session *gerrit.Session
	logger  *zap.Logger

	runner gerrit.Runner // nil runs ssh
	now    func() time.Time
}

type rootOptions struct {
	host       string
	port       int
	dryRun     bool
	configFile string
	verbose    int
}

// Execute runs the command line and returns the first error.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return newRootCommand(&app{now: time.Now}).ExecuteContext(ctx)
}

func newRootCommand(a *app) *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "gerrit",
		Short: "A simple gerrit command line interface",
		Long: `List, show and update Gerrit reviews over the ssh command interface.

Queries and column lists may name aliases defined in the configuration
file (~/.gerrit-cli/gerrit-cli.json by default).

Examples:
  gerrit ls                               # owner:self status:open
  gerrit ls project:openstack/nova --show number subject:left:60
  gerrit update mine --comment "looks good" --review +1
  gerrit recheck 12345 --dry-run`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, opts)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.host, "host", "", "the gerrit host (default "+config.DefaultHost+")")
	pf.IntVar(&opts.port, "port", 0, fmt.Sprintf("the gerrit port (default %d)", config.DefaultPort))
	pf.BoolVar(&opts.dryRun, "dry-run", false, "print commands instead of executing them")
	pf.StringVar(&opts.configFile, "config-file", config.DefaultPath, "the gerrit-cli configuration file to use")
	pf.CountVarP(&opts.verbose, "verbose", "v", "verbose output (repeat for debug)")

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	root.AddCommand(
		newLsCommand(a),
		newShowCommand(a),
		newMutateCommand(a, mutate.OpUpdate),
		newMutateCommand(a, mutate.OpAbandon),
		newMutateCommand(a, mutate.OpRestore),
		newMutateCommand(a, mutate.OpRecheck),
		newBrowseCommand(a),
		newVersionCommand(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, opts *rootOptions) error {
	if a.logger == nil {
		logger, err := logging.New(opts.verbose)
		if err != nil {
			return err
		}
		a.logger = logger
	}
	if a.now == nil {
		a.now = time.Now
	}

	cfg, err := config.Load(opts.configFile, cmd.Flags().Changed("config-file"), config.Overrides{
		Host:   opts.host,
		Port:   opts.port,
		DryRun: opts.dryRun,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrConfiguration, err)
	}
	a.cfg = cfg
	a.logger.Debug("configuration loaded",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.Bool("dry-run", cfg.DryRun),
		zap.Int("query-aliases", len(cfg.Queries)),
		zap.Int("result-aliases", len(cfg.Results)),
	)

	a.session = gerrit.NewSession(gerrit.Options{
		Host:      cfg.Host,
		Port:      cfg.Port,
		User:      cfg.User,
		DryRun:    cfg.DryRun,
		DryRunOut: cmd.OutOrStdout(),
		Runner:    a.runner,
		Logger:    a.logger,
	})
	return nil
}

// requireQuery rejects commands given no query terms.
func requireQuery(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return usageErrorf("%s requires at least one query term", cmd.Name())
	}
	return nil
}
