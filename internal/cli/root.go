package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/deppfellow/go-branchio/internal/config"
	"github.com/deppfellow/go-branchio/internal/httpclient"
	"github.com/deppfellow/go-branchio/internal/logger"
	"github.com/deppfellow/go-branchio/pkg/branchio"
)

// app holds what the subcommands share once the configuration is loaded.
type app struct {
	cfg    *config.Config
	logger zerolog.Logger
	client *branchio.Client
}

func Execute() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func NewRootCmd() *cobra.Command {
	a := &app{}
	var verbose bool
	var baseURL string

	cmd := &cobra.Command{
		Use:          "branchio",
		Short:        "Create Branch deep links from the command line",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("verbose") {
				cfg.Branch.Verbose = verbose
			}
			if baseURL != "" {
				cfg.Branch.BaseURL = baseURL
			}

			// Flags bypass Load, so run the same checks on the result.
			if err := cfg.Validate(); err != nil {
				return err
			}

			log, err := logger.NewWithWriter(cmd.ErrOrStderr(), cfg)
			if err != nil {
				return err
			}

			a.setup(cfg, log)
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every API call before it is made")
	cmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "API base URL (overrides BRANCHIO_BRANCH_BASE_URL)")

	cmd.AddCommand(linkCmd(a))
	cmd.AddCommand(bulkCmd(a))
	return cmd
}

func (a *app) setup(cfg *config.Config, log zerolog.Logger) {
	a.cfg = cfg
	a.logger = log
	a.client = branchio.NewClient(cfg.Branch.Key,
		branchio.WithBaseURL(cfg.Branch.BaseURL),
		branchio.WithHTTPClient(httpclient.New(httpclient.DefaultConfig().WithTimeout(cfg.Branch.Timeout))),
		branchio.WithLogger(&a.logger),
		branchio.WithVerbose(cfg.Branch.Verbose),
	)
}
