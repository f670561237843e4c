package main

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/petlist/internal/api"
	"github.com/jask/petlist/internal/config"
	"github.com/jask/petlist/internal/graphql"
	"github.com/jask/petlist/internal/logging"
	"github.com/jask/petlist/internal/tui"
)

// env is what every command shares once flags are parsed: the resolved
// config and the single API client.
type env struct {
	cfg    config.Config
	svc    api.Service
	closer io.Closer
}

type globalFlags struct {
	endpoint string
	logLevel string
	logFile  string
}

func newRootCmd() (*cobra.Command, *env) {
	e := &env{}
	var flags globalFlags

	root := &cobra.Command{
		Use:          "petlist",
		Short:        "Browse and edit a pet collection served over GraphQL",
		Long:         "petlist lists, adds, edits and deletes pets through a GraphQL endpoint.\nRun without a subcommand for the interactive screen.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup(flags)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p := tea.NewProgram(tui.New(cmd.Context(), e.svc), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err := p.Run()
			return err
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.endpoint, "endpoint", "", "GraphQL endpoint (overrides client.endpoint)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warning, error (overrides log.level)")
	pf.StringVar(&flags.logFile, "log-file", "", `log destination, "-" for stderr (overrides log.file)`)

	root.AddCommand(
		newListCmd(e),
		newAddCmd(e),
		newEditCmd(e),
		newDeleteCmd(e),
		newServeCmd(e),
	)
	return root, e
}

func (e *env) setup(flags globalFlags) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if flags.endpoint != "" {
		cfg.Client.Endpoint = flags.endpoint
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if flags.logFile != "" {
		cfg.Log.File = flags.logFile
	}

	closer, err := logging.Setup(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	gql, err := graphql.New(cfg.Client.Endpoint, cfg.Client.Timeout)
	if err != nil {
		_ = closer.Close()
		return err
	}

	e.cfg = cfg
	e.closer = closer
	e.svc = api.NewClient(gql)
	return nil
}

func (e *env) close() error {
	if e.closer == nil {
		return nil
	}
	err := e.closer.Close()
	e.closer = nil
	return err
}
