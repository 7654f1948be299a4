// Package cli implements the lexdesk command line.
package cli

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lexdesk/legal-assistant/internal/assistant"
	"github.com/lexdesk/legal-assistant/internal/config"
	"github.com/lexdesk/legal-assistant/internal/domain"
	"github.com/lexdesk/legal-assistant/internal/logging"
)

// app is the state shared by every subcommand. Configuration and logger are
// populated before any subcommand runs.
type app struct {
	configPath string
	verbose    bool

	cfg    *domain.Configuration
	logger *zap.Logger

	now       func() time.Time
	generator func(ctx context.Context, cfg domain.AssistantConfig) assistant.Generator
}

func newApp() *app {
	return &app{now: time.Now, generator: assistant.FromConfig}
}

func Execute() {
	cmd := newRootCmd(newApp())
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "lexdesk",
		Short:        "LexDesk: tools for Indian legal practice",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "configuration file (YAML)")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		taxCmd(a),
		diffCmd(a),
		citeCmd(a),
		deadlineCmd(a),
		searchCmd(a),
		askCmd(a),
		chatCmd(a),
		serveCmd(a),
		configCmd(a),
	)
	return cmd
}

func (a *app) init() error {
	cfg, err := config.NewInputParser().Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if a.logger != nil {
		return nil
	}
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		Verbose:     a.verbose,
	})
	if err != nil {
		return err
	}
	a.logger = logger
	a.logger.Debug("configuration loaded", zap.String("path", a.configPath))
	return nil
}

// assistant builds the assistant from configuration.
func (a *app) assistant(ctx context.Context) *assistant.Assistant {
	return assistant.New(a.generator(ctx, a.cfg.Assistant),
		assistant.WithLogger(a.logger),
		assistant.WithMaxContextChars(a.cfg.Assistant.MaxContextChars))
}
