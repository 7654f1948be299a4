package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lexdesk/legal-assistant/internal/deadline"
	"github.com/lexdesk/legal-assistant/internal/search"
	"github.com/lexdesk/legal-assistant/internal/web"
)

func serveCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web interface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv, err := a.server(ctx)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			return srv.ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to the configured one)")
	return cmd
}

// server wires the web handlers from configuration.
func (a *app) server(ctx context.Context) (*web.Server, error) {
	tracker, err := deadline.NewTracker(deadline.NewJSONStore(a.cfg.Deadlines.Path),
		deadline.WithClock(a.now),
		deadline.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}
	catalogue, err := search.LoadCatalogue(a.cfg.Search.Catalogue)
	if err != nil {
		return nil, err
	}
	a.logger.Info("web server configured",
		zap.String("deadlines", a.cfg.Deadlines.Path),
		zap.Int("cases", len(catalogue.Records())),
		zap.String("model", a.cfg.Assistant.Model))

	return web.NewServer(web.Deps{
		Tracker:        tracker,
		Catalogue:      catalogue,
		Assistant:      a.assistant(ctx),
		Calculator:     a.calculator(),
		AssessmentYear: a.cfg.Tax.AssessmentYear,
		UpcomingDays:   a.cfg.Deadlines.UpcomingDays,
		Logger:         a.logger,
	})
}
