// Package web serves every LexDesk tool as a tabbed web page backed by a
// JSON API. The server keeps no per-user state: chat history and loaded
// files travel in request and response bodies.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lexdesk/legal-assistant/internal/assistant"
	"github.com/lexdesk/legal-assistant/internal/calculation"
	"github.com/lexdesk/legal-assistant/internal/deadline"
	"github.com/lexdesk/legal-assistant/internal/domain"
	"github.com/lexdesk/legal-assistant/internal/search"
)

// maxUploadBytes bounds multipart uploads.
const maxUploadBytes = 32 << 20

// Deps are the collaborators the handlers call. Only Tracker is required.
type Deps struct {
	Tracker        *deadline.Tracker
	Catalogue      *search.Catalogue
	Assistant      *assistant.Assistant
	Calculator     *calculation.Calculator
	AssessmentYear string
	UpcomingDays   int
	Logger         *zap.Logger
}

// Server holds the handlers and their collaborators.
type Server struct {
	calc      *calculation.Calculator
	tracker   *deadline.Tracker
	catalogue *search.Catalogue
	assistant *assistant.Assistant
	year      string
	upcoming  int
	logger    *zap.Logger
}

// NewServer fills unset dependencies with defaults: the bundled catalogue,
// a disabled assistant and a quiet calculator.
func NewServer(d Deps) (*Server, error) {
	if d.Tracker == nil {
		return nil, errors.New("web: deadline tracker is required")
	}
	s := &Server{
		calc:      d.Calculator,
		tracker:   d.Tracker,
		catalogue: d.Catalogue,
		assistant: d.Assistant,
		year:      d.AssessmentYear,
		upcoming:  d.UpcomingDays,
		logger:    d.Logger,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.calc == nil {
		s.calc = calculation.NewCalculator()
		s.calc.SetLogger(s.logger.Sugar())
	}
	if s.catalogue == nil {
		s.catalogue = search.Default()
	}
	if s.assistant == nil {
		s.assistant = assistant.New(assistant.Disabled(""), assistant.WithLogger(s.logger))
	}
	if s.year == "" {
		s.year = domain.DefaultAssessmentYear
	}
	if s.upcoming <= 0 {
		s.upcoming = deadline.DefaultUpcomingDays
	}
	return s, nil
}

// Router builds the gin engine with middleware and every route.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = maxUploadBytes
	r.Use(requestID(), accessLog(s.logger), recovery(s.logger))

	r.GET("/", s.index)
	r.StaticFS("/static", staticFS())
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	api := r.Group("/api")
	{
		tax := api.Group("/tax")
		{
			tax.POST("/calculate", s.calculateTax)
			tax.POST("/compare", s.compareRegimes)
			tax.POST("/analyze", s.analyzeDeductions)
			tax.POST("/report", s.taxReport)
			tax.GET("/slabs/:regime", s.slabs)
		}

		api.POST("/diff", s.diffDocuments)
		api.POST("/files/extract", s.extractFile)

		api.GET("/citations/options", s.citationOptions)
		api.POST("/citations", s.generateCitation)

		deadlines := api.Group("/deadlines")
		{
			deadlines.GET("", s.listDeadlines)
			deadlines.POST("", s.createDeadline)
			deadlines.GET("/upcoming", s.upcomingDeadlines)
			deadlines.GET("/export", s.exportDeadlines)
			deadlines.GET("/:id", s.getDeadline)
			deadlines.PUT("/:id", s.updateDeadline)
			deadlines.DELETE("/:id", s.deleteDeadline)
		}

		api.GET("/search", s.searchCases)
		api.GET("/search/options", s.searchOptions)

		ai := api.Group("/assistant")
		{
			ai.POST("/chat", s.chat)
			ai.POST("/case", s.caseSearch)
			ai.POST("/provision", s.provisionLookup)
		}
	}
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("web server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("web server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
