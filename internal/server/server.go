// Package server exposes the dashboard computations as a JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/example/ledgerview/internal/config"
	"github.com/example/ledgerview/pkg/access"
	"github.com/example/ledgerview/pkg/account"
	"github.com/example/ledgerview/pkg/transaction"
)

const shutdownTimeout = 5 * time.Second

// Server serves the chart and transaction endpoints
type Server struct {
	cfg        *config.Config
	log        zerolog.Logger
	normalizer *transaction.Normalizer
	mapper     account.Mapper
	engine     *gin.Engine
}

// New builds a Server and its routes from cfg
func New(cfg *config.Config, log zerolog.Logger) *Server {
	s := &Server{
		cfg:        cfg,
		log:        log,
		normalizer: transaction.NewNormalizer(cfg.MaskToken, cfg.Placeholder),
		mapper:     account.Mapper{TypeLabels: cfg.TypeLabels(), Currency: cfg.Currency},
	}
	s.engine = s.routes()
	return s
}

// Handler returns the HTTP handler of the server
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(requestID(), requestLogger(s.log), recovery(s.log), corsMiddleware(s.cfg.Server.AllowedOrigins))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api", requireRole(access.Client, access.AgentAdmin, access.SuperAdmin, access.Admin))
	api.POST("/transactions/normalize", s.normalizeTransactions)
	api.POST("/charts/balance", s.balanceChart)
	api.POST("/charts/donut", s.donutChart)
	api.POST("/charts/monthly", s.monthlyChart)

	admin := api.Group("", requireRole(access.AgentAdmin, access.SuperAdmin, access.Admin))
	admin.POST("/accounts/summary", s.accountsSummary)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", srv.Addr).Msg("Starting HTTP server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		s.log.Info().Msg("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		return nil
	}
}

func writeError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
