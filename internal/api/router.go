package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/internal/api/handlers/http/reporter"
	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/internal/api/handlers/http/responder"
	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/internal/api/handlers/http/system"
	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/internal/config"
	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/internal/middleware"
	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/internal/service"
)

type Server struct {
	logger *slog.Logger
	router *chi.Mux
	cfg    config.Config
}

func NewServer(cfg *config.Config, logger *slog.Logger, svc *service.Service) *Server {
	reporterHandler := reporter.NewHandler(logger, svc.Lifecycle, svc.Location, svc.Contacts)
	responderHandler := responder.NewHandler(logger, svc.Lifecycle, svc.Query)
	systemHandler := system.NewHandler(logger)

	r := InitRouter(cfg, reporterHandler, responderHandler, systemHandler, logger)

	return &Server{
		logger: logger,
		router: r,
		cfg:    *cfg,
	}
}

func InitRouter(cfg *config.Config, reporterHandler *reporter.Handler, responderHandler *responder.Handler, systemHandler *system.Handler, logger *slog.Logger) *chi.Mux {
	r := chi.NewMux()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)

	r.Route("/api/v1", func(api chi.Router) {
		// REPORTER: alert submission and the device location stream
		api.Route("/alerts", func(ar chi.Router) {
			ar.Use(middleware.Limit(10, 20, 5*time.Minute, logger))

			ar.Post("/", reporterHandler.AlertCreate)
			ar.Route("/{id}", func(rr chi.Router) {
				rr.Post("/location", reporterHandler.AlertAppendLocation)
				rr.Post("/presence", reporterHandler.AlertPresence)
			})
		})

		api.Route("/contacts", func(cr chi.Router) {
			cr.Use(middleware.Limit(10, 20, 5*time.Minute, logger))
			cr.Get("/{userId}", reporterHandler.ContactList)
		})

		// RESPONDER: dashboard reads and lifecycle transitions
		api.Route("/responder", func(rr chi.Router) {
			rr.Use(middleware.APIKeyMiddleware(cfg.APIKey))
			rr.Use(middleware.Limit(5, 10, 10*time.Minute, logger))

			rr.Get("/stats", responderHandler.AlertStats)

			rr.Route("/alerts", func(ar chi.Router) {
				ar.Get("/", responderHandler.AlertList)
				ar.Get("/active", responderHandler.AlertActive)

				ar.Route("/{id}", func(ir chi.Router) {
					ir.Get("/", responderHandler.AlertGet)
					ir.Post("/acknowledge", responderHandler.AlertAcknowledge)
					ir.Post("/resolve", responderHandler.AlertResolve)
					ir.Post("/cancel", responderHandler.AlertCancel)
					ir.Post("/priority", responderHandler.AlertEscalate)
				})
			})
		})

		// SYSTEM
		api.Get("/health", systemHandler.SystemHealth)
	})

	return r
}

func (s *Server) Run(ctx context.Context) error {
	port := s.cfg.Http.Port
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Http.ReadTimeout,
		WriteTimeout: s.cfg.Http.WriteTimeout,
		IdleTimeout:  30 * time.Second,
	}

	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("Starting HTTP server",
			slog.String("addr", srv.Addr),
			slog.Duration("read_timeout", s.cfg.Http.ReadTimeout),
			slog.Duration("write_timeout", s.cfg.Http.WriteTimeout),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("ListenAndServe error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down HTTP server", slog.String("reason", ctx.Err().Error()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Http.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Server shutdown failed", slog.Any("error", err))
			return err
		}
		return nil

	case err := <-errChan:
		return err
	}
}
