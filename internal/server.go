package internal

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/juju/clock"
	"github.com/juju/errors"
	"go.uber.org/zap"

	"itam-service/internal/config"
	"itam-service/internal/documents"
	"itam-service/internal/repository"
	"itam-service/internal/service"
)

const shutdownTimeout = 5 * time.Second

// Server is the operations endpoint of the service: health, metrics and
// the periodic maintenance of the register. It serves no domain routes.
type Server struct {
	Router   *chi.Mux
	Metrics  *Metrics
	services *service.Services
	docs     *documents.ManagementService
	cfg      *config.Config
	clock    clock.Clock
	log      *zap.Logger
}

func NewServer(cfg *config.Config, store *repository.Store, svc *service.Services, docs *documents.ManagementService, clk clock.Clock, log *zap.Logger) *Server {
	s := &Server{
		Router:   chi.NewRouter(),
		services: svc,
		docs:     docs,
		cfg:      cfg,
		clock:    clk,
		log:      log,
	}

	// chi wants every middleware before the first route
	s.Router.Use(RequestIDMiddleware, LoggingMiddleware(log))
	if cfg.EnableMetrics {
		s.Metrics = NewMetrics(store)
		s.Router.Use(s.Metrics.Middleware())
	}

	s.Router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		if _, err := w.Write([]byte("ok")); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
	if s.Metrics != nil {
		s.Router.Get("/metrics", s.Metrics.Handler().ServeHTTP)
	}
	return s
}

// Run serves on cfg.HTTPAddr and runs the maintenance loop until ctx is
// done, then shuts the listener down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	maintenanceDone := make(chan struct{})
	go func() {
		defer close(maintenanceDone)
		s.RunMaintenance(ctx, s.cfg.MaintenanceInterval)
	}()

	serveErr := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", srv.Addr), zap.Bool("metrics", s.Metrics != nil))
		serveErr <- srv.ListenAndServe()
	}()

	var err error
	select {
	case err = <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
	case <-ctx.Done():
		shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
		defer stop()
		err = srv.Shutdown(shutdownCtx)
		<-serveErr
	}
	cancel()
	<-maintenanceDone
	return errors.Annotate(err, "http server")
}

// MaintenanceReport counts what one maintenance pass changed.
type MaintenanceReport struct {
	ContractsRefreshed  int
	NotificationsRaised int
	DocumentsCleanedUp  int
}

// Maintain runs one maintenance pass.
func (s *Server) Maintain() MaintenanceReport {
	report := MaintenanceReport{
		ContractsRefreshed:  s.services.Contracts.RefreshStatuses(),
		NotificationsRaised: s.services.Notifications.GenerateExpiryNotifications(),
	}
	if days := s.cfg.Documents.RetentionDays; days > 0 && s.docs != nil {
		report.DocumentsCleanedUp = s.docs.Cleanup(time.Duration(days) * 24 * time.Hour)
	}
	s.log.Info("maintenance done",
		zap.Int("contracts_refreshed", report.ContractsRefreshed),
		zap.Int("notifications_raised", report.NotificationsRaised),
		zap.Int("documents_cleaned_up", report.DocumentsCleanedUp))
	return report
}

// RunMaintenance calls Maintain once right away and then every interval
// until ctx is done. A zero interval returns immediately.
func (s *Server) RunMaintenance(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	for {
		s.Maintain()
		select {
		case <-ctx.Done():
			return
		case <-s.clock.After(interval):
		}
	}
}
