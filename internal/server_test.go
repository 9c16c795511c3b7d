package internal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/juju/clock/testclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"itam-service/internal/config"
	"itam-service/internal/documents"
	"itam-service/internal/repository"
	"itam-service/internal/sampledata"
	"itam-service/internal/service"
)

func newTestServer(t *testing.T, mutate func(*config.Config)) (*Server, *testclock.Clock) {
	t.Helper()
	clk := testclock.NewClock(testNow)
	cfg := config.Load()
	cfg.Documents.Dir = t.TempDir()
	cfg.Documents.RetentionDays = 30
	cfg.MaintenanceInterval = time.Hour
	if mutate != nil {
		mutate(cfg)
	}
	log := zap.NewNop()
	store := repository.NewStore(clk, sampledata.New())
	docs, err := documents.NewManagementService(cfg.Documents.Dir, clk, log)
	require.NoError(t, err)
	svc := service.New(store, clk, log, service.Options{WarningDays: cfg.ExpiryWarningDays})
	return NewServer(cfg, store, svc, docs, clk, log), clk
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, nil)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestRequestIDIsKept(t *testing.T) {
	s, _ := newTestServer(t, nil)

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestMetricsRouteFollowsConfig(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		s, _ := newTestServer(t, func(c *config.Config) { c.EnableMetrics = false })
		w := httptest.NewRecorder()
		s.Router.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Nil(t, s.Metrics)
	})

	t.Run("enabled", func(t *testing.T) {
		s, _ := newTestServer(t, func(c *config.Config) { c.EnableMetrics = true })
		s.Router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/health", nil))

		w := httptest.NewRecorder()
		s.Router.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `route="/health"`)
		assert.Contains(t, w.Body.String(), "itam_assets")
	})
}

func TestMaintain(t *testing.T) {
	s, _ := newTestServer(t, nil)

	report := s.Maintain()
	assert.Equal(t, 1, report.ContractsRefreshed)
	assert.Equal(t, 2, report.NotificationsRaised)
	assert.Zero(t, report.DocumentsCleanedUp)

	again := s.Maintain()
	assert.Zero(t, again.ContractsRefreshed)
	assert.Zero(t, again.NotificationsRaised)
}

func TestRunMaintenanceTicksOnClock(t *testing.T) {
	s, clk := newTestServer(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.RunMaintenance(ctx, time.Hour)
	}()

	// the first pass runs before the loop waits on the clock
	require.NoError(t, clk.WaitAdvance(time.Hour, time.Second, 1))
	require.NoError(t, clk.WaitAdvance(time.Hour, time.Second, 1))
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("maintenance loop did not stop")
	}
}

func TestRunMaintenanceDisabled(t *testing.T) {
	s, _ := newTestServer(t, nil)
	s.RunMaintenance(context.Background(), 0)
}

func TestRunStopsOnCancel(t *testing.T) {
	s, _ := newTestServer(t, func(c *config.Config) {
		c.HTTPAddr = "127.0.0.1:0"
		c.MaintenanceInterval = 0
	})
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- s.Run(ctx) }()

	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(2 * shutdownTimeout):
		t.Fatal("server did not stop")
	}
}
