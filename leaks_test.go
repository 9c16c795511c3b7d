package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/juju/clock/testclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"itam-service/internal"
	"itam-service/internal/cli"
	"itam-service/internal/config"
	"itam-service/internal/documents"
	"itam-service/internal/repository"
	"itam-service/internal/sampledata"
	"itam-service/internal/service"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testNow = time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)

func testConfig(t *testing.T) *config.Config {
	cfg := config.Load()
	cfg.HTTPAddr = "127.0.0.1:0"
	cfg.Documents.Dir = t.TempDir()
	cfg.MaintenanceInterval = time.Hour
	return cfg
}

func TestServerStopsAllGoroutines(t *testing.T) {
	cfg := testConfig(t)
	clk := testclock.NewClock(testNow)
	log := zap.NewNop()
	store := repository.NewStore(clk, sampledata.New())
	docs, err := documents.NewManagementService(cfg.Documents.Dir, clk, log)
	require.NoError(t, err)
	svc := service.New(store, clk, log, service.Options{WarningDays: cfg.ExpiryWarningDays})
	srv := internal.NewServer(cfg, store, svc, docs, clk, log)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestCommandLeavesNoGoroutines(t *testing.T) {
	app, err := cli.NewApp(testConfig(t), testclock.NewClock(testNow), zap.NewNop())
	require.NoError(t, err)
	var out bytes.Buffer
	app.Out = &out

	root := cli.NewRootCommand(app)
	root.SetArgs([]string{"notifications", "generate"})
	require.NoError(t, root.ExecuteContext(context.Background()))
	assert.NotEmpty(t, out.String())
}
