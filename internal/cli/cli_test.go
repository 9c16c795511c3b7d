package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/juju/clock/testclock"
	"github.com/juju/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"itam-service/internal/config"
	"itam-service/internal/models"
)

var testNow = time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := config.Load()
	cfg.Documents.Dir = t.TempDir()
	cfg.SMTP.User = ""
	cfg.SMTP.Password = ""
	cfg.ExpiryWarningDays = 30
	app, err := NewApp(cfg, testclock.NewClock(testNow), zap.NewNop())
	require.NoError(t, err)
	return app
}

// execute runs one assetctl command line against app and returns what it
// printed.
func execute(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app.Out = &out
	root := NewRootCommand(app)
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestUnknownFormatIsRejected(t *testing.T) {
	app := newTestApp(t)
	_, err := execute(t, app, "--format", "xml", "stats", "dashboard")
	assert.True(t, errors.Is(err, errors.NotValid), "got %v", err)
}

func TestAssetsSearch(t *testing.T) {
	app := newTestApp(t)
	out, err := execute(t, app, "assets", "search", "XPS")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "SERIAL")
	assert.Contains(t, lines[1], "AS-0001")
	assert.Contains(t, lines[1], "DL7Q2M913")
}

func TestAssetsListJSON(t *testing.T) {
	app := newTestApp(t)
	out, err := execute(t, app, "--format", "json", "assets", "list", "--status", "in_use")
	require.NoError(t, err)

	var page struct {
		Items []struct {
			ID     int    `json:"id"`
			Status string `json:"status"`
		} `json:"items"`
		Pagination struct {
			TotalItems int `json:"total_items"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.Equal(t, 3, page.Pagination.TotalItems)
	require.Len(t, page.Items, 3)
	for _, a := range page.Items {
		assert.Equal(t, "in_use", a.Status)
	}
}

func TestAssetsListRejectsUnknownStatus(t *testing.T) {
	app := newTestApp(t)
	_, err := execute(t, app, "assets", "list", "--status", "lost")
	assert.True(t, errors.Is(err, errors.NotValid), "got %v", err)
}

func TestAssetsGet(t *testing.T) {
	app := newTestApp(t)

	out, err := execute(t, app, "assets", "get", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Dell XPS 13")
	assert.Contains(t, out, "straight_line")
	assert.Contains(t, out, "97500")
	assert.Contains(t, out, "82500")

	out, err = execute(t, app, "assets", "get", "1", "--method", "declining_balance")
	require.NoError(t, err)
	assert.Contains(t, out, "101250")

	_, err = execute(t, app, "assets", "get", "99")
	assert.True(t, errors.Is(err, errors.NotFound), "got %v", err)

	_, err = execute(t, app, "assets", "get", "abc")
	assert.True(t, errors.Is(err, errors.NotValid), "got %v", err)
}

func TestStatsDashboardYAML(t *testing.T) {
	app := newTestApp(t)
	out, err := execute(t, app, "--format", "yaml", "stats", "dashboard")
	require.NoError(t, err)

	var stats map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &stats))
	assert.EqualValues(t, 5, stats["total_assets"])
	assert.EqualValues(t, 3, stats["in_use_assets"])
	assert.EqualValues(t, 60, stats["usage_rate"])
}

func TestStatsBreakdowns(t *testing.T) {
	app := newTestApp(t)

	out, err := execute(t, app, "stats", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "In use")
	assert.Contains(t, out, "60.0")

	out, err = execute(t, app, "stats", "departments")
	require.NoError(t, err)
	assert.Contains(t, out, "DEPARTMENT")

	_, err = execute(t, app, "stats", "warranty")
	require.NoError(t, err)
}

func TestInventoryDiscrepanciesAndResolve(t *testing.T) {
	app := newTestApp(t)

	out, err := execute(t, app, "--format", "json", "inventory", "discrepancies", "--severity", "critical")
	require.NoError(t, err)
	var list []models.Discrepancy
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list, 1)
	assert.Equal(t, 3, list[0].ID)

	out, err = execute(t, app, "inventory", "resolve", "3", "--notes", "found in storage")
	require.NoError(t, err)
	assert.Equal(t, "resolved 1 of 1 discrepancies\n", out)

	// resolving again is harmless; unknown ids are reported
	out, err = execute(t, app, "inventory", "resolve", "3", "99")
	assert.True(t, errors.Is(err, errors.NotFound), "got %v", err)
	assert.Equal(t, "resolved 1 of 2 discrepancies\n", out)

	d, ok := app.Services.Discrepancies.GetDiscrepancy(3)
	require.True(t, ok)
	assert.Equal(t, models.DiscrepancyResolved, d.Status)
	assert.Equal(t, "found in storage", d.ResolutionNotes)
}

func TestInventoryExportsAndReport(t *testing.T) {
	app := newTestApp(t)

	out, err := execute(t, app, "inventory", "discrepancies", "--export")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote ")

	_, err = execute(t, app, "inventory", "report", "1")
	require.NoError(t, err)
	_, err = execute(t, app, "inventory", "report", "42")
	assert.True(t, errors.Is(err, errors.NotFound), "got %v", err)

	assert.Len(t, app.Docs.List(models.DocumentDiscrepancyExport), 1)
	assert.Len(t, app.Docs.List(models.DocumentInventoryReport), 1)

	out, err = execute(t, app, "inventory", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Open critical:")
}

func TestPartnersDelete(t *testing.T) {
	app := newTestApp(t)

	// partner 1 still has a pending purchase order
	_, err := execute(t, app, "partners", "delete", "1")
	assert.True(t, errors.Is(err, errors.Forbidden), "got %v", err)

	out, err := execute(t, app, "partners", "delete", "5")
	require.NoError(t, err)
	assert.Equal(t, "partner 5 deleted\n", out)

	_, err = execute(t, app, "partners", "get", "5")
	assert.True(t, errors.Is(err, errors.NotFound), "got %v", err)
}

func TestPartnersGet(t *testing.T) {
	app := newTestApp(t)
	out, err := execute(t, app, "partners", "get", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Dell Technologies Japan")
	assert.Contains(t, out, "PO-1-002")
}

func TestOrdersCreateAndSend(t *testing.T) {
	app := newTestApp(t)

	out, err := execute(t, app, "orders", "create", "--partner", "1",
		"--item", "Dell Latitude 5440:2:100000", "--send")
	require.NoError(t, err)
	assert.Contains(t, out, "created PO-1-003, total 220000 JPY")
	assert.Contains(t, out, "simulated")

	docs := app.Docs.List(models.DocumentPurchaseOrder)
	require.NotEmpty(t, docs)
	assert.Equal(t, "PO-1-003", docs[0].BusinessNumber)

	// sending moved the draft to pending
	orders := app.Services.AssetPurchase.ListPurchaseOrders(1)
	var found bool
	for _, o := range orders {
		if o.OrderNumber == "PO-1-003" {
			found = true
			assert.Equal(t, models.PurchaseOrderPending, o.Status)
		}
	}
	assert.True(t, found)
}

func TestOrdersQuotation(t *testing.T) {
	app := newTestApp(t)
	out, err := execute(t, app, "orders", "create", "--partner", "2", "--quotation",
		"--item", "On-site maintenance FY2026:1")
	require.NoError(t, err)
	assert.Contains(t, out, "created QR-2-002\n")
	assert.Len(t, app.Docs.List(models.DocumentQuotationRequest), 1)
}

func TestOrdersErrors(t *testing.T) {
	app := newTestApp(t)

	_, err := execute(t, app, "orders", "create", "--partner", "1", "--item", "Laptop")
	assert.True(t, errors.Is(err, errors.NotValid), "got %v", err)

	_, err = execute(t, app, "orders", "send", "99")
	assert.True(t, errors.Is(err, errors.NotFound), "got %v", err)

	_, err = execute(t, app, "orders", "create", "--item", "Laptop:1:1000")
	assert.Error(t, err, "partner flag is required")
}

func TestParseItems(t *testing.T) {
	tests := []struct {
		name    string
		specs   []string
		want    []models.OrderItem
		wantErr bool
	}{
		{
			name:  "with price",
			specs: []string{"Monitor:3:38000"},
			want:  []models.OrderItem{{Name: "Monitor", Quantity: 3, UnitPrice: decimalOf(t, "38000")}},
		},
		{
			name:  "without price",
			specs: []string{" Support : 1 "},
			want:  []models.OrderItem{{Name: "Support", Quantity: 1}},
		},
		{name: "missing quantity", specs: []string{"Monitor"}, wantErr: true},
		{name: "bad quantity", specs: []string{"Monitor:three"}, wantErr: true},
		{name: "bad price", specs: []string{"Monitor:3:cheap"}, wantErr: true},
		{name: "too many parts", specs: []string{"a:1:2:3"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseItems(tt.specs)
			if tt.wantErr {
				assert.True(t, errors.Is(err, errors.NotValid), "got %v", err)
				return
			}
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.Equal(t, tt.want[i].Name, got[i].Name)
				assert.Equal(t, tt.want[i].Quantity, got[i].Quantity)
				assert.True(t, tt.want[i].UnitPrice.Equal(got[i].UnitPrice))
			}
		})
	}
}

func decimalOf(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestNotificationsGenerate(t *testing.T) {
	app := newTestApp(t)

	out, err := execute(t, app, "--format", "json", "notifications", "generate")
	require.NoError(t, err)
	var res generateResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, generateResult{ContractsRefreshed: 1, Created: 2}, res)

	out, err = execute(t, app, "notifications", "list", "--unread")
	require.NoError(t, err)
	assert.Contains(t, out, "\n5 unread\n")

	out, err = execute(t, app, "notifications", "generate")
	require.NoError(t, err)
	assert.Equal(t, "0 contract statuses refreshed, 0 notifications created\n", out)
}

func TestSoftware(t *testing.T) {
	app := newTestApp(t)

	out, err := execute(t, app, "software", "list", "--popular")
	require.NoError(t, err)
	assert.Contains(t, out, "Microsoft 365 Apps")
	assert.NotContains(t, out, "7-Zip")

	out, err = execute(t, app, "--format", "json", "software", "licenses", "--software", "1")
	require.NoError(t, err)
	var usage []struct {
		SoftwareID int `json:"software_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &usage))
	for _, u := range usage {
		assert.Equal(t, 1, u.SoftwareID)
	}

	_, err = execute(t, app, "software", "licenses", "--expiring", "365")
	require.NoError(t, err)
}

func TestAssetsExportImportRoundTrip(t *testing.T) {
	app := newTestApp(t)

	out, err := execute(t, app, "assets", "export")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote ")
	exports := app.Docs.List(models.DocumentAssetExport)
	require.Len(t, exports, 1)

	out, err = execute(t, app, "--format", "json", "assets", "import", exports[0].Path, "--dry-run")
	require.NoError(t, err)
	var summary struct {
		Inserted int  `json:"inserted"`
		Updated  int  `json:"updated"`
		Errors   int  `json:"errors"`
		DryRun   bool `json:"dry_run"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.True(t, summary.DryRun)
	assert.Equal(t, 5, summary.Updated)
	assert.Zero(t, summary.Inserted)
	assert.Zero(t, summary.Errors)

	out, err = execute(t, app, "assets", "import", exports[0].Path)
	require.NoError(t, err)
	assert.Contains(t, out, "Assets")
	assert.NotContains(t, out, "dry run")
	assert.Len(t, app.Services.AssetCrud.ListAssets(), 5)

	_, err = execute(t, app, "assets", "import", filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)
}

func TestDocumentsListAndCleanup(t *testing.T) {
	app := newTestApp(t)
	_, err := execute(t, app, "assets", "export")
	require.NoError(t, err)

	out, err := execute(t, app, "documents", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "asset_export")
	assert.Contains(t, out, "1 documents in "+app.Docs.Dir())

	out, err = execute(t, app, "documents", "cleanup", "--days", "1")
	require.NoError(t, err)
	assert.Equal(t, "0 documents removed\n", out)

	_, err = execute(t, app, "documents", "cleanup", "--days", "0")
	assert.True(t, errors.Is(err, errors.NotValid), "got %v", err)

	entries, err := os.ReadDir(app.Docs.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
