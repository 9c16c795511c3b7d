package repository

import (
	"testing"
	"time"

	"github.com/juju/clock/testclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itam-service/internal/models"
	"itam-service/internal/sampledata"
)

func TestNextAssetNumber(t *testing.T) {
	repo, _ := newTestAssets(t)
	assert.Equal(t, "AS-0006", repo.NextAssetNumber())

	_, err := repo.Create(newAsset("AS-0042", "Dell P2423D Monitor"))
	require.NoError(t, err)
	_, err = repo.Create(newAsset("LEGACY-7", "Old CRT"))
	require.NoError(t, err)
	assert.Equal(t, "AS-0043", repo.NextAssetNumber())

	a, ok := repo.GetByAssetNumber("as-0042")
	require.True(t, ok)
	assert.Equal(t, "Dell P2423D Monitor", a.Name)
	assert.True(t, repo.AssetNumberExists("AS-0042", 0))
	assert.False(t, repo.AssetNumberExists("AS-0042", a.ID))
}

func TestGetExpiringWarranties(t *testing.T) {
	repo, _ := newTestAssets(t)

	soon := repo.GetExpiringWarranties(testNow, 30)
	require.Len(t, soon, 1)
	assert.Equal(t, "AS-0002", soon[0].AssetNumber)

	// AS-0004 expired in 2023 and never shows up
	year := repo.GetExpiringWarranties(testNow, 365)
	require.Len(t, year, 2)
	assert.Equal(t, "AS-0002", year[0].AssetNumber)
	assert.Equal(t, "AS-0001", year[1].AssetNumber)
}

func TestAssetDistributions(t *testing.T) {
	repo, _ := newTestAssets(t)

	status := repo.GetStatusDistribution()
	assert.Equal(t, 3, status[string(models.AssetStatusInUse)])
	assert.Equal(t, 0, status[string(models.AssetStatusDisposed)])
	assert.Len(t, status, len(models.AssetStatuses))

	types := repo.GetTypeDistribution()
	assert.Equal(t, 2, types["laptop"])
	assert.Contains(t, types, "monitor")

	departments := repo.GetDepartmentDistribution()
	assert.Len(t, departments, 4)
	assert.Equal(t, 0, departments[4])
}

func TestMasterLookup(t *testing.T) {
	settings := NewSettingsRepository(testclock.NewClock(testNow), sampledata.New().Settings)

	byCode, ok := settings.Locations.Lookup("wh")
	require.True(t, ok)
	assert.Equal(t, 4, byCode.ID)

	byName, ok := settings.Locations.Lookup("osaka branch")
	require.True(t, ok)
	assert.Equal(t, 5, byName.ID)

	_, ok = settings.Locations.Lookup("Nagoya")
	assert.False(t, ok)

	assert.Equal(t, "Server Room", settings.Locations.NameOf(3))
	assert.Equal(t, "", settings.Locations.NameOf(99))
	assert.Equal(t, 3, settings.StatusIDFor(models.AssetStatusInRepair))
	assert.Equal(t, "Yuki Tanaka", settings.UserName(4))
}

func newTestInventory(t *testing.T) (*InventoryRepository, *testclock.Clock) {
	t.Helper()
	clk := testclock.NewClock(testNow)
	return NewInventoryRepository(clk, sampledata.New().Inventory), clk
}

func TestRecordResultReplacesAndRecounts(t *testing.T) {
	repo, _ := newTestInventory(t)

	detail, ok := repo.RecordResult(2, models.ScanResult{
		AssetNumber: "as-0005",
		Outcome:     models.ScanFound,
		ScannedAt:   testNow,
	})
	require.True(t, ok)
	assert.Len(t, detail.Results, 2)
	assert.Equal(t, 2, detail.Summary.Found)
	assert.Equal(t, 0, detail.Summary.Mismatched)
	assert.Equal(t, 1, detail.Summary.Discrepancies)

	detail, ok = repo.RecordResult(2, models.ScanResult{
		AssetNumber: "AS-0003",
		Outcome:     models.ScanMissing,
		ScannedAt:   testNow,
	})
	require.True(t, ok)
	assert.Equal(t, 1, detail.Summary.Missing)
	assert.Equal(t, 2, detail.Summary.Scanned)
	assert.Equal(t, 5, detail.Summary.Total)

	_, ok = repo.RecordResult(99, models.ScanResult{AssetNumber: "AS-0001"})
	assert.False(t, ok)
}

func TestGetDetailReturnsCopy(t *testing.T) {
	repo, _ := newTestInventory(t)

	detail, ok := repo.GetDetail(1)
	require.True(t, ok)
	detail.Results[0].Notes = "changed"

	again, _ := repo.GetDetail(1)
	assert.Empty(t, again.Results[0].Notes)
}

func TestResolveDiscrepancy(t *testing.T) {
	repo, clk := newTestInventory(t)

	assert.True(t, repo.OpenDiscrepancyExists(1, "as-0003", models.DiscrepancyTypeLocation))
	assert.False(t, repo.OpenDiscrepancyExists(1, "AS-0004", models.DiscrepancyTypeStatus))
	assert.Equal(t, 1, repo.OpenDiscrepancyCount(1))

	d, ok := repo.ResolveDiscrepancy(2, "Moved back to the warehouse")
	require.True(t, ok)
	assert.Equal(t, models.DiscrepancyResolved, d.Status)
	require.NotNil(t, d.ResolutionDate)
	assert.Equal(t, testNow, *d.ResolutionDate)
	assert.Equal(t, 0, repo.OpenDiscrepancyCount(1))

	clk.Advance(time.Hour)
	d, ok = repo.ResolveDiscrepancy(2, "")
	require.True(t, ok)
	assert.Equal(t, "Moved back to the warehouse", d.ResolutionNotes)
	assert.Equal(t, testNow.Add(time.Hour), *d.ResolutionDate)

	_, ok = repo.ResolveDiscrepancy(99, "")
	assert.False(t, ok)
}

func TestSortDiscrepancies(t *testing.T) {
	repo, _ := newTestInventory(t)

	sorted := SortDiscrepancies(repo.Discrepancies.GetAll())
	require.Len(t, sorted, 3)
	assert.Equal(t, models.SeverityCritical, sorted[0].Severity)
}

func TestNotificationReadState(t *testing.T) {
	repo := NewNotificationRepository(testclock.NewClock(testNow), sampledata.New().Notifications)

	assert.Equal(t, 3, repo.UnreadCount())
	assert.True(t, repo.ExistsFor(models.NotificationWarrantyExpiry, "asset", 2))
	assert.False(t, repo.ExistsFor(models.NotificationWarrantyExpiry, "asset", 1))

	newest := repo.Newest()
	require.Len(t, newest, 5)
	assert.Equal(t, 2, newest[0].ID)

	// notification 3 was read before; its read_at stays
	n, ok := repo.MarkAsRead(3)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.May, 20, 12, 30, 0, 0, time.UTC), *n.ReadAt)

	assert.Equal(t, 3, repo.MarkAllAsRead())
	assert.Equal(t, 5, repo.DeleteRead())
	assert.Empty(t, repo.GetAll())
}
