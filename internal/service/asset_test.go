package service

import (
	"testing"
	"time"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itam-service/internal/models"
)

func TestSearchAssets(t *testing.T) {
	f := newFixture(t)

	found := f.AssetSearch.SearchAssets("xps")
	require.Len(t, found, 1)
	assert.Equal(t, "AS-0001", found[0].AssetNumber)

	bySerial := f.AssetSearch.SearchAssets("DL7Q2M913")
	require.Len(t, bySerial, 1)
	assert.Equal(t, 1, bySerial[0].ID)

	assert.Len(t, f.AssetSearch.SearchAssets(""), 5)
	assert.Empty(t, f.AssetSearch.SearchAssets("no such asset"))
}

func TestGetFilteredAssets(t *testing.T) {
	f := newFixture(t)

	inUse := f.AssetSearch.GetFilteredAssets(models.AssetFilters{Status: models.AssetStatusInUse})
	assert.Len(t, inUse, 3)

	atHQ4F := f.AssetSearch.GetFilteredAssets(models.AssetFilters{LocationID: 2})
	ids := make([]int, 0, len(atHQ4F))
	for _, a := range atHQ4F {
		ids = append(ids, a.ID)
	}
	assert.ElementsMatch(t, []int{2, 4}, ids)

	sorted := f.AssetSearch.GetFilteredAssets(models.AssetFilters{Sort: "-asset_number"})
	require.Len(t, sorted, 5)
	assert.Equal(t, "AS-0005", sorted[0].AssetNumber)
	assert.Equal(t, "AS-0001", sorted[4].AssetNumber)
}

func TestGetPaginatedAssets(t *testing.T) {
	f := newFixture(t)

	page := f.AssetSearch.GetPaginatedAssets(models.AssetFilters{Sort: "asset_number"}, 2, 2)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "AS-0003", page.Items[0].AssetNumber)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.Equal(t, 5, page.Pagination.TotalItems)
	assert.True(t, page.Pagination.HasPrev)
	assert.True(t, page.Pagination.HasNext)
	assert.NotEmpty(t, page.Items[0].LocationName)
}

func TestCreateAndGetAsset(t *testing.T) {
	f := newFixture(t)

	a, err := f.AssetCrud.CreateAsset(models.CreateAssetRequest{
		Name:          "Dell U2723QE",
		TypeID:        5,
		DepartmentID:  1,
		LocationID:    1,
		PurchaseDate:  time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC),
		PurchasePrice: yen(t, "68000"),
	})
	require.NoError(t, err)
	assert.Equal(t, "AS-0006", a.AssetNumber)
	assert.Equal(t, models.AssetStatusAvailable, a.Status)
	assert.Equal(t, 60, a.UsefulLife)
	assertDecimal(t, "68000", a.CurrentValue)

	view, ok := f.AssetCrud.GetAsset(a.ID)
	require.True(t, ok)
	assert.Equal(t, "Dell U2723QE", view.Name)
	assert.Equal(t, "Monitor", view.TypeName)
	assert.Equal(t, "Head Office 3F", view.LocationName)

	_, ok = f.AssetCrud.GetAsset(999)
	assert.False(t, ok)
}

func TestCreateAssetValidation(t *testing.T) {
	f := newFixture(t)
	valid := models.CreateAssetRequest{
		Name:         "Spare laptop",
		TypeID:       1,
		DepartmentID: 1,
		LocationID:   4,
	}

	dup := valid
	dup.AssetNumber = "AS-0001"
	_, err := f.AssetCrud.CreateAsset(dup)
	assert.True(t, errors.Is(err, errors.AlreadyExists), "got %v", err)

	missing := valid
	missing.LocationID = 0
	_, err = f.AssetCrud.CreateAsset(missing)
	assert.True(t, errors.Is(err, errors.NotValid), "got %v", err)

	badStatus := valid
	badStatus.Status = "lost"
	_, err = f.AssetCrud.CreateAsset(badStatus)
	assert.True(t, errors.Is(err, errors.NotValid), "got %v", err)

	badType := valid
	badType.TypeID = 99
	_, err = f.AssetCrud.CreateAsset(badType)
	assert.Error(t, err)

	assert.Len(t, f.AssetCrud.ListAssets(), 5)
}

func TestUpdateAsset(t *testing.T) {
	f := newFixture(t)

	name := "Dell XPS 13 (2022)"
	a, ok, err := f.AssetCrud.UpdateAsset(1, models.UpdateAssetRequest{Name: &name})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, name, a.Name)
	assert.Equal(t, "AS-0001", a.AssetNumber)

	_, ok, err = f.AssetCrud.UpdateAsset(999, models.UpdateAssetRequest{Name: &name})
	assert.NoError(t, err)
	assert.False(t, ok)

	bad := models.AssetStatus("lost")
	_, ok, err = f.AssetCrud.UpdateAsset(1, models.UpdateAssetRequest{Status: &bad})
	assert.True(t, ok)
	assert.True(t, errors.Is(err, errors.NotValid), "got %v", err)
}

func TestUpdateAssetDisposeClearsUser(t *testing.T) {
	f := newFixture(t)
	disposed := models.AssetStatusDisposed

	a, ok, err := f.AssetCrud.UpdateAsset(1, models.UpdateAssetRequest{Status: &disposed})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, models.AssetStatusDisposed, a.Status)
	assert.Nil(t, a.UserID)

	// a user sent with the disposal is dropped as well
	a, _, err = f.AssetCrud.UpdateAsset(2, models.UpdateAssetRequest{Status: &disposed, UserID: models.IntPtr(3)})
	require.NoError(t, err)
	assert.Nil(t, a.UserID)
	assert.Empty(t, f.AssetSearch.GetFilteredAssets(models.AssetFilters{Status: disposed, UserID: 3}))

	created, err := f.AssetCrud.CreateAsset(models.CreateAssetRequest{
		Name:         "Written-off laptop",
		TypeID:       1,
		DepartmentID: 1,
		LocationID:   4,
		Status:       disposed,
		UserID:       models.IntPtr(1),
	})
	require.NoError(t, err)
	assert.Nil(t, created.UserID)
}

func TestChangeStatusDisposeClearsUser(t *testing.T) {
	f := newFixture(t)

	a, ok, err := f.AssetCrud.ChangeStatus(1, models.AssetStatusDisposed)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, models.AssetStatusDisposed, a.Status)
	assert.Nil(t, a.UserID)

	_, _, err = f.AssetCrud.ChangeStatus(1, "lost")
	assert.True(t, errors.Is(err, errors.NotValid), "got %v", err)
}

func TestAssignUser(t *testing.T) {
	f := newFixture(t)

	a, ok, err := f.AssetCrud.AssignUser(3, models.IntPtr(4))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, models.AssetStatusInUse, a.Status)
	require.NotNil(t, a.UserID)
	assert.Equal(t, 4, *a.UserID)

	a, _, err = f.AssetCrud.AssignUser(3, nil)
	require.NoError(t, err)
	assert.Equal(t, models.AssetStatusAvailable, a.Status)
	assert.Nil(t, a.UserID)

	_, _, err = f.AssetCrud.AssignUser(3, models.IntPtr(99))
	assert.Error(t, err)
}

func TestDeleteAsset(t *testing.T) {
	f := newFixture(t)
	assert.True(t, f.AssetCrud.DeleteAsset(5))
	assert.False(t, f.AssetCrud.DeleteAsset(5))
	assert.Len(t, f.AssetCrud.ListAssets(), 4)
}

func TestCalculateDepreciation(t *testing.T) {
	f := newFixture(t)

	d, ok, err := f.AssetSpecial.CalculateDepreciation(1, "")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, StraightLine, d.Method)
	assert.Equal(t, 26, d.MonthsElapsed)
	assertDecimal(t, "97500", d.Accumulated)
	assertDecimal(t, "82500", d.BookValue)
	assert.False(t, d.FullyDepreciated)

	d, _, err = f.AssetSpecial.CalculateDepreciation(1, DecliningBalance)
	require.NoError(t, err)
	assertDecimal(t, "101250", d.BookValue)
	assertDecimal(t, "78750", d.Accumulated)

	_, ok, err = f.AssetSpecial.CalculateDepreciation(1, "sum_of_years")
	assert.True(t, ok)
	assert.True(t, errors.Is(err, errors.NotFound), "got %v", err)

	_, ok, err = f.AssetSpecial.CalculateDepreciation(99, "")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestMonthsBetween(t *testing.T) {
	date := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }
	assert.Equal(t, 26, monthsBetween(date(2022, time.April, 1), testNow))
	assert.Equal(t, 0, monthsBetween(date(2024, time.May, 15), testNow))
	assert.Equal(t, 0, monthsBetween(date(2025, time.January, 1), testNow))
	assert.Equal(t, 12, monthsBetween(date(2023, time.June, 1), testNow))
}

func TestGetWarrantyExpiringAssets(t *testing.T) {
	f := newFixture(t)

	soon := f.AssetSpecial.GetWarrantyExpiringAssets(30)
	require.Len(t, soon, 1)
	assert.Equal(t, 2, soon[0].ID)

	assert.Len(t, f.AssetSpecial.GetWarrantyExpiringAssets(0), 1)
}

func TestDashboardStatistics(t *testing.T) {
	f := newFixture(t)

	stats := f.AssetStatistics.GetDashboardStatistics()
	assert.Equal(t, 5, stats.TotalAssets)
	assert.Equal(t, 3, stats.InUseAssets)
	assert.Equal(t, 1, stats.AvailableAssets)
	assert.Equal(t, 1, stats.InRepairAssets)
	assert.Equal(t, 0, stats.DisposedAssets)
	assert.Equal(t, 60.0, stats.UsageRate)
	assert.Equal(t, 1, stats.ExpiringWarranties)
	assert.True(t, stats.TotalPurchaseValue.IsPositive())
}

func TestStatusBreakdown(t *testing.T) {
	f := newFixture(t)

	rows := f.AssetStatistics.GetStatusBreakdown()
	byKey := make(map[string]Breakdown)
	for _, r := range rows {
		byKey[r.Key] = r
	}
	inUse := byKey[string(models.AssetStatusInUse)]
	assert.Equal(t, "In use", inUse.Label)
	assert.Equal(t, 3, inUse.Count)
	assert.Equal(t, 60.0, inUse.Percentage)
	assert.Equal(t, 1, byKey[string(models.AssetStatusAvailable)].Count)
}

func TestWarrantyStatus(t *testing.T) {
	f := newFixture(t)

	ws := f.AssetStatistics.GetWarrantyStatus()
	assert.Equal(t, 3, ws.Active)
	assert.Equal(t, 1, ws.ExpiringSoon)
	assert.Equal(t, 1, ws.Expired)
	assert.Equal(t, 0, ws.NoWarranty)
	require.Len(t, ws.Expiring, 1)
	assert.Equal(t, "AS-0002", ws.Expiring[0].AssetNumber)
}
