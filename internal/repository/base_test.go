package repository

import (
	"testing"
	"time"

	"github.com/juju/clock/testclock"
	"github.com/juju/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itam-service/internal/models"
	"itam-service/internal/sampledata"
)

var testNow = time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)

func newTestAssets(t *testing.T) (*AssetRepository, *testclock.Clock) {
	t.Helper()
	clk := testclock.NewClock(testNow)
	data := sampledata.New()
	settings := NewSettingsRepository(clk, data.Settings)
	return NewAssetRepository(clk, data.Assets, settings), clk
}

func newAsset(number, name string) models.Asset {
	return models.Asset{
		AssetNumber:   number,
		Name:          name,
		TypeID:        5,
		Type:          "monitor",
		StatusID:      2,
		Status:        models.AssetStatusAvailable,
		DepartmentID:  1,
		LocationID:    4,
		PurchaseDate:  time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		PurchasePrice: decimal.NewFromInt(38000),
		CurrentValue:  decimal.NewFromInt(38000),
		UsefulLife:    60,
	}
}

func TestCreateAssignsNextID(t *testing.T) {
	repo, _ := newTestAssets(t)

	created, err := repo.Create(newAsset("AS-0100", "Dell P2423D Monitor"))
	require.NoError(t, err)
	assert.Equal(t, 6, created.ID)

	// Removing a record in the middle does not reuse ids.
	require.True(t, repo.Delete(3))
	next, err := repo.Create(newAsset("AS-0101", "Dell P2423D Monitor #2"))
	require.NoError(t, err)
	assert.Equal(t, 7, next.ID)
}

func TestCreateOnEmptyCollectionStartsAtOne(t *testing.T) {
	clk := testclock.NewClock(testNow)
	repo := NewBase[models.Asset](clk, Hooks[models.Asset]{})

	created, err := repo.Create(newAsset("AS-0001", "First"))
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
}

func TestCreateThenGetByIDRoundTrip(t *testing.T) {
	repo, _ := newTestAssets(t)
	input := newAsset("AS-0200", "EIZO FlexScan EV2485")
	input.Notes = "Meeting room 4F"

	created, err := repo.Create(input)
	require.NoError(t, err)

	got, ok := repo.GetByID(created.ID)
	require.True(t, ok)

	want := input
	want.ID = created.ID
	want.CreatedAt = testNow
	want.UpdatedAt = testNow
	assert.Equal(t, want, got)
}

func TestCreateValidation(t *testing.T) {
	repo, _ := newTestAssets(t)

	tests := []struct {
		name   string
		modify func(*models.Asset)
		check  func(error) bool
	}{
		{
			name:   "missing name",
			modify: func(a *models.Asset) { a.Name = "" },
			check:  func(err error) bool { return errors.Is(err, errors.NotValid) },
		},
		{
			name:   "unknown status",
			modify: func(a *models.Asset) { a.Status = "lost" },
			check:  func(err error) bool { return errors.Is(err, errors.NotValid) },
		},
		{
			name:   "negative price",
			modify: func(a *models.Asset) { a.PurchasePrice = decimal.NewFromInt(-1) },
			check:  func(err error) bool { return errors.Is(err, errors.NotValid) },
		},
		{
			name:   "duplicate asset number",
			modify: func(a *models.Asset) { a.AssetNumber = "as-0001" },
			check:  func(err error) bool { return errors.Is(err, errors.AlreadyExists) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAsset("AS-0300", "Spare monitor")
			tt.modify(&a)
			before := repo.Count()

			_, err := repo.Create(a)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error: %v", err)
			assert.Equal(t, before, repo.Count())
		})
	}
}

func TestUpdateMergesAndRestamps(t *testing.T) {
	repo, clk := newTestAssets(t)
	clk.Advance(time.Hour)

	updated, ok, err := repo.Update(1, func(a *models.Asset) {
		a.Notes = "Keyboard replaced"
	})
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "Keyboard replaced", updated.Notes)
	assert.Equal(t, "Dell XPS 13", updated.Name)
	assert.Equal(t, testNow.Add(time.Hour), updated.UpdatedAt)
	assert.NotEqual(t, updated.UpdatedAt, updated.CreatedAt)
}

func TestUpdateMissingIDLeavesCollectionUnchanged(t *testing.T) {
	repo, _ := newTestAssets(t)
	before := repo.GetAll()

	_, ok, err := repo.Update(999, func(a *models.Asset) { a.Name = "ghost" })
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, before, repo.GetAll())
}

func TestUpdateSkipsRequiredChecksButValidatesValues(t *testing.T) {
	repo, _ := newTestAssets(t)

	// Required fields are not enforced on update.
	_, ok, err := repo.Update(2, func(a *models.Asset) {
		a.SerialNumber = ""
		a.Name = ""
	})
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = repo.Update(2, func(a *models.Asset) { a.Status = "misplaced" })
	assert.True(t, ok)
	assert.True(t, errors.Is(err, errors.NotValid))

	got, _ := repo.GetByID(2)
	assert.Equal(t, models.AssetStatusInUse, got.Status)
}

func TestDeleteCounts(t *testing.T) {
	repo, _ := newTestAssets(t)
	require.Equal(t, 5, repo.Count())

	assert.True(t, repo.Delete(4))
	assert.Equal(t, 4, repo.Count())
	_, ok := repo.GetByID(4)
	assert.False(t, ok)

	assert.False(t, repo.Delete(4))
	assert.False(t, repo.Delete(999))
	assert.Equal(t, 4, repo.Count())
}

func TestGetAllReturnsCopies(t *testing.T) {
	clk := testclock.NewClock(testNow)
	repo := NewPartnerRepository(clk, sampledata.PartnerProvider{})

	orders := repo.PurchaseOrders.GetAll()
	orders[0].Items[0].Quantity = 99
	orders[0].Notes = "changed"

	again, ok := repo.PurchaseOrders.GetByID(orders[0].ID)
	require.True(t, ok)
	assert.Equal(t, 2, again.Items[0].Quantity)
	assert.Empty(t, again.Notes)
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	repo, _ := newTestAssets(t)

	got := repo.Search("xps", "name", "asset_number", "serial_number", "manufacturer", "model")
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)

	assert.Len(t, repo.Search("", "name"), 5)
	assert.Empty(t, repo.Search("nothing-like-this", "name"))
}

func TestFilterByIgnoresEmptyValues(t *testing.T) {
	repo, _ := newTestAssets(t)

	got := repo.FilterBy(map[string]string{"status": "in_use", "department_id": "1", "model": ""})
	ids := make([]int, 0, len(got))
	for _, a := range got {
		ids = append(ids, a.ID)
	}
	assert.ElementsMatch(t, []int{1, 5}, ids)
}

func TestReset(t *testing.T) {
	repo, _ := newTestAssets(t)
	require.True(t, repo.Delete(1))
	_, err := repo.Create(newAsset("AS-0400", "Temp"))
	require.NoError(t, err)

	repo.Reset()
	assert.Equal(t, 5, repo.Count())
	_, ok := repo.GetByAssetNumber("AS-0400")
	assert.False(t, ok)
}
