package service

import (
	"testing"
	"time"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itam-service/internal/models"
)

func TestMasterDeleteGuard(t *testing.T) {
	f := newFixture(t)

	_, err := f.Settings.AssetTypes.Delete(1)
	assert.True(t, errors.Is(err, errors.Forbidden), "got %v", err)
	assert.Contains(t, err.Error(), `"laptop" is used by 2 records`)

	deleted, err := f.Settings.AssetTypes.Delete(5)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = f.Settings.Locations.Delete(2)
	assert.True(t, errors.Is(err, errors.Forbidden), "got %v", err)
	deleted, err = f.Settings.Locations.Delete(5)
	require.NoError(t, err)
	assert.True(t, deleted)

	// Finance has no assets but Yuki Tanaka works there
	_, err = f.Settings.Departments.Delete(4)
	assert.True(t, errors.Is(err, errors.Forbidden), "got %v", err)

	deleted, err = f.Settings.DepreciationMethods.Delete(2)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = f.Settings.Statuses.Delete(99)
	assert.NoError(t, err)
	assert.False(t, deleted)
}

func TestMasterCreateAndUpdate(t *testing.T) {
	f := newFixture(t)

	tablet, err := f.Settings.AssetTypes.Create(models.AssetType{
		MasterRecord:      models.MasterRecord{Code: "tablet", Name: "Tablet", IsActive: true},
		Category:          "pc",
		DefaultUsefulLife: 36,
	})
	require.NoError(t, err)
	assert.Equal(t, 6, tablet.ID)

	got, ok := f.Settings.AssetTypes.GetByCode("TABLET")
	require.True(t, ok)
	assert.Equal(t, tablet.ID, got.ID)

	name := "Tablet PC"
	updated, ok, err := f.Settings.AssetTypes.Update(tablet.ID, models.MasterRequest{Name: &name})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Tablet PC", updated.Name)
	assert.Equal(t, 36, updated.DefaultUsefulLife)

	_, err = f.Settings.AssetTypes.Create(models.AssetType{
		MasterRecord: models.MasterRecord{Code: "Laptop", Name: "Another laptop"},
	})
	assert.True(t, errors.Is(err, errors.AlreadyExists), "got %v", err)

	assert.Len(t, f.Settings.AssetTypes.List(), 6)
}

func TestUsers(t *testing.T) {
	f := newFixture(t)

	u, ok := f.Settings.FindUserByEmail("T.YAMADA@example.co.jp")
	require.True(t, ok)
	assert.Equal(t, "Taro Yamada", u.Name)

	_, err := f.Settings.CreateUser(models.User{
		Name:         "Mai Kobayashi",
		Email:        "m.kobayashi@example.co.jp",
		DepartmentID: 9,
	})
	assert.True(t, errors.Is(err, errors.NotFound), "got %v", err)

	created, err := f.Settings.CreateUser(models.User{
		Name:           "Mai Kobayashi",
		Email:          "m.kobayashi@example.co.jp",
		EmployeeNumber: "E1006",
		DepartmentID:   2,
		IsActive:       true,
	})
	require.NoError(t, err)
	assert.Equal(t, 6, created.ID)
	assert.Len(t, f.Settings.ListUsers(), 6)
}

func TestDeletePartner(t *testing.T) {
	f := newFixture(t)

	_, err := f.Partners.DeletePartner(1)
	assert.True(t, errors.Is(err, errors.Forbidden), "pending order: %v", err)

	_, err = f.Partners.DeletePartner(2)
	assert.True(t, errors.Is(err, errors.Forbidden), "active contract: %v", err)

	deleted, err := f.Partners.DeletePartner(5)
	require.NoError(t, err)
	assert.True(t, deleted)
	_, ok := f.Partners.GetPartner(5)
	assert.False(t, ok)

	deleted, err = f.Partners.DeletePartner(5)
	assert.NoError(t, err)
	assert.False(t, deleted)
}

func TestDeletePartnerRemovesDocuments(t *testing.T) {
	f := newFixture(t)

	doc, err := f.Partners.AddDocument(5, "Closing letter", "contract", "sakura_closing.pdf")
	require.NoError(t, err)
	assert.Equal(t, testNow, doc.UploadedAt)

	deleted, err := f.Partners.DeletePartner(5)
	require.NoError(t, err)
	require.True(t, deleted)
	assert.False(t, f.Partners.DeleteDocument(doc.ID))

	_, err = f.Partners.AddDocument(99, "Orphan", "contract", "orphan.pdf")
	assert.True(t, errors.Is(err, errors.NotFound), "got %v", err)
}

func TestDeletePartnerRemovesOwnedRecords(t *testing.T) {
	f := newFixture(t)
	items := []models.OrderItem{{Name: "Patch cables", Quantity: 10, UnitPrice: yen(t, "800")}}

	_, err := f.store.Contracts.Create(models.Contract{
		PartnerID:      5,
		ContractNumber: "CT-2019-009",
		Title:          "Branch cabling",
		Type:           models.ContractTypeService,
		Status:         models.ContractStatusExpired,
		StartDate:      time.Date(2019, time.April, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2020, time.March, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	_, err = f.store.Partners.PurchaseOrders.Create(models.PurchaseOrder{
		PartnerID: 5, OrderNumber: "PO-5-001", Status: models.PurchaseOrderCancelled, Items: items,
	})
	require.NoError(t, err)
	_, err = f.store.Partners.QuotationRequests.Create(models.QuotationRequest{
		PartnerID: 5, RequestNumber: "QR-5-001", Status: models.QuotationRejected, Items: items,
	})
	require.NoError(t, err)
	_, err = f.store.Partners.SentEmails.Create(models.SentEmail{
		PartnerID: 5, To: "info@sakura-net.example.com", Subject: "Quotation request QR-5-001",
	})
	require.NoError(t, err)
	emailsBefore := len(f.store.Partners.SentEmails.GetAll())

	deleted, err := f.Partners.DeletePartner(5)
	require.NoError(t, err)
	require.True(t, deleted)

	assert.Empty(t, f.store.Contracts.GetByPartner(5))
	assert.Empty(t, f.store.Partners.PurchaseOrdersFor(5))
	assert.Empty(t, f.store.Partners.QuotationRequestsFor(5))
	assert.Empty(t, f.store.Partners.SentEmailsFor(5))
	assert.Len(t, f.store.Partners.SentEmails.GetAll(), emailsBefore-1)
	assert.NotEmpty(t, f.store.Partners.PurchaseOrdersFor(1))
}

func TestCreatePartnerRejectsDuplicateName(t *testing.T) {
	f := newFixture(t)

	p, err := f.Partners.CreatePartner(models.CreatePartnerRequest{
		Name:  "Kanto Cabling",
		Type:  models.PartnerTypeServiceProvider,
		Email: "office@kanto-cabling.example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PartnerStatusActive, p.Status)

	_, err = f.Partners.CreatePartner(models.CreatePartnerRequest{
		Name: "kanto cabling",
		Type: models.PartnerTypeServiceProvider,
	})
	assert.True(t, errors.Is(err, errors.AlreadyExists), "got %v", err)

	taken := "Dell Technologies Japan"
	_, _, err = f.Partners.UpdatePartner(p.ID, models.UpdatePartnerRequest{Name: &taken})
	assert.True(t, errors.Is(err, errors.AlreadyExists), "got %v", err)
}

func TestPartnerStatistics(t *testing.T) {
	f := newFixture(t)

	stats := f.Partners.GetPartnerStatistics()
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 4, stats.Active)
	assert.Equal(t, 1, stats.Inactive)
}

func TestGetPartnerDetail(t *testing.T) {
	f := newFixture(t)

	detail, ok := f.AssetPartner.GetPartnerDetail(1)
	require.True(t, ok)
	assert.Equal(t, "Dell Technologies Japan", detail.Name)
	assert.Len(t, detail.PurchaseOrders, 2)
	require.Len(t, detail.SentEmails, 1)
	assert.Equal(t, "QR-1-001", detail.SentEmails[0].Related)

	// Sakura Network Solutions has never been mailed
	quiet, ok := f.AssetPartner.GetPartnerDetail(5)
	require.True(t, ok)
	assert.NotNil(t, quiet.SentEmails)
	assert.Empty(t, quiet.SentEmails)

	_, ok = f.AssetPartner.GetPartnerDetail(99)
	assert.False(t, ok)
}

func TestListSoftware(t *testing.T) {
	f := newFixture(t)

	popular := f.Software.ListSoftware(models.SoftwareFilters{PopularOnly: true})
	var names []string
	for _, sw := range popular {
		names = append(names, sw.Name)
	}
	assert.Contains(t, names, "Microsoft 365 Apps")
	assert.NotContains(t, names, "7-Zip")

	archivers := f.Software.ListSoftware(models.SoftwareFilters{Keyword: "archiver"})
	require.Len(t, archivers, 1)
	assert.Equal(t, 5, archivers[0].ID)

	assert.Equal(t, 2, f.Software.GetInstallCount(1))
	assert.Equal(t, 0, f.Software.GetInstallCount(5))
	assert.Contains(t, f.Software.GetCategories(), "Office")
}

func TestDeleteSoftware(t *testing.T) {
	f := newFixture(t)

	_, err := f.Software.DeleteSoftware(1)
	assert.True(t, errors.Is(err, errors.Forbidden), "got %v", err)

	deleted, err := f.Software.DeleteSoftware(5)
	require.NoError(t, err)
	assert.True(t, deleted)

	// Zoom has a license; uninstalling the last copy frees it for deletion
	require.True(t, f.AssetSpecial.UninstallSoftware(5))
	deleted, err = f.Software.DeleteSoftware(4)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Empty(t, f.Software.ListLicenses(4))
}

func TestCreateSoftwareRejectsDuplicateName(t *testing.T) {
	f := newFixture(t)

	_, err := f.Software.CreateSoftware(models.CreateSoftwareRequest{
		Name:        "7-ZIP",
		Version:     "24.0",
		Category:    "Utility",
		LicenseType: models.LicenseOpenSource,
	})
	assert.True(t, errors.Is(err, errors.AlreadyExists), "got %v", err)
}

func TestLicenseUtilization(t *testing.T) {
	f := newFixture(t)

	byID := make(map[int]LicenseUtilization)
	for _, u := range f.Software.GetLicenseUtilization() {
		byID[u.LicenseID] = u
	}
	m365 := byID[1]
	assert.Equal(t, "Microsoft 365 Apps", m365.SoftwareName)
	assert.Equal(t, 8, m365.AvailableSeats)
	assert.Equal(t, 84.0, m365.UtilizationRate)
	assert.False(t, m365.Expired)

	acrobat := byID[2]
	assert.Equal(t, 100.0, acrobat.UtilizationRate)
	assert.True(t, acrobat.Expired)

	expiring := f.Software.GetExpiringLicenses(30)
	require.Len(t, expiring, 1)
	assert.Equal(t, "M365-E3-0001", expiring[0].LicenseKey)

	expired := f.Software.GetExpiredSoftwareLicenses()
	require.Len(t, expired, 1)
	assert.Equal(t, 2, expired[0].ID)
}

func TestCreateLicense(t *testing.T) {
	f := newFixture(t)
	expiry := time.Date(2025, time.May, 31, 0, 0, 0, 0, time.UTC)
	existing := len(f.Software.ListLicenses(7))

	l, err := f.Software.CreateLicense(models.CreateLicenseRequest{
		SoftwareID:   7,
		LicenseKey:   "ACAD-LT-0042",
		TotalSeats:   2,
		PurchaseDate: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		ExpiryDate:   &expiry,
		Cost:         yen(t, "120000"),
	})
	require.NoError(t, err)
	licenses := f.Software.ListLicenses(7)
	require.Len(t, licenses, existing+1)
	var keys []string
	for _, lic := range licenses {
		keys = append(keys, lic.LicenseKey)
	}
	assert.Contains(t, keys, "ACAD-LT-0042")
	assert.Contains(t, keys, "ACAD-LT-5521")
	assert.Equal(t, 7, l.SoftwareID)

	_, err = f.Software.CreateLicense(models.CreateLicenseRequest{
		SoftwareID: 99,
		LicenseKey: "NOPE",
	})
	assert.True(t, errors.Is(err, errors.NotFound), "got %v", err)

	_, err = f.Software.CreateLicense(models.CreateLicenseRequest{
		SoftwareID: 7,
		LicenseKey: "ACAD-LT-0042",
		TotalSeats: 1,
	})
	assert.True(t, errors.Is(err, errors.AlreadyExists), "got %v", err)
}
