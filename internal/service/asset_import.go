package service

import (
	"context"
	"strings"

	"github.com/juju/errors"

	"itam-service/internal/models"
	"itam-service/internal/repository"
	"itam-service/pkg/importer"
)

// AssetImportTarget stores imported workbook rows in the asset register.
// Reference columns (type, status, department, location, user) may hold
// either a code or a display name.
type AssetImportTarget struct {
	crud     *AssetCrudService
	assets   *repository.AssetRepository
	settings *repository.SettingsRepository
}

func NewAssetImportTarget(crud *AssetCrudService, assets *repository.AssetRepository, settings *repository.SettingsRepository) *AssetImportTarget {
	return &AssetImportTarget{crud: crud, assets: assets, settings: settings}
}

// Import runs a workbook import into the register.
func (t *AssetImportTarget) Import(ctx context.Context, path string, opts importer.ImportOptions) (importer.ImportSummary, error) {
	return importer.ImportFile(ctx, t, path, opts)
}

func (t *AssetImportTarget) Find(_ context.Context, field, value string) (int, bool, error) {
	switch field {
	case "asset_number":
		a, ok := t.assets.GetByAssetNumber(value)
		return a.ID, ok, nil
	case "serial_number":
		a, ok := t.assets.First(func(a models.Asset) bool {
			return strings.EqualFold(a.SerialNumber, value)
		})
		return a.ID, ok, nil
	}
	return 0, false, errors.NotSupportedf("natural key %q", field)
}

func (t *AssetImportTarget) Insert(_ context.Context, v importer.Values) error {
	refs, err := t.references(v)
	if err != nil {
		return err
	}
	req := models.CreateAssetRequest{
		TypeID:       refs.typeID,
		DepartmentID: refs.departmentID,
		LocationID:   refs.locationID,
		UserID:       refs.userID,
	}
	if refs.status != nil {
		req.Status = *refs.status
	}
	req.AssetNumber, _ = v.String("asset_number")
	req.Name, _ = v.String("name")
	req.Manufacturer, _ = v.String("manufacturer")
	req.Model, _ = v.String("model")
	req.SerialNumber, _ = v.String("serial_number")
	req.PurchaseDate, _ = v.Time("purchase_date")
	req.PurchasePrice, _ = v.Decimal("purchase_price")
	req.UsefulLife, _ = v.Int("useful_life")
	if d, ok := v.Decimal("current_value"); ok {
		req.CurrentValue = &d
	}
	if w, ok := v.Time("warranty_expiry"); ok {
		req.WarrantyExpiry = &w
	}
	_, err = t.crud.CreateAsset(req)
	return err
}

func (t *AssetImportTarget) Update(_ context.Context, id int, v importer.Values) error {
	refs, err := t.references(v)
	if err != nil {
		return err
	}
	req := models.UpdateAssetRequest{Status: refs.status, UserID: refs.userID}
	if refs.typeID != 0 {
		req.TypeID = &refs.typeID
	}
	if refs.departmentID != 0 {
		req.DepartmentID = &refs.departmentID
	}
	if refs.locationID != 0 {
		req.LocationID = &refs.locationID
	}
	req.Name = optString(v, "name")
	req.Manufacturer = optString(v, "manufacturer")
	req.Model = optString(v, "model")
	req.SerialNumber = optString(v, "serial_number")
	if d, ok := v.Time("purchase_date"); ok {
		req.PurchaseDate = &d
	}
	if d, ok := v.Decimal("purchase_price"); ok {
		req.PurchasePrice = &d
	}
	if d, ok := v.Decimal("current_value"); ok {
		req.CurrentValue = &d
	}
	if w, ok := v.Time("warranty_expiry"); ok {
		req.WarrantyExpiry = &w
	}
	if n, ok := v.Int("useful_life"); ok {
		req.UsefulLife = &n
	}

	_, ok, err := t.crud.UpdateAsset(id, req)
	if err != nil {
		return err
	}
	if !ok {
		return errors.NotFoundf("asset %d", id)
	}
	return nil
}

type importRefs struct {
	typeID, departmentID, locationID int
	status                           *models.AssetStatus
	userID                           *int
}

func (t *AssetImportTarget) references(v importer.Values) (importRefs, error) {
	var refs importRefs
	if s, ok := v.String("type"); ok {
		rec, found := t.settings.AssetTypes.Lookup(s)
		if !found {
			return refs, errors.NotFoundf("asset type %q", s)
		}
		refs.typeID = rec.ID
	}
	if s, ok := v.String("status"); ok {
		rec, found := t.settings.Statuses.Lookup(s)
		if !found {
			return refs, errors.NotFoundf("status %q", s)
		}
		status := models.AssetStatus(rec.Code)
		refs.status = &status
	}
	if s, ok := v.String("department"); ok {
		rec, found := t.settings.Departments.Lookup(s)
		if !found {
			return refs, errors.NotFoundf("department %q", s)
		}
		refs.departmentID = rec.ID
	}
	if s, ok := v.String("location"); ok {
		rec, found := t.settings.Locations.Lookup(s)
		if !found {
			return refs, errors.NotFoundf("location %q", s)
		}
		refs.locationID = rec.ID
	}
	if s, ok := v.String("user"); ok {
		u, found := t.settings.Users.First(func(u models.User) bool {
			return strings.EqualFold(u.Name, s) || strings.EqualFold(u.Email, s)
		})
		if !found {
			return refs, errors.NotFoundf("user %q", s)
		}
		refs.userID = &u.ID
	}
	return refs, nil
}

func optString(v importer.Values, field string) *string {
	s, ok := v.String(field)
	if !ok {
		return nil
	}
	return &s
}
