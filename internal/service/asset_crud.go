package service

import (
	"github.com/juju/errors"
	"go.uber.org/zap"

	"itam-service/internal/models"
	"itam-service/internal/repository"
)

// AssetCrudService creates, reads, updates and deletes register entries.
type AssetCrudService struct {
	assets   *repository.AssetRepository
	settings *repository.SettingsRepository
	log      *zap.Logger
}

func NewAssetCrudService(assets *repository.AssetRepository, settings *repository.SettingsRepository, log *zap.Logger) *AssetCrudService {
	return &AssetCrudService{assets: assets, settings: settings, log: log}
}

// GetAsset returns the asset joined with its reference data.
func (s *AssetCrudService) GetAsset(id int) (models.AssetView, bool) {
	a, ok := s.assets.GetByID(id)
	if !ok {
		return models.AssetView{}, false
	}
	return s.assets.GetAssetViews([]models.Asset{a})[0], true
}

// ListAssets returns every asset in id order.
func (s *AssetCrudService) ListAssets() []models.AssetView {
	return s.assets.GetAssetViews(s.assets.GetAll())
}

// CreateAsset registers a new asset. A missing asset number is generated;
// the status defaults to available and the current value to the purchase
// price.
func (s *AssetCrudService) CreateAsset(req models.CreateAssetRequest) (models.Asset, error) {
	if req.TypeID <= 0 || req.DepartmentID <= 0 || req.LocationID <= 0 {
		return models.Asset{}, errors.NewNotValid(nil, "asset type, department and location are required")
	}
	assetType, err := s.assetType(req.TypeID)
	if err != nil {
		return models.Asset{}, err
	}
	if err := s.checkPlacement(req.DepartmentID, req.LocationID, req.UserID); err != nil {
		return models.Asset{}, err
	}

	number := req.AssetNumber
	if number == "" {
		number = s.assets.NextAssetNumber()
	} else if s.assets.AssetNumberExists(number, 0) {
		return models.Asset{}, errors.AlreadyExistsf("asset number %q", number)
	}

	status := req.Status
	if status == "" {
		status = models.AssetStatusAvailable
	}
	if !status.Valid() {
		return models.Asset{}, errors.NotValidf("asset status %q", status)
	}
	userID := req.UserID
	if status == models.AssetStatusDisposed {
		userID = nil
	}

	usefulLife := req.UsefulLife
	if usefulLife == 0 {
		usefulLife = assetType.DefaultUsefulLife
	}
	currentValue := req.PurchasePrice
	if req.CurrentValue != nil {
		currentValue = *req.CurrentValue
	}

	a, err := s.assets.Create(models.Asset{
		AssetNumber:    number,
		Name:           req.Name,
		TypeID:         assetType.ID,
		Type:           assetType.Code,
		StatusID:       s.settings.StatusIDFor(status),
		Status:         status,
		DepartmentID:   req.DepartmentID,
		LocationID:     req.LocationID,
		UserID:         userID,
		SupplierID:     req.SupplierID,
		PurchaseDate:   req.PurchaseDate,
		PurchasePrice:  req.PurchasePrice,
		SerialNumber:   req.SerialNumber,
		Manufacturer:   req.Manufacturer,
		Model:          req.Model,
		WarrantyExpiry: req.WarrantyExpiry,
		UsefulLife:     usefulLife,
		CurrentValue:   currentValue,
		Notes:          req.Notes,
	})
	if err != nil {
		return models.Asset{}, err
	}
	s.log.Info("asset created", zap.Int("id", a.ID), zap.String("asset_number", a.AssetNumber))
	return a, nil
}

// UpdateAsset merges req over the stored asset. A disposed asset keeps no
// user. ok is false when the asset does not exist.
func (s *AssetCrudService) UpdateAsset(id int, req models.UpdateAssetRequest) (models.Asset, bool, error) {
	if _, ok := s.assets.GetByID(id); !ok {
		return models.Asset{}, false, nil
	}

	var assetType *models.AssetType
	if req.TypeID != nil {
		t, err := s.assetType(*req.TypeID)
		if err != nil {
			return models.Asset{}, true, err
		}
		assetType = &t
	}
	if req.DepartmentID != nil {
		if err := s.department(*req.DepartmentID); err != nil {
			return models.Asset{}, true, err
		}
	}
	if req.LocationID != nil {
		if err := s.location(*req.LocationID); err != nil {
			return models.Asset{}, true, err
		}
	}
	if req.UserID != nil && !req.ClearUser {
		if err := s.user(*req.UserID); err != nil {
			return models.Asset{}, true, err
		}
	}
	if req.Status != nil && !req.Status.Valid() {
		return models.Asset{}, true, errors.NotValidf("asset status %q", *req.Status)
	}

	a, ok, err := s.assets.Update(id, func(a *models.Asset) {
		req.Apply(a)
		if assetType != nil {
			a.Type = assetType.Code
		}
		if req.Status != nil {
			a.StatusID = s.settings.StatusIDFor(a.Status)
		}
		if a.Status == models.AssetStatusDisposed {
			a.UserID = nil
		}
	})
	if err != nil || !ok {
		return a, ok, err
	}
	s.log.Info("asset updated", zap.Int("id", a.ID))
	return a, true, nil
}

// DeleteAsset removes the asset. PC, IP and software detail records are
// left in place.
func (s *AssetCrudService) DeleteAsset(id int) bool {
	if !s.assets.Delete(id) {
		return false
	}
	s.log.Info("asset deleted", zap.Int("id", id))
	return true
}

// ChangeStatus moves the asset to another lifecycle state. Disposing an
// asset also unassigns its user.
func (s *AssetCrudService) ChangeStatus(id int, status models.AssetStatus) (models.Asset, bool, error) {
	if !status.Valid() {
		return models.Asset{}, false, errors.NotValidf("asset status %q", status)
	}
	statusID := s.settings.StatusIDFor(status)
	a, ok, err := s.assets.Update(id, func(a *models.Asset) {
		a.Status = status
		a.StatusID = statusID
		if status == models.AssetStatusDisposed {
			a.UserID = nil
		}
	})
	if err == nil && ok {
		s.log.Info("asset status changed", zap.Int("id", id), zap.String("status", string(status)))
	}
	return a, ok, err
}

// AssignUser sets or clears the asset's user. Assigning an available asset
// puts it in use; clearing the user of an in-use asset makes it available.
func (s *AssetCrudService) AssignUser(id int, userID *int) (models.Asset, bool, error) {
	if userID != nil {
		if err := s.user(*userID); err != nil {
			return models.Asset{}, false, err
		}
	}
	a, ok, err := s.assets.Update(id, func(a *models.Asset) {
		switch {
		case userID != nil:
			a.UserID = models.IntPtr(*userID)
			if a.Status == models.AssetStatusAvailable {
				a.Status = models.AssetStatusInUse
			}
		default:
			a.UserID = nil
			if a.Status == models.AssetStatusInUse {
				a.Status = models.AssetStatusAvailable
			}
		}
		a.StatusID = s.settings.StatusIDFor(a.Status)
	})
	if err == nil && ok {
		s.log.Info("asset user assigned", zap.Int("id", id), zap.Intp("user_id", userID))
	}
	return a, ok, err
}

func (s *AssetCrudService) assetType(id int) (models.AssetType, error) {
	t, ok := s.settings.AssetTypes.GetByID(id)
	if !ok {
		return t, errors.NotFoundf("asset type %d", id)
	}
	return t, nil
}

func (s *AssetCrudService) checkPlacement(departmentID, locationID int, userID *int) error {
	if err := s.department(departmentID); err != nil {
		return err
	}
	if err := s.location(locationID); err != nil {
		return err
	}
	if userID != nil {
		return s.user(*userID)
	}
	return nil
}

func (s *AssetCrudService) department(id int) error {
	if _, ok := s.settings.Departments.GetByID(id); !ok {
		return errors.NotFoundf("department %d", id)
	}
	return nil
}

func (s *AssetCrudService) location(id int) error {
	if _, ok := s.settings.Locations.GetByID(id); !ok {
		return errors.NotFoundf("location %d", id)
	}
	return nil
}

func (s *AssetCrudService) user(id int) error {
	if _, ok := s.settings.Users.GetByID(id); !ok {
		return errors.NotFoundf("user %d", id)
	}
	return nil
}
