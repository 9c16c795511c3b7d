package service

import (
	"fmt"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"go.uber.org/zap"

	"itam-service/internal/models"
	"itam-service/internal/repository"
)

// InventoryService runs inventory campaigns: planning, scanning assets
// against the register and closing out.
type InventoryService struct {
	inventories *repository.InventoryRepository
	assets      *repository.AssetRepository
	settings    *repository.SettingsRepository
	clock       clock.Clock
	log         *zap.Logger
}

func NewInventoryService(inventories *repository.InventoryRepository, assets *repository.AssetRepository, settings *repository.SettingsRepository, clk clock.Clock, log *zap.Logger) *InventoryService {
	return &InventoryService{inventories: inventories, assets: assets, settings: settings, clock: clk, log: log}
}

// ListInventories returns every inventory, or those in status when set.
func (s *InventoryService) ListInventories(status models.InventoryStatus) []models.Inventory {
	if status == "" {
		return s.inventories.GetAll()
	}
	return s.inventories.GetByStatus(status)
}

func (s *InventoryService) GetInventory(id int) (models.Inventory, bool) {
	return s.inventories.GetByID(id)
}

// GetInventoryDetail returns the inventory with its results and log.
func (s *InventoryService) GetInventoryDetail(id int) (models.InventoryView, bool) {
	inv, ok := s.inventories.GetByID(id)
	if !ok {
		return models.InventoryView{}, false
	}
	detail, ok := s.inventories.GetDetail(id)
	if !ok {
		detail = models.InventoryDetail{
			InventoryID: id,
			Summary:     models.InventorySummary{Total: inv.TargetCount},
			Results:     []models.ScanResult{},
			Logs:        []models.InventoryLog{},
		}
	}
	return models.InventoryView{Inventory: inv, Detail: detail}, true
}

// CreateInventory plans a new inventory. Its target is every asset in
// the listed locations that has not been disposed, or the whole register
// when no location is given.
func (s *InventoryService) CreateInventory(req models.CreateInventoryRequest) (models.Inventory, error) {
	for _, id := range req.LocationIDs {
		if _, ok := s.settings.Locations.GetByID(id); !ok {
			return models.Inventory{}, errors.NotFoundf("location %d", id)
		}
	}
	target := len(s.scope(req.LocationIDs))
	inv, err := s.inventories.Create(models.Inventory{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      models.InventoryPlanned,
		TargetCount: target,
		Manager:     req.Manager,
		LocationIDs: append([]int(nil), req.LocationIDs...),
	})
	if err != nil {
		return models.Inventory{}, err
	}
	s.inventories.InitDetail(inv.ID, target)
	s.logEvent(inv.ID, "create", req.Manager, fmt.Sprintf("Inventory planned with %d target assets", target))
	s.log.Info("inventory created", zap.Int("id", inv.ID), zap.String("name", inv.Name), zap.Int("target", target))
	return inv, nil
}

// UpdateInventory edits an inventory that has not finished yet.
func (s *InventoryService) UpdateInventory(id int, req models.UpdateInventoryRequest) (models.Inventory, bool, error) {
	return s.inventories.Modify(id, func(inv *models.Inventory) error {
		if inv.Status != models.InventoryPlanned && inv.Status != models.InventoryInProgress {
			return errors.NotValidf("%s inventory update", inv.Status)
		}
		req.Apply(inv)
		return nil
	})
}

// DeleteInventory removes an inventory with its detail and discrepancies.
// An inventory in progress must be completed or cancelled first.
func (s *InventoryService) DeleteInventory(id int) (bool, error) {
	inv, ok := s.inventories.GetByID(id)
	if !ok {
		return false, nil
	}
	if inv.Status == models.InventoryInProgress {
		return false, errors.Forbiddenf("inventory %q is in progress", inv.Name)
	}
	if !s.inventories.Delete(id) {
		return false, nil
	}
	removed := s.inventories.Discrepancies.DeleteWhere(func(d models.Discrepancy) bool { return d.InventoryID == id })
	s.inventories.DeleteDetail(id)
	s.log.Info("inventory deleted", zap.Int("id", id), zap.Int("discrepancies", removed))
	return true, nil
}

// StartInventory moves a planned inventory into progress.
func (s *InventoryService) StartInventory(id int, user string) (models.Inventory, bool, error) {
	inv, ok, err := s.transition(id, models.InventoryInProgress, models.InventoryPlanned)
	if err != nil || !ok {
		return inv, ok, err
	}
	s.logEvent(id, "start", user, "Inventory started")
	s.log.Info("inventory started", zap.Int("id", id))
	return inv, true, nil
}

// CompleteInventory closes an inventory in progress. Every in-scope asset
// that was never scanned is recorded as missing and raises a lost
// discrepancy.
func (s *InventoryService) CompleteInventory(id int, user string) (models.Inventory, bool, error) {
	inv, ok := s.inventories.GetByID(id)
	if !ok {
		return models.Inventory{}, false, nil
	}
	if inv.Status != models.InventoryInProgress {
		return models.Inventory{}, true, errors.NotValidf("completing a %s inventory", inv.Status)
	}

	scanned := make(map[string]bool)
	if detail, ok := s.inventories.GetDetail(id); ok {
		for _, r := range detail.Results {
			scanned[r.AssetNumber] = true
		}
	}
	missing := 0
	for _, a := range s.scope(inv.LocationIDs) {
		if scanned[a.AssetNumber] {
			continue
		}
		missing++
		s.inventories.RecordResult(id, models.ScanResult{
			AssetID:          a.ID,
			AssetNumber:      a.AssetNumber,
			AssetName:        a.Name,
			ExpectedLocation: a.LocationID,
			ExpectedStatus:   a.Status,
			Outcome:          models.ScanMissing,
			ScannedBy:        user,
			ScannedAt:        s.clock.Now(),
		})
		s.raise(id, a.AssetNumber, a.Name, models.DiscrepancyTypeLost,
			"Asset was not found during the inventory", s.locationCode(a.LocationID), "")
	}

	inv, ok, err := s.transition(id, models.InventoryCompleted, models.InventoryInProgress)
	if err != nil || !ok {
		return inv, ok, err
	}
	inv = s.syncCounts(id)
	s.logEvent(id, "complete", user, fmt.Sprintf("Inventory completed with %d discrepancies", inv.DiscrepancyCount))
	s.log.Info("inventory completed", zap.Int("id", id), zap.Int("missing", missing),
		zap.Int("discrepancies", inv.DiscrepancyCount))
	return inv, true, nil
}

// CancelInventory abandons a planned or running inventory.
func (s *InventoryService) CancelInventory(id int, user string) (models.Inventory, bool, error) {
	inv, ok, err := s.transition(id, models.InventoryCancelled, models.InventoryPlanned, models.InventoryInProgress)
	if err != nil || !ok {
		return inv, ok, err
	}
	s.logEvent(id, "cancel", user, "Inventory cancelled")
	s.log.Info("inventory cancelled", zap.Int("id", id))
	return inv, true, nil
}

// ScanReport is the outcome of one scan.
type ScanReport struct {
	Result        models.ScanResult    `json:"result"`
	Discrepancies []models.Discrepancy `json:"discrepancies"`
}

// RecordScan compares what the scanner saw with the register. An asset
// number the register does not know raises an extra discrepancy; a known
// asset raises one discrepancy per difference in location, status or
// condition. An open discrepancy of the same kind is not raised twice.
func (s *InventoryService) RecordScan(id int, req models.ScanRequest) (ScanReport, bool, error) {
	inv, ok := s.inventories.GetByID(id)
	if !ok {
		return ScanReport{}, false, nil
	}
	if inv.Status != models.InventoryInProgress {
		return ScanReport{}, true, errors.NotValidf("scanning a %s inventory", inv.Status)
	}
	if req.AssetNumber == "" {
		return ScanReport{}, true, errors.NewNotValid(nil, "asset number is required")
	}
	if req.LocationID > 0 {
		if _, ok := s.settings.Locations.GetByID(req.LocationID); !ok {
			return ScanReport{}, true, errors.NotFoundf("location %d", req.LocationID)
		}
	}

	result := models.ScanResult{
		AssetNumber:    req.AssetNumber,
		ActualLocation: req.LocationID,
		ActualStatus:   req.Status,
		Damaged:        req.Damaged,
		ScannedBy:      req.ScannedBy,
		ScannedAt:      s.clock.Now(),
		Notes:          req.Notes,
	}
	var raised []models.Discrepancy

	asset, known := s.assets.GetByAssetNumber(req.AssetNumber)
	if !known {
		result.Outcome = models.ScanExtra
		raised = s.appendRaised(raised, id, req.AssetNumber, "", models.DiscrepancyTypeExtra,
			"Scanned asset is not in the register", "", s.locationCode(req.LocationID))
	} else {
		result.AssetID = asset.ID
		result.AssetNumber = asset.AssetNumber
		result.AssetName = asset.Name
		result.ExpectedLocation = asset.LocationID
		result.ExpectedStatus = asset.Status
		if result.ActualLocation == 0 {
			result.ActualLocation = asset.LocationID
		}
		if result.ActualStatus == "" {
			result.ActualStatus = asset.Status
		}
		result.Outcome = models.ScanFound

		if result.ActualLocation != asset.LocationID {
			result.Outcome = models.ScanMismatch
			raised = s.appendRaised(raised, id, asset.AssetNumber, asset.Name, models.DiscrepancyTypeLocation,
				"Asset found at a different location",
				s.locationCode(asset.LocationID), s.locationCode(result.ActualLocation))
		}
		if result.ActualStatus != asset.Status {
			result.Outcome = models.ScanMismatch
			raised = s.appendRaised(raised, id, asset.AssetNumber, asset.Name, models.DiscrepancyTypeStatus,
				"Asset status differs from the register",
				string(asset.Status), string(result.ActualStatus))
		}
		if req.Damaged {
			result.Outcome = models.ScanMismatch
			description := "Asset found damaged"
			if req.Notes != "" {
				description = req.Notes
			}
			raised = s.appendRaised(raised, id, asset.AssetNumber, asset.Name, models.DiscrepancyTypeDamaged,
				description, "", "")
		}
	}

	if _, ok := s.inventories.GetDetail(id); !ok {
		s.inventories.InitDetail(id, inv.TargetCount)
	}
	s.inventories.RecordResult(id, result)
	s.syncCounts(id)
	s.logEvent(id, "scan", req.ScannedBy, fmt.Sprintf("Scanned %s: %s", result.AssetNumber, result.Outcome))

	s.log.Debug("asset scanned",
		zap.Int("inventory_id", id),
		zap.String("asset_number", result.AssetNumber),
		zap.String("outcome", string(result.Outcome)),
		zap.Int("discrepancies", len(raised)))
	if raised == nil {
		raised = []models.Discrepancy{}
	}
	return ScanReport{Result: result, Discrepancies: raised}, true, nil
}

// scope lists the register assets an inventory over locationIDs covers.
func (s *InventoryService) scope(locationIDs []int) []models.Asset {
	return s.assets.Find(func(a models.Asset) bool {
		if a.Status == models.AssetStatusDisposed {
			return false
		}
		return len(locationIDs) == 0 || containsInt(locationIDs, a.LocationID)
	})
}

func (s *InventoryService) transition(id int, to models.InventoryStatus, from ...models.InventoryStatus) (models.Inventory, bool, error) {
	return s.inventories.Modify(id, func(inv *models.Inventory) error {
		for _, f := range from {
			if inv.Status == f {
				inv.Status = to
				return nil
			}
		}
		return errors.NotValidf("inventory status change from %s to %s", inv.Status, to)
	})
}

func (s *InventoryService) appendRaised(raised []models.Discrepancy, inventoryID int, number, name string, t models.DiscrepancyType, description, expected, actual string) []models.Discrepancy {
	d, ok := s.raise(inventoryID, number, name, t, description, expected, actual)
	if !ok {
		return raised
	}
	return append(raised, d)
}

// raise records a pending discrepancy unless an open one of the same type
// already exists for the asset.
func (s *InventoryService) raise(inventoryID int, number, name string, t models.DiscrepancyType, description, expected, actual string) (models.Discrepancy, bool) {
	if s.inventories.OpenDiscrepancyExists(inventoryID, number, t) {
		return models.Discrepancy{}, false
	}
	d, err := s.inventories.Discrepancies.Create(models.Discrepancy{
		InventoryID:   inventoryID,
		AssetNumber:   number,
		AssetName:     name,
		Type:          t,
		Severity:      SeverityFor(t),
		Status:        models.DiscrepancyPending,
		DiscoveryDate: today(s.clock),
		Description:   description,
		ExpectedValue: expected,
		ActualValue:   actual,
	})
	if err != nil {
		s.log.Warn("discrepancy not recorded", zap.Int("inventory_id", inventoryID),
			zap.String("asset_number", number), zap.Error(err))
		return models.Discrepancy{}, false
	}
	return d, true
}

// syncCounts copies the scan summary and discrepancy total onto the
// inventory record.
func (s *InventoryService) syncCounts(id int) models.Inventory {
	return syncInventoryCounts(s.inventories, id)
}

func syncInventoryCounts(inventories *repository.InventoryRepository, id int) models.Inventory {
	count := len(inventories.DiscrepanciesFor(id))
	inventories.SetDiscrepancyCount(id, count)
	detail, hasDetail := inventories.GetDetail(id)
	inv, _, _ := inventories.Update(id, func(inv *models.Inventory) {
		inv.DiscrepancyCount = count
		if hasDetail {
			inv.CompletedCount = detail.Summary.Scanned
		}
	})
	return inv
}

func (s *InventoryService) logEvent(id int, action, user, message string) {
	s.inventories.AppendLog(id, models.InventoryLog{
		Timestamp: s.clock.Now(),
		Action:    action,
		User:      user,
		Message:   message,
	})
}

func (s *InventoryService) locationCode(id int) string {
	if id == 0 {
		return ""
	}
	loc, ok := s.settings.Locations.GetByID(id)
	if !ok {
		return fmt.Sprintf("#%d", id)
	}
	return loc.Code
}

// SeverityFor is the default severity of a discrepancy type.
func SeverityFor(t models.DiscrepancyType) models.Severity {
	switch t {
	case models.DiscrepancyTypeLost, models.DiscrepancyTypeDamaged:
		return models.SeverityCritical
	case models.DiscrepancyTypeLocation:
		return models.SeverityHigh
	case models.DiscrepancyTypeStatus:
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}
