package repository

import (
	"sort"
	"sync"

	"github.com/juju/clock"

	"itam-service/internal/models"
	"itam-service/internal/sampledata"
)

var (
	inventoryStatuses   = enumSet(models.InventoryStatuses)
	discrepancyTypes    = enumSet(models.DiscrepancyTypes)
	severities          = enumSet(models.Severities)
	discrepancyStatuses = enumSet(models.DiscrepancyStatuses)
)

// InventoryRepository stores inventory campaigns, their scan details and
// the discrepancies they raised.
type InventoryRepository struct {
	*Base[models.Inventory, *models.Inventory]
	Discrepancies *Base[models.Discrepancy, *models.Discrepancy]

	data sampledata.InventoryProvider

	detailMu sync.RWMutex
	details  map[int]models.InventoryDetail
}

func NewInventoryRepository(clk clock.Clock, data sampledata.InventoryProvider) *InventoryRepository {
	r := &InventoryRepository{
		data: data,
		Base: NewBase[models.Inventory](clk, Hooks[models.Inventory]{
			Seed:     data.Inventories,
			Validate: validateInventory,
		}),
		Discrepancies: NewBase[models.Discrepancy](clk, Hooks[models.Discrepancy]{
			Seed:     data.Discrepancies,
			Validate: validateDiscrepancy,
		}),
	}
	r.resetDetails()
	return r
}

func validateInventory(i models.Inventory, isUpdate bool) error {
	if !isUpdate {
		if err := required("inventory name", i.Name); err != nil {
			return err
		}
		if i.StartDate.IsZero() || i.EndDate.IsZero() {
			return notValid("inventory start and end dates are required")
		}
	}
	if err := firstErr(
		oneOf("inventory status", string(i.Status), inventoryStatuses),
		nonNegativeInt("target count", i.TargetCount),
		nonNegativeInt("completed count", i.CompletedCount),
		nonNegativeInt("discrepancy count", i.DiscrepancyCount),
	); err != nil {
		return err
	}
	if !i.StartDate.IsZero() && !i.EndDate.IsZero() && i.EndDate.Before(i.StartDate) {
		return notValid("inventory end date is before start date")
	}
	return nil
}

func validateDiscrepancy(d models.Discrepancy, isUpdate bool) error {
	if !isUpdate {
		if err := firstErr(
			requiredID("inventory", d.InventoryID),
			required("asset number", d.AssetNumber),
			required("discrepancy type", string(d.Type)),
			required("severity", string(d.Severity)),
		); err != nil {
			return err
		}
	}
	return firstErr(
		oneOf("discrepancy type", string(d.Type), discrepancyTypes),
		oneOf("severity", string(d.Severity), severities),
		oneOf("discrepancy status", string(d.Status), discrepancyStatuses),
	)
}

// Reset reloads inventories, details and discrepancies.
func (r *InventoryRepository) Reset() {
	r.Base.Reset()
	r.Discrepancies.Reset()
	r.resetDetails()
}

func (r *InventoryRepository) resetDetails() {
	r.detailMu.Lock()
	defer r.detailMu.Unlock()
	r.details = make(map[int]models.InventoryDetail)
	for _, d := range r.data.Details() {
		r.details[d.InventoryID] = d.Clone()
	}
}

// GetDetail returns the scan detail of an inventory.
func (r *InventoryRepository) GetDetail(inventoryID int) (models.InventoryDetail, bool) {
	r.detailMu.RLock()
	defer r.detailMu.RUnlock()
	d, ok := r.details[inventoryID]
	if !ok {
		return models.InventoryDetail{}, false
	}
	return d.Clone(), true
}

// InitDetail creates an empty detail for a new inventory.
func (r *InventoryRepository) InitDetail(inventoryID, total int) models.InventoryDetail {
	r.detailMu.Lock()
	defer r.detailMu.Unlock()
	d := models.InventoryDetail{
		InventoryID: inventoryID,
		Summary:     models.InventorySummary{Total: total},
		Results:     []models.ScanResult{},
		Logs:        []models.InventoryLog{},
	}
	r.details[inventoryID] = d
	return d.Clone()
}

// SetTotal changes the number of assets the inventory expects to scan.
func (r *InventoryRepository) SetTotal(inventoryID, total int) bool {
	return r.withDetail(inventoryID, func(d *models.InventoryDetail) {
		d.Summary.Total = total
	})
}

// DeleteDetail drops the detail of a deleted inventory.
func (r *InventoryRepository) DeleteDetail(inventoryID int) {
	r.detailMu.Lock()
	defer r.detailMu.Unlock()
	delete(r.details, inventoryID)
}

// RecordResult stores a scan result, replacing an earlier result for the
// same asset, and recounts the summary.
func (r *InventoryRepository) RecordResult(inventoryID int, result models.ScanResult) (models.InventoryDetail, bool) {
	var out models.InventoryDetail
	ok := r.withDetail(inventoryID, func(d *models.InventoryDetail) {
		replaced := false
		for i := range d.Results {
			if sameText(d.Results[i].AssetNumber, result.AssetNumber) {
				d.Results[i] = result
				replaced = true
				break
			}
		}
		if !replaced {
			d.Results = append(d.Results, result)
		}
		recount(d)
		out = d.Clone()
	})
	return out, ok
}

// AppendLog adds an activity log line.
func (r *InventoryRepository) AppendLog(inventoryID int, entry models.InventoryLog) bool {
	return r.withDetail(inventoryID, func(d *models.InventoryDetail) {
		d.Logs = append(d.Logs, entry)
	})
}

// SetDiscrepancyCount stores the number of discrepancies in the summary.
func (r *InventoryRepository) SetDiscrepancyCount(inventoryID, count int) bool {
	return r.withDetail(inventoryID, func(d *models.InventoryDetail) {
		d.Summary.Discrepancies = count
	})
}

func (r *InventoryRepository) withDetail(inventoryID int, fn func(*models.InventoryDetail)) bool {
	r.detailMu.Lock()
	defer r.detailMu.Unlock()
	d, ok := r.details[inventoryID]
	if !ok {
		return false
	}
	d = d.Clone()
	fn(&d)
	r.details[inventoryID] = d
	return true
}

func recount(d *models.InventoryDetail) {
	s := models.InventorySummary{Total: d.Summary.Total, Discrepancies: d.Summary.Discrepancies}
	for _, res := range d.Results {
		switch res.Outcome {
		case models.ScanFound:
			s.Found++
		case models.ScanMismatch:
			s.Mismatched++
		case models.ScanMissing:
			s.Missing++
		case models.ScanExtra:
			s.Extra++
		}
		if res.Outcome != models.ScanMissing {
			s.Scanned++
		}
	}
	d.Summary = s
}

func (r *InventoryRepository) GetByStatus(status models.InventoryStatus) []models.Inventory {
	return r.Find(func(i models.Inventory) bool { return i.Status == status })
}

func (r *InventoryRepository) GetStatusDistribution() map[string]int {
	return Distribution(r.GetAll(), func(i models.Inventory) string { return string(i.Status) },
		enumKeys(models.InventoryStatuses)...)
}

// DiscrepanciesFor lists the discrepancies raised by one inventory.
func (r *InventoryRepository) DiscrepanciesFor(inventoryID int) []models.Discrepancy {
	return r.Discrepancies.Find(func(d models.Discrepancy) bool { return d.InventoryID == inventoryID })
}

// OpenDiscrepancyExists reports whether an unresolved discrepancy of the
// same kind is already recorded for the asset in this inventory.
func (r *InventoryRepository) OpenDiscrepancyExists(inventoryID int, assetNumber string, t models.DiscrepancyType) bool {
	return r.Discrepancies.Exists(func(d models.Discrepancy) bool {
		return d.InventoryID == inventoryID && d.Type == t && d.Open() && sameText(d.AssetNumber, assetNumber)
	})
}

// ResolveDiscrepancy marks a discrepancy resolved. Resolving an already
// resolved discrepancy succeeds and refreshes the resolution date.
func (r *InventoryRepository) ResolveDiscrepancy(id int, notes string) (models.Discrepancy, bool) {
	now := r.Now()
	d, ok, _ := r.Discrepancies.Update(id, func(d *models.Discrepancy) {
		d.Status = models.DiscrepancyResolved
		d.ResolutionDate = &now
		if notes != "" {
			d.ResolutionNotes = notes
		}
	})
	return d, ok
}

// OpenDiscrepancyCount counts unresolved discrepancies of an inventory.
func (r *InventoryRepository) OpenDiscrepancyCount(inventoryID int) int {
	n := 0
	for _, d := range r.DiscrepanciesFor(inventoryID) {
		if d.Open() {
			n++
		}
	}
	return n
}

func (r *InventoryRepository) GetDiscrepancyTypeDistribution() map[string]int {
	return Distribution(r.Discrepancies.GetAll(), func(d models.Discrepancy) string { return string(d.Type) },
		enumKeys(models.DiscrepancyTypes)...)
}

func (r *InventoryRepository) GetDiscrepancySeverityDistribution() map[string]int {
	return Distribution(r.Discrepancies.GetAll(), func(d models.Discrepancy) string { return string(d.Severity) },
		enumKeys(models.Severities)...)
}

func (r *InventoryRepository) GetDiscrepancyStatusDistribution() map[string]int {
	return Distribution(r.Discrepancies.GetAll(), func(d models.Discrepancy) string { return string(d.Status) },
		enumKeys(models.DiscrepancyStatuses)...)
}

// OpenBySeverity counts unresolved discrepancies per severity.
func (r *InventoryRepository) OpenBySeverity() map[string]int {
	open := Filter(r.Discrepancies.GetAll(), models.Discrepancy.Open)
	return Distribution(open, func(d models.Discrepancy) string { return string(d.Severity) },
		enumKeys(models.Severities)...)
}

// SortDiscrepancies orders most severe first, then newest discovery first.
func SortDiscrepancies(list []models.Discrepancy) []models.Discrepancy {
	out := append([]models.Discrepancy(nil), list...)
	sort.SliceStable(out, func(i, j int) bool {
		if ri, rj := out[i].Severity.Rank(), out[j].Severity.Rank(); ri != rj {
			return ri < rj
		}
		if !out[i].DiscoveryDate.Equal(out[j].DiscoveryDate) {
			return out[i].DiscoveryDate.After(out[j].DiscoveryDate)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
