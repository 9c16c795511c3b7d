package service

import (
	"itam-service/internal/models"
	"itam-service/internal/repository"
)

type InventoryStatistics struct {
	Total              int            `json:"total"`
	ByStatus           map[string]int `json:"by_status"`
	Active             int            `json:"active"`
	AverageProgress    float64        `json:"average_progress"`
	TotalDiscrepancies int            `json:"total_discrepancies"`
	OpenDiscrepancies  int            `json:"open_discrepancies"`
}

type InventoryProgress struct {
	InventoryID  int                    `json:"inventory_id"`
	Name         string                 `json:"name"`
	Status       models.InventoryStatus `json:"status"`
	Target       int                    `json:"target"`
	Scanned      int                    `json:"scanned"`
	Found        int                    `json:"found"`
	Mismatched   int                    `json:"mismatched"`
	Missing      int                    `json:"missing"`
	Extra        int                    `json:"extra"`
	Remaining    int                    `json:"remaining"`
	ProgressRate float64                `json:"progress_rate"`
}

type DiscrepancyStatistics struct {
	Total          int            `json:"total"`
	Open           int            `json:"open"`
	Resolved       int            `json:"resolved"`
	ResolutionRate float64        `json:"resolution_rate"`
	ByType         map[string]int `json:"by_type"`
	BySeverity     map[string]int `json:"by_severity"`
	ByStatus       map[string]int `json:"by_status"`
	OpenBySeverity map[string]int `json:"open_by_severity"`
}

// InventoryStatisticsService reports on inventory progress and the
// discrepancies inventories raised.
type InventoryStatisticsService struct {
	inventories *repository.InventoryRepository
}

func NewInventoryStatisticsService(inventories *repository.InventoryRepository) *InventoryStatisticsService {
	return &InventoryStatisticsService{inventories: inventories}
}

// GetInventoryStatistics averages progress over inventories that are
// running or finished.
func (s *InventoryStatisticsService) GetInventoryStatistics() InventoryStatistics {
	all := s.inventories.GetAll()
	byStatus := s.inventories.GetStatusDistribution()

	var sum float64
	counted := 0
	for _, inv := range all {
		if inv.Status == models.InventoryInProgress || inv.Status == models.InventoryCompleted {
			sum += inv.ProgressRate()
			counted++
		}
	}
	avg := 0.0
	if counted > 0 {
		avg = round1(sum / float64(counted))
	}

	discrepancies := s.inventories.Discrepancies.GetAll()
	open := len(repository.Filter(discrepancies, models.Discrepancy.Open))
	return InventoryStatistics{
		Total:              len(all),
		ByStatus:           byStatus,
		Active:             byStatus[string(models.InventoryInProgress)],
		AverageProgress:    avg,
		TotalDiscrepancies: len(discrepancies),
		OpenDiscrepancies:  open,
	}
}

func (s *InventoryStatisticsService) GetInventoryProgress(id int) (InventoryProgress, bool) {
	inv, ok := s.inventories.GetByID(id)
	if !ok {
		return InventoryProgress{}, false
	}
	p := InventoryProgress{
		InventoryID:  inv.ID,
		Name:         inv.Name,
		Status:       inv.Status,
		Target:       inv.TargetCount,
		Scanned:      inv.CompletedCount,
		ProgressRate: round1(inv.ProgressRate()),
	}
	if detail, ok := s.inventories.GetDetail(id); ok && detail.Results != nil {
		p.Scanned = detail.Summary.Scanned
		p.Found = detail.Summary.Found
		p.Mismatched = detail.Summary.Mismatched
		p.Missing = detail.Summary.Missing
		p.Extra = detail.Summary.Extra
	}
	p.Remaining = max(p.Target-p.Scanned, 0)
	return p, true
}

func (s *InventoryStatisticsService) GetDiscrepancyStatistics() DiscrepancyStatistics {
	byStatus := s.inventories.GetDiscrepancyStatusDistribution()
	total := s.inventories.Discrepancies.Count()
	resolved := byStatus[string(models.DiscrepancyResolved)]
	return DiscrepancyStatistics{
		Total:          total,
		Open:           total - resolved,
		Resolved:       resolved,
		ResolutionRate: percentage(resolved, total),
		ByType:         s.inventories.GetDiscrepancyTypeDistribution(),
		BySeverity:     s.inventories.GetDiscrepancySeverityDistribution(),
		ByStatus:       byStatus,
		OpenBySeverity: s.inventories.OpenBySeverity(),
	}
}
