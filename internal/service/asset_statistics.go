package service

import (
	"strconv"

	"github.com/juju/clock"
	"github.com/shopspring/decimal"

	"itam-service/internal/models"
	"itam-service/internal/repository"
)

// DashboardStatistics is the headline view of the asset register.
type DashboardStatistics struct {
	TotalAssets        int             `json:"total_assets"`
	InUseAssets        int             `json:"in_use_assets"`
	AvailableAssets    int             `json:"available_assets"`
	InRepairAssets     int             `json:"in_repair_assets"`
	BrokenAssets       int             `json:"broken_assets"`
	DisposedAssets     int             `json:"disposed_assets"`
	UsageRate          float64         `json:"usage_rate"`
	TotalPurchaseValue decimal.Decimal `json:"total_purchase_value"`
	TotalCurrentValue  decimal.Decimal `json:"total_current_value"`
	ExpiringWarranties int             `json:"expiring_warranties"`
}

// Breakdown is one row of a grouped count.
type Breakdown struct {
	Key        string  `json:"key"`
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// WarrantyStatus groups assets by the state of their warranty.
type WarrantyStatus struct {
	Active       int                `json:"active"`
	ExpiringSoon int                `json:"expiring_soon"`
	Expired      int                `json:"expired"`
	NoWarranty   int                `json:"no_warranty"`
	Expiring     []models.AssetView `json:"expiring"`
}

// AssetStatisticsService aggregates the register for dashboards. Every
// call recomputes from the current records.
type AssetStatisticsService struct {
	assets      *repository.AssetRepository
	settings    *repository.SettingsRepository
	clock       clock.Clock
	warningDays int
}

func NewAssetStatisticsService(assets *repository.AssetRepository, settings *repository.SettingsRepository, clk clock.Clock, warningDays int) *AssetStatisticsService {
	return &AssetStatisticsService{assets: assets, settings: settings, clock: clk, warningDays: warningDays}
}

func (s *AssetStatisticsService) GetDashboardStatistics() DashboardStatistics {
	all := s.assets.GetAll()
	byStatus := s.assets.GetStatusDistribution()

	stats := DashboardStatistics{
		TotalAssets:        len(all),
		InUseAssets:        byStatus[string(models.AssetStatusInUse)],
		AvailableAssets:    byStatus[string(models.AssetStatusAvailable)],
		InRepairAssets:     byStatus[string(models.AssetStatusInRepair)],
		BrokenAssets:       byStatus[string(models.AssetStatusBroken)],
		DisposedAssets:     byStatus[string(models.AssetStatusDisposed)],
		TotalPurchaseValue: decimal.Zero,
		TotalCurrentValue:  decimal.Zero,
		ExpiringWarranties: len(s.assets.GetExpiringWarranties(s.clock.Now(), s.warningDays)),
	}
	stats.UsageRate = percentage(stats.InUseAssets, stats.TotalAssets)
	for _, a := range all {
		stats.TotalPurchaseValue = stats.TotalPurchaseValue.Add(a.PurchasePrice)
		stats.TotalCurrentValue = stats.TotalCurrentValue.Add(a.CurrentValue)
	}
	return stats
}

func (s *AssetStatisticsService) GetStatusBreakdown() []Breakdown {
	counts := s.assets.GetStatusDistribution()
	total := s.assets.Count()
	out := make([]Breakdown, 0, len(models.AssetStatuses))
	for _, st := range models.AssetStatuses {
		label := string(st)
		if rec, ok := s.settings.Statuses.GetByCode(string(st)); ok {
			label = rec.Name
		}
		n := counts[string(st)]
		out = append(out, Breakdown{Key: string(st), Label: label, Count: n, Percentage: percentage(n, total)})
	}
	return out
}

func (s *AssetStatisticsService) GetTypeBreakdown() []Breakdown {
	counts := s.assets.GetTypeDistribution()
	total := s.assets.Count()
	types := s.settings.AssetTypes.Ordered()
	out := make([]Breakdown, 0, len(types))
	for _, t := range types {
		n := counts[t.Code]
		out = append(out, Breakdown{Key: t.Code, Label: t.Name, Count: n, Percentage: percentage(n, total)})
	}
	return out
}

func (s *AssetStatisticsService) GetDepartmentBreakdown() []Breakdown {
	counts := s.assets.GetDepartmentDistribution()
	total := s.assets.Count()
	departments := s.settings.Departments.Ordered()
	out := make([]Breakdown, 0, len(departments))
	for _, d := range departments {
		n := counts[d.ID]
		out = append(out, Breakdown{Key: strconv.Itoa(d.ID), Label: d.Name, Count: n, Percentage: percentage(n, total)})
	}
	return out
}

// GetWarrantyStatus classifies every asset by warranty end date against
// the warning window.
func (s *AssetStatisticsService) GetWarrantyStatus() WarrantyStatus {
	now := s.clock.Now()
	var ws WarrantyStatus
	for _, a := range s.assets.GetAll() {
		switch {
		case a.WarrantyExpiry == nil:
			ws.NoWarranty++
		case models.DaysBetween(now, *a.WarrantyExpiry) < 0:
			ws.Expired++
		case models.DaysBetween(now, *a.WarrantyExpiry) <= s.warningDays:
			ws.ExpiringSoon++
		default:
			ws.Active++
		}
	}
	ws.Expiring = s.assets.GetAssetViews(s.assets.GetExpiringWarranties(now, s.warningDays))
	return ws
}
