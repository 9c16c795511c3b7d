package service

import (
	"strconv"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"go.uber.org/zap"

	"itam-service/internal/models"
	"itam-service/internal/repository"
)

var discrepancySearchFields = []string{"asset_number", "asset_name", "description", "assigned_to"}

// InventoryDiscrepancyService tracks discrepancies from discovery to
// resolution.
type InventoryDiscrepancyService struct {
	inventories *repository.InventoryRepository
	clock       clock.Clock
	log         *zap.Logger
}

func NewInventoryDiscrepancyService(inventories *repository.InventoryRepository, clk clock.Clock, log *zap.Logger) *InventoryDiscrepancyService {
	return &InventoryDiscrepancyService{inventories: inventories, clock: clk, log: log}
}

// ListDiscrepancies filters discrepancies and orders them most severe
// first, newest first within a severity.
func (s *InventoryDiscrepancyService) ListDiscrepancies(f models.DiscrepancyFilters) []models.Discrepancy {
	data := s.inventories.Discrepancies.Search(f.Keyword, discrepancySearchFields...)
	filters := map[string]string{
		"type":     string(f.Type),
		"severity": string(f.Severity),
		"status":   string(f.Status),
	}
	if f.InventoryID > 0 {
		filters["inventory_id"] = strconv.Itoa(f.InventoryID)
	}
	return repository.SortDiscrepancies(repository.FilterBy(data, filters))
}

func (s *InventoryDiscrepancyService) GetDiscrepancy(id int) (models.Discrepancy, bool) {
	return s.inventories.Discrepancies.GetByID(id)
}

// CreateDiscrepancy records a discrepancy by hand. Severity defaults to
// the type's usual severity.
func (s *InventoryDiscrepancyService) CreateDiscrepancy(req models.CreateDiscrepancyRequest) (models.Discrepancy, error) {
	if _, ok := s.inventories.GetByID(req.InventoryID); !ok && req.InventoryID > 0 {
		return models.Discrepancy{}, errors.NotFoundf("inventory %d", req.InventoryID)
	}
	severity := req.Severity
	if severity == "" {
		severity = SeverityFor(req.Type)
	}
	d, err := s.inventories.Discrepancies.Create(models.Discrepancy{
		InventoryID:   req.InventoryID,
		AssetNumber:   req.AssetNumber,
		AssetName:     req.AssetName,
		Type:          req.Type,
		Severity:      severity,
		Status:        models.DiscrepancyPending,
		DiscoveryDate: today(s.clock),
		Description:   req.Description,
		ExpectedValue: req.ExpectedValue,
		ActualValue:   req.ActualValue,
		AssignedTo:    req.AssignedTo,
	})
	if err != nil {
		return models.Discrepancy{}, err
	}
	syncInventoryCounts(s.inventories, d.InventoryID)
	s.log.Info("discrepancy created", zap.Int("id", d.ID), zap.String("asset_number", d.AssetNumber),
		zap.String("type", string(d.Type)))
	return d, nil
}

// UpdateDiscrepancy edits the discrepancy. Resolution cannot be undone: a
// resolved discrepancy only accepts edits that keep it resolved.
func (s *InventoryDiscrepancyService) UpdateDiscrepancy(id int, req models.UpdateDiscrepancyRequest) (models.Discrepancy, bool, error) {
	resolve := req.Status != nil && *req.Status == models.DiscrepancyResolved
	if resolve {
		req.Status = nil
	}
	d, ok, err := s.inventories.Discrepancies.Modify(id, func(d *models.Discrepancy) error {
		if !d.Open() && req.Status != nil {
			return errors.NotValidf("reopening resolved discrepancy %d", d.ID)
		}
		req.Apply(d)
		return nil
	})
	if err != nil || !ok || !resolve {
		return d, ok, err
	}
	d, ok = s.ResolveDiscrepancy(id, "")
	return d, ok, nil
}

// StartInvestigation assigns the discrepancy and marks it under
// investigation. assignee may be empty to keep the current one.
func (s *InventoryDiscrepancyService) StartInvestigation(id int, assignee string) (models.Discrepancy, bool, error) {
	return s.advance(id, models.DiscrepancyInvestigating, assignee)
}

// ConfirmDiscrepancy accepts the discrepancy as real.
func (s *InventoryDiscrepancyService) ConfirmDiscrepancy(id int) (models.Discrepancy, bool, error) {
	return s.advance(id, models.DiscrepancyConfirmed, "")
}

func (s *InventoryDiscrepancyService) advance(id int, to models.DiscrepancyStatus, assignee string) (models.Discrepancy, bool, error) {
	d, ok, err := s.inventories.Discrepancies.Modify(id, func(d *models.Discrepancy) error {
		if !d.Open() {
			return errors.NotValidf("changing resolved discrepancy %d", d.ID)
		}
		d.Status = to
		if assignee != "" {
			d.AssignedTo = assignee
		}
		return nil
	})
	if err == nil && ok {
		s.log.Info("discrepancy status changed", zap.Int("id", id), zap.String("status", string(to)))
	}
	return d, ok, err
}

// ResolveDiscrepancy marks the discrepancy resolved today. Resolving twice
// succeeds both times.
func (s *InventoryDiscrepancyService) ResolveDiscrepancy(id int, notes string) (models.Discrepancy, bool) {
	d, ok := s.inventories.ResolveDiscrepancy(id, notes)
	if ok {
		s.log.Info("discrepancy resolved", zap.Int("id", id), zap.String("asset_number", d.AssetNumber))
	}
	return d, ok
}

// BulkResolve resolves every id it can and returns the count resolved and
// the ids that do not exist.
func (s *InventoryDiscrepancyService) BulkResolve(ids []int, notes string) (int, []int) {
	resolved := 0
	missing := []int{}
	for _, id := range ids {
		if _, ok := s.inventories.ResolveDiscrepancy(id, notes); ok {
			resolved++
			continue
		}
		missing = append(missing, id)
	}
	s.log.Info("discrepancies resolved in bulk", zap.Int("resolved", resolved), zap.Ints("missing", missing))
	return resolved, missing
}

// GetCriticalDiscrepancies lists open critical discrepancies, newest first.
func (s *InventoryDiscrepancyService) GetCriticalDiscrepancies() []models.Discrepancy {
	critical := s.inventories.Discrepancies.Find(func(d models.Discrepancy) bool {
		return d.Open() && d.Severity == models.SeverityCritical
	})
	return repository.SortDiscrepancies(critical)
}
