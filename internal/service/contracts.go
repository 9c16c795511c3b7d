package service

import (
	"strconv"
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"itam-service/internal/models"
	"itam-service/internal/repository"
)

var contractSearchFields = []string{"contract_number", "title", "notes"}

var contractSortKeys = map[string]string{
	"id":              "id",
	"contract_number": "contract_number",
	"title":           "title",
	"start_date":      "start_date",
	"end_date":        "end_date",
	"amount":          "amount",
	"status":          "status",
}

// ContractService manages partner contracts and keeps their status in
// line with their end dates.
type ContractService struct {
	contracts   *repository.ContractRepository
	partners    *repository.PartnerRepository
	clock       clock.Clock
	warningDays int
	log         *zap.Logger
}

func NewContractService(contracts *repository.ContractRepository, partners *repository.PartnerRepository, clk clock.Clock, warningDays int, log *zap.Logger) *ContractService {
	return &ContractService{contracts: contracts, partners: partners, clock: clk, warningDays: warningDays, log: log}
}

func (s *ContractService) ListContracts(f models.ContractFilters) []models.Contract {
	data := s.contracts.Search(f.Keyword, contractSearchFields...)
	filters := map[string]string{
		"type":   string(f.Type),
		"status": string(f.Status),
	}
	if f.PartnerID > 0 {
		filters["partner_id"] = strconv.Itoa(f.PartnerID)
	}
	data = repository.FilterBy(data, filters)
	return repository.Sort(data, f.Sort, contractSortKeys)
}

func (s *ContractService) GetContract(id int) (models.Contract, bool) {
	return s.contracts.GetByID(id)
}

// CreateContract records a contract. Without an explicit status it is
// derived from the end date.
func (s *ContractService) CreateContract(req models.CreateContractRequest) (models.Contract, error) {
	if _, ok := s.partners.GetByID(req.PartnerID); !ok && req.PartnerID > 0 {
		return models.Contract{}, errors.NotFoundf("partner %d", req.PartnerID)
	}
	status := req.Status
	if status == "" {
		status = s.statusFor(req.EndDate)
	}
	c, err := s.contracts.Create(models.Contract{
		PartnerID:      req.PartnerID,
		ContractNumber: req.ContractNumber,
		Title:          req.Title,
		Type:           req.Type,
		Status:         status,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Amount:         req.Amount,
		AutoRenew:      req.AutoRenew,
		Notes:          req.Notes,
	})
	if err != nil {
		return models.Contract{}, err
	}
	s.log.Info("contract created", zap.String("contract_number", c.ContractNumber), zap.String("status", string(c.Status)))
	return c, nil
}

func (s *ContractService) UpdateContract(id int, req models.UpdateContractRequest) (models.Contract, bool, error) {
	c, ok, err := s.contracts.Update(id, req.Apply)
	if err == nil && ok {
		s.log.Info("contract updated", zap.Int("id", id))
	}
	return c, ok, err
}

func (s *ContractService) DeleteContract(id int) bool {
	if !s.contracts.Delete(id) {
		return false
	}
	s.log.Info("contract deleted", zap.Int("id", id))
	return true
}

// GetExpiringContracts lists live contracts ending within days.
func (s *ContractService) GetExpiringContracts(days int) []models.Contract {
	if days <= 0 {
		days = s.warningDays
	}
	return s.contracts.GetExpiring(s.clock.Now(), days)
}

// RefreshStatuses re-derives the status of every live contract from its
// end date and returns how many changed. Ended auto-renew contracts roll
// forward by a year.
func (s *ContractService) RefreshStatuses() int {
	now := s.clock.Now()
	changed := 0
	for _, c := range s.contracts.GetAll() {
		if c.Status != models.ContractStatusActive && c.Status != models.ContractStatusExpiring {
			continue
		}
		end := c.EndDate
		if c.AutoRenew {
			for models.DaysBetween(now, end) < 0 {
				end = end.AddDate(1, 0, 0)
			}
		}
		status := s.statusFor(end)
		if status == c.Status && end.Equal(c.EndDate) {
			continue
		}
		if _, ok, err := s.contracts.Update(c.ID, func(c *models.Contract) {
			c.Status = status
			c.EndDate = end
		}); err != nil || !ok {
			s.log.Warn("contract status not refreshed", zap.Int("id", c.ID), zap.Error(err))
			continue
		}
		changed++
	}
	if changed > 0 {
		s.log.Info("contract statuses refreshed", zap.Int("changed", changed))
	}
	return changed
}

func (s *ContractService) statusFor(end time.Time) models.ContractStatus {
	left := models.DaysBetween(s.clock.Now(), end)
	switch {
	case left < 0:
		return models.ContractStatusExpired
	case left <= s.warningDays:
		return models.ContractStatusExpiring
	default:
		return models.ContractStatusActive
	}
}

// ContractStatistics summarises the contract portfolio.
type ContractStatistics struct {
	Total        int             `json:"total"`
	ByStatus     map[string]int  `json:"by_status"`
	ByType       map[string]int  `json:"by_type"`
	LiveAmount   decimal.Decimal `json:"live_amount"`
	ExpiringSoon int             `json:"expiring_soon"`
}

func (s *ContractService) GetContractStatistics() ContractStatistics {
	stats := ContractStatistics{
		Total:        s.contracts.Count(),
		ByStatus:     s.contracts.GetStatusDistribution(),
		ByType:       s.contracts.GetTypeDistribution(),
		LiveAmount:   decimal.Zero,
		ExpiringSoon: len(s.GetExpiringContracts(s.warningDays)),
	}
	for _, c := range s.contracts.GetAll() {
		if c.Status == models.ContractStatusActive || c.Status == models.ContractStatusExpiring {
			stats.LiveAmount = stats.LiveAmount.Add(c.Amount)
		}
	}
	return stats
}
