package service

import (
	"github.com/juju/errors"
	"go.uber.org/zap"

	"itam-service/internal/models"
	"itam-service/internal/repository"
)

var partnerSearchFields = []string{"name", "contact_person", "email", "phone", "address"}

var partnerSortKeys = map[string]string{
	"id":         "id",
	"name":       "name",
	"type":       "type",
	"status":     "status",
	"created_at": "created_at",
}

// PartnerService manages partners and their documents.
type PartnerService struct {
	partners  *repository.PartnerRepository
	contracts *repository.ContractRepository
	log       *zap.Logger
}

func NewPartnerService(partners *repository.PartnerRepository, contracts *repository.ContractRepository, log *zap.Logger) *PartnerService {
	return &PartnerService{partners: partners, contracts: contracts, log: log}
}

func (s *PartnerService) ListPartners(f models.PartnerFilters) []models.Partner {
	data := s.partners.Search(f.Keyword, partnerSearchFields...)
	data = repository.FilterBy(data, map[string]string{
		"type":   string(f.Type),
		"status": string(f.Status),
	})
	return repository.Sort(data, f.Sort, partnerSortKeys)
}

func (s *PartnerService) GetPartner(id int) (models.Partner, bool) {
	return s.partners.GetByID(id)
}

// CreatePartner adds a partner; new partners are active unless stated.
func (s *PartnerService) CreatePartner(req models.CreatePartnerRequest) (models.Partner, error) {
	status := req.Status
	if status == "" {
		status = models.PartnerStatusActive
	}
	p, err := s.partners.Create(models.Partner{
		Name:          req.Name,
		Type:          req.Type,
		Status:        status,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		Website:       req.Website,
		TaxInfo:       req.TaxInfo,
		Notes:         req.Notes,
	})
	if err != nil {
		return models.Partner{}, err
	}
	s.log.Info("partner created", zap.Int("id", p.ID), zap.String("name", p.Name))
	return p, nil
}

func (s *PartnerService) UpdatePartner(id int, req models.UpdatePartnerRequest) (models.Partner, bool, error) {
	p, ok, err := s.partners.Update(id, req.Apply)
	if err == nil && ok {
		s.log.Info("partner updated", zap.Int("id", id))
	}
	return p, ok, err
}

// DeletePartner removes a partner and its documents. A partner with an
// active contract or a pending purchase order cannot be deleted.
func (s *PartnerService) DeletePartner(id int) (bool, error) {
	p, ok := s.partners.GetByID(id)
	if !ok {
		return false, nil
	}
	if s.contracts.HasActiveContracts(id) {
		return false, errors.Forbiddenf("partner %q has active contracts", p.Name)
	}
	if s.partners.HasPendingPurchaseOrders(id) {
		return false, errors.Forbiddenf("partner %q has pending purchase orders", p.Name)
	}
	if !s.partners.Delete(id) {
		return false, nil
	}
	// records owned by the partner go with it; assets keep supplier_id as
	// purchase history
	documents := s.partners.Documents.DeleteWhere(func(d models.PartnerDocument) bool { return d.PartnerID == id })
	contracts := s.contracts.DeleteWhere(func(c models.Contract) bool { return c.PartnerID == id })
	orders := s.partners.PurchaseOrders.DeleteWhere(func(o models.PurchaseOrder) bool { return o.PartnerID == id })
	quotations := s.partners.QuotationRequests.DeleteWhere(func(q models.QuotationRequest) bool { return q.PartnerID == id })
	emails := s.partners.SentEmails.DeleteWhere(func(e models.SentEmail) bool { return e.PartnerID == id })
	s.log.Info("partner deleted", zap.Int("id", id),
		zap.Int("documents", documents),
		zap.Int("contracts", contracts),
		zap.Int("purchase_orders", orders),
		zap.Int("quotation_requests", quotations),
		zap.Int("sent_emails", emails))
	return true, nil
}

// AddDocument files a document under a partner.
func (s *PartnerService) AddDocument(partnerID int, name, category, fileName string) (models.PartnerDocument, error) {
	if _, ok := s.partners.GetByID(partnerID); !ok {
		return models.PartnerDocument{}, errors.NotFoundf("partner %d", partnerID)
	}
	return s.partners.Documents.Create(models.PartnerDocument{
		PartnerID:  partnerID,
		Name:       name,
		Category:   category,
		FileName:   fileName,
		UploadedAt: s.partners.Now(),
	})
}

func (s *PartnerService) DeleteDocument(id int) bool {
	return s.partners.Documents.Delete(id)
}

// PartnerStatistics summarises the partner list.
type PartnerStatistics struct {
	Total    int            `json:"total"`
	Active   int            `json:"active"`
	Inactive int            `json:"inactive"`
	ByType   map[string]int `json:"by_type"`
}

func (s *PartnerService) GetPartnerStatistics() PartnerStatistics {
	active := len(s.partners.GetByStatus(models.PartnerStatusActive))
	total := s.partners.Count()
	return PartnerStatistics{
		Total:    total,
		Active:   active,
		Inactive: total - active,
		ByType:   s.partners.GetTypeDistribution(),
	}
}
