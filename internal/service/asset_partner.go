package service

import (
	"itam-service/internal/models"
	"itam-service/internal/repository"
)

// AssetPartnerService joins the asset register with the partner records.
type AssetPartnerService struct {
	assets    *repository.AssetRepository
	partners  *repository.PartnerRepository
	contracts *repository.ContractRepository
}

func NewAssetPartnerService(assets *repository.AssetRepository, partners *repository.PartnerRepository, contracts *repository.ContractRepository) *AssetPartnerService {
	return &AssetPartnerService{assets: assets, partners: partners, contracts: contracts}
}

// GetPartnerDetail returns the partner with everything it owns.
func (s *AssetPartnerService) GetPartnerDetail(id int) (models.PartnerDetail, bool) {
	p, ok := s.partners.GetByID(id)
	if !ok {
		return models.PartnerDetail{}, false
	}
	return models.PartnerDetail{
		Partner:           p,
		Contracts:         nonNil(s.contracts.GetByPartner(id)),
		Documents:         nonNil(s.partners.DocumentsFor(id)),
		PurchaseOrders:    nonNil(s.partners.PurchaseOrdersFor(id)),
		QuotationRequests: nonNil(s.partners.QuotationRequestsFor(id)),
		SentEmails:        nonNil(s.partners.SentEmailsFor(id)),
	}, true
}

// GetAssetsSuppliedBy lists assets whose supplier is the partner.
func (s *AssetPartnerService) GetAssetsSuppliedBy(partnerID int) []models.AssetView {
	supplied := s.assets.Find(func(a models.Asset) bool {
		return a.SupplierID != nil && *a.SupplierID == partnerID
	})
	return s.assets.GetAssetViews(supplied)
}

func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
