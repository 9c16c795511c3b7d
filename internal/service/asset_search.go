package service

import (
	"github.com/juju/collections/set"

	"itam-service/internal/models"
	"itam-service/internal/repository"
)

var assetSearchFields = []string{"name", "asset_number", "serial_number", "manufacturer", "model"}

var assetSortKeys = map[string]string{
	"id":              "id",
	"asset_number":    "asset_number",
	"name":            "name",
	"type":            "type",
	"status":          "status",
	"purchase_date":   "purchase_date",
	"purchase_price":  "purchase_price",
	"current_value":   "current_value",
	"warranty_expiry": "warranty_expiry",
	"manufacturer":    "manufacturer",
}

// AssetSearchService answers keyword searches and filtered list requests.
type AssetSearchService struct {
	assets   *repository.AssetRepository
	settings *repository.SettingsRepository
}

func NewAssetSearchService(assets *repository.AssetRepository, settings *repository.SettingsRepository) *AssetSearchService {
	return &AssetSearchService{assets: assets, settings: settings}
}

// SearchAssets matches keyword against name, asset number, serial number,
// manufacturer and model, ignoring case.
func (s *AssetSearchService) SearchAssets(keyword string) []models.Asset {
	return s.assets.Search(keyword, assetSearchFields...)
}

// GetFilteredAssets applies keyword, status, type, department, location,
// user, purchase date range and price range in that order, then sorts.
func (s *AssetSearchService) GetFilteredAssets(f models.AssetFilters) []models.Asset {
	data := s.SearchAssets(f.Keyword)

	if f.Status != "" {
		data = repository.Filter(data, func(a models.Asset) bool { return a.Status == f.Status })
	}
	if f.TypeID > 0 {
		data = repository.Filter(data, func(a models.Asset) bool { return a.TypeID == f.TypeID })
	}
	if f.DepartmentID > 0 {
		data = repository.Filter(data, func(a models.Asset) bool { return a.DepartmentID == f.DepartmentID })
	}
	if f.LocationID > 0 {
		data = repository.Filter(data, func(a models.Asset) bool { return a.LocationID == f.LocationID })
	}
	if f.UserID > 0 {
		data = repository.Filter(data, func(a models.Asset) bool { return a.UserID != nil && *a.UserID == f.UserID })
	}
	if f.PurchasedFrom != nil {
		data = repository.Filter(data, func(a models.Asset) bool { return !a.PurchaseDate.Before(*f.PurchasedFrom) })
	}
	if f.PurchasedTo != nil {
		data = repository.Filter(data, func(a models.Asset) bool { return !a.PurchaseDate.After(*f.PurchasedTo) })
	}
	if f.MinPrice != nil {
		data = repository.Filter(data, func(a models.Asset) bool { return a.PurchasePrice.GreaterThanOrEqual(*f.MinPrice) })
	}
	if f.MaxPrice != nil {
		data = repository.Filter(data, func(a models.Asset) bool { return a.PurchasePrice.LessThanOrEqual(*f.MaxPrice) })
	}

	if f.Sort != "" {
		data = repository.Sort(data, f.Sort, assetSortKeys)
	}
	return data
}

// GetPaginatedAssets filters, joins and pages the asset list.
func (s *AssetSearchService) GetPaginatedAssets(f models.AssetFilters, page, perPage int) repository.Page[models.AssetView] {
	p := repository.Paginate(s.GetFilteredAssets(f), page, perPage)
	return repository.Page[models.AssetView]{
		Items:      s.assets.GetAssetViews(p.Items),
		Pagination: p.Pagination,
	}
}

// FilterOptions lists the values a client can offer in asset list filters.
type FilterOptions struct {
	Statuses    []models.StatusMaster `json:"statuses"`
	Types       []models.AssetType    `json:"types"`
	Departments []models.Department   `json:"departments"`
	Locations   []models.Location     `json:"locations"`
	Users       []models.User         `json:"users"`
	SortKeys    []string              `json:"sort_keys"`
}

func (s *AssetSearchService) GetFilterOptions() FilterOptions {
	all := s.settings.GetAll()
	keys := set.NewStrings()
	for k := range assetSortKeys {
		keys.Add(k)
	}
	return FilterOptions{
		Statuses:    all.Statuses,
		Types:       all.AssetTypes,
		Departments: all.Departments,
		Locations:   all.Locations,
		Users:       all.Users,
		SortKeys:    keys.SortedValues(),
	}
}
