package service

import (
	"github.com/juju/clock"
	"github.com/juju/errors"
	"go.uber.org/zap"

	"itam-service/internal/models"
	"itam-service/internal/repository"
)

var softwareSearchFields = []string{"name", "developer", "description", "category"}

var softwareSortKeys = map[string]string{
	"id":           "id",
	"name":         "name",
	"category":     "category",
	"license_type": "license_type",
	"developer":    "developer",
}

// SoftwareService manages the software catalog and purchased licenses.
type SoftwareService struct {
	software *repository.SoftwareRepository
	assets   *repository.AssetRepository
	clock    clock.Clock
	log      *zap.Logger
}

func NewSoftwareService(software *repository.SoftwareRepository, assets *repository.AssetRepository, clk clock.Clock, log *zap.Logger) *SoftwareService {
	return &SoftwareService{software: software, assets: assets, clock: clk, log: log}
}

func (s *SoftwareService) ListSoftware(f models.SoftwareFilters) []models.Software {
	data := s.software.Search(f.Keyword, softwareSearchFields...)
	filters := map[string]string{
		"category":     f.Category,
		"license_type": string(f.LicenseType),
	}
	if f.PopularOnly {
		filters["is_popular"] = "true"
	}
	data = repository.FilterBy(data, filters)
	return repository.Sort(data, f.Sort, softwareSortKeys)
}

func (s *SoftwareService) GetSoftware(id int) (models.Software, bool) {
	return s.software.GetByID(id)
}

// CreateSoftware adds a catalog entry. Names are unique ignoring case.
func (s *SoftwareService) CreateSoftware(req models.CreateSoftwareRequest) (models.Software, error) {
	sw, err := s.software.Create(models.Software{
		Name:        req.Name,
		Version:     req.Version,
		Category:    req.Category,
		LicenseType: req.LicenseType,
		Developer:   req.Developer,
		Description: req.Description,
		IsPopular:   req.IsPopular,
	})
	if err != nil {
		return models.Software{}, err
	}
	s.log.Info("software created", zap.Int("id", sw.ID), zap.String("name", sw.Name))
	return sw, nil
}

func (s *SoftwareService) UpdateSoftware(id int, req models.UpdateSoftwareRequest) (models.Software, bool, error) {
	return s.software.Update(id, req.Apply)
}

// DeleteSoftware removes a catalog entry and its licenses. Software still
// installed on an asset cannot be deleted.
func (s *SoftwareService) DeleteSoftware(id int) (bool, error) {
	sw, ok := s.software.GetByID(id)
	if !ok {
		return false, nil
	}
	if n := s.assets.CountInstallations(id); n > 0 {
		return false, errors.Forbiddenf("software %q is installed on %d assets", sw.Name, n)
	}
	if !s.software.Delete(id) {
		return false, nil
	}
	removed := s.software.Licenses.DeleteWhere(func(l models.SoftwareLicense) bool { return l.SoftwareID == id })
	s.log.Info("software deleted", zap.Int("id", id), zap.Int("licenses", removed))
	return true, nil
}

func (s *SoftwareService) GetCategories() []string {
	return s.software.GetCategories()
}

func (s *SoftwareService) GetPopularSoftware() []models.Software {
	return s.software.GetPopular()
}

// GetInstallCount is the number of assets the software is installed on.
func (s *SoftwareService) GetInstallCount(softwareID int) int {
	return s.assets.CountInstallations(softwareID)
}

// ListLicenses returns the licenses of one catalog entry, or all of them
// for softwareID 0.
func (s *SoftwareService) ListLicenses(softwareID int) []models.SoftwareLicense {
	if softwareID == 0 {
		return s.software.Licenses.GetAll()
	}
	return s.software.LicensesFor(softwareID)
}

func (s *SoftwareService) CreateLicense(req models.CreateLicenseRequest) (models.SoftwareLicense, error) {
	if _, ok := s.software.GetByID(req.SoftwareID); !ok && req.SoftwareID > 0 {
		return models.SoftwareLicense{}, errors.NotFoundf("software %d", req.SoftwareID)
	}
	l, err := s.software.Licenses.Create(models.SoftwareLicense{
		SoftwareID:   req.SoftwareID,
		LicenseKey:   req.LicenseKey,
		TotalSeats:   req.TotalSeats,
		PurchaseDate: req.PurchaseDate,
		ExpiryDate:   req.ExpiryDate,
		Cost:         req.Cost,
	})
	if err != nil {
		return models.SoftwareLicense{}, err
	}
	s.log.Info("license created", zap.Int("id", l.ID), zap.Int("software_id", l.SoftwareID))
	return l, nil
}

// LicenseUtilization is seat usage for one license.
type LicenseUtilization struct {
	LicenseID       int     `json:"license_id"`
	SoftwareID      int     `json:"software_id"`
	SoftwareName    string  `json:"software_name"`
	LicenseKey      string  `json:"license_key"`
	TotalSeats      int     `json:"total_seats"`
	UsedSeats       int     `json:"used_seats"`
	AvailableSeats  int     `json:"available_seats"`
	UtilizationRate float64 `json:"utilization_rate"`
	Expired         bool    `json:"expired"`
}

func (s *SoftwareService) GetLicenseUtilization() []LicenseUtilization {
	now := s.clock.Now()
	licenses := s.software.Licenses.GetAll()
	out := make([]LicenseUtilization, 0, len(licenses))
	for _, l := range licenses {
		name := ""
		if sw, ok := s.software.GetByID(l.SoftwareID); ok {
			name = sw.Name
		}
		out = append(out, LicenseUtilization{
			LicenseID:       l.ID,
			SoftwareID:      l.SoftwareID,
			SoftwareName:    name,
			LicenseKey:      l.LicenseKey,
			TotalSeats:      l.TotalSeats,
			UsedSeats:       l.UsedSeats,
			AvailableSeats:  max(l.TotalSeats-l.UsedSeats, 0),
			UtilizationRate: percentage(l.UsedSeats, l.TotalSeats),
			Expired:         l.Expired(now),
		})
	}
	return out
}

// GetExpiredSoftwareLicenses lists licenses already past their expiry.
func (s *SoftwareService) GetExpiredSoftwareLicenses() []models.SoftwareLicense {
	return s.software.GetExpiredLicenses(s.clock.Now())
}

func (s *SoftwareService) GetExpiringLicenses(days int) []models.SoftwareLicense {
	if days <= 0 {
		days = DefaultWarningDays
	}
	return s.software.GetExpiringLicenses(s.clock.Now(), days)
}
