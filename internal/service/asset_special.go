package service

import (
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"itam-service/internal/models"
	"itam-service/internal/repository"
)

// Depreciation method codes understood by CalculateDepreciation.
const (
	StraightLine     = "straight_line"
	DecliningBalance = "declining_balance"
)

// IPScope selects which pool entries ListIPAddresses returns.
type IPScope string

const (
	IPScopeAll        IPScope = "all"
	IPScopeAssigned   IPScope = "assigned"
	IPScopeUnassigned IPScope = "unassigned"
)

// AssetSpecialService covers the PC, network and software views of the
// register plus depreciation and warranty queries.
type AssetSpecialService struct {
	assets   *repository.AssetRepository
	settings *repository.SettingsRepository
	software *repository.SoftwareRepository
	clock    clock.Clock
	log      *zap.Logger
}

func NewAssetSpecialService(
	assets *repository.AssetRepository,
	settings *repository.SettingsRepository,
	software *repository.SoftwareRepository,
	clk clock.Clock,
	log *zap.Logger,
) *AssetSpecialService {
	return &AssetSpecialService{assets: assets, settings: settings, software: software, clock: clk, log: log}
}

// GetPCView returns a PC asset with its detail, addresses and software.
// Assets of a non-PC type are reported as absent.
func (s *AssetSpecialService) GetPCView(assetID int) (models.PCView, bool) {
	a, ok := s.assets.GetByID(assetID)
	if !ok || !s.assets.IsPC(a) {
		return models.PCView{}, false
	}
	return s.assets.GetPCView(assetID)
}

// ListPCs returns the PC view of every PC asset.
func (s *AssetSpecialService) ListPCs() []models.PCView {
	pcs := s.assets.GetPCs()
	out := make([]models.PCView, 0, len(pcs))
	for _, a := range pcs {
		if v, ok := s.assets.GetPCView(a.ID); ok {
			out = append(out, v)
		}
	}
	return out
}

// UpdatePCDetail upserts the hardware detail of a PC asset.
func (s *AssetSpecialService) UpdatePCDetail(assetID int, req models.UpdatePCDetailRequest) (models.PCDetail, bool, error) {
	a, ok := s.assets.GetByID(assetID)
	if !ok {
		return models.PCDetail{}, false, nil
	}
	if !s.assets.IsPC(a) {
		return models.PCDetail{}, true, errors.NotValidf("asset %s is not a PC", a.AssetNumber)
	}
	d, err := s.assets.UpdatePCDetail(assetID, req)
	if err != nil {
		return models.PCDetail{}, true, err
	}
	s.log.Info("pc detail updated", zap.Int("asset_id", assetID))
	return d, true, nil
}

func (s *AssetSpecialService) ListIPAddresses(scope IPScope) []models.IPAddressView {
	ips := s.assets.IPAddresses.GetAll()
	switch scope {
	case IPScopeAssigned:
		ips = repository.Filter(ips, models.IPAddress.Assigned)
	case IPScopeUnassigned:
		ips = repository.Filter(ips, func(ip models.IPAddress) bool { return !ip.Assigned() })
	}
	return s.assets.GetIPAddressViews(ips)
}

// CreateIPAddress adds an unassigned address to the pool.
func (s *AssetSpecialService) CreateIPAddress(req models.CreateIPAddressRequest) (models.IPAddress, error) {
	ip, err := s.assets.IPAddresses.Create(models.IPAddress{
		Address:    req.Address,
		SubnetMask: req.SubnetMask,
		Gateway:    req.Gateway,
		Hostname:   req.Hostname,
		Notes:      req.Notes,
	})
	if err != nil {
		return models.IPAddress{}, err
	}
	s.log.Info("ip address created", zap.String("address", ip.Address))
	return ip, nil
}

// AssignIPAddress binds a pool address to an asset. When userID is nil the
// asset's user is recorded on the address.
func (s *AssetSpecialService) AssignIPAddress(ipID, assetID int, userID *int) (models.IPAddress, bool, error) {
	a, ok := s.assets.GetByID(assetID)
	if !ok {
		return models.IPAddress{}, false, errors.NotFoundf("asset %d", assetID)
	}
	if userID == nil {
		userID = a.UserID
	} else if _, ok := s.settings.Users.GetByID(*userID); !ok {
		return models.IPAddress{}, false, errors.NotFoundf("user %d", *userID)
	}
	ip, ok, err := s.assets.AssignIPAddress(ipID, assetID, userID)
	if err == nil && ok {
		s.log.Info("ip address assigned", zap.String("address", ip.Address), zap.String("asset_number", a.AssetNumber))
	}
	return ip, ok, err
}

func (s *AssetSpecialService) ReleaseIPAddress(ipID int) (models.IPAddress, bool) {
	ip, ok := s.assets.ReleaseIPAddress(ipID)
	if ok {
		s.log.Info("ip address released", zap.String("address", ip.Address))
	}
	return ip, ok
}

func (s *AssetSpecialService) GetInstalledSoftware(assetID int) []models.SoftwareInstallation {
	return s.assets.GetInstallations(assetID)
}

// InstallSoftware records a catalog entry as installed on an asset.
func (s *AssetSpecialService) InstallSoftware(assetID, softwareID int, licenseKey string) (models.SoftwareInstallation, error) {
	if _, ok := s.assets.GetByID(assetID); !ok {
		return models.SoftwareInstallation{}, errors.NotFoundf("asset %d", assetID)
	}
	sw, ok := s.software.GetByID(softwareID)
	if !ok {
		return models.SoftwareInstallation{}, errors.NotFoundf("software %d", softwareID)
	}
	for _, inst := range s.assets.GetInstallations(assetID) {
		if inst.SoftwareID == softwareID {
			return models.SoftwareInstallation{}, errors.AlreadyExistsf("%s on asset %d", sw.Name, assetID)
		}
	}
	inst, err := s.assets.Installations.Create(models.SoftwareInstallation{
		AssetID:     assetID,
		SoftwareID:  softwareID,
		Name:        sw.Name,
		Version:     sw.Version,
		LicenseKey:  licenseKey,
		InstallDate: today(s.clock),
	})
	if err != nil {
		return models.SoftwareInstallation{}, err
	}
	s.log.Info("software installed", zap.Int("asset_id", assetID), zap.String("software", sw.Name))
	return inst, nil
}

func (s *AssetSpecialService) UninstallSoftware(installationID int) bool {
	return s.assets.Installations.Delete(installationID)
}

// Depreciation is the book value of an asset at a point in time.
type Depreciation struct {
	AssetID          int             `json:"asset_id"`
	AssetNumber      string          `json:"asset_number"`
	Method           string          `json:"method"`
	PurchasePrice    decimal.Decimal `json:"purchase_price"`
	UsefulLife       int             `json:"useful_life"`
	MonthsElapsed    int             `json:"months_elapsed"`
	Accumulated      decimal.Decimal `json:"accumulated_depreciation"`
	BookValue        decimal.Decimal `json:"book_value"`
	FullyDepreciated bool            `json:"fully_depreciated"`
}

// CalculateDepreciation values the asset today with the named method.
// An empty method code means straight line.
func (s *AssetSpecialService) CalculateDepreciation(assetID int, methodCode string) (Depreciation, bool, error) {
	a, ok := s.assets.GetByID(assetID)
	if !ok {
		return Depreciation{}, false, nil
	}
	if methodCode == "" {
		methodCode = StraightLine
	}
	method, ok := s.settings.DepreciationMethods.GetByCode(methodCode)
	if !ok {
		return Depreciation{}, true, errors.NotFoundf("depreciation method %q", methodCode)
	}
	if a.UsefulLife <= 0 {
		return Depreciation{}, true, errors.NotValidf("useful life of asset %s", a.AssetNumber)
	}

	elapsed := monthsBetween(a.PurchaseDate, s.clock.Now())
	d := Depreciation{
		AssetID:          a.ID,
		AssetNumber:      a.AssetNumber,
		Method:           method.Code,
		PurchasePrice:    a.PurchasePrice,
		UsefulLife:       a.UsefulLife,
		MonthsElapsed:    elapsed,
		FullyDepreciated: elapsed >= a.UsefulLife,
	}

	switch method.Code {
	case StraightLine:
		months := elapsed
		if months > a.UsefulLife {
			months = a.UsefulLife
		}
		monthly := a.PurchasePrice.Div(decimal.NewFromInt(int64(a.UsefulLife)))
		d.Accumulated = monthly.Mul(decimal.NewFromInt(int64(months))).Round(0)
		d.BookValue = a.PurchasePrice.Sub(d.Accumulated)
	case DecliningBalance:
		if !method.Rate.IsPositive() || method.Rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return Depreciation{}, true, errors.NotValidf("declining balance rate %s", method.Rate)
		}
		years := decimal.NewFromInt(int64(elapsed / 12))
		remaining := decimal.NewFromInt(1).Sub(method.Rate).Pow(years)
		d.BookValue = a.PurchasePrice.Mul(remaining).Round(0)
		d.Accumulated = a.PurchasePrice.Sub(d.BookValue)
	default:
		return Depreciation{}, true, errors.NotSupportedf("depreciation method %q", method.Code)
	}
	return d, true, nil
}

// GetWarrantyExpiringAssets lists assets whose warranty ends within days.
func (s *AssetSpecialService) GetWarrantyExpiringAssets(days int) []models.AssetView {
	if days <= 0 {
		days = DefaultWarningDays
	}
	return s.assets.GetAssetViews(s.assets.GetExpiringWarranties(s.clock.Now(), days))
}

// monthsBetween counts whole months from from to to.
func monthsBetween(from, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}
