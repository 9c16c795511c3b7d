package repository

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"

	"itam-service/internal/models"
	"itam-service/internal/sampledata"
)

// AssetNumberPrefix prefixes generated asset numbers.
const AssetNumberPrefix = "AS-"

var assetStatuses = enumSet(models.AssetStatuses)

// AssetRepository stores the asset register together with PC details,
// software installations and the IP address pool. Deleting an asset does
// not remove its detail records.
type AssetRepository struct {
	*Base[models.Asset, *models.Asset]
	Installations *Base[models.SoftwareInstallation, *models.SoftwareInstallation]
	IPAddresses   *Base[models.IPAddress, *models.IPAddress]

	settings *SettingsRepository
	data     sampledata.AssetProvider

	pcMu sync.RWMutex
	pcs  map[int]models.PCDetail
}

func NewAssetRepository(clk clock.Clock, data sampledata.AssetProvider, settings *SettingsRepository) *AssetRepository {
	r := &AssetRepository{
		settings: settings,
		data:     data,
		Base: NewBase[models.Asset](clk, Hooks[models.Asset]{
			Seed:     data.Assets,
			Validate: validateAsset,
			Conflict: func(rec, other models.Asset) error {
				if sameText(rec.AssetNumber, other.AssetNumber) {
					return errors.AlreadyExistsf("asset number %q", rec.AssetNumber)
				}
				return nil
			},
		}),
		Installations: NewBase[models.SoftwareInstallation](clk, Hooks[models.SoftwareInstallation]{
			Seed: data.Installations,
			Validate: func(rec models.SoftwareInstallation, isUpdate bool) error {
				if isUpdate {
					return nil
				}
				return firstErr(
					requiredID("asset id", rec.AssetID),
					requiredID("software id", rec.SoftwareID),
					required("software name", rec.Name),
				)
			},
		}),
		IPAddresses: NewBase[models.IPAddress](clk, Hooks[models.IPAddress]{
			Seed:     data.IPAddresses,
			Validate: validateIPAddress,
			Conflict: func(rec, other models.IPAddress) error {
				if rec.Address == other.Address {
					return errors.AlreadyExistsf("IP address %s", rec.Address)
				}
				return nil
			},
		}),
	}
	r.resetPCs()
	return r
}

func validateAsset(a models.Asset, isUpdate bool) error {
	if !isUpdate {
		if err := firstErr(
			required("asset number", a.AssetNumber),
			required("asset name", a.Name),
			requiredID("asset type", a.TypeID),
			requiredID("department", a.DepartmentID),
			requiredID("location", a.LocationID),
			required("status", string(a.Status)),
		); err != nil {
			return err
		}
	}
	if err := firstErr(
		oneOf("status", string(a.Status), assetStatuses),
		nonNegative("purchase price", a.PurchasePrice),
		nonNegative("current value", a.CurrentValue),
		nonNegativeInt("useful life", a.UsefulLife),
	); err != nil {
		return err
	}
	if a.WarrantyExpiry != nil && !a.PurchaseDate.IsZero() && a.WarrantyExpiry.Before(a.PurchaseDate) {
		return notValid("warranty expiry %s is before purchase date %s",
			a.WarrantyExpiry.Format(models.DateLayout), a.PurchaseDate.Format(models.DateLayout))
	}
	return nil
}

func validateIPAddress(ip models.IPAddress, isUpdate bool) error {
	if !isUpdate {
		if err := required("address", ip.Address); err != nil {
			return err
		}
	}
	if ip.Address != "" {
		if err := validIP("address", ip.Address); err != nil {
			return err
		}
	}
	if ip.SubnetMask != "" {
		if err := validIP("subnet mask", ip.SubnetMask); err != nil {
			return err
		}
	}
	if ip.Gateway != "" {
		return validIP("gateway", ip.Gateway)
	}
	return nil
}

// Reset reloads assets and every detail collection.
func (r *AssetRepository) Reset() {
	r.Base.Reset()
	r.Installations.Reset()
	r.IPAddresses.Reset()
	r.resetPCs()
}

func (r *AssetRepository) resetPCs() {
	r.pcMu.Lock()
	defer r.pcMu.Unlock()
	r.pcs = make(map[int]models.PCDetail)
	for _, d := range r.data.PCDetails() {
		r.pcs[d.AssetID] = d
	}
}

// GetByAssetNumber finds an asset by its business key, ignoring case.
func (r *AssetRepository) GetByAssetNumber(number string) (models.Asset, bool) {
	return r.First(func(a models.Asset) bool {
		return sameText(a.AssetNumber, number)
	})
}

// AssetNumberExists reports whether another asset already uses number.
func (r *AssetRepository) AssetNumberExists(number string, excludeID int) bool {
	return r.Exists(func(a models.Asset) bool {
		return a.ID != excludeID && sameText(a.AssetNumber, number)
	})
}

// NextAssetNumber returns the asset number after the highest numbered one.
func (r *AssetRepository) NextAssetNumber() string {
	highest := 0
	for _, a := range r.GetAll() {
		if !strings.HasPrefix(a.AssetNumber, AssetNumberPrefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(a.AssetNumber, AssetNumberPrefix))
		if err == nil && n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%s%04d", AssetNumberPrefix, highest+1)
}

func (r *AssetRepository) GetByStatus(status models.AssetStatus) []models.Asset {
	return r.Find(func(a models.Asset) bool { return a.Status == status })
}

func (r *AssetRepository) GetByDepartment(departmentID int) []models.Asset {
	return r.Find(func(a models.Asset) bool { return a.DepartmentID == departmentID })
}

func (r *AssetRepository) GetByLocation(locationID int) []models.Asset {
	return r.Find(func(a models.Asset) bool { return a.LocationID == locationID })
}

func (r *AssetRepository) GetByUser(userID int) []models.Asset {
	return r.Find(func(a models.Asset) bool { return a.UserID != nil && *a.UserID == userID })
}

func (r *AssetRepository) GetByType(typeID int) []models.Asset {
	return r.Find(func(a models.Asset) bool { return a.TypeID == typeID })
}

// GetStatusDistribution counts assets per status. Every status is present.
func (r *AssetRepository) GetStatusDistribution() map[string]int {
	return Distribution(r.GetAll(), func(a models.Asset) string { return string(a.Status) },
		enumKeys(models.AssetStatuses)...)
}

// GetTypeDistribution counts assets per asset type code.
func (r *AssetRepository) GetTypeDistribution() map[string]int {
	var codes []string
	for _, t := range r.settings.AssetTypes.Ordered() {
		codes = append(codes, t.Code)
	}
	return Distribution(r.GetAll(), func(a models.Asset) string { return a.Type }, codes...)
}

// GetDepartmentDistribution counts assets per department id.
func (r *AssetRepository) GetDepartmentDistribution() map[int]int {
	out := make(map[int]int)
	for _, d := range r.settings.Departments.GetAll() {
		out[d.ID] = 0
	}
	for _, a := range r.GetAll() {
		out[a.DepartmentID]++
	}
	return out
}

// GetExpiringWarranties returns assets whose warranty ends within days
// of now, soonest first. Expired warranties are excluded.
func (r *AssetRepository) GetExpiringWarranties(now time.Time, days int) []models.Asset {
	out := r.Find(func(a models.Asset) bool {
		if a.WarrantyExpiry == nil {
			return false
		}
		left := models.DaysBetween(now, *a.WarrantyExpiry)
		return left >= 0 && left <= days
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].WarrantyExpiry.Before(*out[j].WarrantyExpiry)
	})
	return out
}

// GetAssetViews joins assets with their reference data.
func (r *AssetRepository) GetAssetViews(assets []models.Asset) []models.AssetView {
	out := make([]models.AssetView, 0, len(assets))
	for _, a := range assets {
		out = append(out, r.view(a))
	}
	return out
}

func (r *AssetRepository) view(a models.Asset) models.AssetView {
	v := models.AssetView{
		Asset:          a,
		TypeName:       r.settings.AssetTypes.NameOf(a.TypeID),
		StatusName:     r.settings.Statuses.NameOf(a.StatusID),
		DepartmentName: r.settings.Departments.NameOf(a.DepartmentID),
		LocationName:   r.settings.Locations.NameOf(a.LocationID),
	}
	if a.UserID != nil {
		v.UserName = r.settings.UserName(*a.UserID)
	}
	return v
}

// IsPC reports whether the asset's type is a PC type.
func (r *AssetRepository) IsPC(a models.Asset) bool {
	t, ok := r.settings.AssetTypes.GetByID(a.TypeID)
	return ok && t.IsPC
}

// GetPCs returns every asset of a PC type.
func (r *AssetRepository) GetPCs() []models.Asset {
	return r.Find(r.IsPC)
}

// GetPCView assembles a PC asset with its detail, addresses and software.
func (r *AssetRepository) GetPCView(assetID int) (models.PCView, bool) {
	a, ok := r.GetByID(assetID)
	if !ok {
		return models.PCView{}, false
	}
	v := models.PCView{
		AssetView:   r.view(a),
		IPAddresses: r.GetIPAddressesForAsset(assetID),
		Software:    r.GetInstallations(assetID),
	}
	if d, ok := r.GetPCDetail(assetID); ok {
		v.Detail = &d
	}
	return v, true
}

func (r *AssetRepository) GetPCDetail(assetID int) (models.PCDetail, bool) {
	r.pcMu.RLock()
	defer r.pcMu.RUnlock()
	d, ok := r.pcs[assetID]
	return d, ok
}

// UpdatePCDetail applies req over the stored detail, creating it when the
// asset has none yet.
func (r *AssetRepository) UpdatePCDetail(assetID int, req models.UpdatePCDetailRequest) (models.PCDetail, error) {
	if req.MemoryGB != nil && *req.MemoryGB < 0 {
		return models.PCDetail{}, notValid("memory must not be negative")
	}
	if req.StorageGB != nil && *req.StorageGB < 0 {
		return models.PCDetail{}, notValid("storage must not be negative")
	}
	r.pcMu.Lock()
	defer r.pcMu.Unlock()
	d, ok := r.pcs[assetID]
	if !ok {
		d = models.PCDetail{AssetID: assetID}
	}
	req.Apply(&d)
	r.pcs[assetID] = d
	return d, nil
}

func (r *AssetRepository) DeletePCDetail(assetID int) bool {
	r.pcMu.Lock()
	defer r.pcMu.Unlock()
	if _, ok := r.pcs[assetID]; !ok {
		return false
	}
	delete(r.pcs, assetID)
	return true
}

// GetInstallations lists software installed on an asset.
func (r *AssetRepository) GetInstallations(assetID int) []models.SoftwareInstallation {
	return r.Installations.Find(func(i models.SoftwareInstallation) bool { return i.AssetID == assetID })
}

// CountInstallations counts assets with the catalog entry installed.
func (r *AssetRepository) CountInstallations(softwareID int) int {
	return len(r.Installations.Find(func(i models.SoftwareInstallation) bool { return i.SoftwareID == softwareID }))
}

// GetIPAddressesForAsset lists addresses bound to an asset.
func (r *AssetRepository) GetIPAddressesForAsset(assetID int) []models.IPAddress {
	return r.IPAddresses.Find(func(ip models.IPAddress) bool {
		return ip.AssetID != nil && *ip.AssetID == assetID
	})
}

// AssignIPAddress binds an address to an asset and optionally a user. An
// address already bound to a different asset is rejected.
func (r *AssetRepository) AssignIPAddress(id, assetID int, userID *int) (models.IPAddress, bool, error) {
	return r.IPAddresses.Modify(id, func(ip *models.IPAddress) error {
		if ip.AssetID != nil && *ip.AssetID != assetID {
			return errors.AlreadyExistsf("IP address %s assigned to asset %d", ip.Address, *ip.AssetID)
		}
		ip.AssetID = models.IntPtr(assetID)
		if userID != nil {
			ip.UserID = models.IntPtr(*userID)
		}
		return nil
	})
}

// ReleaseIPAddress returns an address to the unassigned pool.
func (r *AssetRepository) ReleaseIPAddress(id int) (models.IPAddress, bool) {
	ip, ok, _ := r.IPAddresses.Update(id, func(ip *models.IPAddress) {
		ip.AssetID = nil
		ip.UserID = nil
		ip.Hostname = ""
	})
	return ip, ok
}

// IPAddressExists reports whether another pool entry uses address.
func (r *AssetRepository) IPAddressExists(address string, excludeID int) bool {
	return r.IPAddresses.Exists(func(ip models.IPAddress) bool {
		return ip.ID != excludeID && ip.Address == address
	})
}

// GetIPAddressViews joins addresses with their owning asset and user.
func (r *AssetRepository) GetIPAddressViews(ips []models.IPAddress) []models.IPAddressView {
	out := make([]models.IPAddressView, 0, len(ips))
	for _, ip := range ips {
		v := models.IPAddressView{IPAddress: ip}
		if ip.AssetID != nil {
			if a, ok := r.GetByID(*ip.AssetID); ok {
				v.AssetNumber = a.AssetNumber
				v.AssetName = a.Name
			}
		}
		if ip.UserID != nil {
			v.UserName = r.settings.UserName(*ip.UserID)
		}
		out = append(out, v)
	}
	return out
}
