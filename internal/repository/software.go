package repository

import (
	"sort"
	"time"

	"github.com/juju/clock"
	"github.com/juju/collections/set"
	"github.com/juju/errors"

	"itam-service/internal/models"
	"itam-service/internal/sampledata"
)

var licenseTypes = enumSet(models.LicenseTypes)

// SoftwareRepository stores the software catalog and purchased licenses.
type SoftwareRepository struct {
	*Base[models.Software, *models.Software]
	Licenses *Base[models.SoftwareLicense, *models.SoftwareLicense]
}

func NewSoftwareRepository(clk clock.Clock, data sampledata.SoftwareProvider) *SoftwareRepository {
	return &SoftwareRepository{
		Base: NewBase[models.Software](clk, Hooks[models.Software]{
			Seed:     data.Catalog,
			Validate: validateSoftware,
			Conflict: func(rec, other models.Software) error {
				if sameText(rec.Name, other.Name) {
					return errors.AlreadyExistsf("software %q", rec.Name)
				}
				return nil
			},
		}),
		Licenses: NewBase[models.SoftwareLicense](clk, Hooks[models.SoftwareLicense]{
			Seed:     data.Licenses,
			Validate: validateLicense,
			Conflict: func(rec, other models.SoftwareLicense) error {
				if rec.LicenseKey == other.LicenseKey {
					return errors.AlreadyExistsf("license key %q", rec.LicenseKey)
				}
				return nil
			},
		}),
	}
}

func validateSoftware(s models.Software, isUpdate bool) error {
	if !isUpdate {
		if err := firstErr(
			required("software name", s.Name),
			required("software category", s.Category),
			required("license type", string(s.LicenseType)),
		); err != nil {
			return err
		}
	}
	return oneOf("license type", string(s.LicenseType), licenseTypes)
}

func validateLicense(l models.SoftwareLicense, isUpdate bool) error {
	if !isUpdate {
		if err := firstErr(
			requiredID("software", l.SoftwareID),
			required("license key", l.LicenseKey),
		); err != nil {
			return err
		}
	}
	if err := firstErr(
		nonNegativeInt("total seats", l.TotalSeats),
		nonNegativeInt("used seats", l.UsedSeats),
		nonNegative("license cost", l.Cost),
	); err != nil {
		return err
	}
	if l.ExpiryDate != nil && !l.PurchaseDate.IsZero() && l.ExpiryDate.Before(l.PurchaseDate) {
		return notValid("license expiry is before purchase date")
	}
	return nil
}

// Reset reloads the catalog and the licenses.
func (r *SoftwareRepository) Reset() {
	r.Base.Reset()
	r.Licenses.Reset()
}

func (r *SoftwareRepository) GetPopular() []models.Software {
	return r.Find(func(s models.Software) bool { return s.IsPopular })
}

func (r *SoftwareRepository) GetByCategory(category string) []models.Software {
	return r.Find(func(s models.Software) bool { return sameText(s.Category, category) })
}

// GetCategories returns the distinct categories in alphabetical order.
func (r *SoftwareRepository) GetCategories() []string {
	categories := set.NewStrings()
	for _, s := range r.GetAll() {
		categories.Add(s.Category)
	}
	return categories.SortedValues()
}

func (r *SoftwareRepository) GetLicenseTypeDistribution() map[string]int {
	return Distribution(r.GetAll(), func(s models.Software) string { return string(s.LicenseType) },
		enumKeys(models.LicenseTypes)...)
}

func (r *SoftwareRepository) LicensesFor(softwareID int) []models.SoftwareLicense {
	return r.Licenses.Find(func(l models.SoftwareLicense) bool { return l.SoftwareID == softwareID })
}

// GetExpiredLicenses returns licenses whose expiry date has passed.
func (r *SoftwareRepository) GetExpiredLicenses(now time.Time) []models.SoftwareLicense {
	out := r.Licenses.Find(func(l models.SoftwareLicense) bool { return l.Expired(now) })
	sort.SliceStable(out, func(i, j int) bool { return out[i].ExpiryDate.Before(*out[j].ExpiryDate) })
	return out
}

// GetExpiringLicenses returns licenses ending within days of now.
func (r *SoftwareRepository) GetExpiringLicenses(now time.Time, days int) []models.SoftwareLicense {
	out := r.Licenses.Find(func(l models.SoftwareLicense) bool {
		if l.ExpiryDate == nil {
			return false
		}
		left := models.DaysBetween(now, *l.ExpiryDate)
		return left >= 0 && left <= days
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].ExpiryDate.Before(*out[j].ExpiryDate) })
	return out
}
