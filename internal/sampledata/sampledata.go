// Package sampledata holds the hand-authored records every repository starts
// from. Providers are stateless: each call builds fresh records, so callers
// may mutate what they get back.
package sampledata

import (
	"time"

	"github.com/shopspring/decimal"

	"itam-service/internal/models"
)

// Set bundles one provider per domain. It is built once per process and
// passed into the repositories.
type Set struct {
	Assets        AssetProvider
	Contracts     ContractProvider
	Inventory     InventoryProvider
	Notifications NotificationProvider
	Partners      PartnerProvider
	Settings      SettingsProvider
	Software      SoftwareProvider
}

// New returns the sample data set.
func New() *Set {
	return &Set{}
}

var seededAt = time.Date(2024, time.January, 4, 9, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func stamp(t time.Time) models.Timestamps {
	return models.Timestamps{CreatedAt: t, UpdatedAt: t}
}

func yen(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}
