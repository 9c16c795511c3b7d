package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type LicenseType string

const (
	LicenseCommercial   LicenseType = "commercial"
	LicenseSubscription LicenseType = "subscription"
	LicenseOpenSource   LicenseType = "open_source"
	LicenseFreeware     LicenseType = "freeware"
)

var LicenseTypes = []LicenseType{
	LicenseCommercial,
	LicenseSubscription,
	LicenseOpenSource,
	LicenseFreeware,
}

// Software is a catalog entry.
type Software struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Version     string      `json:"version"`
	Category    string      `json:"category"`
	LicenseType LicenseType `json:"license_type"`
	Developer   string      `json:"developer,omitempty"`
	Description string      `json:"description,omitempty"`
	IsPopular   bool        `json:"is_popular"`
	Timestamps
}

func (s Software) GetID() int    { return s.ID }
func (s *Software) SetID(id int) { s.ID = id }

func (s Software) Field(name string) string {
	switch name {
	case "id":
		return intField(s.ID)
	case "name":
		return s.Name
	case "version":
		return s.Version
	case "category":
		return s.Category
	case "license_type":
		return string(s.LicenseType)
	case "developer":
		return s.Developer
	case "description":
		return s.Description
	case "is_popular":
		return boolField(s.IsPopular)
	}
	return ""
}

// SoftwareLicense is a purchased entitlement for a catalog entry.
type SoftwareLicense struct {
	ID           int             `json:"id"`
	SoftwareID   int             `json:"software_id"`
	LicenseKey   string          `json:"license_key"`
	TotalSeats   int             `json:"total_seats"`
	UsedSeats    int             `json:"used_seats"`
	PurchaseDate time.Time       `json:"purchase_date"`
	ExpiryDate   *time.Time      `json:"expiry_date,omitempty"`
	Cost         decimal.Decimal `json:"cost"`
	Timestamps
}

func (l SoftwareLicense) GetID() int    { return l.ID }
func (l *SoftwareLicense) SetID(id int) { l.ID = id }

func (l SoftwareLicense) Field(name string) string {
	switch name {
	case "id":
		return intField(l.ID)
	case "software_id":
		return intField(l.SoftwareID)
	case "license_key":
		return l.LicenseKey
	case "expiry_date":
		return optDateField(l.ExpiryDate)
	}
	return ""
}

// Expired reports whether the license ended before now. Perpetual
// licenses never expire.
func (l SoftwareLicense) Expired(now time.Time) bool {
	return l.ExpiryDate != nil && l.ExpiryDate.Before(now)
}

type CreateSoftwareRequest struct {
	Name        string      `json:"name"`
	Version     string      `json:"version"`
	Category    string      `json:"category"`
	LicenseType LicenseType `json:"license_type"`
	Developer   string      `json:"developer,omitempty"`
	Description string      `json:"description,omitempty"`
	IsPopular   bool        `json:"is_popular"`
}

type UpdateSoftwareRequest struct {
	Name        *string      `json:"name,omitempty"`
	Version     *string      `json:"version,omitempty"`
	Category    *string      `json:"category,omitempty"`
	LicenseType *LicenseType `json:"license_type,omitempty"`
	Developer   *string      `json:"developer,omitempty"`
	Description *string      `json:"description,omitempty"`
	IsPopular   *bool        `json:"is_popular,omitempty"`
}

func (r UpdateSoftwareRequest) Apply(s *Software) {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.Version != nil {
		s.Version = *r.Version
	}
	if r.Category != nil {
		s.Category = *r.Category
	}
	if r.LicenseType != nil {
		s.LicenseType = *r.LicenseType
	}
	if r.Developer != nil {
		s.Developer = *r.Developer
	}
	if r.Description != nil {
		s.Description = *r.Description
	}
	if r.IsPopular != nil {
		s.IsPopular = *r.IsPopular
	}
}

type SoftwareFilters struct {
	Keyword     string      `json:"q,omitempty"`
	Category    string      `json:"category,omitempty"`
	LicenseType LicenseType `json:"license_type,omitempty"`
	PopularOnly bool        `json:"popular_only,omitempty"`
	Sort        string      `json:"sort,omitempty"`
}

type CreateLicenseRequest struct {
	SoftwareID   int             `json:"software_id"`
	LicenseKey   string          `json:"license_key"`
	TotalSeats   int             `json:"total_seats"`
	PurchaseDate time.Time       `json:"purchase_date"`
	ExpiryDate   *time.Time      `json:"expiry_date,omitempty"`
	Cost         decimal.Decimal `json:"cost"`
}
