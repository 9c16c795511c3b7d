package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetStatus is the lifecycle state of an asset.
type AssetStatus string

const (
	AssetStatusInUse     AssetStatus = "in_use"
	AssetStatusAvailable AssetStatus = "available"
	AssetStatusInRepair  AssetStatus = "in_repair"
	AssetStatusBroken    AssetStatus = "broken"
	AssetStatusDisposed  AssetStatus = "disposed"
)

// AssetStatuses lists every status in display order.
var AssetStatuses = []AssetStatus{
	AssetStatusInUse,
	AssetStatusAvailable,
	AssetStatusInRepair,
	AssetStatusBroken,
	AssetStatusDisposed,
}

// Valid reports whether s is a known asset status.
func (s AssetStatus) Valid() bool {
	for _, v := range AssetStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Asset represents the core asset record
type Asset struct {
	ID             int             `json:"id"`
	AssetNumber    string          `json:"asset_number"`
	Name           string          `json:"name"`
	TypeID         int             `json:"type_id"`
	Type           string          `json:"type"`
	StatusID       int             `json:"status_id"`
	Status         AssetStatus     `json:"status"`
	DepartmentID   int             `json:"department_id"`
	LocationID     int             `json:"location_id"`
	UserID         *int            `json:"user_id,omitempty"`
	SupplierID     *int            `json:"supplier_id,omitempty"`
	PurchaseDate   time.Time       `json:"purchase_date"`
	PurchasePrice  decimal.Decimal `json:"purchase_price"`
	SerialNumber   string          `json:"serial_number,omitempty"`
	Manufacturer   string          `json:"manufacturer,omitempty"`
	Model          string          `json:"model,omitempty"`
	WarrantyExpiry *time.Time      `json:"warranty_expiry,omitempty"`
	UsefulLife     int             `json:"useful_life"`
	CurrentValue   decimal.Decimal `json:"current_value"`
	Notes          string          `json:"notes,omitempty"`
	Timestamps
}

func (a Asset) GetID() int    { return a.ID }
func (a *Asset) SetID(id int) { a.ID = id }

// Field returns the string form of a named field for search and filtering.
func (a Asset) Field(name string) string {
	switch name {
	case "id":
		return intField(a.ID)
	case "asset_number":
		return a.AssetNumber
	case "name":
		return a.Name
	case "type_id":
		return intField(a.TypeID)
	case "type":
		return a.Type
	case "status_id":
		return intField(a.StatusID)
	case "status":
		return string(a.Status)
	case "department_id":
		return intField(a.DepartmentID)
	case "location_id":
		return intField(a.LocationID)
	case "user_id":
		return optIntField(a.UserID)
	case "supplier_id":
		return optIntField(a.SupplierID)
	case "purchase_date":
		return dateField(a.PurchaseDate)
	case "purchase_price":
		return decimalField(a.PurchasePrice)
	case "serial_number":
		return a.SerialNumber
	case "manufacturer":
		return a.Manufacturer
	case "model":
		return a.Model
	case "warranty_expiry":
		return optDateField(a.WarrantyExpiry)
	case "current_value":
		return decimalField(a.CurrentValue)
	case "notes":
		return a.Notes
	}
	return ""
}

// PCDetail holds hardware and OS attributes of a PC asset, keyed by asset.
type PCDetail struct {
	AssetID    int    `json:"asset_id"`
	CPU        string `json:"cpu"`
	MemoryGB   int    `json:"memory_gb"`
	StorageGB  int    `json:"storage_gb"`
	OS         string `json:"os"`
	OSVersion  string `json:"os_version"`
	Hostname   string `json:"hostname"`
	MACAddress string `json:"mac_address,omitempty"`
}

// SoftwareInstallation records a catalog entry installed on an asset.
type SoftwareInstallation struct {
	ID          int       `json:"id"`
	AssetID     int       `json:"asset_id"`
	SoftwareID  int       `json:"software_id"`
	Name        string    `json:"name"`
	Version     string    `json:"version"`
	LicenseKey  string    `json:"license_key,omitempty"`
	InstallDate time.Time `json:"install_date"`
	Timestamps
}

func (s SoftwareInstallation) GetID() int    { return s.ID }
func (s *SoftwareInstallation) SetID(id int) { s.ID = id }

func (s SoftwareInstallation) Field(name string) string {
	switch name {
	case "id":
		return intField(s.ID)
	case "asset_id":
		return intField(s.AssetID)
	case "software_id":
		return intField(s.SoftwareID)
	case "name":
		return s.Name
	case "version":
		return s.Version
	}
	return ""
}

// IPAddress is an address from the managed pool. A nil AssetID means the
// address is unassigned.
type IPAddress struct {
	ID         int    `json:"id"`
	Address    string `json:"address"`
	SubnetMask string `json:"subnet_mask"`
	Gateway    string `json:"gateway,omitempty"`
	Hostname   string `json:"hostname,omitempty"`
	AssetID    *int   `json:"asset_id,omitempty"`
	UserID     *int   `json:"user_id,omitempty"`
	Notes      string `json:"notes,omitempty"`
	Timestamps
}

func (ip IPAddress) GetID() int    { return ip.ID }
func (ip *IPAddress) SetID(id int) { ip.ID = id }

// Assigned reports whether the address is bound to an asset.
func (ip IPAddress) Assigned() bool { return ip.AssetID != nil }

func (ip IPAddress) Field(name string) string {
	switch name {
	case "id":
		return intField(ip.ID)
	case "address":
		return ip.Address
	case "hostname":
		return ip.Hostname
	case "asset_id":
		return optIntField(ip.AssetID)
	case "user_id":
		return optIntField(ip.UserID)
	}
	return ""
}

// AssetView is an asset joined with its reference data for list screens.
type AssetView struct {
	Asset
	TypeName       string `json:"type_name"`
	StatusName     string `json:"status_name"`
	DepartmentName string `json:"department_name"`
	LocationName   string `json:"location_name"`
	UserName       string `json:"user_name,omitempty"`
}

// PCView assembles a PC asset with its detail, network and software records.
type PCView struct {
	AssetView
	Detail      *PCDetail              `json:"detail,omitempty"`
	IPAddresses []IPAddress            `json:"ip_addresses"`
	Software    []SoftwareInstallation `json:"software"`
}

// IPAddressView is an IP address joined with the owning asset and user.
type IPAddressView struct {
	IPAddress
	AssetNumber string `json:"asset_number,omitempty"`
	AssetName   string `json:"asset_name,omitempty"`
	UserName    string `json:"user_name,omitempty"`
}

// CreateAssetRequest represents the request body for creating a new asset
type CreateAssetRequest struct {
	AssetNumber    string           `json:"asset_number"`
	Name           string           `json:"name"`
	TypeID         int              `json:"type_id"`
	Status         AssetStatus      `json:"status,omitempty"`
	DepartmentID   int              `json:"department_id"`
	LocationID     int              `json:"location_id"`
	UserID         *int             `json:"user_id,omitempty"`
	SupplierID     *int             `json:"supplier_id,omitempty"`
	PurchaseDate   time.Time        `json:"purchase_date"`
	PurchasePrice  decimal.Decimal  `json:"purchase_price"`
	SerialNumber   string           `json:"serial_number,omitempty"`
	Manufacturer   string           `json:"manufacturer,omitempty"`
	Model          string           `json:"model,omitempty"`
	WarrantyExpiry *time.Time       `json:"warranty_expiry,omitempty"`
	UsefulLife     int              `json:"useful_life,omitempty"`
	CurrentValue   *decimal.Decimal `json:"current_value,omitempty"`
	Notes          string           `json:"notes,omitempty"`
}

// UpdateAssetRequest represents the request body for updating an asset.
// Nil fields are left untouched.
type UpdateAssetRequest struct {
	AssetNumber    *string          `json:"asset_number,omitempty"`
	Name           *string          `json:"name,omitempty"`
	TypeID         *int             `json:"type_id,omitempty"`
	Status         *AssetStatus     `json:"status,omitempty"`
	DepartmentID   *int             `json:"department_id,omitempty"`
	LocationID     *int             `json:"location_id,omitempty"`
	UserID         *int             `json:"user_id,omitempty"`
	ClearUser      bool             `json:"clear_user,omitempty"`
	PurchaseDate   *time.Time       `json:"purchase_date,omitempty"`
	PurchasePrice  *decimal.Decimal `json:"purchase_price,omitempty"`
	SerialNumber   *string          `json:"serial_number,omitempty"`
	Manufacturer   *string          `json:"manufacturer,omitempty"`
	Model          *string          `json:"model,omitempty"`
	WarrantyExpiry *time.Time       `json:"warranty_expiry,omitempty"`
	UsefulLife     *int             `json:"useful_life,omitempty"`
	CurrentValue   *decimal.Decimal `json:"current_value,omitempty"`
	Notes          *string          `json:"notes,omitempty"`
}

// Apply merges the request over a, later values winning.
func (r UpdateAssetRequest) Apply(a *Asset) {
	if r.AssetNumber != nil {
		a.AssetNumber = *r.AssetNumber
	}
	if r.Name != nil {
		a.Name = *r.Name
	}
	if r.TypeID != nil {
		a.TypeID = *r.TypeID
	}
	if r.Status != nil {
		a.Status = *r.Status
	}
	if r.DepartmentID != nil {
		a.DepartmentID = *r.DepartmentID
	}
	if r.LocationID != nil {
		a.LocationID = *r.LocationID
	}
	if r.ClearUser {
		a.UserID = nil
	} else if r.UserID != nil {
		a.UserID = IntPtr(*r.UserID)
	}
	if r.PurchaseDate != nil {
		a.PurchaseDate = *r.PurchaseDate
	}
	if r.PurchasePrice != nil {
		a.PurchasePrice = *r.PurchasePrice
	}
	if r.SerialNumber != nil {
		a.SerialNumber = *r.SerialNumber
	}
	if r.Manufacturer != nil {
		a.Manufacturer = *r.Manufacturer
	}
	if r.Model != nil {
		a.Model = *r.Model
	}
	if r.WarrantyExpiry != nil {
		a.WarrantyExpiry = TimePtr(*r.WarrantyExpiry)
	}
	if r.UsefulLife != nil {
		a.UsefulLife = *r.UsefulLife
	}
	if r.CurrentValue != nil {
		a.CurrentValue = *r.CurrentValue
	}
	if r.Notes != nil {
		a.Notes = *r.Notes
	}
}

// UpdatePCDetailRequest carries a partial PC detail update.
type UpdatePCDetailRequest struct {
	CPU        *string `json:"cpu,omitempty"`
	MemoryGB   *int    `json:"memory_gb,omitempty"`
	StorageGB  *int    `json:"storage_gb,omitempty"`
	OS         *string `json:"os,omitempty"`
	OSVersion  *string `json:"os_version,omitempty"`
	Hostname   *string `json:"hostname,omitempty"`
	MACAddress *string `json:"mac_address,omitempty"`
}

// Apply merges the request over d.
func (r UpdatePCDetailRequest) Apply(d *PCDetail) {
	if r.CPU != nil {
		d.CPU = *r.CPU
	}
	if r.MemoryGB != nil {
		d.MemoryGB = *r.MemoryGB
	}
	if r.StorageGB != nil {
		d.StorageGB = *r.StorageGB
	}
	if r.OS != nil {
		d.OS = *r.OS
	}
	if r.OSVersion != nil {
		d.OSVersion = *r.OSVersion
	}
	if r.Hostname != nil {
		d.Hostname = *r.Hostname
	}
	if r.MACAddress != nil {
		d.MACAddress = *r.MACAddress
	}
}

// CreateIPAddressRequest represents a new pool address.
type CreateIPAddressRequest struct {
	Address    string `json:"address"`
	SubnetMask string `json:"subnet_mask"`
	Gateway    string `json:"gateway,omitempty"`
	Hostname   string `json:"hostname,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// AssetFilters are the optional predicates of an asset list request.
// Zero values are ignored.
type AssetFilters struct {
	Keyword       string           `json:"q,omitempty"`
	Status        AssetStatus      `json:"status,omitempty"`
	TypeID        int              `json:"type_id,omitempty"`
	DepartmentID  int              `json:"department_id,omitempty"`
	LocationID    int              `json:"location_id,omitempty"`
	UserID        int              `json:"user_id,omitempty"`
	PurchasedFrom *time.Time       `json:"purchased_from,omitempty"`
	PurchasedTo   *time.Time       `json:"purchased_to,omitempty"`
	MinPrice      *decimal.Decimal `json:"min_price,omitempty"`
	MaxPrice      *decimal.Decimal `json:"max_price,omitempty"`
	Sort          string           `json:"sort,omitempty"`
}
