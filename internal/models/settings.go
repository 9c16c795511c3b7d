package models

import "github.com/shopspring/decimal"

// MasterRecord holds the columns shared by every settings table.
type MasterRecord struct {
	ID          int    `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	SortOrder   int    `json:"sort_order"`
	IsActive    bool   `json:"is_active"`
	Timestamps
}

func (m MasterRecord) GetID() int      { return m.ID }
func (m *MasterRecord) SetID(id int)   { m.ID = id }
func (m MasterRecord) GetCode() string { return m.Code }
func (m MasterRecord) GetName() string { return m.Name }

// Master gives access to the shared columns of an embedding table row.
func (m *MasterRecord) Master() *MasterRecord { return m }

func (m MasterRecord) Field(name string) string {
	switch name {
	case "id":
		return intField(m.ID)
	case "code":
		return m.Code
	case "name":
		return m.Name
	case "description":
		return m.Description
	case "sort_order":
		return intField(m.SortOrder)
	case "is_active":
		return boolField(m.IsActive)
	}
	return ""
}

type AssetType struct {
	MasterRecord
	Category          string `json:"category,omitempty"`
	DefaultUsefulLife int    `json:"default_useful_life"`
	IsPC              bool   `json:"is_pc"`
}

type StatusMaster struct {
	MasterRecord
	Color string `json:"color,omitempty"`
}

type Location struct {
	MasterRecord
	Building string `json:"building,omitempty"`
	Floor    string `json:"floor,omitempty"`
	Address  string `json:"address,omitempty"`
}

type Department struct {
	MasterRecord
	Manager    string `json:"manager,omitempty"`
	CostCenter string `json:"cost_center,omitempty"`
	ParentID   *int   `json:"parent_id,omitempty"`
}

// DepreciationMethod describes how an asset loses book value.
// Rate is the yearly rate for declining balance methods.
type DepreciationMethod struct {
	MasterRecord
	Rate decimal.Decimal `json:"rate"`
}

// User is the owner reference for assets and IP addresses.
type User struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	EmployeeNumber string `json:"employee_number"`
	DepartmentID   int    `json:"department_id"`
	IsActive       bool   `json:"is_active"`
	Timestamps
}

func (u User) GetID() int    { return u.ID }
func (u *User) SetID(id int) { u.ID = id }

func (u User) Field(name string) string {
	switch name {
	case "id":
		return intField(u.ID)
	case "name":
		return u.Name
	case "email":
		return u.Email
	case "employee_number":
		return u.EmployeeNumber
	case "department_id":
		return intField(u.DepartmentID)
	}
	return ""
}

// MasterRequest carries the shared settings columns for create and update.
// On update only non-nil fields are applied.
type MasterRequest struct {
	Code        *string `json:"code,omitempty"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	SortOrder   *int    `json:"sort_order,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (r MasterRequest) Apply(m *MasterRecord) {
	if r.Code != nil {
		m.Code = *r.Code
	}
	if r.Name != nil {
		m.Name = *r.Name
	}
	if r.Description != nil {
		m.Description = *r.Description
	}
	if r.SortOrder != nil {
		m.SortOrder = *r.SortOrder
	}
	if r.IsActive != nil {
		m.IsActive = *r.IsActive
	}
}

// AllSettings is every settings table in one payload.
type AllSettings struct {
	AssetTypes          []AssetType          `json:"asset_types"`
	Statuses            []StatusMaster       `json:"statuses"`
	Locations           []Location           `json:"locations"`
	Departments         []Department         `json:"departments"`
	DepreciationMethods []DepreciationMethod `json:"depreciation_methods"`
	Users               []User               `json:"users"`
}
