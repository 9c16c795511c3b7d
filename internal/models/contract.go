package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ContractType string

const (
	ContractTypeLicense     ContractType = "license"
	ContractTypeMaintenance ContractType = "maintenance"
	ContractTypeLease       ContractType = "lease"
	ContractTypeService     ContractType = "service"
)

var ContractTypes = []ContractType{
	ContractTypeLicense,
	ContractTypeMaintenance,
	ContractTypeLease,
	ContractTypeService,
}

type ContractStatus string

const (
	ContractStatusActive   ContractStatus = "active"
	ContractStatusExpiring ContractStatus = "expiring"
	ContractStatusExpired  ContractStatus = "expired"
	ContractStatusInactive ContractStatus = "inactive"
)

var ContractStatuses = []ContractStatus{
	ContractStatusActive,
	ContractStatusExpiring,
	ContractStatusExpired,
	ContractStatusInactive,
}

// Contract is an agreement with a partner.
type Contract struct {
	ID             int             `json:"id"`
	PartnerID      int             `json:"partner_id"`
	ContractNumber string          `json:"contract_number"`
	Title          string          `json:"title"`
	Type           ContractType    `json:"type"`
	Status         ContractStatus  `json:"status"`
	StartDate      time.Time       `json:"start_date"`
	EndDate        time.Time       `json:"end_date"`
	Amount         decimal.Decimal `json:"amount"`
	AutoRenew      bool            `json:"auto_renew"`
	Notes          string          `json:"notes,omitempty"`
	Timestamps
}

func (c Contract) GetID() int    { return c.ID }
func (c *Contract) SetID(id int) { c.ID = id }

func (c Contract) Field(name string) string {
	switch name {
	case "id":
		return intField(c.ID)
	case "partner_id":
		return intField(c.PartnerID)
	case "contract_number":
		return c.ContractNumber
	case "title":
		return c.Title
	case "type":
		return string(c.Type)
	case "status":
		return string(c.Status)
	case "start_date":
		return dateField(c.StartDate)
	case "end_date":
		return dateField(c.EndDate)
	case "amount":
		return decimalField(c.Amount)
	case "auto_renew":
		return boolField(c.AutoRenew)
	case "notes":
		return c.Notes
	}
	return ""
}

// DaysUntilEnd returns the whole days between now and the end date,
// negative once the contract has ended.
func (c Contract) DaysUntilEnd(now time.Time) int {
	return DaysBetween(now, c.EndDate)
}

// DaysBetween counts calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// CreateContractRequest represents the request body for creating a contract
type CreateContractRequest struct {
	PartnerID      int             `json:"partner_id"`
	ContractNumber string          `json:"contract_number"`
	Title          string          `json:"title"`
	Type           ContractType    `json:"type"`
	Status         ContractStatus  `json:"status,omitempty"`
	StartDate      time.Time       `json:"start_date"`
	EndDate        time.Time       `json:"end_date"`
	Amount         decimal.Decimal `json:"amount"`
	AutoRenew      bool            `json:"auto_renew"`
	Notes          string          `json:"notes,omitempty"`
}

// UpdateContractRequest represents a partial contract update
type UpdateContractRequest struct {
	Title     *string          `json:"title,omitempty"`
	Type      *ContractType    `json:"type,omitempty"`
	Status    *ContractStatus  `json:"status,omitempty"`
	StartDate *time.Time       `json:"start_date,omitempty"`
	EndDate   *time.Time       `json:"end_date,omitempty"`
	Amount    *decimal.Decimal `json:"amount,omitempty"`
	AutoRenew *bool            `json:"auto_renew,omitempty"`
	Notes     *string          `json:"notes,omitempty"`
}

func (r UpdateContractRequest) Apply(c *Contract) {
	if r.Title != nil {
		c.Title = *r.Title
	}
	if r.Type != nil {
		c.Type = *r.Type
	}
	if r.Status != nil {
		c.Status = *r.Status
	}
	if r.StartDate != nil {
		c.StartDate = *r.StartDate
	}
	if r.EndDate != nil {
		c.EndDate = *r.EndDate
	}
	if r.Amount != nil {
		c.Amount = *r.Amount
	}
	if r.AutoRenew != nil {
		c.AutoRenew = *r.AutoRenew
	}
	if r.Notes != nil {
		c.Notes = *r.Notes
	}
}

type ContractFilters struct {
	Keyword   string         `json:"q,omitempty"`
	PartnerID int            `json:"partner_id,omitempty"`
	Type      ContractType   `json:"type,omitempty"`
	Status    ContractStatus `json:"status,omitempty"`
	Sort      string         `json:"sort,omitempty"`
}
