package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PartnerType string

const (
	PartnerTypeSupplier        PartnerType = "supplier"
	PartnerTypeMaintenance     PartnerType = "maintenance"
	PartnerTypeLeasing         PartnerType = "leasing"
	PartnerTypeSoftwareVendor  PartnerType = "software_vendor"
	PartnerTypeServiceProvider PartnerType = "service_provider"
)

var PartnerTypes = []PartnerType{
	PartnerTypeSupplier,
	PartnerTypeMaintenance,
	PartnerTypeLeasing,
	PartnerTypeSoftwareVendor,
	PartnerTypeServiceProvider,
}

type PartnerStatus string

const (
	PartnerStatusActive   PartnerStatus = "active"
	PartnerStatusInactive PartnerStatus = "inactive"
)

// TaxInfo holds the tax registration data of a partner.
type TaxInfo struct {
	TaxID               string `json:"tax_id,omitempty"`
	RegistrationNumber  string `json:"registration_number,omitempty"`
	InvoiceRegistration string `json:"invoice_registration,omitempty"`
}

// Partner is a supplier, maintainer, lessor or vendor the organization
// contracts with.
type Partner struct {
	ID            int           `json:"id"`
	Name          string        `json:"name"`
	Type          PartnerType   `json:"type"`
	Status        PartnerStatus `json:"status"`
	ContactPerson string        `json:"contact_person,omitempty"`
	Email         string        `json:"email,omitempty"`
	Phone         string        `json:"phone,omitempty"`
	Address       string        `json:"address,omitempty"`
	Website       string        `json:"website,omitempty"`
	TaxInfo       TaxInfo       `json:"tax_info"`
	Notes         string        `json:"notes,omitempty"`
	Timestamps
}

func (p Partner) GetID() int    { return p.ID }
func (p *Partner) SetID(id int) { p.ID = id }

func (p Partner) Field(name string) string {
	switch name {
	case "id":
		return intField(p.ID)
	case "name":
		return p.Name
	case "type":
		return string(p.Type)
	case "status":
		return string(p.Status)
	case "contact_person":
		return p.ContactPerson
	case "email":
		return p.Email
	case "phone":
		return p.Phone
	case "address":
		return p.Address
	case "created_at":
		return dateField(p.CreatedAt)
	}
	return ""
}

// PartnerDocument is a file on record for a partner (contract scan, NDA, ...).
type PartnerDocument struct {
	ID         int       `json:"id"`
	PartnerID  int       `json:"partner_id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	FileName   string    `json:"file_name"`
	UploadedAt time.Time `json:"uploaded_at"`
	Timestamps
}

func (d PartnerDocument) GetID() int    { return d.ID }
func (d *PartnerDocument) SetID(id int) { d.ID = id }

func (d PartnerDocument) Field(name string) string {
	switch name {
	case "id":
		return intField(d.ID)
	case "partner_id":
		return intField(d.PartnerID)
	case "name":
		return d.Name
	case "category":
		return d.Category
	}
	return ""
}

type PurchaseOrderStatus string

const (
	PurchaseOrderDraft     PurchaseOrderStatus = "draft"
	PurchaseOrderPending   PurchaseOrderStatus = "pending"
	PurchaseOrderApproved  PurchaseOrderStatus = "approved"
	PurchaseOrderDelivered PurchaseOrderStatus = "delivered"
	PurchaseOrderCancelled PurchaseOrderStatus = "cancelled"
)

var PurchaseOrderStatuses = []PurchaseOrderStatus{
	PurchaseOrderDraft,
	PurchaseOrderPending,
	PurchaseOrderApproved,
	PurchaseOrderDelivered,
	PurchaseOrderCancelled,
}

// OrderItem is one line of a purchase order or quotation request.
type OrderItem struct {
	Name        string          `json:"name"`
	AssetTypeID int             `json:"asset_type_id,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// Amount is quantity times unit price.
func (i OrderItem) Amount() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type PurchaseOrder struct {
	ID           int                 `json:"id"`
	PartnerID    int                 `json:"partner_id"`
	OrderNumber  string              `json:"order_number"`
	Status       PurchaseOrderStatus `json:"status"`
	OrderDate    time.Time           `json:"order_date"`
	DeliveryDate *time.Time          `json:"delivery_date,omitempty"`
	Items        []OrderItem         `json:"items"`
	Subtotal     decimal.Decimal     `json:"subtotal"`
	Tax          decimal.Decimal     `json:"tax"`
	Total        decimal.Decimal     `json:"total"`
	Notes        string              `json:"notes,omitempty"`
	Timestamps
}

func (o PurchaseOrder) GetID() int    { return o.ID }
func (o *PurchaseOrder) SetID(id int) { o.ID = id }

func (o PurchaseOrder) Clone() PurchaseOrder {
	o.Items = append([]OrderItem(nil), o.Items...)
	return o
}

func (o PurchaseOrder) Field(name string) string {
	switch name {
	case "id":
		return intField(o.ID)
	case "partner_id":
		return intField(o.PartnerID)
	case "order_number":
		return o.OrderNumber
	case "status":
		return string(o.Status)
	case "order_date":
		return dateField(o.OrderDate)
	case "total":
		return decimalField(o.Total)
	}
	return ""
}

type QuotationStatus string

const (
	QuotationDraft    QuotationStatus = "draft"
	QuotationSent     QuotationStatus = "sent"
	QuotationReceived QuotationStatus = "received"
	QuotationAccepted QuotationStatus = "accepted"
	QuotationRejected QuotationStatus = "rejected"
)

var QuotationStatuses = []QuotationStatus{
	QuotationDraft,
	QuotationSent,
	QuotationReceived,
	QuotationAccepted,
	QuotationRejected,
}

type QuotationRequest struct {
	ID            int             `json:"id"`
	PartnerID     int             `json:"partner_id"`
	RequestNumber string          `json:"request_number"`
	Status        QuotationStatus `json:"status"`
	RequestDate   time.Time       `json:"request_date"`
	DueDate       *time.Time      `json:"due_date,omitempty"`
	Items         []OrderItem     `json:"items"`
	Notes         string          `json:"notes,omitempty"`
	Timestamps
}

func (q QuotationRequest) GetID() int    { return q.ID }
func (q *QuotationRequest) SetID(id int) { q.ID = id }

func (q QuotationRequest) Clone() QuotationRequest {
	q.Items = append([]OrderItem(nil), q.Items...)
	return q
}

func (q QuotationRequest) Field(name string) string {
	switch name {
	case "id":
		return intField(q.ID)
	case "partner_id":
		return intField(q.PartnerID)
	case "request_number":
		return q.RequestNumber
	case "status":
		return string(q.Status)
	}
	return ""
}

// SentEmail is the audit record of a message sent to a partner.
type SentEmail struct {
	ID         int       `json:"id"`
	MessageID  string    `json:"message_id"`
	PartnerID  int       `json:"partner_id"`
	To         string    `json:"to"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	Attachment string    `json:"attachment,omitempty"`
	Related    string    `json:"related,omitempty"`
	Simulated  bool      `json:"simulated"`
	SentAt     time.Time `json:"sent_at"`
	Timestamps
}

func (e SentEmail) GetID() int    { return e.ID }
func (e *SentEmail) SetID(id int) { e.ID = id }

func (e SentEmail) Field(name string) string {
	switch name {
	case "id":
		return intField(e.ID)
	case "partner_id":
		return intField(e.PartnerID)
	case "to":
		return e.To
	case "subject":
		return e.Subject
	case "related":
		return e.Related
	case "simulated":
		return boolField(e.Simulated)
	}
	return ""
}

// PartnerDetail aggregates a partner with everything it owns.
type PartnerDetail struct {
	Partner
	Contracts         []Contract         `json:"contracts"`
	Documents         []PartnerDocument  `json:"documents"`
	PurchaseOrders    []PurchaseOrder    `json:"purchase_orders"`
	QuotationRequests []QuotationRequest `json:"quotation_requests"`
	SentEmails        []SentEmail        `json:"sent_emails"`
}

// CreatePartnerRequest represents the request body for creating a partner
type CreatePartnerRequest struct {
	Name          string        `json:"name"`
	Type          PartnerType   `json:"type"`
	Status        PartnerStatus `json:"status,omitempty"`
	ContactPerson string        `json:"contact_person,omitempty"`
	Email         string        `json:"email,omitempty"`
	Phone         string        `json:"phone,omitempty"`
	Address       string        `json:"address,omitempty"`
	Website       string        `json:"website,omitempty"`
	TaxInfo       TaxInfo       `json:"tax_info"`
	Notes         string        `json:"notes,omitempty"`
}

// UpdatePartnerRequest represents a partial partner update
type UpdatePartnerRequest struct {
	Name          *string        `json:"name,omitempty"`
	Type          *PartnerType   `json:"type,omitempty"`
	Status        *PartnerStatus `json:"status,omitempty"`
	ContactPerson *string        `json:"contact_person,omitempty"`
	Email         *string        `json:"email,omitempty"`
	Phone         *string        `json:"phone,omitempty"`
	Address       *string        `json:"address,omitempty"`
	Website       *string        `json:"website,omitempty"`
	TaxInfo       *TaxInfo       `json:"tax_info,omitempty"`
	Notes         *string        `json:"notes,omitempty"`
}

func (r UpdatePartnerRequest) Apply(p *Partner) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Type != nil {
		p.Type = *r.Type
	}
	if r.Status != nil {
		p.Status = *r.Status
	}
	if r.ContactPerson != nil {
		p.ContactPerson = *r.ContactPerson
	}
	if r.Email != nil {
		p.Email = *r.Email
	}
	if r.Phone != nil {
		p.Phone = *r.Phone
	}
	if r.Address != nil {
		p.Address = *r.Address
	}
	if r.Website != nil {
		p.Website = *r.Website
	}
	if r.TaxInfo != nil {
		p.TaxInfo = *r.TaxInfo
	}
	if r.Notes != nil {
		p.Notes = *r.Notes
	}
}

// PartnerFilters are the optional predicates of a partner list request.
type PartnerFilters struct {
	Keyword string        `json:"q,omitempty"`
	Type    PartnerType   `json:"type,omitempty"`
	Status  PartnerStatus `json:"status,omitempty"`
	Sort    string        `json:"sort,omitempty"`
}

// CreateOrderRequest is shared by purchase orders and quotation requests.
type CreateOrderRequest struct {
	PartnerID int         `json:"partner_id"`
	Items     []OrderItem `json:"items"`
	DueDate   *time.Time  `json:"due_date,omitempty"`
	Notes     string      `json:"notes,omitempty"`
}
