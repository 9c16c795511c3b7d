package models

import "time"

type DocumentType string

const (
	DocumentPurchaseOrder     DocumentType = "purchase_order"
	DocumentQuotationRequest  DocumentType = "quotation_request"
	DocumentInventoryReport   DocumentType = "inventory_report"
	DocumentAssetExport       DocumentType = "asset_export"
	DocumentDiscrepancyExport DocumentType = "discrepancy_export"
)

// GeneratedDocument is the registry entry for a file the document
// subsystem wrote to disk.
type GeneratedDocument struct {
	ID             string       `json:"id"`
	Type           DocumentType `json:"type"`
	BusinessNumber string       `json:"business_number"`
	FileName       string       `json:"file_name"`
	Path           string       `json:"path"`
	Size           int64        `json:"size"`
	CreatedAt      time.Time    `json:"created_at"`
}
