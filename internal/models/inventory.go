package models

import (
	"time"
)

type InventoryStatus string

const (
	InventoryPlanned    InventoryStatus = "planned"
	InventoryInProgress InventoryStatus = "in_progress"
	InventoryCompleted  InventoryStatus = "completed"
	InventoryCancelled  InventoryStatus = "cancelled"
)

var InventoryStatuses = []InventoryStatus{
	InventoryPlanned,
	InventoryInProgress,
	InventoryCompleted,
	InventoryCancelled,
}

// Inventory is an audit campaign over the asset register.
type Inventory struct {
	ID               int             `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description,omitempty"`
	StartDate        time.Time       `json:"start_date"`
	EndDate          time.Time       `json:"end_date"`
	Status           InventoryStatus `json:"status"`
	TargetCount      int             `json:"target_count"`
	CompletedCount   int             `json:"completed_count"`
	DiscrepancyCount int             `json:"discrepancy_count"`
	Manager          string          `json:"manager,omitempty"`
	LocationIDs      []int           `json:"location_ids,omitempty"`
	Timestamps
}

func (i Inventory) GetID() int    { return i.ID }
func (i *Inventory) SetID(id int) { i.ID = id }

func (i Inventory) Clone() Inventory {
	i.LocationIDs = append([]int(nil), i.LocationIDs...)
	return i
}

func (i Inventory) Field(name string) string {
	switch name {
	case "id":
		return intField(i.ID)
	case "name":
		return i.Name
	case "description":
		return i.Description
	case "status":
		return string(i.Status)
	case "manager":
		return i.Manager
	case "start_date":
		return dateField(i.StartDate)
	case "end_date":
		return dateField(i.EndDate)
	}
	return ""
}

// ProgressRate is completed/target as a percentage, 0 for an empty target.
func (i Inventory) ProgressRate() float64 {
	if i.TargetCount == 0 {
		return 0
	}
	return float64(i.CompletedCount) / float64(i.TargetCount) * 100
}

type ScanOutcome string

const (
	ScanFound    ScanOutcome = "found"
	ScanMismatch ScanOutcome = "mismatch"
	ScanMissing  ScanOutcome = "missing"
	ScanExtra    ScanOutcome = "extra"
)

// ScanResult is the per-asset outcome within an inventory.
type ScanResult struct {
	AssetID          int         `json:"asset_id,omitempty"`
	AssetNumber      string      `json:"asset_number"`
	AssetName        string      `json:"asset_name,omitempty"`
	ExpectedLocation int         `json:"expected_location_id,omitempty"`
	ActualLocation   int         `json:"actual_location_id,omitempty"`
	ExpectedStatus   AssetStatus `json:"expected_status,omitempty"`
	ActualStatus     AssetStatus `json:"actual_status,omitempty"`
	Damaged          bool        `json:"damaged,omitempty"`
	Outcome          ScanOutcome `json:"outcome"`
	ScannedBy        string      `json:"scanned_by,omitempty"`
	ScannedAt        time.Time   `json:"scanned_at"`
	Notes            string      `json:"notes,omitempty"`
}

// InventoryLog is one line of an inventory activity log.
type InventoryLog struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	User      string    `json:"user,omitempty"`
	Message   string    `json:"message"`
}

// InventorySummary is the roll-up kept with each inventory detail.
type InventorySummary struct {
	Total         int `json:"total"`
	Scanned       int `json:"scanned"`
	Found         int `json:"found"`
	Mismatched    int `json:"mismatched"`
	Missing       int `json:"missing"`
	Extra         int `json:"extra"`
	Discrepancies int `json:"discrepancies"`
}

type InventoryDetail struct {
	InventoryID int              `json:"inventory_id"`
	Summary     InventorySummary `json:"summary"`
	Results     []ScanResult     `json:"results"`
	Logs        []InventoryLog   `json:"logs"`
}

func (d InventoryDetail) Clone() InventoryDetail {
	d.Results = append([]ScanResult(nil), d.Results...)
	d.Logs = append([]InventoryLog(nil), d.Logs...)
	return d
}

// InventoryView is an inventory with its detail attached.
type InventoryView struct {
	Inventory
	Detail InventoryDetail `json:"detail"`
}

type DiscrepancyType string

const (
	DiscrepancyTypeLost     DiscrepancyType = "lost"
	DiscrepancyTypeLocation DiscrepancyType = "location"
	DiscrepancyTypeStatus   DiscrepancyType = "status"
	DiscrepancyTypeDamaged  DiscrepancyType = "damaged"
	DiscrepancyTypeExtra    DiscrepancyType = "extra"
)

var DiscrepancyTypes = []DiscrepancyType{
	DiscrepancyTypeLost,
	DiscrepancyTypeLocation,
	DiscrepancyTypeStatus,
	DiscrepancyTypeDamaged,
	DiscrepancyTypeExtra,
}

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Severities is ordered most severe first.
var Severities = []Severity{
	SeverityCritical,
	SeverityHigh,
	SeverityMedium,
	SeverityLow,
}

// Rank orders severities, 0 being the most severe.
func (s Severity) Rank() int {
	for i, v := range Severities {
		if v == s {
			return i
		}
	}
	return len(Severities)
}

type DiscrepancyStatus string

const (
	DiscrepancyPending       DiscrepancyStatus = "pending"
	DiscrepancyInvestigating DiscrepancyStatus = "investigating"
	DiscrepancyConfirmed     DiscrepancyStatus = "confirmed"
	DiscrepancyResolved      DiscrepancyStatus = "resolved"
)

var DiscrepancyStatuses = []DiscrepancyStatus{
	DiscrepancyPending,
	DiscrepancyInvestigating,
	DiscrepancyConfirmed,
	DiscrepancyResolved,
}

// Discrepancy is a difference between the register and what an inventory found.
type Discrepancy struct {
	ID              int               `json:"id"`
	InventoryID     int               `json:"inventory_id"`
	AssetNumber     string            `json:"asset_number"`
	AssetName       string            `json:"asset_name,omitempty"`
	Type            DiscrepancyType   `json:"type"`
	Severity        Severity          `json:"severity"`
	Status          DiscrepancyStatus `json:"status"`
	DiscoveryDate   time.Time         `json:"discovery_date"`
	Description     string            `json:"description,omitempty"`
	ExpectedValue   string            `json:"expected_value,omitempty"`
	ActualValue     string            `json:"actual_value,omitempty"`
	AssignedTo      string            `json:"assigned_to,omitempty"`
	ResolutionDate  *time.Time        `json:"resolution_date,omitempty"`
	ResolutionNotes string            `json:"resolution_notes,omitempty"`
	Timestamps
}

func (d Discrepancy) GetID() int    { return d.ID }
func (d *Discrepancy) SetID(id int) { d.ID = id }

// Open reports whether the discrepancy still needs work.
func (d Discrepancy) Open() bool { return d.Status != DiscrepancyResolved }

func (d Discrepancy) Field(name string) string {
	switch name {
	case "id":
		return intField(d.ID)
	case "inventory_id":
		return intField(d.InventoryID)
	case "asset_number":
		return d.AssetNumber
	case "asset_name":
		return d.AssetName
	case "type":
		return string(d.Type)
	case "severity":
		return string(d.Severity)
	case "status":
		return string(d.Status)
	case "description":
		return d.Description
	case "assigned_to":
		return d.AssignedTo
	case "discovery_date":
		return dateField(d.DiscoveryDate)
	}
	return ""
}

// CreateInventoryRequest represents the request body for planning an inventory
type CreateInventoryRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Manager     string    `json:"manager,omitempty"`
	LocationIDs []int     `json:"location_ids,omitempty"`
}

type UpdateInventoryRequest struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Manager     *string    `json:"manager,omitempty"`
}

func (r UpdateInventoryRequest) Apply(i *Inventory) {
	if r.Name != nil {
		i.Name = *r.Name
	}
	if r.Description != nil {
		i.Description = *r.Description
	}
	if r.StartDate != nil {
		i.StartDate = *r.StartDate
	}
	if r.EndDate != nil {
		i.EndDate = *r.EndDate
	}
	if r.Manager != nil {
		i.Manager = *r.Manager
	}
}

// ScanRequest is what a scanner reports for one asset during an inventory.
type ScanRequest struct {
	AssetNumber string      `json:"asset_number"`
	LocationID  int         `json:"location_id"`
	Status      AssetStatus `json:"status,omitempty"`
	Damaged     bool        `json:"damaged,omitempty"`
	ScannedBy   string      `json:"scanned_by,omitempty"`
	Notes       string      `json:"notes,omitempty"`
}

type CreateDiscrepancyRequest struct {
	InventoryID   int             `json:"inventory_id"`
	AssetNumber   string          `json:"asset_number"`
	AssetName     string          `json:"asset_name,omitempty"`
	Type          DiscrepancyType `json:"type"`
	Severity      Severity        `json:"severity"`
	Description   string          `json:"description,omitempty"`
	ExpectedValue string          `json:"expected_value,omitempty"`
	ActualValue   string          `json:"actual_value,omitempty"`
	AssignedTo    string          `json:"assigned_to,omitempty"`
}

type UpdateDiscrepancyRequest struct {
	Severity    *Severity          `json:"severity,omitempty"`
	Status      *DiscrepancyStatus `json:"status,omitempty"`
	Description *string            `json:"description,omitempty"`
	AssignedTo  *string            `json:"assigned_to,omitempty"`
	ActualValue *string            `json:"actual_value,omitempty"`
}

func (r UpdateDiscrepancyRequest) Apply(d *Discrepancy) {
	if r.Severity != nil {
		d.Severity = *r.Severity
	}
	if r.Status != nil {
		d.Status = *r.Status
	}
	if r.Description != nil {
		d.Description = *r.Description
	}
	if r.AssignedTo != nil {
		d.AssignedTo = *r.AssignedTo
	}
	if r.ActualValue != nil {
		d.ActualValue = *r.ActualValue
	}
}

type DiscrepancyFilters struct {
	InventoryID int               `json:"inventory_id,omitempty"`
	Type        DiscrepancyType   `json:"type,omitempty"`
	Severity    Severity          `json:"severity,omitempty"`
	Status      DiscrepancyStatus `json:"status,omitempty"`
	Keyword     string            `json:"q,omitempty"`
}
