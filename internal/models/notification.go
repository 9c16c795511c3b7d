package models

import "time"

type NotificationType string

const (
	NotificationWarrantyExpiry NotificationType = "warranty_expiry"
	NotificationLicenseExpiry  NotificationType = "license_expiry"
	NotificationContractExpiry NotificationType = "contract_expiry"
	NotificationInventory      NotificationType = "inventory"
	NotificationMaintenance    NotificationType = "maintenance"
	NotificationSystem         NotificationType = "system"
)

var NotificationTypes = []NotificationType{
	NotificationWarrantyExpiry,
	NotificationLicenseExpiry,
	NotificationContractExpiry,
	NotificationInventory,
	NotificationMaintenance,
	NotificationSystem,
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

type Notification struct {
	ID          int              `json:"id"`
	Type        NotificationType `json:"type"`
	Priority    Priority         `json:"priority"`
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	RelatedType string           `json:"related_type,omitempty"`
	RelatedID   *int             `json:"related_id,omitempty"`
	IsRead      bool             `json:"is_read"`
	ReadAt      *time.Time       `json:"read_at,omitempty"`
	Timestamps
}

func (n Notification) GetID() int    { return n.ID }
func (n *Notification) SetID(id int) { n.ID = id }

func (n Notification) Field(name string) string {
	switch name {
	case "id":
		return intField(n.ID)
	case "type":
		return string(n.Type)
	case "priority":
		return string(n.Priority)
	case "title":
		return n.Title
	case "message":
		return n.Message
	case "related_type":
		return n.RelatedType
	case "related_id":
		return optIntField(n.RelatedID)
	case "is_read":
		return boolField(n.IsRead)
	}
	return ""
}

type CreateNotificationRequest struct {
	Type        NotificationType `json:"type"`
	Priority    Priority         `json:"priority,omitempty"`
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	RelatedType string           `json:"related_type,omitempty"`
	RelatedID   *int             `json:"related_id,omitempty"`
}

type NotificationFilters struct {
	Type       NotificationType `json:"type,omitempty"`
	Priority   Priority         `json:"priority,omitempty"`
	UnreadOnly bool             `json:"unread_only,omitempty"`
	Keyword    string           `json:"q,omitempty"`
}

// NotificationSummary is the badge data for the notification centre.
type NotificationSummary struct {
	Total      int            `json:"total"`
	Unread     int            `json:"unread"`
	ByType     map[string]int `json:"by_type"`
	ByPriority map[string]int `json:"by_priority"`
	Latest     []Notification `json:"latest"`
}
