package models

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the layout used for business dates (purchase, warranty,
// contract and inventory dates).
const DateLayout = "2006-01-02"

// Timestamps carries the creation and modification times of a stored record.
type Timestamps struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SetCreated stamps both timestamps.
func (t *Timestamps) SetCreated(now time.Time) {
	t.CreatedAt = now
	t.UpdatedAt = now
}

// SetUpdated stamps the modification time only.
func (t *Timestamps) SetUpdated(now time.Time) {
	t.UpdatedAt = now
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// TimePtr returns a pointer to t.
func TimePtr(t time.Time) *time.Time {
	return &t
}

func intField(v int) string {
	return strconv.Itoa(v)
}

func optIntField(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func dateField(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

func optDateField(t *time.Time) string {
	if t == nil {
		return ""
	}
	return dateField(*t)
}

func decimalField(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func boolField(b bool) string {
	return strconv.FormatBool(b)
}
