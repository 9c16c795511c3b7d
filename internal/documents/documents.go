// Package documents writes the files the service hands to people: PDF
// purchase documents and inventory reports, XLSX exports, and the emails
// that carry them. Every file written is recorded in a ManagementService.
package documents

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"itam-service/internal/models"
)

const fileStampLayout = "20060102_150405"

// Email is one outgoing message. Attachments are file paths.
type Email struct {
	To          string
	Subject     string
	Body        string
	Attachments []string
}

// Receipt describes a message that was handed to the relay, or would have
// been when Simulated is set.
type Receipt struct {
	MessageID string
	Simulated bool
	SentAt    time.Time
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// fileName builds <type>_<number>_<timestamp>.<ext>.
func fileName(docType models.DocumentType, number string, at time.Time, ext string) string {
	number = unsafeChars.ReplaceAllString(number, "-")
	return fmt.Sprintf("%s_%s_%s.%s", docType, number, at.Format(fileStampLayout), ext)
}

var documentTypes = []models.DocumentType{
	models.DocumentPurchaseOrder,
	models.DocumentQuotationRequest,
	models.DocumentInventoryReport,
	models.DocumentAssetExport,
	models.DocumentDiscrepancyExport,
}

// parseFileName reverses fileName. ok is false for files this package did
// not write.
func parseFileName(name string) (docType models.DocumentType, number string, at time.Time, ok bool) {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	for _, t := range documentTypes {
		prefix := string(t) + "_"
		if !strings.HasPrefix(base, prefix) {
			continue
		}
		rest := base[len(prefix):]
		if len(rest) < len(fileStampLayout)+2 {
			return "", "", time.Time{}, false
		}
		stamp := rest[len(rest)-len(fileStampLayout):]
		parsed, err := time.Parse(fileStampLayout, stamp)
		if err != nil {
			return "", "", time.Time{}, false
		}
		return t, rest[:len(rest)-len(fileStampLayout)-1], parsed, true
	}
	return "", "", time.Time{}, false
}
