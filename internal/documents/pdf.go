package documents

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/juju/clock"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"itam-service/internal/models"
)

// PDFService renders purchase documents and inventory reports into the
// registry's output directory.
type PDFService struct {
	registry *ManagementService
	company  string
	clock    clock.Clock
	log      *zap.Logger
}

func NewPDFService(registry *ManagementService, company string, clk clock.Clock, log *zap.Logger) *PDFService {
	return &PDFService{registry: registry, company: company, clock: clk, log: log}
}

type itemTotals struct {
	subtotal, tax, total decimal.Decimal
}

// PurchaseOrder renders an order addressed to the partner.
func (s *PDFService) PurchaseOrder(order models.PurchaseOrder, partner models.Partner) (models.GeneratedDocument, bool) {
	return s.render(models.DocumentPurchaseOrder, order.OrderNumber, func(pdf *fpdf.Fpdf) {
		s.header(pdf, "PURCHASE ORDER", order.OrderNumber)
		s.parties(pdf, partner)
		s.keyValues(pdf, [][2]string{
			{"Order date", order.OrderDate.Format(models.DateLayout)},
			{"Delivery date", optDate(order.DeliveryDate)},
			{"Status", string(order.Status)},
		})
		s.items(pdf, order.Items, &itemTotals{order.Subtotal, order.Tax, order.Total})
		s.notes(pdf, order.Notes)
	})
}

// QuotationRequest renders a request for quotation. It lists quantities
// without prices.
func (s *PDFService) QuotationRequest(req models.QuotationRequest, partner models.Partner) (models.GeneratedDocument, bool) {
	return s.render(models.DocumentQuotationRequest, req.RequestNumber, func(pdf *fpdf.Fpdf) {
		s.header(pdf, "REQUEST FOR QUOTATION", req.RequestNumber)
		s.parties(pdf, partner)
		s.keyValues(pdf, [][2]string{
			{"Request date", req.RequestDate.Format(models.DateLayout)},
			{"Reply by", optDate(req.DueDate)},
		})
		s.items(pdf, req.Items, nil)
		s.notes(pdf, req.Notes)
	})
}

// InventoryReport renders the summary, the scan results and the
// discrepancies of one inventory.
func (s *PDFService) InventoryReport(view models.InventoryView, discrepancies []models.Discrepancy) (models.GeneratedDocument, bool) {
	number := "INV-" + strconv.Itoa(view.ID)
	return s.render(models.DocumentInventoryReport, number, func(pdf *fpdf.Fpdf) {
		s.header(pdf, "INVENTORY REPORT", view.Name)
		sum := view.Detail.Summary
		s.keyValues(pdf, [][2]string{
			{"Period", view.StartDate.Format(models.DateLayout) + " - " + view.EndDate.Format(models.DateLayout)},
			{"Status", string(view.Status)},
			{"Manager", view.Manager},
			{"Progress", fmt.Sprintf("%d / %d (%.1f%%)", view.CompletedCount, view.TargetCount, view.ProgressRate())},
			{"Found / mismatched", fmt.Sprintf("%d / %d", sum.Found, sum.Mismatched)},
			{"Missing / extra", fmt.Sprintf("%d / %d", sum.Missing, sum.Extra)},
		})

		s.table(pdf, []string{"Asset", "Name", "Outcome", "Scanned by"}, []float64{30, 80, 30, 50},
			func(add func(...string)) {
				for _, r := range view.Detail.Results {
					add(r.AssetNumber, r.AssetName, string(r.Outcome), r.ScannedBy)
				}
			})
		pdf.Ln(6)
		s.table(pdf, []string{"Asset", "Type", "Severity", "Status", "Expected", "Actual"},
			[]float64{28, 25, 25, 32, 40, 40},
			func(add func(...string)) {
				for _, d := range discrepancies {
					add(d.AssetNumber, string(d.Type), string(d.Severity), string(d.Status), d.ExpectedValue, d.ActualValue)
				}
			})
	})
}

func (s *PDFService) render(docType models.DocumentType, number string, body func(*fpdf.Fpdf)) (models.GeneratedDocument, bool) {
	now := s.clock.Now()
	path := filepath.Join(s.registry.Dir(), fileName(docType, number, now, "pdf"))

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("%s %s", docType, number), true)
	pdf.SetAuthor(s.company, true)
	pdf.SetCreationDate(now)
	pdf.AddPage()
	body(pdf)
	pdf.SetY(-20)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 5, "Generated "+now.Format("2006-01-02 15:04"), "", 0, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(path); err != nil {
		s.log.Error("rendering document failed",
			zap.String("type", string(docType)),
			zap.String("number", number),
			zap.Error(err))
		return models.GeneratedDocument{}, false
	}
	doc, err := s.registry.Register(docType, number, path)
	if err != nil {
		s.log.Error("registering document failed", zap.String("path", path), zap.Error(err))
		return models.GeneratedDocument{}, false
	}
	s.log.Info("document generated", zap.String("type", string(docType)), zap.String("file", doc.FileName))
	return doc, true
}

func (s *PDFService) header(pdf *fpdf.Fpdf, title, subtitle string) {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, subtitle, "", 1, "C", false, 0, "")
	pdf.Ln(4)
}

func (s *PDFService) parties(pdf *fpdf.Fpdf, partner models.Partner) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(95, 6, "To: "+partner.Name, "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, "From: "+s.company, "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	if partner.ContactPerson != "" {
		pdf.CellFormat(95, 5, "Attn: "+partner.ContactPerson, "", 1, "L", false, 0, "")
	}
	if partner.Address != "" {
		pdf.MultiCell(95, 5, partner.Address, "", "L", false)
	}
	pdf.Ln(4)
}

func (s *PDFService) keyValues(pdf *fpdf.Fpdf, rows [][2]string) {
	pdf.SetFont("Helvetica", "", 10)
	for _, kv := range rows {
		pdf.CellFormat(45, 6, kv[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, kv[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func (s *PDFService) items(pdf *fpdf.Fpdf, items []models.OrderItem, totals *itemTotals) {
	if totals == nil {
		s.table(pdf, []string{"#", "Item", "Quantity"}, []float64{10, 140, 40}, func(add func(...string)) {
			for i, it := range items {
				add(strconv.Itoa(i+1), it.Name, strconv.Itoa(it.Quantity))
			}
		})
		return
	}
	s.table(pdf, []string{"#", "Item", "Qty", "Unit price", "Amount"}, []float64{10, 90, 20, 35, 35},
		func(add func(...string)) {
			for i, it := range items {
				add(strconv.Itoa(i+1), it.Name, strconv.Itoa(it.Quantity), yen(it.UnitPrice), yen(it.Amount()))
			}
		})
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range [][2]string{
		{"Subtotal", yen(totals.subtotal)},
		{"Tax", yen(totals.tax)},
		{"Total", yen(totals.total)},
	} {
		pdf.CellFormat(155, 6, line[0], "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, line[1], "", 1, "R", false, 0, "")
	}
}

func (s *PDFService) table(pdf *fpdf.Fpdf, headers []string, widths []float64, rows func(add func(...string))) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 9)
	rows(func(cells ...string) {
		for i, c := range cells {
			pdf.CellFormat(widths[i], 6, c, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	})
}

func (s *PDFService) notes(pdf *fpdf.Fpdf, notes string) {
	if notes == "" {
		return
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, "Notes", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, notes, "", "L", false)
}

func yen(d decimal.Decimal) string {
	return d.StringFixed(0) + " JPY"
}

func optDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(models.DateLayout)
}
