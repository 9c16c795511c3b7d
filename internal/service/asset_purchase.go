package service

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"itam-service/internal/documents"
	"itam-service/internal/models"
	"itam-service/internal/repository"
)

// TaxRate is the consumption tax applied to purchase order subtotals.
var TaxRate = decimal.RequireFromString("0.10")

var orderTransitions = map[models.PurchaseOrderStatus][]models.PurchaseOrderStatus{
	models.PurchaseOrderDraft:    {models.PurchaseOrderPending, models.PurchaseOrderCancelled},
	models.PurchaseOrderPending:  {models.PurchaseOrderApproved, models.PurchaseOrderDraft, models.PurchaseOrderCancelled},
	models.PurchaseOrderApproved: {models.PurchaseOrderDelivered, models.PurchaseOrderCancelled},
}

// AssetPurchaseService runs the purchasing flow: quotation requests,
// purchase orders, their documents and the receipt of delivered goods.
//
// Document numbers are PO-<partner>-<seq> and QR-<partner>-<seq> where seq
// follows the partner's record count. The count and the insert are two
// calls, so concurrent creators may race for a number; the loser gets the
// next free sequence.
type AssetPurchaseService struct {
	partners *repository.PartnerRepository
	assets   *AssetCrudService
	renderer OrderRenderer
	mailer   Mailer
	clock    clock.Clock
	log      *zap.Logger
}

func NewAssetPurchaseService(
	partners *repository.PartnerRepository,
	assets *AssetCrudService,
	renderer OrderRenderer,
	mailer Mailer,
	clk clock.Clock,
	log *zap.Logger,
) *AssetPurchaseService {
	return &AssetPurchaseService{
		partners: partners,
		assets:   assets,
		renderer: renderer,
		mailer:   mailer,
		clock:    clk,
		log:      log,
	}
}

// OrderTotals computes subtotal, tax and total of the items. Tax is rounded
// to whole yen.
func OrderTotals(items []models.OrderItem) (subtotal, tax, total decimal.Decimal) {
	subtotal = decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Amount())
	}
	tax = subtotal.Mul(TaxRate).Round(0)
	return subtotal, tax, subtotal.Add(tax)
}

func (s *AssetPurchaseService) ListPurchaseOrders(partnerID int) []models.PurchaseOrder {
	if partnerID > 0 {
		return s.partners.PurchaseOrdersFor(partnerID)
	}
	return s.partners.PurchaseOrders.GetAll()
}

func (s *AssetPurchaseService) ListQuotationRequests(partnerID int) []models.QuotationRequest {
	if partnerID > 0 {
		return s.partners.QuotationRequestsFor(partnerID)
	}
	return s.partners.QuotationRequests.GetAll()
}

func (s *AssetPurchaseService) GetPurchaseOrder(id int) (models.PurchaseOrder, bool) {
	return s.partners.PurchaseOrders.GetByID(id)
}

func (s *AssetPurchaseService) GetQuotationRequest(id int) (models.QuotationRequest, bool) {
	return s.partners.QuotationRequests.GetByID(id)
}

// CreatePurchaseOrder drafts an order for an active partner.
func (s *AssetPurchaseService) CreatePurchaseOrder(req models.CreateOrderRequest) (models.PurchaseOrder, error) {
	if _, err := s.activePartner(req.PartnerID); err != nil {
		return models.PurchaseOrder{}, err
	}
	subtotal, tax, total := OrderTotals(req.Items)
	seq := s.partners.CountPurchaseOrders(req.PartnerID) + 1
	for {
		order, err := s.partners.PurchaseOrders.Create(models.PurchaseOrder{
			PartnerID:    req.PartnerID,
			OrderNumber:  documentNumber("PO", req.PartnerID, seq),
			Status:       models.PurchaseOrderDraft,
			OrderDate:    today(s.clock),
			DeliveryDate: req.DueDate,
			Items:        req.Items,
			Subtotal:     subtotal,
			Tax:          tax,
			Total:        total,
			Notes:        req.Notes,
		})
		if errors.Is(err, errors.AlreadyExists) {
			seq++
			continue
		}
		if err != nil {
			return models.PurchaseOrder{}, err
		}
		s.log.Info("purchase order created",
			zap.String("order_number", order.OrderNumber),
			zap.String("total", order.Total.String()))
		return order, nil
	}
}

// CreateQuotationRequest drafts a request for quotation.
func (s *AssetPurchaseService) CreateQuotationRequest(req models.CreateOrderRequest) (models.QuotationRequest, error) {
	if _, err := s.activePartner(req.PartnerID); err != nil {
		return models.QuotationRequest{}, err
	}
	seq := s.partners.CountQuotationRequests(req.PartnerID) + 1
	for {
		q, err := s.partners.QuotationRequests.Create(models.QuotationRequest{
			PartnerID:     req.PartnerID,
			RequestNumber: documentNumber("QR", req.PartnerID, seq),
			Status:        models.QuotationDraft,
			RequestDate:   today(s.clock),
			DueDate:       req.DueDate,
			Items:         req.Items,
			Notes:         req.Notes,
		})
		if errors.Is(err, errors.AlreadyExists) {
			seq++
			continue
		}
		if err != nil {
			return models.QuotationRequest{}, err
		}
		s.log.Info("quotation request created", zap.String("request_number", q.RequestNumber))
		return q, nil
	}
}

// CreatePurchaseOrderWithPDF drafts an order and renders it. The order is
// kept when rendering fails; the document is then nil.
func (s *AssetPurchaseService) CreatePurchaseOrderWithPDF(req models.CreateOrderRequest) (models.PurchaseOrder, *models.GeneratedDocument, error) {
	order, err := s.CreatePurchaseOrder(req)
	if err != nil {
		return models.PurchaseOrder{}, nil, err
	}
	partner, _ := s.partners.GetByID(order.PartnerID)
	doc, ok := s.renderer.PurchaseOrder(order, partner)
	if !ok {
		return order, nil, nil
	}
	return order, &doc, nil
}

// SendPurchaseOrder renders the order, mails it to the partner, records the
// sent email and moves a draft order to pending. Delivered and cancelled
// orders are not sent. ok is false when the order does not exist.
func (s *AssetPurchaseService) SendPurchaseOrder(ctx context.Context, orderID int) (models.SentEmail, bool, error) {
	order, ok := s.partners.PurchaseOrders.GetByID(orderID)
	if !ok {
		return models.SentEmail{}, false, nil
	}
	if len(orderTransitions[order.Status]) == 0 {
		return models.SentEmail{}, true, errors.NotValidf("sending %s purchase order %s", order.Status, order.OrderNumber)
	}
	partner, err := s.mailablePartner(order.PartnerID)
	if err != nil {
		return models.SentEmail{}, true, err
	}
	doc, ok := s.renderer.PurchaseOrder(order, partner)
	if !ok {
		return models.SentEmail{}, true, errors.Errorf("rendering purchase order %s failed", order.OrderNumber)
	}
	sent, err := s.send(ctx, partner, order.OrderNumber, doc,
		fmt.Sprintf("Purchase order %s", order.OrderNumber),
		fmt.Sprintf("Dear %s,\n\nPlease find attached purchase order %s (total %s JPY).\n",
			contactName(partner), order.OrderNumber, order.Total.StringFixed(0)))
	if err != nil {
		return models.SentEmail{}, true, err
	}
	if order.Status == models.PurchaseOrderDraft {
		if _, _, err := s.UpdatePurchaseOrderStatus(order.ID, models.PurchaseOrderPending); err != nil {
			return sent, true, errors.Annotatef(err, "purchase order %s sent", order.OrderNumber)
		}
	}
	return sent, true, nil
}

// SendQuotationRequest mails a quotation request and marks it sent.
// Accepted and rejected requests are closed and are not sent.
func (s *AssetPurchaseService) SendQuotationRequest(ctx context.Context, requestID int) (models.SentEmail, bool, error) {
	q, ok := s.partners.QuotationRequests.GetByID(requestID)
	if !ok {
		return models.SentEmail{}, false, nil
	}
	if q.Status == models.QuotationAccepted || q.Status == models.QuotationRejected {
		return models.SentEmail{}, true, errors.NotValidf("sending %s quotation request %s", q.Status, q.RequestNumber)
	}
	partner, err := s.mailablePartner(q.PartnerID)
	if err != nil {
		return models.SentEmail{}, true, err
	}
	doc, ok := s.renderer.QuotationRequest(q, partner)
	if !ok {
		return models.SentEmail{}, true, errors.Errorf("rendering quotation request %s failed", q.RequestNumber)
	}
	sent, err := s.send(ctx, partner, q.RequestNumber, doc,
		fmt.Sprintf("Quotation request %s", q.RequestNumber),
		fmt.Sprintf("Dear %s,\n\nPlease find attached our quotation request %s.\n",
			contactName(partner), q.RequestNumber))
	if err != nil {
		return models.SentEmail{}, true, err
	}
	if q.Status == models.QuotationDraft {
		if _, _, err := s.partners.QuotationRequests.Update(q.ID, func(q *models.QuotationRequest) {
			q.Status = models.QuotationSent
		}); err != nil {
			return sent, true, errors.Annotatef(err, "quotation request %s sent", q.RequestNumber)
		}
	}
	return sent, true, nil
}

func (s *AssetPurchaseService) send(ctx context.Context, partner models.Partner, related string, doc models.GeneratedDocument, subject, body string) (models.SentEmail, error) {
	receipt, ok := s.mailer.Send(ctx, documents.Email{
		To:          partner.Email,
		Subject:     subject,
		Body:        body,
		Attachments: []string{doc.Path},
	})
	if !ok {
		return models.SentEmail{}, errors.Errorf("sending %s to %s failed", related, partner.Email)
	}
	return s.partners.SentEmails.Create(models.SentEmail{
		MessageID:  receipt.MessageID,
		PartnerID:  partner.ID,
		To:         partner.Email,
		Subject:    subject,
		Body:       body,
		Attachment: filepath.Base(doc.Path),
		Related:    related,
		Simulated:  receipt.Simulated,
		SentAt:     receipt.SentAt,
	})
}

// UpdatePurchaseOrderStatus moves an order along draft, pending, approved
// and delivered. Delivered and cancelled orders are final.
func (s *AssetPurchaseService) UpdatePurchaseOrderStatus(id int, status models.PurchaseOrderStatus) (models.PurchaseOrder, bool, error) {
	deliveredOn := today(s.clock)
	order, ok, err := s.partners.PurchaseOrders.Modify(id, func(o *models.PurchaseOrder) error {
		if o.Status == status {
			return nil
		}
		if !canTransition(o.Status, status) {
			return errors.NotValidf("purchase order %s transition from %s to %s", o.OrderNumber, o.Status, status)
		}
		o.Status = status
		if status == models.PurchaseOrderDelivered && o.DeliveryDate == nil {
			o.DeliveryDate = &deliveredOn
		}
		return nil
	})
	if err == nil && ok {
		s.log.Info("purchase order status changed",
			zap.String("order_number", order.OrderNumber),
			zap.String("status", string(order.Status)))
	}
	return order, ok, err
}

// ReceivePurchaseOrder registers the items of an approved order as new
// assets and marks it delivered. Items without an asset type are not
// registered. Assets created before a failure are returned with the error.
func (s *AssetPurchaseService) ReceivePurchaseOrder(id, departmentID, locationID int) ([]models.Asset, bool, error) {
	order, ok := s.partners.PurchaseOrders.GetByID(id)
	if !ok {
		return nil, false, nil
	}
	if order.Status != models.PurchaseOrderApproved {
		return nil, true, errors.NotValidf("receiving purchase order %s in status %s", order.OrderNumber, order.Status)
	}

	received := today(s.clock)
	var created []models.Asset
	for _, item := range order.Items {
		if item.AssetTypeID <= 0 {
			continue
		}
		for i := 0; i < item.Quantity; i++ {
			a, err := s.assets.CreateAsset(models.CreateAssetRequest{
				Name:          item.Name,
				TypeID:        item.AssetTypeID,
				DepartmentID:  departmentID,
				LocationID:    locationID,
				SupplierID:    models.IntPtr(order.PartnerID),
				PurchaseDate:  received,
				PurchasePrice: item.UnitPrice,
				Notes:         "Received with " + order.OrderNumber,
			})
			if err != nil {
				return created, true, errors.Annotatef(err, "receiving %s", order.OrderNumber)
			}
			created = append(created, a)
		}
	}

	if _, _, err := s.UpdatePurchaseOrderStatus(id, models.PurchaseOrderDelivered); err != nil {
		return created, true, err
	}
	s.log.Info("purchase order received",
		zap.String("order_number", order.OrderNumber),
		zap.Int("assets", len(created)))
	return created, true, nil
}

func (s *AssetPurchaseService) activePartner(id int) (models.Partner, error) {
	p, ok := s.partners.GetByID(id)
	if !ok {
		return p, errors.NotFoundf("partner %d", id)
	}
	if p.Status != models.PartnerStatusActive {
		return p, errors.NotValidf("inactive partner %q", p.Name)
	}
	return p, nil
}

func (s *AssetPurchaseService) mailablePartner(id int) (models.Partner, error) {
	p, ok := s.partners.GetByID(id)
	if !ok {
		return p, errors.NotFoundf("partner %d", id)
	}
	if p.Email == "" {
		return p, errors.NotValidf("partner %q without email address", p.Name)
	}
	return p, nil
}

func canTransition(from, to models.PurchaseOrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func documentNumber(prefix string, partnerID, seq int) string {
	return fmt.Sprintf("%s-%d-%03d", prefix, partnerID, seq)
}

func contactName(p models.Partner) string {
	if p.ContactPerson != "" {
		return p.ContactPerson
	}
	return p.Name
}
