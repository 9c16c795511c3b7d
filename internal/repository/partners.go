package repository

import (
	"github.com/juju/clock"
	"github.com/juju/collections/set"
	"github.com/juju/errors"

	"itam-service/internal/models"
	"itam-service/internal/sampledata"
)

var (
	partnerTypes          = enumSet(models.PartnerTypes)
	partnerStatuses       = set.NewStrings(string(models.PartnerStatusActive), string(models.PartnerStatusInactive))
	purchaseOrderStatuses = enumSet(models.PurchaseOrderStatuses)
	quotationStatuses     = enumSet(models.QuotationStatuses)
)

// PartnerRepository stores partners and everything they own: documents,
// purchase orders, quotation requests and the sent email log.
type PartnerRepository struct {
	*Base[models.Partner, *models.Partner]
	Documents         *Base[models.PartnerDocument, *models.PartnerDocument]
	PurchaseOrders    *Base[models.PurchaseOrder, *models.PurchaseOrder]
	QuotationRequests *Base[models.QuotationRequest, *models.QuotationRequest]
	SentEmails        *Base[models.SentEmail, *models.SentEmail]
}

func NewPartnerRepository(clk clock.Clock, data sampledata.PartnerProvider) *PartnerRepository {
	return &PartnerRepository{
		Base: NewBase[models.Partner](clk, Hooks[models.Partner]{
			Seed:     data.Partners,
			Validate: validatePartner,
			Conflict: func(rec, other models.Partner) error {
				if sameText(rec.Name, other.Name) {
					return errors.AlreadyExistsf("partner %q", rec.Name)
				}
				return nil
			},
		}),
		Documents: NewBase[models.PartnerDocument](clk, Hooks[models.PartnerDocument]{
			Seed: data.Documents,
			Validate: func(d models.PartnerDocument, isUpdate bool) error {
				if isUpdate {
					return nil
				}
				return firstErr(requiredID("partner", d.PartnerID), required("document name", d.Name))
			},
		}),
		PurchaseOrders: NewBase[models.PurchaseOrder](clk, Hooks[models.PurchaseOrder]{
			Seed:     data.PurchaseOrders,
			Validate: validatePurchaseOrder,
			Conflict: func(rec, other models.PurchaseOrder) error {
				if rec.OrderNumber == other.OrderNumber {
					return errors.AlreadyExistsf("purchase order %q", rec.OrderNumber)
				}
				return nil
			},
		}),
		QuotationRequests: NewBase[models.QuotationRequest](clk, Hooks[models.QuotationRequest]{
			Seed:     data.QuotationRequests,
			Validate: validateQuotationRequest,
			Conflict: func(rec, other models.QuotationRequest) error {
				if rec.RequestNumber == other.RequestNumber {
					return errors.AlreadyExistsf("quotation request %q", rec.RequestNumber)
				}
				return nil
			},
		}),
		SentEmails: NewBase[models.SentEmail](clk, Hooks[models.SentEmail]{
			Seed: data.SentEmails,
			Validate: func(e models.SentEmail, isUpdate bool) error {
				if isUpdate {
					return nil
				}
				return firstErr(required("recipient", e.To), required("subject", e.Subject))
			},
		}),
	}
}

func validatePartner(p models.Partner, isUpdate bool) error {
	if !isUpdate {
		if err := firstErr(
			required("partner name", p.Name),
			required("partner type", string(p.Type)),
		); err != nil {
			return err
		}
	}
	return firstErr(
		oneOf("partner type", string(p.Type), partnerTypes),
		oneOf("partner status", string(p.Status), partnerStatuses),
		validEmail("partner email", p.Email),
	)
}

func validateItems(items []models.OrderItem, isUpdate bool) error {
	if !isUpdate && len(items) == 0 {
		return notValid("at least one item is required")
	}
	for i, item := range items {
		if err := required("item name", item.Name); err != nil {
			return err
		}
		if item.Quantity <= 0 {
			return notValid("item %d: quantity must be positive", i+1)
		}
		if err := nonNegative("unit price", item.UnitPrice); err != nil {
			return err
		}
	}
	return nil
}

func validatePurchaseOrder(o models.PurchaseOrder, isUpdate bool) error {
	if !isUpdate {
		if err := firstErr(
			requiredID("partner", o.PartnerID),
			required("order number", o.OrderNumber),
		); err != nil {
			return err
		}
	}
	return firstErr(
		oneOf("order status", string(o.Status), purchaseOrderStatuses),
		validateItems(o.Items, isUpdate),
	)
}

func validateQuotationRequest(q models.QuotationRequest, isUpdate bool) error {
	if !isUpdate {
		if err := firstErr(
			requiredID("partner", q.PartnerID),
			required("request number", q.RequestNumber),
		); err != nil {
			return err
		}
	}
	return firstErr(
		oneOf("quotation status", string(q.Status), quotationStatuses),
		validateItems(q.Items, isUpdate),
	)
}

// Reset reloads partners and every owned collection.
func (r *PartnerRepository) Reset() {
	r.Base.Reset()
	r.Documents.Reset()
	r.PurchaseOrders.Reset()
	r.QuotationRequests.Reset()
	r.SentEmails.Reset()
}

func (r *PartnerRepository) GetByStatus(status models.PartnerStatus) []models.Partner {
	return r.Find(func(p models.Partner) bool { return p.Status == status })
}

func (r *PartnerRepository) GetByType(t models.PartnerType) []models.Partner {
	return r.Find(func(p models.Partner) bool { return p.Type == t })
}

func (r *PartnerRepository) GetTypeDistribution() map[string]int {
	return Distribution(r.GetAll(), func(p models.Partner) string { return string(p.Type) },
		enumKeys(models.PartnerTypes)...)
}

func (r *PartnerRepository) DocumentsFor(partnerID int) []models.PartnerDocument {
	return r.Documents.Find(func(d models.PartnerDocument) bool { return d.PartnerID == partnerID })
}

func (r *PartnerRepository) PurchaseOrdersFor(partnerID int) []models.PurchaseOrder {
	return r.PurchaseOrders.Find(func(o models.PurchaseOrder) bool { return o.PartnerID == partnerID })
}

func (r *PartnerRepository) QuotationRequestsFor(partnerID int) []models.QuotationRequest {
	return r.QuotationRequests.Find(func(q models.QuotationRequest) bool { return q.PartnerID == partnerID })
}

func (r *PartnerRepository) SentEmailsFor(partnerID int) []models.SentEmail {
	return r.SentEmails.Find(func(e models.SentEmail) bool { return e.PartnerID == partnerID })
}

func (r *PartnerRepository) CountPurchaseOrders(partnerID int) int {
	return len(r.PurchaseOrdersFor(partnerID))
}

func (r *PartnerRepository) CountQuotationRequests(partnerID int) int {
	return len(r.QuotationRequestsFor(partnerID))
}

// HasPendingPurchaseOrders reports whether the partner has an order
// waiting for approval.
func (r *PartnerRepository) HasPendingPurchaseOrders(partnerID int) bool {
	return r.PurchaseOrders.Exists(func(o models.PurchaseOrder) bool {
		return o.PartnerID == partnerID && o.Status == models.PurchaseOrderPending
	})
}

func (r *PartnerRepository) GetPurchaseOrderByNumber(number string) (models.PurchaseOrder, bool) {
	return r.PurchaseOrders.First(func(o models.PurchaseOrder) bool { return o.OrderNumber == number })
}

func (r *PartnerRepository) GetQuotationRequestByNumber(number string) (models.QuotationRequest, bool) {
	return r.QuotationRequests.First(func(q models.QuotationRequest) bool { return q.RequestNumber == number })
}
