package service

import (
	"context"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itam-service/internal/models"
)

func laptopOrder(t *testing.T, partnerID int) models.CreateOrderRequest {
	return models.CreateOrderRequest{
		PartnerID: partnerID,
		Items: []models.OrderItem{
			{Name: "Dell Latitude 7450", AssetTypeID: 1, Quantity: 1, UnitPrice: yen(t, "180000")},
			{Name: "USB-C dock", Quantity: 1, UnitPrice: yen(t, "20000")},
		},
		Notes: "Replacement for AS-0004",
	}
}

func TestOrderTotals(t *testing.T) {
	subtotal, tax, total := OrderTotals([]models.OrderItem{
		{Name: "Laptop", Quantity: 2, UnitPrice: yen(t, "150000")},
		{Name: "Cable", Quantity: 3, UnitPrice: yen(t, "1999")},
	})
	assertDecimal(t, "305997", subtotal)
	assertDecimal(t, "30600", tax)
	assertDecimal(t, "336597", total)
}

func TestCreatePurchaseOrder(t *testing.T) {
	f := newFixture(t)

	order, err := f.AssetPurchase.CreatePurchaseOrder(laptopOrder(t, 1))
	require.NoError(t, err)
	assert.Equal(t, "PO-1-003", order.OrderNumber)
	assert.Equal(t, models.PurchaseOrderDraft, order.Status)
	assert.Equal(t, today(f.clock), order.OrderDate)
	assertDecimal(t, "200000", order.Subtotal)
	assertDecimal(t, "20000", order.Tax)
	assertDecimal(t, "220000", order.Total)

	next, err := f.AssetPurchase.CreatePurchaseOrder(laptopOrder(t, 1))
	require.NoError(t, err)
	assert.Equal(t, "PO-1-004", next.OrderNumber)

	first, err := f.AssetPurchase.CreatePurchaseOrder(laptopOrder(t, 3))
	require.NoError(t, err)
	assert.Equal(t, "PO-3-001", first.OrderNumber)
}

func TestCreatePurchaseOrderSkipsTakenNumber(t *testing.T) {
	f := newFixture(t)

	// PO-1-001 is gone but PO-1-002 remains, so the count points at a
	// number that is still in use.
	require.True(t, f.store.Partners.PurchaseOrders.Delete(1))
	order, err := f.AssetPurchase.CreatePurchaseOrder(laptopOrder(t, 1))
	require.NoError(t, err)
	assert.Equal(t, "PO-1-003", order.OrderNumber)
}

func TestCreatePurchaseOrderPartnerChecks(t *testing.T) {
	f := newFixture(t)

	_, err := f.AssetPurchase.CreatePurchaseOrder(laptopOrder(t, 99))
	assert.True(t, errors.Is(err, errors.NotFound), "got %v", err)

	_, err = f.AssetPurchase.CreatePurchaseOrder(laptopOrder(t, 5))
	assert.True(t, errors.Is(err, errors.NotValid), "got %v", err)
}

func TestCreateQuotationRequest(t *testing.T) {
	f := newFixture(t)

	q, err := f.AssetPurchase.CreateQuotationRequest(laptopOrder(t, 2))
	require.NoError(t, err)
	assert.Equal(t, "QR-2-002", q.RequestNumber)
	assert.Equal(t, models.QuotationDraft, q.Status)
	assert.Len(t, f.AssetPurchase.ListQuotationRequests(2), 2)
}

func TestCreatePurchaseOrderWithPDF(t *testing.T) {
	f := newFixture(t)

	order, doc, err := f.AssetPurchase.CreatePurchaseOrderWithPDF(laptopOrder(t, 1))
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, order.OrderNumber, doc.BusinessNumber)
	assert.Equal(t, []string{"PO-1-003"}, f.renderer.rendered)

	f.renderer.fail = true
	order, doc, err = f.AssetPurchase.CreatePurchaseOrderWithPDF(laptopOrder(t, 1))
	require.NoError(t, err)
	assert.Nil(t, doc)
	_, ok := f.AssetPurchase.GetPurchaseOrder(order.ID)
	assert.True(t, ok)
}

func TestSendPurchaseOrder(t *testing.T) {
	f := newFixture(t)
	order, err := f.AssetPurchase.CreatePurchaseOrder(laptopOrder(t, 1))
	require.NoError(t, err)
	emailsBefore := len(f.store.Partners.SentEmails.GetAll())

	sent, ok, err := f.AssetPurchase.SendPurchaseOrder(context.Background(), order.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "sales-jp@dell.example.com", sent.To)
	assert.Equal(t, "Purchase order PO-1-003", sent.Subject)
	assert.Equal(t, "purchase_order_PO-1-003.pdf", sent.Attachment)
	assert.Equal(t, "PO-1-003", sent.Related)
	assert.True(t, sent.Simulated)
	assert.Contains(t, sent.Body, "total 220000 JPY")

	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, []string{"/documents/purchase_order_PO-1-003.pdf"}, f.mailer.sent[0].Attachments)

	stored, _ := f.AssetPurchase.GetPurchaseOrder(order.ID)
	assert.Equal(t, models.PurchaseOrderPending, stored.Status)
	emails := f.store.Partners.SentEmails.GetAll()
	require.Len(t, emails, emailsBefore+1)
	assert.Equal(t, sent.ID, emails[len(emails)-1].ID)
	assert.Equal(t, "PO-1-003", emails[len(emails)-1].Related)

	_, ok, err = f.AssetPurchase.SendPurchaseOrder(context.Background(), 999)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestSendPurchaseOrderFailures(t *testing.T) {
	f := newFixture(t)
	order, err := f.AssetPurchase.CreatePurchaseOrder(laptopOrder(t, 1))
	require.NoError(t, err)
	emailsBefore := len(f.store.Partners.SentEmails.GetAll())

	f.mailer.fail = true
	_, ok, err := f.AssetPurchase.SendPurchaseOrder(context.Background(), order.ID)
	assert.True(t, ok)
	assert.Error(t, err)
	stored, _ := f.AssetPurchase.GetPurchaseOrder(order.ID)
	assert.Equal(t, models.PurchaseOrderDraft, stored.Status)
	assert.Len(t, f.store.Partners.SentEmails.GetAll(), emailsBefore)

	f.mailer.fail = false
	f.renderer.fail = true
	_, _, err = f.AssetPurchase.SendPurchaseOrder(context.Background(), order.ID)
	assert.Error(t, err)
	assert.Empty(t, f.mailer.sent)
}

func TestSendClosedDocumentsIsRefused(t *testing.T) {
	f := newFixture(t)
	emailsBefore := len(f.store.Partners.SentEmails.GetAll())

	order, err := f.AssetPurchase.CreatePurchaseOrder(laptopOrder(t, 1))
	require.NoError(t, err)
	_, _, err = f.AssetPurchase.UpdatePurchaseOrderStatus(order.ID, models.PurchaseOrderCancelled)
	require.NoError(t, err)

	_, ok, err := f.AssetPurchase.SendPurchaseOrder(context.Background(), order.ID)
	assert.True(t, ok)
	assert.True(t, errors.Is(err, errors.NotValid), "got %v", err)

	q, err := f.AssetPurchase.CreateQuotationRequest(laptopOrder(t, 2))
	require.NoError(t, err)
	_, _, err = f.store.Partners.QuotationRequests.Update(q.ID, func(q *models.QuotationRequest) {
		q.Status = models.QuotationRejected
	})
	require.NoError(t, err)

	_, ok, err = f.AssetPurchase.SendQuotationRequest(context.Background(), q.ID)
	assert.True(t, ok)
	assert.True(t, errors.Is(err, errors.NotValid), "got %v", err)

	assert.Empty(t, f.renderer.rendered)
	assert.Empty(t, f.mailer.sent)
	assert.Len(t, f.store.Partners.SentEmails.GetAll(), emailsBefore)
}

func TestSendQuotationRequest(t *testing.T) {
	f := newFixture(t)
	q, err := f.AssetPurchase.CreateQuotationRequest(laptopOrder(t, 2))
	require.NoError(t, err)

	sent, ok, err := f.AssetPurchase.SendQuotationRequest(context.Background(), q.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Quotation request QR-2-002", sent.Subject)

	stored, _ := f.AssetPurchase.GetQuotationRequest(q.ID)
	assert.Equal(t, models.QuotationSent, stored.Status)
}

func TestUpdatePurchaseOrderStatus(t *testing.T) {
	f := newFixture(t)
	order, err := f.AssetPurchase.CreatePurchaseOrder(laptopOrder(t, 1))
	require.NoError(t, err)

	_, _, err = f.AssetPurchase.UpdatePurchaseOrderStatus(order.ID, models.PurchaseOrderDelivered)
	assert.True(t, errors.Is(err, errors.NotValid), "got %v", err)

	for _, next := range []models.PurchaseOrderStatus{
		models.PurchaseOrderPending,
		models.PurchaseOrderApproved,
		models.PurchaseOrderDelivered,
	} {
		updated, ok, err := f.AssetPurchase.UpdatePurchaseOrderStatus(order.ID, next)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, next, updated.Status)
	}
	stored, _ := f.AssetPurchase.GetPurchaseOrder(order.ID)
	require.NotNil(t, stored.DeliveryDate)
	assert.Equal(t, today(f.clock), *stored.DeliveryDate)

	_, _, err = f.AssetPurchase.UpdatePurchaseOrderStatus(order.ID, models.PurchaseOrderCancelled)
	assert.True(t, errors.Is(err, errors.NotValid), "got %v", err)
}

func TestReceivePurchaseOrder(t *testing.T) {
	f := newFixture(t)

	_, ok, err := f.AssetPurchase.ReceivePurchaseOrder(2, 1, 4)
	assert.True(t, ok)
	assert.True(t, errors.Is(err, errors.NotValid), "pending order: %v", err)

	_, _, err = f.AssetPurchase.UpdatePurchaseOrderStatus(2, models.PurchaseOrderApproved)
	require.NoError(t, err)
	created, ok, err := f.AssetPurchase.ReceivePurchaseOrder(2, 1, 4)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, created, 6)
	for _, a := range created {
		require.NotNil(t, a.SupplierID)
		assert.Equal(t, 1, *a.SupplierID)
		assert.Equal(t, 4, a.LocationID)
		assert.Equal(t, models.AssetStatusAvailable, a.Status)
	}

	order, _ := f.AssetPurchase.GetPurchaseOrder(2)
	assert.Equal(t, models.PurchaseOrderDelivered, order.Status)
	assert.Len(t, f.AssetCrud.ListAssets(), 11)
	assert.Len(t, f.AssetPartner.GetAssetsSuppliedBy(1), 7)
}
