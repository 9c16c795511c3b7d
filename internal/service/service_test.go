package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/juju/clock/testclock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"itam-service/internal/documents"
	"itam-service/internal/models"
	"itam-service/internal/repository"
	"itam-service/internal/sampledata"
)

var testNow = time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)

type fakeRenderer struct {
	mu       sync.Mutex
	rendered []string
	fail     bool
}

func (f *fakeRenderer) PurchaseOrder(order models.PurchaseOrder, _ models.Partner) (models.GeneratedDocument, bool) {
	return f.render(models.DocumentPurchaseOrder, order.OrderNumber)
}

func (f *fakeRenderer) QuotationRequest(req models.QuotationRequest, _ models.Partner) (models.GeneratedDocument, bool) {
	return f.render(models.DocumentQuotationRequest, req.RequestNumber)
}

func (f *fakeRenderer) render(t models.DocumentType, number string) (models.GeneratedDocument, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return models.GeneratedDocument{}, false
	}
	f.rendered = append(f.rendered, number)
	name := fmt.Sprintf("%s_%s.pdf", t, number)
	return models.GeneratedDocument{
		ID:             name,
		Type:           t,
		BusinessNumber: number,
		FileName:       name,
		Path:           "/documents/" + name,
		Size:           1024,
		CreatedAt:      testNow,
	}, true
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []documents.Email
	fail bool
}

func (f *fakeMailer) Send(_ context.Context, msg documents.Email) (documents.Receipt, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return documents.Receipt{}, false
	}
	f.sent = append(f.sent, msg)
	return documents.Receipt{
		MessageID: fmt.Sprintf("<%d@test>", len(f.sent)),
		Simulated: true,
		SentAt:    testNow,
	}, true
}

type fixture struct {
	*Services
	store    *repository.Store
	clock    *testclock.Clock
	renderer *fakeRenderer
	mailer   *fakeMailer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clk := testclock.NewClock(testNow)
	store := repository.NewStore(clk, sampledata.New())
	f := &fixture{
		store:    store,
		clock:    clk,
		renderer: &fakeRenderer{},
		mailer:   &fakeMailer{},
	}
	f.Services = New(store, clk, zap.NewNop(), Options{
		WarningDays: 30,
		Renderer:    f.renderer,
		Mailer:      f.mailer,
	})
	return f
}

func yen(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, yen(t, want).Equal(got), "want %s, got %s", want, got)
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0.0, percentage(3, 0))
	assert.Equal(t, 60.0, percentage(3, 5))
	assert.Equal(t, 33.3, percentage(1, 3))
	assert.Equal(t, 66.7, percentage(2, 3))
}

func TestToday(t *testing.T) {
	clk := testclock.NewClock(time.Date(2024, time.June, 1, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), today(clk))
}

func TestNewDefaultsWarningDays(t *testing.T) {
	clk := testclock.NewClock(testNow)
	svc := New(repository.NewStore(clk, sampledata.New()), clk, zap.NewNop(), Options{})
	assert.Equal(t, DefaultWarningDays, svc.AssetStatistics.warningDays)
}
