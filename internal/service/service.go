// Package service holds the business logic over the repositories: request
// validation, reference checks, lifecycle rules and statistics. Services
// keep no state of their own.
package service

import (
	"context"
	"time"

	"github.com/juju/clock"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"itam-service/internal/documents"
	"itam-service/internal/models"
	"itam-service/internal/repository"
)

// DefaultWarningDays is the expiry window used when none is configured.
const DefaultWarningDays = 30

// OrderRenderer writes purchase documents to disk. A false result means
// the failure has already been logged.
type OrderRenderer interface {
	PurchaseOrder(order models.PurchaseOrder, partner models.Partner) (models.GeneratedDocument, bool)
	QuotationRequest(req models.QuotationRequest, partner models.Partner) (models.GeneratedDocument, bool)
}

// Mailer delivers one message.
type Mailer interface {
	Send(ctx context.Context, msg documents.Email) (documents.Receipt, bool)
}

// Options tune the services built by New.
type Options struct {
	WarningDays int
	Renderer    OrderRenderer
	Mailer      Mailer
}

// Services is every service of the application wired to one store.
type Services struct {
	AssetCrud           *AssetCrudService
	AssetSearch         *AssetSearchService
	AssetSpecial        *AssetSpecialService
	AssetPartner        *AssetPartnerService
	AssetPurchase       *AssetPurchaseService
	AssetStatistics     *AssetStatisticsService
	AssetImport         *AssetImportTarget
	Partners            *PartnerService
	Contracts           *ContractService
	Inventory           *InventoryService
	InventoryStatistics *InventoryStatisticsService
	Discrepancies       *InventoryDiscrepancyService
	Notifications       *NotificationService
	Software            *SoftwareService
	Settings            *SettingsService
}

func New(store *repository.Store, clk clock.Clock, log *zap.Logger, opts Options) *Services {
	if opts.WarningDays <= 0 {
		opts.WarningDays = DefaultWarningDays
	}
	crud := NewAssetCrudService(store.Assets, store.Settings, log)
	return &Services{
		AssetCrud:           crud,
		AssetSearch:         NewAssetSearchService(store.Assets, store.Settings),
		AssetSpecial:        NewAssetSpecialService(store.Assets, store.Settings, store.Software, clk, log),
		AssetPartner:        NewAssetPartnerService(store.Assets, store.Partners, store.Contracts),
		AssetPurchase:       NewAssetPurchaseService(store.Partners, crud, opts.Renderer, opts.Mailer, clk, log),
		AssetStatistics:     NewAssetStatisticsService(store.Assets, store.Settings, clk, opts.WarningDays),
		AssetImport:         NewAssetImportTarget(crud, store.Assets, store.Settings),
		Partners:            NewPartnerService(store.Partners, store.Contracts, log),
		Contracts:           NewContractService(store.Contracts, store.Partners, clk, opts.WarningDays, log),
		Inventory:           NewInventoryService(store.Inventory, store.Assets, store.Settings, clk, log),
		InventoryStatistics: NewInventoryStatisticsService(store.Inventory),
		Discrepancies:       NewInventoryDiscrepancyService(store.Inventory, clk, log),
		Notifications:       NewNotificationService(store.Notifications, store.Assets, store.Contracts, store.Software, clk, opts.WarningDays, log),
		Software:            NewSoftwareService(store.Software, store.Assets, clk, log),
		Settings:            NewSettingsService(store.Settings, store.Assets, log),
	}
}

var hundred = decimal.NewFromInt(100)

// percentage returns part/total*100 rounded to one decimal, 0 for an
// empty total.
func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return decimal.NewFromInt(int64(part)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(total))).
		Round(1).
		InexactFloat64()
}

func round1(v float64) float64 {
	return decimal.NewFromFloat(v).Round(1).InexactFloat64()
}

// today is the clock's current date at midnight UTC.
func today(clk clock.Clock) time.Time {
	y, m, d := clk.Now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
