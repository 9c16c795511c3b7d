package sampledata

import (
	"time"

	"github.com/shopspring/decimal"

	"itam-service/internal/models"
)

type PartnerProvider struct{}

func (PartnerProvider) Partners() []models.Partner {
	return []models.Partner{
		{
			ID:            1,
			Name:          "Dell Technologies Japan",
			Type:          models.PartnerTypeSupplier,
			Status:        models.PartnerStatusActive,
			ContactPerson: "Kenji Mori",
			Email:         "sales-jp@dell.example.com",
			Phone:         "03-1234-5601",
			Address:       "Otemachi, Chiyoda-ku, Tokyo",
			Website:       "https://www.dell.example.com",
			TaxInfo:       models.TaxInfo{TaxID: "JP-4010401037181", RegistrationNumber: "0104-01-037181", InvoiceRegistration: "T4010401037181"},
			Timestamps:    stamp(date(2021, time.April, 1)),
		},
		{
			ID:            2,
			Name:          "Nakamura IT Services",
			Type:          models.PartnerTypeMaintenance,
			Status:        models.PartnerStatusActive,
			ContactPerson: "Aiko Nakamura",
			Email:         "support@nakamura-it.example.com",
			Phone:         "03-2345-6702",
			Address:       "Shiba, Minato-ku, Tokyo",
			TaxInfo:       models.TaxInfo{TaxID: "JP-1010401099821", InvoiceRegistration: "T1010401099821"},
			Timestamps:    stamp(date(2021, time.June, 15)),
		},
		{
			ID:            3,
			Name:          "Tokyo Century Lease",
			Type:          models.PartnerTypeLeasing,
			Status:        models.PartnerStatusActive,
			ContactPerson: "Shota Kimura",
			Email:         "lease@tcl.example.com",
			Phone:         "03-3456-7803",
			Address:       "Kanda, Chiyoda-ku, Tokyo",
			TaxInfo:       models.TaxInfo{TaxID: "JP-2010001087203", RegistrationNumber: "0100-01-087203", InvoiceRegistration: "T2010001087203"},
			Timestamps:    stamp(date(2020, time.July, 1)),
		},
		{
			ID:            4,
			Name:          "Microsoft Japan",
			Type:          models.PartnerTypeSoftwareVendor,
			Status:        models.PartnerStatusActive,
			ContactPerson: "Licensing Desk",
			Email:         "licensing@microsoft.example.com",
			Phone:         "03-4567-8904",
			Address:       "Konan, Minato-ku, Tokyo",
			Website:       "https://www.microsoft.example.com",
			TaxInfo:       models.TaxInfo{InvoiceRegistration: "T8010401040049"},
			Timestamps:    stamp(date(2022, time.March, 10)),
		},
		{
			ID:            5,
			Name:          "Sakura Network Solutions",
			Type:          models.PartnerTypeServiceProvider,
			Status:        models.PartnerStatusInactive,
			ContactPerson: "Daisuke Ono",
			Email:         "info@sakura-net.example.com",
			Phone:         "06-5678-9005",
			Address:       "Umeda, Kita-ku, Osaka",
			Notes:         "Network support moved in-house in 2023",
			Timestamps:    stamp(date(2019, time.November, 20)),
		},
	}
}

func (PartnerProvider) Documents() []models.PartnerDocument {
	return []models.PartnerDocument{
		{ID: 1, PartnerID: 2, Name: "PC maintenance agreement", Category: "contract", FileName: "nakamura_maintenance_2023.pdf", UploadedAt: date(2023, time.April, 3), Timestamps: stamp(seededAt)},
		{ID: 2, PartnerID: 3, Name: "Copier lease schedule", Category: "contract", FileName: "tcl_lease_schedule.pdf", UploadedAt: date(2021, time.July, 2), Timestamps: stamp(seededAt)},
		{ID: 3, PartnerID: 4, Name: "Enterprise agreement enrollment", Category: "license", FileName: "ms_ea_enrollment.pdf", UploadedAt: date(2023, time.July, 1), Timestamps: stamp(seededAt)},
	}
}

func (PartnerProvider) PurchaseOrders() []models.PurchaseOrder {
	delivered := []models.OrderItem{
		{Name: "Dell Latitude 5430", AssetTypeID: 1, Quantity: 2, UnitPrice: yen(150000)},
	}
	pending := []models.OrderItem{
		{Name: "Dell Latitude 5440", AssetTypeID: 1, Quantity: 3, UnitPrice: yen(165000)},
		{Name: "Dell P2423D Monitor", AssetTypeID: 5, Quantity: 3, UnitPrice: yen(38000)},
	}
	return []models.PurchaseOrder{
		orderWithTotals(models.PurchaseOrder{
			ID:           1,
			PartnerID:    1,
			OrderNumber:  "PO-1-001",
			Status:       models.PurchaseOrderDelivered,
			OrderDate:    date(2023, time.January, 10),
			DeliveryDate: datePtr(2023, time.January, 24),
			Items:        delivered,
			Timestamps:   stamp(date(2023, time.January, 10)),
		}),
		orderWithTotals(models.PurchaseOrder{
			ID:          2,
			PartnerID:   1,
			OrderNumber: "PO-1-002",
			Status:      models.PurchaseOrderPending,
			OrderDate:   date(2024, time.May, 20),
			Items:       pending,
			Notes:       "Replacement laptops for the sales team",
			Timestamps:  stamp(date(2024, time.May, 20)),
		}),
	}
}

var taxRate = decimal.RequireFromString("0.10")

func orderWithTotals(o models.PurchaseOrder) models.PurchaseOrder {
	subtotal := decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.Amount())
	}
	o.Subtotal = subtotal
	o.Tax = subtotal.Mul(taxRate).Round(0)
	o.Total = o.Subtotal.Add(o.Tax)
	return o
}

func (PartnerProvider) QuotationRequests() []models.QuotationRequest {
	return []models.QuotationRequest{
		{
			ID:            1,
			PartnerID:     1,
			RequestNumber: "QR-1-001",
			Status:        models.QuotationReceived,
			RequestDate:   date(2024, time.May, 1),
			DueDate:       datePtr(2024, time.May, 15),
			Items: []models.OrderItem{
				{Name: "Dell Latitude 5440", AssetTypeID: 1, Quantity: 3},
			},
			Timestamps: stamp(date(2024, time.May, 1)),
		},
		{
			ID:            2,
			PartnerID:     2,
			RequestNumber: "QR-2-001",
			Status:        models.QuotationSent,
			RequestDate:   date(2024, time.May, 27),
			DueDate:       datePtr(2024, time.June, 10),
			Items: []models.OrderItem{
				{Name: "On-site maintenance renewal FY2025", Quantity: 1},
			},
			Timestamps: stamp(date(2024, time.May, 27)),
		},
	}
}

func (PartnerProvider) SentEmails() []models.SentEmail {
	return []models.SentEmail{
		{
			ID:         1,
			MessageID:  "6f1c9a52-3d7e-4b8a-9a11-6c0f2e4d7b10",
			PartnerID:  1,
			To:         "sales-jp@dell.example.com",
			Subject:    "Quotation request QR-1-001",
			Body:       "Please find attached our quotation request.",
			Attachment: "quotation_request_QR-1-001_20240501_100000.pdf",
			Related:    "QR-1-001",
			SentAt:     time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC),
			Timestamps: stamp(date(2024, time.May, 1)),
		},
	}
}
