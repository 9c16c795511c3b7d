package sampledata

import (
	"time"

	"itam-service/internal/models"
)

type NotificationProvider struct{}

func (NotificationProvider) Notifications() []models.Notification {
	readAt := time.Date(2024, time.May, 20, 12, 30, 0, 0, time.UTC)
	return []models.Notification{
		{
			ID:          1,
			Type:        models.NotificationWarrantyExpiry,
			Priority:    models.PriorityHigh,
			Title:       "Warranty expiring: AS-0002",
			Message:     "The warranty of HP EliteDesk 800 G6 ends on 2024-06-20.",
			RelatedType: "asset",
			RelatedID:   models.IntPtr(2),
			Timestamps:  stamp(time.Date(2024, time.May, 21, 8, 0, 0, 0, time.UTC)),
		},
		{
			ID:          2,
			Type:        models.NotificationContractExpiry,
			Priority:    models.PriorityMedium,
			Title:       "Contract expiring: CT-2021-004",
			Message:     "Multifunction printer lease ends on 2024-06-30.",
			RelatedType: "contract",
			RelatedID:   models.IntPtr(2),
			Timestamps:  stamp(time.Date(2024, time.May, 31, 8, 0, 0, 0, time.UTC)),
		},
		{
			ID:          3,
			Type:        models.NotificationInventory,
			Priority:    models.PriorityLow,
			Title:       "Inventory started: 2024 Q2 spot check",
			Message:     "Ken Watanabe started the 2024 Q2 spot check.",
			RelatedType: "inventory",
			RelatedID:   models.IntPtr(2),
			IsRead:      true,
			ReadAt:      &readAt,
			Timestamps:  stamp(time.Date(2024, time.May, 20, 9, 0, 0, 0, time.UTC)),
		},
		{
			ID:         4,
			Type:       models.NotificationSystem,
			Priority:   models.PriorityLow,
			Title:      "Scheduled maintenance",
			Message:    "The asset register is read-only on Saturday 02:00-04:00.",
			IsRead:     true,
			ReadAt:     &readAt,
			Timestamps: stamp(time.Date(2024, time.May, 18, 17, 0, 0, 0, time.UTC)),
		},
		{
			ID:          5,
			Type:        models.NotificationLicenseExpiry,
			Priority:    models.PriorityHigh,
			Title:       "License expired: Adobe Acrobat Pro",
			Message:     "License ACRO-PRO-7781 expired on 2024-05-14.",
			RelatedType: "license",
			RelatedID:   models.IntPtr(2),
			Timestamps:  stamp(time.Date(2024, time.May, 15, 8, 0, 0, 0, time.UTC)),
		},
	}
}
