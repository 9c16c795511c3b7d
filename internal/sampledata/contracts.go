package sampledata

import (
	"time"

	"itam-service/internal/models"
)

type ContractProvider struct{}

func (ContractProvider) Contracts() []models.Contract {
	return []models.Contract{
		{
			ID:             1,
			PartnerID:      2,
			ContractNumber: "CT-2023-001",
			Title:          "PC on-site maintenance",
			Type:           models.ContractTypeMaintenance,
			Status:         models.ContractStatusActive,
			StartDate:      date(2023, time.April, 1),
			EndDate:        date(2025, time.March, 31),
			Amount:         yen(1200000),
			AutoRenew:      true,
			Timestamps:     stamp(date(2023, time.March, 20)),
		},
		{
			ID:             2,
			PartnerID:      3,
			ContractNumber: "CT-2021-004",
			Title:          "Multifunction printer lease",
			Type:           models.ContractTypeLease,
			Status:         models.ContractStatusExpiring,
			StartDate:      date(2021, time.July, 1),
			EndDate:        date(2024, time.June, 30),
			Amount:         yen(864000),
			Timestamps:     stamp(date(2021, time.June, 25)),
		},
		{
			ID:             3,
			PartnerID:      4,
			ContractNumber: "CT-2023-010",
			Title:          "Microsoft 365 E3 subscription",
			Type:           models.ContractTypeLicense,
			Status:         models.ContractStatusActive,
			StartDate:      date(2023, time.July, 1),
			EndDate:        date(2024, time.June, 30),
			Amount:         yen(1980000),
			AutoRenew:      true,
			Notes:          "50 seats",
			Timestamps:     stamp(date(2023, time.June, 28)),
		},
		{
			ID:             4,
			PartnerID:      5,
			ContractNumber: "CT-2020-002",
			Title:          "Network operations support",
			Type:           models.ContractTypeService,
			Status:         models.ContractStatusExpired,
			StartDate:      date(2020, time.April, 1),
			EndDate:        date(2023, time.March, 31),
			Amount:         yen(2400000),
			Timestamps:     stamp(date(2020, time.March, 15)),
		},
	}
}
