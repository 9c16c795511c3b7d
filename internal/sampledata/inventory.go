package sampledata

import (
	"time"

	"itam-service/internal/models"
)

type InventoryProvider struct{}

func (InventoryProvider) Inventories() []models.Inventory {
	return []models.Inventory{
		{
			ID:               1,
			Name:             "FY2023 annual inventory",
			Description:      "Full count of the head office register",
			StartDate:        date(2024, time.March, 1),
			EndDate:          date(2024, time.March, 15),
			Status:           models.InventoryCompleted,
			TargetCount:      5,
			CompletedCount:   5,
			DiscrepancyCount: 2,
			Manager:          "Taro Yamada",
			Timestamps:       stamp(date(2024, time.February, 20)),
		},
		{
			ID:               2,
			Name:             "2024 Q2 spot check",
			Description:      "Network and PC spot check",
			StartDate:        date(2024, time.May, 20),
			EndDate:          date(2024, time.June, 10),
			Status:           models.InventoryInProgress,
			TargetCount:      5,
			CompletedCount:   2,
			DiscrepancyCount: 1,
			Manager:          "Ken Watanabe",
			Timestamps:       stamp(date(2024, time.May, 15)),
		},
		{
			ID:          3,
			Name:        "Osaka branch audit",
			StartDate:   date(2024, time.July, 1),
			EndDate:     date(2024, time.July, 5),
			Status:      models.InventoryPlanned,
			Manager:     "Hanako Sato",
			LocationIDs: []int{5},
			Timestamps:  stamp(date(2024, time.May, 30)),
		},
	}
}

func (InventoryProvider) Details() []models.InventoryDetail {
	scanned := func(d time.Time, h int) time.Time { return d.Add(time.Duration(h) * time.Hour) }
	return []models.InventoryDetail{
		{
			InventoryID: 1,
			Summary:     models.InventorySummary{Total: 5, Scanned: 5, Found: 3, Mismatched: 2, Discrepancies: 2},
			Results: []models.ScanResult{
				{AssetID: 1, AssetNumber: "AS-0001", AssetName: "Dell XPS 13", ExpectedLocation: 1, ActualLocation: 1, ExpectedStatus: models.AssetStatusInUse, ActualStatus: models.AssetStatusInUse, Outcome: models.ScanFound, ScannedBy: "Taro Yamada", ScannedAt: scanned(date(2024, time.March, 4), 10)},
				{AssetID: 2, AssetNumber: "AS-0002", AssetName: "HP EliteDesk 800 G6", ExpectedLocation: 2, ActualLocation: 2, ExpectedStatus: models.AssetStatusInUse, ActualStatus: models.AssetStatusInUse, Outcome: models.ScanFound, ScannedBy: "Taro Yamada", ScannedAt: scanned(date(2024, time.March, 4), 11)},
				{AssetID: 3, AssetNumber: "AS-0003", AssetName: "Lenovo ThinkPad X1 Carbon", ExpectedLocation: 4, ActualLocation: 1, ExpectedStatus: models.AssetStatusAvailable, ActualStatus: models.AssetStatusAvailable, Outcome: models.ScanMismatch, ScannedBy: "Taro Yamada", ScannedAt: scanned(date(2024, time.March, 5), 9)},
				{AssetID: 4, AssetNumber: "AS-0004", AssetName: "Canon imageRUNNER C3530", ExpectedLocation: 2, ActualLocation: 2, ExpectedStatus: models.AssetStatusInUse, ActualStatus: models.AssetStatusInRepair, Outcome: models.ScanMismatch, ScannedBy: "Ichiro Suzuki", ScannedAt: scanned(date(2024, time.March, 5), 14)},
				{AssetID: 5, AssetNumber: "AS-0005", AssetName: "Cisco Catalyst 9200 Switch", ExpectedLocation: 3, ActualLocation: 3, ExpectedStatus: models.AssetStatusInUse, ActualStatus: models.AssetStatusInUse, Outcome: models.ScanFound, ScannedBy: "Ken Watanabe", ScannedAt: scanned(date(2024, time.March, 6), 16)},
			},
			Logs: []models.InventoryLog{
				{Timestamp: scanned(date(2024, time.March, 1), 9), Action: "start", User: "Taro Yamada", Message: "Inventory started"},
				{Timestamp: scanned(date(2024, time.March, 15), 17), Action: "complete", User: "Taro Yamada", Message: "Inventory completed with 2 discrepancies"},
			},
		},
		{
			InventoryID: 2,
			Summary:     models.InventorySummary{Total: 5, Scanned: 2, Found: 1, Mismatched: 1, Discrepancies: 1},
			Results: []models.ScanResult{
				{AssetID: 1, AssetNumber: "AS-0001", AssetName: "Dell XPS 13", ExpectedLocation: 1, ActualLocation: 1, ExpectedStatus: models.AssetStatusInUse, ActualStatus: models.AssetStatusInUse, Outcome: models.ScanFound, ScannedBy: "Ken Watanabe", ScannedAt: scanned(date(2024, time.May, 21), 10)},
				{AssetID: 5, AssetNumber: "AS-0005", AssetName: "Cisco Catalyst 9200 Switch", ExpectedLocation: 3, ActualLocation: 3, ExpectedStatus: models.AssetStatusInUse, ActualStatus: models.AssetStatusInUse, Damaged: true, Outcome: models.ScanMismatch, ScannedBy: "Ken Watanabe", ScannedAt: scanned(date(2024, time.May, 21), 15), Notes: "Cracked front panel, port 12 dead"},
			},
			Logs: []models.InventoryLog{
				{Timestamp: scanned(date(2024, time.May, 20), 9), Action: "start", User: "Ken Watanabe", Message: "Inventory started"},
			},
		},
		{
			InventoryID: 3,
		},
	}
}

func (InventoryProvider) Discrepancies() []models.Discrepancy {
	return []models.Discrepancy{
		{
			ID:              1,
			InventoryID:     1,
			AssetNumber:     "AS-0004",
			AssetName:       "Canon imageRUNNER C3530",
			Type:            models.DiscrepancyTypeStatus,
			Severity:        models.SeverityMedium,
			Status:          models.DiscrepancyResolved,
			DiscoveryDate:   date(2024, time.March, 5),
			Description:     "Register says in use, device is out for repair",
			ExpectedValue:   string(models.AssetStatusInUse),
			ActualValue:     string(models.AssetStatusInRepair),
			AssignedTo:      "Ichiro Suzuki",
			ResolutionDate:  datePtr(2024, time.March, 20),
			ResolutionNotes: "Register updated to in_repair",
			Timestamps:      stamp(date(2024, time.March, 5)),
		},
		{
			ID:            2,
			InventoryID:   1,
			AssetNumber:   "AS-0003",
			AssetName:     "Lenovo ThinkPad X1 Carbon",
			Type:          models.DiscrepancyTypeLocation,
			Severity:      models.SeverityHigh,
			Status:        models.DiscrepancyConfirmed,
			DiscoveryDate: date(2024, time.March, 5),
			Description:   "Spare laptop found on 3F instead of the warehouse",
			ExpectedValue: "WH",
			ActualValue:   "HQ-3F",
			AssignedTo:    "Taro Yamada",
			Timestamps:    stamp(date(2024, time.March, 5)),
		},
		{
			ID:            3,
			InventoryID:   2,
			AssetNumber:   "AS-0005",
			AssetName:     "Cisco Catalyst 9200 Switch",
			Type:          models.DiscrepancyTypeDamaged,
			Severity:      models.SeverityCritical,
			Status:        models.DiscrepancyPending,
			DiscoveryDate: date(2024, time.May, 21),
			Description:   "Cracked front panel, port 12 dead",
			Timestamps:    stamp(date(2024, time.May, 21)),
		},
	}
}
