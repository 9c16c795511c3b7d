package sampledata

import (
	"time"

	"itam-service/internal/models"
)

// AssetProvider supplies the asset register and its PC, software and
// network detail records.
type AssetProvider struct{}

func (AssetProvider) Assets() []models.Asset {
	return []models.Asset{
		{
			ID:             1,
			AssetNumber:    "AS-0001",
			Name:           "Dell XPS 13",
			TypeID:         1,
			Type:           "laptop",
			StatusID:       1,
			Status:         models.AssetStatusInUse,
			DepartmentID:   1,
			LocationID:     1,
			UserID:         models.IntPtr(1),
			SupplierID:     models.IntPtr(1),
			PurchaseDate:   date(2022, time.April, 1),
			PurchasePrice:  yen(180000),
			SerialNumber:   "DL7Q2M913",
			Manufacturer:   "Dell",
			Model:          "XPS 13 9310",
			WarrantyExpiry: datePtr(2025, time.March, 31),
			UsefulLife:     48,
			CurrentValue:   yen(90000),
			Timestamps:     stamp(seededAt),
		},
		{
			ID:             2,
			AssetNumber:    "AS-0002",
			Name:           "HP EliteDesk 800 G6",
			TypeID:         2,
			Type:           "desktop",
			StatusID:       1,
			Status:         models.AssetStatusInUse,
			DepartmentID:   2,
			LocationID:     2,
			UserID:         models.IntPtr(2),
			PurchaseDate:   date(2021, time.October, 15),
			PurchasePrice:  yen(120000),
			SerialNumber:   "HPCZC1234",
			Manufacturer:   "HP",
			Model:          "EliteDesk 800 G6 SFF",
			WarrantyExpiry: datePtr(2024, time.June, 20),
			UsefulLife:     60,
			CurrentValue:   yen(48000),
			Timestamps:     stamp(seededAt),
		},
		{
			ID:             3,
			AssetNumber:    "AS-0003",
			Name:           "Lenovo ThinkPad X1 Carbon",
			TypeID:         1,
			Type:           "laptop",
			StatusID:       2,
			Status:         models.AssetStatusAvailable,
			DepartmentID:   1,
			LocationID:     4,
			PurchaseDate:   date(2023, time.January, 20),
			PurchasePrice:  yen(210000),
			SerialNumber:   "PF3ABCDE",
			Manufacturer:   "Lenovo",
			Model:          "X1 Carbon Gen 10",
			WarrantyExpiry: datePtr(2026, time.January, 19),
			UsefulLife:     48,
			CurrentValue:   yen(157500),
			Notes:          "Spare for new hires",
			Timestamps:     stamp(seededAt),
		},
		{
			ID:             4,
			AssetNumber:    "AS-0004",
			Name:           "Canon imageRUNNER C3530",
			TypeID:         3,
			Type:           "printer",
			StatusID:       3,
			Status:         models.AssetStatusInRepair,
			DepartmentID:   3,
			LocationID:     2,
			PurchaseDate:   date(2020, time.July, 1),
			PurchasePrice:  yen(450000),
			SerialNumber:   "CNR3530F77",
			Manufacturer:   "Canon",
			Model:          "iR-ADV C3530F",
			WarrantyExpiry: datePtr(2023, time.June, 30),
			UsefulLife:     60,
			CurrentValue:   yen(90000),
			Notes:          "Paper feed unit replaced under service contract",
			Timestamps:     stamp(seededAt),
		},
		{
			ID:             5,
			AssetNumber:    "AS-0005",
			Name:           "Cisco Catalyst 9200 Switch",
			TypeID:         4,
			Type:           "network",
			StatusID:       1,
			Status:         models.AssetStatusInUse,
			DepartmentID:   1,
			LocationID:     3,
			UserID:         models.IntPtr(5),
			PurchaseDate:   date(2022, time.September, 1),
			PurchasePrice:  yen(380000),
			SerialNumber:   "FOC2245L1AB",
			Manufacturer:   "Cisco",
			Model:          "C9200-24P",
			WarrantyExpiry: datePtr(2027, time.August, 31),
			UsefulLife:     72,
			CurrentValue:   yen(285000),
			Timestamps:     stamp(seededAt),
		},
	}
}

func (AssetProvider) PCDetails() []models.PCDetail {
	return []models.PCDetail{
		{AssetID: 1, CPU: "Intel Core i7-1185G7", MemoryGB: 16, StorageGB: 512, OS: "Windows 11 Pro", OSVersion: "23H2", Hostname: "PC-0001", MACAddress: "3C:52:82:11:2A:01"},
		{AssetID: 2, CPU: "Intel Core i5-10500", MemoryGB: 16, StorageGB: 256, OS: "Windows 10 Pro", OSVersion: "22H2", Hostname: "PC-0002", MACAddress: "3C:52:82:11:2A:02"},
		{AssetID: 3, CPU: "Intel Core i7-1260P", MemoryGB: 32, StorageGB: 1024, OS: "Windows 11 Pro", OSVersion: "23H2", Hostname: "PC-0003"},
	}
}

func (AssetProvider) Installations() []models.SoftwareInstallation {
	return []models.SoftwareInstallation{
		{ID: 1, AssetID: 1, SoftwareID: 1, Name: "Microsoft 365 Apps", Version: "2405", LicenseKey: "M365-E3-0001", InstallDate: date(2023, time.July, 3), Timestamps: stamp(seededAt)},
		{ID: 2, AssetID: 1, SoftwareID: 3, Name: "Google Chrome", Version: "125", InstallDate: date(2022, time.April, 5), Timestamps: stamp(seededAt)},
		{ID: 3, AssetID: 2, SoftwareID: 1, Name: "Microsoft 365 Apps", Version: "2405", LicenseKey: "M365-E3-0001", InstallDate: date(2023, time.July, 3), Timestamps: stamp(seededAt)},
		{ID: 4, AssetID: 2, SoftwareID: 2, Name: "Adobe Acrobat Pro", Version: "2024", LicenseKey: "ACRO-PRO-7781", InstallDate: date(2023, time.May, 16), Timestamps: stamp(seededAt)},
		{ID: 5, AssetID: 3, SoftwareID: 4, Name: "Zoom Workplace", Version: "6.0", InstallDate: date(2024, time.January, 22), Timestamps: stamp(seededAt)},
	}
}

func (AssetProvider) IPAddresses() []models.IPAddress {
	return []models.IPAddress{
		{ID: 1, Address: "192.168.10.11", SubnetMask: "255.255.255.0", Gateway: "192.168.10.1", Hostname: "PC-0001", AssetID: models.IntPtr(1), UserID: models.IntPtr(1), Timestamps: stamp(seededAt)},
		{ID: 2, Address: "192.168.10.12", SubnetMask: "255.255.255.0", Gateway: "192.168.10.1", Hostname: "PC-0002", AssetID: models.IntPtr(2), UserID: models.IntPtr(2), Timestamps: stamp(seededAt)},
		{ID: 3, Address: "192.168.10.2", SubnetMask: "255.255.255.0", Gateway: "192.168.10.1", Hostname: "SW-CORE-01", AssetID: models.IntPtr(5), Notes: "Management interface", Timestamps: stamp(seededAt)},
		{ID: 4, Address: "192.168.10.50", SubnetMask: "255.255.255.0", Gateway: "192.168.10.1", Timestamps: stamp(seededAt)},
		{ID: 5, Address: "192.168.10.51", SubnetMask: "255.255.255.0", Gateway: "192.168.10.1", Timestamps: stamp(seededAt)},
	}
}
