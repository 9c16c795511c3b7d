package sampledata

import (
	"github.com/shopspring/decimal"

	"itam-service/internal/models"
)

// SettingsProvider supplies the reference tables. Asset types and statuses
// are defined here only.
type SettingsProvider struct{}

func master(id int, code, name, description string) models.MasterRecord {
	return models.MasterRecord{
		ID:          id,
		Code:        code,
		Name:        name,
		Description: description,
		SortOrder:   id * 10,
		IsActive:    true,
		Timestamps:  stamp(seededAt),
	}
}

func (SettingsProvider) AssetTypes() []models.AssetType {
	return []models.AssetType{
		{MasterRecord: master(1, "laptop", "Laptop", "Portable PC"), Category: "pc", DefaultUsefulLife: 48, IsPC: true},
		{MasterRecord: master(2, "desktop", "Desktop PC", "Stationary PC"), Category: "pc", DefaultUsefulLife: 60, IsPC: true},
		{MasterRecord: master(3, "printer", "Printer", "Printers and multifunction devices"), Category: "peripheral", DefaultUsefulLife: 60},
		{MasterRecord: master(4, "network", "Network Equipment", "Switches, routers and access points"), Category: "infrastructure", DefaultUsefulLife: 72},
		{MasterRecord: master(5, "monitor", "Monitor", "Displays"), Category: "peripheral", DefaultUsefulLife: 60},
	}
}

func (SettingsProvider) Statuses() []models.StatusMaster {
	return []models.StatusMaster{
		{MasterRecord: master(1, string(models.AssetStatusInUse), "In use", "Assigned and in service"), Color: "green"},
		{MasterRecord: master(2, string(models.AssetStatusAvailable), "Available", "In stock, ready to assign"), Color: "blue"},
		{MasterRecord: master(3, string(models.AssetStatusInRepair), "In repair", "Sent for repair"), Color: "orange"},
		{MasterRecord: master(4, string(models.AssetStatusBroken), "Broken", "Out of service"), Color: "red"},
		{MasterRecord: master(5, string(models.AssetStatusDisposed), "Disposed", "Retired from the register"), Color: "gray"},
	}
}

func (SettingsProvider) Locations() []models.Location {
	return []models.Location{
		{MasterRecord: master(1, "HQ-3F", "Head Office 3F", ""), Building: "Head Office", Floor: "3F", Address: "1-1-1 Marunouchi, Chiyoda-ku, Tokyo"},
		{MasterRecord: master(2, "HQ-4F", "Head Office 4F", ""), Building: "Head Office", Floor: "4F", Address: "1-1-1 Marunouchi, Chiyoda-ku, Tokyo"},
		{MasterRecord: master(3, "SRV", "Server Room", "Restricted access"), Building: "Head Office", Floor: "B1", Address: "1-1-1 Marunouchi, Chiyoda-ku, Tokyo"},
		{MasterRecord: master(4, "WH", "Warehouse", "Spare stock"), Building: "Annex", Floor: "1F", Address: "2-3-4 Koto, Koto-ku, Tokyo"},
		{MasterRecord: master(5, "OSAKA", "Osaka Branch", ""), Building: "Osaka Office", Floor: "7F", Address: "3-5-1 Umeda, Kita-ku, Osaka"},
	}
}

func (SettingsProvider) Departments() []models.Department {
	return []models.Department{
		{MasterRecord: master(1, "IT", "IT", "Information systems"), Manager: "Taro Yamada", CostCenter: "CC-100"},
		{MasterRecord: master(2, "SALES", "Sales", "Domestic sales"), Manager: "Hanako Sato", CostCenter: "CC-200"},
		{MasterRecord: master(3, "GA", "General Affairs", ""), Manager: "Ichiro Suzuki", CostCenter: "CC-300"},
		{MasterRecord: master(4, "FIN", "Finance", "Accounting and treasury"), Manager: "Yuki Tanaka", CostCenter: "CC-400"},
	}
}

func (SettingsProvider) DepreciationMethods() []models.DepreciationMethod {
	return []models.DepreciationMethod{
		{MasterRecord: master(1, "straight_line", "Straight line", "Equal amount each year"), Rate: decimal.Zero},
		{MasterRecord: master(2, "declining_balance", "Declining balance", "Fixed rate on the remaining value"), Rate: decimal.RequireFromString("0.25")},
	}
}

func (SettingsProvider) Users() []models.User {
	return []models.User{
		{ID: 1, Name: "Taro Yamada", Email: "t.yamada@example.co.jp", EmployeeNumber: "E1001", DepartmentID: 1, IsActive: true, Timestamps: stamp(seededAt)},
		{ID: 2, Name: "Hanako Sato", Email: "h.sato@example.co.jp", EmployeeNumber: "E1002", DepartmentID: 2, IsActive: true, Timestamps: stamp(seededAt)},
		{ID: 3, Name: "Ichiro Suzuki", Email: "i.suzuki@example.co.jp", EmployeeNumber: "E1003", DepartmentID: 3, IsActive: true, Timestamps: stamp(seededAt)},
		{ID: 4, Name: "Yuki Tanaka", Email: "y.tanaka@example.co.jp", EmployeeNumber: "E1004", DepartmentID: 4, IsActive: true, Timestamps: stamp(seededAt)},
		{ID: 5, Name: "Ken Watanabe", Email: "k.watanabe@example.co.jp", EmployeeNumber: "E1005", DepartmentID: 1, IsActive: true, Timestamps: stamp(seededAt)},
	}
}
