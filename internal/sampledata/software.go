package sampledata

import (
	"time"

	"itam-service/internal/models"
)

type SoftwareProvider struct{}

func (SoftwareProvider) Catalog() []models.Software {
	return []models.Software{
		{ID: 1, Name: "Microsoft 365 Apps", Version: "2405", Category: "Office", LicenseType: models.LicenseSubscription, Developer: "Microsoft", Description: "Word, Excel, PowerPoint and Outlook", IsPopular: true, Timestamps: stamp(seededAt)},
		{ID: 2, Name: "Adobe Acrobat Pro", Version: "2024", Category: "Document", LicenseType: models.LicenseSubscription, Developer: "Adobe", Description: "PDF editing", IsPopular: true, Timestamps: stamp(seededAt)},
		{ID: 3, Name: "Google Chrome", Version: "125", Category: "Browser", LicenseType: models.LicenseFreeware, Developer: "Google", IsPopular: true, Timestamps: stamp(seededAt)},
		{ID: 4, Name: "Zoom Workplace", Version: "6.0", Category: "Communication", LicenseType: models.LicenseSubscription, Developer: "Zoom Video Communications", Description: "Video meetings", Timestamps: stamp(seededAt)},
		{ID: 5, Name: "7-Zip", Version: "23.01", Category: "Utility", LicenseType: models.LicenseOpenSource, Developer: "Igor Pavlov", Description: "File archiver", Timestamps: stamp(seededAt)},
		{ID: 6, Name: "Visual Studio Code", Version: "1.89", Category: "Development", LicenseType: models.LicenseOpenSource, Developer: "Microsoft", Description: "Code editor", IsPopular: true, Timestamps: stamp(seededAt)},
		{ID: 7, Name: "Autodesk AutoCAD LT", Version: "2024", Category: "Design", LicenseType: models.LicenseCommercial, Developer: "Autodesk", Timestamps: stamp(seededAt)},
	}
}

func (SoftwareProvider) Licenses() []models.SoftwareLicense {
	return []models.SoftwareLicense{
		{ID: 1, SoftwareID: 1, LicenseKey: "M365-E3-0001", TotalSeats: 50, UsedSeats: 42, PurchaseDate: date(2023, time.July, 1), ExpiryDate: datePtr(2024, time.June, 30), Cost: yen(1980000), Timestamps: stamp(seededAt)},
		{ID: 2, SoftwareID: 2, LicenseKey: "ACRO-PRO-7781", TotalSeats: 10, UsedSeats: 10, PurchaseDate: date(2023, time.May, 15), ExpiryDate: datePtr(2024, time.May, 14), Cost: yen(250000), Timestamps: stamp(seededAt)},
		{ID: 3, SoftwareID: 4, LicenseKey: "ZOOM-BIZ-2210", TotalSeats: 20, UsedSeats: 8, PurchaseDate: date(2024, time.January, 10), ExpiryDate: datePtr(2025, time.January, 9), Cost: yen(300000), Timestamps: stamp(seededAt)},
		{ID: 4, SoftwareID: 7, LicenseKey: "ACAD-LT-5521", TotalSeats: 2, UsedSeats: 1, PurchaseDate: date(2022, time.October, 3), Cost: yen(240000), Timestamps: stamp(seededAt)},
	}
}
