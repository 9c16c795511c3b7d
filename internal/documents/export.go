package documents

import (
	"path/filepath"

	"github.com/juju/clock"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v3"
	"go.uber.org/zap"

	"itam-service/internal/models"
)

// ExportService writes registers to XLSX workbooks.
type ExportService struct {
	registry *ManagementService
	clock    clock.Clock
	log      *zap.Logger
}

func NewExportService(registry *ManagementService, clk clock.Clock, log *zap.Logger) *ExportService {
	return &ExportService{registry: registry, clock: clk, log: log}
}

// AssetHeaders are the column titles of an asset export.
var AssetHeaders = []string{
	"Asset Number", "Name", "Type", "Status", "Department", "Location", "User",
	"Manufacturer", "Model", "Serial Number", "Purchase Date", "Purchase Price",
	"Current Value", "Warranty Expiry",
}

// ExportAssets writes one row per asset. The headers match the default
// import mapping so an export can be edited and imported again.
func (s *ExportService) ExportAssets(assets []models.AssetView) (models.GeneratedDocument, bool) {
	return s.write(models.DocumentAssetExport, "assets", "Assets", AssetHeaders, func(sheet *xlsx.Sheet) {
		for _, a := range assets {
			row := sheet.AddRow()
			stringCells(row, a.AssetNumber, a.Name, a.TypeName, a.StatusName, a.DepartmentName,
				a.LocationName, a.UserName, a.Manufacturer, a.Model, a.SerialNumber,
				a.PurchaseDate.Format(models.DateLayout))
			moneyCell(row, a.PurchasePrice)
			moneyCell(row, a.CurrentValue)
			stringCells(row, optDate(a.WarrantyExpiry))
		}
	})
}

var discrepancyHeaders = []string{
	"Inventory", "Asset Number", "Asset Name", "Type", "Severity", "Status",
	"Discovered", "Expected", "Actual", "Assigned To", "Resolution Notes",
}

func (s *ExportService) ExportDiscrepancies(list []models.Discrepancy) (models.GeneratedDocument, bool) {
	return s.write(models.DocumentDiscrepancyExport, "discrepancies", "Discrepancies", discrepancyHeaders, func(sheet *xlsx.Sheet) {
		for _, d := range list {
			row := sheet.AddRow()
			row.AddCell().SetInt(d.InventoryID)
			stringCells(row, d.AssetNumber, d.AssetName, string(d.Type), string(d.Severity), string(d.Status),
				d.DiscoveryDate.Format(models.DateLayout), d.ExpectedValue, d.ActualValue, d.AssignedTo,
				d.ResolutionNotes)
		}
	})
}

func (s *ExportService) write(docType models.DocumentType, number, sheetName string, headers []string, fill func(*xlsx.Sheet)) (models.GeneratedDocument, bool) {
	path := filepath.Join(s.registry.Dir(), fileName(docType, number, s.clock.Now(), "xlsx"))

	file := xlsx.NewFile()
	sheet, err := file.AddSheet(sheetName)
	if err != nil {
		s.log.Error("creating export sheet failed", zap.String("sheet", sheetName), zap.Error(err))
		return models.GeneratedDocument{}, false
	}
	stringCells(sheet.AddRow(), headers...)
	fill(sheet)

	if err := file.Save(path); err != nil {
		s.log.Error("writing export failed", zap.String("path", path), zap.Error(err))
		return models.GeneratedDocument{}, false
	}
	doc, err := s.registry.Register(docType, number, path)
	if err != nil {
		s.log.Error("registering export failed", zap.String("path", path), zap.Error(err))
		return models.GeneratedDocument{}, false
	}
	s.log.Info("export written", zap.String("file", doc.FileName), zap.Int("rows", sheet.MaxRow-1))
	return doc, true
}

func stringCells(row *xlsx.Row, values ...string) {
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}

func moneyCell(row *xlsx.Row, d decimal.Decimal) {
	row.AddCell().SetFloat(d.InexactFloat64())
}
