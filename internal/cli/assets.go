package cli

import (
	"context"
	"io"

	"github.com/juju/errors"
	"github.com/spf13/cobra"

	"itam-service/internal/models"
	"itam-service/internal/service"
	"itam-service/pkg/importer"
)

// AssetsCommand groups the asset register commands.
func AssetsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assets",
		Short: "List, search, export and import assets",
	}
	cmd.AddCommand(
		assetsListCommand(app),
		assetsGetCommand(app),
		assetsSearchCommand(app),
		assetsExportCommand(app),
		assetsImportCommand(app),
	)
	return cmd
}

func assetsListCommand(app *App) *cobra.Command {
	var (
		filters models.AssetFilters
		status  string
		page    int
		perPage int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List assets one page at a time",
		Long: `List assets with optional filters.

Examples:
  # Second page of assets in use, newest purchase first
  assetctl assets list --status=in_use --sort=-purchase_date --page=2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filters.Status = models.AssetStatus(status)
			return runAssetsList(app, filters, page, perPage)
		},
	}

	cmd.Flags().StringVar(&filters.Keyword, "keyword", "", "Match name, number, serial, maker or model")
	cmd.Flags().StringVar(&status, "status", "", "Only assets with this status")
	cmd.Flags().IntVar(&filters.TypeID, "type", 0, "Only assets of this type id")
	cmd.Flags().IntVar(&filters.DepartmentID, "department", 0, "Only assets of this department id")
	cmd.Flags().IntVar(&filters.LocationID, "location", 0, "Only assets at this location id")
	cmd.Flags().StringVar(&filters.Sort, "sort", "", "Comma separated sort keys, prefix - for descending")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&perPage, "per-page", 20, "Assets per page")

	return cmd
}

func runAssetsList(app *App, filters models.AssetFilters, page, perPage int) error {
	if filters.Status != "" && !filters.Status.Valid() {
		return errors.NotValidf("status %q", filters.Status)
	}
	result := app.Services.AssetSearch.GetPaginatedAssets(filters, page, perPage)
	return app.render(result, func(w io.Writer) error {
		t := newTable(w, "ID", "NUMBER", "NAME", "TYPE", "STATUS", "DEPARTMENT", "LOCATION", "USER", "PRICE")
		for _, a := range result.Items {
			t.row(a.ID, a.AssetNumber, a.Name, a.TypeName, a.StatusName, a.DepartmentName, a.LocationName, a.UserName, a.PurchasePrice)
		}
		if err := t.flush(); err != nil {
			return err
		}
		p := result.Pagination
		app.printf("\npage %d of %d, %d assets\n", p.Page, p.TotalPages, p.TotalItems)
		return nil
	})
}

func assetsGetCommand(app *App) *cobra.Command {
	var method string

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one asset with its depreciation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "asset")
			if err != nil {
				return err
			}
			return runAssetsGet(app, id, method)
		},
	}

	cmd.Flags().StringVar(&method, "method", "", "Depreciation method code (default straight_line)")

	return cmd
}

type assetDetail struct {
	models.AssetView
	Depreciation service.Depreciation `json:"depreciation"`
}

func runAssetsGet(app *App, id int, method string) error {
	asset, ok := app.Services.AssetCrud.GetAsset(id)
	if !ok {
		return errors.NotFoundf("asset %d", id)
	}
	dep, _, err := app.Services.AssetSpecial.CalculateDepreciation(id, method)
	if err != nil {
		return errors.Trace(err)
	}
	return app.render(assetDetail{AssetView: asset, Depreciation: dep}, func(w io.Writer) error {
		return keyValues(w, [][2]any{
			{"Asset number", asset.AssetNumber},
			{"Name", asset.Name},
			{"Type", asset.TypeName},
			{"Status", asset.StatusName},
			{"Department", asset.DepartmentName},
			{"Location", asset.LocationName},
			{"User", asset.UserName},
			{"Manufacturer", asset.Manufacturer},
			{"Model", asset.Model},
			{"Serial number", asset.SerialNumber},
			{"Purchased", asset.PurchaseDate},
			{"Purchase price", asset.PurchasePrice},
			{"Warranty expiry", asset.WarrantyExpiry},
			{"Depreciation", dep.Method},
			{"Accumulated", dep.Accumulated},
			{"Book value", dep.BookValue},
		})
	})
}

func assetsSearchCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "search <keyword>",
		Short: "Find assets by name, number, serial, maker or model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssetsSearch(app, args[0])
		},
	}
}

func runAssetsSearch(app *App, keyword string) error {
	found := app.Services.AssetSearch.SearchAssets(keyword)
	return app.render(found, func(w io.Writer) error {
		t := newTable(w, "ID", "NUMBER", "NAME", "SERIAL", "STATUS")
		for _, a := range found {
			t.row(a.ID, a.AssetNumber, a.Name, a.SerialNumber, string(a.Status))
		}
		return t.flush()
	})
}

func assetsExportCommand(app *App) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the register to an XLSX workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssetsExport(app, models.AssetStatus(status))
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Only export assets with this status")

	return cmd
}

func runAssetsExport(app *App, status models.AssetStatus) error {
	if status != "" && !status.Valid() {
		return errors.NotValidf("status %q", status)
	}
	var views []models.AssetView
	for _, a := range app.Services.AssetCrud.ListAssets() {
		if status == "" || a.Status == status {
			views = append(views, a)
		}
	}
	doc, ok := app.Export.ExportAssets(views)
	if !ok {
		return errors.New("asset export failed")
	}
	return renderDocument(app, doc)
}

func assetsImportCommand(app *App) *cobra.Command {
	var opts importer.ImportOptions

	cmd := &cobra.Command{
		Use:   "import <file.xlsx>",
		Short: "Create or update assets from an XLSX workbook",
		Long: `Import assets from a workbook. Rows are matched to existing assets by
asset number, then serial number; matches are updated, the rest created.

Examples:
  # Check a workbook without touching the register
  assetctl assets import register.xlsx --dry-run

  # Import with a custom column mapping
  assetctl assets import register.xlsx --mapping=configs/mapping/assets.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssetsImport(cmd.Context(), app, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.MappingPath, "mapping", "", "YAML column mapping (default: the export layout)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Validate rows without storing them")
	cmd.Flags().IntVar(&opts.MaxErrors, "max-errors", importer.DefaultMaxErrors, "Stop after this many failed rows")

	return cmd
}

func runAssetsImport(ctx context.Context, app *App, path string, opts importer.ImportOptions) error {
	summary, importErr := app.Services.AssetImport.Import(ctx, path, opts)
	err := app.render(summary, func(w io.Writer) error {
		t := newTable(w, "SHEET", "INSERTED", "UPDATED", "SKIPPED", "ERRORS")
		for _, s := range summary.Sheets {
			t.row(s.Name, s.Inserted, s.Updated, s.Skipped, s.Errors)
		}
		t.row("total", summary.Inserted, summary.Updated, summary.Skipped, summary.Errors)
		if err := t.flush(); err != nil {
			return err
		}
		for _, s := range summary.Sheets {
			for _, sample := range s.Samples {
				app.printf("%s row %d: %s\n", sample.Sheet, sample.Row, sample.Message)
			}
		}
		if summary.DryRun {
			app.printf("dry run, nothing stored\n")
		}
		return nil
	})
	if importErr != nil {
		return errors.Annotatef(importErr, "importing %s", path)
	}
	return err
}
