package cli

import (
	"io"

	"github.com/juju/errors"
	"github.com/spf13/cobra"

	"itam-service/internal/models"
	"itam-service/internal/service"
)

// InventoryCommand groups the inventory and discrepancy commands.
func InventoryCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Inventory campaigns and the discrepancies they found",
	}
	cmd.AddCommand(
		inventoryListCommand(app),
		&cobra.Command{
			Use:   "stats",
			Short: "Inventory progress and discrepancy counts",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runInventoryStats(app)
			},
		},
		inventoryReportCommand(app),
		inventoryDiscrepanciesCommand(app),
		inventoryResolveCommand(app),
	)
	return cmd
}

func inventoryListCommand(app *App) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List inventories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInventoryList(app, models.InventoryStatus(status))
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "planned, in_progress, completed or cancelled")

	return cmd
}

func runInventoryList(app *App, status models.InventoryStatus) error {
	list := app.Services.Inventory.ListInventories(status)
	return app.render(list, func(w io.Writer) error {
		t := newTable(w, "ID", "NAME", "STATUS", "START", "END", "PROGRESS", "DISCREPANCIES")
		for _, inv := range list {
			t.row(inv.ID, inv.Name, string(inv.Status), inv.StartDate, inv.EndDate,
				inv.ProgressRate(), inv.DiscrepancyCount)
		}
		return t.flush()
	})
}

type inventoryStats struct {
	Inventories   service.InventoryStatistics   `json:"inventories"`
	Discrepancies service.DiscrepancyStatistics `json:"discrepancies"`
}

func runInventoryStats(app *App) error {
	inv := app.Services.InventoryStatistics.GetInventoryStatistics()
	disc := app.Services.InventoryStatistics.GetDiscrepancyStatistics()
	return app.render(inventoryStats{Inventories: inv, Discrepancies: disc}, func(w io.Writer) error {
		return keyValues(w, [][2]any{
			{"Inventories", inv.Total},
			{"Active", inv.Active},
			{"Average progress %", inv.AverageProgress},
			{"Discrepancies", disc.Total},
			{"Open", disc.Open},
			{"Resolved", disc.Resolved},
			{"Resolution rate %", disc.ResolutionRate},
			{"Open critical", disc.OpenBySeverity[string(models.SeverityCritical)]},
		})
	})
}

func inventoryReportCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "report <id>",
		Short: "Render the PDF report of an inventory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "inventory")
			if err != nil {
				return err
			}
			return runInventoryReport(app, id)
		},
	}
}

func runInventoryReport(app *App, id int) error {
	view, ok := app.Services.Inventory.GetInventoryDetail(id)
	if !ok {
		return errors.NotFoundf("inventory %d", id)
	}
	list := app.Services.Discrepancies.ListDiscrepancies(models.DiscrepancyFilters{InventoryID: id})
	doc, ok := app.PDF.InventoryReport(view, list)
	if !ok {
		return errors.Errorf("rendering report of inventory %d failed", id)
	}
	return renderDocument(app, doc)
}

func inventoryDiscrepanciesCommand(app *App) *cobra.Command {
	var (
		filters  models.DiscrepancyFilters
		severity string
		status   string
		export   bool
	)

	cmd := &cobra.Command{
		Use:   "discrepancies",
		Short: "List discrepancies",
		Long: `List discrepancies, optionally narrowed and exported to XLSX.

Examples:
  # Open critical findings of inventory 2
  assetctl inventory discrepancies --inventory=2 --severity=critical --status=pending

  # Export everything
  assetctl inventory discrepancies --export`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filters.Severity = models.Severity(severity)
			filters.Status = models.DiscrepancyStatus(status)
			return runInventoryDiscrepancies(app, filters, export)
		},
	}

	cmd.Flags().IntVar(&filters.InventoryID, "inventory", 0, "Only discrepancies of this inventory")
	cmd.Flags().StringVar(&severity, "severity", "", "low, medium, high or critical")
	cmd.Flags().StringVar(&status, "status", "", "pending, investigating, confirmed or resolved")
	cmd.Flags().StringVar(&filters.Keyword, "keyword", "", "Match asset number, asset name or description")
	cmd.Flags().BoolVar(&export, "export", false, "Write the list to an XLSX workbook")

	return cmd
}

func runInventoryDiscrepancies(app *App, filters models.DiscrepancyFilters, export bool) error {
	list := app.Services.Discrepancies.ListDiscrepancies(filters)
	if export {
		doc, ok := app.Export.ExportDiscrepancies(list)
		if !ok {
			return errors.New("discrepancy export failed")
		}
		return renderDocument(app, doc)
	}
	return app.render(list, func(w io.Writer) error {
		t := newTable(w, "ID", "INVENTORY", "ASSET", "TYPE", "SEVERITY", "STATUS", "FOUND")
		for _, d := range list {
			t.row(d.ID, d.InventoryID, d.AssetNumber, string(d.Type), string(d.Severity), string(d.Status), d.DiscoveryDate)
		}
		return t.flush()
	})
}

func inventoryResolveCommand(app *App) *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "resolve <id>...",
		Short: "Resolve one or more discrepancies",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int, 0, len(args))
			for _, arg := range args {
				id, err := parseID(arg, "discrepancy")
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}
			return runInventoryResolve(app, ids, notes)
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "Resolution notes")

	return cmd
}

type resolveResult struct {
	Resolved int   `json:"resolved"`
	Missing  []int `json:"missing"`
}

func runInventoryResolve(app *App, ids []int, notes string) error {
	resolved, missing := app.Services.Discrepancies.BulkResolve(ids, notes)
	res := resolveResult{Resolved: resolved, Missing: missing}
	err := app.render(res, func(w io.Writer) error {
		app.printf("resolved %d of %d discrepancies\n", resolved, len(ids))
		return nil
	})
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return errors.NotFoundf("discrepancies %v", missing)
	}
	return nil
}
