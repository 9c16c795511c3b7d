package cli

import (
	"io"

	"github.com/spf13/cobra"

	"itam-service/internal/service"
)

// StatsCommand groups the dashboard reports.
func StatsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Dashboard statistics of the asset register",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "dashboard",
			Short: "Headline counts and values",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runStatsDashboard(app)
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Assets per status",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return renderBreakdown(app, "STATUS", app.Services.AssetStatistics.GetStatusBreakdown())
			},
		},
		&cobra.Command{
			Use:   "types",
			Short: "Assets per asset type",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return renderBreakdown(app, "TYPE", app.Services.AssetStatistics.GetTypeBreakdown())
			},
		},
		&cobra.Command{
			Use:   "departments",
			Short: "Assets per department",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return renderBreakdown(app, "DEPARTMENT", app.Services.AssetStatistics.GetDepartmentBreakdown())
			},
		},
		&cobra.Command{
			Use:   "warranty",
			Short: "Warranty coverage and the warranties about to expire",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runStatsWarranty(app)
			},
		},
	)
	return cmd
}

func runStatsDashboard(app *App) error {
	stats := app.Services.AssetStatistics.GetDashboardStatistics()
	return app.render(stats, func(w io.Writer) error {
		return keyValues(w, [][2]any{
			{"Total assets", stats.TotalAssets},
			{"In use", stats.InUseAssets},
			{"Available", stats.AvailableAssets},
			{"In repair", stats.InRepairAssets},
			{"Broken", stats.BrokenAssets},
			{"Disposed", stats.DisposedAssets},
			{"Usage rate %", stats.UsageRate},
			{"Purchase value", stats.TotalPurchaseValue},
			{"Current value", stats.TotalCurrentValue},
			{"Expiring warranties", stats.ExpiringWarranties},
		})
	})
}

func renderBreakdown(app *App, heading string, rows []service.Breakdown) error {
	return app.render(rows, func(w io.Writer) error {
		t := newTable(w, heading, "COUNT", "PERCENT")
		for _, b := range rows {
			t.row(b.Label, b.Count, b.Percentage)
		}
		return t.flush()
	})
}

func runStatsWarranty(app *App) error {
	ws := app.Services.AssetStatistics.GetWarrantyStatus()
	return app.render(ws, func(w io.Writer) error {
		if err := keyValues(w, [][2]any{
			{"Active", ws.Active},
			{"Expiring soon", ws.ExpiringSoon},
			{"Expired", ws.Expired},
			{"No warranty", ws.NoWarranty},
		}); err != nil {
			return err
		}
		if len(ws.Expiring) == 0 {
			return nil
		}
		app.printf("\n")
		t := newTable(w, "NUMBER", "NAME", "USER", "EXPIRES")
		for _, a := range ws.Expiring {
			t.row(a.AssetNumber, a.Name, a.UserName, a.WarrantyExpiry)
		}
		return t.flush()
	})
}
