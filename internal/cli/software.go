package cli

import (
	"io"

	"github.com/spf13/cobra"

	"itam-service/internal/models"
	"itam-service/internal/service"
)

// SoftwareCommand groups the software catalog commands.
func SoftwareCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "software",
		Short: "Software catalog and licenses",
	}
	cmd.AddCommand(softwareListCommand(app), softwareLicensesCommand(app))
	return cmd
}

func softwareListCommand(app *App) *cobra.Command {
	var (
		filters     models.SoftwareFilters
		licenseType string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog entries with their install counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filters.LicenseType = models.LicenseType(licenseType)
			return runSoftwareList(app, filters)
		},
	}

	cmd.Flags().StringVar(&filters.Keyword, "keyword", "", "Match name, developer or description")
	cmd.Flags().StringVar(&filters.Category, "category", "", "Only this category")
	cmd.Flags().StringVar(&licenseType, "license-type", "", "commercial, subscription, open_source or freeware")
	cmd.Flags().BoolVar(&filters.PopularOnly, "popular", false, "Only popular software")
	cmd.Flags().StringVar(&filters.Sort, "sort", "", "Comma separated sort keys, prefix - for descending")

	return cmd
}

func runSoftwareList(app *App, filters models.SoftwareFilters) error {
	list := app.Services.Software.ListSoftware(filters)
	return app.render(list, func(w io.Writer) error {
		t := newTable(w, "ID", "NAME", "VERSION", "CATEGORY", "LICENSE", "INSTALLS")
		for _, sw := range list {
			t.row(sw.ID, sw.Name, sw.Version, sw.Category, string(sw.LicenseType),
				app.Services.Software.GetInstallCount(sw.ID))
		}
		return t.flush()
	})
}

func softwareLicensesCommand(app *App) *cobra.Command {
	var (
		softwareID   int
		expiringDays int
	)

	cmd := &cobra.Command{
		Use:   "licenses",
		Short: "Seat usage of every license",
		Long: `Show seat usage per license. With --expiring only the licenses that
expire within the given number of days are listed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if expiringDays > 0 {
				return runSoftwareExpiring(app, expiringDays)
			}
			return runSoftwareLicenses(app, softwareID)
		},
	}

	cmd.Flags().IntVar(&softwareID, "software", 0, "Only licenses of this software id")
	cmd.Flags().IntVar(&expiringDays, "expiring", 0, "List licenses expiring within this many days")

	return cmd
}

func runSoftwareLicenses(app *App, softwareID int) error {
	rows := []service.LicenseUtilization{}
	for _, u := range app.Services.Software.GetLicenseUtilization() {
		if softwareID == 0 || u.SoftwareID == softwareID {
			rows = append(rows, u)
		}
	}
	return app.render(rows, func(w io.Writer) error {
		t := newTable(w, "ID", "SOFTWARE", "KEY", "SEATS", "USED", "FREE", "USAGE", "EXPIRED")
		for _, u := range rows {
			t.row(u.LicenseID, u.SoftwareName, u.LicenseKey, u.TotalSeats, u.UsedSeats,
				u.AvailableSeats, u.UtilizationRate, u.Expired)
		}
		return t.flush()
	})
}

func runSoftwareExpiring(app *App, days int) error {
	list := app.Services.Software.GetExpiringLicenses(days)
	return app.render(list, func(w io.Writer) error {
		t := newTable(w, "ID", "SOFTWARE", "KEY", "SEATS", "EXPIRES")
		for _, l := range list {
			name := ""
			if sw, ok := app.Services.Software.GetSoftware(l.SoftwareID); ok {
				name = sw.Name
			}
			t.row(l.ID, name, l.LicenseKey, l.TotalSeats, l.ExpiryDate)
		}
		return t.flush()
	})
}
