package cli

import (
	"io"

	"github.com/spf13/cobra"

	"itam-service/internal/models"
)

// NotificationsCommand groups the notification centre commands.
func NotificationsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Warranty, license and contract reminders",
	}
	cmd.AddCommand(notificationsListCommand(app), notificationsGenerateCommand(app))
	return cmd
}

func notificationsListCommand(app *App) *cobra.Command {
	var (
		filters  models.NotificationFilters
		kind     string
		priority string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filters.Type = models.NotificationType(kind)
			filters.Priority = models.Priority(priority)
			return runNotificationsList(app, filters)
		},
	}

	cmd.Flags().BoolVar(&filters.UnreadOnly, "unread", false, "Only unread notifications")
	cmd.Flags().StringVar(&kind, "type", "", "warranty_expiry, license_expiry, contract_expiry, inventory, maintenance or system")
	cmd.Flags().StringVar(&priority, "priority", "", "high, medium or low")
	cmd.Flags().StringVar(&filters.Keyword, "keyword", "", "Match title or message")

	return cmd
}

func runNotificationsList(app *App, filters models.NotificationFilters) error {
	list := app.Services.Notifications.ListNotifications(filters)
	return app.render(list, func(w io.Writer) error {
		t := newTable(w, "ID", "PRIORITY", "TYPE", "TITLE", "READ", "CREATED")
		for _, n := range list {
			t.row(n.ID, string(n.Priority), string(n.Type), n.Title, n.IsRead, n.CreatedAt)
		}
		if err := t.flush(); err != nil {
			return err
		}
		app.printf("\n%d unread\n", app.Services.Notifications.GetUnreadCount())
		return nil
	})
}

type generateResult struct {
	ContractsRefreshed int `json:"contracts_refreshed"`
	Created            int `json:"created"`
}

func notificationsGenerateCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Raise reminders for warranties, licenses and contracts about to expire",
		Long: `Refresh contract statuses from their end dates, then create one
notification per warranty, license or contract that expires within the
warning window and has no reminder yet.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res := generateResult{
				ContractsRefreshed: app.Services.Contracts.RefreshStatuses(),
				Created:            app.Services.Notifications.GenerateExpiryNotifications(),
			}
			return app.render(res, func(w io.Writer) error {
				app.printf("%d contract statuses refreshed, %d notifications created\n",
					res.ContractsRefreshed, res.Created)
				return nil
			})
		},
	}
}
