package cli

import (
	"io"
	"time"

	"github.com/juju/errors"
	"github.com/spf13/cobra"

	"itam-service/internal/models"
)

// DocumentsCommand groups the generated document commands.
func DocumentsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "documents",
		Short: "PDFs and exports written by earlier commands",
	}
	cmd.AddCommand(documentsListCommand(app), documentsCleanupCommand(app))
	return cmd
}

func documentsListCommand(app *App) *cobra.Command {
	var docType string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List generated documents, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDocumentsList(app, models.DocumentType(docType))
		},
	}

	cmd.Flags().StringVar(&docType, "type", "", "purchase_order, quotation_request, inventory_report, asset_export or discrepancy_export")

	return cmd
}

func runDocumentsList(app *App, docType models.DocumentType) error {
	list := app.Docs.List(docType)
	return app.render(list, func(w io.Writer) error {
		t := newTable(w, "TYPE", "NUMBER", "FILE", "SIZE", "CREATED")
		for _, d := range list {
			t.row(string(d.Type), d.BusinessNumber, d.FileName, d.Size, d.CreatedAt.Format("2006-01-02 15:04"))
		}
		if err := t.flush(); err != nil {
			return err
		}
		app.printf("\n%d documents in %s\n", len(list), app.Docs.Dir())
		return nil
	})
}

func documentsCleanupCommand(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete documents older than the given age",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if days <= 0 {
				return errors.NotValidf("--days %d", days)
			}
			removed := app.Docs.Cleanup(time.Duration(days) * 24 * time.Hour)
			app.printf("%d documents removed\n", removed)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 90, "Maximum age in days")

	return cmd
}

// renderDocument reports a file a command has just written.
func renderDocument(app *App, doc models.GeneratedDocument) error {
	return app.render(doc, func(w io.Writer) error {
		app.printf("wrote %s (%d bytes)\n", doc.Path, doc.Size)
		return nil
	})
}
