// Package cli implements assetctl, the command line front end of the asset
// register. Every invocation starts from the sample register; generated
// documents persist in the documents directory between runs.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"itam-service/internal/config"
	"itam-service/internal/documents"
	"itam-service/internal/repository"
	"itam-service/internal/sampledata"
	"itam-service/internal/service"
)

// Output formats accepted by --format.
const (
	FormatTabular = "tabular"
	FormatJSON    = "json"
	FormatYAML    = "yaml"
)

// App carries everything a command needs.
type App struct {
	Services *service.Services
	Docs     *documents.ManagementService
	PDF      *documents.PDFService
	Export   *documents.ExportService
	Out      io.Writer
	Log      *zap.Logger

	format string
}

// NewApp wires a fresh store and the document subsystem from cfg.
func NewApp(cfg *config.Config, clk clock.Clock, log *zap.Logger) (*App, error) {
	docs, err := documents.NewManagementService(cfg.Documents.Dir, clk, log)
	if err != nil {
		return nil, errors.Trace(err)
	}
	pdf := documents.NewPDFService(docs, cfg.Documents.CompanyName, clk, log)
	store := repository.NewStore(clk, sampledata.New())
	svc := service.New(store, clk, log, service.Options{
		WarningDays: cfg.ExpiryWarningDays,
		Renderer:    pdf,
		Mailer:      documents.NewEmailService(cfg.SMTP, clk, log),
	})
	return &App{
		Services: svc,
		Docs:     docs,
		PDF:      pdf,
		Export:   documents.NewExportService(docs, clk, log),
		Out:      os.Stdout,
		Log:      log,
		format:   FormatTabular,
	}, nil
}

// NewRootCommand builds the assetctl command tree.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "assetctl",
		Short:         "Inspect and maintain the IT asset register",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch app.format {
			case FormatTabular, FormatJSON, FormatYAML:
				return nil
			}
			return errors.NotValidf("output format %q", app.format)
		},
	}
	root.PersistentFlags().StringVar(&app.format, "format", FormatTabular, "Output format: tabular, json or yaml")

	root.AddCommand(
		AssetsCommand(app),
		StatsCommand(app),
		InventoryCommand(app),
		PartnersCommand(app),
		OrdersCommand(app),
		NotificationsCommand(app),
		SoftwareCommand(app),
		DocumentsCommand(app),
	)
	return root
}

// render writes v in the selected format. table is used for tabular output.
func (a *App) render(v any, table func(w io.Writer) error) error {
	switch a.format {
	case FormatJSON:
		enc := json.NewEncoder(a.Out)
		enc.SetIndent("", "  ")
		return errors.Trace(enc.Encode(v))
	case FormatYAML:
		// yaml.v3 ignores json tags; go through JSON so both formats use
		// the same keys
		raw, err := json.Marshal(v)
		if err != nil {
			return errors.Trace(err)
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return errors.Trace(err)
		}
		enc := yaml.NewEncoder(a.Out)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return errors.Trace(err)
		}
		return errors.Trace(enc.Close())
	}
	return table(a.Out)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.Out, format, args...)
}

func parseID(arg, what string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, errors.NotValidf("%s id %q", what, arg)
	}
	return id, nil
}
