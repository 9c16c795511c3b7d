package cli

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/juju/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"itam-service/internal/models"
)

// PartnersCommand groups the business partner commands.
func PartnersCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "partners",
		Short: "Suppliers, maintainers, lessors and vendors",
	}
	cmd.AddCommand(
		partnersListCommand(app),
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show a partner with its contracts, orders and documents",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0], "partner")
				if err != nil {
					return err
				}
				return runPartnersGet(app, id)
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a partner without active contracts or open orders",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0], "partner")
				if err != nil {
					return err
				}
				return runPartnersDelete(app, id)
			},
		},
	)
	return cmd
}

func partnersListCommand(app *App) *cobra.Command {
	var (
		filters models.PartnerFilters
		kind    string
		status  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List partners",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filters.Type = models.PartnerType(kind)
			filters.Status = models.PartnerStatus(status)
			return runPartnersList(app, filters)
		},
	}

	cmd.Flags().StringVar(&filters.Keyword, "keyword", "", "Match name, contact or email")
	cmd.Flags().StringVar(&kind, "type", "", "supplier, maintenance, leasing, software_vendor or service_provider")
	cmd.Flags().StringVar(&status, "status", "", "active or inactive")
	cmd.Flags().StringVar(&filters.Sort, "sort", "", "Comma separated sort keys, prefix - for descending")

	return cmd
}

func runPartnersList(app *App, filters models.PartnerFilters) error {
	list := app.Services.Partners.ListPartners(filters)
	return app.render(list, func(w io.Writer) error {
		t := newTable(w, "ID", "NAME", "TYPE", "STATUS", "CONTACT", "EMAIL")
		for _, p := range list {
			t.row(p.ID, p.Name, string(p.Type), string(p.Status), p.ContactPerson, p.Email)
		}
		return t.flush()
	})
}

func runPartnersGet(app *App, id int) error {
	detail, ok := app.Services.AssetPartner.GetPartnerDetail(id)
	if !ok {
		return errors.NotFoundf("partner %d", id)
	}
	return app.render(detail, func(w io.Writer) error {
		if err := keyValues(w, [][2]any{
			{"Name", detail.Name},
			{"Type", string(detail.Type)},
			{"Status", string(detail.Status)},
			{"Contact", detail.ContactPerson},
			{"Email", detail.Email},
			{"Phone", detail.Phone},
			{"Contracts", len(detail.Contracts)},
			{"Documents", len(detail.Documents)},
			{"Quotation requests", len(detail.QuotationRequests)},
			{"Sent emails", len(detail.SentEmails)},
		}); err != nil {
			return err
		}
		if len(detail.PurchaseOrders) == 0 {
			return nil
		}
		app.printf("\n")
		t := newTable(w, "ORDER", "STATUS", "DATE", "TOTAL")
		for _, o := range detail.PurchaseOrders {
			t.row(o.OrderNumber, string(o.Status), o.OrderDate, o.Total)
		}
		return t.flush()
	})
}

func runPartnersDelete(app *App, id int) error {
	ok, err := app.Services.Partners.DeletePartner(id)
	if err != nil {
		return errors.Trace(err)
	}
	if !ok {
		return errors.NotFoundf("partner %d", id)
	}
	app.printf("partner %d deleted\n", id)
	return nil
}

// OrdersCommand groups purchase order and quotation request commands.
func OrdersCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Purchase orders and quotation requests",
	}
	cmd.AddCommand(ordersCreateCommand(app), ordersSendCommand(app))
	return cmd
}

func ordersCreateCommand(app *App) *cobra.Command {
	var (
		partnerID int
		items     []string
		notes     string
		quotation bool
		send      bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Draft a purchase order or quotation request and render its PDF",
		Long: `Draft a purchase order (or with --quotation a quotation request).
Items are given as name:quantity:unit_price; quotation items may omit the price.

Examples:
  # Order three laptops and send the PDF to the partner
  assetctl orders create --partner=1 --item="Dell Latitude 5440:3:165000" --send`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := parseItems(items)
			if err != nil {
				return err
			}
			req := models.CreateOrderRequest{PartnerID: partnerID, Items: lines, Notes: notes}
			return runOrdersCreate(cmd.Context(), app, req, quotation, send)
		},
	}

	cmd.Flags().IntVar(&partnerID, "partner", 0, "Partner id")
	cmd.Flags().StringArrayVar(&items, "item", nil, "Order line as name:quantity:unit_price (repeatable)")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes printed on the document")
	cmd.Flags().BoolVar(&quotation, "quotation", false, "Create a quotation request instead of an order")
	cmd.Flags().BoolVar(&send, "send", false, "Email the document to the partner")
	_ = cmd.MarkFlagRequired("partner")

	return cmd
}

// parseItems reads name:quantity[:unit_price] order lines.
func parseItems(lines []string) ([]models.OrderItem, error) {
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		parts := strings.Split(line, ":")
		if len(parts) < 2 || len(parts) > 3 {
			return nil, errors.NotValidf("item %q", line)
		}
		qty, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, errors.NotValidf("quantity of item %q", line)
		}
		item := models.OrderItem{Name: strings.TrimSpace(parts[0]), Quantity: qty}
		if len(parts) == 3 {
			if item.UnitPrice, err = decimal.NewFromString(strings.TrimSpace(parts[2])); err != nil {
				return nil, errors.NotValidf("unit price of item %q", line)
			}
		}
		items = append(items, item)
	}
	return items, nil
}

type orderResult struct {
	Number   string                    `json:"number"`
	Total    decimal.Decimal           `json:"total"`
	Document *models.GeneratedDocument `json:"document,omitempty"`
	Email    *models.SentEmail         `json:"email,omitempty"`
}

func runOrdersCreate(ctx context.Context, app *App, req models.CreateOrderRequest, quotation, send bool) error {
	purchase := app.Services.AssetPurchase

	var (
		res orderResult
		id  int
	)
	if quotation {
		q, err := purchase.CreateQuotationRequest(req)
		if err != nil {
			return errors.Trace(err)
		}
		id, res.Number = q.ID, q.RequestNumber
		if !send {
			partner, _ := app.Services.Partners.GetPartner(q.PartnerID)
			if doc, ok := app.PDF.QuotationRequest(q, partner); ok {
				res.Document = &doc
			}
		}
	} else {
		order, doc, err := purchase.CreatePurchaseOrderWithPDF(req)
		if err != nil {
			return errors.Trace(err)
		}
		id, res.Number, res.Total, res.Document = order.ID, order.OrderNumber, order.Total, doc
	}

	if send {
		sent, err := sendOrder(ctx, app, id, quotation)
		if err != nil {
			return err
		}
		res.Email = &sent
	}

	return app.render(res, func(w io.Writer) error {
		app.printf("created %s", res.Number)
		if !quotation {
			app.printf(", total %s JPY", res.Total.StringFixed(0))
		}
		app.printf("\n")
		if res.Document != nil {
			app.printf("document %s\n", res.Document.FileName)
		}
		if res.Email != nil {
			printSent(app, *res.Email)
		}
		return nil
	})
}

func ordersSendCommand(app *App) *cobra.Command {
	var quotation bool

	cmd := &cobra.Command{
		Use:   "send <id>",
		Short: "Email a purchase order or quotation request to its partner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "order")
			if err != nil {
				return err
			}
			sent, err := sendOrder(cmd.Context(), app, id, quotation)
			if err != nil {
				return err
			}
			return app.render(sent, func(w io.Writer) error {
				printSent(app, sent)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&quotation, "quotation", false, "The id is a quotation request")

	return cmd
}

func sendOrder(ctx context.Context, app *App, id int, quotation bool) (models.SentEmail, error) {
	send, what := app.Services.AssetPurchase.SendPurchaseOrder, "purchase order"
	if quotation {
		send, what = app.Services.AssetPurchase.SendQuotationRequest, "quotation request"
	}
	sent, ok, err := send(ctx, id)
	if !ok {
		return models.SentEmail{}, errors.NotFoundf("%s %d", what, id)
	}
	if err != nil {
		return models.SentEmail{}, errors.Trace(err)
	}
	return sent, nil
}

func printSent(app *App, sent models.SentEmail) {
	mode := "sent"
	if sent.Simulated {
		mode = "simulated"
	}
	app.printf("%s %q to %s (%s)\n", mode, sent.Subject, sent.To, sent.Attachment)
}
