package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"itam-service/internal/models"
)

// table writes tab separated rows aligned into columns.
type table struct {
	tw *tabwriter.Writer
}

func newTable(w io.Writer, headers ...string) *table {
	t := &table{tw: tabwriter.NewWriter(w, 0, 1, 1, ' ', 0)}
	fmt.Fprintln(t.tw, strings.Join(headers, "\t"))
	return t
}

func (t *table) row(cells ...any) {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = cell(c)
	}
	fmt.Fprintln(t.tw, strings.Join(parts, "\t"))
}

func (t *table) flush() error {
	return t.tw.Flush()
}

func cell(v any) string {
	switch v := v.(type) {
	case string:
		if v == "" {
			return "-"
		}
		return v
	case decimal.Decimal:
		return v.StringFixed(0)
	case time.Time:
		if v.IsZero() {
			return "-"
		}
		return v.Format(models.DateLayout)
	case *time.Time:
		if v == nil {
			return "-"
		}
		return v.Format(models.DateLayout)
	case float64:
		return fmt.Sprintf("%.1f", v)
	case bool:
		if v {
			return "yes"
		}
		return "no"
	}
	return fmt.Sprint(v)
}

// keyValues prints label/value pairs as a two column table.
func keyValues(w io.Writer, pairs [][2]any) error {
	tw := tabwriter.NewWriter(w, 0, 1, 1, ' ', 0)
	for _, p := range pairs {
		fmt.Fprintf(tw, "%s:\t%s\n", p[0], cell(p[1]))
	}
	return tw.Flush()
}
