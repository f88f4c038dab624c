package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	jmespath "github.com/jmespath-community/go-jmespath"
	"github.com/spf13/cobra"

	"github.com/txpay/txpay-admin/internal/domain/model"
	"github.com/txpay/txpay-admin/internal/ports"
	"github.com/txpay/txpay-admin/internal/service"
	"github.com/txpay/txpay-admin/internal/viewstate"
)

// listing is one fetched page flattened for display.
type listing struct {
	Headers []string
	Rows    [][]string
	Meta    model.ListMeta
	// Raw is the page as generic JSON, the input of --output json and --query.
	Raw any
}

func listableTabs() []string {
	var out []string
	for _, t := range viewstate.Tabs() {
		if t != viewstate.TabConfiguration {
			out = append(out, string(t))
		}
	}
	return out
}

func parseListTab(s string) (viewstate.Tab, error) {
	tab := viewstate.ParseTab(strings.TrimSpace(s), "")
	if tab == "" || tab == viewstate.TabConfiguration {
		return "", fmt.Errorf("unknown tab %q (valid: %s)", s, strings.Join(listableTabs(), ", "))
	}
	return tab, nil
}

// parseFilters turns repeated key=value flags into a filter map.
func parseFilters(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("filter %q is not key=value", p)
		}
		out[k] = v
	}
	return out, nil
}

func headersFor(tab viewstate.Tab) []string {
	switch tab {
	case viewstate.TabMerchants:
		return []string{"ID", "NAME", "EMAIL", "COUNTRY", "STATUS", "PARTNER"}
	case viewstate.TabPartners:
		return []string{"ID", "NAME", "EMAIL", "STATUS", "COMMISSION", "MERCHANTS"}
	case viewstate.TabAdmins:
		return []string{"ID", "NAME", "EMAIL", "ROLE", "ACTIVE"}
	case viewstate.TabPaymentLinks:
		return []string{"ID", "MERCHANT", "DESCRIPTION", "AMOUNT", "STATUS", "URL"}
	default:
		return []string{"ID", "MERCHANT", "AMOUNT", "STATUS", "METHOD", "CREATED"}
	}
}

// fetchTab loads one page of tab and flattens it.
func fetchTab(ctx context.Context, api ports.TXPayAPI, tab viewstate.Tab, q model.ListQuery) (listing, error) {
	switch tab {
	case viewstate.TabMerchants:
		return fetchRows(ctx, tab, q, api.ListMerchants, func(m model.Merchant) []string {
			return []string{m.ID, m.Name, m.Email, m.Country, string(m.Status), m.PartnerName}
		})
	case viewstate.TabPartners:
		return fetchRows(ctx, tab, q, api.ListPartners, func(p model.Partner) []string {
			return []string{p.ID, p.Name, p.Email, p.Status, p.CommissionRate.String(), strconv.Itoa(p.MerchantCount)}
		})
	case viewstate.TabAdmins:
		return fetchRows(ctx, tab, q, api.ListAdminUsers, func(u model.AdminUser) []string {
			return []string{u.ID, u.Name, u.Email, string(u.Role), strconv.FormatBool(u.Active)}
		})
	case viewstate.TabPaymentLinks:
		return fetchRows(ctx, tab, q, api.ListPaymentLinks, func(l model.PaymentLink) []string {
			return []string{l.ID, l.MerchantName, l.Description, l.Amount.String() + " " + l.Currency, l.Status, l.URL}
		})
	default:
		return fetchRows(ctx, tab, q, api.ListTransactions, func(t model.Transaction) []string {
			return []string{t.ID, t.MerchantName, t.Amount.String() + " " + t.Currency, string(t.Status), t.PaymentMethod, t.CreatedAt.Format("2006-01-02 15:04")}
		})
	}
}

func fetchRows[T any](
	ctx context.Context,
	tab viewstate.Tab,
	q model.ListQuery,
	fetch service.FetchFunc[T],
	row func(T) []string,
) (listing, error) {
	page, err := fetch(ctx, q)
	if err != nil {
		return listing{}, err
	}
	raw, err := toJSONValue(page)
	if err != nil {
		return listing{}, err
	}
	out := listing{Headers: headersFor(tab), Meta: page.Meta, Raw: raw, Rows: make([][]string, 0, len(page.Data))}
	for _, item := range page.Data {
		out.Rows = append(out.Rows, row(item))
	}
	return out, nil
}

// toJSONValue round-trips v so JMESPath sees plain maps and slices.
func toJSONValue(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	return out, nil
}

// render writes l in the selected format.
func (a *app) render(w io.Writer, l listing) error {
	if strings.TrimSpace(a.query) != "" {
		return writeQuery(w, a.query, l.Raw)
	}
	switch a.output {
	case "json":
		return writeJSON(w, l.Raw)
	case "table", "":
		return writeTable(w, l)
	default:
		return fmt.Errorf("unknown output format %q (valid: table, json)", a.output)
	}
}

func writeQuery(w io.Writer, expr string, data any) error {
	if _, err := jmespath.Compile(expr); err != nil {
		return fmt.Errorf("invalid --query: %w", err)
	}
	res, err := jmespath.Search(expr, data)
	if err != nil {
		return fmt.Errorf("evaluate --query: %w", err)
	}
	return writeJSON(w, res)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTable(w io.Writer, l listing) error {
	if len(l.Rows) == 0 {
		_, err := fmt.Fprintln(w, "No records match the current filters.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, strings.Join(l.Headers, "\t")); err != nil {
		return err
	}
	for _, r := range l.Rows {
		if _, err := fmt.Fprintln(tw, strings.Join(r, "\t")); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Page %d of %d · %d results\n", pageOf(l.Meta), totalPagesOf(l.Meta), l.Meta.Total)
	return err
}

func pageOf(m model.ListMeta) int {
	if m.Page < 1 {
		return 1
	}
	return m.Page
}

func totalPagesOf(m model.ListMeta) int {
	if m.TotalPages < pageOf(m) {
		return pageOf(m)
	}
	return m.TotalPages
}

func newListCmd(a *app) *cobra.Command {
	var (
		page    int
		filters []string
	)
	cmd := &cobra.Command{
		Use:   "list <tab>",
		Short: "List one page of a dashboard tab",
		Long: `List one page of a dashboard tab.

Filters are checked against the tab's filter schema before the API is called.

Examples:
  txpay-admin list transactions --filter status=captured --filter currency=mxn
  txpay-admin list merchants --page 2 -o json
  txpay-admin list transactions -q "data[].{id: id, amount: amount}"`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: listableTabs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			tab, err := parseListTab(args[0])
			if err != nil {
				return err
			}
			fs, err := parseFilters(filters)
			if err != nil {
				return err
			}
			q, err := service.ListQueryFor(viewstate.State{Tab: string(tab), Page: page, Filters: fs}, a.cfg.UI.PageSize)
			if err != nil {
				return err
			}
			api, err := a.api()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), a.commandTimeout())
			defer cancel()
			l, err := fetchTab(ctx, api, tab, q)
			if err != nil {
				return fmt.Errorf("list %s: %w", tab, err)
			}
			return a.render(cmd.OutOrStdout(), l)
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().StringArrayVarP(&filters, "filter", "f", nil, "filter as key=value (repeatable)")
	return cmd
}
