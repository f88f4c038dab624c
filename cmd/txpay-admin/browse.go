package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/txpay/txpay-admin/internal/domain/model"
	"github.com/txpay/txpay-admin/internal/filterinput"
	"github.com/txpay/txpay-admin/internal/ports"
	"github.com/txpay/txpay-admin/internal/service"
	"github.com/txpay/txpay-admin/internal/viewstate"
)

const browseHelp = `commands:
  tab <name>          switch tab (filters are dropped)
  page <n> | next | prev
  filter <key>=<value>
  unfilter <key>
  clear               drop every filter
  search [text]       debounced free-text search
  reload              fetch the current view again
  back                return to the previous view
  url                 print the current view URL
  quit`

// browser is an interactive view over the dashboard lists. The view lives in
// an in-memory URL so it behaves exactly like the web dashboard.
type browser struct {
	mu       sync.Mutex
	ctx      context.Context
	api      ports.TXPayAPI
	out      io.Writer
	pageSize int

	loc    *viewstate.MemoryLocation
	view   *viewstate.Manager
	search *filterinput.Input
	loader *service.Loader[[]string]

	// tab is the tab of the load in flight.
	tab viewstate.Tab
}

func newBrowser(ctx context.Context, a *app, api ports.TXPayAPI, out io.Writer, start url.Values) *browser {
	b := &browser{
		ctx:      ctx,
		api:      api,
		out:      out,
		pageSize: a.cfg.UI.PageSize,
		loc:      viewstate.NewMemoryLocation("/", start),
	}
	b.view = viewstate.New(b.loc, string(viewstate.TabTransactions))
	b.loader = service.NewLoader(func(ctx context.Context, q model.ListQuery) (model.Page[[]string], error) {
		l, err := fetchTab(ctx, b.api, b.tab, q)
		if err != nil {
			return model.Page[[]string]{}, err
		}
		return model.Page[[]string]{Data: l.Rows, Meta: l.Meta}, nil
	})
	b.search = filterinput.New(
		b.view.Read().Filters["search"],
		b.commitSearch,
		filterinput.WithClock(a.clock),
		filterinput.WithDelay(a.cfg.UI.FilterDebounce),
	)
	return b
}

func (b *browser) commitSearch(value string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.view.SetFilter("search", value)
	b.reload()
}

func (b *browser) close() {
	b.search.Close()
	b.loader.Stop()
}

func (b *browser) prompt() string {
	return "txpay:" + b.view.Read().Tab + "> "
}

// exec runs one command line and reports whether the shell should exit.
func (b *browser) exec(line string) (bool, error) {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	b.mu.Lock()
	defer b.mu.Unlock()

	switch cmd {
	case "":
		return false, nil
	case "quit", "exit":
		return true, nil
	case "help":
		b.println(browseHelp)
		return false, nil
	case "url":
		b.println(b.loc.String())
		return false, nil
	case "tab":
		tab, err := parseListTab(arg)
		if err != nil {
			return false, err
		}
		b.view.SetTab(string(tab), nil)
	case "page":
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			return false, fmt.Errorf("page must be a positive number, got %q", arg)
		}
		b.view.SetPage(n)
	case "next":
		if page, ok := b.loader.Current(); ok && !page.Meta.HasNextPage {
			return false, errors.New("already on the last page")
		}
		b.view.SetPage(b.view.Read().Page + 1)
	case "prev":
		cur := b.view.Read().Page
		if cur <= 1 {
			return false, errors.New("already on the first page")
		}
		b.view.SetPage(cur - 1)
	case "filter":
		k, v, ok := strings.Cut(arg, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return false, fmt.Errorf("filter %q is not key=value", arg)
		}
		if k == viewstate.KeyTab || k == viewstate.KeyPage {
			return false, fmt.Errorf("%q is not a filter", k)
		}
		b.view.SetFilter(k, strings.TrimSpace(v))
	case "unfilter":
		if arg == "" {
			return false, errors.New("unfilter needs a key")
		}
		b.view.SetFilter(arg, "")
	case "clear":
		b.view.ClearFilters()
	case "search":
		// The commit callback reloads once typing settles.
		b.search.Type(arg)
		return false, nil
	case "reload":
	case "back":
		if !b.loc.Back() {
			return false, errors.New("no previous view")
		}
	default:
		return false, fmt.Errorf("unknown command %q (try help)", cmd)
	}

	// Only an external change to the committed search resets the input; a
	// pending search survives unrelated navigation.
	if committed := b.view.Read().Filters["search"]; committed != b.search.Committed() {
		b.search.Sync(committed)
	}
	b.reload()
	return false, nil
}

// reload fetches the current view and prints it. Callers hold b.mu, so loads
// never overlap and a late response cannot land on a newer view.
// A failed fetch keeps the previous rows.
func (b *browser) reload() {
	state := b.view.Read()
	tab := viewstate.ParseTab(state.Tab, viewstate.TabTransactions)
	if tab == viewstate.TabConfiguration {
		b.println("the configuration tab has no list; use the health command")
		return
	}
	q, err := service.ListQueryFor(state, b.pageSize)
	if err != nil {
		b.println("error: " + err.Error())
		return
	}

	b.tab = tab
	page, err := b.loader.Load(b.ctx, q)
	if err != nil {
		b.println("error: " + err.Error())
		if _, ok := b.loader.Current(); ok {
			b.println("showing the previous results")
		}
		return
	}
	if err := writeTable(b.out, listing{Headers: headersFor(tab), Rows: page.Data, Meta: page.Meta}); err != nil {
		b.println("error: " + err.Error())
	}
}

func (b *browser) println(s string) {
	_, _ = fmt.Fprintln(b.out, s)
}

// run reads commands from in until quit or EOF.
func (b *browser) run(in io.Reader) error {
	b.mu.Lock()
	b.reload()
	b.mu.Unlock()

	sc := bufio.NewScanner(in)
	for {
		b.mu.Lock()
		_, _ = fmt.Fprint(b.out, b.prompt())
		b.mu.Unlock()

		if !sc.Scan() {
			return sc.Err()
		}
		quit, err := b.exec(sc.Text())
		if err != nil {
			b.mu.Lock()
			b.println("error: " + err.Error())
			b.mu.Unlock()
		}
		if quit || b.ctx.Err() != nil {
			return nil
		}
	}
}

func newBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse [view-url]",
		Short: "Browse dashboard lists interactively",
		Long: `Browse dashboard lists interactively.

The optional argument is a dashboard URL or query, for example
"/?tab=merchants&status=ACTIVE", so a view copied from the browser opens as is.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var start url.Values
			if len(args) == 1 {
				raw := strings.TrimSpace(args[0])
				if strings.HasPrefix(raw, "?") {
					raw = "/" + raw
				}
				loc, err := viewstate.ParseLocation(raw)
				if err != nil {
					return err
				}
				start = loc.Query()
			}
			api, err := a.api()
			if err != nil {
				return err
			}
			b := newBrowser(cmd.Context(), a, api, cmd.OutOrStdout(), start)
			defer b.close()
			return b.run(cmd.InOrStdin())
		},
	}
}
