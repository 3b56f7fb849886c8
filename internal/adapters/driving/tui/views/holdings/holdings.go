// Package holdings provides the holdings table of a single filing.
package holdings

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/holdings-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/holdings-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/holdings-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/holdings-cli/internal/core/domain"
	"github.com/custodia-labs/holdings-cli/internal/core/ports/driving"
)

// ErrCatalogUnavailable is reported when no catalog service is wired.
var ErrCatalogUnavailable = errors.New("catalog service not available")

const chrome = 5

// Columns returns the holdings table columns.
func Columns() []table.Column {
	return []table.Column{
		{Title: "Issuer", Width: 28},
		{Title: "Class", Width: 16},
		{Title: "CUSIP", Width: 9},
		{Title: "Value", Width: 15},
		{Title: "Amount", Width: 15},
		{Title: "Type", Width: 4},
		{Title: "Put/Call", Width: 8},
		{Title: "Discretion", Width: 10},
		{Title: "Sole", Width: 12},
		{Title: "Shared", Width: 12},
		{Title: "None", Width: 12},
	}
}

// Row renders one holding as a table row.
func Row(h domain.HoldingRecord) table.Row {
	return table.Row{
		h.IssuerName,
		h.ClassTitle,
		h.CUSIP,
		humanize.Comma(h.Value),
		humanize.Comma(h.Amount),
		h.AmountType,
		h.PutCall,
		h.InvestmentDiscretion,
		humanize.Comma(h.Voting.Sole),
		humanize.Comma(h.Voting.Shared),
		humanize.Comma(h.Voting.None),
	}
}

// View shows the holdings of one filing.
type View struct {
	ctx     context.Context
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	catalog driving.CatalogService

	table    table.Model
	filing   domain.StoredFiling
	holdings []domain.HoldingRecord
	loading  bool
	err      error
}

// NewView creates a new holdings view.
func NewView(s *styles.Styles, km *keymap.KeyMap, catalog driving.CatalogService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		ctx:     context.Background(),
		styles:  s,
		keymap:  km,
		catalog: catalog,
		table: table.New(
			table.WithColumns(Columns()),
			table.WithFocused(true),
			table.WithHeight(10),
			table.WithStyles(s.Table()),
		),
	}
}

// SetContext sets the context used for catalog queries.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// SetFiling switches to a filing and loads its holdings.
func (v *View) SetFiling(f domain.StoredFiling) tea.Cmd {
	v.filing = f
	v.holdings = nil
	v.err = nil
	v.loading = true
	v.table.SetRows(nil)
	v.table.SetCursor(0)

	ctx, catalog, accession := v.ctx, v.catalog, f.AccessionNumber
	return func() tea.Msg {
		if catalog == nil {
			return messages.HoldingsLoaded{Accession: accession, Err: ErrCatalogUnavailable}
		}
		holdings, err := catalog.GetHoldings(ctx, accession)
		return messages.HoldingsLoaded{Accession: accession, Holdings: holdings, Err: err}
	}
}

// Update handles messages for the holdings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.HoldingsLoaded:
		// Ignore results for a filing that is no longer shown.
		if msg.Accession != v.filing.AccessionNumber {
			return v, nil
		}
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.setHoldings(msg.Holdings)
		}
		return v, nil

	case tea.KeyMsg:
		if keymap.Matches(msg.String(), v.keymap.Back) {
			return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewFilings} }
		}
	}

	var cmd tea.Cmd
	v.table, cmd = v.table.Update(msg)
	return v, cmd
}

func (v *View) setHoldings(holdings []domain.HoldingRecord) {
	v.holdings = holdings
	rows := make([]table.Row, len(holdings))
	for i, h := range holdings {
		rows[i] = Row(h)
	}
	v.table.SetRows(rows)
}

// View renders the holdings table.
func (v *View) View() string {
	name := v.filing.FilerName
	if name == "" {
		name = v.filing.AccessionNumber
	}
	title := v.styles.Title.Render(name)
	sub := v.styles.Muted.Render(fmt.Sprintf("%s  period %s  %s",
		v.filing.AccessionNumber, v.filing.Period, v.filing.SubmissionType))

	var body string
	switch {
	case v.loading:
		body = v.styles.Muted.Render("Loading holdings...")
	case v.err != nil:
		body = v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err))
	case len(v.holdings) == 0:
		body = v.styles.Muted.Render("This filing reports no holdings.")
	default:
		body = lipgloss.JoinVertical(lipgloss.Left,
			v.table.View(),
			v.styles.Figure.Render("Total value "+humanize.Comma(v.TotalValue())),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, sub, "", body)
}

// TotalValue sums the reported value of the loaded holdings.
func (v *View) TotalValue() int64 {
	var total int64
	for _, h := range v.holdings {
		total += h.Value
	}
	return total
}

// Filing returns the filing being shown.
func (v *View) Filing() domain.StoredFiling {
	return v.filing
}

// Holdings returns the loaded holdings.
func (v *View) Holdings() []domain.HoldingRecord {
	return v.holdings
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}

// SetDimensions sizes the table to the terminal.
func (v *View) SetDimensions(width, height int) {
	v.table.SetWidth(width)
	if h := height - chrome; h > 0 {
		v.table.SetHeight(h)
	}
}
