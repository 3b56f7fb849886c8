// Package lookup provides the CUSIP lookup view for the TUI.
package lookup

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/holdings-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/holdings-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/holdings-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/holdings-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/holdings-cli/internal/core/domain"
	"github.com/custodia-labs/holdings-cli/internal/core/ports/driving"
)

var (
	// ErrCatalogUnavailable is reported when no catalog service is wired.
	ErrCatalogUnavailable = errors.New("catalog service not available")

	// ErrIncompleteCUSIP is reported when fewer than nine characters are entered.
	ErrIncompleteCUSIP = errors.New("a CUSIP has nine characters")
)

const chrome = 7

// Columns returns the match table columns.
func Columns() []table.Column {
	return []table.Column{
		{Title: "Accession", Width: 22},
		{Title: "Filer", Width: 28},
		{Title: "Period", Width: 10},
		{Title: "Issuer", Width: 24},
		{Title: "Class", Width: 14},
		{Title: "Value", Width: 15},
		{Title: "Amount", Width: 15},
	}
}

// Row renders one match as a table row.
func Row(m domain.HoldingMatch) table.Row {
	return table.Row{
		m.Filing.AccessionNumber,
		m.Filing.FilerName,
		m.Filing.Period,
		m.Holding.IssuerName,
		m.Holding.ClassTitle,
		humanize.Comma(m.Holding.Value),
		humanize.Comma(m.Holding.Amount),
	}
}

// View finds holdings across filings by CUSIP.
type View struct {
	ctx     context.Context
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	catalog driving.CatalogService

	input   *input.CUSIPInput
	table   table.Model
	cusip   string
	matches []domain.HoldingMatch
	loading bool
	err     error
}

// NewView creates a new lookup view.
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
		input:   input.NewCUSIPInput(s),
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

// Init focuses the input.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.input.Focus(), v.input.Init())
}

// Reset clears the query and the previous matches.
func (v *View) Reset() {
	v.input.Reset()
	v.cusip = ""
	v.matches = nil
	v.err = nil
	v.loading = false
	v.table.SetRows(nil)
}

func (v *View) find(cusip string) tea.Cmd {
	ctx, catalog := v.ctx, v.catalog
	return func() tea.Msg {
		if catalog == nil {
			return messages.LookupCompleted{CUSIP: cusip, Err: ErrCatalogUnavailable}
		}
		matches, err := catalog.FindByCUSIP(ctx, cusip)
		return messages.LookupCompleted{CUSIP: cusip, Matches: matches, Err: err}
	}
}

// Update handles messages for the lookup view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.LookupCompleted:
		if msg.CUSIP != v.cusip {
			return v, nil
		}
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.matches = msg.Matches
			rows := make([]table.Row, len(msg.Matches))
			for i, m := range msg.Matches {
				rows[i] = Row(m)
			}
			v.table.SetRows(rows)
			v.table.SetCursor(0)
		}
		return v, nil

	case tea.KeyMsg:
		key := msg.String()
		switch {
		case keymap.Matches(key, v.keymap.Back):
			return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewFilings} }
		case keymap.Matches(key, v.keymap.Submit):
			if !v.input.Complete() {
				v.err = ErrIncompleteCUSIP
				return v, nil
			}
			v.cusip = v.input.Value()
			v.err = nil
			v.loading = true
			return v, v.find(v.cusip)
		case keymap.Matches(key, v.keymap.Up), keymap.Matches(key, v.keymap.Down):
			if msg.Type != tea.KeyRunes {
				var cmd tea.Cmd
				v.table, cmd = v.table.Update(msg)
				return v, cmd
			}
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// View renders the lookup form and its matches.
func (v *View) View() string {
	title := v.styles.Title.Render("Find holdings by CUSIP")

	var body string
	switch {
	case v.err != nil:
		body = v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err))
	case v.loading:
		body = v.styles.Muted.Render("Searching...")
	case v.cusip == "":
		body = v.styles.Muted.Render("Enter a nine character CUSIP and press enter.")
	case len(v.matches) == 0:
		body = v.styles.Muted.Render(fmt.Sprintf("No catalogued holdings for %s.", v.cusip))
	default:
		body = v.table.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, "", v.input.View(), "", body)
}

// CUSIP returns the last submitted CUSIP.
func (v *View) CUSIP() string {
	return v.cusip
}

// Matches returns the holdings found for the last query.
func (v *View) Matches() []domain.HoldingMatch {
	return v.matches
}

// Err returns the last error.
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
