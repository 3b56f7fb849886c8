// Package filings provides the catalogued filings table for the TUI.
package filings

import (
	"context"
	"errors"
	"fmt"
	"strconv"

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

// chrome is the number of lines used by the title and spacing.
const chrome = 4

// Columns returns the filings table columns.
func Columns() []table.Column {
	return []table.Column{
		{Title: "Accession", Width: 22},
		{Title: "Filer", Width: 32},
		{Title: "Period", Width: 10},
		{Title: "Type", Width: 8},
		{Title: "Holdings", Width: 9},
		{Title: "Value", Width: 18},
	}
}

// View is the filings list view.
type View struct {
	ctx     context.Context
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	catalog driving.CatalogService

	table   table.Model
	filings []domain.StoredFiling
	width   int
	height  int
	loading bool
	err     error
}

// NewView creates a new filings view.
func NewView(s *styles.Styles, km *keymap.KeyMap, catalog driving.CatalogService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	t := table.New(
		table.WithColumns(Columns()),
		table.WithFocused(true),
		table.WithHeight(10),
		table.WithStyles(s.Table()),
	)

	return &View{
		ctx:     context.Background(),
		styles:  s,
		keymap:  km,
		catalog: catalog,
		table:   t,
	}
}

// SetContext sets the context used for catalog queries.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Init loads the filings.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.load()
}

func (v *View) load() tea.Cmd {
	ctx, catalog := v.ctx, v.catalog
	return func() tea.Msg {
		if catalog == nil {
			return messages.FilingsLoaded{Err: ErrCatalogUnavailable}
		}
		filings, err := catalog.ListFilings(ctx)
		return messages.FilingsLoaded{Filings: filings, Err: err}
	}
}

// Update handles messages for the filings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.FilingsLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.SetFilings(msg.Filings)
		}
		return v, nil

	case tea.KeyMsg:
		switch {
		case keymap.Matches(msg.String(), v.keymap.Open):
			f, ok := v.Selected()
			if !ok {
				return v, nil
			}
			return v, func() tea.Msg { return messages.FilingSelected{Filing: f} }
		case keymap.Matches(msg.String(), v.keymap.Lookup):
			return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewLookup} }
		case keymap.Matches(msg.String(), v.keymap.Refresh):
			v.loading = true
			return v, v.load()
		}
	}

	var cmd tea.Cmd
	v.table, cmd = v.table.Update(msg)
	return v, cmd
}

// View renders the filings table.
func (v *View) View() string {
	title := v.styles.Title.Render("Catalogued filings")

	var body string
	switch {
	case v.loading:
		body = v.styles.Muted.Render("Loading filings...")
	case v.err != nil:
		body = v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err))
	case len(v.filings) == 0:
		body = v.styles.Muted.Render("No filings catalogued yet. Run `holdings convert` first.")
	default:
		body = v.table.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, "", body)
}

// SetFilings replaces the table rows.
func (v *View) SetFilings(filings []domain.StoredFiling) {
	v.filings = filings
	rows := make([]table.Row, len(filings))
	for i, f := range filings {
		rows[i] = Row(f)
	}
	v.table.SetRows(rows)
	if v.table.Cursor() >= len(rows) {
		v.table.SetCursor(0)
	}
}

// Row renders one filing as a table row.
func Row(f domain.StoredFiling) table.Row {
	return table.Row{
		f.AccessionNumber,
		f.FilerName,
		f.Period,
		f.SubmissionType,
		strconv.Itoa(f.HoldingCount),
		humanize.Comma(f.TotalValue),
	}
}

// Selected returns the filing under the cursor.
func (v *View) Selected() (domain.StoredFiling, bool) {
	i := v.table.Cursor()
	if i < 0 || i >= len(v.filings) {
		return domain.StoredFiling{}, false
	}
	return v.filings[i], true
}

// Filings returns the loaded filings.
func (v *View) Filings() []domain.StoredFiling {
	return v.filings
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}

// SetDimensions sizes the table to the terminal.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.table.SetWidth(width)
	if h := height - chrome; h > 0 {
		v.table.SetHeight(h)
	}
}
