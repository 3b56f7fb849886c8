package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/holdings-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/holdings-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/holdings-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/holdings-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/holdings-cli/internal/adapters/driving/tui/views/filings"
	"github.com/custodia-labs/holdings-cli/internal/adapters/driving/tui/views/holdings"
	"github.com/custodia-labs/holdings-cli/internal/adapters/driving/tui/views/lookup"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap
	status *status.Bar

	filingsView  *filings.View
	holdingsView *holdings.View
	lookupView   *lookup.View

	// accession, when set, opens that filing's holdings on start.
	accession string

	currentView messages.ViewType
	// helpReturn is the view restored when help is closed.
	helpReturn messages.ViewType

	err    error
	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		status:       status.NewBar(s, km),
		filingsView:  filings.NewView(s, km, ports.Catalog),
		holdingsView: holdings.NewView(s, km, ports.Catalog),
		lookupView:   lookup.NewView(s, km, ports.Catalog),
		currentView:  messages.ViewFilings,
	}, nil
}

// WithContext sets the context for the app and its catalog queries.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.filingsView.SetContext(ctx)
	a.holdingsView.SetContext(ctx)
	a.lookupView.SetContext(ctx)
	return a
}

// WithAccession opens the holdings of one filing on start.
func (a *App) WithAccession(accession string) *App {
	a.accession = strings.TrimSpace(accession)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	a.status.SetState(status.StateLoading)
	cmds := []tea.Cmd{
		tea.SetWindowTitle("holdings"),
		a.filingsView.Init(),
	}
	if a.accession != "" {
		cmds = append(cmds, a.openAccession(a.accession))
	}
	return tea.Batch(cmds...)
}

// openAccession resolves an accession number to its catalogued filing.
func (a *App) openAccession(accession string) tea.Cmd {
	ctx, catalog := a.ctx, a.ports.Catalog
	return func() tea.Msg {
		f, err := catalog.GetFiling(ctx, accession)
		if err != nil {
			return messages.ErrorOccurred{Err: fmt.Errorf("opening %s: %w", accession, err)}
		}
		return messages.FilingSelected{Filing: *f}
	}
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.FilingsLoaded:
		a.filingsView, cmd = a.filingsView.Update(msg)
		a.setErr(msg.Err)
		a.syncStatus()
		return a, cmd

	case messages.FilingSelected:
		a.currentView = messages.ViewHoldings
		a.status.SetState(status.StateLoading)
		return a, a.holdingsView.SetFiling(msg.Filing)

	case messages.HoldingsLoaded:
		a.holdingsView, cmd = a.holdingsView.Update(msg)
		a.setErr(msg.Err)
		a.syncStatus()
		return a, cmd

	case messages.LookupCompleted:
		a.lookupView, cmd = a.lookupView.Update(msg)
		a.setErr(msg.Err)
		a.syncStatus()
		return a, cmd

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.ErrorOccurred:
		a.setErr(msg.Err)
		a.syncStatus()
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Cursor blinks and other internal messages go to the active view.
	switch a.currentView {
	case messages.ViewFilings:
		a.filingsView, cmd = a.filingsView.Update(msg)
	case messages.ViewHoldings:
		a.holdingsView, cmd = a.holdingsView.Update(msg)
	case messages.ViewLookup:
		a.lookupView, cmd = a.lookupView.Update(msg)
	case messages.ViewHelp:
	}
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	// Typed runes belong to the CUSIP input while the lookup is open.
	if a.currentView != messages.ViewLookup {
		switch {
		case keymap.Matches(msg.String(), a.keymap.Quit):
			return a, tea.Quit
		case keymap.Matches(msg.String(), a.keymap.Help):
			if a.currentView == messages.ViewHelp {
				return a, a.switchTo(a.helpReturn)
			}
			a.helpReturn = a.currentView
			return a, a.switchTo(messages.ViewHelp)
		}
	}

	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewFilings:
		a.filingsView, cmd = a.filingsView.Update(msg)
	case messages.ViewHoldings:
		a.holdingsView, cmd = a.holdingsView.Update(msg)
	case messages.ViewLookup:
		a.lookupView, cmd = a.lookupView.Update(msg)
	case messages.ViewHelp:
		if keymap.Matches(msg.String(), a.keymap.Back) {
			return a, a.switchTo(a.helpReturn)
		}
	}
	return a, cmd
}

func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	a.currentView = view
	a.err = nil

	var cmd tea.Cmd
	if view == messages.ViewLookup {
		a.lookupView.Reset()
		cmd = a.lookupView.Init()
	}
	a.syncStatus()
	return cmd
}

func (a *App) setErr(err error) {
	if err != nil {
		a.err = err
	}
}

// syncStatus reflects the active view in the status bar.
func (a *App) syncStatus() {
	a.status.Clear()
	if a.err != nil {
		a.status.SetState(status.StateError)
		a.status.SetMessage(a.err.Error())
		return
	}

	switch a.currentView {
	case messages.ViewFilings:
		a.status.SetCount(len(a.filingsView.Filings()), "filings")
	case messages.ViewHoldings:
		a.status.SetState(status.StateHoldings)
		a.status.SetCount(len(a.holdingsView.Holdings()), "holdings")
	case messages.ViewLookup:
		a.status.SetState(status.StateLookup)
		a.status.SetCount(len(a.lookupView.Matches()), "matches")
	case messages.ViewHelp:
		a.status.SetState(status.StateHelp)
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewHoldings:
		body = a.holdingsView.View()
	case messages.ViewLookup:
		body = a.lookupView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.filingsView.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, a.status.View())
}

func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Keys"))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "  %-8s %s\n", h.Key, h.Desc)
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Muted.Render("[esc] back"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// StatusBar returns the status bar.
func (a *App) StatusBar() *status.Bar {
	return a.status
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	// One line is reserved for the status bar.
	a.filingsView.SetDimensions(width, height-1)
	a.holdingsView.SetDimensions(width, height-1)
	a.lookupView.SetDimensions(width, height-1)
	a.status.SetWidth(width)
}
