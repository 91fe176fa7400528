package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/verdex/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/verdex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/verdex/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/verdex/internal/adapters/driving/tui/views/recommendations"
	"github.com/custodia-labs/verdex/internal/adapters/driving/tui/views/stats"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// menuView is the main navigation menu.
	menuView *menu.View

	// statsView is the aggregate statistics view component.
	statsView *stats.View

	// recommendationsView is the template suggestions view component.
	recommendationsView *recommendations.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	return &App{
		ports:               ports,
		ctx:                 context.Background(),
		styles:              s,
		menuView:            menu.NewView(s),
		statsView:           stats.NewView(s, ports.Recommendation, ports.Ingest),
		recommendationsView: recommendations.NewView(s, ports.Recommendation),
		currentView:         messages.ViewMenu, // Start with menu
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("verdex - Review Verdict Index"),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing
		a.menuView.SetDimensions(msg.Width, msg.Height)
		a.statsView.SetDimensions(msg.Width, msg.Height)
		a.recommendationsView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Esc from any non-menu view goes back to menu
		if msg.Type == tea.KeyEsc && a.currentView != messages.ViewMenu {
			a.currentView = messages.ViewMenu
			return a, nil
		}

		// Forward key messages to active view
		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
			return a, cmd

		case messages.ViewStats:
			a.statsView, cmd = a.statsView.Update(msg)
			return a, cmd

		case messages.ViewRecommendations:
			a.recommendationsView, cmd = a.recommendationsView.Update(msg)
			return a, cmd

		case messages.ViewHelp:
			return a, nil
		}
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		// Initialise views when switching to them
		switch msg.View {
		case messages.ViewStats:
			return a, a.statsView.Init()
		case messages.ViewRecommendations:
			return a, a.recommendationsView.Init()
		case messages.ViewMenu, messages.ViewHelp:
			// Other views don't need special initialisation
		}
		return a, nil

	case messages.StatsLoaded, messages.IngestCompleted:
		a.statsView, cmd = a.statsView.Update(msg)
		if err := a.statsView.Err(); err != nil {
			a.err = err
		}
		return a, cmd

	case messages.RecommendationsLoaded:
		a.recommendationsView, cmd = a.recommendationsView.Update(msg)
		if err := a.recommendationsView.Err(); err != nil {
			a.err = err
		}
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewStats:
		a.statsView, cmd = a.statsView.Update(msg)
	case messages.ViewRecommendations:
		a.recommendationsView, cmd = a.recommendationsView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewStats:
		return a.statsView.View()
	case messages.ViewRecommendations:
		return a.recommendationsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Statistics:
  r           Re-scan registered roots and reload
  esc         Back to Menu

Recommendations:
  j/k, ↑/↓    Navigate suggestions
  +/-         Adjust occurrence threshold
  r           Reload
  esc         Back to Menu

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
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

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.statsView.SetDimensions(width, height)
	a.recommendationsView.SetDimensions(width, height)
}
