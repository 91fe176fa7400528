// Package stats provides the aggregate statistics view component for the TUI.
package stats

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/verdex/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/verdex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/verdex/internal/core/domain"
	"github.com/custodia-labs/verdex/internal/core/ports/driving"
)

// maxBarWidth caps the category bar length regardless of count.
const maxBarWidth = 30

// View is the aggregate statistics view.
type View struct {
	styles         *styles.Styles
	recommendation driving.RecommendationService
	ingest         driving.IngestOrchestrator

	stats   *domain.AggregateStats
	width   int
	height  int
	ready   bool
	err     error
	loading bool
}

// NewView creates a new stats view.
func NewView(
	s *styles.Styles,
	recommendation driving.RecommendationService,
	ingest driving.IngestOrchestrator,
) *View {
	return &View{
		styles:         s,
		recommendation: recommendation,
		ingest:         ingest,
	}
}

// Init initialises the view and loads statistics.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadStats()
}

// loadStats returns a command that loads statistics from the service.
func (v *View) loadStats() tea.Cmd {
	return func() tea.Msg {
		if v.recommendation == nil {
			return messages.StatsLoaded{Err: fmt.Errorf("recommendation service not available")}
		}

		stats, err := v.recommendation.Stats(context.Background())
		return messages.StatsLoaded{Stats: stats, Err: err}
	}
}

// refresh returns a command that re-ingests all roots, then reloads stats.
func (v *View) refresh() tea.Cmd {
	return func() tea.Msg {
		if v.ingest == nil {
			return messages.IngestCompleted{Err: fmt.Errorf("ingest orchestrator not available")}
		}

		report, err := v.ingest.IngestAll(context.Background())
		return messages.IngestCompleted{Report: report, Err: err}
	}
}

// Update handles messages for the stats view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			v.loading = true
			v.err = nil
			return v, v.refresh()
		}
		return v, nil

	case messages.StatsLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.stats = msg.Stats
		}
		return v, nil

	case messages.IngestCompleted:
		if msg.Err != nil {
			v.loading = false
			v.err = msg.Err
			return v, nil
		}
		return v, v.loadStats()
	}

	return v, nil
}

// View renders the statistics.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Verdict Statistics"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading..."))

	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))

	case v.stats == nil || v.stats.TotalRecords == 0:
		b.WriteString(v.styles.Muted.Render("No verdicts indexed yet. Press r to scan registered roots."))

	default:
		fmt.Fprintf(&b, "%s %d\n", v.styles.Subtitle.Render("Total records:"), v.stats.TotalRecords)
		fmt.Fprintf(&b, "%s %d\n", v.styles.Subtitle.Render("With blocking issues:"), v.stats.RecordsWithIssues)
		b.WriteString("\n")

		b.WriteString(v.styles.Subtitle.Render("Issues by category"))
		b.WriteString("\n")
		b.WriteString(v.renderCategories())

		b.WriteString("\n")
		b.WriteString(v.styles.Subtitle.Render("By decision"))
		b.WriteString("\n")
		b.WriteString(v.renderDecisions())
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[r] Refresh  [esc] Back  [q] Quit"))

	return b.String()
}

// renderCategories renders one bar per category, widest count first.
func (v *View) renderCategories() string {
	if len(v.stats.ByCategory) == 0 {
		return v.styles.Muted.Render("  (none)") + "\n"
	}

	max := v.stats.ByCategory[0].Count
	for _, cc := range v.stats.ByCategory {
		if cc.Count > max {
			max = cc.Count
		}
	}

	var b strings.Builder
	for _, cc := range v.stats.ByCategory {
		width := cc.Count * maxBarWidth / max
		if width == 0 {
			width = 1
		}
		bar := v.styles.Bar.Render(strings.Repeat("█", width))
		fmt.Fprintf(&b, "  %-16s %s %d\n", cc.Category, bar, cc.Count)
	}
	return b.String()
}

// renderDecisions renders decision counts in a stable order.
func (v *View) renderDecisions() string {
	if len(v.stats.ByDecision) == 0 {
		return v.styles.Muted.Render("  (none)") + "\n"
	}

	decisions := make([]string, 0, len(v.stats.ByDecision))
	for d := range v.stats.ByDecision {
		decisions = append(decisions, string(d))
	}
	sort.Strings(decisions)

	var b strings.Builder
	for _, d := range decisions {
		style := v.styles.Normal
		switch domain.Decision(d) {
		case domain.DecisionApproved:
			style = v.styles.Success
		case domain.DecisionBlocked:
			style = v.styles.Error
		case domain.DecisionNeedsRevision:
			style = v.styles.Warning
		}
		fmt.Fprintf(&b, "  %s %d\n", style.Render(fmt.Sprintf("%-16s", d)), v.stats.ByDecision[domain.Decision(d)])
	}
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Stats returns the currently loaded statistics (for testing).
func (v *View) Stats() *domain.AggregateStats {
	return v.stats
}

// Err returns the last error that occurred.
func (v *View) Err() error {
	return v.err
}
