// Package recommendations provides the template suggestions view for the TUI.
package recommendations

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/verdex/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/verdex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/verdex/internal/core/domain"
	"github.com/custodia-labs/verdex/internal/core/ports/driving"
)

// DefaultThreshold is the initial minimum count for a suggestion.
const DefaultThreshold = 3

// View is the template suggestions view.
type View struct {
	styles         *styles.Styles
	recommendation driving.RecommendationService

	recs      []domain.Recommendation
	threshold int
	selected  int
	width     int
	height    int
	ready     bool
	err       error
	loading   bool
}

// NewView creates a new recommendations view.
func NewView(s *styles.Styles, recommendation driving.RecommendationService) *View {
	return &View{
		styles:         s,
		recommendation: recommendation,
		threshold:      DefaultThreshold,
	}
}

// Init initialises the view and loads suggestions.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.load()
}

// load returns a command that generates suggestions at the current threshold.
func (v *View) load() tea.Cmd {
	threshold := v.threshold
	return func() tea.Msg {
		if v.recommendation == nil {
			return messages.RecommendationsLoaded{Err: fmt.Errorf("recommendation service not available")}
		}

		recs, err := v.recommendation.Recommend(context.Background(), threshold)
		return messages.RecommendationsLoaded{
			Recommendations: recs,
			Threshold:       threshold,
			Err:             err,
		}
	}
}

// Update handles messages for the recommendations view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
			return v, nil

		case "down", "j":
			if v.selected < len(v.recs)-1 {
				v.selected++
			}
			return v, nil

		case "+", "=":
			v.threshold++
			v.loading = true
			return v, v.load()

		case "-":
			if v.threshold > 1 {
				v.threshold--
				v.loading = true
				return v, v.load()
			}
			return v, nil

		case "r":
			v.loading = true
			return v, v.load()
		}
		return v, nil

	case messages.RecommendationsLoaded:
		// Ignore results from a stale threshold
		if msg.Threshold != v.threshold {
			return v, nil
		}
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.recs = msg.Recommendations
			if v.selected >= len(v.recs) {
				v.selected = 0
			}
		}
		return v, nil
	}

	return v, nil
}

// View renders the suggestions list.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Template Recommendations"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("threshold: %d occurrences", v.threshold)))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading..."))

	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))

	case len(v.recs) == 0:
		b.WriteString(v.styles.Muted.Render("No recurring issue categories at this threshold."))

	default:
		for i, rec := range v.recs {
			cursor := "  "
			style := v.styles.Normal
			if i == v.selected {
				cursor = "> "
				style = v.styles.Selected
			}

			header := fmt.Sprintf("%s (%d)", rec.Category, rec.Count)
			b.WriteString(cursor + style.Render(header))
			b.WriteString("\n")
			b.WriteString("    " + v.styles.Muted.Render(kindLabel(rec.Kind)+" › "+rec.Section))
			b.WriteString("\n")
			b.WriteString("    " + v.styles.Normal.Render(rec.Content))
			b.WriteString("\n\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[+/-] Threshold  [r] Reload  [esc] Back  [q] Quit"))

	return b.String()
}

// kindLabel renders a recommendation kind for display.
func kindLabel(kind domain.RecommendationKind) string {
	switch kind {
	case domain.RecommendAddSection:
		return "new section"
	case domain.RecommendAddChecklistItem:
		return "checklist item"
	default:
		return string(kind)
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Threshold returns the current threshold.
func (v *View) Threshold() int {
	return v.threshold
}

// Recommendations returns the currently loaded suggestions (for testing).
func (v *View) Recommendations() []domain.Recommendation {
	return v.recs
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}

// Err returns the last error that occurred.
func (v *View) Err() error {
	return v.err
}
