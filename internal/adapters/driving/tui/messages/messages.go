// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/verdex/internal/core/domain"
	"github.com/custodia-labs/verdex/internal/core/ports/driving"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewStats is the aggregate statistics view.
	ViewStats
	// ViewRecommendations is the template suggestions view.
	ViewRecommendations
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewStats:
		return "stats"
	case ViewRecommendations:
		return "recommendations"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// StatsLoaded carries aggregate statistics back to the model.
type StatsLoaded struct {
	Stats *domain.AggregateStats
	Err   error
}

// RecommendationsLoaded carries template suggestions back to the model.
type RecommendationsLoaded struct {
	Recommendations []domain.Recommendation
	Threshold       int
	Err             error
}

// IngestCompleted signals a refresh ingest finished.
type IngestCompleted struct {
	Report *driving.IngestReport
	Err    error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
