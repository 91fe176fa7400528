package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/verdex/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/verdex/internal/core/domain"
	"github.com/custodia-labs/verdex/internal/core/ports/driving"
)

type mockRecommendationService struct {
	stats *domain.AggregateStats
	recs  []domain.Recommendation
	err   error
}

func (m *mockRecommendationService) Stats(_ context.Context) (*domain.AggregateStats, error) {
	if m.stats == nil {
		return &domain.AggregateStats{}, m.err
	}
	return m.stats, m.err
}

func (m *mockRecommendationService) Recommend(_ context.Context, _ int) ([]domain.Recommendation, error) {
	return m.recs, m.err
}

type mockIngestOrchestrator struct {
	report *driving.IngestReport
	err    error
}

func (m *mockIngestOrchestrator) Ingest(_ context.Context, _ []string) (*driving.IngestReport, error) {
	return m.report, m.err
}

func (m *mockIngestOrchestrator) IngestAll(_ context.Context) (*driving.IngestReport, error) {
	return m.report, m.err
}

func (m *mockIngestOrchestrator) Status(_ context.Context) (*driving.IngestStatus, error) {
	return &driving.IngestStatus{}, nil
}

func validPorts() *Ports {
	return NewPorts(&mockRecommendationService{}, &mockIngestOrchestrator{})
}

func TestNewApp(t *testing.T) {
	t.Run("missing recommendation service returns error", func(t *testing.T) {
		app, err := NewApp(&Ports{Ingest: &mockIngestOrchestrator{}})
		require.Error(t, err)
		assert.Nil(t, app)
		assert.ErrorIs(t, err, ErrMissingRecommendationService)
	})

	t.Run("missing ingest orchestrator returns error", func(t *testing.T) {
		app, err := NewApp(&Ports{Recommendation: &mockRecommendationService{}})
		require.Error(t, err)
		assert.Nil(t, app)
		assert.ErrorIs(t, err, ErrMissingIngestOrchestrator)
	})

	t.Run("valid ports starts on menu", func(t *testing.T) {
		app, err := NewApp(validPorts())
		require.NoError(t, err)
		assert.Equal(t, messages.ViewMenu, app.CurrentView())
		assert.False(t, app.Ready())
	})
}

func TestApp_Update_WindowSize(t *testing.T) {
	app, err := NewApp(validPorts())
	require.NoError(t, err)

	model, cmd := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Nil(t, cmd)
	updated, ok := model.(*App)
	require.True(t, ok)
	assert.True(t, updated.Ready())
}

func TestApp_Update_CtrlCQuits(t *testing.T) {
	app, err := NewApp(validPorts())
	require.NoError(t, err)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_Update_ViewChanged(t *testing.T) {
	app, err := NewApp(validPorts())
	require.NoError(t, err)
	app.SetDimensions(80, 24)

	t.Run("stats view loads on entry", func(t *testing.T) {
		_, cmd := app.Update(messages.ViewChanged{View: messages.ViewStats})
		assert.Equal(t, messages.ViewStats, app.CurrentView())
		require.NotNil(t, cmd)

		msg := cmd()
		_, ok := msg.(messages.StatsLoaded)
		assert.True(t, ok)
	})

	t.Run("recommendations view loads on entry", func(t *testing.T) {
		_, cmd := app.Update(messages.ViewChanged{View: messages.ViewRecommendations})
		assert.Equal(t, messages.ViewRecommendations, app.CurrentView())
		require.NotNil(t, cmd)

		msg := cmd()
		_, ok := msg.(messages.RecommendationsLoaded)
		assert.True(t, ok)
	})

	t.Run("help view needs no command", func(t *testing.T) {
		_, cmd := app.Update(messages.ViewChanged{View: messages.ViewHelp})
		assert.Equal(t, messages.ViewHelp, app.CurrentView())
		assert.Nil(t, cmd)
	})
}

func TestApp_Update_EscReturnsToMenu(t *testing.T) {
	app, err := NewApp(validPorts())
	require.NoError(t, err)
	app.SetDimensions(80, 24)

	app.Update(messages.ViewChanged{View: messages.ViewStats})
	require.Equal(t, messages.ViewStats, app.CurrentView())

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_Update_StatsLoadedForwarded(t *testing.T) {
	app, err := NewApp(validPorts())
	require.NoError(t, err)
	app.SetDimensions(80, 24)
	app.Update(messages.ViewChanged{View: messages.ViewStats})

	app.Update(messages.StatsLoaded{
		Stats: &domain.AggregateStats{TotalRecords: 3},
	})

	output := app.View()
	assert.Contains(t, output, "Total records:")
}

func TestApp_View_NotReady(t *testing.T) {
	app, err := NewApp(validPorts())
	require.NoError(t, err)

	assert.Equal(t, "Initialising...", app.View())
}

func TestApp_View_Help(t *testing.T) {
	app, err := NewApp(validPorts())
	require.NoError(t, err)
	app.SetDimensions(80, 24)
	app.Update(messages.ViewChanged{View: messages.ViewHelp})

	output := app.View()
	assert.Contains(t, output, "Help")
	assert.Contains(t, output, "threshold")
}

func TestApp_WithContext(t *testing.T) {
	app, err := NewApp(validPorts())
	require.NoError(t, err)

	ctx := context.Background()
	assert.Equal(t, app, app.WithContext(ctx))
}
