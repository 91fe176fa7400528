package stats

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/verdex/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/verdex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/verdex/internal/core/domain"
	"github.com/custodia-labs/verdex/internal/core/ports/driving"
)

type stubRecommendationService struct {
	stats *domain.AggregateStats
	err   error
}

func (s *stubRecommendationService) Stats(_ context.Context) (*domain.AggregateStats, error) {
	return s.stats, s.err
}

func (s *stubRecommendationService) Recommend(_ context.Context, _ int) ([]domain.Recommendation, error) {
	return nil, s.err
}

type stubIngestOrchestrator struct {
	report *driving.IngestReport
	err    error
	called bool
}

func (s *stubIngestOrchestrator) Ingest(_ context.Context, _ []string) (*driving.IngestReport, error) {
	return s.report, s.err
}

func (s *stubIngestOrchestrator) IngestAll(_ context.Context) (*driving.IngestReport, error) {
	s.called = true
	return s.report, s.err
}

func (s *stubIngestOrchestrator) Status(_ context.Context) (*driving.IngestStatus, error) {
	return &driving.IngestStatus{}, nil
}

func TestView_Init_LoadsStats(t *testing.T) {
	rec := &stubRecommendationService{
		stats: &domain.AggregateStats{TotalRecords: 4},
	}
	view := NewView(styles.DefaultStyles(), rec, &stubIngestOrchestrator{})

	cmd := view.Init()
	require.NotNil(t, cmd)

	msg := cmd()
	loaded, ok := msg.(messages.StatsLoaded)
	require.True(t, ok)
	require.NoError(t, loaded.Err)
	assert.Equal(t, 4, loaded.Stats.TotalRecords)
}

func TestView_Update_StatsLoaded(t *testing.T) {
	view := NewView(styles.DefaultStyles(), &stubRecommendationService{}, &stubIngestOrchestrator{})
	view.loading = true

	view.Update(messages.StatsLoaded{
		Stats: &domain.AggregateStats{TotalRecords: 2, RecordsWithIssues: 1},
	})

	assert.False(t, view.loading)
	require.NotNil(t, view.Stats())
	assert.Equal(t, 2, view.Stats().TotalRecords)
	assert.NoError(t, view.Err())
}

func TestView_Update_StatsLoadedError(t *testing.T) {
	view := NewView(styles.DefaultStyles(), &stubRecommendationService{}, &stubIngestOrchestrator{})

	view.Update(messages.StatsLoaded{Err: errors.New("store unavailable")})

	assert.Error(t, view.Err())
	assert.Nil(t, view.Stats())
}

func TestView_Update_RefreshKey(t *testing.T) {
	ingest := &stubIngestOrchestrator{report: &driving.IngestReport{Processed: 1}}
	view := NewView(styles.DefaultStyles(), &stubRecommendationService{}, ingest)
	view.SetDimensions(80, 24)

	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}
	_, cmd := view.Update(msg)

	require.NotNil(t, cmd)
	result := cmd()
	completed, ok := result.(messages.IngestCompleted)
	require.True(t, ok)
	require.NoError(t, completed.Err)
	assert.True(t, ingest.called)
	assert.Equal(t, 1, completed.Report.Processed)
}

func TestView_Update_IngestCompletedReloads(t *testing.T) {
	rec := &stubRecommendationService{stats: &domain.AggregateStats{TotalRecords: 7}}
	view := NewView(styles.DefaultStyles(), rec, &stubIngestOrchestrator{})

	_, cmd := view.Update(messages.IngestCompleted{Report: &driving.IngestReport{}})

	require.NotNil(t, cmd)
	loaded, ok := cmd().(messages.StatsLoaded)
	require.True(t, ok)
	assert.Equal(t, 7, loaded.Stats.TotalRecords)
}

func TestView_View_RendersCounts(t *testing.T) {
	view := NewView(styles.DefaultStyles(), &stubRecommendationService{}, &stubIngestOrchestrator{})
	view.SetDimensions(80, 24)
	view.stats = &domain.AggregateStats{
		TotalRecords:      5,
		RecordsWithIssues: 3,
		ByCategory: []domain.CategoryCount{
			{Category: "security", Count: 4},
			{Category: "testing", Count: 2},
		},
		ByDecision: map[domain.Decision]int{
			domain.DecisionBlocked: 3,
		},
	}

	output := view.View()

	assert.Contains(t, output, "Verdict Statistics")
	assert.Contains(t, output, "security")
	assert.Contains(t, output, "testing")
	assert.Contains(t, output, "BLOCKED")
}

func TestView_View_EmptyStore(t *testing.T) {
	view := NewView(styles.DefaultStyles(), &stubRecommendationService{}, &stubIngestOrchestrator{})
	view.SetDimensions(80, 24)

	output := view.View()

	assert.Contains(t, output, "No verdicts indexed yet")
}
