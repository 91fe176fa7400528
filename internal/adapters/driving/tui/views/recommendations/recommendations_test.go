package recommendations

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
)

type stubRecommendationService struct {
	recs []domain.Recommendation
	err  error

	lastThreshold int
}

func (s *stubRecommendationService) Stats(_ context.Context) (*domain.AggregateStats, error) {
	return &domain.AggregateStats{}, s.err
}

func (s *stubRecommendationService) Recommend(_ context.Context, threshold int) ([]domain.Recommendation, error) {
	s.lastThreshold = threshold
	return s.recs, s.err
}

func TestNewView_DefaultThreshold(t *testing.T) {
	view := NewView(styles.DefaultStyles(), &stubRecommendationService{})

	assert.Equal(t, DefaultThreshold, view.Threshold())
}

func TestView_Init_LoadsAtCurrentThreshold(t *testing.T) {
	rec := &stubRecommendationService{
		recs: []domain.Recommendation{
			{Category: "security", Count: 9},
		},
	}
	view := NewView(styles.DefaultStyles(), rec)

	cmd := view.Init()
	require.NotNil(t, cmd)

	msg := cmd()
	loaded, ok := msg.(messages.RecommendationsLoaded)
	require.True(t, ok)
	require.NoError(t, loaded.Err)
	assert.Equal(t, DefaultThreshold, loaded.Threshold)
	assert.Equal(t, DefaultThreshold, rec.lastThreshold)
	assert.Len(t, loaded.Recommendations, 1)
}

func TestView_Update_RaiseThreshold(t *testing.T) {
	view := NewView(styles.DefaultStyles(), &stubRecommendationService{})
	view.SetDimensions(80, 24)

	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}}
	_, cmd := view.Update(msg)

	assert.Equal(t, DefaultThreshold+1, view.Threshold())
	require.NotNil(t, cmd)
}

func TestView_Update_LowerThresholdFloorsAtOne(t *testing.T) {
	view := NewView(styles.DefaultStyles(), &stubRecommendationService{})
	view.SetDimensions(80, 24)
	view.threshold = 1

	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'-'}}
	_, cmd := view.Update(msg)

	assert.Equal(t, 1, view.Threshold())
	assert.Nil(t, cmd)
}

func TestView_Update_StaleThresholdIgnored(t *testing.T) {
	view := NewView(styles.DefaultStyles(), &stubRecommendationService{})
	view.threshold = 5
	view.loading = true

	view.Update(messages.RecommendationsLoaded{
		Recommendations: []domain.Recommendation{{Category: "testing"}},
		Threshold:       3,
	})

	// Result was generated for an older threshold, so it is dropped
	assert.True(t, view.loading)
	assert.Empty(t, view.Recommendations())
}

func TestView_Update_RecommendationsLoaded(t *testing.T) {
	view := NewView(styles.DefaultStyles(), &stubRecommendationService{})
	view.loading = true
	view.selected = 3

	view.Update(messages.RecommendationsLoaded{
		Recommendations: []domain.Recommendation{
			{Category: "security", Count: 9},
		},
		Threshold: DefaultThreshold,
	})

	assert.False(t, view.loading)
	assert.Len(t, view.Recommendations(), 1)
	// Selection is clamped back into range
	assert.Equal(t, 0, view.Selected())
}

func TestView_Update_LoadError(t *testing.T) {
	view := NewView(styles.DefaultStyles(), &stubRecommendationService{})

	view.Update(messages.RecommendationsLoaded{
		Threshold: DefaultThreshold,
		Err:       errors.New("recommend failed"),
	})

	assert.Error(t, view.Err())
}

func TestView_View_RendersSuggestions(t *testing.T) {
	view := NewView(styles.DefaultStyles(), &stubRecommendationService{})
	view.SetDimensions(80, 24)
	view.recs = []domain.Recommendation{
		{
			Kind:     domain.RecommendAddChecklistItem,
			Section:  "Security Checklist",
			Category: "security",
			Content:  "Add a security checklist item (9 occurrences)",
			Count:    9,
		},
	}

	output := view.View()

	assert.Contains(t, output, "Template Recommendations")
	assert.Contains(t, output, "security (9)")
	assert.Contains(t, output, "Security Checklist")
}

func TestView_View_Empty(t *testing.T) {
	view := NewView(styles.DefaultStyles(), &stubRecommendationService{})
	view.SetDimensions(80, 24)

	output := view.View()

	assert.Contains(t, output, "No recurring issue categories")
}
