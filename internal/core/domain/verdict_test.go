package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBlockingIssue(t *testing.T) {
	t.Run("constructs issue for each valid tier", func(t *testing.T) {
		for tier := TierMin; tier <= TierMax; tier++ {
			issue, err := NewBlockingIssue(tier, "security", "missing input validation")
			require.NoError(t, err)
			assert.Equal(t, tier, issue.Tier)
			assert.Equal(t, "security", issue.Category)
			assert.Equal(t, "missing input validation", issue.Description)
		}
	})

	t.Run("rejects out-of-range tiers", func(t *testing.T) {
		for _, tier := range []int{0, -1, 4, 99} {
			_, err := NewBlockingIssue(tier, "testing", "no coverage")
			require.Error(t, err, "tier %d must be rejected", tier)
			assert.ErrorIs(t, err, ErrInvalidTier)
		}
	})

	t.Run("allows empty category and description", func(t *testing.T) {
		issue, err := NewBlockingIssue(2, "", "")
		require.NoError(t, err)
		assert.Equal(t, 2, issue.Tier)
	})
}

func TestDecisions(t *testing.T) {
	decisions := Decisions()

	assert.Equal(t, []Decision{
		DecisionApproved,
		DecisionBlocked,
		DecisionNeedsRevision,
		DecisionPending,
	}, decisions)

	assert.NotContains(t, decisions, DecisionUnknown)
}

func TestFingerprintBytes(t *testing.T) {
	t.Run("equal content yields equal fingerprints", func(t *testing.T) {
		a := FingerprintBytes([]byte("# Verdict\nAPPROVED\n"))
		b := FingerprintBytes([]byte("# Verdict\nAPPROVED\n"))
		assert.Equal(t, a, b)
	})

	t.Run("single byte change yields different fingerprint", func(t *testing.T) {
		a := FingerprintBytes([]byte("# Verdict\nAPPROVED\n"))
		b := FingerprintBytes([]byte("# Verdict\nAPPROVED "))
		assert.NotEqual(t, a, b)
	})

	t.Run("empty content has a fingerprint", func(t *testing.T) {
		fp := FingerprintBytes(nil)
		assert.Len(t, string(fp), 64)
	})
}

func TestAggregateStatsCategoryCount(t *testing.T) {
	stats := AggregateStats{
		ByCategory: []CategoryCount{
			{Category: "security", Count: 5},
			{Category: "testing", Count: 2},
		},
	}

	assert.Equal(t, 5, stats.CategoryCount("security"))
	assert.Equal(t, 2, stats.CategoryCount("testing"))
	assert.Equal(t, 0, stats.CategoryCount("documentation"))
}
