package plagiarism

import (
	"testing"

	"github.com/methkalz/edu-net-11-sub004/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestClassifyBoundaries(t *testing.T) {
	cfg := DefaultConfig()

	cases := []struct {
		score  float64
		status models.Status
		review bool
	}{
		{0.0, models.StatusSafe, false},
		{0.4999, models.StatusSafe, false},
		{0.50, models.StatusWarning, false},
		{0.6999, models.StatusWarning, false},
		{0.70, models.StatusFlagged, true},
		{0.95, models.StatusFlagged, true},
		{1.0, models.StatusFlagged, true},
	}

	for _, c := range cases {
		status, review := cfg.Classify(c.score)
		assert.Equal(t, c.status, status, "score %.4f", c.score)
		assert.Equal(t, c.review, review, "score %.4f", c.score)
	}
}

func TestClassifyRespectsOverriddenThresholds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SegmentThreshold = 0.40
	cfg.FlagThreshold = 0.80

	status, review := cfg.Classify(0.75)
	assert.Equal(t, models.StatusWarning, status)
	assert.False(t, review)

	status, review = cfg.Classify(0.80)
	assert.Equal(t, models.StatusFlagged, status)
	assert.True(t, review)
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	bad := DefaultConfig()
	bad.Weights.Fuzzy = 0.5
	assert.Error(t, bad.Validate(), "weights no longer sum to 1.0")

	bad = DefaultConfig()
	bad.FlagThreshold = 0.40
	assert.Error(t, bad.Validate(), "flag threshold below segment threshold")

	bad = DefaultConfig()
	bad.ScanBudget = 0
	assert.Error(t, bad.Validate())

	bad = DefaultConfig()
	bad.TokenCeiling = 0
	assert.Error(t, bad.Validate())

	bad = DefaultConfig()
	bad.MaxWordCount = -1
	assert.Error(t, bad.Validate())
}
