package plagiarism

import "github.com/methkalz/edu-net-11-sub004/internal/models"

// Classify maps the best aggregate score to the status taxonomy. Review is
// required exactly when the result is flagged. Boundaries are inclusive: a
// best score of exactly 0.70 is flagged.
func (c Config) Classify(maxScore float64) (models.Status, bool) {
	switch {
	case maxScore >= c.FlagThreshold:
		return models.StatusFlagged, true
	case maxScore >= c.SegmentThreshold:
		return models.StatusWarning, false
	default:
		return models.StatusSafe, false
	}
}
