package plagiarism

import (
	"math"

	"github.com/methkalz/edu-net-11-sub004/internal/models"
)

// StructuralSimilarity compares document shape: sentence count, average
// sentence length and paragraph count each contribute a ratio of
// 1 - |a-b|/max(a,b), and the score is their mean. Lexically similar but
// reorganized documents score lower; mirrored structure scores higher even
// with paraphrased wording.
func StructuralSimilarity(a, b models.StructureProfile) float64 {
	sum := shapeRatio(float64(a.SentenceCount), float64(b.SentenceCount)) +
		shapeRatio(a.AvgSentenceTokens, b.AvgSentenceTokens) +
		shapeRatio(float64(a.ParagraphCount), float64(b.ParagraphCount))
	return sum / 3.0
}

func shapeRatio(a, b float64) float64 {
	if a == 0 && b == 0 {
		return 0.0
	}
	return 1.0 - math.Abs(a-b)/math.Max(a, b)
}
