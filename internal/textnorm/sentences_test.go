package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentencesSplitsOnTerminalPunctuation(t *testing.T) {
	got := Sentences("This is the first sentence. And here is another one! Is this a third?")
	assert.Equal(t, []string{
		"This is the first sentence",
		"And here is another one",
		"Is this a third",
	}, got)
}

func TestSentencesDropsShortFragments(t *testing.T) {
	got := Sentences("1. Intro. This sentence is long enough to keep. 2.2")
	assert.Equal(t, []string{"This sentence is long enough to keep"}, got)
}

func TestSentencesArabicQuestionMark(t *testing.T) {
	got := Sentences("هل هذه جمله عربيه كامله؟ نعم هي كذلك بالتاكيد.")
	assert.Len(t, got, 2)
}

func TestSentencesKeepsTrailingUnterminatedSentence(t *testing.T) {
	got := Sentences("A complete sentence here. And a trailing one without a period")
	assert.Len(t, got, 2)
}

func TestParagraphCount(t *testing.T) {
	assert.Equal(t, 0, ParagraphCount(""))
	assert.Equal(t, 1, ParagraphCount("single block\nstill the same block"))
	assert.Equal(t, 2, ParagraphCount("first block\n\nsecond block"))
	assert.Equal(t, 3, ParagraphCount("one\n\ntwo\n\n\n\nthree"))
}

func TestProfileMeasuresShape(t *testing.T) {
	text := "The first sentence has six tokens. The second sentence also has tokens.\n\nA new paragraph starts down here."

	p := Profile(text)
	assert.Equal(t, 3, p.SentenceCount)
	assert.Equal(t, 2, p.ParagraphCount)
	assert.InDelta(t, 6.0, p.AvgSentenceTokens, 0.5)
}

func TestProfileEmptyText(t *testing.T) {
	p := Profile("")
	assert.Equal(t, 0, p.SentenceCount)
	assert.Equal(t, 0, p.ParagraphCount)
	assert.Equal(t, 0.0, p.AvgSentenceTokens)
}
