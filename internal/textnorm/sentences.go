package textnorm

import (
	"strings"
	"unicode/utf8"

	"github.com/methkalz/edu-net-11-sub004/internal/models"
)

// minSentenceRunes filters out headings, numbering and other fragments
const minSentenceRunes = 10

func isTerminal(r rune) bool {
	switch r {
	case '.', '!', '?', '؟':
		return true
	}
	return false
}

// Sentences splits text on terminal punctuation, discarding fragments shorter
// than ten characters.
func Sentences(text string) []string {
	var sentences []string
	var current strings.Builder

	flush := func() {
		s := strings.TrimSpace(current.String())
		current.Reset()
		if utf8.RuneCountInString(s) >= minSentenceRunes {
			sentences = append(sentences, s)
		}
	}

	for _, r := range text {
		if isTerminal(r) {
			flush()
			continue
		}
		current.WriteRune(r)
	}
	flush()

	return sentences
}

// ParagraphCount counts blank-line separated blocks. Non-empty text with no
// blank lines is a single paragraph.
func ParagraphCount(text string) int {
	count := 0
	inBlock := false

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			inBlock = false
			continue
		}
		if !inBlock {
			count++
			inBlock = true
		}
	}

	return count
}

// Profile measures document shape on the raw text: the whitespace collapse in
// the canonical form erases paragraph boundaries, so structure has to be read
// before normalization.
func Profile(raw string) models.StructureProfile {
	sentences := Sentences(raw)

	totalTokens := 0
	for _, s := range sentences {
		totalTokens += len(strings.Fields(s))
	}

	avg := 0.0
	if len(sentences) > 0 {
		avg = float64(totalTokens) / float64(len(sentences))
	}

	return models.StructureProfile{
		SentenceCount:     len(sentences),
		AvgSentenceTokens: avg,
		ParagraphCount:    ParagraphCount(raw),
	}
}
