package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD, drops combining marks (Latin diacritics and
// Arabic tashkeel alike), and recomposes.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// unifyArabic folds orthographically equivalent Arabic letter forms so that
// spelling variation does not defeat comparison. Tatweel is dropped entirely.
func unifyArabic(r rune) rune {
	switch r {
	case 'أ', 'إ', 'آ', 'ٱ':
		return 'ا'
	case 'ى', 'ئ':
		return 'ي'
	case 'ة':
		return 'ه'
	case 'ؤ':
		return 'و'
	case 'ـ': // tatweel
		return -1
	}
	return r
}

// basic punctuation kept in the canonical form; everything else outside
// letters/digits is pruned
func isBasicPunct(r rune) bool {
	switch r {
	case '.', ',', '!', '?', ';', ':', '-', '\'', '"', '(', ')', '،', '؛', '؟':
		return true
	}
	return false
}

// Normalize canonicalizes raw text for comparison. The steps are applied in a
// fixed order and hold for any input, so identical text always yields an
// identical canonical string. Empty input yields empty output.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ToLower(text)

	if stripped, _, err := transform.String(stripMarks, text); err == nil {
		text = stripped
	}

	text = strings.Map(unifyArabic, text)

	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || isBasicPunct(r) {
			sb.WriteRune(r)
		} else {
			sb.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(sb.String()), " ")
}
