package parser

import (
	"unicode"
	"unicode/utf8"

	"github.com/fuzumoe/crawltorch-api/internal/model"
)

// Search finds occurrences of term in text, each with contextChars bytes of
// surrounding context. Matching walks the original text rune by rune, so
// positions are byte offsets into text even when case folding changes rune
// widths. At most model.MaxSearchMatches matches are returned; the second
// return value reports whether the cap cut the list short.
func Search(text, term string, caseSensitive bool, contextChars int) ([]model.SearchMatch, bool) {
	matches := []model.SearchMatch{}
	if term == "" {
		return matches, false
	}

	for pos := 0; pos < len(text); {
		n := matchLen(text[pos:], term, caseSensitive)
		if n < 0 {
			_, size := utf8.DecodeRuneInString(text[pos:])
			pos += size
			continue
		}
		if len(matches) == model.MaxSearchMatches {
			return matches, true
		}
		matches = append(matches, model.SearchMatch{
			Position: pos,
			Context:  contextAround(text, pos, n, contextChars),
		})
		pos += n
	}
	return matches, false
}

// matchLen reports how many bytes of text the term covers when it matches at
// the start, or -1 when it does not.
func matchLen(text, term string, caseSensitive bool) int {
	i := 0
	for _, tr := range term {
		r, size := utf8.DecodeRuneInString(text[i:])
		if size == 0 {
			return -1
		}
		if !caseSensitive {
			r = unicode.ToLower(r)
			tr = unicode.ToLower(tr)
		}
		if r != tr {
			return -1
		}
		i += size
	}
	return i
}

// contextAround returns the bytes surrounding a match, clamped to the
// document bounds and widened outward to rune boundaries.
func contextAround(text string, pos, matched, contextChars int) string {
	start := pos - contextChars
	if start < 0 {
		start = 0
	}
	for start > 0 && !utf8.RuneStart(text[start]) {
		start--
	}
	end := pos + matched + contextChars
	if end > len(text) {
		end = len(text)
	}
	for end < len(text) && !utf8.RuneStart(text[end]) {
		end++
	}
	return text[start:end]
}
