package keywords

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// accentStripper removes combining marks after canonical decomposition,
// so "é" and "e" compare equal.
var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases, strips accents and collapses whitespace.
// All matching happens over normalized text.
func Normalize(s string) string {
	s = strings.ToLower(s)
	if out, _, err := transform.String(accentStripper, s); err == nil {
		s = out
	}
	return strings.Join(strings.Fields(s), " ")
}

// ContainsPhrase reports whether the normalized phrase occurs in the
// normalized text at word boundaries. Both arguments must already be
// normalized. Boundary checks are rune-aware, so a phrase never matches
// inside a longer word ("cdi" does not match "accident").
func ContainsPhrase(text, phrase string) bool {
	if phrase == "" {
		return false
	}

	for start := 0; start <= len(text)-len(phrase); {
		idx := strings.Index(text[start:], phrase)
		if idx == -1 {
			return false
		}
		idx += start

		if boundaryBefore(text, idx) && boundaryAfter(text, idx+len(phrase)) {
			return true
		}
		start = idx + 1
	}
	return false
}

func boundaryBefore(text string, idx int) bool {
	if idx == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:idx])
	return !isWordRune(r)
}

func boundaryAfter(text string, idx int) bool {
	if idx >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[idx:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
