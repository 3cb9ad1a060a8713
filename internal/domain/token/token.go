package token

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinLength is the minimum token length in runes; shorter tokens are dropped.
const MinLength = 3

// Tokenize normalizes raw text into index-eligible terms: lowercase, every rune
// outside letters/digits/underscore becomes a space, split on whitespace runs,
// drop tokens shorter than MinLength and stop words.
// Pure and deterministic: the same input always yields the same output.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	fields := strings.Fields(strings.Map(normalizeRune, text))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) < MinLength {
			continue
		}
		if stopWords[f] {
			continue
		}
		out = append(out, f)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// normalizeRune lowercases word runes and blanks everything else except whitespace.
// Word runes are Unicode-aware so that diacritics survive and the Polish part of
// the stop list can match.
func normalizeRune(r rune) rune {
	switch {
	case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
		return unicode.ToLower(r)
	case unicode.IsSpace(r):
		return r
	default:
		return ' '
	}
}
