package utils

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlugChars   = regexp.MustCompile("[^a-z0-9-]")
	repeatedDashes = regexp.MustCompile("-+")
)

// Slugify converts a string to a URL-friendly slug.
// Accents are stripped, so "Barbearia São João" becomes "barbearia-sao-joao".
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if stripped, _, err := transform.String(t, s); err == nil {
		s = stripped
	}

	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	s = nonSlugChars.ReplaceAllString(s, "")
	s = repeatedDashes.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}

// SlugCandidate returns the n-th alternative of a taken slug: base, base-2, base-3...
func SlugCandidate(base string, n int) string {
	if n <= 1 {
		return base
	}
	return base + "-" + strconv.Itoa(n)
}
