package identity

import (
	"context"
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NameEntry is one roster employee as seen by the fuzzy matcher.
type NameEntry struct {
	ID        string
	FirstName string
	LastName  string
}

type NameLister interface {
	ListEmployeeNames(ctx context.Context) ([]NameEntry, error)
}

// FuzzyNameMatcher accepts a single candidate whose first and last names are
// each within MaxDistance edits after case and accent folding. More than one
// candidate is treated as a miss.
type FuzzyNameMatcher struct {
	Lister      NameLister
	MaxDistance int
}

func NewFuzzyNameMatcher(lister NameLister) FuzzyNameMatcher {
	return FuzzyNameMatcher{Lister: lister, MaxDistance: 1}
}

func (m FuzzyNameMatcher) Match(ctx context.Context, c Candidate) (string, bool, error) {
	if !c.hasName() {
		return "", false, nil
	}
	entries, err := m.Lister.ListEmployeeNames(ctx)
	if err != nil {
		return "", false, err
	}
	first := fold(c.FirstName)
	last := fold(c.LastName)

	var found string
	hits := 0
	for _, e := range entries {
		if !within(first, fold(e.FirstName), m.MaxDistance) || !within(last, fold(e.LastName), m.MaxDistance) {
			continue
		}
		hits++
		found = e.ID
		if hits > 1 {
			return "", false, nil
		}
	}
	return found, hits == 1, nil
}

func within(a, b string, max int) bool {
	if a == b {
		return true
	}
	if a == "" || b == "" {
		return false
	}
	return fuzzy.LevenshteinDistance(a, b) <= max
}

func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}
