package domain

import "sort"

// TermSet is the in-memory representation of the answered-terms set. It is
// converted to and from a sorted list only at the persistence boundary.
type TermSet map[string]struct{}

// NewTermSet builds a set from the given term IDs.
func NewTermSet(terms ...string) TermSet {
	set := make(TermSet, len(terms))
	set.Add(terms...)
	return set
}

// Add inserts the given term IDs into the set.
func (s TermSet) Add(terms ...string) {
	for _, term := range terms {
		s[term] = struct{}{}
	}
}

// Has reports whether the term ID is in the set.
func (s TermSet) Has(term string) bool {
	_, ok := s[term]
	return ok
}

// Len returns the number of terms in the set.
func (s TermSet) Len() int { return len(s) }

// Sorted returns the set as a lexicographically sorted list, the form used
// both for storage and for stable display.
func (s TermSet) Sorted() []string {
	terms := make([]string, 0, len(s))
	for term := range s {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}
