package vault

import "github.com/agnivade/levenshtein"

// MaxDistance is the largest edit distance at which a stored label still
// matches a query.
const MaxDistance = 2

// Distance returns the Levenshtein distance between a and b: the minimum
// number of single-rune insertions, deletions, or substitutions turning a
// into b. Comparison is case-sensitive.
func Distance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// Matches reports whether label is close enough to query to be returned
// by Find.
func Matches(label, query string) bool {
	return Distance(label, query) <= MaxDistance
}
