package pets

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Filter returns the records whose name contains query, ignoring case.
// An empty query returns the input unchanged.
func Filter(list []Pet, query string) []Pet {
	if query == "" {
		return list
	}
	q := strings.ToLower(query)
	out := make([]Pet, 0, len(list))
	for _, p := range list {
		if strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, p)
		}
	}
	return out
}

// Closest returns the record name nearest to query by edit distance.
// Used as a hint when a filter matches nothing; ok is false for an empty
// list or query.
func Closest(list []Pet, query string) (name string, ok bool) {
	if query == "" || len(list) == 0 {
		return "", false
	}
	q := strings.ToLower(query)
	best := -1
	for _, p := range list {
		d := levenshtein.ComputeDistance(q, strings.ToLower(p.Name))
		if best < 0 || d < best {
			best, name = d, p.Name
		}
	}
	return name, true
}
