package statistics

import (
	"sort"

	"github.com/naekun/naebot/pkg/entities"
)

// Ranked is one user's value for a ranked field
type Ranked struct {
	UserID string
	Value  int
}

// TopN sorts entries descending by field and keeps the first n. Equal values
// keep their input order. Unknown fields and n <= 0 give an empty result.
func TopN(entries []*entities.UserStats, field entities.StatField, n int) []Ranked {
	if n <= 0 {
		return []Ranked{}
	}

	ranked := make([]Ranked, 0, len(entries))
	for _, e := range entries {
		value, ok := field.Value(&e.Record)
		if !ok {
			return []Ranked{}
		}
		ranked = append(ranked, Ranked{UserID: e.UserID, Value: value})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Value > ranked[j].Value
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
