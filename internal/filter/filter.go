// Package filter computes the visible, ordered subset of the catalog for a
// set of facet selections, a sort and an optional text query.
package filter

import (
	"github.com/krishiseeds/catalog-service/internal/types"
)

// State is the set of active facet selections. Empty sets do not restrict.
// Availability and Featured only constrain when true.
type State struct {
	Categories       []types.Category   `json:"categories,omitempty"`
	Seasons          []types.Season     `json:"seasons,omitempty"`
	DifficultyLevels []types.Difficulty `json:"difficultyLevels,omitempty"`
	Availability     *bool              `json:"availability,omitempty"`
	Featured         *bool              `json:"featured,omitempty"`
}

// IsEmpty reports whether the state restricts nothing
func (s State) IsEmpty() bool {
	return len(s.Categories) == 0 && len(s.Seasons) == 0 && len(s.DifficultyLevels) == 0 &&
		!isTrue(s.Availability) && !isTrue(s.Featured)
}

// Stats is the "N of M products" summary of a filter pass
type Stats struct {
	TotalProducts int `json:"totalProducts"`
	FilteredCount int `json:"filteredCount"`
}

// Apply returns the products passing every facet, in input order. The input
// slice is never modified and the result never aliases it.
func Apply(products []types.Product, state State) []types.Product {
	out := make([]types.Product, 0, len(products))
	pred := predicate(state)
	for _, p := range products {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}

// ApplyWithStats filters and reports counts
func ApplyWithStats(products []types.Product, state State) ([]types.Product, Stats) {
	out := Apply(products, state)
	return out, Stats{TotalProducts: len(products), FilteredCount: len(out)}
}

// predicate builds one AND-ed predicate from the facet selections. Each facet
// is OR-ed across its selected values.
func predicate(state State) func(types.Product) bool {
	var preds []func(types.Product) bool

	if len(state.Categories) > 0 {
		set := toSet(state.Categories)
		preds = append(preds, func(p types.Product) bool {
			_, ok := set[p.Category]
			return ok
		})
	}

	if len(state.Seasons) > 0 {
		set := toSet(state.Seasons)
		preds = append(preds, func(p types.Product) bool {
			return p.HasSeason(set)
		})
	}

	if len(state.DifficultyLevels) > 0 {
		set := toSet(state.DifficultyLevels)
		preds = append(preds, func(p types.Product) bool {
			_, ok := set[p.DifficultyLevel]
			return ok
		})
	}

	if isTrue(state.Availability) {
		preds = append(preds, func(p types.Product) bool { return p.Availability })
	}

	if isTrue(state.Featured) {
		preds = append(preds, func(p types.Product) bool { return p.Featured })
	}

	return func(p types.Product) bool {
		for _, pred := range preds {
			if !pred(p) {
				return false
			}
		}
		return true
	}
}

func toSet[T comparable](values []T) map[T]struct{} {
	set := make(map[T]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func isTrue(b *bool) bool {
	return b != nil && *b
}
