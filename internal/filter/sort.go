package filter

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/krishiseeds/catalog-service/internal/types"
)

// SortField is a sortable product attribute
type SortField string

const (
	SortByName      SortField = "name"
	SortByCategory  SortField = "category"
	SortByCreatedAt SortField = "createdAt"
	SortByFeatured  SortField = "featured"
)

// Direction is the sort direction
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Spec is a sort field and direction
type Spec struct {
	Field     SortField `json:"field"`
	Direction Direction `json:"direction"`
}

// DefaultSpec is used when the requested sort is unknown
var DefaultSpec = Spec{Field: SortByName, Direction: Asc}

// ParseSpec validates a client-supplied sort. Blank parts take their default.
// An unknown field or direction discards the whole input and yields
// DefaultSpec with ok false.
func ParseSpec(field, direction string) (Spec, bool) {
	spec := DefaultSpec
	ok := true

	switch f := SortField(strings.TrimSpace(field)); f {
	case SortByName, SortByCategory, SortByCreatedAt, SortByFeatured:
		spec.Field = f
	case "":
	default:
		ok = false
	}

	switch d := Direction(strings.ToLower(strings.TrimSpace(direction))); d {
	case Asc, Desc:
		spec.Direction = d
	case "":
	default:
		ok = false
	}

	if !ok {
		return DefaultSpec, false
	}
	return spec, true
}

// newCollator returns an English collator for display names. Collators are
// not safe for concurrent use, so each sort gets its own.
func newCollator() *collate.Collator {
	return collate.New(language.English, collate.IgnoreCase)
}

// compare returns -1, 0 or 1 comparing a and b by field in ascending order
func compare(c *collate.Collator, field SortField, a, b types.Product) int {
	switch field {
	case SortByCategory:
		return strings.Compare(string(a.Category), string(b.Category))
	case SortByCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case SortByFeatured:
		// false < true, so descending puts featured first
		switch {
		case a.Featured == b.Featured:
			return 0
		case !a.Featured:
			return -1
		default:
			return 1
		}
	default:
		return c.CompareString(a.Name, b.Name)
	}
}

// Sort returns a stably sorted copy of products. Equal keys keep their input order.
func Sort(products []types.Product, spec Spec) []types.Product {
	out := append([]types.Product(nil), products...)
	if out == nil {
		out = []types.Product{}
	}
	c := newCollator()
	sign := 1
	if spec.Direction == Desc {
		sign = -1
	}
	sort.SliceStable(out, func(i, j int) bool {
		return sign*compare(c, spec.Field, out[i], out[j]) < 0
	})
	return out
}
