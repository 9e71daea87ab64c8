package filter

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/krishiseeds/catalog-service/internal/catalog"
	"github.com/krishiseeds/catalog-service/internal/types"
)

// Query is everything the catalog view is computed from
type Query struct {
	State State  `json:"filters"`
	Sort  Spec   `json:"sort"`
	Text  string `json:"q,omitempty"`
}

// FacetCounts counts products per facet value over a collection
type FacetCounts struct {
	Categories   map[types.Category]int   `json:"categories"`
	Seasons      map[types.Season]int     `json:"seasons"`
	Difficulties map[types.Difficulty]int `json:"difficultyLevels"`
	Available    int                      `json:"available"`
	Featured     int                      `json:"featured"`
}

// Result is the visible catalog view
type Result struct {
	Products []types.Product `json:"products"`
	Stats    Stats           `json:"stats"`
	Facets   FacetCounts     `json:"facets"`
	Sort     Spec            `json:"sort"`
}

// Run computes the view: text match, facet filter, sort. Facet counts are over
// the whole collection so the UI can show counts next to unselected options.
func Run(products []types.Product, q Query) Result {
	if q.Sort.Field == "" {
		q.Sort = DefaultSpec
	}
	if q.Sort.Direction == "" {
		q.Sort.Direction = Asc
	}

	matched := MatchText(products, q.Text)
	filtered := Apply(matched, q.State)
	sorted := Sort(filtered, q.Sort)

	return Result{
		Products: sorted,
		Stats:    Stats{TotalProducts: len(products), FilteredCount: len(sorted)},
		Facets:   Facets(products),
		Sort:     q.Sort,
	}
}

// MatchText keeps products whose name, description, category or subcategory
// contains text, case-insensitively. Blank text keeps everything.
func MatchText(products []types.Product, text string) []types.Product {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return append([]types.Product(nil), products...)
	}
	out := make([]types.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) ||
			strings.Contains(strings.ToLower(string(p.Category)), needle) ||
			strings.Contains(strings.ToLower(p.Subcategory), needle) {
			out = append(out, p)
		}
	}
	return out
}

// Facets counts products per category, season and difficulty
func Facets(products []types.Product) FacetCounts {
	fc := FacetCounts{
		Categories:   make(map[types.Category]int),
		Seasons:      make(map[types.Season]int),
		Difficulties: make(map[types.Difficulty]int),
	}
	for _, p := range products {
		fc.Categories[p.Category]++
		for _, s := range p.Seasonality {
			fc.Seasons[s]++
		}
		fc.Difficulties[p.DifficultyLevel]++
		if p.Availability {
			fc.Available++
		}
		if p.Featured {
			fc.Featured++
		}
	}
	return fc
}

// ParseQuery reads a query from URL parameters. Facet parameters may repeat or
// be comma separated; unknown values are ignored rather than rejected.
//
//	?category=Vegetable,Maize&season=Winter&difficulty=Beginner&available=true&featured=true&q=okra&sort=name&dir=desc
func ParseQuery(values url.Values) Query {
	q := Query{Text: strings.TrimSpace(values.Get("q"))}

	for _, v := range splitParams(values["category"]) {
		if c, ok := catalog.ParseCategory(v); ok {
			q.State.Categories = append(q.State.Categories, c)
		}
	}
	for _, v := range splitParams(values["season"]) {
		if s, ok := catalog.ParseSeason(v); ok {
			q.State.Seasons = append(q.State.Seasons, s)
		}
	}
	for _, v := range splitParams(values["difficulty"]) {
		if d, ok := catalog.ParseDifficultyLabel(v); ok {
			q.State.DifficultyLevels = append(q.State.DifficultyLevels, d)
		}
	}
	q.State.Availability = parseBoolParam(values.Get("available"))
	q.State.Featured = parseBoolParam(values.Get("featured"))

	q.Sort, _ = ParseSpec(values.Get("sort"), values.Get("dir"))
	return q
}

func splitParams(raw []string) []string {
	var out []string
	for _, r := range raw {
		for _, part := range strings.Split(r, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func parseBoolParam(s string) *bool {
	if s == "" {
		return nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil
	}
	return &b
}
