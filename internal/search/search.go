// Package search implements the site-wide search over products, articles and pages.
package search

import (
	"sort"
	"strings"
	"time"

	"github.com/krishiseeds/catalog-service/internal/types"
)

// ItemType is the kind of a searchable item
type ItemType string

const (
	TypeProduct ItemType = "product"
	TypeArticle ItemType = "article"
	TypePage    ItemType = "page"
)

// SortMode orders search results
type SortMode string

const (
	SortRelevance SortMode = "relevance"
	SortTitle     SortMode = "title"
	SortDate      SortMode = "date"
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 50

	titleWeight       = 2
	descriptionWeight = 1
)

// Item is one searchable entry
type Item struct {
	Type        ItemType  `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Category    string    `json:"category,omitempty"`
	Date        time.Time `json:"date,omitempty"`
}

// Hit is an item with its relevance score
type Hit struct {
	Item
	Score int `json:"score"`
}

// Query is a site-wide search request
type Query struct {
	Text    string     `json:"q"`
	Types   []ItemType `json:"types,omitempty"`
	Sort    SortMode   `json:"sort"`
	Page    int        `json:"page"`
	PerPage int        `json:"perPage"`
	// MatchesOnly drops zero-score items when Text is set
	MatchesOnly bool `json:"matchesOnly,omitempty"`
}

// Result is one page of search results
type Result struct {
	Hits    []Hit  `json:"results"`
	Total   int    `json:"total"`
	Matches int    `json:"matches"`
	Page    int    `json:"page"`
	PerPage int    `json:"perPage"`
	Pages   int    `json:"pages"`
	Query   string `json:"query"`
}

// Score weighs a case-insensitive title match twice a description match
func Score(item Item, text string) int {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return 0
	}
	score := 0
	if strings.Contains(strings.ToLower(item.Title), needle) {
		score += titleWeight
	}
	if strings.Contains(strings.ToLower(item.Description), needle) {
		score += descriptionWeight
	}
	return score
}

// Search filters by type, scores, sorts and paginates. Zero-score items stay
// in the result unless MatchesOnly is set; relevance ties keep corpus order.
func Search(items []Item, q Query) Result {
	q = normalize(q)

	typeSet := make(map[ItemType]struct{}, len(q.Types))
	for _, t := range q.Types {
		typeSet[t] = struct{}{}
	}

	hits := make([]Hit, 0, len(items))
	matches := 0
	for _, it := range items {
		if len(typeSet) > 0 {
			if _, ok := typeSet[it.Type]; !ok {
				continue
			}
		}
		s := Score(it, q.Text)
		if s > 0 {
			matches++
		}
		if q.MatchesOnly && q.Text != "" && s == 0 {
			continue
		}
		hits = append(hits, Hit{Item: it, Score: s})
	}

	sortHits(hits, q.Sort)

	total := len(hits)
	pages := (total + q.PerPage - 1) / q.PerPage
	// pages past the end are empty; comparing page numbers first keeps a huge
	// page from overflowing the offset
	start, end := total, total
	if q.Page <= pages {
		start = (q.Page - 1) * q.PerPage
		end = min(start+q.PerPage, total)
	}

	return Result{
		Hits:    hits[start:end],
		Total:   total,
		Matches: matches,
		Page:    q.Page,
		PerPage: q.PerPage,
		Pages:   pages,
		Query:   q.Text,
	}
}

func normalize(q Query) Query {
	q.Text = strings.TrimSpace(q.Text)
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = DefaultPerPage
	}
	if q.PerPage > MaxPerPage {
		q.PerPage = MaxPerPage
	}
	switch q.Sort {
	case SortRelevance, SortTitle, SortDate:
	default:
		q.Sort = SortRelevance
	}
	return q
}

func sortHits(hits []Hit, mode SortMode) {
	switch mode {
	case SortTitle:
		sort.SliceStable(hits, func(i, j int) bool {
			return strings.ToLower(hits[i].Title) < strings.ToLower(hits[j].Title)
		})
	case SortDate:
		sort.SliceStable(hits, func(i, j int) bool {
			return hits[i].Date.After(hits[j].Date)
		})
	default:
		sort.SliceStable(hits, func(i, j int) bool {
			return hits[i].Score > hits[j].Score
		})
	}
}

// ParseTypes resolves type names, ignoring unknown ones
func ParseTypes(values []string) []ItemType {
	var out []ItemType
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			switch t := ItemType(strings.ToLower(strings.TrimSpace(part))); t {
			case TypeProduct, TypeArticle, TypePage:
				out = append(out, t)
			}
		}
	}
	return out
}

// FromProducts converts catalog products into search items
func FromProducts(products []types.Product) []Item {
	items := make([]Item, 0, len(products))
	for _, p := range products {
		items = append(items, Item{
			Type:        TypeProduct,
			Title:       p.Name,
			Description: p.Description,
			URL:         "/products/" + p.ID,
			Category:    string(p.Category),
			Date:        p.CreatedAt,
		})
	}
	return items
}
