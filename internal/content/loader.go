// Package content loads the markdown articles and static pages that are
// searched alongside the product catalog.
package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/krishiseeds/catalog-service/internal/catalog"
	"github.com/krishiseeds/catalog-service/internal/search"
)

const (
	articlesDir = "articles"
	pagesDir    = "pages"

	excerptLength = 180
)

// Document is one rendered article or page
type Document struct {
	Type        search.ItemType `json:"type"`
	Slug        string          `json:"slug"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    string          `json:"category,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	Date        time.Time       `json:"date"`
	Order       int             `json:"order,omitempty"`
	HTML        string          `json:"html"`
	Text        string          `json:"-"`
	Path        string          `json:"-"`
}

// URL is the storefront path of the document
func (d Document) URL() string {
	if d.Type == search.TypeArticle {
		return "/blog/" + d.Slug
	}
	return "/" + d.Slug
}

// Corpus is the loaded set of articles and pages
type Corpus struct {
	Articles []Document `json:"articles"`
	Pages    []Document `json:"pages"`
	Warnings []string   `json:"warnings,omitempty"`
}

// Loader reads content directories
type Loader struct {
	root     string
	renderer *Renderer
	logger   zerolog.Logger
}

// NewLoader creates a loader rooted at dir, which holds articles/ and pages/
func NewLoader(dir string, logger zerolog.Logger) *Loader {
	return &Loader{
		root:     dir,
		renderer: NewRenderer(),
		logger:   logger.With().Str("component", "content_loader").Logger(),
	}
}

// Load reads every markdown file. A missing directory is an empty corpus;
// unreadable files are skipped with a warning.
func (l *Loader) Load() (*Corpus, error) {
	c := &Corpus{Articles: []Document{}, Pages: []Document{}}

	articles, warns, err := l.loadDir(filepath.Join(l.root, articlesDir), search.TypeArticle)
	if err != nil {
		return nil, err
	}
	c.Articles = articles
	c.Warnings = append(c.Warnings, warns...)

	pages, warns, err := l.loadDir(filepath.Join(l.root, pagesDir), search.TypePage)
	if err != nil {
		return nil, err
	}
	c.Pages = pages
	c.Warnings = append(c.Warnings, warns...)

	// Newest articles first, pages by explicit order then title
	sort.SliceStable(c.Articles, func(i, j int) bool {
		return c.Articles[i].Date.After(c.Articles[j].Date)
	})
	sort.SliceStable(c.Pages, func(i, j int) bool {
		if c.Pages[i].Order != c.Pages[j].Order {
			return c.Pages[i].Order < c.Pages[j].Order
		}
		return c.Pages[i].Title < c.Pages[j].Title
	})

	for _, w := range c.Warnings {
		l.logger.Warn().Msg(w)
	}
	l.logger.Info().Int("articles", len(c.Articles)).Int("pages", len(c.Pages)).Msg("Content loaded")
	return c, nil
}

func (l *Loader) loadDir(dir string, kind search.ItemType) ([]Document, []string, error) {
	docs := []Document{}
	var warnings []string

	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return docs, nil, nil
	}

	seen := make(map[string]string)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}

		doc, err := l.loadFile(path, kind)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", path, err))
			return nil
		}
		if doc == nil {
			return nil
		}
		if prev, dup := seen[doc.Slug]; dup {
			warnings = append(warnings, fmt.Sprintf("%s: duplicate slug %q (already used by %s), skipped", path, doc.Slug, prev))
			return nil
		}
		seen[doc.Slug] = path
		docs = append(docs, *doc)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to walk %s: %w", dir, err)
	}
	return docs, warnings, nil
}

// loadFile returns nil for drafts
func (l *Loader) loadFile(path string, kind search.ItemType) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	fm, body, err := ParseFrontMatter(raw)
	if err != nil && !errors.Is(err, errNoFrontMatter) {
		return nil, err
	}
	if fm.Draft {
		return nil, nil
	}

	html, err := l.renderer.HTML(body)
	if err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	plain := l.renderer.PlainText(body)

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	doc := &Document{
		Type:        kind,
		Slug:        resolveSlug(fm, base),
		Title:       strings.TrimSpace(fm.Title),
		Description: strings.TrimSpace(fm.Description),
		Category:    fm.Category,
		Tags:        fm.Tags,
		Date:        ParseTime(fm.Date),
		Order:       fm.Order,
		HTML:        html,
		Text:        plain,
		Path:        path,
	}
	if doc.Title == "" {
		doc.Title = base
	}
	if doc.Description == "" {
		doc.Description = Excerpt(plain, excerptLength)
	}
	if doc.Date.IsZero() {
		if info, err := os.Stat(path); err == nil {
			doc.Date = info.ModTime().UTC()
		}
	}
	return doc, nil
}

func resolveSlug(fm FrontMatter, base string) string {
	for _, s := range []string{fm.Slug, fm.Title, base} {
		if slug := catalog.Slugify(s); slug != "" {
			return slug
		}
	}
	return base
}

// Article returns the article with the given slug
func (c *Corpus) Article(slug string) (Document, bool) {
	for _, d := range c.Articles {
		if d.Slug == slug {
			return d, true
		}
	}
	return Document{}, false
}

// SearchItems returns articles then pages as search items
func (c *Corpus) SearchItems() []search.Item {
	items := make([]search.Item, 0, len(c.Articles)+len(c.Pages))
	for _, group := range [][]Document{c.Articles, c.Pages} {
		for _, d := range group {
			items = append(items, search.Item{
				Type:        d.Type,
				Title:       d.Title,
				Description: d.Description,
				URL:         d.URL(),
				Category:    d.Category,
				Date:        d.Date,
			})
		}
	}
	return items
}
