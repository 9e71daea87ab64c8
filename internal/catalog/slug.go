package catalog

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonSlugRe = regexp.MustCompile(`[^a-z0-9]+`)

// fallbackID is used when a name has no slug-able characters
const fallbackID = "product"

// Slugify lower-cases name, collapses every run of characters outside [a-z0-9]
// into one hyphen and trims leading and trailing hyphens.
func Slugify(name string) string {
	s := strings.ToLower(foldDiacritics(name))
	s = nonSlugRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// foldDiacritics strips combining marks so accented Latin letters survive slugging
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// slugAllocator hands out unique ids within one catalog snapshot
type slugAllocator struct {
	seen map[string]int
}

func newSlugAllocator() *slugAllocator {
	return &slugAllocator{seen: make(map[string]int)}
}

// allocate returns base on first use and base-2, base-3, ... afterwards
func (a *slugAllocator) allocate(base string) string {
	if base == "" {
		base = fallbackID
	}
	n := a.seen[base]
	a.seen[base] = n + 1
	if n == 0 {
		return base
	}
	for {
		candidate := base + "-" + strconv.Itoa(n+1)
		if _, taken := a.seen[candidate]; !taken {
			a.seen[candidate] = 1
			return candidate
		}
		n++
	}
}
