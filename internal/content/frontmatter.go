package content

import (
	"bytes"
	"errors"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	errNoFrontMatter      = errors.New("content: no front matter found")
	errInvalidFrontMatter = errors.New("content: invalid front matter")
)

// FrontMatter is the YAML header of an article or page
type FrontMatter struct {
	Title       string   `yaml:"title"`
	Slug        string   `yaml:"slug"`
	Description string   `yaml:"description"`
	Date        string   `yaml:"date"`
	Updated     string   `yaml:"updated"`
	Tags        []string `yaml:"tags"`
	Category    string   `yaml:"category"`
	Draft       bool     `yaml:"draft"`
	Order       int      `yaml:"order"`
}

// ParseFrontMatter splits raw into its YAML header and markdown body
func ParseFrontMatter(raw []byte) (FrontMatter, []byte, error) {
	norm := bytes.ReplaceAll(bytes.TrimSpace(raw), []byte("\r\n"), []byte("\n"))

	const (
		sep      = "---"
		sepLine  = sep + "\n"
		closeMid = "\n" + sep + "\n"
	)

	if !bytes.HasPrefix(norm, []byte(sepLine)) {
		return FrontMatter{}, norm, errNoFrontMatter
	}
	rest := norm[len(sepLine):]

	var yamlPart, body []byte
	switch {
	case bytes.Contains(rest, []byte(closeMid)):
		parts := bytes.SplitN(rest, []byte(closeMid), 2)
		yamlPart, body = parts[0], parts[1]
	case bytes.HasSuffix(rest, []byte("\n"+sep)):
		yamlPart = rest[:len(rest)-len("\n"+sep)]
	case bytes.HasPrefix(rest, []byte(sepLine)):
		body = rest[len(sepLine):]
	default:
		return FrontMatter{}, norm, errInvalidFrontMatter
	}

	var fm FrontMatter
	if len(bytes.TrimSpace(yamlPart)) > 0 {
		if err := yaml.Unmarshal(yamlPart, &fm); err != nil {
			return FrontMatter{}, norm, errors.Join(errInvalidFrontMatter, err)
		}
	}
	return fm, bytes.TrimSpace(body), nil
}

// ParseTime accepts the date layouts authors actually use
func ParseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{
		time.RFC3339,
		time.DateOnly,
		"2006-01-02 15:04",
		time.DateTime,
		"02-01-2006",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
