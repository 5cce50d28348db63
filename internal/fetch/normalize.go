package fetch

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// NormalizeURL strips the fragment from an absolute URL so that trivial
// variants of the same link coalesce. Anything that does not parse as an
// absolute URL is returned unchanged.
func NormalizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return raw
	}
	u.Fragment = ""
	u.RawFragment = ""
	return u.String()
}

// CleanTitle trims a feed title and flattens any embedded markup or
// entities to plain text.
func CleanTitle(title string) string {
	title = strings.TrimSpace(title)
	if !strings.ContainsAny(title, "<&") {
		return title
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(title))
	if err != nil {
		return title
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
