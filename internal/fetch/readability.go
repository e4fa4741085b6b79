// Package fetch - readability.go provides a readability-based last resort for pages
// where no description block qualifies.
package fetch

import (
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
)

// ReadabilityText runs a readability extractor over the whole document and
// returns the article title and plain text. Both are empty when the page
// cannot be parsed or yields nothing.
func ReadabilityText(documentHTML, pageURL string) (title, text string) {
	documentHTML = strings.TrimSpace(documentHTML)
	if documentHTML == "" {
		return "", ""
	}

	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return "", ""
	}

	article, err := readability.FromReader(strings.NewReader(documentHTML), parsedURL)
	if err != nil {
		return "", ""
	}

	return strings.TrimSpace(article.Title), strings.TrimSpace(article.TextContent)
}
