package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/jonathan/apply-assistant/internal/types"
)

// containerTags are considered by the largest-block fallback.
var containerTags = map[string]bool{
	"div":     true,
	"section": true,
	"article": true,
}

// BlocksFromHTML parses an HTML document into text blocks in document order.
// A block is produced for every element that satisfies at least one selector
// of the table or is a div, section or article. Script, style and noscript
// elements are removed first.
func BlocksFromHTML(doc string, families []Family) ([]types.TextBlock, error) {
	if families == nil {
		families = DefaultFamilies()
	}

	root, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	root.Find("script, style, noscript").Remove()

	matched := make(map[*html.Node][]string)
	for _, selector := range AllSelectors(families) {
		root.Find(selector).Each(func(_ int, s *goquery.Selection) {
			node := s.Get(0)
			matched[node] = appendUnique(matched[node], selector)
		})
	}

	var blocks []types.TextBlock
	root.Find("*").Each(func(_ int, s *goquery.Selection) {
		node := s.Get(0)
		tag := goquery.NodeName(s)
		selectors := matched[node]
		if len(selectors) == 0 && !containerTags[tag] {
			return
		}
		className, _ := s.Attr("class")
		blocks = append(blocks, types.TextBlock{
			Text:      s.Text(),
			ClassName: className,
			Tag:       tag,
			Selectors: selectors,
		})
	})

	return blocks, nil
}

// FromHTML extracts the job description from an HTML document with the Extractor's table.
func (e *Extractor) FromHTML(doc string) (types.ExtractionResult, error) {
	blocks, err := BlocksFromHTML(doc, e.families)
	if err != nil {
		return types.ExtractionResult{}, err
	}
	return e.Extract(blocks), nil
}

func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}
