// Package extract locates the job-description block among a page's text blocks.
package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/apply-assistant/internal/types"
)

// MinDescriptionLength is the exclusive lower bound, in characters, for a
// block to count as a job description.
const MinDescriptionLength = 200

// Family is a group of selectors used by one job board or ATS.
type Family struct {
	Name      string
	Selectors []string
}

// DefaultFamilies returns the selector table in lookup order. The generic
// family is last.
func DefaultFamilies() []Family {
	return []Family{
		{Name: "linkedin", Selectors: []string{
			".description__text",
			".show-more-less-html__markup",
			".jobs-description__content",
			".jobs-box__html-content",
		}},
		{Name: "indeed", Selectors: []string{
			".jobDescriptionText",
			"#jobDescriptionText",
			".jobsearch-jobDescriptionText",
		}},
		{Name: "greenhouse", Selectors: []string{
			"#content",
			".body-text",
			".job-post-content",
		}},
		{Name: "lever", Selectors: []string{
			".section-wrapper",
			".section.page-centered",
		}},
		{Name: "workday", Selectors: []string{
			`[data-automation-id="jobPostingDescription"]`,
		}},
		{Name: "generic", Selectors: []string{
			".job-description",
			"#job-description",
			`[class*="description"]`,
			`[class*="jobDescription"]`,
			`[class*="job-details"]`,
		}},
	}
}

// AllSelectors returns every selector of the given families in table order.
func AllSelectors(families []Family) []string {
	var out []string
	for _, f := range families {
		out = append(out, f.Selectors...)
	}
	return out
}

// excludedClassHints disqualify a block from the fallback tier.
var excludedClassHints = []string{"nav", "footer", "header"}

// Extractor picks the job-description block. It holds only the immutable
// selector table and is safe for concurrent use.
type Extractor struct {
	families []Family
}

// New returns an Extractor over the given selector table, or the default table when nil.
func New(families []Family) *Extractor {
	if families == nil {
		families = DefaultFamilies()
	}
	return &Extractor{families: families}
}

// Families returns the selector table in lookup order.
func (e *Extractor) Families() []Family {
	return e.families
}

// Extract runs the site-specific tier and, if nothing qualifies, the
// largest-block fallback. Every family is tried on every call. A matching
// block whose text is only whitespace is skipped, so a result with an empty
// Text never carries a selector or family.
func (e *Extractor) Extract(blocks []types.TextBlock) types.ExtractionResult {
	for _, family := range e.families {
		for _, selector := range family.Selectors {
			for _, b := range blocks {
				if !b.MatchesSelector(selector) || charLen(b.Text) <= MinDescriptionLength {
					continue
				}
				text := CleanText(b.Text)
				if text == "" {
					continue
				}
				return types.ExtractionResult{
					Text:           text,
					SourceSelector: selector,
					Family:         family.Name,
				}
			}
		}
	}

	return types.ExtractionResult{Text: CleanText(largestBlock(blocks))}
}

// largestBlock returns the longest trimmed block text above the threshold
// whose class name carries no navigation hint.
func largestBlock(blocks []types.TextBlock) string {
	largest := ""
	largestLen := 0
	for _, b := range blocks {
		text := strings.TrimSpace(b.Text)
		n := charLen(text)
		if n <= largestLen || n <= MinDescriptionLength {
			continue
		}
		if hasExcludedHint(b.ClassName) {
			continue
		}
		largest = text
		largestLen = n
	}
	return largest
}

func hasExcludedHint(className string) bool {
	lower := strings.ToLower(className)
	for _, hint := range excludedClassHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

func charLen(s string) int {
	return utf8.RuneCountInString(s)
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	newlineRun    = regexp.MustCompile(`\n+`)
)

// CleanText collapses whitespace runs to one space, newline runs to one
// newline, and trims the result.
func CleanText(text string) string {
	text = whitespaceRun.ReplaceAllString(text, " ")
	text = newlineRun.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

var defaultExtractor = New(nil)

// Extract runs the default Extractor.
func Extract(blocks []types.TextBlock) types.ExtractionResult {
	return defaultExtractor.Extract(blocks)
}
