package types

// TextBlock is one text-bearing element of a page, supplied by the caller.
type TextBlock struct {
	Text      string `json:"text"`
	ClassName string `json:"class_name,omitempty"`
	Tag       string `json:"tag,omitempty"`
	// Selectors lists the site-family selector identifiers the element satisfies.
	Selectors []string `json:"selectors,omitempty"`
}

// MatchesSelector reports whether the block satisfies the given selector identifier.
func (b TextBlock) MatchesSelector(selector string) bool {
	for _, s := range b.Selectors {
		if s == selector {
			return true
		}
	}
	return false
}

// ExtractionResult is the extractor output: a text block plus the rule that produced it.
// SourceSelector and Family are empty when the block came from the largest-block fallback,
// and always empty when Text is empty.
type ExtractionResult struct {
	Text           string `json:"text"`
	SourceSelector string `json:"source_selector,omitempty"`
	Family         string `json:"family,omitempty"`
}

// Empty reports whether no block qualified.
func (r ExtractionResult) Empty() bool {
	return r.Text == ""
}
