package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/apply-assistant/internal/types"
)

func block(text, class string, selectors ...string) types.TextBlock {
	return types.TextBlock{Text: text, ClassName: class, Tag: "div", Selectors: selectors}
}

func TestExtract_Threshold(t *testing.T) {
	tests := []struct {
		name    string
		length  int
		wantHit bool
	}{
		{"199 characters rejected", 199, false},
		{"200 characters rejected", 200, false},
		{"201 characters accepted", 201, true},
		{"250 characters accepted", 250, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := strings.Repeat("a", tt.length)
			got := Extract([]types.TextBlock{block(text, "jobs-description__content", ".jobs-description__content")})
			if tt.wantHit {
				assert.Equal(t, text, got.Text)
				assert.Equal(t, ".jobs-description__content", got.SourceSelector)
				assert.Equal(t, "linkedin", got.Family)
			} else {
				assert.True(t, got.Empty())
			}
		})
	}
}

func TestExtract_SiteTierSkipsFallback(t *testing.T) {
	site := strings.Repeat("b", 250)
	larger := strings.Repeat("c", 900)

	got := Extract([]types.TextBlock{
		block(larger, "content-wrapper"),
		block(site, "jobDescriptionText", ".jobDescriptionText"),
	})

	assert.Equal(t, site, got.Text)
	assert.Equal(t, ".jobDescriptionText", got.SourceSelector)
	assert.Equal(t, "indeed", got.Family)
}

func TestExtract_TableOrderBeatsDocumentOrder(t *testing.T) {
	generic := strings.Repeat("g", 300)
	lever := strings.Repeat("l", 300)

	got := Extract([]types.TextBlock{
		block(generic, "job-description", ".job-description", `[class*="description"]`),
		block(lever, "section-wrapper", ".section-wrapper"),
	})

	assert.Equal(t, lever, got.Text)
	assert.Equal(t, "lever", got.Family)
}

func TestExtract_SelectorOrderWithinFamily(t *testing.T) {
	first := strings.Repeat("1", 300)
	second := strings.Repeat("2", 300)

	got := Extract([]types.TextBlock{
		block(second, "", ".body-text"),
		block(first, "", "#content"),
	})

	assert.Equal(t, first, got.Text)
	assert.Equal(t, "#content", got.SourceSelector)
}

func TestExtract_ShortSiteBlockFallsThrough(t *testing.T) {
	short := strings.Repeat("s", 150)
	long := strings.Repeat("x", 240)

	got := Extract([]types.TextBlock{
		block(short, "", ".description__text"),
		block(long, "main"),
	})

	assert.Equal(t, long, got.Text)
	assert.Empty(t, got.SourceSelector)
	assert.Empty(t, got.Family)
}

func TestExtract_FallbackPicksLargestNonNavigation(t *testing.T) {
	nav := strings.Repeat("n", 1000)
	footer := strings.Repeat("f", 900)
	header := strings.Repeat("h", 800)
	mid := strings.Repeat("m", 300)
	big := strings.Repeat("b", 500)

	got := Extract([]types.TextBlock{
		block(mid, "posting"),
		block(nav, "Top-NAV"),
		block(footer, "site-footer"),
		block(header, "HeaderBar"),
		block(big, "posting-body"),
	})

	assert.Equal(t, big, got.Text)
}

func TestExtract_NoQualifyingBlock(t *testing.T) {
	got := Extract([]types.TextBlock{
		block(strings.Repeat("a", 200), ""),
		block("short", "", ".job-description"),
	})
	assert.True(t, got.Empty())
	assert.Equal(t, types.ExtractionResult{}, got)

	assert.True(t, Extract(nil).Empty())
}

func TestExtract_WhitespaceSiteBlockIsSkipped(t *testing.T) {
	blank := strings.Repeat(" \n\t", 100)
	body := strings.Repeat("r", 260)

	tests := []struct {
		name         string
		blocks       []types.TextBlock
		wantText     string
		wantSelector string
		wantFamily   string
	}{
		{
			name:   "only whitespace",
			blocks: []types.TextBlock{block(blank, "", ".description__text")},
		},
		{
			name: "later selector in table",
			blocks: []types.TextBlock{
				block(blank, "", ".description__text"),
				block(body, "", ".job-description"),
			},
			wantText:     body,
			wantSelector: ".job-description",
			wantFamily:   "generic",
		},
		{
			name: "fallback block",
			blocks: []types.TextBlock{
				block(blank, "", "#jobDescriptionText"),
				block(body, "posting"),
			},
			wantText: body,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.blocks)
			assert.Equal(t, tt.wantText, got.Text)
			assert.Equal(t, tt.wantSelector, got.SourceSelector)
			assert.Equal(t, tt.wantFamily, got.Family)
			if got.Empty() {
				assert.Equal(t, types.ExtractionResult{}, got)
			}
		})
	}
}

func TestExtract_FallbackMeasuresTrimmedText(t *testing.T) {
	padded := "   " + strings.Repeat("p", 199) + "   "
	got := Extract([]types.TextBlock{block(padded, "")})
	assert.True(t, got.Empty())
}

func TestExtract_CountsCharactersNotBytes(t *testing.T) {
	text := strings.Repeat("é", 150)
	got := Extract([]types.TextBlock{block(text, "", ".job-description")})
	assert.True(t, got.Empty())
}

func TestExtract_CleansResult(t *testing.T) {
	raw := "  About the role\n\n\n  We are hiring\t engineers.  " + strings.Repeat("z", 220) + "  "
	got := Extract([]types.TextBlock{block(raw, "", ".job-description")})

	assert.Equal(t, "About the role We are hiring engineers. "+strings.Repeat("z", 220), got.Text)
}

func TestExtract_Idempotent(t *testing.T) {
	blocks := []types.TextBlock{
		block(strings.Repeat("q", 260), "wrapper"),
		block(strings.Repeat("r", 230), "", ".jobs-box__html-content"),
	}
	assert.Equal(t, Extract(blocks), Extract(blocks))
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"", ""},
		{"  a  ", "a"},
		{"a\n\nb", "a b"},
		{"a \t\r\n b", "a b"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, CleanText(tt.in))
	}
}

func TestNew_CustomTable(t *testing.T) {
	e := New([]Family{{Name: "acme", Selectors: []string{".acme-jd"}}})
	text := strings.Repeat("k", 210)

	got := e.Extract([]types.TextBlock{block(text, "", ".acme-jd")})
	assert.Equal(t, "acme", got.Family)

	// A default-table selector is not consulted by a custom table.
	got = e.Extract([]types.TextBlock{block(strings.Repeat("k", 150), "", ".job-description")})
	assert.True(t, got.Empty())
}

func TestBlocksFromHTML(t *testing.T) {
	description := strings.Repeat("Build reliable services. ", 12)
	doc := `
	<html><body>
		<nav class="top-nav"><div>Home</div></nav>
		<div class="jobs-description__content"><p>` + description + `</p></div>
		<span class="job-details-inline">inline</span>
		<script>var x = "` + strings.Repeat("s", 300) + `";</script>
		<article>Article body</article>
	</body></html>`

	blocks, err := BlocksFromHTML(doc, nil)
	require.NoError(t, err)

	var tags []string
	for _, b := range blocks {
		tags = append(tags, b.Tag)
	}
	assert.Equal(t, []string{"div", "div", "span", "article"}, tags)

	assert.Equal(t, []string{".jobs-description__content", `[class*="description"]`}, blocks[1].Selectors)
	assert.Equal(t, []string{`[class*="job-details"]`}, blocks[2].Selectors)
	for _, b := range blocks {
		assert.NotContains(t, b.Text, "var x")
	}
}

func TestExtractor_FromHTML(t *testing.T) {
	description := strings.Repeat("You will design APIs and mentor engineers. ", 8)
	doc := `<html><body>
		<div class="header">` + strings.Repeat("menu ", 100) + `</div>
		<div data-automation-id="jobPostingDescription">` + description + `</div>
	</body></html>`

	got, err := New(nil).FromHTML(doc)
	require.NoError(t, err)
	assert.Equal(t, "workday", got.Family)
	assert.Equal(t, `[data-automation-id="jobPostingDescription"]`, got.SourceSelector)
	assert.Equal(t, strings.TrimSpace(description), got.Text)
}
