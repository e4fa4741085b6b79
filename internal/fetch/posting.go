// Package fetch - posting.go turns a job-posting URL into an extracted description.
package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/apply-assistant/internal/extract"
	"github.com/jonathan/apply-assistant/internal/logging"
	"github.com/jonathan/apply-assistant/internal/types"
)

// Renderer returns the HTML of a page after client-side rendering.
type Renderer func(ctx context.Context, url string) (string, error)

// FamilyReadability tags descriptions recovered by the readability fallback.
const FamilyReadability = "readability"

// Posting is the outcome of loading one job-posting page.
type Posting struct {
	URL         string                 `json:"url"`
	Platform    Platform               `json:"platform"`
	IsJobURL    bool                   `json:"is_job_url"`
	PageTitle   string                 `json:"page_title,omitempty"`
	JobTitle    string                 `json:"job_title"`
	Description types.ExtractionResult `json:"description"`
	Rendered    bool                   `json:"rendered"`
}

// LoaderConfig configures a Loader.
type LoaderConfig struct {
	// UseBrowser re-renders pages in a headless browser when plain HTTP yields no description.
	UseBrowser bool
	// Readability enables the readability fallback as the last resort.
	Readability    bool
	BrowserTimeout time.Duration
	Fetcher        *CachedFetcher
	Extractor      *extract.Extractor
	// Renderer overrides the headless browser.
	Renderer Renderer
	Logger   logging.Logger
}

// Loader fetches job-posting pages and runs the description extractor on them.
type Loader struct {
	fetcher     *CachedFetcher
	extractor   *extract.Extractor
	render      Renderer
	useBrowser  bool
	readability bool
	log         logging.Logger
}

// NewLoader creates a Loader, filling unset collaborators with defaults.
func NewLoader(cfg LoaderConfig) (*Loader, error) {
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNop()
	}
	if cfg.Fetcher == nil {
		f, err := NewCachedFetcher(nil)
		if err != nil {
			return nil, err
		}
		cfg.Fetcher = f
	}
	if cfg.Extractor == nil {
		cfg.Extractor = extract.New(nil)
	}
	if cfg.Renderer == nil {
		cfg.Renderer = browserRenderer(cfg.Logger, cfg.BrowserTimeout)
	}

	return &Loader{
		fetcher:     cfg.Fetcher,
		extractor:   cfg.Extractor,
		render:      cfg.Renderer,
		useBrowser:  cfg.UseBrowser,
		readability: cfg.Readability,
		log:         cfg.Logger,
	}, nil
}

// Close releases the page cache.
func (l *Loader) Close() {
	l.fetcher.Close()
}

// Load fetches a page and extracts its job description. Tiers run in order:
// HTTP fetch, headless render (when enabled), readability (when enabled).
// An empty description is not an error.
func (l *Loader) Load(ctx context.Context, url string) (*Posting, error) {
	log := l.log.With(logging.String("url", url))

	res, err := l.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	log.Debug("fetched page", logging.Bool("from_cache", res.FromCache), logging.Int("bytes", len(res.HTML)))

	posting, err := l.Describe(url, res.HTML)
	if err != nil {
		return nil, err
	}
	html := res.HTML

	if posting.Description.Empty() && l.useBrowser {
		rendered, err := l.render(ctx, url)
		if err != nil {
			log.Warn("browser render failed", logging.Err(err))
		} else {
			html = rendered
			if posting, err = l.Describe(url, rendered); err != nil {
				return nil, err
			}
			posting.Rendered = true
		}
	}

	if posting.Description.Empty() && !l.useBrowser && RendersClientSide(posting.Platform) {
		log.Info("platform renders client-side; browser rendering is disabled",
			logging.String("platform", string(posting.Platform)))
	}

	if posting.Description.Empty() && l.readability {
		title, text := ReadabilityText(html, url)
		if text != "" {
			posting.Description = types.ExtractionResult{
				Text:   extract.CleanText(text),
				Family: FamilyReadability,
			}
			if posting.PageTitle == "" {
				posting.PageTitle = title
				posting.JobTitle = JobTitleFromPageTitle(title)
			}
		}
	}

	log.Info("extracted description",
		logging.String("platform", string(posting.Platform)),
		logging.String("family", posting.Description.Family),
		logging.String("selector", posting.Description.SourceSelector),
		logging.Int("chars", len([]rune(posting.Description.Text))),
		logging.Bool("rendered", posting.Rendered))

	return posting, nil
}

// Describe runs the extractor over already-fetched HTML.
func (l *Loader) Describe(url, html string) (*Posting, error) {
	result, err := l.extractor.FromHTML(html)
	if err != nil {
		return nil, fmt.Errorf("failed to extract description: %w", err)
	}
	title, err := PageTitle(html)
	if err != nil {
		return nil, err
	}

	return &Posting{
		URL:         url,
		Platform:    DetectPlatform(url),
		IsJobURL:    IsJobPostingURL(url),
		PageTitle:   title,
		JobTitle:    JobTitleFromPageTitle(title),
		Description: result,
	}, nil
}
