// Package fetch retrieves job-posting pages for the extraction engines.
package fetch

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; ApplyAssistant/1.0)"

// Result holds the raw content from a URL fetch.
type Result struct {
	URL         string
	HTML        string
	ContentType string
	StatusCode  int
}

// Error is returned when a posting page cannot be retrieved or is not an HTML page.
type Error struct {
	URL     string
	Message string
	// StatusCode is the HTTP status when the server answered, otherwise 0.
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// DefaultMaxPageBytes caps the body read from a posting page.
const DefaultMaxPageBytes = 5 << 20

// htmlMediaTypes are the content types accepted as posting pages. A response
// without a Content-Type header is accepted as well.
var htmlMediaTypes = map[string]bool{
	"text/html":             true,
	"application/xhtml+xml": true,
}

// Options configures how posting pages are requested.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
	// MaxPageBytes rejects pages whose body is larger. Zero means DefaultMaxPageBytes.
	MaxPageBytes int64
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() *Options {
	return &Options{
		Timeout:      DefaultTimeout,
		UserAgent:    DefaultUserAgent,
		MaxPageBytes: DefaultMaxPageBytes,
	}
}

// URL downloads a posting page. Only http and https URLs are fetched; the
// response must be 200 OK with an HTML content type and a body no larger than
// Options.MaxPageBytes. Every failure is an *Error.
func URL(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	limit := opts.MaxPageBytes
	if limit <= 0 {
		limit = DefaultMaxPageBytes
	}

	req, err := newPageRequest(ctx, urlStr, opts)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: opts.Timeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	contentType := resp.Header.Get("Content-Type")
	if resp.StatusCode != http.StatusOK {
		return nil, &Error{
			URL:        urlStr,
			Message:    fmt.Sprintf("HTTP status %d", resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}
	if !isHTML(contentType) {
		return nil, &Error{
			URL:        urlStr,
			Message:    fmt.Sprintf("not an HTML page (content type %q)", contentType),
			StatusCode: resp.StatusCode,
		}
	}
	if resp.ContentLength > limit {
		return nil, pageTooLarge(urlStr, limit, resp.StatusCode)
	}

	// Read one byte past the limit to detect bodies without a Content-Length.
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to read response body", StatusCode: resp.StatusCode, Cause: err}
	}
	if int64(len(body)) > limit {
		return nil, pageTooLarge(urlStr, limit, resp.StatusCode)
	}

	return &Result{
		URL:         urlStr,
		HTML:        string(body),
		ContentType: contentType,
		StatusCode:  resp.StatusCode,
	}, nil
}

func newPageRequest(ctx context.Context, urlStr string, opts *Options) (*http.Request, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Host == "" {
		return nil, &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, &Error{URL: urlStr, Message: fmt.Sprintf("invalid URL: unsupported scheme %q", parsed.Scheme)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}
	req.Header.Set("User-Agent", opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}
	return req, nil
}

func isHTML(contentType string) bool {
	if strings.TrimSpace(contentType) == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return htmlMediaTypes[strings.ToLower(mediaType)]
}

func pageTooLarge(urlStr string, limit int64, status int) *Error {
	return &Error{
		URL:        urlStr,
		Message:    fmt.Sprintf("page exceeds %d bytes", limit),
		StatusCode: status,
	}
}

// PageTitle returns the trimmed text of the document's <title> element.
func PageTitle(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	return strings.TrimSpace(doc.Find("title").First().Text()), nil
}
