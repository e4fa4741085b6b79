// Package fetch - platform.go provides job board detection from URLs and page titles.
package fetch

import (
	"net/url"
	"regexp"
	"strings"
)

// Platform represents a known job board platform.
type Platform string

const (
	// PlatformLinkedIn is the LinkedIn jobs board
	PlatformLinkedIn Platform = "linkedin"
	// PlatformIndeed is the Indeed jobs board
	PlatformIndeed Platform = "indeed"
	// PlatformGlassdoor is the Glassdoor jobs board
	PlatformGlassdoor Platform = "glassdoor"
	// PlatformGreenhouse is the Greenhouse ATS platform
	PlatformGreenhouse Platform = "greenhouse"
	// PlatformLever is the Lever ATS platform
	PlatformLever Platform = "lever"
	// PlatformWorkday is the Workday ATS platform
	PlatformWorkday Platform = "workday"
	// PlatformUnknown is an unrecognized platform
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform identifies the job board platform from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Host)

	switch {
	case strings.Contains(host, "linkedin.com"):
		return PlatformLinkedIn
	case strings.Contains(host, "indeed.com"):
		return PlatformIndeed
	case strings.Contains(host, "glassdoor."):
		return PlatformGlassdoor
	case strings.Contains(host, "greenhouse.io"):
		return PlatformGreenhouse
	case strings.Contains(host, "lever.co"):
		return PlatformLever
	case strings.Contains(host, "workday.com"),
		strings.Contains(host, "myworkdayjobs.com"):
		return PlatformWorkday
	default:
		return PlatformUnknown
	}
}

// RendersClientSide reports whether the platform usually needs a browser to
// produce the description markup.
func RendersClientSide(p Platform) bool {
	return p == PlatformLinkedIn || p == PlatformWorkday
}

// jobPostingPatterns match URLs that look like individual job postings.
var jobPostingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`linkedin\.com/jobs`),
	regexp.MustCompile(`indeed\.com/viewjob`),
	regexp.MustCompile(`glassdoor\.com/job`),
	regexp.MustCompile(`greenhouse\.io`),
	regexp.MustCompile(`lever\.co`),
	regexp.MustCompile(`myworkdayjobs\.com`),
	regexp.MustCompile(`jobs\.`),
	regexp.MustCompile(`careers\.`),
	regexp.MustCompile(`apply\.`),
}

// IsJobPostingURL reports whether a URL looks like a job posting or application page.
func IsJobPostingURL(urlStr string) bool {
	if urlStr == "" {
		return false
	}
	for _, p := range jobPostingPatterns {
		if p.MatchString(urlStr) {
			return true
		}
	}
	return false
}

// UnknownJobTitle is returned when no page title is available.
const UnknownJobTitle = "Unknown Position"

// jobTitlePatterns capture the job title from common board page titles.
var jobTitlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(.*?) - (?:LinkedIn|Indeed|Glassdoor)`),
	regexp.MustCompile(`(.*?) \|`),
	regexp.MustCompile(`(.*?) at .*? \|`),
}

// JobTitleFromPageTitle derives a job title from a page title such as
// "Backend Engineer - LinkedIn" or "Backend Engineer | Acme Careers".
// The title is returned unchanged when no pattern applies.
func JobTitleFromPageTitle(title string) string {
	if title == "" {
		return UnknownJobTitle
	}
	for _, p := range jobTitlePatterns {
		if m := p.FindStringSubmatch(title); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return title
}
