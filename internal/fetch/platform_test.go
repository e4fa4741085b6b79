package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform_Greenhouse(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://job-boards.greenhouse.io/doordashusa/jobs/7063751", PlatformGreenhouse},
		{"https://boards.greenhouse.io/company/jobs/123", PlatformGreenhouse},
		{"https://greenhouse.io/jobs/456", PlatformGreenhouse},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			result := DetectPlatform(tt.url)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestDetectPlatform_Lever(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://jobs.lever.co/company/job-id", PlatformLever},
		{"https://lever.co/jobs/123", PlatformLever},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			result := DetectPlatform(tt.url)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestDetectPlatform_Workday(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://company.wd5.myworkdayjobs.com/en-US/External", PlatformWorkday},
		{"https://workday.com/jobs", PlatformWorkday},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			result := DetectPlatform(tt.url)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestDetectPlatform_JobBoards(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://www.linkedin.com/jobs/view/3912345678", PlatformLinkedIn},
		{"https://www.indeed.com/viewjob?jk=abc123", PlatformIndeed},
		{"https://www.glassdoor.com/job-listing/backend-engineer", PlatformGlassdoor},
		{"https://www.glassdoor.co.uk/job-listing/backend-engineer", PlatformGlassdoor},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPlatform(tt.url))
		})
	}
}

func TestDetectPlatform_Unknown(t *testing.T) {
	tests := []string{
		"https://example.com/jobs",
		"://bad url",
		"",
	}

	for _, url := range tests {
		t.Run(url, func(t *testing.T) {
			assert.Equal(t, PlatformUnknown, DetectPlatform(url))
		})
	}
}

func TestRendersClientSide(t *testing.T) {
	assert.True(t, RendersClientSide(PlatformLinkedIn))
	assert.True(t, RendersClientSide(PlatformWorkday))
	assert.False(t, RendersClientSide(PlatformGreenhouse))
	assert.False(t, RendersClientSide(PlatformUnknown))
}

func TestIsJobPostingURL(t *testing.T) {
	tests := []struct {
		url      string
		expected bool
	}{
		{"https://www.linkedin.com/jobs/view/123", true},
		{"https://www.indeed.com/viewjob?jk=1", true},
		{"https://www.glassdoor.com/job-listing/x", true},
		{"https://boards.greenhouse.io/acme/jobs/1", true},
		{"https://jobs.lever.co/acme/1", true},
		{"https://acme.wd1.myworkdayjobs.com/External", true},
		{"https://careers.acme.com/opening/42", true},
		{"https://apply.workable.com/acme/j/1", true},
		{"https://www.linkedin.com/feed/", false},
		{"https://example.com/blog", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsJobPostingURL(tt.url))
		})
	}
}

func TestJobTitleFromPageTitle(t *testing.T) {
	tests := []struct {
		title    string
		expected string
	}{
		{"Senior Backend Engineer - LinkedIn", "Senior Backend Engineer"},
		{"Data Analyst - Indeed.com", "Data Analyst"},
		{"Staff Engineer | Acme Careers", "Staff Engineer"},
		{"Product Designer at Acme | Lever", "Product Designer at Acme"},
		{"Just A Title", "Just A Title"},
		{"", UnknownJobTitle},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.expected, JobTitleFromPageTitle(tt.title))
		})
	}
}
