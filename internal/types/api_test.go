//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyRequest_Validate(t *testing.T) {
	assert.ErrorIs(t, (&ClassifyRequest{}).Validate(), ErrEmptyRequest)
	assert.NoError(t, (&ClassifyRequest{HTML: "<form></form>"}).Validate())
	assert.NoError(t, (&ClassifyRequest{Descriptors: []FieldDescriptor{{ControlRef: "a", Kind: KindText}}}).Validate())
	assert.Error(t, (&ClassifyRequest{Descriptors: []FieldDescriptor{{Kind: KindText}}}).Validate())
	assert.Error(t, (&ClassifyRequest{HTML: "<form></form>", Record: true, URL: "not a url"}).Validate())
}

func TestExtractRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request ExtractRequest
		wantErr bool
	}{
		{"empty", ExtractRequest{}, true},
		{"html", ExtractRequest{HTML: "<p>hi</p>"}, false},
		{"blocks", ExtractRequest{Blocks: []TextBlock{{Text: "hi"}}}, false},
		{"url only", ExtractRequest{URL: "https://jobs.example.com/1"}, false},
		{"bad url", ExtractRequest{URL: "jobs"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSuggestRequest_Validate(t *testing.T) {
	for _, f := range TargetFields {
		assert.NoError(t, (&SuggestRequest{FieldType: f}).Validate(), f)
	}
	assert.Error(t, (&SuggestRequest{}).Validate())
	assert.Error(t, (&SuggestRequest{FieldType: "motto"}).Validate())
}

func TestAddApplicationRequest_Validate(t *testing.T) {
	assert.NoError(t, (&AddApplicationRequest{Source: SourceAutoFilled}).Validate())
	assert.NoError(t, (&AddApplicationRequest{URL: "https://example.com/job", Source: SourceManualExtraction}).Validate())
	assert.Error(t, (&AddApplicationRequest{}).Validate())
	assert.Error(t, (&AddApplicationRequest{Source: "other"}).Validate())
}

func TestTextBlock_MatchesSelector(t *testing.T) {
	b := TextBlock{Selectors: []string{"#content", ".body-text"}}
	assert.True(t, b.MatchesSelector(".body-text"))
	assert.False(t, b.MatchesSelector(".job-description"))
	assert.True(t, ExtractionResult{}.Empty())
}

func TestClassifyRequest_WantsFill(t *testing.T) {
	tests := []struct {
		name string
		req  ClassifyRequest
		want bool
	}{
		{name: "assignments only", req: ClassifyRequest{HTML: "<form></form>"}},
		{name: "fill flag", req: ClassifyRequest{Fill: true}, want: true},
		{name: "inline profile", req: ClassifyRequest{Profile: NewProfile()}, want: true},
		{name: "record", req: ClassifyRequest{Record: true}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.WantsFill())
		})
	}
}
