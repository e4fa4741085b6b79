package types

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// ClassifyRequest asks for role assignments, either from raw HTML or from prepared descriptors.
// With Fill set, or with an inline Profile, the response also carries the value
// for each assigned control; the stored profile is used when Profile is nil.
// Record adds an auto_filled history entry when at least one control was filled.
type ClassifyRequest struct {
	HTML        string            `json:"html,omitempty"`
	Descriptors []FieldDescriptor `json:"descriptors,omitempty" validate:"dive"`
	Fill        bool              `json:"fill,omitempty"`
	Profile     *Profile          `json:"profile,omitempty"`
	Record      bool              `json:"record,omitempty"`
	URL         string            `json:"url,omitempty" validate:"omitempty,url"`
	JobTitle    string            `json:"job_title,omitempty"`
}

// WantsFill reports whether fill values were requested.
func (r *ClassifyRequest) WantsFill() bool {
	return r.Fill || r.Profile != nil || r.Record
}

// ClassifyResponse carries the classifier output.
type ClassifyResponse struct {
	Assignments RoleAssignment     `json:"assignments"`
	Fields      int                `json:"fields"`
	Fills       []Fill             `json:"fills,omitempty"`
	Filled      int                `json:"filled"`
	Application *ApplicationRecord `json:"application,omitempty"`
}

// ExtractRequest asks for the job description, either from raw HTML or from prepared blocks.
type ExtractRequest struct {
	HTML   string      `json:"html,omitempty"`
	URL    string      `json:"url,omitempty" validate:"omitempty,url"`
	Blocks []TextBlock `json:"blocks,omitempty"`
}

// SuggestRequest asks for suggestions for one target field.
// When Profile is nil the stored profile is used.
type SuggestRequest struct {
	FieldType      TargetField `json:"field_type" validate:"required,oneof=coverLetter whyInterested strengths experience skills summary"`
	JobDescription string      `json:"job_description,omitempty"`
	Profile        *Profile    `json:"profile,omitempty"`
}

// SuggestResponse carries the generated suggestions.
type SuggestResponse struct {
	FieldType   TargetField  `json:"field_type"`
	Suggestions []Suggestion `json:"suggestions"`
}

// AddApplicationRequest records an application in the history.
type AddApplicationRequest struct {
	URL            string `json:"url" validate:"omitempty,url"`
	JobTitle       string `json:"job_title,omitempty"`
	JobDescription string `json:"job_description,omitempty"`
	Source         string `json:"source" validate:"required,oneof=manual_extraction auto_filled"`
	Status         string `json:"status,omitempty"`
}

// CompletenessResponse reports how complete the stored profile is.
type CompletenessResponse struct {
	Completeness int  `json:"completeness"`
	ResumeScore  int  `json:"resume_score"`
	Ready        bool `json:"ready"`
}

// ErrEmptyRequest is returned when a request carries no input to work on.
var ErrEmptyRequest = errors.New("request must include html, url, or prepared input")

// Validate validates the ClassifyRequest using the validator.
func (r *ClassifyRequest) Validate() error {
	if r.HTML == "" && len(r.Descriptors) == 0 {
		return ErrEmptyRequest
	}
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ExtractRequest using the validator.
func (r *ExtractRequest) Validate() error {
	if r.HTML == "" && len(r.Blocks) == 0 && r.URL == "" {
		return ErrEmptyRequest
	}
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SuggestRequest using the validator.
func (r *SuggestRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the AddApplicationRequest using the validator.
func (r *AddApplicationRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
