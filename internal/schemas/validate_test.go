package schemas

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateProfile(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantErr   bool
		wantField string
	}{
		{
			name: "complete profile",
			doc: `{
				"personalInfo": {"firstName": "Ada", "email": "ada@example.com"},
				"workExperience": [{"jobTitle": "Engineer", "startDate": "2020-01", "currentJob": true}],
				"skills": ["Go", "SQL"],
				"settings": {"autoExtract": true}
			}`,
		},
		{
			name: "empty object",
			doc:  `{}`,
		},
		{
			name:      "skills not strings",
			doc:       `{"skills": [1, 2]}`,
			wantErr:   true,
			wantField: "skills.0",
		},
		{
			name:      "bad month",
			doc:       `{"workExperience": [{"startDate": "2020-13"}]}`,
			wantErr:   true,
			wantField: "workExperience.0.startDate",
		},
		{
			name:      "unknown source",
			doc:       `{"applicationHistory": [{"source": "crawler"}]}`,
			wantErr:   true,
			wantField: "applicationHistory.0.source",
		},
		{
			name:      "not an object",
			doc:       `[]`,
			wantErr:   true,
			wantField: "(root)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProfile([]byte(tt.doc))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "error should be ValidationError type")
			require.NotEmpty(t, validationErr.Errors)
			assert.Equal(t, tt.wantField, validationErr.Errors[0].Field)
		})
	}
}

func TestValidateProfile_MalformedJSON(t *testing.T) {
	err := ValidateProfile([]byte("{ invalid json }"))
	require.Error(t, err)
	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestValidateProfileFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"skills": ["Go"]}`), 0o644))

	assert.NoError(t, ValidateProfileFile(path))

	err := ValidateProfileFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSONString_InvalidSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": 12}`, `{}`)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{{Field: "skills", Message: "Invalid type"}}}
	assert.Equal(t, "validation failed:\n  1. skills: Invalid type\n", err.Error())
}
