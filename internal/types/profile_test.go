//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersonalInfo_FullName(t *testing.T) {
	tests := []struct {
		name string
		info PersonalInfo
		want string
	}{
		{"both", PersonalInfo{FirstName: "Ada", LastName: "Lovelace"}, "Ada Lovelace"},
		{"first only", PersonalInfo{FirstName: "Ada"}, "Ada"},
		{"last only", PersonalInfo{LastName: "Lovelace"}, "Lovelace"},
		{"neither", PersonalInfo{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.FullName())
		})
	}
}

func TestNewProfile(t *testing.T) {
	p := NewProfile()

	assert.Equal(t, DefaultSettings(), p.Settings)
	assert.NotNil(t, p.WorkExperience)
	assert.NotNil(t, p.Skills)

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"skills":[]`)
	assert.Contains(t, string(data), `"applicationHistory":[]`)
}

func TestProfile_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Profile)
		wantErr bool
	}{
		{
			name:   "empty profile",
			mutate: func(*Profile) {},
		},
		{
			name: "complete profile",
			mutate: func(p *Profile) {
				p.PersonalInfo = PersonalInfo{FirstName: "Ada", Email: "ada@example.com", LinkedIn: "https://linkedin.com/in/ada"}
				p.WorkExperience = []WorkExperience{{JobTitle: "Engineer", StartDate: "2020-01", EndDate: "2022-06"}}
			},
		},
		{
			name:    "bad email",
			mutate:  func(p *Profile) { p.PersonalInfo.Email = "not-an-email" },
			wantErr: true,
		},
		{
			name:    "bad portfolio url",
			mutate:  func(p *Profile) { p.PersonalInfo.Portfolio = "portfolio" },
			wantErr: true,
		},
		{
			name: "bad start month",
			mutate: func(p *Profile) {
				p.WorkExperience = []WorkExperience{{StartDate: "January 2020"}}
			},
			wantErr: true,
		},
		{
			name: "bad application source",
			mutate: func(p *Profile) {
				p.ApplicationHistory = []ApplicationRecord{{Source: "scraped"}}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProfile()
			tt.mutate(p)
			err := p.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProfile_CloneIsDeep(t *testing.T) {
	p := NewProfile()
	p.Skills = []string{"Go"}
	p.WorkExperience = []WorkExperience{{JobTitle: "Engineer"}}

	c := p.Clone()
	c.Skills[0] = "Rust"
	c.WorkExperience[0].JobTitle = "Manager"

	assert.Equal(t, "Go", p.Skills[0])
	assert.Equal(t, "Engineer", p.WorkExperience[0].JobTitle)
	assert.Nil(t, (*Profile)(nil).Clone())
}

func TestProfile_NormalizeAfterDecode(t *testing.T) {
	var p Profile
	require.NoError(t, json.Unmarshal([]byte(`{"personalInfo":{"firstName":"Ada"}}`), &p))
	p.Normalize()

	assert.Equal(t, "Ada", p.PersonalInfo.FirstName)
	assert.Empty(t, p.Projects)
	assert.NotNil(t, p.Projects)
}
