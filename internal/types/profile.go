// Package types provides type definitions for structured data used throughout the apply-assistant system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// Profile is the user's structured application data.
// The inference engines read it and never mutate it.
type Profile struct {
	PersonalInfo       PersonalInfo        `json:"personalInfo"`
	WorkExperience     []WorkExperience    `json:"workExperience" validate:"dive"`
	Education          []Education         `json:"education" validate:"dive"`
	Skills             []string            `json:"skills"`
	Projects           []Project           `json:"projects" validate:"dive"`
	ResumeText         string              `json:"resumeText"`
	ApplicationHistory []ApplicationRecord `json:"applicationHistory" validate:"dive"`
	Settings           Settings            `json:"settings"`
}

// PersonalInfo holds contact details and links
type PersonalInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	Portfolio string `json:"portfolio" validate:"omitempty,url"`
	LinkedIn  string `json:"linkedin" validate:"omitempty,url"`
	Summary   string `json:"summary"`
}

// FullName joins first and last name with a single space.
func (p PersonalInfo) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	default:
		return p.FirstName + " " + p.LastName
	}
}

// WorkExperience is a single employment entry. Dates use the "YYYY-MM" month format.
type WorkExperience struct {
	ID          string `json:"id"`
	JobTitle    string `json:"jobTitle"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"startDate" validate:"omitempty,datetime=2006-01"`
	EndDate     string `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01"`
	CurrentJob  bool   `json:"currentJob"`
	Description string `json:"description"`
}

// Education is a single education entry
type Education struct {
	ID          string `json:"id"`
	Degree      string `json:"degree"`
	Field       string `json:"field,omitempty"`
	Institution string `json:"institution"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01"`
	EndDate     string `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01"`
	GPA         string `json:"gpa,omitempty"`
	Description string `json:"description,omitempty"`
}

// Project is a portfolio project
type Project struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Technologies string `json:"technologies,omitempty"`
	Link         string `json:"link,omitempty" validate:"omitempty,url"`
	StartDate    string `json:"startDate,omitempty"`
	EndDate      string `json:"endDate,omitempty"`
}

// Application sources recorded in the history
const (
	SourceManualExtraction = "manual_extraction"
	SourceAutoFilled       = "auto_filled"
)

// StatusFilled marks a history entry written after a form was auto-filled.
const StatusFilled = "filled"

// ApplicationRecord is one entry of the application history, most recent first.
type ApplicationRecord struct {
	ID             string `json:"id"`
	Timestamp      string `json:"timestamp"` // RFC3339
	URL            string `json:"url,omitempty"`
	JobTitle       string `json:"jobTitle,omitempty"`
	JobDescription string `json:"jobDescription,omitempty"`
	Source         string `json:"source,omitempty" validate:"omitempty,oneof=manual_extraction auto_filled"`
	Status         string `json:"status,omitempty"`
}

// Settings holds user preferences
type Settings struct {
	AutoExtract         bool `json:"autoExtract"`
	ShowSuggestions     bool `json:"showSuggestions"`
	SaveJobDescriptions bool `json:"saveJobDescriptions"`
}

// DefaultSettings returns settings with every preference enabled.
func DefaultSettings() Settings {
	return Settings{
		AutoExtract:         true,
		ShowSuggestions:     true,
		SaveJobDescriptions: true,
	}
}

// NewProfile returns an empty profile with default settings and non-nil lists.
func NewProfile() *Profile {
	p := &Profile{Settings: DefaultSettings()}
	p.Normalize()
	return p
}

// Normalize replaces nil lists with empty ones so a partially populated profile
// serializes and iterates like a complete one.
func (p *Profile) Normalize() {
	if p.WorkExperience == nil {
		p.WorkExperience = []WorkExperience{}
	}
	if p.Education == nil {
		p.Education = []Education{}
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Projects == nil {
		p.Projects = []Project{}
	}
	if p.ApplicationHistory == nil {
		p.ApplicationHistory = []ApplicationRecord{}
	}
}

// Validate validates the Profile using the validator.
func (p *Profile) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}

// Clone returns a deep copy of the profile.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	c.WorkExperience = append([]WorkExperience(nil), p.WorkExperience...)
	c.Education = append([]Education(nil), p.Education...)
	c.Skills = append([]string(nil), p.Skills...)
	c.Projects = append([]Project(nil), p.Projects...)
	c.ApplicationHistory = append([]ApplicationRecord(nil), p.ApplicationHistory...)
	c.Normalize()
	return &c
}
