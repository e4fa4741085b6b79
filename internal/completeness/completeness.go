// Package completeness scores how fully a profile is filled in.
package completeness

import (
	"math"

	"github.com/jonathan/apply-assistant/internal/types"
)

// Score weights
const (
	requiredFieldPoints = 10
	optionalFieldPoints = 2
	experiencePoints    = 8
	experienceCap       = 25
	educationPoints     = 10
	educationCap        = 20
	skillPoints         = 1.5
	skillsCap           = 15
	projectPoints       = 5
	projectsCap         = 10
	maxScore            = 100
)

func requiredFields(p types.PersonalInfo) []string {
	return []string{p.FirstName, p.LastName, p.Email}
}

func optionalFields(p types.PersonalInfo) []string {
	return []string{p.Phone, p.Location, p.Portfolio, p.LinkedIn, p.Summary}
}

// Percentage returns the share of required contact fields (first name, last
// name, email) that are filled, rounded to a whole percent.
func Percentage(p *types.Profile) int {
	if p == nil {
		return 0
	}
	fields := requiredFields(p.PersonalInfo)
	filled := countFilled(fields)
	return int(math.Round(float64(filled) / float64(len(fields)) * 100))
}

// ResumeScore rates the whole profile out of 100: contact fields, then
// capped credit for experience, education, skills and projects.
func ResumeScore(p *types.Profile) int {
	if p == nil {
		return 0
	}

	score := float64(countFilled(requiredFields(p.PersonalInfo)) * requiredFieldPoints)
	score += float64(countFilled(optionalFields(p.PersonalInfo)) * optionalFieldPoints)
	score += math.Min(float64(len(p.WorkExperience)*experiencePoints), experienceCap)
	score += math.Min(float64(len(p.Education)*educationPoints), educationCap)
	score += math.Min(float64(len(p.Skills))*skillPoints, skillsCap)
	score += math.Min(float64(len(p.Projects)*projectPoints), projectsCap)

	return int(math.Min(math.Round(score), maxScore))
}

// Ready reports whether the profile has enough contact data to fill a form.
func Ready(p *types.Profile) bool {
	return p != nil && p.PersonalInfo.FirstName != "" && p.PersonalInfo.Email != ""
}

func countFilled(values []string) int {
	n := 0
	for _, v := range values {
		if v != "" {
			n++
		}
	}
	return n
}
