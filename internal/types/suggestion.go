package types

// TargetField is the kind of form field suggestions are generated for.
type TargetField string

const (
	TargetCoverLetter   TargetField = "coverLetter"
	TargetWhyInterested TargetField = "whyInterested"
	TargetStrengths     TargetField = "strengths"
	TargetExperience    TargetField = "experience"
	TargetSkills        TargetField = "skills"
	TargetSummary       TargetField = "summary"
)

// TargetFields lists every supported target field.
var TargetFields = []TargetField{
	TargetCoverLetter,
	TargetWhyInterested,
	TargetStrengths,
	TargetExperience,
	TargetSkills,
	TargetSummary,
}

// Suggestion is one labeled candidate text block offered to fill a target field.
type Suggestion struct {
	Text     string `json:"text"`
	Label    string `json:"label"`
	Category string `json:"category"`
}
