package suggest

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/apply-assistant/internal/types"
)

func testGenerator() *Generator {
	return &Generator{Now: func() time.Time { return fixedNow }}
}

func sampleProfile() *types.Profile {
	p := types.NewProfile()
	p.PersonalInfo = types.PersonalInfo{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
	}
	p.WorkExperience = []types.WorkExperience{
		{
			JobTitle:    "Senior Engineer",
			Company:     "Analytical Engines",
			StartDate:   "2021-03",
			EndDate:     "2022-03",
			Description: "Built things. Designed the difference engine control plane for three factories.",
		},
		{
			JobTitle:    "Engineer",
			Company:     "Babbage & Co",
			StartDate:   "2019-01",
			EndDate:     "2021-01",
			Description: "Wrote programs.",
		},
	}
	p.Skills = []string{"Python", "Leadership", "React"}
	return p
}

func labels(suggestions []types.Suggestion) []string {
	out := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, s.Label)
	}
	return out
}

func TestGenerate_Skills(t *testing.T) {
	got := testGenerator().Generate(sampleProfile(), types.TargetSkills, "")

	require.Len(t, got, 3)
	assert.Equal(t, "Python, Leadership, React", got[0].Text)

	lines := strings.Split(got[1].Text, "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "• "), line)
	}
	assert.Equal(t, "• Python\n• Leadership\n• React", got[1].Text)

	assert.Equal(t, "Categorized Skills", got[2].Label)
	assert.Equal(t, "Technical: Python, React\nSoft Skills: Leadership", got[2].Text)
}

func TestGenerate_SkillsTopFiveAndNoCategories(t *testing.T) {
	p := types.NewProfile()
	p.Skills = []string{"JavaScript", "SQL", "Docker", "AWS", "Python", "Java"}

	got := testGenerator().Generate(p, types.TargetSkills, "")

	assert.Equal(t, []string{"All Skills (Comma-separated)", "All Skills (Bullet points)", "Top 5 Skills"}, labels(got))
	assert.Equal(t, "JavaScript, SQL, Docker, AWS, Python", got[2].Text)
}

func TestGenerate_SkillsEmpty(t *testing.T) {
	got := testGenerator().Generate(types.NewProfile(), types.TargetSkills, "")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGenerate_CoverLetter(t *testing.T) {
	got := testGenerator().Generate(sampleProfile(), types.TargetCoverLetter, "")

	assert.Equal(t, []string{"Professional Opening", "Experience Highlight", "Skills Match", "Professional Closing"}, labels(got))
	assert.Equal(t,
		"I am writing to express my strong interest in this position. With 3 years of experience in Senior Engineer and expertise in Python, Leadership, React, I am confident in my ability to contribute meaningfully to your team.",
		got[0].Text)
	assert.Contains(t, got[1].Text, "as Senior Engineer at Analytical Engines, I have successfully Designed the difference engine control plane for three factories.")
	assert.Equal(t, CategoryOpening, got[0].Category)
	assert.Equal(t, CategoryClosing, got[3].Category)
}

func TestGenerate_CoverLetterEmptyProfile(t *testing.T) {
	got := testGenerator().Generate(types.NewProfile(), types.TargetCoverLetter, "")
	assert.Equal(t, []string{"Professional Closing"}, labels(got))
}

func TestGenerate_JobDescriptionSkillMatch(t *testing.T) {
	jd := "We are looking for strong react and python engineers."
	g := testGenerator()

	cover := g.Generate(sampleProfile(), types.TargetCoverLetter, jd)
	last := cover[len(cover)-1]
	assert.Equal(t, "Skills Matching This Job", last.Label)
	assert.Contains(t, last.Text, "Python, React")

	skills := g.Generate(sampleProfile(), types.TargetSkills, jd)
	assert.Equal(t, "Python, React", skills[len(skills)-1].Text)

	// Targets other than coverLetter and skills ignore the description.
	assert.Equal(t,
		g.Generate(sampleProfile(), types.TargetSummary, ""),
		g.Generate(sampleProfile(), types.TargetSummary, jd))

	// A description mentioning no profile skill changes nothing.
	assert.Equal(t,
		g.Generate(sampleProfile(), types.TargetCoverLetter, ""),
		g.Generate(sampleProfile(), types.TargetCoverLetter, "We need a forklift operator."))
}

func TestGenerate_WhyInterested(t *testing.T) {
	got := testGenerator().Generate(sampleProfile(), types.TargetWhyInterested, "")
	assert.Equal(t, []string{"Career Alignment", "Career Progression", "Company Interest", "Skills Match"}, labels(got))
	assert.Contains(t, got[1].Text, "Having worked as a Senior Engineer,")
	assert.Contains(t, got[3].Text, "particularly in Python, Leadership, React.")

	p := types.NewProfile()
	p.Skills = []string{"Go", "Rust"}
	got = testGenerator().Generate(p, types.TargetWhyInterested, "")
	assert.Equal(t, []string{"Career Alignment", "Company Interest"}, labels(got))
}

func TestGenerate_Strengths(t *testing.T) {
	got := testGenerator().Generate(sampleProfile(), types.TargetStrengths, "")
	require.Len(t, got, 7)
	assert.Equal(t, "Strong technical proficiency in Python, Leadership, React", got[0].Text)
	assert.Equal(t, "3+ years of proven experience in Senior Engineer", got[1].Text)
	assert.Equal(t, "Problem Solving", got[2].Label)
	assert.Equal(t, "Organization", got[6].Label)

	got = testGenerator().Generate(types.NewProfile(), types.TargetStrengths, "")
	assert.Len(t, got, 5)
}

func TestGenerate_Experience(t *testing.T) {
	p := sampleProfile()
	p.WorkExperience = append(p.WorkExperience,
		types.WorkExperience{JobTitle: "Intern", Company: "Lab", StartDate: "2018-06", EndDate: "2018-11", Description: "Helped with research experiments on looms."},
		types.WorkExperience{JobTitle: "Tutor", Company: "School", StartDate: "2017-01", EndDate: "2018-01"},
	)

	got := testGenerator().Generate(p, types.TargetExperience, "")

	assert.Equal(t, []string{"Experience 1", "Experience 2", "Experience 3", "Experience Summary"}, labels(got))
	assert.Equal(t, "Senior Engineer at Analytical Engines (1 year) - Designed the difference engine control plane for three factories", got[0].Text)
	assert.Equal(t, "Engineer at Babbage & Co (2 years) - Wrote programs.", got[1].Text)
	assert.Equal(t, "Intern at Lab (5 months) - Helped with research experiments on looms", got[2].Text)
	assert.Equal(t, "4 years of professional experience across 4 roles, specializing in Senior Engineer.", got[3].Text)
}

func TestGenerate_ExperienceSingleRole(t *testing.T) {
	p := types.NewProfile()
	p.WorkExperience = []types.WorkExperience{
		{JobTitle: "Analyst", Company: "Acme", StartDate: "2023-04", CurrentJob: true, Description: "Owned the quarterly forecasting model."},
	}

	got := testGenerator().Generate(p, types.TargetExperience, "")
	require.Len(t, got, 2)
	assert.Equal(t, "Analyst at Acme (1y 2m) - Owned the quarterly forecasting model", got[0].Text)
	assert.Equal(t, "1 years of professional experience across 1 role, specializing in Analyst.", got[1].Text)
}

func TestGenerate_Summary(t *testing.T) {
	got := testGenerator().Generate(sampleProfile(), types.TargetSummary, "")

	assert.Equal(t, []string{"Professional Summary", "Concise Summary", "Career Highlight"}, labels(got))
	assert.True(t, strings.HasPrefix(got[0].Text, "Ada Lovelace is an experienced Senior Engineer with 3+ years"))
	assert.Contains(t, got[2].Text, "including Analytical Engines, Babbage & Co.")
}

func TestGenerate_SummaryNeedsYears(t *testing.T) {
	p := types.NewProfile()
	p.WorkExperience = []types.WorkExperience{
		{JobTitle: "Engineer", Company: "Acme", StartDate: "2024-01", EndDate: "2024-05"},
	}
	got := testGenerator().Generate(p, types.TargetSummary, "")
	assert.Empty(t, got)
}

func TestGenerate_UnknownTargetAndNilProfile(t *testing.T) {
	g := testGenerator()
	assert.Empty(t, g.Generate(sampleProfile(), types.TargetField("headline"), ""))
	assert.Empty(t, g.Generate(nil, types.TargetSkills, ""))
}

func TestGenerate_DoesNotMutateProfile(t *testing.T) {
	p := sampleProfile()
	before, err := json.Marshal(p)
	require.NoError(t, err)

	for _, target := range types.TargetFields {
		_ = testGenerator().Generate(p, target, "python")
	}

	after, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestGenerate_Idempotent(t *testing.T) {
	g := testGenerator()
	for _, target := range types.TargetFields {
		first, err := json.Marshal(g.Generate(sampleProfile(), target, "react"))
		require.NoError(t, err)
		second, err := json.Marshal(g.Generate(sampleProfile(), target, "react"))
		require.NoError(t, err)
		assert.Equal(t, first, second, string(target))
	}
}
