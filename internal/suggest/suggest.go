// Package suggest assembles templated application text from a profile.
package suggest

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/apply-assistant/internal/types"
)

// Suggestion categories.
const (
	CategoryOpening    = "opening"
	CategoryExperience = "experience"
	CategorySkills     = "skills"
	CategoryClosing    = "closing"
	CategoryCareer     = "career"
	CategoryCompany    = "company"
	CategoryStrength   = "strength"
	CategorySummary    = "summary"
)

const (
	topSkills        = 5
	topSkillsShort   = 3
	maxExperiences   = 3
	maxCompanies     = 3
	minSkillsToMatch = 2
)

// Generator builds suggestions. Now supplies the end date of current jobs.
type Generator struct {
	Now func() time.Time
}

// New returns a Generator that uses the wall clock.
func New() *Generator {
	return &Generator{Now: time.Now}
}

func (g *Generator) now() time.Time {
	if g == nil || g.Now == nil {
		return time.Now()
	}
	return g.Now()
}

// facts are the values derived once per call and shared by the templates.
type facts struct {
	profile        *types.Profile
	years          int
	latest         *types.WorkExperience
	top5           string
	top3           string
	matchingSkills []string
}

func (g *Generator) derive(p *types.Profile, jobDescription string) facts {
	f := facts{
		profile:        p,
		years:          YearsOfExperience(p.WorkExperience, g.now()),
		top5:           joinFirst(p.Skills, topSkills),
		top3:           joinFirst(p.Skills, topSkillsShort),
		matchingSkills: MatchingSkills(p.Skills, jobDescription),
	}
	if len(p.WorkExperience) > 0 {
		f.latest = &p.WorkExperience[0]
	}
	return f
}

// Generate returns the suggestions for one target field in fixed template
// order. An unknown target or a nil profile yields an empty list.
func (g *Generator) Generate(p *types.Profile, target types.TargetField, jobDescription string) []types.Suggestion {
	out := []types.Suggestion{}
	if p == nil {
		return out
	}

	f := g.derive(p, jobDescription)

	switch target {
	case types.TargetCoverLetter:
		return coverLetter(f)
	case types.TargetWhyInterested:
		return whyInterested(f)
	case types.TargetStrengths:
		return strengths(f)
	case types.TargetExperience:
		return g.experience(f)
	case types.TargetSkills:
		return skills(f)
	case types.TargetSummary:
		return summary(f)
	default:
		return out
	}
}

func coverLetter(f facts) []types.Suggestion {
	var out []types.Suggestion

	if f.latest != nil {
		out = append(out, types.Suggestion{
			Text: fmt.Sprintf("I am writing to express my strong interest in this position. With %d years of experience in %s and expertise in %s, I am confident in my ability to contribute meaningfully to your team.",
				f.years, f.latest.JobTitle, f.top5),
			Label:    "Professional Opening",
			Category: CategoryOpening,
		})
		out = append(out, types.Suggestion{
			Text: fmt.Sprintf("In my current role as %s at %s, I have successfully %s. This experience has equipped me with the skills necessary to excel in this position.",
				f.latest.JobTitle, f.latest.Company, Achievement(f.latest.Description)),
			Label:    "Experience Highlight",
			Category: CategoryExperience,
		})
	}

	if len(f.profile.Skills) > 0 {
		out = append(out, types.Suggestion{
			Text: fmt.Sprintf("My technical expertise includes %s, which aligns well with the requirements of this role. I am passionate about leveraging these skills to drive innovation and deliver exceptional results.",
				f.top5),
			Label:    "Skills Match",
			Category: CategorySkills,
		})
	}

	out = append(out, types.Suggestion{
		Text:     "I would welcome the opportunity to discuss how my background and skills would benefit your organization. Thank you for considering my application. I look forward to speaking with you soon.",
		Label:    "Professional Closing",
		Category: CategoryClosing,
	})

	if len(f.matchingSkills) > 0 {
		out = append(out, types.Suggestion{
			Text: fmt.Sprintf("I noticed this role calls for %s. These are areas where I have hands-on experience, and I am excited to apply them from day one.",
				strings.Join(f.matchingSkills, ", ")),
			Label:    "Skills Matching This Job",
			Category: CategorySkills,
		})
	}

	return out
}

func whyInterested(f facts) []types.Suggestion {
	out := []types.Suggestion{{
		Text:     "This role perfectly aligns with my career goals and professional experience. I'm particularly excited about the opportunity to apply my skills in a challenging and innovative environment.",
		Label:    "Career Alignment",
		Category: CategoryCareer,
	}}

	if f.latest != nil {
		out = append(out, types.Suggestion{
			Text: fmt.Sprintf("Having worked as a %s, I have developed a deep passion for this field. This position offers the perfect next step in my career journey, allowing me to leverage my experience while continuing to grow professionally.",
				f.latest.JobTitle),
			Label:    "Career Progression",
			Category: CategoryCareer,
		})
	}

	out = append(out, types.Suggestion{
		Text:     "I'm impressed by your company's commitment to innovation and excellence. The opportunity to contribute to your team's success while working on impactful projects is exactly what I'm looking for in my next role.",
		Label:    "Company Interest",
		Category: CategoryCompany,
	})

	if len(f.profile.Skills) > minSkillsToMatch {
		out = append(out, types.Suggestion{
			Text: fmt.Sprintf("This position is a perfect match for my skill set, particularly in %s. I'm eager to bring my expertise to your team and contribute to achieving your organizational goals.",
				f.top3),
			Label:    "Skills Match",
			Category: CategorySkills,
		})
	}

	return out
}

var fixedStrengths = []types.Suggestion{
	{Text: "Excellent problem-solving and analytical abilities", Label: "Problem Solving", Category: CategoryStrength},
	{Text: "Strong communication and collaboration skills", Label: "Communication", Category: CategoryStrength},
	{Text: "Proven track record of delivering high-quality results", Label: "Results-Driven", Category: CategoryStrength},
	{Text: "Quick learner with adaptability to new technologies", Label: "Adaptability", Category: CategoryStrength},
	{Text: "Detail-oriented with strong organizational skills", Label: "Organization", Category: CategoryStrength},
}

func strengths(f facts) []types.Suggestion {
	var out []types.Suggestion

	if len(f.profile.Skills) > 0 {
		out = append(out, types.Suggestion{
			Text:     fmt.Sprintf("Strong technical proficiency in %s", f.top3),
			Label:    "Technical Skills",
			Category: CategorySkills,
		})
	}

	if f.latest != nil {
		out = append(out, types.Suggestion{
			Text:     fmt.Sprintf("%d+ years of proven experience in %s", f.years, f.latest.JobTitle),
			Label:    "Experience",
			Category: CategoryExperience,
		})
	}

	return append(out, fixedStrengths...)
}

func (g *Generator) experience(f facts) []types.Suggestion {
	entries := f.profile.WorkExperience
	out := []types.Suggestion{}
	now := g.now()

	for i, exp := range entries {
		if i >= maxExperiences {
			break
		}
		out = append(out, types.Suggestion{
			Text: fmt.Sprintf("%s at %s (%s) - %s",
				exp.JobTitle, exp.Company, Duration(EntryMonths(exp, now)), Achievement(exp.Description)),
			Label:    fmt.Sprintf("Experience %d", i+1),
			Category: CategoryExperience,
		})
	}

	if f.latest != nil {
		out = append(out, types.Suggestion{
			Text: fmt.Sprintf("%d years of professional experience across %d %s, specializing in %s.",
				f.years, len(entries), plural(len(entries), "role"), f.latest.JobTitle),
			Label:    "Experience Summary",
			Category: CategoryExperience,
		})
	}

	return out
}

func skills(f facts) []types.Suggestion {
	list := f.profile.Skills
	out := []types.Suggestion{}
	if len(list) == 0 {
		return out
	}

	bullets := make([]string, 0, len(list))
	for _, s := range list {
		bullets = append(bullets, "• "+s)
	}

	out = append(out,
		types.Suggestion{
			Text:     strings.Join(list, ", "),
			Label:    "All Skills (Comma-separated)",
			Category: CategorySkills,
		},
		types.Suggestion{
			Text:     strings.Join(bullets, "\n"),
			Label:    "All Skills (Bullet points)",
			Category: CategorySkills,
		},
	)

	if len(list) > topSkills {
		out = append(out, types.Suggestion{
			Text:     f.top5,
			Label:    "Top 5 Skills",
			Category: CategorySkills,
		})
	}

	technical, soft := SplitSkills(list)
	if len(technical) > 0 && len(soft) > 0 {
		out = append(out, types.Suggestion{
			Text:     fmt.Sprintf("Technical: %s\nSoft Skills: %s", strings.Join(technical, ", "), strings.Join(soft, ", ")),
			Label:    "Categorized Skills",
			Category: CategorySkills,
		})
	}

	if len(f.matchingSkills) > 0 {
		out = append(out, types.Suggestion{
			Text:     strings.Join(f.matchingSkills, ", "),
			Label:    "Skills Matching This Job",
			Category: CategorySkills,
		})
	}

	return out
}

func summary(f facts) []types.Suggestion {
	out := []types.Suggestion{}
	name := f.profile.PersonalInfo.FullName()

	if f.latest != nil && f.years > 0 {
		out = append(out,
			types.Suggestion{
				Text: fmt.Sprintf("%s is an experienced %s with %d+ years of expertise in %s. Proven track record of delivering innovative solutions and driving results in fast-paced environments.",
					name, f.latest.JobTitle, f.years, f.top5),
				Label:    "Professional Summary",
				Category: CategorySummary,
			},
			types.Suggestion{
				Text: fmt.Sprintf("Accomplished professional with %d years of experience in %s. Expertise in %s. Known for strong problem-solving abilities and commitment to excellence.",
					f.years, f.latest.JobTitle, f.top5),
				Label:    "Concise Summary",
				Category: CategorySummary,
			},
		)
	}

	if len(f.profile.WorkExperience) >= 2 {
		companies := make([]string, 0, maxCompanies)
		for i, exp := range f.profile.WorkExperience {
			if i >= maxCompanies {
				break
			}
			companies = append(companies, exp.Company)
		}
		out = append(out, types.Suggestion{
			Text: fmt.Sprintf("Results-driven professional with extensive experience at leading organizations including %s. Specialized in %s with a strong focus on innovation and continuous improvement.",
				strings.Join(companies, ", "), f.top5),
			Label:    "Career Highlight",
			Category: CategorySummary,
		})
	}

	return out
}

func joinFirst(list []string, n int) string {
	if len(list) > n {
		list = list[:n]
	}
	return strings.Join(list, ", ")
}

var defaultGenerator = New()

// Generate runs the default Generator.
func Generate(p *types.Profile, target types.TargetField, jobDescription string) []types.Suggestion {
	return defaultGenerator.Generate(p, target, jobDescription)
}
