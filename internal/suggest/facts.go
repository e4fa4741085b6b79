package suggest

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonathan/apply-assistant/internal/textmatch"
	"github.com/jonathan/apply-assistant/internal/types"
)

// monthLayout is the profile date format.
const monthLayout = "2006-01"

// MonthsBetween returns the whole months from start to end, both "YYYY-MM".
// When current is true the end is now. Unparseable dates and negative spans
// yield zero.
func MonthsBetween(start, end string, current bool, now time.Time) int {
	s, err := time.Parse(monthLayout, strings.TrimSpace(start))
	if err != nil {
		return 0
	}

	e := now
	if !current {
		e, err = time.Parse(monthLayout, strings.TrimSpace(end))
		if err != nil {
			return 0
		}
	}

	months := (e.Year()-s.Year())*12 + int(e.Month()) - int(s.Month())
	if months < 0 {
		return 0
	}
	return months
}

// EntryMonths returns the span of one work entry in months.
func EntryMonths(exp types.WorkExperience, now time.Time) int {
	return MonthsBetween(exp.StartDate, exp.EndDate, exp.CurrentJob, now)
}

// YearsOfExperience sums the month spans of all entries and floors the total to whole years.
func YearsOfExperience(entries []types.WorkExperience, now time.Time) int {
	total := 0
	for _, exp := range entries {
		total += EntryMonths(exp, now)
	}
	return total / 12
}

// Duration renders a month count as "Xy Ym", "X year(s)" or "Y month(s)".
func Duration(months int) string {
	if months < 0 {
		months = 0
	}
	years := months / 12
	rest := months % 12

	switch {
	case years > 0 && rest > 0:
		return fmt.Sprintf("%dy %dm", years, rest)
	case years > 0:
		return fmt.Sprintf("%d %s", years, plural(years, "year"))
	default:
		return fmt.Sprintf("%d %s", rest, plural(rest, "month"))
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

var sentenceBreak = regexp.MustCompile(`[.!?]`)

// minAchievementLength is the exclusive lower bound for a sentence to count as an achievement.
const minAchievementLength = 20

// achievementFallbackLength caps the raw-description fallback.
const achievementFallbackLength = 100

// Achievement returns the first sentence of description longer than 20
// characters once trimmed, or the first 100 characters of the raw description.
func Achievement(description string) string {
	for _, sentence := range sentenceBreak.Split(description, -1) {
		trimmed := strings.TrimSpace(sentence)
		if utf8.RuneCountInString(trimmed) > minAchievementLength {
			return trimmed
		}
	}
	return truncateRunes(description, achievementFallbackLength)
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

var technicalKeywords = textmatch.New(
	"javascript", "python", "java", "react", "node", "sql", "aws", "docker",
	"git", "api", "css", "html", "typescript", "angular", "vue", "mongodb",
	"programming", "coding", "development", "software", "database",
)

// IsTechnicalSkill reports whether a skill names a technology.
func IsTechnicalSkill(skill string) bool {
	return technicalKeywords.Any(skill)
}

// SplitSkills partitions skills into technical and soft groups, preserving order.
func SplitSkills(skills []string) (technical, soft []string) {
	for _, s := range skills {
		if IsTechnicalSkill(s) {
			technical = append(technical, s)
		} else {
			soft = append(soft, s)
		}
	}
	return technical, soft
}

// MatchingSkills returns the profile skills mentioned in a job description,
// in profile order.
func MatchingSkills(skills []string, jobDescription string) []string {
	if strings.TrimSpace(jobDescription) == "" || len(skills) == 0 {
		return nil
	}

	found := make(map[string]bool)
	for _, kw := range textmatch.New(skills...).Matches(jobDescription) {
		found[kw] = true
	}

	var out []string
	seen := make(map[string]bool)
	for _, s := range skills {
		key := strings.ToLower(s)
		if found[key] && !seen[key] {
			seen[key] = true
			out = append(out, s)
		}
	}
	return out
}
