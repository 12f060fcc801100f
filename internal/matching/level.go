package matching

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jobscout/jobscout/internal/model"
)

var yearsPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\+?\s*years?\s*of\s*experience`),
	regexp.MustCompile(`(?i)experience:\s*(\d+)\+?\s*years?`),
}

const maxInferredYears = 15

// yearsOfExperience extracts a years-of-experience figure from free resume
// text. When no explicit figure is stated, the number of bullet lines serves
// as a rough proxy, capped at maxInferredYears.
func yearsOfExperience(text string) int {
	for _, pattern := range yearsPatterns {
		if match := pattern.FindStringSubmatch(text); match != nil {
			years, err := strconv.Atoi(match[1])
			if err == nil {
				return years
			}
		}
	}

	bullets := strings.Count(text, "\n-")
	if bullets > maxInferredYears {
		return maxInferredYears
	}
	return bullets
}

// jobLevel infers posting seniority from the title on a 1-5 scale.
func jobLevel(job *model.Job) int {
	title := strings.ToLower(job.Title)

	switch {
	case strings.Contains(title, "intern"), strings.Contains(title, "junior"):
		return 1
	case strings.Contains(title, "senior"), strings.Contains(title, "lead"):
		return 3
	case strings.Contains(title, "staff"), strings.Contains(title, "principal"):
		return 4
	case strings.Contains(title, "director"), strings.Contains(title, "vp"):
		return 5
	default:
		return 2
	}
}

// candidateLevel infers candidate seniority from resume text on a 1-5 scale.
func candidateLevel(resume *model.Resume) int {
	years := yearsOfExperience(strings.ToLower(resume.ExtractedText))

	switch {
	case years < 2:
		return 1
	case years < 5:
		return 2
	case years < 8:
		return 3
	case years < 12:
		return 4
	default:
		return 5
	}
}

// levelFit rates how well the candidate's seniority matches the posting's,
// as a multiplier in [0.2, 1.0].
func levelFit(resume *model.Resume, job *model.Job) float64 {
	diff := jobLevel(job) - candidateLevel(resume)
	if diff < 0 {
		diff = -diff
	}

	switch diff {
	case 0:
		return 1.0
	case 1:
		return 0.7
	case 2:
		return 0.4
	default:
		return 0.2
	}
}
