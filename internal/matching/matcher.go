// Package matching implements the resume-to-posting compatibility scorer:
// four weighted deterministic and model-assisted sub-scores summed into a
// 0-100 rating with a human-readable explanation.
package matching

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	_ "embed"

	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/ai"
	"github.com/jobscout/jobscout/internal/logger"
	"github.com/jobscout/jobscout/internal/model"
)

//go:embed experience_prompt.md
var experiencePromptTemplate string

//go:embed explanation_prompt.md
var explanationPromptTemplate string

const (
	matcherTemperature = 0.3

	// Weights of the four sub-scores. They sum to 100.
	skillsWeight     = 40.0
	experienceWeight = 30.0
	keywordWeight    = 20.0
	levelWeight      = 10.0

	// Neutral experience score used when the model is unavailable or its
	// reply is not a number.
	experienceFallback = 15.0

	relevantExperienceLimit = 3
)

var leadingNumber = regexp.MustCompile(`^-?\d+(\.\d+)?`)

// Matcher scores resumes against postings. completer may be nil; scoring
// then runs fully deterministic with neutral experience and templated
// explanations.
type Matcher struct {
	completer ai.Completer
	logger    *zap.Logger
	maxLogLen int
}

func New(completer ai.Completer, log *zap.Logger, maxLogLength int) *Matcher {
	if log == nil {
		log = zap.NewNop()
	}
	if maxLogLength <= 0 {
		maxLogLength = 200
	}

	return &Matcher{
		completer: completer,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

// Score computes the 0-100 match between resume and job. It never fails:
// every model-assisted component has a deterministic fallback.
func (m *Matcher) Score(ctx context.Context, resume *model.Resume, job *model.Job) *model.MatchScore {
	resumeSkills := lowerSet(resume.Skills)
	resumeKeywords := lowerSet(resume.Keywords)
	resumeText := strings.ToLower(resume.ExtractedText)

	var matchingSkills []string
	for _, skill := range job.Skills {
		if resumeSkills[strings.ToLower(skill)] {
			matchingSkills = append(matchingSkills, skill)
		}
	}
	skillsScore := float64(len(matchingSkills)) / float64(max(len(job.Skills), 1)) * skillsWeight

	experienceScore := m.scoreExperience(ctx, resume, job)

	jobText := job.Description + " " + strings.Join(job.Requirements, " ")
	jobKeywords := ExtractKeywords(jobText)
	var keywordMatches []string
	for _, keyword := range jobKeywords {
		if resumeKeywords[keyword] || strings.Contains(resumeText, keyword) {
			keywordMatches = append(keywordMatches, keyword)
		}
	}
	keywordScore := float64(len(keywordMatches)) / float64(max(len(jobKeywords), 1)) * keywordWeight

	levelScore := levelFit(resume, job) * levelWeight

	total := int(math.Round(skillsScore + experienceScore + keywordScore + levelScore))
	if total > 100 {
		total = 100
	}

	m.logger.Debug("match scored",
		zap.String("user_id", resume.UserID),
		zap.String("job_id", job.ID),
		zap.Int("score", total),
		zap.Float64("skills", skillsScore),
		zap.Float64("experience", experienceScore),
		zap.Float64("keywords", keywordScore),
		zap.Float64("level", levelScore),
	)

	return &model.MatchScore{
		JobID:  job.ID,
		UserID: resume.UserID,
		Score:  total,
		Explanation: model.Explanation{
			MatchingSkills:     matchingSkills,
			RelevantExperience: relevantExperience(resume.Experience, job),
			KeywordAlignment:   keywordMatches,
			OverallReason:      m.explain(ctx, job, matchingSkills, keywordMatches, total),
		},
		CalculatedAt: time.Now().UTC(),
	}
}

// scoreExperience asks the model to rate experience relevance 0-30. A
// missing model, a failed call or an unparsable reply all degrade to the
// neutral midpoint.
func (m *Matcher) scoreExperience(ctx context.Context, resume *model.Resume, job *model.Job) float64 {
	prompt := strings.NewReplacer(
		"{{REQUIREMENTS}}", strings.Join(job.Requirements, "\n"),
		"{{DESCRIPTION}}", job.Description,
		"{{EXPERIENCE}}", strings.Join(resume.Experience, "\n"),
	).Replace(experiencePromptTemplate)

	raw, err := m.complete(ctx, prompt)
	if err != nil {
		m.logger.Debug("experience scoring unavailable",
			zap.String("job_id", job.ID),
			zap.Error(err),
		)
		return experienceFallback
	}

	score, err := parseLeadingNumber(raw)
	if err != nil {
		m.logger.Debug("experience score unparsable",
			zap.String("job_id", job.ID),
			zap.String("response_preview", logger.TruncateForLog(raw, m.maxLogLen)),
		)
		return experienceFallback
	}

	if score < 0 {
		return 0
	}
	if score > experienceWeight {
		return experienceWeight
	}
	return score
}

// explain asks the model for a 2-3 sentence explanation of the score,
// falling back to a templated sentence keyed on the score band.
func (m *Matcher) explain(ctx context.Context, job *model.Job, matchingSkills, keywordMatches []string, score int) string {
	skills := strings.Join(matchingSkills, ", ")
	if skills == "" {
		skills = "None directly listed"
	}
	keywords := strings.Join(keywordMatches, ", ")
	if keywords == "" {
		keywords = "Limited overlap"
	}

	prompt := strings.NewReplacer(
		"{{JOB_TITLE}}", job.Title,
		"{{COMPANY}}", job.Company,
		"{{SCORE}}", strconv.Itoa(score),
		"{{MATCHING_SKILLS}}", skills,
		"{{KEYWORDS}}", keywords,
		"{{LEVEL}}", scoreBand(score),
	).Replace(explanationPromptTemplate)

	raw, err := m.complete(ctx, prompt)
	if err != nil {
		m.logger.Debug("explanation unavailable",
			zap.String("job_id", job.ID),
			zap.Error(err),
		)
		return defaultExplanation(score, len(matchingSkills), job.Title)
	}

	return strings.TrimSpace(raw)
}

func (m *Matcher) complete(ctx context.Context, prompt string) (string, error) {
	if m.completer == nil {
		return "", errors.New("no completer configured")
	}
	return m.completer.Complete(ctx, prompt, ai.WithTemperature(matcherTemperature))
}

func scoreBand(score int) string {
	switch {
	case score > 70:
		return "strong"
	case score > 40:
		return "medium"
	default:
		return "weak"
	}
}

// defaultExplanation renders the banded template used when the model cannot
// produce an explanation.
func defaultExplanation(score, skillMatches int, jobTitle string) string {
	switch {
	case score > 70:
		return fmt.Sprintf("Strong match for %s! You have %d matching skills and relevant experience.", jobTitle, skillMatches)
	case score > 40:
		return fmt.Sprintf("Moderate fit for %s. You meet some requirements, with %d matching skills.", jobTitle, skillMatches)
	default:
		return fmt.Sprintf("This %s role has different requirements, with limited skill overlap. Consider it for growth opportunities.", jobTitle)
	}
}

// relevantExperience picks the first bullets that mention a job skill or a
// job-text keyword, preserving resume order.
func relevantExperience(experience []string, job *model.Job) []string {
	jobText := strings.ToLower(job.Description + " " + strings.Join(job.Requirements, " "))
	jobKeywords := ExtractKeywords(jobText)

	var relevant []string
	for _, bullet := range experience {
		if len(relevant) == relevantExperienceLimit {
			break
		}
		lower := strings.ToLower(bullet)
		if mentionsAny(lower, job.Skills) || mentionsAny(lower, jobKeywords) {
			relevant = append(relevant, bullet)
		}
	}
	return relevant
}

func mentionsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, strings.ToLower(term)) {
			return true
		}
	}
	return false
}

func parseLeadingNumber(raw string) (float64, error) {
	match := leadingNumber.FindString(strings.TrimSpace(raw))
	if match == "" {
		return 0, errors.New("no leading number")
	}
	return strconv.ParseFloat(match, 64)
}

func lowerSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = true
	}
	return set
}
