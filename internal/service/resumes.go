package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/model"
	"github.com/jobscout/jobscout/internal/store"
)

// ErrUnsupportedFile is returned for resume uploads that are not plain text.
var ErrUnsupportedFile = errors.New("unsupported file type, please upload TXT")

// commonSkills is the vocabulary scanned for during skill extraction.
var commonSkills = []string{
	"JavaScript", "TypeScript", "Python", "Java", "C++", "Go", "Rust",
	"React", "Vue", "Angular", "Next.js", "Node.js", "Express",
	"Django", "Flask", "Spring", "FastAPI",
	"PostgreSQL", "MongoDB", "MySQL", "Redis",
	"AWS", "Azure", "GCP", "Docker", "Kubernetes",
	"Git", "CI/CD", "REST", "GraphQL", "Microservices",
	"TensorFlow", "PyTorch", "Machine Learning", "AI",
	"Agile", "Scrum", "Leadership", "Team Management",
}

var skillPatterns = buildSkillPatterns()

func buildSkillPatterns() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(commonSkills))
	for i, skill := range commonSkills {
		patterns[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(skill) + `\b`)
	}
	return patterns
}

var (
	experienceHeader = regexp.MustCompile(`(?i)experience|work history|employment`)
	sectionBreak     = regexp.MustCompile(`(?i)education|skills|projects|certifications`)
	keywordSplit     = regexp.MustCompile(`[^\w\s]`)
)

const (
	topKeywordCount  = 20
	minKeywordLength = 5
)

// ResumeService parses uploaded resumes into searchable profiles.
type ResumeService struct {
	repo   store.Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewResumes(repo store.Repository, log *zap.Logger) *ResumeService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ResumeService{
		repo:   repo,
		logger: log,
		now:    time.Now,
	}
}

// Upload parses a resume file, extracts the profile and replaces any
// previous resume of the user.
func (s *ResumeService) Upload(ctx context.Context, userID, filename string, content []byte) (*model.Resume, error) {
	if strings.ToLower(filepath.Ext(filename)) != ".txt" {
		return nil, ErrUnsupportedFile
	}

	text := string(content)
	resume := &model.Resume{
		UserID:        userID,
		Filename:      filename,
		UploadedAt:    s.now().UTC(),
		ExtractedText: text,
		Skills:        ExtractSkills(text),
		Experience:    ExtractExperience(text),
		Keywords:      ExtractResumeKeywords(text),
	}

	if err := s.repo.SaveResume(ctx, resume); err != nil {
		return nil, fmt.Errorf("save resume: %w", err)
	}

	s.logger.Info("resume uploaded",
		zap.String("user_id", userID),
		zap.String("filename", filename),
		zap.Int("skills", len(resume.Skills)),
		zap.Int("experience_bullets", len(resume.Experience)),
	)
	return resume, nil
}

// Get returns the user's resume, or nil when none is uploaded.
func (s *ResumeService) Get(ctx context.Context, userID string) (*model.Resume, error) {
	return s.repo.GetResume(ctx, userID)
}

// Delete removes the user's resume, reporting whether one existed.
func (s *ResumeService) Delete(ctx context.Context, userID string) (bool, error) {
	return s.repo.DeleteResume(ctx, userID)
}

// ExtractSkills returns the vocabulary skills mentioned in the text, as
// whole words, in vocabulary order.
func ExtractSkills(text string) []string {
	var found []string
	for i, pattern := range skillPatterns {
		if pattern.MatchString(text) {
			found = append(found, commonSkills[i])
		}
	}
	return found
}

// ExtractExperience collects the bullet lines inside experience-like
// sections. Section headers toggle collection on; education, skills,
// projects and certifications headers toggle it off.
func ExtractExperience(text string) []string {
	var bullets []string
	inExperience := false

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		if experienceHeader.MatchString(trimmed) {
			inExperience = true
			continue
		}
		if sectionBreak.MatchString(trimmed) {
			inExperience = false
		}

		if inExperience && (strings.HasPrefix(trimmed, "-") ||
			strings.HasPrefix(trimmed, "•") || strings.HasPrefix(trimmed, "*")) {
			bullet := strings.TrimLeft(trimmed, "-•* ")
			bullets = append(bullets, bullet)
		}
	}

	return bullets
}

// ExtractResumeKeywords returns the most frequent long words of the text,
// most frequent first, ties in first-seen order.
func ExtractResumeKeywords(text string) []string {
	cleaned := keywordSplit.ReplaceAllString(strings.ToLower(text), " ")

	frequency := map[string]int{}
	var order []string
	for _, word := range strings.Fields(cleaned) {
		if len(word) < minKeywordLength {
			continue
		}
		if frequency[word] == 0 {
			order = append(order, word)
		}
		frequency[word]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return frequency[order[i]] > frequency[order[j]]
	})

	if len(order) > topKeywordCount {
		order = order[:topKeywordCount]
	}
	return order
}
