package matching

import (
	"context"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/ai"
	"github.com/jobscout/jobscout/internal/model"
)

type scriptedReply struct {
	text string
	err  error
}

type scriptedCompleter struct {
	replies []scriptedReply
	prompts []string
}

func (s *scriptedCompleter) Complete(_ context.Context, prompt string, _ ...ai.Option) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if len(s.replies) == 0 {
		return "", errors.New("no scripted reply")
	}
	reply := s.replies[0]
	s.replies = s.replies[1:]
	return reply.text, reply.err
}

func testResume() *model.Resume {
	return &model.Resume{
		UserID:        "u1",
		ExtractedText: "Senior engineer with 6 years of experience building api platforms in the cloud",
		Skills:        []string{"react", "node.js"},
		Experience: []string{
			"Built React dashboards for analytics",
			"Ran a book club",
			"Designed REST api services in Node.js",
			"Led cloud migrations on aws",
		},
		Keywords: []string{"api"},
	}
}

func testJob() *model.Job {
	return &model.Job{
		ID:           "j1",
		Title:        "Senior Frontend Engineer",
		Company:      "TechCorp",
		Description:  "Build api integrations in the cloud",
		Requirements: []string{"5+ years of experience"},
		Skills:       []string{"React", "Node.js"},
	}
}

func TestScoreDeterministicWithoutCompleter(t *testing.T) {
	matcher := New(nil, zap.NewNop(), 0)

	got := matcher.Score(context.Background(), testResume(), testJob())

	// skills 2/2*40 = 40, experience fallback 15, keywords: job text has
	// api and cloud, resume has both -> 2/2*20 = 20, level: senior title
	// (3) vs 6 years (3) -> 1.0*10 = 10. Total 85.
	if got.Score != 85 {
		t.Fatalf("unexpected score: %d", got.Score)
	}
	if !reflect.DeepEqual(got.Explanation.MatchingSkills, []string{"React", "Node.js"}) {
		t.Fatalf("unexpected matching skills: %v", got.Explanation.MatchingSkills)
	}
	if !reflect.DeepEqual(got.Explanation.KeywordAlignment, []string{"api", "cloud"}) {
		t.Fatalf("unexpected keyword alignment: %v", got.Explanation.KeywordAlignment)
	}
	want := "Strong match for Senior Frontend Engineer! You have 2 matching skills and relevant experience."
	if got.Explanation.OverallReason != want {
		t.Fatalf("unexpected explanation: %q", got.Explanation.OverallReason)
	}
	if got.JobID != "j1" || got.UserID != "u1" {
		t.Fatalf("ids not carried through: %+v", got)
	}
	if got.CalculatedAt.IsZero() {
		t.Fatal("calculatedAt not set")
	}
}

func TestScoreUsesModelForExperienceAndExplanation(t *testing.T) {
	completer := &scriptedCompleter{replies: []scriptedReply{
		{text: "28"},
		{text: "A very strong alignment with your frontend background."},
	}}
	matcher := New(completer, zap.NewNop(), 0)

	got := matcher.Score(context.Background(), testResume(), testJob())

	// 40 + 28 + 20 + 10 = 98.
	if got.Score != 98 {
		t.Fatalf("unexpected score: %d", got.Score)
	}
	if got.Explanation.OverallReason != "A very strong alignment with your frontend background." {
		t.Fatalf("unexpected explanation: %q", got.Explanation.OverallReason)
	}

	if len(completer.prompts) != 2 {
		t.Fatalf("expected 2 model calls, got %d", len(completer.prompts))
	}
	if !strings.Contains(completer.prompts[0], "5+ years of experience") {
		t.Fatal("experience prompt missing requirements")
	}
	if !strings.Contains(completer.prompts[1], "98/100") {
		t.Fatal("explanation prompt missing score")
	}
}

func TestScoreClampsExperienceAndTotal(t *testing.T) {
	completer := &scriptedCompleter{replies: []scriptedReply{
		{text: "42"},
		{err: errors.New("unavailable")},
	}}
	matcher := New(completer, zap.NewNop(), 0)

	got := matcher.Score(context.Background(), testResume(), testJob())

	// Experience clamped to 30: 40 + 30 + 20 + 10 = 100.
	if got.Score != 100 {
		t.Fatalf("unexpected score: %d", got.Score)
	}
}

func TestScorePartialSkillsOverlap(t *testing.T) {
	matcher := New(nil, zap.NewNop(), 0)

	resume := testResume()
	resume.Skills = []string{"react", "python"}
	resume.Keywords = nil
	resume.ExtractedText = "3 years of experience"
	resume.Experience = nil

	job := testJob()
	job.Title = "Software Engineer"
	job.Skills = []string{"React", "Node.js", "TypeScript"}
	job.Description = "Plain description"
	job.Requirements = nil

	got := matcher.Score(context.Background(), resume, job)

	// skills 1/3*40 = 13.33, experience 15, keywords 0/0 -> 0, level:
	// mid (2) vs 3 years (2) -> 10. Round(38.33) = 38.
	if got.Score != 38 {
		t.Fatalf("unexpected score: %d", got.Score)
	}
	if !strings.HasPrefix(got.Explanation.OverallReason, "This Software Engineer role has different requirements") {
		t.Fatalf("unexpected explanation: %q", got.Explanation.OverallReason)
	}
}

func TestScoreExperienceFallbacks(t *testing.T) {
	tests := []struct {
		name  string
		reply scriptedReply
		want  float64
	}{
		{"plain number", scriptedReply{text: "25"}, 25},
		{"number with suffix", scriptedReply{text: "22.5 out of 30"}, 22.5},
		{"prose reply", scriptedReply{text: "I would rate this 18"}, experienceFallback},
		{"model error", scriptedReply{err: errors.New("down")}, experienceFallback},
		{"negative clamped", scriptedReply{text: "-4"}, 0},
		{"over max clamped", scriptedReply{text: "31"}, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := &scriptedCompleter{replies: []scriptedReply{tt.reply}}
			matcher := New(completer, zap.NewNop(), 0)

			got := matcher.scoreExperience(context.Background(), testResume(), testJob())
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRelevantExperienceCapsAtThree(t *testing.T) {
	job := testJob()
	experience := []string{
		"Built React dashboards",
		"Unrelated bullet about accounting",
		"Node.js api services",
		"Cloud deployments",
		"More React work",
	}

	got := relevantExperience(experience, job)

	want := []string{"Built React dashboards", "Node.js api services", "Cloud deployments"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSkillsSubScoreRounding(t *testing.T) {
	matcher := New(nil, zap.NewNop(), 0)

	resume := &model.Resume{
		UserID:        "u1",
		Skills:        []string{"go", "postgres"},
		ExtractedText: "1 years of experience",
	}
	job := &model.Job{
		ID:     "j1",
		Title:  "Junior Engineer",
		Skills: []string{"Go", "Postgres", "Kafka"},
	}

	got := matcher.Score(context.Background(), resume, job)

	// skills 2/3*40 = 26.67, experience 15, keywords 0, level junior vs
	// junior -> 10. Round(51.67) = 52.
	if got.Score != 52 {
		t.Fatalf("unexpected score: %d", got.Score)
	}
}
