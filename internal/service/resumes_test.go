package service

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/store"
)

func newTestRepo(t *testing.T) store.Repository {
	t.Helper()

	repo, err := store.NewSQLite(filepath.Join(t.TempDir(), "jobscout.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	return repo
}

const sampleResume = `Jane Doe
jane@example.com

Summary
Software engineer with 6 years of experience building web platforms.

Work Experience
- Built React dashboards serving millions of requests
- Designed REST APIs in Node.js and PostgreSQL
* Led a team of 4 engineers through an AWS migration

Education
- BSc Computer Science

Skills
JavaScript, TypeScript, React, Node.js, PostgreSQL, AWS, Docker
`

func TestExtractSkills(t *testing.T) {
	got := ExtractSkills(sampleResume)

	want := []string{"JavaScript", "TypeScript", "React", "Node.js", "PostgreSQL", "AWS", "Docker", "REST"}
	for _, skill := range want {
		if !contains(got, skill) {
			t.Errorf("skill %q not extracted, got %v", skill, got)
		}
	}
	if contains(got, "Python") {
		t.Errorf("Python should not match: %v", got)
	}
}

func TestExtractSkillsWholeWordsOnly(t *testing.T) {
	got := ExtractSkills("I know Golang and Javascripting")

	// "Go" must not match inside "Golang", nor "JavaScript" inside
	// "Javascripting".
	if contains(got, "Go") || contains(got, "JavaScript") {
		t.Fatalf("partial-word matches extracted: %v", got)
	}
}

func TestExtractExperienceSectionAware(t *testing.T) {
	got := ExtractExperience(sampleResume)

	want := []string{
		"Built React dashboards serving millions of requests",
		"Designed REST APIs in Node.js and PostgreSQL",
		"Led a team of 4 engineers through an AWS migration",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestExtractExperienceIgnoresOtherSections(t *testing.T) {
	text := `Education
- BSc Computer Science

Projects
- Side project in Rust
`
	if got := ExtractExperience(text); got != nil {
		t.Fatalf("expected no bullets, got %v", got)
	}
}

func TestExtractResumeKeywords(t *testing.T) {
	text := "kubernetes kubernetes kubernetes platform platform deploy short tiny"

	got := ExtractResumeKeywords(text)

	// Most frequent first; words shorter than five characters dropped.
	want := []string{"kubernetes", "platform", "deploy", "short"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestUploadRejectsNonText(t *testing.T) {
	svc := NewResumes(newTestRepo(t), zap.NewNop())

	_, err := svc.Upload(context.Background(), "u1", "resume.pdf", []byte("%PDF"))
	if !errors.Is(err, ErrUnsupportedFile) {
		t.Fatalf("expected ErrUnsupportedFile, got %v", err)
	}
}

func TestUploadPersistsProfile(t *testing.T) {
	ctx := context.Background()
	svc := NewResumes(newTestRepo(t), zap.NewNop())

	uploaded, err := svc.Upload(ctx, "u1", "resume.txt", []byte(sampleResume))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if len(uploaded.Skills) == 0 || len(uploaded.Experience) != 3 {
		t.Fatalf("profile not extracted: %+v", uploaded)
	}

	stored, err := svc.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored == nil || stored.Filename != "resume.txt" {
		t.Fatalf("resume not persisted: %+v", stored)
	}

	existed, err := svc.Delete(ctx, "u1")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !existed {
		t.Fatal("expected delete to find the resume")
	}
}

func contains(values []string, wanted string) bool {
	for _, v := range values {
		if v == wanted {
			return true
		}
	}
	return false
}
