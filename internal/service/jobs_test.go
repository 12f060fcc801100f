package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/model"
	"github.com/jobscout/jobscout/internal/seed"
)

func TestSeedOnlyWhenEmpty(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	svc := NewJobs(repo, seed.NewGenerator(1), zap.NewNop())

	if err := svc.Seed(ctx, 10); err != nil {
		t.Fatalf("seed: %v", err)
	}
	first, err := repo.ListJobs(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(first) != 10 {
		t.Fatalf("expected 10 jobs, got %d", len(first))
	}

	// Seeding again must not touch the existing set.
	if err := svc.Seed(ctx, 25); err != nil {
		t.Fatalf("seed again: %v", err)
	}
	count, err := repo.CountJobs(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 10 {
		t.Fatalf("seed overwrote existing jobs: %d", count)
	}

	// Refresh always regenerates.
	if err := svc.Refresh(ctx, 5); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	count, err = repo.CountJobs(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 5 {
		t.Fatalf("refresh did not replace jobs: %d", count)
	}
}

func TestListAppliesFilters(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	seedTestJobs(t, repo, testPostings())

	svc := NewJobs(repo, seed.NewGenerator(1), zap.NewNop())

	jobs, err := svc.List(ctx, "u1", model.Filters{Role: "backend"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(jobs) != 1 || jobs[0].ID != "j1" {
		t.Fatalf("unexpected jobs: %+v", jobs)
	}

	jobs, err = svc.List(ctx, "u1", model.Filters{})
	if err != nil {
		t.Fatalf("list unfiltered: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected all jobs, got %d", len(jobs))
	}
}

func TestListMatchTierUsesStoredScores(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	seedTestJobs(t, repo, testPostings())

	calculatedAt := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	matches := []model.MatchScore{
		{JobID: "j1", UserID: "u1", Score: 85, CalculatedAt: calculatedAt},
		{JobID: "j2", UserID: "u1", Score: 30, CalculatedAt: calculatedAt},
	}
	if err := repo.ReplaceMatches(ctx, "u1", matches); err != nil {
		t.Fatalf("seed matches: %v", err)
	}

	svc := NewJobs(repo, seed.NewGenerator(1), zap.NewNop())

	jobs, err := svc.List(ctx, "u1", model.Filters{MatchTier: model.MatchTierHigh})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(jobs) != 1 || jobs[0].ID != "j1" {
		t.Fatalf("unexpected jobs: %+v", jobs)
	}

	// Another user has no scores, so a tier filter drops everything.
	jobs, err = svc.List(ctx, "u2", model.Filters{MatchTier: model.MatchTierHigh})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(jobs) != 0 {
		t.Fatalf("expected no jobs, got %d", len(jobs))
	}
}
