package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/model"
)

func TestApplicationLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	seedTestJobs(t, repo, testPostings())

	svc := NewApplications(repo, zap.NewNop())

	created, err := svc.Create(ctx, "u1", "j1", "", "reached out to recruiter")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != model.StatusApplied {
		t.Fatalf("empty status must default to applied, got %q", created.Status)
	}
	if len(created.Timeline) != 1 || created.Timeline[0].Note != "reached out to recruiter" {
		t.Fatalf("unexpected timeline: %+v", created.Timeline)
	}

	updated, err := svc.UpdateStatus(ctx, created.ID, model.StatusInterview, "phone screen")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != model.StatusInterview || len(updated.Timeline) != 2 {
		t.Fatalf("unexpected application: %+v", updated)
	}

	listed, err := svc.List(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 application, got %d", len(listed))
	}
	if listed[0].Job == nil || listed[0].Job.Title != "Senior Backend Engineer" {
		t.Fatalf("posting not attached: %+v", listed[0].Job)
	}
}

func TestApplicationValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewApplications(newTestRepo(t), zap.NewNop())

	if _, err := svc.Create(ctx, "u1", "j1", "ghosted", ""); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}

	if _, err := svc.UpdateStatus(ctx, "missing", model.StatusOffer, ""); !errors.Is(err, ErrApplicationNotFound) {
		t.Fatalf("expected ErrApplicationNotFound, got %v", err)
	}
}
