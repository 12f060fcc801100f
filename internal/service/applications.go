package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/model"
	"github.com/jobscout/jobscout/internal/store"
)

var (
	// ErrApplicationNotFound is returned for updates against unknown IDs.
	ErrApplicationNotFound = errors.New("application not found")

	// ErrInvalidStatus is returned for status values outside the lifecycle.
	ErrInvalidStatus = errors.New("invalid application status")
)

// ApplicationService tracks applications and their status timelines.
type ApplicationService struct {
	repo   store.Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewApplications(repo store.Repository, log *zap.Logger) *ApplicationService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ApplicationService{
		repo:   repo,
		logger: log,
		now:    time.Now,
	}
}

// Create records a new application with an initial timeline event.
func (s *ApplicationService) Create(ctx context.Context, userID, jobID string, status model.ApplicationStatus, notes string) (*model.Application, error) {
	if status == "" {
		status = model.StatusApplied
	}
	if !model.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	now := s.now().UTC()
	application := &model.Application{
		ID:        uuid.NewString(),
		UserID:    userID,
		JobID:     jobID,
		Status:    status,
		AppliedAt: now,
		Notes:     notes,
		Timeline: []model.TimelineEvent{
			{Status: status, Date: now, Note: notes},
		},
	}

	if err := s.repo.SaveApplication(ctx, application); err != nil {
		return nil, fmt.Errorf("save application: %w", err)
	}

	s.logger.Info("application created",
		zap.String("user_id", userID),
		zap.String("job_id", jobID),
		zap.String("status", string(status)),
	)
	return application, nil
}

// UpdateStatus moves an application to a new status and appends the change
// to its timeline.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus, note string) (*model.Application, error) {
	if !model.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	application, err := s.repo.GetApplication(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load application: %w", err)
	}
	if application == nil {
		return nil, ErrApplicationNotFound
	}

	application.Status = status
	application.Timeline = append(application.Timeline, model.TimelineEvent{
		Status: status,
		Date:   s.now().UTC(),
		Note:   note,
	})

	if err := s.repo.SaveApplication(ctx, application); err != nil {
		return nil, fmt.Errorf("save application: %w", err)
	}
	return application, nil
}

// List returns the user's applications, newest first, with their postings
// attached when still present.
func (s *ApplicationService) List(ctx context.Context, userID string) ([]model.Application, error) {
	applications, err := s.repo.ListApplications(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}

	for i := range applications {
		job, err := s.repo.GetJob(ctx, applications[i].JobID)
		if err != nil {
			return nil, fmt.Errorf("load application job: %w", err)
		}
		applications[i].Job = job
	}
	return applications, nil
}

// Get returns an application by ID, or nil when it does not exist.
func (s *ApplicationService) Get(ctx context.Context, id string) (*model.Application, error) {
	return s.repo.GetApplication(ctx, id)
}

// GetByJob returns the user's application for one posting, or nil.
func (s *ApplicationService) GetByJob(ctx context.Context, userID, jobID string) (*model.Application, error) {
	return s.repo.GetApplicationByJob(ctx, userID, jobID)
}

// Delete removes an application, reporting whether it existed.
func (s *ApplicationService) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.DeleteApplication(ctx, id)
}
