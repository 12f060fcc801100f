package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/filtering"
	"github.com/jobscout/jobscout/internal/model"
	"github.com/jobscout/jobscout/internal/seed"
	"github.com/jobscout/jobscout/internal/store"
)

// JobService lists and filters job postings and manages the seeded set.
type JobService struct {
	repo      store.Repository
	generator *seed.Generator
	logger    *zap.Logger
	now       func() time.Time
}

func NewJobs(repo store.Repository, generator *seed.Generator, log *zap.Logger) *JobService {
	if log == nil {
		log = zap.NewNop()
	}
	return &JobService{
		repo:      repo,
		generator: generator,
		logger:    log,
		now:       time.Now,
	}
}

// List returns the postings matching the user's filters. Match scores are
// loaded only when a match tier filter is active.
func (s *JobService) List(ctx context.Context, userID string, filters model.Filters) ([]model.Job, error) {
	jobs, err := s.repo.ListJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	var scores map[string]int
	if filters.MatchTier != "" && filters.MatchTier != model.MatchTierAll {
		matches, err := s.repo.ListMatches(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("list matches: %w", err)
		}
		scores = make(map[string]int, len(matches))
		for _, match := range matches {
			scores[match.JobID] = match.Score
		}
	}

	steps := filtering.FromFilters(filters, scores, s.now().UTC())
	return filtering.Run(s.logger, steps, jobs), nil
}

// Get returns a posting by ID, or nil when it does not exist.
func (s *JobService) Get(ctx context.Context, id string) (*model.Job, error) {
	return s.repo.GetJob(ctx, id)
}

// Seed populates the posting set when it is empty.
func (s *JobService) Seed(ctx context.Context, count int) error {
	existing, err := s.repo.CountJobs(ctx)
	if err != nil {
		return fmt.Errorf("count jobs: %w", err)
	}
	if existing > 0 {
		return nil
	}

	if err := s.repo.ReplaceJobs(ctx, s.generator.Jobs(count)); err != nil {
		return fmt.Errorf("seed jobs: %w", err)
	}

	s.logger.Info("job postings seeded", zap.Int("count", count))
	return nil
}

// Refresh regenerates the posting set. Existing match scores refer to the
// dropped postings and should be recalculated afterwards.
func (s *JobService) Refresh(ctx context.Context, count int) error {
	if err := s.repo.ReplaceJobs(ctx, s.generator.Jobs(count)); err != nil {
		return fmt.Errorf("refresh jobs: %w", err)
	}

	s.logger.Info("job postings refreshed", zap.Int("count", count))
	return nil
}
