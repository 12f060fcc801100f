package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jobscout/jobscout/internal/matching"
	"github.com/jobscout/jobscout/internal/model"
	"github.com/jobscout/jobscout/internal/store"
)

// ErrNoResume is returned when an operation needs an uploaded resume and the
// user has none.
var ErrNoResume = errors.New("no resume uploaded")

// scoreConcurrency bounds parallel scoring to stay under provider rate
// limits.
const scoreConcurrency = 10

// defaultBestLimit is how many top matches Best returns when the caller does
// not specify a limit.
const defaultBestLimit = 8

// MatchService computes and serves resume-to-posting match scores.
type MatchService struct {
	repo    store.Repository
	matcher *matching.Matcher
	logger  *zap.Logger
}

func NewMatches(repo store.Repository, matcher *matching.Matcher, log *zap.Logger) *MatchService {
	if log == nil {
		log = zap.NewNop()
	}
	return &MatchService{
		repo:    repo,
		matcher: matcher,
		logger:  log,
	}
}

// Recalculate scores the user's resume against every posting and replaces
// the stored matches wholesale.
func (s *MatchService) Recalculate(ctx context.Context, userID string) ([]model.MatchScore, error) {
	resume, err := s.repo.GetResume(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load resume: %w", err)
	}
	if resume == nil {
		return nil, ErrNoResume
	}

	jobs, err := s.repo.ListJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	matches := make([]model.MatchScore, len(jobs))
	var mu sync.Mutex

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(scoreConcurrency)

	for i := range jobs {
		group.Go(func() error {
			score := s.matcher.Score(groupCtx, resume, &jobs[i])
			mu.Lock()
			matches[i] = *score
			mu.Unlock()
			return groupCtx.Err()
		})
	}
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("score jobs: %w", err)
	}

	if err := s.repo.ReplaceMatches(ctx, userID, matches); err != nil {
		return nil, fmt.Errorf("store matches: %w", err)
	}

	s.logger.Info("matches recalculated",
		zap.String("user_id", userID),
		zap.Int("jobs", len(jobs)),
	)
	return matches, nil
}

// List returns all of the user's match scores, best first.
func (s *MatchService) List(ctx context.Context, userID string) ([]model.MatchScore, error) {
	return s.repo.ListMatches(ctx, userID)
}

// Best returns the user's top matches. limit <= 0 selects the default.
func (s *MatchService) Best(ctx context.Context, userID string, limit int) ([]model.MatchScore, error) {
	if limit <= 0 {
		limit = defaultBestLimit
	}

	matches, err := s.repo.ListMatches(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// ForJob returns the score for one posting, or nil when it has not been
// calculated.
func (s *MatchService) ForJob(ctx context.Context, userID, jobID string) (*model.MatchScore, error) {
	return s.repo.GetMatch(ctx, userID, jobID)
}
