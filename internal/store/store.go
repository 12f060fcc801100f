// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"

	"github.com/jobscout/jobscout/internal/model"
)

// Repository defines the interface for persisting jobscout data. Lookups
// return (nil, nil) when the record does not exist.
type Repository interface {
	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, id string) (*model.User, error)

	// GetUserByEmail retrieves a user by email.
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)

	// UpsertUser creates or updates a user record.
	UpsertUser(ctx context.Context, user *model.User) error

	// ListJobs retrieves all job postings.
	ListJobs(ctx context.Context) ([]model.Job, error)

	// GetJob retrieves a posting by ID.
	GetJob(ctx context.Context, id string) (*model.Job, error)

	// CountJobs reports the number of stored postings.
	CountJobs(ctx context.Context) (int, error)

	// ReplaceJobs swaps the full posting set atomically.
	ReplaceJobs(ctx context.Context, jobs []model.Job) error

	// GetResume retrieves the user's current resume.
	GetResume(ctx context.Context, userID string) (*model.Resume, error)

	// SaveResume creates or replaces the user's resume.
	SaveResume(ctx context.Context, resume *model.Resume) error

	// DeleteResume removes the user's resume, reporting whether one existed.
	DeleteResume(ctx context.Context, userID string) (bool, error)

	// GetConversation retrieves the user's assistant conversation.
	GetConversation(ctx context.Context, userID string) (*model.Conversation, error)

	// SaveConversation creates or replaces the user's conversation.
	SaveConversation(ctx context.Context, conversation *model.Conversation) error

	// ListMatches retrieves all match scores for a user.
	ListMatches(ctx context.Context, userID string) ([]model.MatchScore, error)

	// GetMatch retrieves the score for one user/job pair.
	GetMatch(ctx context.Context, userID, jobID string) (*model.MatchScore, error)

	// ReplaceMatches swaps all of a user's match scores atomically.
	ReplaceMatches(ctx context.Context, userID string, matches []model.MatchScore) error

	// ListApplications retrieves all applications of a user, newest first.
	ListApplications(ctx context.Context, userID string) ([]model.Application, error)

	// GetApplication retrieves an application by ID.
	GetApplication(ctx context.Context, id string) (*model.Application, error)

	// GetApplicationByJob retrieves a user's application for one posting.
	GetApplicationByJob(ctx context.Context, userID, jobID string) (*model.Application, error)

	// SaveApplication creates or replaces an application record.
	SaveApplication(ctx context.Context, application *model.Application) error

	// DeleteApplication removes an application, reporting whether it existed.
	DeleteApplication(ctx context.Context, id string) (bool, error)

	// Ping verifies database connectivity.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
