// Package service wires the engines and the store into the operations the
// API and the CLI expose.
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/assistant"
	"github.com/jobscout/jobscout/internal/model"
	"github.com/jobscout/jobscout/internal/store"
)

// AssistantService runs assistant turns and persists the conversation.
type AssistantService struct {
	repo   store.Repository
	router *assistant.Router
	logger *zap.Logger
	now    func() time.Time
}

func NewAssistant(repo store.Repository, router *assistant.Router, log *zap.Logger) *AssistantService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AssistantService{
		repo:   repo,
		router: router,
		logger: log,
		now:    time.Now,
	}
}

// ProcessMessage runs one assistant turn, appends both sides of the exchange
// to the conversation and merges any filter update into the current filters.
func (s *AssistantService) ProcessMessage(ctx context.Context, userID, message string) (*assistant.Result, error) {
	conversation, err := s.repo.GetConversation(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load conversation: %w", err)
	}
	if conversation == nil {
		conversation = &model.Conversation{UserID: userID}
	}

	result := s.router.Process(ctx, userID, message, conversation)

	now := s.now().UTC()
	conversation.Messages = append(conversation.Messages,
		model.Message{
			Role:      model.RoleUser,
			Content:   message,
			Timestamp: now,
		},
		model.Message{
			Role:         model.RoleAssistant,
			Content:      result.Response,
			Timestamp:    now,
			FilterUpdate: result.FilterUpdate,
		},
	)

	if result.FilterUpdate != nil {
		conversation.CurrentFilters = conversation.CurrentFilters.Merge(result.FilterUpdate)
	}

	if err := s.repo.SaveConversation(ctx, conversation); err != nil {
		return nil, fmt.Errorf("save conversation: %w", err)
	}

	return result, nil
}

// GetConversation returns the user's conversation, or an empty one when the
// user has never talked to the assistant.
func (s *AssistantService) GetConversation(ctx context.Context, userID string) (*model.Conversation, error) {
	conversation, err := s.repo.GetConversation(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load conversation: %w", err)
	}
	if conversation == nil {
		conversation = &model.Conversation{UserID: userID}
	}
	return conversation, nil
}

// ClearConversation resets the user's conversation and filters.
func (s *AssistantService) ClearConversation(ctx context.Context, userID string) error {
	if err := s.repo.SaveConversation(ctx, &model.Conversation{UserID: userID}); err != nil {
		return fmt.Errorf("clear conversation: %w", err)
	}
	return nil
}
