package server

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/model"
)

type chatRequest struct {
	Message string `json:"message" validate:"required"`
}

type chatResponse struct {
	Response     string              `json:"response"`
	FilterUpdate *model.FilterUpdate `json:"filterUpdate,omitempty"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := s.decodeBody(r, &req); err != nil {
		Error(w, http.StatusBadRequest, "Message required")
		return
	}

	result, err := s.services.Assistant.ProcessMessage(r.Context(), userID(r), req.Message)
	if err != nil {
		s.logger.Error("assistant turn failed", zap.Error(err))
		Error(w, http.StatusInternalServerError, "Failed to process message")
		return
	}

	JSON(w, http.StatusOK, chatResponse{
		Response:     result.Response,
		FilterUpdate: result.FilterUpdate,
	})
}

func (s *Server) handleGetConversation(w http.ResponseWriter, r *http.Request) {
	conversation, err := s.services.Assistant.GetConversation(r.Context(), userID(r))
	if err != nil {
		s.logger.Error("load conversation failed", zap.Error(err))
		Error(w, http.StatusInternalServerError, "failed to load conversation")
		return
	}

	JSON(w, http.StatusOK, map[string]*model.Conversation{"conversation": conversation})
}

func (s *Server) handleClearConversation(w http.ResponseWriter, r *http.Request) {
	if err := s.services.Assistant.ClearConversation(r.Context(), userID(r)); err != nil {
		s.logger.Error("clear conversation failed", zap.Error(err))
		Error(w, http.StatusInternalServerError, "failed to clear conversation")
		return
	}

	JSON(w, http.StatusOK, map[string]string{"message": "Conversation cleared"})
}
