package server

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/model"
)

type loginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := s.decodeBody(r, &req); err != nil {
		Error(w, http.StatusBadRequest, "email and name required")
		return
	}

	token, user, err := s.services.Auth.Login(r.Context(), req.Email, req.Name)
	if err != nil {
		s.logger.Error("login failed", zap.Error(err))
		Error(w, http.StatusInternalServerError, "login failed")
		return
	}

	JSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.services.Auth.GetUser(r.Context(), userID(r))
	if err != nil {
		s.logger.Error("load user failed", zap.Error(err))
		Error(w, http.StatusInternalServerError, "failed to load user")
		return
	}
	if user == nil {
		Error(w, http.StatusNotFound, "User not found")
		return
	}

	JSON(w, http.StatusOK, map[string]*model.User{"user": user})
}
