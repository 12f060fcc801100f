package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/model"
	"github.com/jobscout/jobscout/internal/service"
)

type createApplicationRequest struct {
	JobID  string `json:"jobId" validate:"required"`
	Status string `json:"status" validate:"omitempty,oneof=applied interview offer rejected"`
	Notes  string `json:"notes"`
}

type updateApplicationRequest struct {
	Status string `json:"status" validate:"required,oneof=applied interview offer rejected"`
	Note   string `json:"note"`
}

func (s *Server) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	var req createApplicationRequest
	if err := s.decodeBody(r, &req); err != nil {
		Error(w, http.StatusBadRequest, "Job ID required")
		return
	}

	job, err := s.services.Jobs.Get(r.Context(), req.JobID)
	if err != nil {
		s.logger.Error("load job failed", zap.Error(err))
		Error(w, http.StatusInternalServerError, "failed to load job")
		return
	}
	if job == nil {
		Error(w, http.StatusNotFound, "Job not found")
		return
	}

	existing, err := s.services.Applications.GetByJob(r.Context(), userID(r), req.JobID)
	if err != nil {
		s.logger.Error("load application failed", zap.Error(err))
		Error(w, http.StatusInternalServerError, "failed to check applications")
		return
	}
	if existing != nil {
		Error(w, http.StatusBadRequest, "Application already exists for this job")
		return
	}

	application, err := s.services.Applications.Create(
		r.Context(), userID(r), req.JobID, model.ApplicationStatus(req.Status), req.Notes)
	if err != nil {
		s.logger.Error("create application failed", zap.Error(err))
		Error(w, http.StatusInternalServerError, "failed to create application")
		return
	}

	JSON(w, http.StatusOK, map[string]*model.Application{"application": application})
}

func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	applications, err := s.services.Applications.List(r.Context(), userID(r))
	if err != nil {
		s.logger.Error("list applications failed", zap.Error(err))
		Error(w, http.StatusInternalServerError, "failed to list applications")
		return
	}
	if applications == nil {
		applications = []model.Application{}
	}

	JSON(w, http.StatusOK, map[string]interface{}{
		"applications": applications,
		"count":        len(applications),
	})
}

// ownedApplication loads the application and enforces that it belongs to the
// caller. Foreign applications read as not found.
func (s *Server) ownedApplication(w http.ResponseWriter, r *http.Request) *model.Application {
	application, err := s.services.Applications.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.logger.Error("load application failed", zap.Error(err))
		Error(w, http.StatusInternalServerError, "failed to load application")
		return nil
	}
	if application == nil || application.UserID != userID(r) {
		Error(w, http.StatusNotFound, "Application not found")
		return nil
	}
	return application
}

func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	application := s.ownedApplication(w, r)
	if application == nil {
		return
	}

	job, err := s.services.Jobs.Get(r.Context(), application.JobID)
	if err != nil {
		s.logger.Error("load job failed", zap.Error(err))
		Error(w, http.StatusInternalServerError, "failed to load job")
		return
	}
	application.Job = job

	JSON(w, http.StatusOK, map[string]*model.Application{"application": application})
}

func (s *Server) handleUpdateApplication(w http.ResponseWriter, r *http.Request) {
	var req updateApplicationRequest
	if err := s.decodeBody(r, &req); err != nil {
		Error(w, http.StatusBadRequest, "Status required")
		return
	}

	if s.ownedApplication(w, r) == nil {
		return
	}

	updated, err := s.services.Applications.UpdateStatus(
		r.Context(), chi.URLParam(r, "id"), model.ApplicationStatus(req.Status), req.Note)
	if err != nil {
		if errors.Is(err, service.ErrApplicationNotFound) {
			Error(w, http.StatusNotFound, "Application not found")
			return
		}
		s.logger.Error("update application failed", zap.Error(err))
		Error(w, http.StatusInternalServerError, "failed to update application")
		return
	}

	JSON(w, http.StatusOK, map[string]*model.Application{"application": updated})
}

func (s *Server) handleDeleteApplication(w http.ResponseWriter, r *http.Request) {
	if s.ownedApplication(w, r) == nil {
		return
	}

	if _, err := s.services.Applications.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.logger.Error("delete application failed", zap.Error(err))
		Error(w, http.StatusInternalServerError, "failed to delete application")
		return
	}

	JSON(w, http.StatusOK, map[string]string{"message": "Application deleted successfully"})
}
