package server

import (
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/model"
	"github.com/jobscout/jobscout/internal/service"
)

// maxResumeSize bounds resume uploads.
const maxResumeSize = 2 << 20

func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxResumeSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		Error(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		Error(w, http.StatusBadRequest, "failed to read file")
		return
	}

	resume, err := s.services.Resumes.Upload(r.Context(), userID(r), header.Filename, content)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedFile) {
			Error(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("resume upload failed", zap.Error(err))
		Error(w, http.StatusInternalServerError, "failed to store resume")
		return
	}

	JSON(w, http.StatusOK, map[string]*model.Resume{"resume": resume})
}

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	resume, err := s.services.Resumes.Get(r.Context(), userID(r))
	if err != nil {
		s.logger.Error("load resume failed", zap.Error(err))
		Error(w, http.StatusInternalServerError, "failed to load resume")
		return
	}
	if resume == nil {
		Error(w, http.StatusNotFound, "Resume not found")
		return
	}

	JSON(w, http.StatusOK, map[string]*model.Resume{"resume": resume})
}

func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.services.Resumes.Delete(r.Context(), userID(r))
	if err != nil {
		s.logger.Error("delete resume failed", zap.Error(err))
		Error(w, http.StatusInternalServerError, "failed to delete resume")
		return
	}
	if !deleted {
		Error(w, http.StatusNotFound, "Resume not found")
		return
	}

	JSON(w, http.StatusOK, map[string]string{"message": "Resume deleted successfully"})
}
