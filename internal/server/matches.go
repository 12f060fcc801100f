package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/model"
	"github.com/jobscout/jobscout/internal/service"
)

func matchesPayload(matches []model.MatchScore) map[string]interface{} {
	if matches == nil {
		matches = []model.MatchScore{}
	}
	return map[string]interface{}{
		"matches": matches,
		"count":   len(matches),
	}
}

func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := s.services.Matches.List(r.Context(), userID(r))
	if err != nil {
		s.logger.Error("list matches failed", zap.Error(err))
		Error(w, http.StatusInternalServerError, "failed to list matches")
		return
	}

	if jobIDs := r.URL.Query().Get("jobIds"); jobIDs != "" {
		wanted := make(map[string]bool)
		for _, id := range strings.Split(jobIDs, ",") {
			wanted[strings.TrimSpace(id)] = true
		}
		matches = filterMatches(matches, func(m model.MatchScore) bool {
			return wanted[m.JobID]
		})
	}

	switch model.MatchTier(r.URL.Query().Get("matchScore")) {
	case model.MatchTierHigh:
		matches = filterMatches(matches, func(m model.MatchScore) bool {
			return m.Score > 70
		})
	case model.MatchTierMedium:
		matches = filterMatches(matches, func(m model.MatchScore) bool {
			return m.Score > 40 && m.Score <= 70
		})
	}

	JSON(w, http.StatusOK, matchesPayload(matches))
}

func filterMatches(matches []model.MatchScore, keep func(model.MatchScore) bool) []model.MatchScore {
	kept := matches[:0]
	for _, m := range matches {
		if keep(m) {
			kept = append(kept, m)
		}
	}
	return kept
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	match, err := s.services.Matches.ForJob(r.Context(), userID(r), chi.URLParam(r, "jobId"))
	if err != nil {
		s.logger.Error("load match failed", zap.Error(err))
		Error(w, http.StatusInternalServerError, "failed to load match")
		return
	}
	if match == nil {
		Error(w, http.StatusNotFound, "Match not found")
		return
	}

	JSON(w, http.StatusOK, map[string]*model.MatchScore{"match": match})
}

func (s *Server) handleBestMatches(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	matches, err := s.services.Matches.Best(r.Context(), userID(r), limit)
	if err != nil {
		s.logger.Error("best matches failed", zap.Error(err))
		Error(w, http.StatusInternalServerError, "failed to load matches")
		return
	}

	JSON(w, http.StatusOK, matchesPayload(matches))
}

func (s *Server) handleCalculateMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := s.services.Matches.Recalculate(r.Context(), userID(r))
	if err != nil {
		if errors.Is(err, service.ErrNoResume) {
			Error(w, http.StatusNotFound, "Resume not found. Please upload a resume first.")
			return
		}
		s.logger.Error("match calculation failed", zap.Error(err))
		Error(w, http.StatusInternalServerError, "failed to calculate matches")
		return
	}

	payload := matchesPayload(matches)
	payload["message"] = "Matches calculated successfully"
	JSON(w, http.StatusOK, payload)
}
