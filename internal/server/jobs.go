package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/model"
)

// filtersFromQuery parses the job filter query parameters. List parameters
// are comma-separated.
func filtersFromQuery(r *http.Request) model.Filters {
	q := r.URL.Query()

	filters := model.Filters{
		Role:       q.Get("role"),
		DatePosted: model.DatePosted(q.Get("datePosted")),
		Location:   q.Get("location"),
		MatchTier:  model.MatchTier(q.Get("matchScore")),
	}

	if skills := q.Get("skills"); skills != "" {
		filters.Skills = strings.Split(skills, ",")
	}
	if jobTypes := q.Get("jobType"); jobTypes != "" {
		for _, t := range strings.Split(jobTypes, ",") {
			filters.JobType = append(filters.JobType, model.JobType(t))
		}
	}
	if workModes := q.Get("workMode"); workModes != "" {
		for _, m := range strings.Split(workModes, ",") {
			filters.WorkMode = append(filters.WorkMode, model.WorkMode(m))
		}
	}

	return filters
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.services.Jobs.List(r.Context(), userID(r), filtersFromQuery(r))
	if err != nil {
		s.logger.Error("list jobs failed", zap.Error(err))
		Error(w, http.StatusInternalServerError, "failed to list jobs")
		return
	}
	if jobs == nil {
		jobs = []model.Job{}
	}

	JSON(w, http.StatusOK, map[string]interface{}{
		"jobs":  jobs,
		"count": len(jobs),
	})
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.services.Jobs.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.logger.Error("get job failed", zap.Error(err))
		Error(w, http.StatusInternalServerError, "failed to load job")
		return
	}
	if job == nil {
		Error(w, http.StatusNotFound, "Job not found")
		return
	}

	JSON(w, http.StatusOK, map[string]*model.Job{"job": job})
}
