package filtering

import (
	"strings"
	"time"

	"github.com/jobscout/jobscout/internal/model"
)

type roleFilter struct {
	role string
}

// NewRole keeps jobs whose title or description mentions the role.
func NewRole(role string) Filter {
	return &roleFilter{role: strings.ToLower(role)}
}

func (f *roleFilter) Name() string { return "role" }

func (f *roleFilter) Keep(job *model.Job) bool {
	return strings.Contains(strings.ToLower(job.Title), f.role) ||
		strings.Contains(strings.ToLower(job.Description), f.role)
}

type skillsFilter struct {
	skills []string
}

// NewSkills keeps jobs listing at least one of the wanted skills.
// Matching is a case-insensitive substring check on the job's skill entries.
func NewSkills(skills []string) Filter {
	lowered := make([]string, len(skills))
	for i, s := range skills {
		lowered[i] = strings.ToLower(s)
	}
	return &skillsFilter{skills: lowered}
}

func (f *skillsFilter) Name() string { return "skills" }

func (f *skillsFilter) Keep(job *model.Job) bool {
	for _, wanted := range f.skills {
		for _, jobSkill := range job.Skills {
			if strings.Contains(strings.ToLower(jobSkill), wanted) {
				return true
			}
		}
	}
	return false
}

type datePostedFilter struct {
	cutoff time.Time
}

// NewDatePosted keeps jobs posted at or after the cutoff implied by the
// date-posted setting, evaluated against now.
func NewDatePosted(setting model.DatePosted, now time.Time) Filter {
	var cutoff time.Time
	switch setting {
	case model.DatePosted24h:
		cutoff = now.AddDate(0, 0, -1)
	case model.DatePostedWeek:
		cutoff = now.AddDate(0, 0, -7)
	case model.DatePostedMonth:
		cutoff = now.AddDate(0, -1, 0)
	}
	return &datePostedFilter{cutoff: cutoff}
}

func (f *datePostedFilter) Name() string { return "date_posted" }

func (f *datePostedFilter) Keep(job *model.Job) bool {
	return !job.PostedDate.Before(f.cutoff)
}

type jobTypeFilter struct {
	types map[model.JobType]bool
}

// NewJobType keeps jobs whose employment type is one of the wanted types.
func NewJobType(types []model.JobType) Filter {
	set := make(map[model.JobType]bool, len(types))
	for _, t := range types {
		set[t] = true
	}
	return &jobTypeFilter{types: set}
}

func (f *jobTypeFilter) Name() string { return "job_type" }

func (f *jobTypeFilter) Keep(job *model.Job) bool {
	return f.types[job.JobType]
}

type workModeFilter struct {
	modes map[model.WorkMode]bool
}

// NewWorkMode keeps jobs whose work mode is one of the wanted modes.
func NewWorkMode(modes []model.WorkMode) Filter {
	set := make(map[model.WorkMode]bool, len(modes))
	for _, m := range modes {
		set[m] = true
	}
	return &workModeFilter{modes: set}
}

func (f *workModeFilter) Name() string { return "work_mode" }

func (f *workModeFilter) Keep(job *model.Job) bool {
	return f.modes[job.WorkMode]
}

type locationFilter struct {
	location string
}

// NewLocation keeps jobs whose location mentions the wanted location.
func NewLocation(location string) Filter {
	return &locationFilter{location: strings.ToLower(location)}
}

func (f *locationFilter) Name() string { return "location" }

func (f *locationFilter) Keep(job *model.Job) bool {
	return strings.Contains(strings.ToLower(job.Location), f.location)
}

// Score thresholds for the match tiers.
const (
	highTierMinimum   = 71
	mediumTierMinimum = 41
)

type matchTierFilter struct {
	tier   model.MatchTier
	scores map[string]int
}

// NewMatchTier keeps jobs whose computed match score falls in the wanted
// tier. Jobs without a score are dropped when a tier is selected.
func NewMatchTier(tier model.MatchTier, scores map[string]int) Filter {
	return &matchTierFilter{tier: tier, scores: scores}
}

func (f *matchTierFilter) Name() string { return "match_tier" }

func (f *matchTierFilter) Keep(job *model.Job) bool {
	score, ok := f.scores[job.ID]
	if !ok {
		return false
	}

	switch f.tier {
	case model.MatchTierHigh:
		return score >= highTierMinimum
	case model.MatchTierMedium:
		return score >= mediumTierMinimum
	default:
		return true
	}
}

// FromFilters builds the step list for the given search filters, skipping
// settings that are empty or select everything. scores maps job IDs to
// match scores and is only consulted when a match tier is set.
func FromFilters(f model.Filters, scores map[string]int, now time.Time) []Filter {
	var steps []Filter

	if f.Role != "" {
		steps = append(steps, NewRole(f.Role))
	}
	if len(f.Skills) > 0 {
		steps = append(steps, NewSkills(f.Skills))
	}
	if f.DatePosted != "" && f.DatePosted != model.DatePostedAnytime {
		steps = append(steps, NewDatePosted(f.DatePosted, now))
	}
	if len(f.JobType) > 0 {
		steps = append(steps, NewJobType(f.JobType))
	}
	if len(f.WorkMode) > 0 {
		steps = append(steps, NewWorkMode(f.WorkMode))
	}
	if f.Location != "" {
		steps = append(steps, NewLocation(f.Location))
	}
	if f.MatchTier != "" && f.MatchTier != model.MatchTierAll {
		steps = append(steps, NewMatchTier(f.MatchTier, scores))
	}

	return steps
}
