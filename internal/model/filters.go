package model

import (
	"fmt"
	"strings"
)

// Filters is the accumulated job-search filter set of a user.
type Filters struct {
	Role       string     `json:"role,omitempty"`
	Skills     []string   `json:"skills,omitempty"`
	DatePosted DatePosted `json:"datePosted,omitempty"`
	JobType    []JobType  `json:"jobType,omitempty"`
	WorkMode   []WorkMode `json:"workMode,omitempty"`
	Location   string     `json:"location,omitempty"`
	MatchTier  MatchTier  `json:"matchScore,omitempty"`
}

// FilterUpdate is a partial patch against Filters. A nil field means the turn
// did not touch it; a set field overwrites the current value wholesale, lists
// included. Pointer fields distinguish "reset to empty" from "unchanged".
type FilterUpdate struct {
	Role       *string     `json:"role,omitempty"`
	Skills     []string    `json:"skills,omitempty"`
	DatePosted *DatePosted `json:"datePosted,omitempty"`
	JobType    []JobType   `json:"jobType,omitempty"`
	WorkMode   []WorkMode  `json:"workMode,omitempty"`
	Location   *string     `json:"location,omitempty"`
	MatchTier  *MatchTier  `json:"matchScore,omitempty"`
}

// ClearedFilters returns an update that resets every filter to its default.
func ClearedFilters() *FilterUpdate {
	role := ""
	location := ""
	datePosted := DatePostedAnytime
	tier := MatchTierAll

	return &FilterUpdate{
		Role:       &role,
		Skills:     []string{},
		DatePosted: &datePosted,
		JobType:    []JobType{},
		WorkMode:   []WorkMode{},
		Location:   &location,
		MatchTier:  &tier,
	}
}

// IsZero reports whether the update touches no field at all.
func (u *FilterUpdate) IsZero() bool {
	if u == nil {
		return true
	}
	return u.Role == nil && u.Skills == nil && u.DatePosted == nil &&
		u.JobType == nil && u.WorkMode == nil && u.Location == nil && u.MatchTier == nil
}

// Merge applies the update to the filters and returns the result. Fields
// absent from the update are left unchanged; present fields overwrite, with
// lists replaced wholesale rather than appended.
func (f Filters) Merge(u *FilterUpdate) Filters {
	if u == nil {
		return f
	}
	if u.Role != nil {
		f.Role = *u.Role
	}
	if u.Skills != nil {
		f.Skills = u.Skills
	}
	if u.DatePosted != nil {
		f.DatePosted = *u.DatePosted
	}
	if u.JobType != nil {
		f.JobType = u.JobType
	}
	if u.WorkMode != nil {
		f.WorkMode = u.WorkMode
	}
	if u.Location != nil {
		f.Location = *u.Location
	}
	if u.MatchTier != nil {
		f.MatchTier = *u.MatchTier
	}
	return f
}

// Summary renders the update as a "Filters updated: ..." line for the
// assistant reply. Fields holding empty strings or empty lists are skipped;
// list values are comma-joined. Returns "" when nothing is worth showing.
func (u *FilterUpdate) Summary() string {
	if u.IsZero() {
		return ""
	}

	parts := make([]string, 0, 7)
	add := func(key, value string) {
		if value != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", key, value))
		}
	}

	if u.Role != nil {
		add("role", *u.Role)
	}
	if u.Skills != nil {
		add("skills", strings.Join(u.Skills, ", "))
	}
	if u.DatePosted != nil {
		add("datePosted", string(*u.DatePosted))
	}
	if u.JobType != nil {
		add("jobType", joinList(u.JobType))
	}
	if u.WorkMode != nil {
		add("workMode", joinList(u.WorkMode))
	}
	if u.Location != nil {
		add("location", *u.Location)
	}
	if u.MatchTier != nil {
		add("matchScore", string(*u.MatchTier))
	}

	if len(parts) == 0 {
		return ""
	}
	return "Filters updated: " + strings.Join(parts, ", ")
}

func joinList[T ~string](values []T) string {
	strs := make([]string, len(values))
	for i, v := range values {
		strs[i] = string(v)
	}
	return strings.Join(strs, ", ")
}
