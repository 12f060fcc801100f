// Package model holds the domain types shared across the jobscout services.
package model

import "time"

// JobType classifies the employment terms of a posting.
type JobType string

const (
	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
)

// WorkMode classifies where the work happens.
type WorkMode string

const (
	WorkModeRemote WorkMode = "remote"
	WorkModeHybrid WorkMode = "hybrid"
	WorkModeOnsite WorkMode = "onsite"
)

// DatePosted restricts postings by age.
type DatePosted string

const (
	DatePosted24h     DatePosted = "24h"
	DatePostedWeek    DatePosted = "week"
	DatePostedMonth   DatePosted = "month"
	DatePostedAnytime DatePosted = "anytime"
)

// MatchTier buckets postings by their computed match score.
type MatchTier string

const (
	MatchTierHigh   MatchTier = "high"
	MatchTierMedium MatchTier = "medium"
	MatchTierAll    MatchTier = "all"
)

// Job is a single job posting.
type Job struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Location     string    `json:"location"`
	Description  string    `json:"description"`
	Requirements []string  `json:"requirements"`
	Skills       []string  `json:"skills"`
	JobType      JobType   `json:"jobType"`
	WorkMode     WorkMode  `json:"workMode"`
	PostedDate   time.Time `json:"postedDate"`
	ApplyURL     string    `json:"applyUrl"`
	Salary       string    `json:"salary,omitempty"`
}

// Resume is the parsed resume profile of a user. It is an immutable input to
// scoring; re-uploading a resume produces a fresh value.
type Resume struct {
	UserID        string    `json:"userId"`
	Filename      string    `json:"filename"`
	UploadedAt    time.Time `json:"uploadedAt"`
	ExtractedText string    `json:"extractedText"`
	Skills        []string  `json:"skills"`
	Experience    []string  `json:"experience"`
	Keywords      []string  `json:"keywords"`
}

// Explanation carries the human-readable breakdown of a match score.
type Explanation struct {
	MatchingSkills     []string `json:"matchingSkills"`
	RelevantExperience []string `json:"relevantExperience"`
	KeywordAlignment   []string `json:"keywordAlignment"`
	OverallReason      string   `json:"overallReason"`
}

// MatchScore is a 0-100 compatibility rating between a resume and a posting.
type MatchScore struct {
	JobID        string      `json:"jobId"`
	UserID       string      `json:"userId"`
	Score        int         `json:"score"`
	Explanation  Explanation `json:"explanation"`
	CalculatedAt time.Time   `json:"calculatedAt"`
}

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single turn in an assistant conversation.
type Message struct {
	Role         Role          `json:"role"`
	Content      string        `json:"content"`
	Timestamp    time.Time     `json:"timestamp"`
	FilterUpdate *FilterUpdate `json:"filterUpdate,omitempty"`
}

// Conversation is the per-user assistant state: the chronological message
// history plus the accumulated search filters.
type Conversation struct {
	UserID         string    `json:"userId"`
	Messages       []Message `json:"messages"`
	CurrentFilters Filters   `json:"currentFilters"`
}

// ApplicationStatus tracks where an application is in its lifecycle.
type ApplicationStatus string

const (
	StatusApplied   ApplicationStatus = "applied"
	StatusInterview ApplicationStatus = "interview"
	StatusOffer     ApplicationStatus = "offer"
	StatusRejected  ApplicationStatus = "rejected"
)

// ValidStatus reports whether s is one of the known application statuses.
func ValidStatus(s ApplicationStatus) bool {
	switch s {
	case StatusApplied, StatusInterview, StatusOffer, StatusRejected:
		return true
	}
	return false
}

// TimelineEvent records a status change on an application.
type TimelineEvent struct {
	Status ApplicationStatus `json:"status"`
	Date   time.Time         `json:"date"`
	Note   string            `json:"note,omitempty"`
}

// Application links a user to a posting they applied to.
type Application struct {
	ID        string            `json:"id"`
	UserID    string            `json:"userId"`
	JobID     string            `json:"jobId"`
	Status    ApplicationStatus `json:"status"`
	AppliedAt time.Time         `json:"appliedAt"`
	Notes     string            `json:"notes,omitempty"`
	Timeline  []TimelineEvent   `json:"timeline"`
	Job       *Job              `json:"job,omitempty"`
}

// User is a registered account. Authentication is a demo stub; the record
// only exists so conversations, resumes and applications have an owner.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
