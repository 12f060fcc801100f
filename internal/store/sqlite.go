package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jobscout/jobscout/internal/model"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Repository using SQLite. Structured fields such as
// skill lists, conversation messages and application timelines are stored as
// JSON columns.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a new SQLite-backed repository.
func NewSQLite(dbPath string) (Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// Open database with WAL mode for better concurrency.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS jobs (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		company TEXT NOT NULL,
		location TEXT NOT NULL,
		description TEXT NOT NULL,
		requirements_json TEXT NOT NULL,
		skills_json TEXT NOT NULL,
		job_type TEXT NOT NULL,
		work_mode TEXT NOT NULL,
		posted_date INTEGER NOT NULL,
		apply_url TEXT NOT NULL,
		salary TEXT
	);

	CREATE TABLE IF NOT EXISTS resumes (
		user_id TEXT PRIMARY KEY,
		filename TEXT NOT NULL,
		uploaded_at INTEGER NOT NULL,
		extracted_text TEXT NOT NULL,
		skills_json TEXT NOT NULL,
		experience_json TEXT NOT NULL,
		keywords_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS conversations (
		user_id TEXT PRIMARY KEY,
		messages_json TEXT NOT NULL,
		filters_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS matches (
		user_id TEXT NOT NULL,
		job_id TEXT NOT NULL,
		score INTEGER NOT NULL,
		explanation_json TEXT NOT NULL,
		calculated_at INTEGER NOT NULL,
		PRIMARY KEY (user_id, job_id)
	);
	CREATE INDEX IF NOT EXISTS idx_matches_user_score ON matches(user_id, score DESC);

	CREATE TABLE IF NOT EXISTS applications (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		job_id TEXT NOT NULL,
		status TEXT NOT NULL,
		applied_at INTEGER NOT NULL,
		notes TEXT,
		timeline_json TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_applications_user ON applications(user_id, applied_at DESC);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// GetUser retrieves a user by ID.
func (s *SQLiteStore) GetUser(ctx context.Context, id string) (*model.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, email, name, created_at FROM users WHERE id = ?`, id))
}

// GetUserByEmail retrieves a user by email.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, email, name, created_at FROM users WHERE email = ?`, email))
}

func (s *SQLiteStore) scanUser(row *sql.Row) (*model.User, error) {
	var user model.User
	var createdAt int64

	err := row.Scan(&user.ID, &user.Email, &user.Name, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan user row: %w", err)
	}

	user.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &user, nil
}

// UpsertUser creates or updates a user record.
func (s *SQLiteStore) UpsertUser(ctx context.Context, user *model.User) error {
	query := `
	INSERT INTO users (id, email, name, created_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		email = excluded.email,
		name = excluded.name`

	_, err := s.db.ExecContext(ctx, query,
		user.ID, user.Email, user.Name, user.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

const jobColumns = `id, title, company, location, description,
	requirements_json, skills_json, job_type, work_mode, posted_date, apply_url, salary`

// ListJobs retrieves all job postings, newest first.
func (s *SQLiteStore) ListJobs(ctx context.Context) ([]model.Job, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+jobColumns+` FROM jobs ORDER BY posted_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []model.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

// GetJob retrieves a posting by ID.
func (s *SQLiteStore) GetJob(ctx context.Context, id string) (*model.Job, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanJob(rows)
}

func scanJob(rows *sql.Rows) (*model.Job, error) {
	var job model.Job
	var requirementsJSON, skillsJSON string
	var postedDate int64
	var salary sql.NullString

	err := rows.Scan(
		&job.ID, &job.Title, &job.Company, &job.Location, &job.Description,
		&requirementsJSON, &skillsJSON, &job.JobType, &job.WorkMode,
		&postedDate, &job.ApplyURL, &salary,
	)
	if err != nil {
		return nil, fmt.Errorf("scan job row: %w", err)
	}

	if err := json.Unmarshal([]byte(requirementsJSON), &job.Requirements); err != nil {
		return nil, fmt.Errorf("decode job requirements: %w", err)
	}
	if err := json.Unmarshal([]byte(skillsJSON), &job.Skills); err != nil {
		return nil, fmt.Errorf("decode job skills: %w", err)
	}

	job.PostedDate = time.Unix(postedDate, 0).UTC()
	job.Salary = salary.String
	return &job, nil
}

// CountJobs reports the number of stored postings.
func (s *SQLiteStore) CountJobs(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count jobs: %w", err)
	}
	return count, nil
}

// ReplaceJobs swaps the full posting set atomically.
func (s *SQLiteStore) ReplaceJobs(ctx context.Context, jobs []model.Job) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace jobs: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM jobs`); err != nil {
		return fmt.Errorf("clear jobs: %w", err)
	}

	query := `
	INSERT INTO jobs (` + jobColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	for i := range jobs {
		job := &jobs[i]

		requirementsJSON, err := json.Marshal(job.Requirements)
		if err != nil {
			return fmt.Errorf("encode job requirements: %w", err)
		}
		skillsJSON, err := json.Marshal(job.Skills)
		if err != nil {
			return fmt.Errorf("encode job skills: %w", err)
		}

		var salary interface{}
		if job.Salary != "" {
			salary = job.Salary
		}

		_, err = tx.ExecContext(ctx, query,
			job.ID, job.Title, job.Company, job.Location, job.Description,
			string(requirementsJSON), string(skillsJSON), job.JobType, job.WorkMode,
			job.PostedDate.Unix(), job.ApplyURL, salary,
		)
		if err != nil {
			return fmt.Errorf("insert job: %w", err)
		}
	}

	return tx.Commit()
}

// GetResume retrieves the user's current resume.
func (s *SQLiteStore) GetResume(ctx context.Context, userID string) (*model.Resume, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT user_id, filename, uploaded_at, extracted_text,
		       skills_json, experience_json, keywords_json
		FROM resumes WHERE user_id = ?`, userID)

	var resume model.Resume
	var uploadedAt int64
	var skillsJSON, experienceJSON, keywordsJSON string

	err := row.Scan(
		&resume.UserID, &resume.Filename, &uploadedAt, &resume.ExtractedText,
		&skillsJSON, &experienceJSON, &keywordsJSON,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan resume row: %w", err)
	}

	if err := json.Unmarshal([]byte(skillsJSON), &resume.Skills); err != nil {
		return nil, fmt.Errorf("decode resume skills: %w", err)
	}
	if err := json.Unmarshal([]byte(experienceJSON), &resume.Experience); err != nil {
		return nil, fmt.Errorf("decode resume experience: %w", err)
	}
	if err := json.Unmarshal([]byte(keywordsJSON), &resume.Keywords); err != nil {
		return nil, fmt.Errorf("decode resume keywords: %w", err)
	}

	resume.UploadedAt = time.Unix(uploadedAt, 0).UTC()
	return &resume, nil
}

// SaveResume creates or replaces the user's resume.
func (s *SQLiteStore) SaveResume(ctx context.Context, resume *model.Resume) error {
	skillsJSON, err := json.Marshal(resume.Skills)
	if err != nil {
		return fmt.Errorf("encode resume skills: %w", err)
	}
	experienceJSON, err := json.Marshal(resume.Experience)
	if err != nil {
		return fmt.Errorf("encode resume experience: %w", err)
	}
	keywordsJSON, err := json.Marshal(resume.Keywords)
	if err != nil {
		return fmt.Errorf("encode resume keywords: %w", err)
	}

	query := `
	INSERT INTO resumes (user_id, filename, uploaded_at, extracted_text,
		skills_json, experience_json, keywords_json)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(user_id) DO UPDATE SET
		filename = excluded.filename,
		uploaded_at = excluded.uploaded_at,
		extracted_text = excluded.extracted_text,
		skills_json = excluded.skills_json,
		experience_json = excluded.experience_json,
		keywords_json = excluded.keywords_json`

	_, err = s.db.ExecContext(ctx, query,
		resume.UserID, resume.Filename, resume.UploadedAt.Unix(), resume.ExtractedText,
		string(skillsJSON), string(experienceJSON), string(keywordsJSON),
	)
	if err != nil {
		return fmt.Errorf("save resume: %w", err)
	}
	return nil
}

// DeleteResume removes the user's resume, reporting whether one existed.
func (s *SQLiteStore) DeleteResume(ctx context.Context, userID string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM resumes WHERE user_id = ?`, userID)
	if err != nil {
		return false, fmt.Errorf("delete resume: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete resume: %w", err)
	}
	return affected > 0, nil
}

// GetConversation retrieves the user's assistant conversation.
func (s *SQLiteStore) GetConversation(ctx context.Context, userID string) (*model.Conversation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT user_id, messages_json, filters_json FROM conversations WHERE user_id = ?`, userID)

	var conversation model.Conversation
	var messagesJSON, filtersJSON string

	err := row.Scan(&conversation.UserID, &messagesJSON, &filtersJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan conversation row: %w", err)
	}

	if err := json.Unmarshal([]byte(messagesJSON), &conversation.Messages); err != nil {
		return nil, fmt.Errorf("decode conversation messages: %w", err)
	}
	if err := json.Unmarshal([]byte(filtersJSON), &conversation.CurrentFilters); err != nil {
		return nil, fmt.Errorf("decode conversation filters: %w", err)
	}

	return &conversation, nil
}

// SaveConversation creates or replaces the user's conversation.
func (s *SQLiteStore) SaveConversation(ctx context.Context, conversation *model.Conversation) error {
	messagesJSON, err := json.Marshal(conversation.Messages)
	if err != nil {
		return fmt.Errorf("encode conversation messages: %w", err)
	}
	filtersJSON, err := json.Marshal(conversation.CurrentFilters)
	if err != nil {
		return fmt.Errorf("encode conversation filters: %w", err)
	}

	query := `
	INSERT INTO conversations (user_id, messages_json, filters_json)
	VALUES (?, ?, ?)
	ON CONFLICT(user_id) DO UPDATE SET
		messages_json = excluded.messages_json,
		filters_json = excluded.filters_json`

	_, err = s.db.ExecContext(ctx, query,
		conversation.UserID, string(messagesJSON), string(filtersJSON))
	if err != nil {
		return fmt.Errorf("save conversation: %w", err)
	}
	return nil
}

// ListMatches retrieves all match scores for a user, best first.
func (s *SQLiteStore) ListMatches(ctx context.Context, userID string) ([]model.MatchScore, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, job_id, score, explanation_json, calculated_at
		FROM matches WHERE user_id = ? ORDER BY score DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	var matches []model.MatchScore
	for rows.Next() {
		var match model.MatchScore
		var explanationJSON string
		var calculatedAt int64

		err := rows.Scan(&match.UserID, &match.JobID, &match.Score, &explanationJSON, &calculatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan match row: %w", err)
		}

		if err := json.Unmarshal([]byte(explanationJSON), &match.Explanation); err != nil {
			return nil, fmt.Errorf("decode match explanation: %w", err)
		}
		match.CalculatedAt = time.Unix(calculatedAt, 0).UTC()
		matches = append(matches, match)
	}
	return matches, rows.Err()
}

// GetMatch retrieves the score for one user/job pair.
func (s *SQLiteStore) GetMatch(ctx context.Context, userID, jobID string) (*model.MatchScore, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT user_id, job_id, score, explanation_json, calculated_at
		FROM matches WHERE user_id = ? AND job_id = ?`, userID, jobID)

	var match model.MatchScore
	var explanationJSON string
	var calculatedAt int64

	err := row.Scan(&match.UserID, &match.JobID, &match.Score, &explanationJSON, &calculatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan match row: %w", err)
	}

	if err := json.Unmarshal([]byte(explanationJSON), &match.Explanation); err != nil {
		return nil, fmt.Errorf("decode match explanation: %w", err)
	}
	match.CalculatedAt = time.Unix(calculatedAt, 0).UTC()
	return &match, nil
}

// ReplaceMatches swaps all of a user's match scores atomically.
func (s *SQLiteStore) ReplaceMatches(ctx context.Context, userID string, matches []model.MatchScore) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace matches: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM matches WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clear matches: %w", err)
	}

	query := `
	INSERT INTO matches (user_id, job_id, score, explanation_json, calculated_at)
	VALUES (?, ?, ?, ?, ?)`

	for i := range matches {
		match := &matches[i]

		explanationJSON, err := json.Marshal(match.Explanation)
		if err != nil {
			return fmt.Errorf("encode match explanation: %w", err)
		}

		_, err = tx.ExecContext(ctx, query,
			userID, match.JobID, match.Score, string(explanationJSON), match.CalculatedAt.Unix())
		if err != nil {
			return fmt.Errorf("insert match: %w", err)
		}
	}

	return tx.Commit()
}

// ListApplications retrieves all applications of a user, newest first.
func (s *SQLiteStore) ListApplications(ctx context.Context, userID string) ([]model.Application, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, job_id, status, applied_at, notes, timeline_json
		FROM applications WHERE user_id = ? ORDER BY applied_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var applications []model.Application
	for rows.Next() {
		application, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		applications = append(applications, *application)
	}
	return applications, rows.Err()
}

// GetApplication retrieves an application by ID.
func (s *SQLiteStore) GetApplication(ctx context.Context, id string) (*model.Application, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, job_id, status, applied_at, notes, timeline_json
		FROM applications WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("get application: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanApplication(rows)
}

// GetApplicationByJob retrieves a user's application for one posting.
func (s *SQLiteStore) GetApplicationByJob(ctx context.Context, userID, jobID string) (*model.Application, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, job_id, status, applied_at, notes, timeline_json
		FROM applications WHERE user_id = ? AND job_id = ?`, userID, jobID)
	if err != nil {
		return nil, fmt.Errorf("get application by job: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanApplication(rows)
}

// DeleteApplication removes an application, reporting whether it existed.
func (s *SQLiteStore) DeleteApplication(ctx context.Context, id string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM applications WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete application: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete application: %w", err)
	}
	return affected > 0, nil
}

func scanApplication(rows *sql.Rows) (*model.Application, error) {
	var application model.Application
	var appliedAt int64
	var notes sql.NullString
	var timelineJSON string

	err := rows.Scan(
		&application.ID, &application.UserID, &application.JobID, &application.Status,
		&appliedAt, &notes, &timelineJSON,
	)
	if err != nil {
		return nil, fmt.Errorf("scan application row: %w", err)
	}

	if err := json.Unmarshal([]byte(timelineJSON), &application.Timeline); err != nil {
		return nil, fmt.Errorf("decode application timeline: %w", err)
	}

	application.AppliedAt = time.Unix(appliedAt, 0).UTC()
	application.Notes = notes.String
	return &application, nil
}

// SaveApplication creates or replaces an application record.
func (s *SQLiteStore) SaveApplication(ctx context.Context, application *model.Application) error {
	timelineJSON, err := json.Marshal(application.Timeline)
	if err != nil {
		return fmt.Errorf("encode application timeline: %w", err)
	}

	var notes interface{}
	if application.Notes != "" {
		notes = application.Notes
	}

	query := `
	INSERT INTO applications (id, user_id, job_id, status, applied_at, notes, timeline_json)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		status = excluded.status,
		notes = excluded.notes,
		timeline_json = excluded.timeline_json`

	_, err = s.db.ExecContext(ctx, query,
		application.ID, application.UserID, application.JobID, application.Status,
		application.AppliedAt.Unix(), notes, string(timelineJSON),
	)
	if err != nil {
		return fmt.Errorf("save application: %w", err)
	}
	return nil
}
