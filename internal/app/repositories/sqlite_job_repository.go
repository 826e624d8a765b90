package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/nexusai/nexus-backend/internal/app/models"
	"github.com/nexusai/nexus-backend/internal/app/models/dto"
)

// sqliteTimeLayout is fixed-width UTC so that ORDER BY on the text column
// sorts chronologically.
const sqliteTimeLayout = "2006-01-02T15:04:05.000Z"

const jobIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// jobIDLength matches the original platform's short token identities.
const jobIDLength = 9

// newJobID generates a random alphanumeric job identity for relational mode
func newJobID() string {
	var b strings.Builder
	b.Grow(jobIDLength)
	for i := 0; i < jobIDLength; i++ {
		b.WriteByte(jobIDAlphabet[rand.Intn(len(jobIDAlphabet))])
	}
	return b.String()
}

// formatTime serializes a timestamp into the sortable text column format
func formatTime(t time.Time) string {
	return t.UTC().Format(sqliteTimeLayout)
}

// parseTime deserializes a text column timestamp; zero time on empty
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(sqliteTimeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// joinSkills serializes a skill sequence to the delimited column format
func joinSkills(skills []string) string {
	return strings.Join(skills, ",")
}

// splitSkills restores a skill sequence from the delimited column format
func splitSkills(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}

// SQLiteJobRepository handles relational fallback operations for jobs
type SQLiteJobRepository struct {
	db *sql.DB
}

// NewSQLiteJobRepository creates a new sqlite-backed job repository
func NewSQLiteJobRepository(sqlDB *sql.DB) *SQLiteJobRepository {
	return &SQLiteJobRepository{db: sqlDB}
}

const jobColumns = `id, title, company, location, salary, type, description,
	matchScore, recruiterId, skillsRequired, experienceLevel, benefits, deadline, postedAt`

// scanJob reads one job row, splitting skills and parsing timestamps
func scanJob(row interface{ Scan(...interface{}) error }) (*models.Job, error) {
	var job models.Job
	var skills, deadline, postedAt sql.NullString
	var matchScore sql.NullInt64

	err := row.Scan(
		&job.ID,
		&job.Title,
		&job.Company,
		&job.Location,
		&job.Salary,
		&job.Type,
		&job.Description,
		&matchScore,
		&job.RecruiterID,
		&skills,
		&job.ExperienceLevel,
		&job.Benefits,
		&deadline,
		&postedAt,
	)
	if err != nil {
		return nil, err
	}

	job.MatchScore = int(matchScore.Int64)
	job.SkillsRequired = splitSkills(skills.String)
	job.PostedAt = parseTime(postedAt.String)
	if deadline.String != "" {
		d := parseTime(deadline.String)
		job.Deadline = &d
	}

	return &job, nil
}

// ListJobs retrieves all jobs ordered by postedAt descending
func (r *SQLiteJobRepository) ListJobs(ctx context.Context) ([]*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY postedAt DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing jobs: %w", err)
	}
	defer rows.Close()

	jobs := []*models.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning job row: %w", err)
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return jobs, nil
}

// CreateJob inserts a new job under a client-generated random identity
func (r *SQLiteJobRepository) CreateJob(ctx context.Context, job *models.Job) error {
	job.ID = newJobID()

	deadline := ""
	if job.Deadline != nil {
		deadline = formatTime(*job.Deadline)
	}

	query := `
		INSERT INTO jobs (` + jobColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		job.ID,
		job.Title,
		job.Company,
		job.Location,
		job.Salary,
		job.Type,
		job.Description,
		job.MatchScore,
		job.RecruiterID,
		joinSkills(job.SkillsRequired),
		job.ExperienceLevel,
		job.Benefits,
		deadline,
		formatTime(job.PostedAt),
	)
	if err != nil {
		return fmt.Errorf("error creating job: %w", err)
	}

	return nil
}

// UpdateJob rewrites the mutable column set of the named job and returns the
// post-update record. company, matchScore, recruiterId and postedAt are never
// part of the relational update surface. Unknown id yields (nil, nil).
func (r *SQLiteJobRepository) UpdateJob(ctx context.Context, id string, patch *dto.UpdateJobRequest) (*models.Job, error) {
	skills := ""
	if patch.SkillsRequired != nil {
		skills = joinSkills(*patch.SkillsRequired)
	}
	deadline := ""
	if patch.Deadline != nil {
		deadline = formatTime(*patch.Deadline)
	}

	query := `
		UPDATE jobs
		SET title = ?, location = ?, description = ?, salary = ?, type = ?,
			skillsRequired = ?, experienceLevel = ?, benefits = ?, deadline = ?
		WHERE id = ?
	`

	_, err := r.db.ExecContext(ctx, query,
		stringValue(patch.Title),
		stringValue(patch.Location),
		stringValue(patch.Description),
		stringValue(patch.Salary),
		stringValue(patch.Type),
		skills,
		stringValue(patch.ExperienceLevel),
		stringValue(patch.Benefits),
		deadline,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("error updating job: %w", err)
	}

	return r.getJob(ctx, id)
}

// DeleteJob removes a job by ID. Unknown ids are a silent success.
func (r *SQLiteJobRepository) DeleteJob(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id); err != nil {
		return fmt.Errorf("error deleting job: %w", err)
	}
	return nil
}

// getJob retrieves a single job, (nil, nil) when missing
func (r *SQLiteJobRepository) getJob(ctx context.Context, id string) (*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = ?`

	job, err := scanJob(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving job: %w", err)
	}

	return job, nil
}

// stringValue dereferences an optional string, empty when absent
func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
