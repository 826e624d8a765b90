package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/nexusai/nexus-backend/internal/app/models"
	"github.com/nexusai/nexus-backend/internal/app/models/dto"
	"github.com/nexusai/nexus-backend/internal/pkg/apperrors"
)

// SQLiteUserRepository handles relational fallback operations for users.
// Applications live in their own table joined by uid; the uid primary key is
// the only uniqueness the relational store enforces (email duplicates are
// accepted, unlike document mode).
type SQLiteUserRepository struct {
	db *sql.DB
}

// NewSQLiteUserRepository creates a new sqlite-backed user repository
func NewSQLiteUserRepository(sqlDB *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: sqlDB}
}

const userColumns = `uid, email, name, role, profileStrength, collegeId, skills, bio, createdAt`

// scanUser reads one user row without its applications
func scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	var user models.User
	var role, collegeID, skills, bio, createdAt sql.NullString
	var profileStrength sql.NullInt64

	err := row.Scan(
		&user.UID,
		&user.Email,
		&user.Name,
		&role,
		&profileStrength,
		&collegeID,
		&skills,
		&bio,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	user.Role = models.Role(role.String)
	user.ProfileStrength = int(profileStrength.Int64)
	user.CollegeID = collegeID.String
	user.Skills = splitSkills(skills.String)
	user.Bio = bio.String
	user.CreatedAt = parseTime(createdAt.String)
	user.Applications = []models.Application{}

	return &user, nil
}

// GetUser retrieves a user by uid with their applications attached. Unknown
// uid yields (nil, nil).
func (r *SQLiteUserRepository) GetUser(ctx context.Context, uid string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE uid = ?`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, uid))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	if err := r.attachApplications(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// CreateUser inserts a new user. Only the uid primary key guards against
// duplicates here.
func (r *SQLiteUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		user.UID,
		user.Email,
		user.Name,
		string(user.Role),
		user.ProfileStrength,
		user.CollegeID,
		joinSkills(user.Skills),
		user.Bio,
		formatTime(user.CreatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: %s", apperrors.ErrUserAlreadyExists, user.UID)
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// UpdateUser applies only name and bio regardless of what else the patch
// carries, then returns the post-update record. The narrow update surface is
// the relational mode's documented contract. Unknown uid yields (nil, nil).
func (r *SQLiteUserRepository) UpdateUser(ctx context.Context, uid string, patch *dto.UpdateUserRequest) (*models.User, error) {
	query := `UPDATE users SET name = ?, bio = ? WHERE uid = ?`

	_, err := r.db.ExecContext(ctx, query,
		stringValue(patch.Name),
		stringValue(patch.Bio),
		uid,
	)
	if err != nil {
		return nil, fmt.Errorf("error updating user: %w", err)
	}

	return r.GetUser(ctx, uid)
}

// ApplyToJob appends one application row. There is no foreign key to jobs or
// users and no dedup check, matching the original layout.
func (r *SQLiteUserRepository) ApplyToJob(ctx context.Context, uid string, application models.Application) error {
	query := `INSERT INTO applications (jobId, uid, status, appliedAt) VALUES (?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		application.JobID,
		uid,
		application.Status,
		formatTime(application.AppliedAt),
	)
	if err != nil {
		return fmt.Errorf("error recording application: %w", err)
	}

	return nil
}

// ListCollegeStudents retrieves all student-role users of a college, each
// enriched with their applications
func (r *SQLiteUserRepository) ListCollegeStudents(ctx context.Context, collegeID string) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE collegeId = ? AND role = ?`

	rows, err := r.db.QueryContext(ctx, query, collegeID, string(models.RoleStudent))
	if err != nil {
		return nil, fmt.Errorf("error listing college students: %w", err)
	}
	defer rows.Close()

	students := []*models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		students = append(students, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, student := range students {
		if err := r.attachApplications(ctx, student); err != nil {
			return nil, err
		}
	}

	return students, nil
}

// attachApplications joins and projects the user's application rows
func (r *SQLiteUserRepository) attachApplications(ctx context.Context, user *models.User) error {
	query := `SELECT jobId, status, appliedAt FROM applications WHERE uid = ? ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, user.UID)
	if err != nil {
		return fmt.Errorf("error retrieving applications: %w", err)
	}
	defer rows.Close()

	applications := []models.Application{}
	for rows.Next() {
		var app models.Application
		var appliedAt sql.NullString
		if err := rows.Scan(&app.JobID, &app.Status, &appliedAt); err != nil {
			return fmt.Errorf("error scanning application row: %w", err)
		}
		app.AppliedAt = parseTime(appliedAt.String)
		applications = append(applications, app)
	}

	if err := rows.Err(); err != nil {
		return err
	}

	user.Applications = applications
	return nil
}
