package repositories

import (
	"context"
	"database/sql"

	"github.com/nexusai/nexus-backend/internal/app/models"
	"github.com/nexusai/nexus-backend/internal/app/models/dto"
	"github.com/nexusai/nexus-backend/internal/db"
)

// Backend identifies which store implementation is active. It is elected once
// at startup and never changes for the process lifetime.
type Backend string

const (
	BackendMongo  Backend = "mongodb"
	BackendSQLite Backend = "sqlite"
)

// JobRepository is the job side of the persistence adapter. Both store
// implementations satisfy it; handlers never branch on the active backend.
type JobRepository interface {
	// ListJobs returns every job ordered by postedAt descending.
	ListJobs(ctx context.Context) ([]*models.Job, error)
	// CreateJob persists the job and fills in its store-assigned identity.
	CreateJob(ctx context.Context, job *models.Job) error
	// UpdateJob replaces the mutable fields of the named job and returns the
	// post-update record. A missing id yields (nil, nil), not an error.
	UpdateJob(ctx context.Context, id string, patch *dto.UpdateJobRequest) (*models.Job, error)
	// DeleteJob removes the job. Deleting an unknown id succeeds silently.
	DeleteJob(ctx context.Context, id string) error
}

// UserRepository is the user side of the persistence adapter.
type UserRepository interface {
	// GetUser returns the user with their applications, or (nil, nil) when the
	// uid is unknown.
	GetUser(ctx context.Context, uid string) (*models.User, error)
	// CreateUser persists a new user. Uniqueness of uid/email is enforced only
	// where the active store supports it.
	CreateUser(ctx context.Context, user *models.User) error
	// UpdateUser applies the patch and returns the post-update record, or
	// (nil, nil) when the uid is unknown. The relational implementation only
	// ever applies name and bio.
	UpdateUser(ctx context.Context, uid string, patch *dto.UpdateUserRequest) (*models.User, error)
	// ApplyToJob appends one application record for the user. No dedup check:
	// repeated applies to the same job each produce a new record.
	ApplyToJob(ctx context.Context, uid string, application models.Application) error
	// ListCollegeStudents returns every student-role user of the college, each
	// enriched with their applications. No matches yields an empty slice.
	ListCollegeStudents(ctx context.Context, collegeID string) ([]*models.User, error)
}

// Repositories holds the active store's repository instances
type Repositories struct {
	Backend Backend
	Jobs    JobRepository
	Users   UserRepository
}

// NewMongoRepositories initializes the document store repositories
func NewMongoRepositories(mdb *db.MongoDB) *Repositories {
	return &Repositories{
		Backend: BackendMongo,
		Jobs:    NewMongoJobRepository(mdb.Jobs),
		Users:   NewMongoUserRepository(mdb.Users),
	}
}

// NewSQLiteRepositories initializes the relational fallback repositories
func NewSQLiteRepositories(sqlDB *sql.DB) *Repositories {
	return &Repositories{
		Backend: BackendSQLite,
		Jobs:    NewSQLiteJobRepository(sqlDB),
		Users:   NewSQLiteUserRepository(sqlDB),
	}
}
