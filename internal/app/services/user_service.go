package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nexusai/nexus-backend/internal/app/models"
	"github.com/nexusai/nexus-backend/internal/app/models/dto"
	"github.com/nexusai/nexus-backend/internal/app/repositories"
	"github.com/nexusai/nexus-backend/internal/pkg/apperrors"
)

// UserService defines the interface for user-related operations
type UserService interface {
	GetUser(ctx context.Context, uid string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	UpdateUser(ctx context.Context, uid string, patch *dto.UpdateUserRequest) (*models.User, error)
	ApplyToJob(ctx context.Context, jobID, uid string) error
	ListCollegeStudents(ctx context.Context, collegeID string) ([]*models.User, error)
}

// userServiceImpl implements the UserService interface
type userServiceImpl struct {
	userRepo repositories.UserRepository
	logger   zerolog.Logger
}

// NewUserService creates a new user service instance
func NewUserService(userRepo repositories.UserRepository, logger zerolog.Logger) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetUser returns the user with applications attached, or nil when unknown
func (s *userServiceImpl) GetUser(ctx context.Context, uid string) (*models.User, error) {
	return s.userRepo.GetUser(ctx, uid)
}

// CreateUser assigns createdAt and the role default, then persists the user
func (s *userServiceImpl) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if strings.TrimSpace(user.UID) == "" {
		return nil, fmt.Errorf("%w: uid is required", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(user.Email) == "" {
		return nil, fmt.Errorf("%w: email is required", apperrors.ErrValidationFailed)
	}

	if user.Role == "" {
		user.Role = models.RoleStudent
	}
	if user.Skills == nil {
		user.Skills = []string{}
	}
	user.Applications = []models.Application{}
	user.CreatedAt = time.Now()

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("uid", user.UID).
		Str("role", string(user.Role)).
		Msg("User created")

	return user, nil
}

// UpdateUser applies the patch through the active store. Which fields the
// patch actually reaches depends on the backend: document mode replaces every
// provided field, relational mode only name and bio.
func (s *userServiceImpl) UpdateUser(ctx context.Context, uid string, patch *dto.UpdateUserRequest) (*models.User, error) {
	return s.userRepo.UpdateUser(ctx, uid, patch)
}

// ApplyToJob appends one application with status "Applied" and a
// server-assigned timestamp. There is no dedup: repeated applies each add a
// record.
func (s *userServiceImpl) ApplyToJob(ctx context.Context, jobID, uid string) error {
	if strings.TrimSpace(uid) == "" {
		return fmt.Errorf("%w: uid is required", apperrors.ErrValidationFailed)
	}

	application := models.Application{
		JobID:     jobID,
		Status:    models.StatusApplied,
		AppliedAt: time.Now(),
	}

	if err := s.userRepo.ApplyToJob(ctx, uid, application); err != nil {
		return err
	}

	s.logger.Info().
		Str("jobId", jobID).
		Str("uid", uid).
		Msg("Application recorded")

	return nil
}

// ListCollegeStudents returns the college's student-role users
func (s *userServiceImpl) ListCollegeStudents(ctx context.Context, collegeID string) ([]*models.User, error) {
	return s.userRepo.ListCollegeStudents(ctx, collegeID)
}
