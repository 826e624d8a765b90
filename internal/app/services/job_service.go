package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/nexusai/nexus-backend/internal/app/models"
	"github.com/nexusai/nexus-backend/internal/app/models/dto"
	"github.com/nexusai/nexus-backend/internal/app/repositories"
	"github.com/nexusai/nexus-backend/internal/pkg/websocket"
)

// Notifier publishes mutation events to all connected real-time clients.
// Satisfied by the websocket hub.
type Notifier interface {
	Broadcast(event string, data interface{})
}

// JobService defines the interface for job-related operations
type JobService interface {
	ListJobs(ctx context.Context) ([]*models.Job, error)
	CreateJob(ctx context.Context, job *models.Job) (*models.Job, error)
	UpdateJob(ctx context.Context, id string, patch *dto.UpdateJobRequest) (*models.Job, error)
	DeleteJob(ctx context.Context, id string) error
}

// jobServiceImpl implements the JobService interface
type jobServiceImpl struct {
	jobRepo  repositories.JobRepository
	notifier Notifier
	logger   zerolog.Logger
}

// NewJobService creates a new job service instance
func NewJobService(jobRepo repositories.JobRepository, notifier Notifier, logger zerolog.Logger) JobService {
	return &jobServiceImpl{
		jobRepo:  jobRepo,
		notifier: notifier,
		logger:   logger,
	}
}

// ListJobs returns all jobs, newest first
func (s *jobServiceImpl) ListJobs(ctx context.Context) ([]*models.Job, error) {
	return s.jobRepo.ListJobs(ctx)
}

// CreateJob assigns postedAt and the omitted defaults, persists the job, and
// announces it. The broadcast only fires after the store confirmed the write.
func (s *jobServiceImpl) CreateJob(ctx context.Context, job *models.Job) (*models.Job, error) {
	job.ApplyDefaults(time.Now())

	if err := s.jobRepo.CreateJob(ctx, job); err != nil {
		return nil, err
	}

	s.notifier.Broadcast(websocket.EventJobCreated, job)

	s.logger.Info().
		Str("jobId", job.ID).
		Str("title", job.Title).
		Msg("Job created")

	return job, nil
}

// UpdateJob replaces the job's mutable fields and announces the post-update
// record. An unknown id yields (nil, nil) and no broadcast.
func (s *jobServiceImpl) UpdateJob(ctx context.Context, id string, patch *dto.UpdateJobRequest) (*models.Job, error) {
	job, err := s.jobRepo.UpdateJob(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	if job != nil {
		s.notifier.Broadcast(websocket.EventJobUpdated, job)
	}

	return job, nil
}

// DeleteJob removes the job and announces the deleted identity. Deletion is
// idempotent: unknown ids succeed and still broadcast, matching the original
// behavior.
func (s *jobServiceImpl) DeleteJob(ctx context.Context, id string) error {
	if err := s.jobRepo.DeleteJob(ctx, id); err != nil {
		return err
	}

	s.notifier.Broadcast(websocket.EventJobDeleted, id)

	s.logger.Info().
		Str("jobId", id).
		Msg("Job deleted")

	return nil
}
