package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nexusai/nexus-backend/internal/app/models"
	"github.com/nexusai/nexus-backend/internal/app/models/dto"
	"github.com/nexusai/nexus-backend/internal/app/services"
	"github.com/nexusai/nexus-backend/internal/middleware"
)

// Static client-visible failure messages, one per endpoint.
const (
	msgFetchJobsFailed  = "Failed to fetch jobs"
	msgCreateJobFailed  = "Failed to create job"
	msgUpdateJobFailed  = "Failed to update job"
	msgDeleteJobFailed  = "Failed to delete job"
	msgApplyFailed      = "Failed to apply for job"
)

// JobController handles job-related endpoints
type JobController struct {
	jobService  services.JobService
	userService services.UserService
	logger      zerolog.Logger
}

// NewJobController creates a new JobController
func NewJobController(jobService services.JobService, userService services.UserService, logger zerolog.Logger) *JobController {
	return &JobController{
		jobService:  jobService,
		userService: userService,
		logger:      logger,
	}
}

// ListJobs returns every job, newest first
// @Summary List jobs
// @Tags jobs
// @Produce json
// @Success 200 {array} models.Job
// @Failure 500 {object} dto.ErrorResponse
// @Router /jobs [get]
func (c *JobController) ListJobs(ctx *gin.Context) {
	jobs, err := c.jobService.ListJobs(ctx)
	if err != nil {
		middleware.HandleStoreError(ctx, c.logger, err, msgFetchJobsFailed)
		return
	}

	ctx.JSON(http.StatusOK, jobs)
}

// CreateJob creates a job posting and broadcasts job:created
// @Summary Create a job
// @Tags jobs
// @Accept json
// @Produce json
// @Param request body models.Job true "Job posting"
// @Success 201 {object} models.Job
// @Failure 500 {object} dto.ErrorResponse
// @Router /jobs [post]
func (c *JobController) CreateJob(ctx *gin.Context) {
	var job models.Job
	if err := ctx.ShouldBindJSON(&job); err != nil {
		middleware.HandleStoreError(ctx, c.logger, err, msgCreateJobFailed)
		return
	}

	created, err := c.jobService.CreateJob(ctx, &job)
	if err != nil {
		middleware.HandleStoreError(ctx, c.logger, err, msgCreateJobFailed)
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// UpdateJob replaces the job's fields and broadcasts job:updated. An unknown
// id responds 200 with a null body, it is not an error.
// @Summary Update a job
// @Tags jobs
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param request body dto.UpdateJobRequest true "Replacement fields"
// @Success 200 {object} models.Job
// @Failure 500 {object} dto.ErrorResponse
// @Router /jobs/{id} [put]
func (c *JobController) UpdateJob(ctx *gin.Context) {
	var patch dto.UpdateJobRequest
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		middleware.HandleStoreError(ctx, c.logger, err, msgUpdateJobFailed)
		return
	}

	job, err := c.jobService.UpdateJob(ctx, ctx.Param("id"), &patch)
	if err != nil {
		middleware.HandleStoreError(ctx, c.logger, err, msgUpdateJobFailed)
		return
	}

	ctx.JSON(http.StatusOK, job)
}

// DeleteJob removes the job and broadcasts job:deleted. Deleting an unknown
// id still succeeds.
// @Summary Delete a job
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /jobs/{id} [delete]
func (c *JobController) DeleteJob(ctx *gin.Context) {
	if err := c.jobService.DeleteJob(ctx, ctx.Param("id")); err != nil {
		middleware.HandleStoreError(ctx, c.logger, err, msgDeleteJobFailed)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// Apply records one application for the posting
// @Summary Apply to a job
// @Tags jobs
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param request body dto.ApplyRequest true "Applying user"
// @Success 200 {object} dto.SuccessResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /jobs/{id}/apply [post]
func (c *JobController) Apply(ctx *gin.Context) {
	var req dto.ApplyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleStoreError(ctx, c.logger, err, msgApplyFailed)
		return
	}

	if err := c.userService.ApplyToJob(ctx, ctx.Param("id"), req.UID); err != nil {
		middleware.HandleStoreError(ctx, c.logger, err, msgApplyFailed)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
