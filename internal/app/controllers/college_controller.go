package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nexusai/nexus-backend/internal/app/services"
	"github.com/nexusai/nexus-backend/internal/middleware"
)

const msgFetchStudentsFailed = "Failed to fetch college students"

// CollegeController handles the college dashboard endpoints
type CollegeController struct {
	userService services.UserService
	logger      zerolog.Logger
}

// NewCollegeController creates a new CollegeController
func NewCollegeController(userService services.UserService, logger zerolog.Logger) *CollegeController {
	return &CollegeController{
		userService: userService,
		logger:      logger,
	}
}

// ListStudents returns the college's student-role users, each with their
// applications. A college with no students gets an empty array.
// @Summary List a college's students
// @Tags colleges
// @Produce json
// @Param collegeId path string true "College ID"
// @Success 200 {array} models.User
// @Failure 500 {object} dto.ErrorResponse
// @Router /colleges/{collegeId}/students [get]
func (c *CollegeController) ListStudents(ctx *gin.Context) {
	students, err := c.userService.ListCollegeStudents(ctx, ctx.Param("collegeId"))
	if err != nil {
		middleware.HandleStoreError(ctx, c.logger, err, msgFetchStudentsFailed)
		return
	}

	ctx.JSON(http.StatusOK, students)
}
