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

const (
	msgFetchUserFailed  = "Failed to fetch user"
	msgCreateUserFailed = "Failed to create user"
	msgUpdateUserFailed = "Failed to update user"
)

// UserController handles user profile endpoints
type UserController struct {
	userService services.UserService
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService, logger zerolog.Logger) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger,
	}
}

// GetUser fetches a user with their application collection. An unknown uid
// responds 200 with a null body.
// @Summary Fetch a user
// @Tags users
// @Produce json
// @Param uid path string true "User UID"
// @Success 200 {object} models.User
// @Failure 500 {object} dto.ErrorResponse
// @Router /users/{uid} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	user, err := c.userService.GetUser(ctx, ctx.Param("uid"))
	if err != nil {
		middleware.HandleStoreError(ctx, c.logger, err, msgFetchUserFailed)
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// CreateUser registers a profile for an externally issued uid
// @Summary Create a user
// @Tags users
// @Accept json
// @Produce json
// @Param request body models.User true "User profile"
// @Success 201 {object} models.User
// @Failure 500 {object} dto.ErrorResponse
// @Router /users [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var user models.User
	if err := ctx.ShouldBindJSON(&user); err != nil {
		middleware.HandleStoreError(ctx, c.logger, err, msgCreateUserFailed)
		return
	}

	created, err := c.userService.CreateUser(ctx, &user)
	if err != nil {
		middleware.HandleStoreError(ctx, c.logger, err, msgCreateUserFailed)
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// UpdateUser patches the profile. In relational mode only name and bio are
// applied regardless of the payload.
// @Summary Update a user
// @Tags users
// @Accept json
// @Produce json
// @Param uid path string true "User UID"
// @Param request body dto.UpdateUserRequest true "Replacement fields"
// @Success 200 {object} models.User
// @Failure 500 {object} dto.ErrorResponse
// @Router /users/{uid} [put]
func (c *UserController) UpdateUser(ctx *gin.Context) {
	var patch dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		middleware.HandleStoreError(ctx, c.logger, err, msgUpdateUserFailed)
		return
	}

	user, err := c.userService.UpdateUser(ctx, ctx.Param("uid"), &patch)
	if err != nil {
		middleware.HandleStoreError(ctx, c.logger, err, msgUpdateUserFailed)
		return
	}

	ctx.JSON(http.StatusOK, user)
}
