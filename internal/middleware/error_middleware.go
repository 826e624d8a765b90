package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nexusai/nexus-backend/internal/app/models/dto"
)

// HandleStoreError reports a failed store operation as an opaque 500 with a
// fixed per-endpoint message. The underlying error is logged server-side only
// and never reaches the client payload.
func HandleStoreError(c *gin.Context, logger zerolog.Logger, err error, message string) {
	logger.Error().
		Err(err).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Msg(message)

	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(message))
}
