package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"todo-tracker/internal/apperr"
)

// envelope is the uniform response body.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respond(c *gin.Context, status int, data any) {
	c.JSON(status, envelope{Success: true, Data: data})
}

func ok(c *gin.Context, data any) {
	respond(c, http.StatusOK, data)
}

func created(c *gin.Context, data any) {
	respond(c, http.StatusCreated, data)
}

func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func abortWithError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, envelope{Success: false, Error: msg})
}

// fail writes err as an error envelope. Operational errors keep their
// message; anything else is reduced to a generic one and logged.
func fail(c *gin.Context, log *slog.Logger, err error) {
	status, msg, operational := translate(err)
	if !operational {
		log.Error("request failed",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("error", err.Error()),
		)
	}
	abortWithError(c, status, msg)
}

func translate(err error) (status int, msg string, operational bool) {
	if appErr, ok := apperr.As(err); ok {
		return appErr.Kind.Status(), appErr.Message, true
	}
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return http.StatusConflict, "A record with this unique field already exists", false
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, "Record not found", false
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return http.StatusBadRequest, "Foreign key constraint failed", false
	}
	return http.StatusInternalServerError, "Internal server error", false
}
