package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"todo-tracker/internal/apperr"
)

func TestTranslate(t *testing.T) {
	cases := []struct {
		err         error
		status      int
		msg         string
		operational bool
	}{
		{apperr.Validation("Title is required"), http.StatusBadRequest, "Title is required", true},
		{apperr.Unauthorized(""), http.StatusUnauthorized, "Unauthorized", true},
		{apperr.Forbidden(""), http.StatusForbidden, "Forbidden", true},
		{fmt.Errorf("wrapped: %w", apperr.NotFound("Todo not found")), http.StatusNotFound, "Todo not found", true},
		{fmt.Errorf("create user: %w", gorm.ErrDuplicatedKey), http.StatusConflict, "A record with this unique field already exists", false},
		{gorm.ErrRecordNotFound, http.StatusNotFound, "Record not found", false},
		{fmt.Errorf("create todo: %w", gorm.ErrForeignKeyViolated), http.StatusBadRequest, "Foreign key constraint failed", false},
		{errors.New("disk on fire"), http.StatusInternalServerError, "Internal server error", false},
	}
	for _, tc := range cases {
		status, msg, operational := translate(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.msg, msg, tc.err.Error())
		assert.Equal(t, tc.operational, operational, tc.err.Error())
	}
}

func TestRecoveryWithLog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RecoveryWithLog(slog.New(slog.NewTextHandler(io.Discard, nil))))
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Internal server error"}`, w.Body.String())
}
