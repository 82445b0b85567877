// Package api exposes the todo tracker over HTTP with gin.
package api

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"todo-tracker/internal/apperr"
	"todo-tracker/internal/config"
	"todo-tracker/internal/service"
	"todo-tracker/internal/token"
	"todo-tracker/internal/validation"
)

const maxBodyBytes = 1 << 20

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	Config     config.Config
	Logger     *slog.Logger
	DB         *gorm.DB
	Tokens     *token.Issuer
	Auth       *service.AuthService
	Categories *service.CategoryService
	Todos      *service.TodoService
	Metrics    *Metrics
}

// Server holds handler state shared across routes.
type Server struct {
	deps Deps
	log  *slog.Logger
}

// NewRouter builds the gin engine with middleware and every route.
func NewRouter(deps Deps) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Metrics == nil {
		deps.Metrics = NewMetrics()
	}
	s := &Server{deps: deps, log: deps.Logger}

	r := gin.New()
	r.Use(RecoveryWithLog(s.log))
	r.Use(RequestLogger(s.log))
	r.Use(deps.Metrics.Middleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.Config.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", s.health)
	r.GET("/metrics", deps.Metrics.Handler())

	api := r.Group("/api")
	api.Use(Authenticate(deps.Tokens, s.log))

	authLimit := RateLimiter(rate.Limit(float64(deps.Config.AuthRatePerMin)/60.0), deps.Config.AuthRateBurst)
	auth := api.Group("/auth")
	{
		auth.POST("/signup", authLimit, s.signup)
		auth.POST("/login", authLimit, s.login)
		auth.POST("/logout", s.logout)
		auth.GET("/me", RequireAuth(), s.me)
	}

	categories := api.Group("/categories", RequireAuth())
	{
		categories.GET("", s.listCategories)
		categories.POST("", s.createCategory)
		categories.GET("/:id", s.getCategory)
		categories.GET("/:id/todos", s.getCategoryWithTodos)
		categories.PUT("/:id", s.updateCategory)
		categories.DELETE("/:id", s.deleteCategory)
	}

	todos := api.Group("/todos", RequireAuth())
	{
		todos.GET("", s.listTodos)
		todos.POST("", s.createTodo)
		todos.GET("/:id", s.getTodo)
		todos.PUT("/:id", s.updateTodo)
		todos.PATCH("/:id/status", s.updateTodoStatus)
		todos.DELETE("/:id", s.deleteTodo)
	}

	r.NoRoute(func(c *gin.Context) {
		abortWithError(c, http.StatusNotFound, fmt.Sprintf("Route %s %s not found", c.Request.Method, c.Request.URL.Path))
	})

	return r
}

func (s *Server) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if s.deps.DB != nil {
		sqlDB, err := s.deps.DB.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "DOWN", "message": "Database unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "Backend is running"})
}

// fail is shorthand for writing err with the server logger.
func (s *Server) fail(c *gin.Context, err error) {
	fail(c, s.log, err)
}

// readBody decodes the request body as a JSON object.
func readBody(c *gin.Context) (validation.Payload, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, apperr.Validation("Request body could not be read")
	}
	return validation.Decode(raw)
}

// userID returns the identity RequireAuth already guaranteed.
func userID(c *gin.Context) string {
	id, _ := currentUserID(c)
	return id
}
