package api

import (
	"github.com/gin-gonic/gin"

	"todo-tracker/internal/model"
	"todo-tracker/internal/service"
)

// listTodos serves GET /api/todos, optionally narrowed by ?status= and
// ?categoryId=.
func (s *Server) listTodos(c *gin.Context) {
	ctx := c.Request.Context()
	status, byStatus := c.GetQuery("status")
	categoryID, byCategory := c.GetQuery("categoryId")

	var (
		todos []model.Todo
		err   error
	)
	switch {
	case byCategory:
		todos, err = s.deps.Todos.ListByCategory(ctx, userID(c), categoryID)
		if err == nil && byStatus {
			todos, err = filterByStatus(todos, status)
		}
	case byStatus:
		todos, err = s.deps.Todos.ListByStatus(ctx, userID(c), status)
	default:
		todos, err = s.deps.Todos.List(ctx, userID(c))
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	ok(c, todos)
}

func filterByStatus(todos []model.Todo, status string) ([]model.Todo, error) {
	want, err := service.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	out := make([]model.Todo, 0, len(todos))
	for _, t := range todos {
		if t.Status == want {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *Server) getTodo(c *gin.Context) {
	todo, err := s.deps.Todos.Get(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	ok(c, todo)
}

func (s *Server) createTodo(c *gin.Context) {
	body, err := readBody(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	todo, err := s.deps.Todos.Create(c.Request.Context(), userID(c), body)
	if err != nil {
		s.fail(c, err)
		return
	}
	created(c, todo)
}

func (s *Server) updateTodo(c *gin.Context) {
	body, err := readBody(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	todo, err := s.deps.Todos.Update(c.Request.Context(), userID(c), c.Param("id"), body)
	if err != nil {
		s.fail(c, err)
		return
	}
	ok(c, todo)
}

func (s *Server) updateTodoStatus(c *gin.Context) {
	body, err := readBody(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	todo, err := s.deps.Todos.UpdateStatus(c.Request.Context(), userID(c), c.Param("id"), body)
	if err != nil {
		s.fail(c, err)
		return
	}
	ok(c, todo)
}

func (s *Server) deleteTodo(c *gin.Context) {
	if err := s.deps.Todos.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	noContent(c)
}
