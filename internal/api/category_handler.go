package api

import (
	"github.com/gin-gonic/gin"
)

func (s *Server) listCategories(c *gin.Context) {
	categories, err := s.deps.Categories.List(c.Request.Context(), userID(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	ok(c, categories)
}

func (s *Server) getCategory(c *gin.Context) {
	category, err := s.deps.Categories.Get(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	ok(c, category)
}

func (s *Server) getCategoryWithTodos(c *gin.Context) {
	category, err := s.deps.Categories.GetWithTodos(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	ok(c, category)
}

func (s *Server) createCategory(c *gin.Context) {
	body, err := readBody(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	category, err := s.deps.Categories.Create(c.Request.Context(), userID(c), body)
	if err != nil {
		s.fail(c, err)
		return
	}
	created(c, category)
}

func (s *Server) updateCategory(c *gin.Context) {
	body, err := readBody(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	category, err := s.deps.Categories.Update(c.Request.Context(), userID(c), c.Param("id"), body)
	if err != nil {
		s.fail(c, err)
		return
	}
	ok(c, category)
}

func (s *Server) deleteCategory(c *gin.Context) {
	if err := s.deps.Categories.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	noContent(c)
}
