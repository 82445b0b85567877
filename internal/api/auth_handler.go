package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) signup(c *gin.Context) {
	body, err := readBody(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	user, err := s.deps.Auth.Signup(c.Request.Context(), body)
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := s.startSession(c, user.ID); err != nil {
		s.fail(c, err)
		return
	}
	created(c, user)
}

func (s *Server) login(c *gin.Context) {
	body, err := readBody(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	user, err := s.deps.Auth.Login(c.Request.Context(), body)
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := s.startSession(c, user.ID); err != nil {
		s.fail(c, err)
		return
	}
	ok(c, user)
}

// logout only clears the cookie; an issued token stays valid until it expires.
func (s *Server) logout(c *gin.Context) {
	s.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, envelope{Success: true})
}

func (s *Server) me(c *gin.Context) {
	user, err := s.deps.Auth.GetUserByID(c.Request.Context(), userID(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	ok(c, user)
}

func (s *Server) startSession(c *gin.Context, userID string) error {
	signed, err := s.deps.Tokens.Mint(userID)
	if err != nil {
		return err
	}
	s.setSessionCookie(c, signed, int(s.deps.Tokens.TTL().Seconds()))
	return nil
}

func (s *Server) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookieName, value, maxAge, "/", "", s.deps.Config.CookieSecure, true)
}
