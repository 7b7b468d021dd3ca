package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Login handles POST /api/auth/login.
func (s *Server) Login(c echo.Context) error {
	var req loginRequest
	if err := s.bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := s.sessions.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return s.respond(c, http.StatusOK, "Login successful", loginResponse{
		Token:        result.Token,
		RefreshToken: result.RefreshToken,
		TokenType:    result.TokenType,
		ExpiresIn:    int64(result.ExpiresIn.Seconds()),
		User:         toUserResponse(result.User),
	})
}

// Logout handles POST /api/auth/logout. The bearer token is revoked whether or not it
// is still valid.
func (s *Server) Logout(c echo.Context) error {
	token := bearerToken(c.Request())
	if token == "" {
		return errMissingToken
	}

	if err := s.sessions.Logout(c.Request().Context(), token); err != nil {
		return err
	}
	return s.respond(c, http.StatusOK, "Logout successful", nil)
}

// ValidateToken handles GET /api/auth/validate?token=.
func (s *Server) ValidateToken(c echo.Context) error {
	valid := s.sessions.ValidateToken(c.Request().Context(), c.QueryParam("token"))
	return s.respond(c, http.StatusOK, "Token checked", map[string]bool{"valid": valid})
}

// RefreshToken handles POST /api/auth/refresh?refreshToken=.
func (s *Server) RefreshToken(c echo.Context) error {
	result, err := s.sessions.RefreshToken(c.Request().Context(), c.QueryParam("refreshToken"))
	if err != nil {
		return err
	}

	return s.respond(c, http.StatusOK, "Token refreshed", refreshResponse{
		Token:        result.Token,
		RefreshToken: result.RefreshToken,
		TokenType:    result.TokenType,
		ExpiresIn:    int64(result.ExpiresIn.Seconds()),
		User:         toUserResponse(result.User),
	})
}

func (s *Server) bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return c.Validate(req)
}
