package http

import (
	"errors"
	"net/http"
	"time"

	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Envelope wraps every response body.
type Envelope struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Data      any       `json:"data,omitempty"`
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

var errForbidden = errors.New("access denied")

func (s *Server) respond(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, Envelope{
		Success:   true,
		Message:   message,
		Data:      data,
		Status:    status,
		Timestamp: s.now().UTC(),
	})
}

// HandleError is installed as echo's HTTPErrorHandler. Domain errors map to their
// status; anything unrecognised is logged and answered with a generic 500.
func (s *Server) HandleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, message := s.classify(c, err)
	body := Envelope{
		Success:   false,
		Message:   message,
		Status:    status,
		Timestamp: s.now().UTC(),
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, body)
	}
	if writeErr != nil {
		s.logger.Error("Failed to write error response", "error", writeErr)
	}
}

func (s *Server) classify(c echo.Context, err error) (int, string) {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		if msg, ok := httpErr.Message.(string); ok {
			return httpErr.Code, msg
		}
		return httpErr.Code, http.StatusText(httpErr.Code)
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, errs.ErrObjectAlreadyExists):
		return http.StatusConflict, err.Error()
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, errForbidden):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, errs.ErrBusinessRuleViolation):
		return http.StatusUnprocessableEntity, err.Error()
	default:
		s.logger.ErrorContext(c.Request().Context(), "Request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
		return http.StatusInternalServerError, "internal server error"
	}
}
