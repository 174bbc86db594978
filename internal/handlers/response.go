package handlers

import (
  "errors"
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/R0ger25/api-rastreabilidade-backend/internal/services"
)

type APIError struct {
  Message string `json:"message"`
  Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
  Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
  msg := "unknown error"
  if err != nil {
    msg = err.Error()
  }
  c.JSON(status, ErrorEnvelope{
    Error: APIError{
      Message: msg,
      Code:    code,
    },
  })
}

// RespondServiceError maps the service error taxonomy onto HTTP statuses.
// Anything unrecognized is treated as a persistence failure and surfaced as
// 400 with the underlying message.
func RespondServiceError(c *gin.Context, err error) {
  var volErr *services.VolumeExceededError
  switch {
  case errors.Is(err, services.ErrNotFound):
    RespondError(c, http.StatusNotFound, "not_found", err)
  case errors.Is(err, services.ErrForbidden):
    RespondError(c, http.StatusForbidden, "forbidden", err)
  case errors.Is(err, services.ErrInvalidCredentials):
    c.Header("WWW-Authenticate", "Bearer")
    RespondError(c, http.StatusUnauthorized, "invalid_credentials", err)
  case errors.As(err, &volErr):
    RespondError(c, http.StatusBadRequest, "volume_exceeded", err)
  case errors.Is(err, services.ErrMirrorUnavailable):
    RespondError(c, http.StatusServiceUnavailable, "mirror_unavailable", err)
  default:
    RespondError(c, http.StatusBadRequest, "persistence_failure", err)
  }
}
