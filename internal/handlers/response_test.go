package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/R0ger25/api-rastreabilidade-backend/internal/services"
)

func respond(t *testing.T, err error) (*httptest.ResponseRecorder, ErrorEnvelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	RespondServiceError(c, err)

	var envelope ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return rec, envelope
}

func TestRespondServiceError_MapsTaxonomyToStatus(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", services.ErrNotFound, http.StatusNotFound, "not_found"},
		{"forbidden", services.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"invalid credentials", services.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
		{"volume exceeded", &services.VolumeExceededError{
			Requested: decimal.NewFromFloat(60),
			Available: decimal.NewFromFloat(50.75),
		}, http.StatusBadRequest, "volume_exceeded"},
		{"mirror unavailable", services.ErrMirrorUnavailable, http.StatusServiceUnavailable, "mirror_unavailable"},
		{"anything else", errors.New("insert failed"), http.StatusBadRequest, "persistence_failure"},
	}
	for _, c := range cases {
		rec, envelope := respond(t, c.err)
		if rec.Code != c.status {
			t.Fatalf("%s: got status %d want %d", c.name, rec.Code, c.status)
		}
		if envelope.Error.Code != c.code {
			t.Fatalf("%s: got code %q want %q", c.name, envelope.Error.Code, c.code)
		}
	}
}

func TestRespondServiceError_ChallengesOnInvalidCredentials(t *testing.T) {
	rec, _ := respond(t, services.ErrInvalidCredentials)
	if got := rec.Header().Get("WWW-Authenticate"); got != "Bearer" {
		t.Fatalf("got WWW-Authenticate %q", got)
	}
}

func TestRespondServiceError_WrappedErrorsStillMap(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), services.ErrNotFound)
	rec, _ := respond(t, wrapped)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("got status %d", rec.Code)
	}
}
