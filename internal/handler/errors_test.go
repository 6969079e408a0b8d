package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/estroop3-gif/second-watch-network-sub006/internal/quota"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondErrorMapsTaxonomyToStatus(t *testing.T) {
	e := echo.New()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "not found",
			err:        quota.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   "not found",
		},
		{
			name:       "validation",
			err:        quota.Validationf("at least one override value required"),
			wantStatus: http.StatusBadRequest,
			wantBody:   "at least one override value required",
		},
		{
			name:       "source unavailable",
			err:        &quota.SourceUnavailableError{Source: "projects", Err: assert.AnError},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "retryable",
		},
		{
			name:       "unknown error hides internals",
			err:        assert.AnError,
			wantStatus: http.StatusInternalServerError,
			wantBody:   "something went wrong",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := respondError(c, tt.err, "something went wrong")

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}
