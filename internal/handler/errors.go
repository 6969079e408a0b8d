package handler

import (
	"errors"
	"net/http"

	"github.com/estroop3-gif/second-watch-network-sub006/internal/quota"
	"github.com/estroop3-gif/second-watch-network-sub006/pkg/config"
	"github.com/labstack/echo/v4"
)

// quotaDefaults is injected at startup; the resolver itself never reads
// configuration.
var quotaDefaults config.QuotaConfig

// SetQuotaDefaults wires the configured floor and ownership default into
// the handler layer.
func SetQuotaDefaults(q config.QuotaConfig) {
	quotaDefaults = q
}

// respondError maps the domain error taxonomy to HTTP statuses:
// NotFound -> 404, ValidationError -> 400, SourceUnavailable -> 503
// (retryable, the caller decides), anything else -> 500 with the fallback
// message so internals are not leaked.
func respondError(c echo.Context, err error, fallback string) error {
	var validationErr *quota.ValidationError
	var sourceErr *quota.SourceUnavailableError

	switch {
	case errors.Is(err, quota.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.As(err, &validationErr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": validationErr.Msg})
	case errors.As(err, &sourceErr):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{
			"error":     sourceErr.Error(),
			"retryable": true,
		})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": fallback})
	}
}
