package handler

import (
	"net/http"
	"strconv"

	"github.com/estroop3-gif/second-watch-network-sub006/internal/store"
	"github.com/estroop3-gif/second-watch-network-sub006/pkg/database"
	"github.com/estroop3-gif/second-watch-network-sub006/pkg/logger"
	"github.com/estroop3-gif/second-watch-network-sub006/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SetOverrides merges per-resource limit overrides into an organization.
// Keys absent from the payload stay untouched; an empty payload is
// rejected.
func SetOverrides(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOverrideOperation("set")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid organization ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid organization ID"})
	}

	var req struct {
		Overrides map[string]int64 `json:"overrides"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse override request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	db := database.GetDB()
	if err := store.SetOverrides(db, uint(id), req.Overrides); err != nil {
		log.Error("Failed to set overrides", zap.Uint64("organization_id", id), zap.Error(err))
		return respondError(c, err, "override update failed")
	}

	overrides, err := store.GetOverrides(db, uint(id))
	if err != nil {
		log.Error("Failed to reload overrides", zap.Uint64("organization_id", id), zap.Error(err))
		return respondError(c, err, "override update failed")
	}

	log.Info("Overrides updated",
		zap.Uint64("organization_id", id),
		zap.Int("override_count", len(overrides)))

	return c.JSON(http.StatusOK, echo.Map{
		"message":       "Overrides updated successfully",
		"overrides":     overrides,
		"has_overrides": len(overrides) > 0,
	})
}

// ClearOverrides removes every override for an organization, reverting it
// fully to tier defaults. Succeeds as a no-op when nothing is overridden.
func ClearOverrides(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOverrideOperation("clear")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid organization ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid organization ID"})
	}

	if err := store.ClearOverrides(database.GetDB(), uint(id)); err != nil {
		log.Error("Failed to clear overrides", zap.Uint64("organization_id", id), zap.Error(err))
		return respondError(c, err, "override clear failed")
	}

	log.Info("Overrides cleared", zap.Uint64("organization_id", id))

	return c.JSON(http.StatusOK, echo.Map{
		"message":       "Overrides cleared",
		"has_overrides": false,
	})
}

// ClearOverride removes the override for one resource dimension only.
func ClearOverride(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOverrideOperation("clear_one")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid organization ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid organization ID"})
	}
	resource := c.Param("resource")

	db := database.GetDB()
	if err := store.ClearOverride(db, uint(id), resource); err != nil {
		log.Error("Failed to clear override",
			zap.Uint64("organization_id", id),
			zap.String("resource", resource),
			zap.Error(err))
		return respondError(c, err, "override clear failed")
	}

	hasOverrides, err := store.HasOverrides(db, uint(id))
	if err != nil {
		log.Error("Failed to check overrides", zap.Uint64("organization_id", id), zap.Error(err))
		return respondError(c, err, "override clear failed")
	}

	log.Info("Override cleared",
		zap.Uint64("organization_id", id),
		zap.String("resource", resource))

	return c.JSON(http.StatusOK, echo.Map{
		"message":       "Override cleared",
		"resource":      resource,
		"has_overrides": hasOverrides,
	})
}
