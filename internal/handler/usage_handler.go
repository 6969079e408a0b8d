package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/estroop3-gif/second-watch-network-sub006/internal/store"
	"github.com/estroop3-gif/second-watch-network-sub006/pkg/database"
	"github.com/estroop3-gif/second-watch-network-sub006/pkg/logger"
	"github.com/estroop3-gif/second-watch-network-sub006/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RecalculateUsage re-derives every usage counter for an organization
// from the authoritative source tables. Safe to call at any time and from
// concurrent admin sessions; on source failure the previous snapshot
// stays untouched and the condition is surfaced as retryable.
func RecalculateUsage(c echo.Context) error {
	log := logger.FromContext(c)
	defer prometheus.TrackDBOperation("recalculate_usage")(time.Now())

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid organization ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid organization ID"})
	}

	snapshot, err := store.RecalculateUsage(database.GetDB(), uint(id), time.Now())
	if err != nil {
		prometheus.RecordRecalculation("failure")
		log.Error("Usage recalculation failed", zap.Uint64("organization_id", id), zap.Error(err))
		return respondError(c, err, "usage recalculation failed")
	}

	prometheus.RecordRecalculation("success")
	log.Info("Usage recalculated",
		zap.Uint64("organization_id", id),
		zap.Int64("active_projects_used", snapshot.ActiveProjectsUsed),
		zap.Int64("active_storage_bytes_used", snapshot.ActiveStorageBytesUsed))

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Usage recalculated",
		"usage":   snapshot,
	})
}
