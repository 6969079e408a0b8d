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

// GetEntitlements joins the organization's resolved limits with its last
// stored usage snapshot. The snapshot is read as-is; admins wanting fresh
// numbers trigger a recalculation first.
func GetEntitlements(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid organization ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid organization ID"})
	}

	report, err := store.BuildEntitlementReport(database.GetDB(), uint(id), quotaDefaults.FloorLimit)
	if err != nil {
		log.Error("Failed to build entitlement report", zap.Uint64("organization_id", id), zap.Error(err))
		return respondError(c, err, "failed to build entitlement report")
	}

	prometheus.ReportsCounter.Inc()
	for resource, row := range report.Resources {
		if row.NearLimit {
			prometheus.RecordNearLimitResource(string(resource))
		}
	}

	return c.JSON(http.StatusOK, report)
}
