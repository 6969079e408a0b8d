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

// ListTiers returns the tier catalog. Deactivated tiers are excluded
// unless include_inactive=true is passed (admin views that still edit
// retired tiers).
func ListTiers(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTierOperation("list")

	includeInactive := c.QueryParam("include_inactive") == "true"

	tiers, err := store.ListTiers(database.GetDB(), includeInactive)
	if err != nil {
		log.Error("Failed to list tiers", zap.Error(err))
		return respondError(c, err, "failed to list tiers")
	}

	return c.JSON(http.StatusOK, echo.Map{"tiers": tiers})
}

// CreateTier adds a new tier to the catalog
func CreateTier(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTierOperation("create")

	var req store.TierCreate
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse tier creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	tier, err := store.CreateTier(database.GetDB(), req)
	if err != nil {
		log.Error("Failed to create tier", zap.String("name", req.Name), zap.Error(err))
		return respondError(c, err, "tier creation failed")
	}

	log.Info("Tier created",
		zap.String("name", tier.Name),
		zap.Uint("id", tier.ID),
		zap.Int64("price_cents", tier.PriceCents))

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Tier created successfully",
		"tier":    tier,
	})
}

// UpdateTier applies a partial update to a tier. Tiers are never deleted;
// retiring one means flipping is_active off here.
func UpdateTier(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTierOperation("update")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid tier ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tier ID"})
	}

	var req store.TierUpdate
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse tier update request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	tier, err := store.UpdateTier(database.GetDB(), uint(id), req)
	if err != nil {
		log.Error("Failed to update tier", zap.Uint64("id", id), zap.Error(err))
		return respondError(c, err, "tier update failed")
	}

	log.Info("Tier updated",
		zap.Uint("id", tier.ID),
		zap.String("name", tier.Name),
		zap.Bool("is_active", tier.IsActive))

	return c.JSON(http.StatusOK, tier)
}
