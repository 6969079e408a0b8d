package handler

import (
	"net/http"
	"strconv"

	"github.com/estroop3-gif/second-watch-network-sub006/internal/model"
	"github.com/estroop3-gif/second-watch-network-sub006/internal/store"
	"github.com/estroop3-gif/second-watch-network-sub006/pkg/database"
	"github.com/estroop3-gif/second-watch-network-sub006/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListOrganizations returns every organization with its tier
func ListOrganizations(c echo.Context) error {
	log := logger.FromContext(c)

	orgs, err := store.ListOrganizations(database.GetDB())
	if err != nil {
		log.Error("Failed to list organizations", zap.Error(err))
		return respondError(c, err, "failed to list organizations")
	}

	return c.JSON(http.StatusOK, echo.Map{"organizations": orgs})
}

// GetOrganization returns one organization with its overrides and the
// derived has_overrides flag (computed, never stored).
func GetOrganization(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid organization ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid organization ID"})
	}

	org, err := store.GetOrganization(database.GetDB(), uint(id))
	if err != nil {
		log.Error("Organization not found", zap.Uint64("id", id), zap.Error(err))
		return respondError(c, err, "failed to retrieve organization")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"organization":  org,
		"has_overrides": len(org.Overrides) > 0,
		"overrides":     model.OverridesToLimits(org.Overrides),
	})
}

// AssignTier stores a tier assignment coming from the billing
// collaborator. Payment state is not validated here; only the resulting
// assignment is stored.
func AssignTier(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid organization ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid organization ID"})
	}

	var req store.TierAssignment
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse tier assignment request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	org, err := store.AssignTier(database.GetDB(), uint(id), req)
	if err != nil {
		log.Error("Failed to assign tier", zap.Uint64("organization_id", id), zap.Error(err))
		return respondError(c, err, "tier assignment failed")
	}

	log.Info("Tier assigned",
		zap.Uint("organization_id", org.ID),
		zap.Any("tier_id", org.TierID),
		zap.String("subscription_status", org.SubscriptionStatus))

	return c.JSON(http.StatusOK, org)
}
