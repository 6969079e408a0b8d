package handler

import (
	"net/http"
	"strconv"

	"github.com/estroop3-gif/second-watch-network-sub006/internal/store"
	"github.com/estroop3-gif/second-watch-network-sub006/pkg/database"
	"github.com/estroop3-gif/second-watch-network-sub006/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// GetOwnerLimit reports how many organizations a user may own and how
// many they currently own. The organization-creation flow calls this
// before creating; this service only reports, it never gates creation.
func GetOwnerLimit(c echo.Context) error {
	log := logger.FromContext(c)

	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid user ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user ID"})
	}

	status, err := store.GetOwnerLimit(database.GetDB(), uint(userID), quotaDefaults.DefaultOwnedOrgs)
	if err != nil {
		log.Error("Failed to get ownership limit", zap.Uint64("user_id", userID), zap.Error(err))
		return respondError(c, err, "failed to get ownership limit")
	}

	return c.JSON(http.StatusOK, status)
}

// SetOwnerLimit assigns a new ownership cap for a user. Lowering below
// the current ownership count is allowed; existing organizations are
// never removed.
func SetOwnerLimit(c echo.Context) error {
	log := logger.FromContext(c)

	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid user ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user ID"})
	}

	var req struct {
		Limit *int64 `json:"limit"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse ownership limit request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Limit == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "limit is required"})
	}

	status, err := store.SetOwnerLimit(database.GetDB(), uint(userID), *req.Limit)
	if err != nil {
		log.Error("Failed to set ownership limit",
			zap.Uint64("user_id", userID),
			zap.Int64("limit", *req.Limit),
			zap.Error(err))
		return respondError(c, err, "failed to set ownership limit")
	}

	log.Info("Ownership limit updated",
		zap.Uint64("user_id", userID),
		zap.Int64("limit", status.Limit),
		zap.Int64("owned", status.Owned))

	return c.JSON(http.StatusOK, status)
}
