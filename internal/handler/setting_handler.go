package handler

import (
	"errors"
	"net/http"

	"github.com/invmanage/inventory-service/internal/store"
	"github.com/invmanage/inventory-service/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SettingRequest defines the structure for setting update requests
type SettingRequest struct {
	Value *string `json:"value"`
}

// ListSettings returns all application settings
func ListSettings(c echo.Context) error {
	log := logger.FromEcho(c)

	s := store.Active()
	if err := s.InitializeData(); err != nil {
		log.Error("Failed to initialize sample data", zap.Error(err))
		return storageError(c, "Failed to fetch settings", err)
	}

	settings, err := s.Settings()
	if err != nil {
		log.Error("Failed to retrieve settings", zap.Error(err))
		return storageError(c, "Failed to fetch settings", err)
	}
	return c.JSON(http.StatusOK, settings)
}

// UpdateSetting updates the value of a named setting
func UpdateSetting(c echo.Context) error {
	log := logger.FromEcho(c)
	key := c.Param("key")

	var req SettingRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("key", key), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.Value == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Setting value is required"})
	}

	setting, err := store.Active().UpdateSetting(key, *req.Value)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Setting not found"})
		}
		log.Error("Failed to update setting", zap.String("key", key), zap.Error(err))
		return storageError(c, "Failed to update setting", err)
	}

	log.Info("Setting updated successfully", zap.String("key", key))
	return c.JSON(http.StatusOK, setting)
}
