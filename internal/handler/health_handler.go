package handler

import (
	"net/http"
	"time"

	"github.com/invmanage/inventory-service/internal/store"
	"github.com/invmanage/inventory-service/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// HealthCheck handles the health check endpoint
func HealthCheck(c echo.Context) error {
	log := logger.FromEcho(c)

	response := echo.Map{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	}

	// Check the storage backend if requested
	if c.QueryParam("check") == "db" {
		if err := store.Active().Ping(); err != nil {
			log.Error("Storage ping error", zap.Error(err))
			response["status"] = "error"
			response["db_status"] = "error"
			response["db_error"] = "Failed to reach storage backend"
			return c.JSON(http.StatusInternalServerError, response)
		}
		response["db_status"] = "ok"
	}

	return c.JSON(http.StatusOK, response)
}
