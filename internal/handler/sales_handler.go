package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/invmanage/inventory-service/internal/model"
	"github.com/invmanage/inventory-service/internal/pos"
	"github.com/invmanage/inventory-service/internal/store"
	"github.com/invmanage/inventory-service/pkg/logger"
	"github.com/invmanage/inventory-service/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// UploadSales ingests a POS CSV export. The body is either a raw CSV
// payload or a multipart form with a "file" field. Records are grouped
// by date and product; each uploaded date replaces its existing records.
func UploadSales(c echo.Context) error {
	log := logger.FromEcho(c)

	var body io.Reader = c.Request().Body
	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			log.Error("Failed to open uploaded file", zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Failed to read uploaded file"})
		}
		defer f.Close()
		body = f
	}

	records, err := pos.Parse(body)
	if err != nil {
		log.Warn("Rejected POS upload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid POS export: " + err.Error()})
	}
	if len(records) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No sales records found in upload"})
	}

	s := store.Active()
	counts := make(map[string]int)
	for date, dayRecords := range pos.GroupByDate(records) {
		if err := s.ReplaceDaySales(date, dayRecords); err != nil {
			log.Error("Failed to store sales records", zap.String("date", date), zap.Error(err))
			return storageError(c, "Failed to store sales records", err)
		}
		counts[date] = len(dayRecords)
	}

	log.Info("POS upload ingested",
		zap.Int("records", len(records)),
		zap.Int("dates", len(counts)))
	prometheus.SalesUploadsCounter.Inc()
	prometheus.SalesRowsIngestedCounter.Add(float64(len(records)))
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Sales data uploaded successfully",
		"records": len(records),
		"dates":   counts,
	})
}

// ListSales returns ingested sales records, optionally for a single date
func ListSales(c echo.Context) error {
	log := logger.FromEcho(c)

	s := store.Active()
	date := c.QueryParam("date")
	if date != "" {
		if _, err := time.Parse(model.SaleDateFormat, date); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid date, expected YYYY-MM-DD"})
		}
		records, err := s.SalesByDate(date)
		if err != nil {
			log.Error("Failed to retrieve sales records", zap.String("date", date), zap.Error(err))
			return storageError(c, "Failed to fetch sales records", err)
		}
		return c.JSON(http.StatusOK, records)
	}

	records, err := s.Sales()
	if err != nil {
		log.Error("Failed to retrieve sales records", zap.Error(err))
		return storageError(c, "Failed to fetch sales records", err)
	}
	return c.JSON(http.StatusOK, records)
}
