package handler

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/invmanage/inventory-service/internal/store"
	"github.com/invmanage/inventory-service/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// LowStockItem is one row of the low stock report
type LowStockItem struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	SKU          string `json:"sku"`
	CurrentStock int    `json:"currentStock"`
	MinStock     int    `json:"minStock"`
}

// RestockItem is one refill recommendation
type RestockItem struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	SKU          string `json:"sku"`
	CurrentStock int    `json:"currentStock"`
	MinStock     int    `json:"minStock"`
	Recommended  int    `json:"recommended"`
	Needed       int    `json:"needed"`
}

// SellerItem is one row of the top-selling report
type SellerItem struct {
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Revenue     float64 `json:"revenue"`
}

// DashboardStats aggregates inventory figures for the dashboard
type DashboardStats struct {
	TotalProducts   int     `json:"totalProducts"`
	TotalStock      int     `json:"totalStock"`
	TotalValue      float64 `json:"totalValue"`
	PotentialProfit float64 `json:"potentialProfit"`
	LowStockCount   int     `json:"lowStockCount"`
	TotalCategories int     `json:"totalCategories"`
}

// LowStockReport lists products at or below their reorder threshold
func LowStockReport(c echo.Context) error {
	log := logger.FromEcho(c)

	products, err := store.Active().Products()
	if err != nil {
		log.Error("Failed to retrieve products", zap.Error(err))
		return storageError(c, "Failed to build low stock report", err)
	}

	items := []LowStockItem{}
	for i := range products {
		if products[i].LowStock() {
			items = append(items, LowStockItem{
				ID:           products[i].ID,
				Name:         products[i].Name,
				SKU:          products[i].SKU,
				CurrentStock: products[i].Stock,
				MinStock:     products[i].MinStock,
			})
		}
	}
	return c.JSON(http.StatusOK, items)
}

// RestockReport recommends refill quantities for items at or near their
// reorder threshold: anything at or below 1.5x the threshold, with a
// recommended order of 2x the threshold or 10 units, whichever is higher
func RestockReport(c echo.Context) error {
	log := logger.FromEcho(c)

	products, err := store.Active().Products()
	if err != nil {
		log.Error("Failed to retrieve products", zap.Error(err))
		return storageError(c, "Failed to build restock report", err)
	}

	items := []RestockItem{}
	for i := range products {
		p := &products[i]
		if float64(p.Stock) > float64(p.MinStock)*1.5 {
			continue
		}
		recommended := p.MinStock * 2
		if recommended < 10 {
			recommended = 10
		}
		needed := p.MinStock - p.Stock
		if needed < 0 {
			needed = 0
		}
		items = append(items, RestockItem{
			ID:           p.ID,
			Name:         p.Name,
			SKU:          p.SKU,
			CurrentStock: p.Stock,
			MinStock:     p.MinStock,
			Recommended:  recommended,
			Needed:       needed,
		})
	}
	return c.JSON(http.StatusOK, items)
}

// TopSelling aggregates ingested POS sales by product, descending by
// quantity sold. The limit query parameter caps the list (default 5).
func TopSelling(c echo.Context) error {
	log := logger.FromEcho(c)

	limit := 5
	if raw := c.QueryParam("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid limit"})
		}
		limit = v
	}

	records, err := store.Active().Sales()
	if err != nil {
		log.Error("Failed to retrieve sales records", zap.Error(err))
		return storageError(c, "Failed to build sales report", err)
	}

	totals := make(map[string]*SellerItem)
	for i := range records {
		item, ok := totals[records[i].ProductName]
		if !ok {
			item = &SellerItem{ProductName: records[i].ProductName}
			totals[records[i].ProductName] = item
		}
		item.Quantity += records[i].Quantity
		item.Revenue += records[i].Revenue
	}

	items := make([]SellerItem, 0, len(totals))
	for _, item := range totals {
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Quantity != items[j].Quantity {
			return items[i].Quantity > items[j].Quantity
		}
		return items[i].ProductName < items[j].ProductName
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return c.JSON(http.StatusOK, items)
}

// GetDashboardStats returns the aggregate figures shown on the dashboard
func GetDashboardStats(c echo.Context) error {
	log := logger.FromEcho(c)

	s := store.Active()
	products, err := s.Products()
	if err != nil {
		log.Error("Failed to retrieve products", zap.Error(err))
		return storageError(c, "Failed to build dashboard stats", err)
	}
	categories, err := s.Categories()
	if err != nil {
		log.Error("Failed to retrieve categories", zap.Error(err))
		return storageError(c, "Failed to build dashboard stats", err)
	}

	stats := DashboardStats{
		TotalProducts:   len(products),
		TotalCategories: len(categories),
	}
	for i := range products {
		p := &products[i]
		stats.TotalStock += p.Stock
		stats.TotalValue += p.Price * float64(p.Stock)
		stats.PotentialProfit += (p.Price - p.Cost) * float64(p.Stock)
		if p.LowStock() {
			stats.LowStockCount++
		}
	}
	return c.JSON(http.StatusOK, stats)
}
