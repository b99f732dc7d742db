package handler

import (
	"net/http"
	"testing"

	"github.com/invmanage/inventory-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLowStockReport(t *testing.T) {
	s := setupStore(t)
	category := seedCategory(t, s, "Electronics")

	_, err := s.AddProduct(model.ProductInput{
		Name: "Low", SKU: "L-1", Price: 10, Cost: 5,
		Stock: 2, MinStock: 5, CategoryID: category.ID,
	})
	require.NoError(t, err)
	_, err = s.AddProduct(model.ProductInput{
		Name: "AtThreshold", SKU: "A-1", Price: 10, Cost: 5,
		Stock: 5, MinStock: 5, CategoryID: category.ID,
	})
	require.NoError(t, err)
	_, err = s.AddProduct(model.ProductInput{
		Name: "Healthy", SKU: "H-1", Price: 10, Cost: 5,
		Stock: 50, MinStock: 5, CategoryID: category.ID,
	})
	require.NoError(t, err)

	rec := invoke(t, LowStockReport, http.MethodGet, "/api/reports/low-stock", "", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []LowStockItem
	decode(t, rec, &items)
	require.Len(t, items, 2, "stock at or below minStock is low")

	names := []string{items[0].Name, items[1].Name}
	assert.Contains(t, names, "Low")
	assert.Contains(t, names, "AtThreshold")
}

func TestRestockReport(t *testing.T) {
	s := setupStore(t)
	category := seedCategory(t, s, "Electronics")

	// 1.5 * minStock of 10 is 15, so stock 15 is included, 16 is not
	_, err := s.AddProduct(model.ProductInput{
		Name: "Near", SKU: "N-1", Price: 10, Cost: 5,
		Stock: 15, MinStock: 10, CategoryID: category.ID,
	})
	require.NoError(t, err)
	_, err = s.AddProduct(model.ProductInput{
		Name: "Fine", SKU: "F-1", Price: 10, Cost: 5,
		Stock: 16, MinStock: 10, CategoryID: category.ID,
	})
	require.NoError(t, err)
	_, err = s.AddProduct(model.ProductInput{
		Name: "Tiny", SKU: "T-1", Price: 10, Cost: 5,
		Stock: 0, MinStock: 2, CategoryID: category.ID,
	})
	require.NoError(t, err)

	rec := invoke(t, RestockReport, http.MethodGet, "/api/reports/restock", "", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []RestockItem
	decode(t, rec, &items)
	require.Len(t, items, 2)

	byName := map[string]RestockItem{}
	for _, item := range items {
		byName[item.Name] = item
	}

	near := byName["Near"]
	assert.Equal(t, 20, near.Recommended, "2x minStock")
	assert.Equal(t, 0, near.Needed, "stock already above minStock")

	tiny := byName["Tiny"]
	assert.Equal(t, 10, tiny.Recommended, "floor of 10 units")
	assert.Equal(t, 2, tiny.Needed)
}

func TestTopSelling(t *testing.T) {
	s := setupStore(t)
	require.NoError(t, s.ReplaceDaySales("2025-03-01", []model.SaleRecord{
		{Date: "2025-03-01", ProductName: "Widget", Quantity: 3, Revenue: 30},
		{Date: "2025-03-01", ProductName: "Gizmo", Quantity: 5, Revenue: 25},
		{Date: "2025-03-01", ProductName: "Gadget", Quantity: 1, Revenue: 100},
	}))
	require.NoError(t, s.ReplaceDaySales("2025-03-02", []model.SaleRecord{
		{Date: "2025-03-02", ProductName: "Widget", Quantity: 4, Revenue: 40},
	}))

	rec := invoke(t, TopSelling, http.MethodGet, "/api/reports/top-selling", "", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []SellerItem
	decode(t, rec, &items)
	require.Len(t, items, 3)

	assert.Equal(t, "Widget", items[0].ProductName, "quantities are summed across days")
	assert.Equal(t, 7, items[0].Quantity)
	assert.InDelta(t, 70.0, items[0].Revenue, 0.001)
	assert.Equal(t, "Gizmo", items[1].ProductName)
	assert.Equal(t, "Gadget", items[2].ProductName)

	rec = invoke(t, TopSelling, http.MethodGet, "/api/reports/top-selling?limit=1", "", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &items)
	require.Len(t, items, 1)
	assert.Equal(t, "Widget", items[0].ProductName)

	rec = invoke(t, TopSelling, http.MethodGet, "/api/reports/top-selling?limit=zero", "", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid limit", errorMessage(t, rec))
}

func TestGetDashboardStats(t *testing.T) {
	s := setupStore(t)
	electronics := seedCategory(t, s, "Electronics")
	seedCategory(t, s, "Furniture")

	_, err := s.AddProduct(model.ProductInput{
		Name: "Laptop", SKU: "L-1", Price: 1000, Cost: 700,
		Stock: 3, MinStock: 1, CategoryID: electronics.ID,
	})
	require.NoError(t, err)
	_, err = s.AddProduct(model.ProductInput{
		Name: "Mouse", SKU: "M-1", Price: 20, Cost: 8,
		Stock: 2, MinStock: 5, CategoryID: electronics.ID,
	})
	require.NoError(t, err)

	rec := invoke(t, GetDashboardStats, http.MethodGet, "/api/dashboard/stats", "", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats DashboardStats
	decode(t, rec, &stats)
	assert.Equal(t, 2, stats.TotalProducts)
	assert.Equal(t, 5, stats.TotalStock)
	assert.InDelta(t, 3040.0, stats.TotalValue, 0.001, "1000*3 + 20*2")
	assert.InDelta(t, 924.0, stats.PotentialProfit, 0.001, "300*3 + 12*2")
	assert.Equal(t, 1, stats.LowStockCount, "only the mouse is at or below minStock")
	assert.Equal(t, 2, stats.TotalCategories)
}
