package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/invmanage/inventory-service/internal/model"
	"github.com/invmanage/inventory-service/internal/store"
	"github.com/invmanage/inventory-service/pkg/logger"
	"github.com/invmanage/inventory-service/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ProductRequest defines the structure for product creation/update
// requests. Numeric fields accept JSON numbers or numeric strings.
type ProductRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	SKU         *string    `json:"sku"`
	Price       *FlexFloat `json:"price"`
	Cost        *FlexFloat `json:"cost"`
	Stock       *FlexInt   `json:"stock"`
	MinStock    *FlexInt   `json:"minStock"`
	CategoryID  *string    `json:"categoryId"`
}

func updateLowStockGauge(s store.Store) {
	products, err := s.Products()
	if err != nil {
		return
	}
	low := 0
	for i := range products {
		if products[i].LowStock() {
			low++
		}
	}
	prometheus.LowStockGauge.Set(float64(low))
}

// ListProducts returns all products with their category inlined
func ListProducts(c echo.Context) error {
	log := logger.FromEcho(c)

	s := store.Active()
	if err := s.InitializeData(); err != nil {
		log.Error("Failed to initialize sample data", zap.Error(err))
		return storageError(c, "Failed to fetch products", err)
	}

	products, err := s.Products()
	if err != nil {
		log.Error("Failed to retrieve products", zap.Error(err))
		return storageError(c, "Failed to fetch products", err)
	}

	log.Info("Products retrieved successfully", zap.Int("count", len(products)))
	prometheus.ProductOperationsCounter.WithLabelValues("list").Inc()
	return c.JSON(http.StatusOK, products)
}

// GetProduct returns a single product by ID
func GetProduct(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")

	if !model.ValidID(id) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid product ID"})
	}

	product, err := store.Active().ProductByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
		}
		log.Error("Failed to retrieve product", zap.String("product_id", id), zap.Error(err))
		return storageError(c, "Failed to fetch product", err)
	}

	prometheus.ProductOperationsCounter.WithLabelValues("get").Inc()
	return c.JSON(http.StatusOK, product)
}

// CreateProduct adds a new product after validating its category and SKU
func CreateProduct(c echo.Context) error {
	log := logger.FromEcho(c)

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if req.Name == nil || strings.TrimSpace(*req.Name) == "" ||
		req.SKU == nil || strings.TrimSpace(*req.SKU) == "" ||
		req.Price == nil || req.Cost == nil ||
		req.CategoryID == nil || *req.CategoryID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Missing required fields: name, sku, price, cost, categoryId",
		})
	}

	s := store.Active()

	// The referenced category must exist at write time
	categories, err := s.Categories()
	if err != nil {
		log.Error("Failed to retrieve categories", zap.Error(err))
		return storageError(c, "Failed to create product", err)
	}
	categoryExists := false
	for i := range categories {
		if categories[i].ID == *req.CategoryID {
			categoryExists = true
			break
		}
	}
	if !categoryExists {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Category does not exist"})
	}

	// Duplicate SKUs are checked case-insensitively
	products, err := s.Products()
	if err != nil {
		log.Error("Failed to retrieve products", zap.Error(err))
		return storageError(c, "Failed to create product", err)
	}
	sku := strings.TrimSpace(*req.SKU)
	for i := range products {
		if strings.EqualFold(products[i].SKU, sku) {
			log.Warn("Product with this SKU already exists", zap.String("sku", sku))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Product with this SKU already exists"})
		}
	}

	in := model.ProductInput{
		Name:       strings.TrimSpace(*req.Name),
		SKU:        sku,
		Price:      float64(*req.Price),
		Cost:       float64(*req.Cost),
		CategoryID: *req.CategoryID,
	}
	if req.Description != nil {
		in.Description = strings.TrimSpace(*req.Description)
	}
	if req.Stock != nil {
		in.Stock = int(*req.Stock)
	}
	if req.MinStock != nil {
		in.MinStock = int(*req.MinStock)
	}

	product, err := s.AddProduct(in)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrConflict):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Product with this SKU already exists"})
		case errors.Is(err, store.ErrValidation):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		log.Error("Failed to create product", zap.String("name", in.Name), zap.Error(err))
		return storageError(c, "Failed to create product", err)
	}

	log.Info("Product created successfully",
		zap.String("product_id", product.ID),
		zap.String("sku", product.SKU))
	prometheus.ProductOperationsCounter.WithLabelValues("create").Inc()
	updateLowStockGauge(s)
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct updates an existing product, re-validating SKU uniqueness
// only when the SKU changes and category existence only when supplied
func UpdateProduct(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")

	if !model.ValidID(id) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid product ID"})
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("product_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	s := store.Active()
	existing, err := s.ProductByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
		}
		log.Error("Failed to retrieve product", zap.String("product_id", id), zap.Error(err))
		return storageError(c, "Failed to update product", err)
	}

	var upd model.ProductUpdate
	if req.SKU != nil {
		sku := strings.TrimSpace(*req.SKU)
		if !strings.EqualFold(sku, existing.SKU) {
			products, err := s.Products()
			if err != nil {
				log.Error("Failed to retrieve products", zap.Error(err))
				return storageError(c, "Failed to update product", err)
			}
			for i := range products {
				if products[i].ID != id && strings.EqualFold(products[i].SKU, sku) {
					return c.JSON(http.StatusBadRequest, echo.Map{"error": "Product with this SKU already exists"})
				}
			}
		}
		upd.SKU = &sku
	}
	if req.CategoryID != nil {
		categories, err := s.Categories()
		if err != nil {
			log.Error("Failed to retrieve categories", zap.Error(err))
			return storageError(c, "Failed to update product", err)
		}
		categoryExists := false
		for i := range categories {
			if categories[i].ID == *req.CategoryID {
				categoryExists = true
				break
			}
		}
		if !categoryExists {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Category does not exist"})
		}
		upd.CategoryID = req.CategoryID
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		upd.Name = &name
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		upd.Description = &description
	}
	if req.Price != nil {
		price := float64(*req.Price)
		upd.Price = &price
	}
	if req.Cost != nil {
		cost := float64(*req.Cost)
		upd.Cost = &cost
	}
	if req.Stock != nil {
		stock := int(*req.Stock)
		upd.Stock = &stock
	}
	if req.MinStock != nil {
		minStock := int(*req.MinStock)
		upd.MinStock = &minStock
	}

	product, err := s.UpdateProduct(id, upd)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
		case errors.Is(err, store.ErrConflict):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Product with this SKU already exists"})
		case errors.Is(err, store.ErrValidation):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		log.Error("Failed to update product", zap.String("product_id", id), zap.Error(err))
		return storageError(c, "Failed to update product", err)
	}

	log.Info("Product updated successfully", zap.String("product_id", id))
	prometheus.ProductOperationsCounter.WithLabelValues("update").Inc()
	updateLowStockGauge(s)
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct deletes a product; products carry no inbound references
func DeleteProduct(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")

	if !model.ValidID(id) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid product ID"})
	}

	s := store.Active()
	deleted, err := s.DeleteProduct(id)
	if err != nil {
		log.Error("Failed to delete product", zap.String("product_id", id), zap.Error(err))
		return storageError(c, "Failed to delete product", err)
	}
	if !deleted {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}

	log.Info("Product deleted successfully", zap.String("product_id", id))
	prometheus.ProductOperationsCounter.WithLabelValues("delete").Inc()
	updateLowStockGauge(s)
	return c.JSON(http.StatusOK, echo.Map{"message": "Product deleted successfully"})
}
