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

// CategoryRequest defines the structure for category creation/update requests
type CategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func productCount(products []model.Product, categoryID string) int {
	count := 0
	for i := range products {
		if products[i].CategoryID == categoryID {
			count++
		}
	}
	return count
}

// ListCategories returns all categories with their product counts
func ListCategories(c echo.Context) error {
	log := logger.FromEcho(c)

	s := store.Active()
	if err := s.InitializeData(); err != nil {
		log.Error("Failed to initialize sample data", zap.Error(err))
		return storageError(c, "Failed to fetch categories", err)
	}

	categories, err := s.Categories()
	if err != nil {
		log.Error("Failed to retrieve categories", zap.Error(err))
		return storageError(c, "Failed to fetch categories", err)
	}
	products, err := s.Products()
	if err != nil {
		log.Error("Failed to retrieve products for counts", zap.Error(err))
		return storageError(c, "Failed to fetch categories", err)
	}

	result := make([]model.CategoryWithCount, 0, len(categories))
	for _, category := range categories {
		result = append(result, model.CategoryWithCount{
			Category: category,
			Count:    model.CategoryCount{Products: productCount(products, category.ID)},
		})
	}

	log.Info("Categories retrieved successfully", zap.Int("count", len(result)))
	prometheus.CategoryOperationsCounter.WithLabelValues("list").Inc()
	return c.JSON(http.StatusOK, result)
}

// GetCategory returns a single category with its product count
func GetCategory(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")

	if !model.ValidID(id) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid category ID"})
	}

	s := store.Active()
	category, err := s.CategoryByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Category not found"})
		}
		log.Error("Failed to retrieve category", zap.String("category_id", id), zap.Error(err))
		return storageError(c, "Failed to fetch category", err)
	}

	products, err := s.Products()
	if err != nil {
		log.Error("Failed to retrieve products for count", zap.Error(err))
		return storageError(c, "Failed to fetch category", err)
	}

	prometheus.CategoryOperationsCounter.WithLabelValues("get").Inc()
	return c.JSON(http.StatusOK, model.CategoryWithCount{
		Category: *category,
		Count:    model.CategoryCount{Products: productCount(products, id)},
	})
}

// CreateCategory adds a new category
func CreateCategory(c echo.Context) error {
	log := logger.FromEcho(c)

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	name := ""
	if req.Name != nil {
		name = strings.TrimSpace(*req.Name)
	}
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Category name is required"})
	}

	s := store.Active()

	// Duplicate names are checked case-insensitively
	categories, err := s.Categories()
	if err != nil {
		log.Error("Failed to retrieve categories", zap.Error(err))
		return storageError(c, "Failed to create category", err)
	}
	for i := range categories {
		if strings.EqualFold(categories[i].Name, name) {
			log.Warn("Category with this name already exists", zap.String("name", name))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Category with this name already exists"})
		}
	}

	description := ""
	if req.Description != nil {
		description = strings.TrimSpace(*req.Description)
	}

	category, err := s.AddCategory(model.CategoryInput{Name: name, Description: description})
	if err != nil {
		// The store-level uniqueness rule is the backstop for writes that
		// race past the pre-check above
		if errors.Is(err, store.ErrConflict) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Category with this name already exists"})
		}
		log.Error("Failed to create category", zap.String("name", name), zap.Error(err))
		return storageError(c, "Failed to create category", err)
	}

	log.Info("Category created successfully",
		zap.String("category_id", category.ID),
		zap.String("name", category.Name))
	prometheus.CategoryOperationsCounter.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, model.CategoryWithCount{
		Category: *category,
		Count:    model.CategoryCount{Products: 0},
	})
}

// UpdateCategory updates an existing category
func UpdateCategory(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")

	if !model.ValidID(id) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid category ID"})
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("category_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	s := store.Active()
	categories, err := s.Categories()
	if err != nil {
		log.Error("Failed to retrieve categories", zap.Error(err))
		return storageError(c, "Failed to update category", err)
	}

	found := false
	for i := range categories {
		if categories[i].ID == id {
			found = true
			break
		}
	}
	if !found {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Category not found"})
	}

	var upd model.CategoryUpdate
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Category name cannot be empty"})
		}
		for i := range categories {
			if categories[i].ID != id && strings.EqualFold(categories[i].Name, name) {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "Category with this name already exists"})
			}
		}
		upd.Name = &name
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		upd.Description = &description
	}

	category, err := s.UpdateCategory(id, upd)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Category not found"})
		}
		if errors.Is(err, store.ErrConflict) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Category with this name already exists"})
		}
		log.Error("Failed to update category", zap.String("category_id", id), zap.Error(err))
		return storageError(c, "Failed to update category", err)
	}

	products, err := s.Products()
	if err != nil {
		log.Error("Failed to retrieve products for count", zap.Error(err))
		return storageError(c, "Failed to update category", err)
	}

	log.Info("Category updated successfully",
		zap.String("category_id", id),
		zap.String("name", category.Name))
	prometheus.CategoryOperationsCounter.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, model.CategoryWithCount{
		Category: *category,
		Count:    model.CategoryCount{Products: productCount(products, id)},
	})
}

// DeleteCategory deletes a category unless products still reference it
func DeleteCategory(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")

	if !model.ValidID(id) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid category ID"})
	}

	s := store.Active()
	products, err := s.Products()
	if err != nil {
		log.Error("Failed to retrieve products", zap.Error(err))
		return storageError(c, "Failed to delete category", err)
	}
	if productCount(products, id) > 0 {
		log.Warn("Cannot delete category that is being used by products",
			zap.String("category_id", id))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Cannot delete category with existing products. Please reassign or delete the products first.",
		})
	}

	deleted, err := s.DeleteCategory(id)
	if err != nil {
		log.Error("Failed to delete category", zap.String("category_id", id), zap.Error(err))
		return storageError(c, "Failed to delete category", err)
	}
	if !deleted {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Category not found"})
	}

	log.Info("Category deleted successfully", zap.String("category_id", id))
	prometheus.CategoryOperationsCounter.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, echo.Map{"message": "Category deleted successfully"})
}
