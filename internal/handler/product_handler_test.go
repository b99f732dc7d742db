package handler

import (
	"net/http"
	"testing"

	"github.com/invmanage/inventory-service/internal/model"
	"github.com/invmanage/inventory-service/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCategory(t *testing.T, s store.Store, name string) *model.Category {
	t.Helper()
	category, err := s.AddCategory(model.CategoryInput{Name: name})
	require.NoError(t, err)
	return category
}

func TestCreateProductAppliesDefaults(t *testing.T) {
	s := setupStore(t)
	category := seedCategory(t, s, "Electronics")

	rec := invoke(t, CreateProduct, http.MethodPost, "/api/products",
		`{"name":"Widget","sku":"W-1","price":10,"cost":5,"categoryId":"`+category.ID+`"}`, "", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var product model.Product
	decode(t, rec, &product)
	assert.Equal(t, 0, product.Stock)
	assert.Equal(t, 0, product.MinStock)
	assert.Equal(t, "W-1", product.SKU)
	require.NotNil(t, product.Category)
	assert.Equal(t, "Electronics", product.Category.Name)
}

func TestCreateProductMissingFields(t *testing.T) {
	setupStore(t)

	bodies := []string{
		`{}`,
		`{"name":"Widget"}`,
		`{"name":"Widget","sku":"W-1","price":10,"cost":5}`,
		`{"name":"Widget","sku":"W-1","cost":5,"categoryId":"x"}`,
	}
	for _, body := range bodies {
		rec := invoke(t, CreateProduct, http.MethodPost, "/api/products", body, "", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", body)
		assert.Equal(t, "Missing required fields: name, sku, price, cost, categoryId",
			errorMessage(t, rec))
	}
}

func TestCreateProductUnknownCategoryDoesNotPersist(t *testing.T) {
	s := setupStore(t)

	rec := invoke(t, CreateProduct, http.MethodPost, "/api/products",
		`{"name":"Widget","sku":"W-1","price":10,"cost":5,"categoryId":"`+model.NewID()+`"}`, "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Category does not exist", errorMessage(t, rec))

	products, err := s.Products()
	require.NoError(t, err)
	assert.Empty(t, products, "the rejected product must not be persisted")
}

func TestCreateProductDuplicateSKU(t *testing.T) {
	s := setupStore(t)
	category := seedCategory(t, s, "Electronics")

	rec := invoke(t, CreateProduct, http.MethodPost, "/api/products",
		`{"name":"A","sku":"SKU-1","price":1,"cost":1,"categoryId":"`+category.ID+`"}`, "", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Case-insensitive duplicate
	rec = invoke(t, CreateProduct, http.MethodPost, "/api/products",
		`{"name":"B","sku":"sku-1","price":1,"cost":1,"categoryId":"`+category.ID+`"}`, "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Product with this SKU already exists", errorMessage(t, rec))
}

func TestCreateProductCoercesStringNumbers(t *testing.T) {
	s := setupStore(t)
	category := seedCategory(t, s, "Electronics")

	rec := invoke(t, CreateProduct, http.MethodPost, "/api/products",
		`{"name":"Widget","sku":"W-1","price":"10.50","cost":"5","stock":"7","minStock":"2","categoryId":"`+category.ID+`"}`, "", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var product model.Product
	decode(t, rec, &product)
	assert.InDelta(t, 10.50, product.Price, 0.001)
	assert.InDelta(t, 5.0, product.Cost, 0.001)
	assert.Equal(t, 7, product.Stock)
	assert.Equal(t, 2, product.MinStock)
}

func TestGetProduct(t *testing.T) {
	s := setupStore(t)
	category := seedCategory(t, s, "Electronics")
	created, err := s.AddProduct(model.ProductInput{
		Name: "Widget", SKU: "W-1", Price: 10, Cost: 5, CategoryID: category.ID,
	})
	require.NoError(t, err)

	rec := invoke(t, GetProduct, http.MethodGet, "/api/products/x", "", "",
		map[string]string{"id": "nope"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid product ID", errorMessage(t, rec))

	rec = invoke(t, GetProduct, http.MethodGet, "/api/products/x", "", "",
		map[string]string{"id": model.NewID()})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found", errorMessage(t, rec))

	rec = invoke(t, GetProduct, http.MethodGet, "/api/products/x", "", "",
		map[string]string{"id": created.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	var product model.Product
	decode(t, rec, &product)
	assert.Equal(t, created.ID, product.ID)
	require.NotNil(t, product.Category)
	assert.Equal(t, category.ID, product.Category.ID)
}

func TestUpdateProductRevalidatesChangedSKU(t *testing.T) {
	s := setupStore(t)
	category := seedCategory(t, s, "Electronics")
	_, err := s.AddProduct(model.ProductInput{
		Name: "A", SKU: "SKU-1", Price: 1, Cost: 1, CategoryID: category.ID,
	})
	require.NoError(t, err)
	other, err := s.AddProduct(model.ProductInput{
		Name: "B", SKU: "SKU-2", Price: 1, Cost: 1, CategoryID: category.ID,
	})
	require.NoError(t, err)

	// Changing to a taken SKU is rejected
	rec := invoke(t, UpdateProduct, http.MethodPut, "/api/products/"+other.ID,
		`{"sku":"sku-1"}`, "", map[string]string{"id": other.ID})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Product with this SKU already exists", errorMessage(t, rec))

	// Re-submitting the product's own SKU is fine
	rec = invoke(t, UpdateProduct, http.MethodPut, "/api/products/"+other.ID,
		`{"sku":"SKU-2","price":3}`, "", map[string]string{"id": other.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	var product model.Product
	decode(t, rec, &product)
	assert.InDelta(t, 3.0, product.Price, 0.001)
}

func TestUpdateProductValidatesCategoryOnlyWhenPresent(t *testing.T) {
	s := setupStore(t)
	category := seedCategory(t, s, "Electronics")
	created, err := s.AddProduct(model.ProductInput{
		Name: "A", SKU: "SKU-1", Price: 1, Cost: 1, CategoryID: category.ID,
	})
	require.NoError(t, err)

	// No categoryId in the partial: no referential check
	rec := invoke(t, UpdateProduct, http.MethodPut, "/api/products/"+created.ID,
		`{"stock":9}`, "", map[string]string{"id": created.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = invoke(t, UpdateProduct, http.MethodPut, "/api/products/"+created.ID,
		`{"categoryId":"`+model.NewID()+`"}`, "", map[string]string{"id": created.ID})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Category does not exist", errorMessage(t, rec))
}

func TestUpdateProductRejectsNegativeStock(t *testing.T) {
	s := setupStore(t)
	category := seedCategory(t, s, "Electronics")
	created, err := s.AddProduct(model.ProductInput{
		Name: "A", SKU: "SKU-1", Price: 1, Cost: 1, Stock: 5, CategoryID: category.ID,
	})
	require.NoError(t, err)

	rec := invoke(t, UpdateProduct, http.MethodPut, "/api/products/"+created.ID,
		`{"stock":-1}`, "", map[string]string{"id": created.ID})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	got, err := s.ProductByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Stock)
}

func TestDeleteProduct(t *testing.T) {
	s := setupStore(t)
	category := seedCategory(t, s, "Electronics")
	created, err := s.AddProduct(model.ProductInput{
		Name: "A", SKU: "SKU-1", Price: 1, Cost: 1, CategoryID: category.ID,
	})
	require.NoError(t, err)

	rec := invoke(t, DeleteProduct, http.MethodDelete, "/api/products/"+created.ID,
		"", "", map[string]string{"id": created.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = invoke(t, DeleteProduct, http.MethodDelete, "/api/products/"+created.ID,
		"", "", map[string]string{"id": created.ID})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found", errorMessage(t, rec))
}
