package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/invmanage/inventory-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const salesCSV = `date,product,quantity,revenue
2025-03-01,Widget,2,20.00
2025-03-01,Gizmo,1,5.50
2025-03-02,Widget,4,40.00
`

func TestUploadSalesRawBody(t *testing.T) {
	s := setupStore(t)

	rec := invoke(t, UploadSales, http.MethodPost, "/api/pos/sales", salesCSV, "text/csv", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Message string         `json:"message"`
		Records int            `json:"records"`
		Dates   map[string]int `json:"dates"`
	}
	decode(t, rec, &resp)
	assert.Equal(t, "Sales data uploaded successfully", resp.Message)
	assert.Equal(t, 3, resp.Records)
	assert.Equal(t, map[string]int{"2025-03-01": 2, "2025-03-02": 1}, resp.Dates)

	stored, err := s.Sales()
	require.NoError(t, err)
	assert.Len(t, stored, 3)
}

func TestUploadSalesMultipart(t *testing.T) {
	s := setupStore(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "export.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(salesCSV))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	rec := invoke(t, UploadSales, http.MethodPost, "/api/pos/sales",
		buf.String(), w.FormDataContentType(), nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	stored, err := s.Sales()
	require.NoError(t, err)
	assert.Len(t, stored, 3)
}

func TestUploadSalesReplacesSameDay(t *testing.T) {
	s := setupStore(t)

	rec := invoke(t, UploadSales, http.MethodPost, "/api/pos/sales", salesCSV, "text/csv", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	// The corrected export for March 1st has a single line; March 2nd
	// is untouched because the upload does not mention it.
	corrected := `date,product,quantity,revenue
2025-03-01,Widget,9,90.00
`
	rec = invoke(t, UploadSales, http.MethodPost, "/api/pos/sales", corrected, "text/csv", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	day1, err := s.SalesByDate("2025-03-01")
	require.NoError(t, err)
	require.Len(t, day1, 1)
	assert.Equal(t, 9, day1[0].Quantity)

	day2, err := s.SalesByDate("2025-03-02")
	require.NoError(t, err)
	assert.Len(t, day2, 1)
}

func TestUploadSalesRejectsBadExports(t *testing.T) {
	setupStore(t)

	rec := invoke(t, UploadSales, http.MethodPost, "/api/pos/sales",
		"not,a,pos\nexport,at,all\n", "text/csv", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorMessage(t, rec), "Invalid POS export:")
}

func TestListSalesByDate(t *testing.T) {
	s := setupStore(t)
	require.NoError(t, s.ReplaceDaySales("2025-03-01", []model.SaleRecord{
		{Date: "2025-03-01", ProductName: "Widget", Quantity: 2, Revenue: 20},
	}))

	rec := invoke(t, ListSales, http.MethodGet, "/api/pos/sales?date=2025-03-01", "", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var records []model.SaleRecord
	decode(t, rec, &records)
	require.Len(t, records, 1)
	assert.Equal(t, "Widget", records[0].ProductName)

	rec = invoke(t, ListSales, http.MethodGet, "/api/pos/sales?date=2025-03-09", "", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &records)
	assert.Empty(t, records)

	rec = invoke(t, ListSales, http.MethodGet, "/api/pos/sales?date=03/01/2025", "", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid date, expected YYYY-MM-DD", errorMessage(t, rec))
}
