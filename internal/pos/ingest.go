// Package pos parses point-of-sale CSV exports into aggregated daily
// sales records.
package pos

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/invmanage/inventory-service/internal/model"
)

// Header synonyms seen across POS exports, all matched case-insensitively.
var (
	dateColumns     = []string{"date", "sale_date", "sale date", "transaction date"}
	productColumns  = []string{"product", "product_name", "product name", "item", "item name", "name"}
	quantityColumns = []string{"quantity", "qty", "units"}
	revenueColumns  = []string{"revenue", "total", "amount", "sales"}
)

// Accepted input date layouts; output is always model.SaleDateFormat.
var dateLayouts = []string{model.SaleDateFormat, "01/02/2006", "2006/01/02"}

type columnIndex struct {
	date     int
	product  int
	quantity int
	revenue  int
}

// Parse reads a POS CSV export and aggregates it into one record per
// date and product: quantities and revenue for repeated lines are summed.
// Records are returned sorted by date, then product name.
func Parse(r io.Reader) ([]model.SaleRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty POS export")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	type key struct {
		date    string
		product string
	}
	totals := make(map[key]*model.SaleRecord)

	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		date, err := parseDate(row[cols.date])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		product := strings.TrimSpace(row[cols.product])
		if product == "" {
			return nil, fmt.Errorf("line %d: product name is empty", line)
		}
		quantity, err := strconv.Atoi(strings.TrimSpace(row[cols.quantity]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid quantity %q", line, row[cols.quantity])
		}
		revenue, err := strconv.ParseFloat(strings.TrimSpace(row[cols.revenue]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid revenue %q", line, row[cols.revenue])
		}

		k := key{date: date, product: product}
		if rec, ok := totals[k]; ok {
			rec.Quantity += quantity
			rec.Revenue += revenue
		} else {
			totals[k] = &model.SaleRecord{
				Date:        date,
				ProductName: product,
				Quantity:    quantity,
				Revenue:     revenue,
			}
		}
	}

	records := make([]model.SaleRecord, 0, len(totals))
	for _, rec := range totals {
		records = append(records, *rec)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date < records[j].Date
		}
		return records[i].ProductName < records[j].ProductName
	})
	return records, nil
}

// GroupByDate splits records into per-date buckets preserving order.
func GroupByDate(records []model.SaleRecord) map[string][]model.SaleRecord {
	grouped := make(map[string][]model.SaleRecord)
	for _, rec := range records {
		grouped[rec.Date] = append(grouped[rec.Date], rec)
	}
	return grouped
}

func mapColumns(header []string) (columnIndex, error) {
	cols := columnIndex{date: -1, product: -1, quantity: -1, revenue: -1}
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		switch {
		case cols.date < 0 && matches(name, dateColumns):
			cols.date = i
		case cols.product < 0 && matches(name, productColumns):
			cols.product = i
		case cols.quantity < 0 && matches(name, quantityColumns):
			cols.quantity = i
		case cols.revenue < 0 && matches(name, revenueColumns):
			cols.revenue = i
		}
	}
	switch {
	case cols.date < 0:
		return cols, fmt.Errorf("missing date column")
	case cols.product < 0:
		return cols, fmt.Errorf("missing product column")
	case cols.quantity < 0:
		return cols, fmt.Errorf("missing quantity column")
	case cols.revenue < 0:
		return cols, fmt.Errorf("missing revenue column")
	}
	return cols, nil
}

func matches(name string, candidates []string) bool {
	for _, c := range candidates {
		if name == c {
			return true
		}
	}
	return false
}

func parseDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(model.SaleDateFormat), nil
		}
	}
	return "", fmt.Errorf("invalid date %q", raw)
}
