package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/invmanage/inventory-service/pkg/config"
	"github.com/labstack/echo/v4"
)

var devMode bool

// Init configures handler behavior from application configuration.
// In development mode storage error detail is included in 500 bodies.
func Init(cfg *config.Config) {
	devMode = cfg.IsDevelopment()
}

// storageError maps an unhandled storage failure to a generic 500,
// exposing the underlying message only in development
func storageError(c echo.Context, msg string, err error) error {
	body := echo.Map{"error": msg}
	if devMode && err != nil {
		body["message"] = err.Error()
	}
	return c.JSON(http.StatusInternalServerError, body)
}

// FlexFloat accepts a JSON number or a numeric string. POS clients and
// HTML forms send prices both ways; coercion happens here, at the
// request boundary.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", s)
		}
		*f = FlexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = FlexFloat(v)
	return nil
}

// FlexInt accepts a JSON number or a numeric string; fractional input
// is truncated toward zero.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("invalid integer %q", s)
		}
		*f = FlexInt(int(v))
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = FlexInt(int(v))
	return nil
}
