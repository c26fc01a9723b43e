package utils

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrentAdmin reads the numeric admin id from the request header.
func CurrentAdmin(r *http.Request) (int64, error) {
	idStr := strings.TrimSpace(r.Header.Get(HEADER_ADMIN_ID))
	if idStr == "" {
		return 0, fmt.Errorf("missing %s header", HEADER_ADMIN_ID)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid admin id %q", idStr)
	}
	return id, nil
}

// IsAllowedAdmin checks the id against the configured allow-list.
func IsAllowedAdmin(id int64, allowList []int64) bool {
	for _, allowed := range allowList {
		if id == allowed {
			return true
		}
	}
	return false
}

// IsWorkbookFileName accepts the spreadsheet extensions the marketplace
// exports use.
func IsWorkbookFileName(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case EXT_XLSX, EXT_XLS:
		return true
	default:
		return false
	}
}

// ParseTaxRate parses the tax-rate form value and enforces the 0-100
// bound. An empty value falls back to the configured default; the engine
// itself never validates the range.
func ParseTaxRate(raw string, defaultRate float64) (decimal.Decimal, error) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if raw == "" {
		return decimal.NewFromFloat(defaultRate), nil
	}
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid tax rate %q", raw)
	}
	if rate.LessThan(decimal.NewFromInt(TAX_RATE_MIN)) || rate.GreaterThan(decimal.NewFromInt(TAX_RATE_MAX)) {
		return decimal.Zero, fmt.Errorf("tax rate %s is out of the 0-100 range", rate)
	}
	return rate, nil
}
