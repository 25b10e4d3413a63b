package utils

import (
	"errors"
	"regexp"
	"unicode/utf8"
)

// Export formats served by the download endpoint.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Sort orders accepted by the dashboard grid.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

var (
	// Control characters never appear in a real column header
	controlPattern = regexp.MustCompile(`[\x00-\x1f\x7f]`)
)

// ValidateExportFormat validates the requested download format
func ValidateExportFormat(format string) error {
	switch format {
	case FormatCSV, FormatXLSX:
		return nil
	case "":
		return errors.New("format cannot be empty")
	default:
		return errors.New("unsupported format (use csv or xlsx)")
	}
}

// ValidateSortOrder validates the order query parameter. Empty means ascending.
func ValidateSortOrder(order string) error {
	switch order {
	case "", OrderAsc, OrderDesc:
		return nil
	default:
		return errors.New("order must be asc or desc")
	}
}

// ValidateColumnName validates a column name taken from a query string
func ValidateColumnName(name string) error {
	// Empty means "no column"
	if name == "" {
		return nil
	}

	if !utf8.ValidString(name) {
		return errors.New("column name is not valid UTF-8")
	}

	if utf8.RuneCountInString(name) > 200 {
		return errors.New("column name too long (max 200 characters)")
	}

	if controlPattern.MatchString(name) {
		return errors.New("column name contains invalid characters")
	}

	return nil
}

// ValidateSortParams validates a complete set of grid sort parameters
func ValidateSortParams(column, order string) map[string][]string {
	fieldErrors := make(map[string][]string)

	if err := ValidateColumnName(column); err != nil {
		fieldErrors["sort"] = append(fieldErrors["sort"], err.Error())
	}

	if err := ValidateSortOrder(order); err != nil {
		fieldErrors["order"] = append(fieldErrors["order"], err.Error())
	}

	return fieldErrors
}
