// Package catalog defines the vocabulary shared by the product catalog layers.
package catalog

import (
	"fmt"
	"strings"
)

// Category classifies a product. Categories are stored and serialized by name.
type Category string

const (
	CategoryUnknown    Category = "UNKNOWN"
	CategoryCloths     Category = "CLOTHS"
	CategoryFood       Category = "FOOD"
	CategoryHousewares Category = "HOUSEWARES"
	CategoryAutomotive Category = "AUTOMOTIVE"
	CategoryTools      Category = "TOOLS"
)

// Categories returns all recognized categories in declaration order.
func Categories() []Category {
	return []Category{
		CategoryUnknown,
		CategoryCloths,
		CategoryFood,
		CategoryHousewares,
		CategoryAutomotive,
		CategoryTools,
	}
}

// ParseCategory resolves a category by name, case-insensitively.
// The empty string resolves to CategoryUnknown; any other unrecognized
// value is an error.
func ParseCategory(s string) (Category, error) {
	if s == "" {
		return CategoryUnknown, nil
	}
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Categories() {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category: %q", s)
}

// ParseBool interprets the textual boolean forms accepted on query parameters.
// It is deliberately wider than strconv.ParseBool to match what web clients send.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "yes", "y", "1", "on":
		return true, nil
	case "false", "f", "no", "n", "0", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean value: %q", s)
}
