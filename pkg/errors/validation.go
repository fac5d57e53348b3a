package errors

import "strings"

// Layout directions accepted across the CLI, HTTP server, and layout engine.
var validDirections = map[string]bool{
	"TB": true,
	"BT": true,
	"LR": true,
	"RL": true,
}

// ValidateDirection checks that a layout direction is one of TB, BT, LR, RL.
// The empty string is accepted and means "use the configured default".
func ValidateDirection(dir string) error {
	if dir == "" {
		return nil
	}
	if !validDirections[strings.ToUpper(dir)] {
		return New(ErrCodeInvalidDirection,
			"invalid direction %q: must be one of TB, BT, LR, RL", dir)
	}
	return nil
}

// NormalizeDirection upper-cases a direction and substitutes the fallback
// for the empty string. Callers should validate first.
func NormalizeDirection(dir, fallback string) string {
	if dir == "" {
		return fallback
	}
	return strings.ToUpper(dir)
}

// ValidateNonEmpty checks that a required string field is present.
func ValidateNonEmpty(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return New(ErrCodeInvalidInput, "%s must not be empty", field)
	}
	return nil
}

// ValidateSpacing checks that a spacing value is positive.
func ValidateSpacing(field string, value float64) error {
	if value <= 0 {
		return New(ErrCodeInvalidSpacing, "%s must be positive, got %v", field, value)
	}
	return nil
}

// ValidateColumns checks that a column count is at least one.
func ValidateColumns(columns int) error {
	if columns < 1 {
		return New(ErrCodeInvalidInput, "columns must be at least 1, got %d", columns)
	}
	return nil
}

// ValidateEdges checks an edge list for empty endpoints. Unknown node
// references are tolerated; the layout engine skips them.
func ValidateEdges(edges [][2]string) error {
	for i, e := range edges {
		if e[0] == "" || e[1] == "" {
			return New(ErrCodeInvalidEdge, "edge %d has an empty endpoint", i)
		}
	}
	return nil
}
