// Package validation rejects bad admin input at the boundary, before any
// mutation is applied. Failures carry per-field messages.
package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Error aggregates field-specific validation messages.
type Error struct {
	Fields map[string]string
}

// Error formats the field messages deterministically, sorted by field name.
func (e *Error) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return strings.Join(parts, "; ")
}

// ParseDate parses a calendar day in YYYY-MM-DD format.
func ParseDate(str string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", str)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
	}
	return date.UTC(), nil
}
