package service

import (
	"regexp"
	"slices"
	"strings"
	"time"
)

var (
	emailPattern        = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	paymentMonthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
)

// ValidationError carries per-field validation messages
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return "validation failed: " + strings.Join(keys, ", ")
}

// fieldErrors accumulates messages keyed by JSON field name
type fieldErrors map[string][]string

func (f fieldErrors) add(field, msg string) {
	f[field] = append(f[field], msg)
}

func (f fieldErrors) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		f.add(field, field+" is required")
	}
}

// oneOf rejects a non-empty value outside allowed
func (f fieldErrors) oneOf(field, value string, allowed []string) {
	if value != "" && !slices.Contains(allowed, value) {
		f.add(field, field+" must be one of "+strings.Join(allowed, ", "))
	}
}

// date parses a YYYY-MM-DD or RFC 3339 value, recording a message on failure
func (f fieldErrors) date(field, value string, loc *time.Location) time.Time {
	t, _, err := parseDate(value, loc)
	if err != nil {
		f.add(field, field+" must be a date")
	}
	return t
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}
