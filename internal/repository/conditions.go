package repository

import (
	"fmt"
	"strings"
)

// conditions collects the WHERE clause of a listing query
type conditions struct {
	parts []string
	args  []any
}

// add appends a condition. format receives the placeholder index as its
// only operand, e.g. "status = $%d" or "(a = $%[1]d OR b = $%[1]d)".
func (c *conditions) add(format string, value any) {
	c.args = append(c.args, value)
	c.parts = append(c.parts, fmt.Sprintf(format, len(c.args)))
}

// eq adds "column = value" unless value is empty
func (c *conditions) eq(column, value string) {
	if value != "" {
		c.add(column+" = $%d", value)
	}
}

func (c *conditions) where() string {
	if len(c.parts) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.parts, " AND ")
}

// page renders LIMIT/OFFSET placeholders after the condition arguments
func (c *conditions) page(limit, offset int) (string, []any) {
	n := len(c.args)
	args := append(append([]any{}, c.args...), limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2), args
}
