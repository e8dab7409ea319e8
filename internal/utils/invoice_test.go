package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextInvoiceNumber(t *testing.T) {
	tests := []struct {
		last string
		want string
	}{
		{"", "INV-001"},
		{"INV-001", "INV-002"},
		{"INV-009", "INV-010"},
		{"INV-999", "INV-1000"},
		{"INV-1000", "INV-1001"},
	}
	for _, tt := range tests {
		got, err := NextInvoiceNumber(tt.last)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "after %q", tt.last)
	}
}

func TestNextInvoiceNumber_Invalid(t *testing.T) {
	for _, last := range []string{"001", "INV-", "INV-abc", "INV--1"} {
		_, err := NextInvoiceNumber(last)
		assert.Error(t, err, last)
	}
}
