package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	invoicePrefix = "INV-"
	invoiceDigits = 3
)

// ErrInvalidInvoiceNumber is returned when the previous invoice number cannot be continued
var ErrInvalidInvoiceNumber = errors.New("invalid invoice number")

// NextInvoiceNumber returns the invoice number following last. An empty last
// starts the sequence at INV-001; numbers widen past INV-999.
func NextInvoiceNumber(last string) (string, error) {
	if last == "" {
		return FormatInvoiceNumber(1), nil
	}

	digits, ok := strings.CutPrefix(last, invoicePrefix)
	if !ok {
		return "", fmt.Errorf("%w %q: missing %s prefix", ErrInvalidInvoiceNumber, last, invoicePrefix)
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 {
		return "", fmt.Errorf("%w %q", ErrInvalidInvoiceNumber, last)
	}
	return FormatInvoiceNumber(n + 1), nil
}

// FormatInvoiceNumber renders n as INV-001
func FormatInvoiceNumber(n int) string {
	return fmt.Sprintf("%s%0*d", invoicePrefix, invoiceDigits, n)
}
