package domain

import (
	"errors"
	"strings"
)

var (
	ErrNoData       = errors.New("no valid sleep records to analyze")
	ErrInvalidInput = errors.New("invalid input")
)

// MissingColumnsError rejects a whole tabular batch whose header lacks one or
// more required columns. It names exactly the missing ones, in schema order.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "missing required columns: " + strings.Join(e.Columns, ", ")
}
