package takeoff

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingColumns = errors.New("missing required columns")
	ErrEmptyData      = errors.New("no usable data rows")
)

// MissingColumnsError lists every required column the header did not provide.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingColumns.Error(), strings.Join(e.Columns, ", "))
}

func (e *MissingColumnsError) Unwrap() error {
	return ErrMissingColumns
}

// Non-fatal condition kinds reported alongside an import.
const (
	WarnOrphanChildPromoted = "OrphanChildPromoted"
	WarnUnresolvedPricing   = "UnresolvedPricing"
)

type Warning struct {
	Kind       string `json:"kind"`
	ItemNumber string `json:"item_number,omitempty"`
	Mark       string `json:"mark,omitempty"`
	Size       string `json:"size,omitempty"`
	Message    string `json:"message"`
}

// DroppedCode is a labor code no table recognised. No operation is emitted for it.
type DroppedCode struct {
	Column string `json:"column"`
	Code   string `json:"code"`
	Line   int    `json:"line"`
}
