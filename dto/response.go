package dto

import (
	"errors"
	"fmt"
)

// Error kinds
var (
	ErrNotFound          = errors.New("not found")
	ErrParse             = errors.New("parse error")
	ErrMissingField      = errors.New("missing field")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrNothingToDo       = errors.New("no report or template found")
)

// ReportError is returned by the report parser. Kind is ErrMissingField or
// ErrInvalidAmount, Err is the underlying cause.
type ReportError struct {
	Kind  error
	Field FieldKind
	Err   error
}

func (e *ReportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v (%s): %v", e.Kind, e.Field, e.Err)
	}
	return fmt.Sprintf("%v (%s)", e.Kind, e.Field)
}

func (e *ReportError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
	Field   string `json:"field,omitempty"`
}

// PlaceholdersResponse is returned by the placeholders endpoint.
type PlaceholdersResponse struct {
	Period       Period         `json:"period"`
	Placeholders PlaceholderMap `json:"placeholders"`
	ProcessedAt  string         `json:"processed_at"`
}
