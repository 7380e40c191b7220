package services

import "errors"

// Service-level error kinds. Handlers map these to HTTP status codes and
// stable error codes; anything else is treated as a persistence failure and
// never shown to the caller verbatim.
var (
	ErrNotFound        = errors.New("item not found")
	ErrReportNotFound  = errors.New("report not found")
	ErrInvalidItemKind = errors.New("invalid item kind")
	ErrInvalidState    = errors.New("action not allowed in current report status")
	ErrConflict        = errors.New("report was resolved concurrently")
	ErrValidation      = errors.New("invalid request")
)
