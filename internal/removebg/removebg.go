// Package removebg is the adapter for the remove.bg background-removal API.
// The service treats it as an opaque call: image bytes in, image bytes with
// a transparent background out, or a structured error.
package removebg

import "context"

// Remover strips the background from an image. Implementations must be safe
// for concurrent use.
type Remover interface {
	Remove(ctx context.Context, image []byte) ([]byte, error)
}

// genericErrorTitle is surfaced when the API reports a failure without a
// usable error list.
const genericErrorTitle = "An unexpected error occurred."

// ErrorDetail is one entry of the remove.bg error response body.
type ErrorDetail struct {
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
	Code   string `json:"code,omitempty"`
}

// Error is a structured failure reported by the remove.bg API. Title of the
// first entry is the user-facing reason; Errors carries the full detail for
// diagnostics.
type Error struct {
	StatusCode int
	Errors     []ErrorDetail
}

// Title returns the first reported error title, or a generic fallback.
func (e *Error) Title() string {
	if len(e.Errors) > 0 && e.Errors[0].Title != "" {
		return e.Errors[0].Title
	}
	return genericErrorTitle
}

func (e *Error) Error() string {
	return "remove.bg: " + e.Title()
}
