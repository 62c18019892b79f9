package api

import "fmt"

// Error is the failure shape of the CollegeOps API: any non-2xx status
// with a JSON body carrying a human-readable message. When the body is
// missing or unparseable the Message falls back to a generic string.
type Error struct {
	Status  int    // HTTP status code
	Message string // Server-provided message, or a generic fallback
}

func (e *Error) Error() string {
	message := e.Message
	if message == "" {
		message = "request failed"
	}
	return fmt.Sprintf("api: %s (status %d)", message, e.Status)
}
