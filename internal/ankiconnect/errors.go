package ankiconnect

import (
	"errors"
	"fmt"
)

// ErrPartialFailure indicates AnkiConnect created fewer notes than submitted
var ErrPartialFailure = errors.New("some notes could not be created")

// APIError carries the error string returned by AnkiConnect
type APIError struct {
	Action  string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("AnkiConnect %s failed: %s", e.Action, e.Message)
}

// ServerError represents a 5xx error from the AnkiConnect endpoint
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("AnkiConnect server error: HTTP %d", e.StatusCode)
}
