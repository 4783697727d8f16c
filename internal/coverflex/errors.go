package coverflex

import (
	"errors"
	"fmt"
)

// Sentinel errors for token failures.
var (
	// ErrAuthMissing is returned when no token has ever been captured.
	ErrAuthMissing = errors.New("no authentication token available; visit the Coverflex activity page and import a token first")

	// ErrAuthExpired is returned when the API rejects the token. The store
	// is cleared before this is returned.
	ErrAuthExpired = errors.New("authentication expired; log in to Coverflex again and re-import the token")
)

// UpstreamError reports a non-auth failure of the primary operations
// endpoint when no compensating data was obtained elsewhere.
type UpstreamError struct {
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("coverflex API: %v", e.Err)
	}
	return fmt.Sprintf("coverflex API: unexpected status %d", e.StatusCode)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
