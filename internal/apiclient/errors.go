package apiclient

import "fmt"

// APIError represents a transport failure or a non-2xx response.
type APIError struct {
	Method     string
	Path       string
	StatusCode int // 0 for transport failures
	Message    string
	Cause      error
}

func (e *APIError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("api error: %s %s: %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("api error: %s %s: status %d", e.Method, e.Path, e.StatusCode)
	case e.Cause != nil:
		return fmt.Sprintf("api error: %s %s: %s: %v", e.Method, e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("api error: %s %s: %s", e.Method, e.Path, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// Unauthorized reports whether the server rejected the token or credentials.
func (e *APIError) Unauthorized() bool {
	return e.StatusCode == 401
}
