package portal

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNoSession is returned when the portal does not hand out a usable session cookie.
	ErrNoSession = errors.New("portal: unable to get a session id")

	// ErrAuthentication is returned when the login exchange fails.
	ErrAuthentication = errors.New("portal: authentication failed")
)

const maxErrorBody = 2048

// APIError describes a non-2xx portal response.
type APIError struct {
	Method     string
	URL        string
	Route      string
	StatusCode int
	Status     string
	Body       []byte
	Header     http.Header
}

func (e *APIError) Error() string {
	body := e.Body
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return fmt.Sprintf("request %s %s failed: %s: %s", e.Method, e.URL, e.Status, body)
}

// StatusCodeOf returns the HTTP status code of an *APIError in err's chain, or 0.
func StatusCodeOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
