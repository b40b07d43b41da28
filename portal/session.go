package portal

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/viant/signoff/model"
)

// ParseSessionCookie extracts the cookie name and the token from a Set-Cookie
// value.  The token is the text after the first '=' and before the first ';'.
func ParseSessionCookie(value string) (name, token string, err error) {
	name, rest, ok := strings.Cut(value, "=")
	if !ok {
		return "", "", fmt.Errorf("%w: malformed cookie %q", ErrNoSession, value)
	}
	token, _, _ = strings.Cut(rest, ";")
	if token = strings.TrimSpace(token); token == "" {
		return "", "", fmt.Errorf("%w: empty cookie value", ErrNoSession)
	}
	return strings.TrimSpace(name), token, nil
}

// sessionCookie picks the session cookie from the Set-Cookie headers, preferring the configured name.
func (c *Client) sessionCookie(header http.Header) (name, token string, err error) {
	values := header.Values("Set-Cookie")
	if len(values) == 0 {
		return "", "", fmt.Errorf("%w: no Set-Cookie header", ErrNoSession)
	}
	preferred := c.config.sessionCookie()
	for _, value := range values {
		if name, token, err = ParseSessionCookie(value); err == nil && name == preferred {
			return name, token, nil
		}
	}
	return ParseSessionCookie(values[0])
}

// Bootstrap obtains an anonymous session from the unauthenticated current client endpoint.
func (c *Client) Bootstrap(ctx context.Context) (*model.Session, error) {
	response, err := c.Do(ctx, &Request{Method: http.MethodGet, Route: RouteCurrentClient, Path: RouteCurrentClient})
	if err != nil {
		return nil, err
	}
	name, token, err := c.sessionCookie(response.Header)
	if err != nil {
		return nil, fmt.Errorf("%w (response: %s)", err, excerpt(response.Body))
	}
	return &model.Session{Name: name, Token: token}, nil
}

func excerpt(body []byte) string {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return string(body)
}
