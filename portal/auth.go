package portal

import (
	"context"
	"fmt"
	"net/http"

	"github.com/viant/signoff/model"
	"github.com/viant/signoff/service/credential"
)

type loginRequest struct {
	Password string `json:"password"`
	Username string `json:"username"`
}

// Login exchanges credentials and the anonymous session for an authenticated
// session.  When the portal keeps the session id across login (no Set-Cookie
// on the response) the anonymous token is promoted.
func (c *Client) Login(ctx context.Context, session *model.Session, credentials *credential.Credentials) (*model.Session, error) {
	if session == nil || session.Token == "" {
		return nil, fmt.Errorf("%w: %w", ErrAuthentication, ErrNoSession)
	}
	if err := credentials.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuthentication, err)
	}
	response, err := c.Do(ctx, &Request{
		Method:  http.MethodPost,
		Route:   RouteLogin,
		Path:    RouteLogin,
		Session: session,
		Body:    &loginRequest{Password: credentials.Password, Username: credentials.Username},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuthentication, err)
	}
	if len(response.Header.Values("Set-Cookie")) == 0 {
		return session.Authenticate("", ""), nil
	}
	name, token, err := c.sessionCookie(response.Header)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuthentication, err)
	}
	return session.Authenticate(name, token), nil
}
