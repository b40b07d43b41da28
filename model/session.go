package model

// DefaultSessionCookie is the cookie name the portal uses for its session.
const DefaultSessionCookie = "PHPSESSID"

// Session represents a portal session.  A session starts anonymous and is
// superseded by an authenticated one after login.  It lives for a single run.
type Session struct {
	Name          string
	Token         string
	Authenticated bool
}

// Cookie returns the Cookie request header value for the session.
func (s *Session) Cookie() string {
	if s == nil || s.Token == "" {
		return ""
	}
	name := s.Name
	if name == "" {
		name = DefaultSessionCookie
	}
	return name + "=" + s.Token
}

// Authenticate returns an authenticated copy of the session using token.
// An empty token promotes the current one.
func (s *Session) Authenticate(name, token string) *Session {
	ret := &Session{Name: s.Name, Token: s.Token, Authenticated: true}
	if name != "" {
		ret.Name = name
	}
	if token != "" {
		ret.Token = token
	}
	return ret
}
