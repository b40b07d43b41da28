package portal

import (
	"net/http"

	"github.com/viant/signoff/model"
)

// HeaderField is a single entry of the identity template.
type HeaderField struct {
	Name  string
	Value string
	// Navigation marks headers sent only once a session exists (Origin, Referer).
	Navigation bool
}

// Identity is the ordered browser fingerprint sent with every request.  It is
// immutable once built.
type Identity struct {
	fields []HeaderField
}

// NewIdentity builds the identity template for the configured portal.
func NewIdentity(config *Config) *Identity {
	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	origin := config.baseURL()
	return &Identity{fields: []HeaderField{
		{Name: "Accept", Value: "application/json, text/plain, */*"},
		{Name: "Accept-Language", Value: "en-US,en;q=0.9"},
		{Name: "Connection", Value: "keep-alive"},
		{Name: "DNT", Value: "1"},
		{Name: "Origin", Value: origin, Navigation: true},
		{Name: "Referer", Value: origin + config.RefererPath, Navigation: true},
		{Name: "Sec-Fetch-Dest", Value: "empty"},
		{Name: "Sec-Fetch-Mode", Value: "cors"},
		{Name: "Sec-Fetch-Site", Value: "same-origin"},
		{Name: "User-Agent", Value: userAgent},
		{Name: "sec-ch-ua", Value: `"Chromium";v="113", "Not-A.Brand";v="24"`},
		{Name: "sec-ch-ua-mobile", Value: "?0"},
		{Name: "sec-ch-ua-platform", Value: `"macOS"`},
	}}
}

// Fields returns a copy of the template.
func (i *Identity) Fields() []HeaderField {
	return append([]HeaderField(nil), i.fields...)
}

// Header returns a new header set for one request.  Without a session the
// navigation headers and the cookie are omitted.
func (i *Identity) Header(session *model.Session) http.Header {
	ret := make(http.Header, len(i.fields)+1)
	for _, field := range i.fields {
		if field.Navigation && session == nil {
			continue
		}
		ret[field.Name] = []string{field.Value}
	}
	if cookie := session.Cookie(); cookie != "" {
		ret.Set("Cookie", cookie)
	}
	return ret
}
