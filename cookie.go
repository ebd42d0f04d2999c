package sessiongate

import (
	"net/http"
	"time"
)

// Attributes carries the cookie metadata applied on writes. The Service
// fills every field from configuration and token expiry; stores must apply
// them verbatim.
type Attributes struct {
	Path     string
	Domain   string
	Expires  time.Time
	HttpOnly bool
	Secure   bool
	SameSite http.SameSite
}

// CookieStore is the narrow per-request contract the Service consumes. It
// exists so the core has no hidden dependency on an ambient request context
// and is trivially testable with a fake store.
type CookieStore interface {
	Get(name string) (string, bool)
	Set(name, value string, attrs Attributes)
	Delete(name string)
}

// HTTPStore adapts one HTTP request/response pair to the [CookieStore]
// contract. Construct one per request.
type HTTPStore struct {
	writer  http.ResponseWriter
	request *http.Request
}

// NewHTTPStore describes the newhttpstore operation and its observable behavior.
//
// NewHTTPStore does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewHTTPStore(w http.ResponseWriter, r *http.Request) *HTTPStore {
	return &HTTPStore{writer: w, request: r}
}

// Get returns the named cookie's value, reporting false when the cookie is
// absent or empty.
func (s *HTTPStore) Get(name string) (string, bool) {
	if s == nil || s.request == nil {
		return "", false
	}
	cookie, err := s.request.Cookie(name)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// Set issues the named cookie with the given attributes.
func (s *HTTPStore) Set(name, value string, attrs Attributes) {
	if s == nil || s.writer == nil {
		return
	}
	http.SetCookie(s.writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     attrs.Path,
		Domain:   attrs.Domain,
		Expires:  attrs.Expires,
		HttpOnly: attrs.HttpOnly,
		Secure:   attrs.Secure,
		SameSite: attrs.SameSite,
	})
}

// Delete expires the named cookie immediately. MaxAge -1 instructs the
// browser to discard it.
func (s *HTTPStore) Delete(name string) {
	if s == nil || s.writer == nil {
		return
	}
	http.SetCookie(s.writer, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
