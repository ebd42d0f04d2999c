package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	sessiongate "github.com/davermont/sessiongate"
	"github.com/davermont/sessiongate/token"
)

type sessionContextKey struct{}

// SessionFromContext returns the payload injected by [RequireSession].
func SessionFromContext(ctx context.Context) (*token.Payload, bool) {
	payload, ok := ctx.Value(sessionContextKey{}).(*token.Payload)
	return payload, ok
}

// Option adjusts enforcement behavior for [RequireSession].
type Option func(*options)

type options struct {
	bypassPaths    map[string]struct{}
	bypassPrefixes []string
	loginURL       string
}

// BypassPaths exempts exact request paths from the session check, e.g.
// "/login" or "/healthz".
func BypassPaths(paths ...string) Option {
	return func(o *options) {
		for _, p := range paths {
			o.bypassPaths[p] = struct{}{}
		}
	}
}

// BypassPrefixes exempts path prefixes from the session check, typically
// static asset trees like "/static/".
func BypassPrefixes(prefixes ...string) Option {
	return func(o *options) {
		o.bypassPrefixes = append(o.bypassPrefixes, prefixes...)
	}
}

// RedirectTo replaces the default 401 response with a redirect to the given
// login URL.
func RedirectTo(url string) Option {
	return func(o *options) {
		o.loginURL = url
	}
}

// RequireSession guards a handler chain with [sessiongate.Service.GetSession].
// A nil payload means unauthenticated: 401 by default, or a redirect when
// [RedirectTo] is set. On success the payload is injected into the request
// context for [SessionFromContext].
func RequireSession(service *sessiongate.Service, opts ...Option) func(http.Handler) http.Handler {
	o := &options{bypassPaths: map[string]struct{}{}}
	for _, opt := range opts {
		opt(o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if o.bypassed(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			if service == nil {
				reject(w, r, o)
				return
			}

			ctx := sessiongate.WithClientIP(r.Context(), remoteIP(r))
			payload := service.GetSession(ctx, sessiongate.NewHTTPStore(w, r))
			if payload == nil {
				reject(w, r, o)
				return
			}

			ctx = context.WithValue(ctx, sessionContextKey{}, payload)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (o *options) bypassed(path string) bool {
	if _, ok := o.bypassPaths[path]; ok {
		return true
	}
	for _, prefix := range o.bypassPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func reject(w http.ResponseWriter, r *http.Request, o *options) {
	if o.loginURL != "" {
		http.Redirect(w, r, o.loginURL, http.StatusFound)
		return
	}
	http.Error(w, "unauthorized", http.StatusUnauthorized)
}

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
