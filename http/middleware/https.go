package middleware

import (
	"net/http"
	"net/url"

	"github.com/xy-planning-network/dispatch"
)

// ForceHTTPS redirects HTTP requests to HTTPS whenever env requires secure cookies.
//
// The "X-Forwarded-Proto" is used to check whether HTTP was requested due to a dispatch application
// running behind a proxy.
func ForceHTTPS(env dispatch.Environment) Adapter {
	if !env.SecureCookies() {
		return NoopAdapter
	}

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
				handler.ServeHTTP(w, r)
				return
			}

			u := new(url.URL)
			*u = *r.URL
			u.Scheme = "https"
			u.Host = r.Host

			http.Redirect(w, r, u.String(), http.StatusPermanentRedirect)
		})
	}
}
