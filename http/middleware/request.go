package middleware

import (
	"net/http"

	"github.com/xy-planning-network/dispatch/http/req"
	"github.com/xy-planning-network/dispatch/http/resp"
)

// InjectRequest wraps the *http.Request in a *req.Request
// and stores it in *http.Request.Context under dispatch.RequestKey.
//
// InjectRequest belongs after InjectSession,
// so the *req.Request is backed by the request's session.
func InjectRequest() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h.ServeHTTP(w, req.Inject(r))
		})
	}
}

// TrackCommits wraps the http.ResponseWriter in a *resp.TrackingWriter,
// so every *resp.Response for the request shares one record of whether the response committed.
//
// TrackCommits belongs first in a chain.
func TrackCommits() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h.ServeHTTP(resp.Track(w), r)
		})
	}
}
