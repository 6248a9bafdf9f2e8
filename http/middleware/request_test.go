package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/dispatch/http/middleware"
	"github.com/xy-planning-network/dispatch/http/req"
	"github.com/xy-planning-network/dispatch/http/resp"
	"github.com/xy-planning-network/dispatch/http/session"
)

func TestInjectRequest(t *testing.T) {
	// Arrange
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	r.Header.Set("Accept", "application/json")

	var called bool

	// Act
	middleware.InjectRequest()(http.HandlerFunc(func(wx http.ResponseWriter, rx *http.Request) {
		called = true
		rq, err := req.FromContext(rx.Context())
		require.Nil(t, err)
		require.True(t, rq.IsJSON())
		require.Nil(t, rq.Session())
	})).ServeHTTP(w, r)

	// Assert
	require.True(t, called)

	// Arrange
	w = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodGet, "https://example.com", nil)

	// Act
	middleware.Chain(
		http.HandlerFunc(func(wx http.ResponseWriter, rx *http.Request) {
			rq, err := req.FromContext(rx.Context())
			require.Nil(t, err)
			require.NotNil(t, rq.Session())
		}),
		middleware.InjectSession(session.NewStubStore(false), nil),
		middleware.InjectRequest(),
	).ServeHTTP(w, r)
}

func TestTrackCommits(t *testing.T) {
	// Arrange
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	d := resp.NewResponder()

	// Act
	middleware.TrackCommits()(http.HandlerFunc(func(wx http.ResponseWriter, rx *http.Request) {
		tw, ok := wx.(*resp.TrackingWriter)
		require.True(t, ok)
		require.False(t, tw.Committed())

		require.Same(t, d.Respond(wx, rx), d.Respond(wx, rx))
		wx.WriteHeader(http.StatusTeapot)
		require.True(t, d.Respond(wx, rx).IsCommitted())
	})).ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusTeapot, w.Code)
}
