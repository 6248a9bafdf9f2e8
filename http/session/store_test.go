package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/dispatch"
	"github.com/xy-planning-network/dispatch/http/session"
)

func TestNewStoreService(t *testing.T) {
	notHex := "ðŸ˜…"
	hex := "ABCD"

	tcs := []struct {
		name string
		cfg  session.Config
	}{
		{"bad-env", session.Config{Env: "nope", SessionName: "test", AuthKey: hex, EncryptKey: hex}},
		{"no-name", session.Config{Env: dispatch.Testing, AuthKey: hex, EncryptKey: hex}},
		{"bad-auth", session.Config{Env: dispatch.Testing, SessionName: "test", AuthKey: notHex, EncryptKey: hex}},
		{"bad-encrypt", session.Config{Env: dispatch.Testing, SessionName: "test", AuthKey: hex, EncryptKey: notHex}},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			svc, err := session.NewStoreService(tc.cfg)

			// Assert
			require.ErrorIs(t, err, dispatch.ErrBadConfig)
			require.Zero(t, svc)
		})
	}

	// Arrange
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	cfg := session.Config{Env: dispatch.Testing, SessionName: "test", AuthKey: hex, EncryptKey: hex}

	// Act
	svc, err := session.NewStoreService(cfg, session.WithMaxAge(60))

	// Assert
	require.Nil(t, err)
	require.NotZero(t, svc)
	require.NotPanics(t, func() { svc.GetSession(r) })
}

func TestStubStore(t *testing.T) {
	// Arrange
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	// Act
	s, err := session.NewStubStore(true).GetSession(r)

	// Assert
	require.Nil(t, err)
	id, err := s.UserID()
	require.Nil(t, err)
	require.Equal(t, uint(1), id)
	require.Nil(t, s.Save(httptest.NewRecorder(), r))

	// Act
	s, err = session.NewStubStore(false).GetSession(r)

	// Assert
	require.Nil(t, err)
	_, err = s.UserID()
	require.ErrorIs(t, err, session.ErrNoUser)
}
