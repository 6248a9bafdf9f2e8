package ranger_test

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/dispatch"
	"github.com/xy-planning-network/dispatch/http/resp"
	"github.com/xy-planning-network/dispatch/http/router"
	tt "github.com/xy-planning-network/dispatch/http/template/templatetest"
	"github.com/xy-planning-network/dispatch/logger"
	"github.com/xy-planning-network/dispatch/ranger"
)

const testKey = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

func newConfig() ranger.Config {
	return ranger.Config{
		AppTitle:            "Test App",
		BaseURL:             dispatch.EnvVarOrURL("UNSET_TEST_URL", "https://example.com/app"),
		ContactUs:           "help@example.com",
		DisplaySuccessPages: true,
		Env:                 dispatch.Testing,
		LogLevel:            logger.LogLevelDebug,
		NextActionPath:      resp.DefaultNextActionPath,
		Port:                ranger.DefaultPort,
		SessionAuthKey:      testKey,
		SessionEncryptKey:   testKey,
		SessionMaxAge:       60,
	}
}

func newRanger(t *testing.T, opts ...ranger.RangerOption) (*ranger.Ranger, *bytes.Buffer) {
	t.Helper()

	b := new(bytes.Buffer)
	l := logger.NewLogger(logger.WithLogger(log.New(b, "", 0)), logger.WithLevel(logger.LogLevelDebug))

	rng, err := ranger.New(newConfig(), append([]ranger.RangerOption{ranger.WithLogger(l)}, opts...)...)
	require.Nil(t, err)

	return rng, b
}

func TestNewBadConfig(t *testing.T) {
	tcs := []struct {
		name     string
		modify   func(*ranger.Config)
		expected error
	}{
		{"Bad-Env", func(c *ranger.Config) { c.Env = "NOPE" }, dispatch.ErrNotValid},
		{"No-Base-URL", func(c *ranger.Config) { c.BaseURL = nil }, dispatch.ErrMissingData},
		{"No-Auth-Key", func(c *ranger.Config) { c.SessionAuthKey = "" }, dispatch.ErrMissingData},
		{"No-Encrypt-Key", func(c *ranger.Config) { c.SessionEncryptKey = "" }, dispatch.ErrMissingData},
		{"Non-Hex-Key", func(c *ranger.Config) { c.SessionAuthKey = "not hex" }, dispatch.ErrBadConfig},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			cfg := newConfig()
			tc.modify(&cfg)

			// Act
			_, err := ranger.New(cfg)

			// Assert
			require.ErrorIs(t, err, dispatch.ErrBadConfig)
			require.ErrorIs(t, err, tc.expected)
		})
	}
}

func TestNewNilOptions(t *testing.T) {
	tcs := []struct {
		name string
		opt  ranger.RangerOption
	}{
		{"Logger", ranger.WithLogger(nil)},
		{"Session-Store", ranger.WithSessionStore(nil)},
		{"Bean-Store", ranger.WithBeanStore(nil)},
		{"Persister", ranger.WithPersister(nil)},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			_, err := ranger.New(newConfig(), tc.opt)

			// Assert
			require.ErrorIs(t, err, dispatch.ErrBadConfig)
			require.ErrorIs(t, err, ranger.ErrNilOption)
		})
	}
}

func TestRangerRoutes(t *testing.T) {
	// Arrange
	rng, _ := newRanger(t)
	rng.Handle(router.Route{
		Path:   "/data",
		Method: http.MethodGet,
		Handler: func(w http.ResponseWriter, r *http.Request) {
			rr := rng.Respond(w, r)
			require.Same(t, rr, rng.Respond(w, r))
			require.Nil(t, rr.OutputJSON(resp.Data("hi")))
		},
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/data", nil)
	r.Header.Set("Accept", "application/json")

	// Act
	rng.ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, w.Header().Get("X-Request-Id"))
	require.NotEmpty(t, w.Header().Values("Set-Cookie"))

	var actual resp.RestResult
	require.Nil(t, json.NewDecoder(w.Body).Decode(&actual))
	require.False(t, actual.Error)
	require.Equal(t, "hi", actual.Data)
}

func TestRangerNotFound(t *testing.T) {
	// Arrange
	rng, _ := newRanger(t)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/nowhere", nil)
	r.Header.Set("Accept", "application/json")

	// Act
	rng.ServeHTTP(w, r)

	// Assert
	var actual resp.RestResult
	require.Nil(t, json.NewDecoder(w.Body).Decode(&actual))
	require.True(t, actual.Error)
	require.Equal(t, resp.CodeNotFound, actual.ErrorCode)
}

func TestRangerTemplates(t *testing.T) {
	// Arrange
	files := tt.NewMockFS(tt.NewMockFile("tmpl/hello.tmpl", []byte(`<h1>{{ title }}</h1>`)))
	rng, _ := newRanger(t, ranger.WithTemplates(files))
	rng.Handle(router.Route{
		Path:   "/hello",
		Method: http.MethodGet,
		Handler: func(w http.ResponseWriter, r *http.Request) {
			require.Nil(t, rng.Respond(w, r).ForwardToPage("tmpl/hello.tmpl"))
		},
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/hello", nil)
	r.Header.Set("Accept", "text/html")

	// Act
	rng.ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "<h1>Test App</h1>", strings.TrimSpace(w.Body.String()))
}

func TestNewConfig(t *testing.T) {
	// Arrange
	t.Setenv("ENVIRONMENT", "staging")
	t.Setenv("BASE_URL", "https://example.com/base")
	t.Setenv("PORT", "8080")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SERVER_READ_TIMEOUT", "10s")
	t.Setenv("SHOW_DETAILED_ERRORS", "")
	t.Setenv("DISPLAY_SUCCESS_PAGES", "false")
	t.Setenv("NEXT_ACTION_PATH", "/next")

	// Act
	cfg := ranger.NewConfig()

	// Assert
	require.Equal(t, dispatch.Staging, cfg.Env)
	require.Equal(t, "https://example.com/base", cfg.BaseURL.String())
	require.Equal(t, ":8080", cfg.Port)
	require.Equal(t, logger.LogLevelDebug, cfg.LogLevel)
	require.Equal(t, 10*time.Second, cfg.ServerReadTimeout)
	require.False(t, cfg.DetailedErrors)
	require.False(t, cfg.DisplaySuccessPages)
	require.Equal(t, "/next", cfg.NextActionPath)
}

func TestRangerShutdown(t *testing.T) {
	// Arrange
	rng, b := newRanger(t)

	// Act
	err := rng.Shutdown()

	// Assert
	require.Nil(t, err)
	require.Contains(t, b.String(), "web server shutdown successfully")
}
