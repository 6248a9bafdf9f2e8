package resp_test

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/xy-planning-network/dispatch"
	"github.com/xy-planning-network/dispatch/http/req"
	"github.com/xy-planning-network/dispatch/http/resp"
	"github.com/xy-planning-network/dispatch/http/session"
	tt "github.com/xy-planning-network/dispatch/http/template/templatetest"
	"github.com/xy-planning-network/dispatch/logger"
)

const (
	acceptHTML = "text/html"
	acceptJSON = "application/json"
)

// newRequest builds a request carrying a logged in session and a *req.Request.
func newRequest(store *session.StubStore, accept string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/app/page?x=1", nil)
	if accept != "" {
		r.Header.Set("Accept", accept)
	}

	if store != nil {
		s, _ := store.GetSession(r)
		r = r.WithContext(context.WithValue(r.Context(), dispatch.SessionKey, s))
	}

	return req.Inject(r)
}

// newResponder builds a *resp.Responder logging into the returned buffer.
func newResponder(t *testing.T, opts ...resp.ResponderOptFn) (*resp.Responder, *bytes.Buffer) {
	t.Helper()

	b := new(bytes.Buffer)
	l := logger.NewLogger(
		logger.WithLogger(log.New(b, "", 0)),
		logger.WithLevel(logger.LogLevelDebug),
	)

	parser := tt.NewParser(
		tt.NewMockFile("page.tmpl", []byte(`<p>{{ .Attrs.msg }}</p>`)),
		tt.NewMockFile("broken.tmpl", []byte(`{{ .Attrs.msg.Nope.Nope }}`)),
	)

	opts = append([]resp.ResponderOptFn{
		resp.WithLogger(l),
		resp.WithParser(parser),
		resp.WithRootUrl("https://example.com/app"),
	}, opts...)

	return resp.NewResponder(opts...), b
}
