package req

import (
	"context"
	"fmt"
	"net/http"

	"github.com/xy-planning-network/dispatch"
	"github.com/xy-planning-network/dispatch/http/session"
	"golang.org/x/text/language"
)

// An Attribute names a value a handler stashes on a Request for rendering.
type Attribute string

const (
	AttrErrorInfo      Attribute = "errorInfo"
	AttrSuccessMessage Attribute = "successMessage"
)

// A Flag marks a Request for special handling.
type Flag int

const (
	// NoReqCounter leaves the session's request counter alone when a page is rendered.
	NoReqCounter Flag = iota + 1
)

// DefaultLocale is used when a client sends no usable Accept-Language header.
var DefaultLocale = language.English

// A Request wraps an *http.Request.
//
// A Request is scoped to serving a single *http.Request and is not safe for concurrent use.
type Request struct {
	r      *http.Request
	attrs  map[Attribute]any
	expect Expectation
	flags  map[Flag]struct{}
	locale language.Tag
	sess   session.DispatchSessionable
}

// New constructs a *Request from r.
// The session stashed in r's context under dispatch.SessionKey, if any, backs the *Request.
func New(r *http.Request) *Request {
	rq := &Request{
		r:      r,
		attrs:  make(map[Attribute]any),
		expect: Classify(r),
		flags:  make(map[Flag]struct{}),
		locale: parseLocale(r),
	}

	if s, ok := r.Context().Value(dispatch.SessionKey).(session.DispatchSessionable); ok {
		rq.sess = s
	}

	return rq
}

// Inject constructs a *Request from r and stashes it in the context of the returned *http.Request.
func Inject(r *http.Request) *http.Request {
	rq := New(r)
	r = r.WithContext(context.WithValue(r.Context(), dispatch.RequestKey, rq))
	rq.r = r

	return r
}

// FromContext retrieves the *Request stashed by Inject.
// If none is found, ErrNoRequest is returned.
func FromContext(ctx context.Context) (*Request, error) {
	rq, ok := ctx.Value(dispatch.RequestKey).(*Request)
	if !ok || rq == nil {
		return nil, ErrNoRequest
	}

	return rq, nil
}

// anyLanguage is the base a "*" Accept-Language entry parses to.
var anyLanguage = language.MustParseBase("mul")

// parseLocale picks the client's most preferred concrete language.
// Wildcards and undetermined tags fall through to DefaultLocale.
func parseLocale(r *http.Request) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil {
		return DefaultLocale
	}

	for _, t := range tags {
		if t == language.Und {
			continue
		}

		if b, _ := t.Base(); b == anyLanguage {
			continue
		}

		return t
	}

	return DefaultLocale
}

// Attribute returns the value stashed under a, or nil.
func (rq *Request) Attribute(a Attribute) any { return rq.attrs[a] }

// Attributes returns a copy of every stashed value keyed by its attribute's name.
func (rq *Request) Attributes() map[string]any {
	out := make(map[string]any, len(rq.attrs))
	for k, v := range rq.attrs {
		out[string(k)] = v
	}

	return out
}

// Expectation returns the representation the client expects, as determined by Classify.
func (rq *Request) Expectation() Expectation { return rq.expect }

// HasFlag reports whether f was set on the Request.
func (rq *Request) HasFlag(f Flag) bool {
	_, ok := rq.flags[f]
	return ok
}

// HTTP returns the underlying *http.Request.
func (rq *Request) HTTP() *http.Request { return rq.r }

// IncrementRequestCounter bumps the session's request counter.
// Without a session, it does nothing.
func (rq *Request) IncrementRequestCounter() {
	if rq.sess == nil {
		return
	}

	rq.sess.IncrementRequestCounter()
}

// IsHTML reports whether the client expects HTML.
func (rq *Request) IsHTML() bool { return rq.expect == ExpectHTML }

// IsJSON reports whether the client expects JSON.
func (rq *Request) IsJSON() bool { return rq.expect == ExpectJSON }

// Label describes the Request for log lines.
func (rq *Request) Label() string {
	label := fmt.Sprintf("%s %s", rq.r.Method, rq.r.URL.Path)
	if ip, ok := rq.r.Context().Value(dispatch.IpAddrKey).(string); ok && ip != "" {
		label += " from " + ip
	}

	if rq.sess != nil {
		if id, err := rq.sess.UserID(); err == nil {
			label += fmt.Sprintf(" user %d", id)
		}
	}

	return label
}

// Locale returns the client's most preferred language.
func (rq *Request) Locale() language.Tag { return rq.locale }

// SecurityKey returns the key of the session the Request belongs to.
// Without a session, session.ErrNoSession is returned.
func (rq *Request) SecurityKey() ([]byte, error) {
	if rq.sess == nil {
		return nil, session.ErrNoSession
	}

	return rq.sess.SecurityKey()
}

// Session returns the session backing the Request, or nil.
func (rq *Request) Session() session.DispatchSessionable { return rq.sess }

// SetAttribute stashes v under a.
func (rq *Request) SetAttribute(a Attribute, v any) { rq.attrs[a] = v }

// SetFlag marks the Request with f.
func (rq *Request) SetFlag(f Flag) { rq.flags[f] = struct{}{} }

// Unauthenticate removes the user from the session and saves it.
// Without a session, session.ErrNoSession is returned.
func (rq *Request) Unauthenticate(w http.ResponseWriter) error {
	if rq.sess == nil {
		return session.ErrNoSession
	}

	return rq.sess.DeregisterUser(w, rq.r)
}

// URLWithoutQuery returns the absolute URL of the Request stripped of its query and fragment.
func (rq *Request) URLWithoutQuery() string {
	u := *rq.r.URL
	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	u.RawFragment = ""
	u.User = nil

	if u.Host == "" {
		u.Host = rq.r.Host
	}

	if u.Scheme == "" {
		u.Scheme = "http"
		if rq.r.TLS != nil {
			u.Scheme = "https"
		}
	}

	return u.String()
}
