package resp

import (
	"bytes"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/xy-planning-network/dispatch/http/cookie"
	"github.com/xy-planning-network/dispatch/http/req"
	"github.com/xy-planning-network/dispatch/http/session"
	"github.com/xy-planning-network/dispatch/http/template"
	"github.com/xy-planning-network/dispatch/logger"
)

const (
	// DefaultErrTemplate is the error page embedded in package template.
	DefaultErrTemplate = "tmpl/error.tmpl"

	// DefaultNextActionPath is where a success message sends a client when success pages are not displayed.
	DefaultNextActionPath = "/public/command?processAction=next"

	// DefaultSuccessTemplate is the success page embedded in package template.
	DefaultSuccessTemplate = "tmpl/success.tmpl"
)

const responderFrames = 0

// Responder maintains reusable pieces for responding to HTTP requests.
//
// Most oftentimes, setting up a single instance of a Responder suffices for an application.
// Meaning, one needs only application-wide configuration of how HTTP responses should look.
//
// A Responder is safe for concurrent use; the *Response values it hands out are not.
type Responder struct {
	logger logger.Logger

	// Initialized template parser
	parser template.Parser

	// Pool of *bytes.Buffer to prerender responses into
	pool *sync.Pool

	// Error message shown to clients for internal errors lacking a message of their own
	contactErrMsg string

	// Root URL the responder is listening on, also used when in an error state
	rootUrl *url.URL

	// Pulls values out of the *http.Request.Context for rendering pages
	injector ContextInjector

	// Saves session state right before a response commits
	persister session.StatePersister

	// Encrypts cookie values
	codec cookie.Codec

	// Where a success message sends a client when success pages are not displayed
	nextActionPath string

	displaySuccessPages bool
	detailedErrors      bool
	secureCookies       bool

	templates struct {
		// Template to render when an error occurs
		err string

		// Template to render a success message with
		success string
	}
}

// NewResponder constructs a *Responder using the ResponderOptFns passed in.
//
// Without options, a *Responder displays success pages using the embedded templates,
// saves session state found in request contexts without saving beans,
// and hides error details.
func NewResponder(opts ...ResponderOptFn) *Responder {
	// ranging over opts may or may not overwrite defaults
	d := &Responder{
		codec:               cookie.NewCodec(),
		displaySuccessPages: true,
		injector:            NoopInjector{},
		nextActionPath:      DefaultNextActionPath,
		persister:           session.NewPersister(nil),
		pool:                &sync.Pool{New: func() any { return new(bytes.Buffer) }},
	}
	d.templates.err = DefaultErrTemplate
	d.templates.success = DefaultSuccessTemplate

	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = logger.NewLogger()
	}

	if l, ok := d.logger.(logger.SkipLogger); ok {
		d.logger = l.AddSkip(l.Skip() + responderFrames)
	}

	d.logger = logger.Safe(d.logger)

	if d.parser != nil {
		d.parser.AddFn(template.Nonce())
		if d.rootUrl != nil {
			d.parser.AddFn(template.RootUrl(d.rootUrl))
		}
	}

	return d
}

// Respond returns the *Response for the response w writes.
//
// When w is a *TrackingWriter, as installed by middleware.TrackCommits,
// every call for the same response returns the same *Response.
// Otherwise, w is wrapped anew.
func (doer *Responder) Respond(w http.ResponseWriter, r *http.Request) *Response {
	tw := Track(w)
	if tw.resp != nil {
		return tw.resp
	}

	rq, err := req.FromContext(r.Context())
	if err != nil {
		rq = req.New(r)
	}

	tw.resp = &Response{
		doer:  doer,
		flags: make(Flags),
		r:     r,
		rq:    rq,
		w:     tw,
	}

	return tw.resp
}

// rootPath is the path of the root URL without a trailing slash.
func (doer *Responder) rootPath() string {
	if doer.rootUrl == nil {
		return ""
	}

	return strings.TrimSuffix(doer.rootUrl.Path, "/")
}
