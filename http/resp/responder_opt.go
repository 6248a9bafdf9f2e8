package resp

import (
	"net/url"

	"github.com/xy-planning-network/dispatch"
	"github.com/xy-planning-network/dispatch/http/cookie"
	"github.com/xy-planning-network/dispatch/http/session"
	"github.com/xy-planning-network/dispatch/http/template"
	"github.com/xy-planning-network/dispatch/logger"
)

// A ResponderOptFn mutates the provided *Responder in some way.
// A ResponderOptFn is used when constructing a new Responder.
type ResponderOptFn func(*Responder)

// WithCodec sets the cookie.Codec encrypting cookie values.
func WithCodec(c cookie.Codec) ResponderOptFn {
	return func(d *Responder) {
		d.codec = c
	}
}

// WithContactErrMsg sets the message shown to clients for internal errors without a message of their own.
//
// We recommend using session.ContactUsErr as a template.
func WithContactErrMsg(msg string) ResponderOptFn {
	return func(d *Responder) {
		d.contactErrMsg = msg
	}
}

// WithCtxKeys sets the keys whose values are pulled out of a request's context
// and made available to pages as .Ctx.
func WithCtxKeys(keys ...dispatch.Key) ResponderOptFn {
	return func(d *Responder) {
		filtered := make([]dispatch.Key, 0, len(keys))
		for _, k := range keys {
			if k != "" {
				filtered = append(filtered, k)
			}
		}

		if len(filtered) == 0 {
			d.injector = NoopInjector{}
			return
		}

		d.injector = DefaultInjector{Keys: filtered}
	}
}

// WithDetailedErrors shows developers the details of errors.
// Never enable in production.
func WithDetailedErrors(show bool) ResponderOptFn {
	return func(d *Responder) {
		d.detailedErrors = show
	}
}

// WithDisplaySuccessPages sets whether success messages render the success page.
// When false, success messages redirect to the next action instead,
// unless AlwaysShowMessage is passed.
func WithDisplaySuccessPages(show bool) ResponderOptFn {
	return func(d *Responder) {
		d.displaySuccessPages = show
	}
}

// WithErrTemplate sets the template identified by the filepath to use for rendering
// errors to clients expecting HTML.
func WithErrTemplate(fp string) ResponderOptFn {
	return func(d *Responder) {
		d.templates.err = fp
	}
}

// WithLogger sets the provided implementation of Logger in order to log all statements through it.
//
// If no Logger is provided through this option, logger.NewLogger configures one.
func WithLogger(log logger.Logger) ResponderOptFn {
	return func(d *Responder) {
		d.logger = log
	}
}

// WithNextActionPath sets the path, relative to the root URL,
// success messages redirect to when success pages are not displayed.
func WithNextActionPath(p string) ResponderOptFn {
	return func(d *Responder) {
		d.nextActionPath = p
	}
}

// WithParser sets the provided implementation of template.Parser to use for parsing HTML templates.
func WithParser(p template.Parser) ResponderOptFn {
	return func(d *Responder) {
		d.parser = p
	}
}

// WithPersister sets how session state is saved before a response commits.
func WithPersister(p session.StatePersister) ResponderOptFn {
	return func(d *Responder) {
		d.persister = p
	}
}

// WithRootUrl sets the provided URL after parsing it into a *url.URL to use for rendering and redirecting
//
// NOTE: If u fails parsing by url.ParseRequestURI, the root URL becomes https://example.com
func WithRootUrl(u string) ResponderOptFn {
	good, err := url.ParseRequestURI(u)
	if err != nil {
		good, _ = url.ParseRequestURI("https://example.com")
	}

	return func(d *Responder) {
		d.rootUrl = good
	}
}

// WithSecureCookies marks every cookie written as Secure.
func WithSecureCookies(secure bool) ResponderOptFn {
	return func(d *Responder) {
		d.secureCookies = secure
	}
}

// WithSuccessTemplate sets the template identified by the filepath to use for rendering success messages.
func WithSuccessTemplate(fp string) ResponderOptFn {
	return func(d *Responder) {
		d.templates.success = fp
	}
}
