package resp

import (
	"bytes"
	"encoding/json"
	"fmt"
	html "html/template"
	"mime"
	"net/http"

	"github.com/xy-planning-network/dispatch"
	"github.com/xy-planning-network/dispatch/http/cookie"
	"github.com/xy-planning-network/dispatch/http/req"
	"github.com/xy-planning-network/dispatch/http/session"
	"github.com/xy-planning-network/dispatch/logger"
	"go.uber.org/multierr"
	"golang.org/x/text/language"
)

// A Response finalizes a single HTTP response.
// Get one from Responder.Respond.
//
// A Response is not safe for concurrent use.
type Response struct {
	doer  *Responder
	flags Flags
	r     *http.Request
	rq    *req.Request
	w     *TrackingWriter
}

// pageData is what templates rendered by ForwardToPage execute against.
type pageData struct {
	// Attrs holds the attributes set on the req.Request.
	Attrs map[string]any

	// Ctx holds values pulled from the request context by the Responder's ContextInjector.
	Ctx map[string]any

	Detailed bool
	Flashes  []session.Flash
	Locale   language.Tag
}

// Err responds with the ErrorInfo describing err.
func (rr *Response) Err(err error, flags ...Flag) {
	rr.RespondWithError(FromError(err), flags...)
}

// Flags returns a copy of the flags recorded while responding.
func (rr *Response) Flags() Flags { return rr.flags.copy() }

// ForwardToPage renders the template tmpl as the response body.
//
// The page renders into a buffer first; if parsing or execution fails, nothing is written,
// the request counter is not incremented, and session state is not persisted.
// Otherwise, unless the request carries req.NoReqCounter, the session's request counter is incremented
// and session state is persisted before the page is written.
//
// Templates execute against the request's attributes as .Attrs
// alongside the session's flashes as .Flashes.
func (rr *Response) ForwardToPage(tmpl string) error {
	if rr.doer.parser == nil {
		return fmt.Errorf("%w: no parser configured", ErrBadConfig)
	}

	if tmpl == "" {
		return fmt.Errorf("%w: no template to render", ErrMissingData)
	}

	if rr.w.Committed() {
		rr.lateWrite("ForwardToPage")
		return nil
	}

	rr.log().Debug(fmt.Sprintf("forwarding %s to %s", rr.rq.Label(), tmpl), nil)

	t, err := rr.doer.parser.Parse(tmpl)
	if err != nil {
		return fmt.Errorf("cannot parse %s: %w", tmpl, err)
	}

	t = t.Funcs(html.FuncMap{
		"currentURL":  func() string { return rr.rq.URLWithoutQuery() },
		"currentUser": func() any { return rr.r.Context().Value(dispatch.CurrentUserKey) },
	})

	data := pageData{
		Attrs:    rr.rq.Attributes(),
		Ctx:      make(map[string]any),
		Detailed: rr.doer.detailedErrors,
		Locale:   rr.rq.Locale(),
	}
	rr.doer.injector.Inject(data.Ctx, rr.r.Context())

	if s := rr.rq.Session(); s != nil {
		data.Flashes = s.Flashes(rr.w, rr.r)
	}

	b := rr.doer.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer rr.doer.pool.Put(b)

	if err := t.Execute(b, data); err != nil {
		return fmt.Errorf("cannot execute %s: %w", tmpl, err)
	}

	if !rr.rq.HasFlag(req.NoReqCounter) {
		rr.rq.IncrementRequestCounter()
	}

	rr.preCommit()

	if rr.w.Header().Get("Content-Type") == "" {
		rr.w.Header().Set("Content-Type", "text/html; charset=utf-8")
	}

	if _, err := b.WriteTo(rr.w); err != nil {
		return fmt.Errorf("cannot write %s: %w", tmpl, err)
	}

	return nil
}

// ForwardToSuccess shows the client msg.
//
// When success pages are not displayed and flags lack AlwaysShowMessage,
// the client is redirected to the next action instead.
// Otherwise, the success template renders.
//
// Failures are logged.
func (rr *Response) ForwardToSuccess(msg string, flags ...Flag) {
	rr.rq.SetAttribute(req.AttrSuccessMessage, msg)

	if !rr.doer.displaySuccessPages && !hasFlag(flags, AlwaysShowMessage) {
		if err := rr.Redirect(rr.doer.rootPath() + rr.doer.nextActionPath); err != nil {
			rr.log().Error("failed redirecting to next action", rr.logContext(err))
		}
		return
	}

	if err := rr.ForwardToPage(rr.doer.templates.success); err != nil {
		rr.log().Error("failed rendering success page", rr.logContext(err))
	}
}

// IsCommitted reports whether the response is committed.
func (rr *Response) IsCommitted() bool { return rr.w.Committed() }

// MarkAsDownload sets the headers prompting a client to save the body as filename.
// It does not commit the response.
func (rr *Response) MarkAsDownload(contentType, filename string) {
	if rr.w.Committed() {
		rr.lateWrite("MarkAsDownload")
		return
	}

	rr.w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	rr.w.Header().Set("Content-Type", contentType)
}

// OutputJSON writes result as the JSON body of the response.
// The status code is left as is, defaulting to 200.
func (rr *Response) OutputJSON(result RestResult) error {
	if !rr.preCommit() {
		rr.lateWrite("OutputJSON")
		return nil
	}

	b := rr.doer.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer rr.doer.pool.Put(b)

	if err := json.NewEncoder(b).Encode(result); err != nil {
		return fmt.Errorf("cannot encode result: %w", err)
	}

	rr.w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	if _, err := b.WriteTo(rr.w); err != nil {
		return fmt.Errorf("cannot write result: %w", err)
	}

	rr.w.Flush()
	return nil
}

// ReadEncryptedCookie decrypts the cookie name, written by WriteEncryptedCookie in the same session, into dst.
// If the request carries no such cookie, ErrNotFound is returned.
func (rr *Response) ReadEncryptedCookie(name string, dst any) error {
	c, err := rr.r.Cookie(name)
	if err != nil {
		return fmt.Errorf("%w: cookie %s", ErrNotFound, name)
	}

	key, err := rr.rq.SecurityKey()
	if err != nil {
		return fmt.Errorf("%w: no security key: %s", ErrBadConfig, err)
	}

	return rr.doer.codec.Decrypt(key, name, c.Value, dst)
}

// Redirect redirects the client to url with a 302.
func (rr *Response) Redirect(url string) error { return rr.SendRedirect(url, Found302) }

// Request returns the *req.Request being responded to.
func (rr *Response) Request() *req.Request { return rr.rq }

// RespondWithError responds with info in the form the client expects:
// a RestResult for JSON, the error page for HTML, and plain text otherwise.
//
// Only the first error response is written.
// An error raised after the response committed is logged with a stack trace and otherwise dropped.
//
// ForceLogout removes the user from the session in either case.
func (rr *Response) RespondWithError(info ErrorInfo, flags ...Flag) {
	if info.UserMsg == "" && info.Code == CodeInternal && rr.doer.contactErrMsg != "" {
		info.UserMsg = rr.doer.contactErrMsg
	}

	lc := rr.logContext(info)
	lc.Data = map[string]any{"code": info.Code, "request": rr.rq.Label()}
	rr.log().Error(info.DebugString(), lc)

	rr.rq.SetAttribute(req.AttrErrorInfo, info)

	if hasFlag(flags, ForceLogout) {
		if err := rr.rq.Unauthenticate(rr.w); err != nil {
			rr.log().Warn("failed forcing logout", rr.logContext(err))
		}
	}

	if rr.flags.Has(ErrorResponseSent) {
		rr.log().Debug("error response already sent", nil)
		return
	}

	if rr.w.Committed() {
		rr.log().Warn(logger.Stack("cannot respond with error, response already committed"), lc)
		return
	}

	switch rr.rq.Expectation() {
	case req.ExpectJSON:
		result := ResultFromError(info, rr.rq.Locale(), rr.doer.detailedErrors)
		if err := rr.OutputJSON(result); err != nil {
			rr.log().Error("failed writing error result", rr.logContext(err))
		}
	case req.ExpectHTML:
		if err := rr.ForwardToPage(rr.doer.templates.err); err != nil {
			rr.log().Error("failed rendering error page", rr.logContext(err))
			rr.plainError(info)
		}
	default:
		rr.plainError(info)
	}

	rr.flags.set(ErrorResponseSent)
}

// plainError writes info as text; nothing is written if the response already committed.
func (rr *Response) plainError(info ErrorInfo) {
	if !rr.preCommit() {
		return
	}

	msg := info.UserString(rr.rq.Locale())
	if rr.doer.detailedErrors {
		msg = info.DebugString()
	}

	http.Error(rr.w, msg, http.StatusInternalServerError)
}

// SendRedirect redirects the client to url, which is set as the Location verbatim.
// If rt is not valid, ErrNotValid is returned.
func (rr *Response) SendRedirect(url string, rt RedirectType) error {
	if !rt.Valid() {
		return fmt.Errorf("%w: redirect type %d", ErrNotValid, rt)
	}

	if !rr.preCommit() {
		rr.lateWrite("SendRedirect")
		return nil
	}

	rr.w.Header().Set("Location", url)
	rr.w.WriteHeader(rt.Code())
	return nil
}

// WriteCookie sets the cookie name.
// The value is sanitized unless flags contain cookie.BypassSanitation.
// See cookie.New for how ttl is interpreted.
func (rr *Response) WriteCookie(name, value string, ttl int, path cookie.Path, flags ...cookie.Flag) {
	if rr.w.Committed() {
		rr.lateWrite("WriteCookie")
		return
	}

	if !cookie.HasFlag(flags, cookie.BypassSanitation) {
		value = cookie.Sanitize(value)
	}

	p := path.Resolve(rr.doer.rootPath(), rr.r.URL.Path)
	http.SetCookie(rr.w, cookie.New(name, value, ttl, p, rr.doer.secureCookies))
}

// WriteEncryptedCookie sets the cookie name to the encryption of value's JSON form
// under the session's security key.
//
// Without a security key, an error wrapping ErrBadConfig is returned.
func (rr *Response) WriteEncryptedCookie(name string, value any, ttl int, path cookie.Path) error {
	key, err := rr.rq.SecurityKey()
	if err != nil {
		return fmt.Errorf("%w: no security key: %s", ErrBadConfig, err)
	}

	enc, err := rr.doer.codec.Encrypt(key, name, value)
	if err != nil {
		return err
	}

	rr.WriteCookie(name, enc, ttl, path, cookie.BypassSanitation)
	return nil
}

// WriteEncryptedSessionCookie is WriteEncryptedCookie for a cookie lasting the browser session.
func (rr *Response) WriteEncryptedSessionCookie(name string, value any, path cookie.Path) error {
	return rr.WriteEncryptedCookie(name, value, cookie.SessionTTL, path)
}

// preCommit readies the response to be committed,
// persisting session state the first time it is called.
// It returns false if the response is already committed.
func (rr *Response) preCommit() bool {
	if rr.w.Committed() {
		return false
	}

	if rr.flags.Has(SessionStatePersisted) {
		return true
	}

	rr.flags.set(SessionStatePersisted)
	if rr.doer.persister == nil {
		return true
	}

	// login state saves first so a newly minted session ID reaches the store before beans keyed by it
	var err error
	if perr := rr.doer.persister.SaveLoginState(rr.w, rr.r); perr != nil {
		err = multierr.Append(err, fmt.Errorf("failed saving login state: %w", perr))
	}

	if perr := rr.doer.persister.SaveSessionBeans(rr.w, rr.r); perr != nil {
		err = multierr.Append(err, fmt.Errorf("failed saving session beans: %w", perr))
	}

	if err != nil {
		rr.log().Error("failed persisting session state", rr.logContext(err))
	}

	return true
}

func (rr *Response) lateWrite(op string) {
	rr.log().Warn(logger.Stack(op+" called after response committed"), rr.logContext(nil))
}

func (rr *Response) log() logger.Logger { return rr.doer.logger }

func (rr *Response) logContext(err error) *logger.LogContext {
	return &logger.LogContext{Error: err, Request: rr.r}
}
