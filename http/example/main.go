/*
Package main provides a toy example use of dispatch's http stack.

Run it with SESSION_AUTH_KEY and SESSION_ENCRYPTION_KEY set to hex-encoded keys.
*/
package main

import (
	"embed"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/xy-planning-network/dispatch"
	"github.com/xy-planning-network/dispatch/http/cookie"
	"github.com/xy-planning-network/dispatch/http/middleware"
	"github.com/xy-planning-network/dispatch/http/req"
	"github.com/xy-planning-network/dispatch/http/resp"
	"github.com/xy-planning-network/dispatch/http/router"
	"github.com/xy-planning-network/dispatch/http/session"
	"github.com/xy-planning-network/dispatch/ranger"
)

//go:embed tmpl/*.tmpl
var files embed.FS

const (
	home        = "tmpl/home.tmpl"
	visitsBean  = "visits"
	prefsCookie = "example-prefs"
)

type prefs struct {
	Theme string `json:"theme"`
}

// Handler shares the initialized Ranger across all example responses.
type Handler struct {
	*ranger.Ranger
	users *users
}

func main() {
	us := new(users)
	cfg := ranger.NewConfig()
	rng, err := ranger.New(
		cfg,
		ranger.WithTemplates(files),
		ranger.WithUserStore(us.GetByID),
		ranger.WithMiddlewares(middleware.CORS(cfg.BaseURL.String())),
	)
	if err != nil {
		panic(err)
	}

	rng.EmitParser().AddFn("hammerTime", itsHammerTime)

	h := Handler{Ranger: rng, users: us}
	h.HandleRoutes([]router.Route{
		{Path: "/", Method: http.MethodGet, Handler: h.root},
		{Path: "/cookies", Method: http.MethodGet, Handler: h.cookies},
		{Path: "/data", Method: http.MethodGet, Handler: h.data},
		{Path: "/download", Method: http.MethodGet, Handler: h.download},
		{Path: "/fail", Method: http.MethodGet, Handler: h.fail},
		{Path: "/login", Method: http.MethodGet, Handler: h.login},
		{Path: "/logout", Method: http.MethodGet, Handler: h.logout},
		{Path: "/success", Method: http.MethodGet, Handler: h.success},
	})

	if err := rng.Guide(); err != nil {
		panic(err)
	}
}

// Example template function to inject.
func itsHammerTime() int64 { return time.Now().UnixNano() }

// root renders the home page, counting visits in the session's beans.
func (h Handler) root(w http.ResponseWriter, r *http.Request) {
	rr := h.Respond(w, r)

	var visits int
	if b, ok := r.Context().Value(dispatch.BeansKey).(*session.Beans); ok {
		_ = b.Get(visitsBean, &visits)
		visits++
		if err := b.Set(visitsBean, visits); err != nil {
			rr.Err(err)
			return
		}
	}

	rr.Request().SetAttribute("visits", visits)
	if err := rr.ForwardToPage(home); err != nil {
		rr.Err(err)
	}
}

// cookies writes one of each kind of cookie and reads back the encrypted one.
func (h Handler) cookies(w http.ResponseWriter, r *http.Request) {
	rr := h.Respond(w, r)

	var p prefs
	err := rr.ReadEncryptedCookie(prefsCookie, &p)
	if errors.Is(err, resp.ErrNotFound) {
		p.Theme = "dark"
		err = rr.WriteEncryptedCookie(prefsCookie, p, 3600, cookie.PathApplication)
	}
	if err != nil {
		rr.Err(err)
		return
	}

	if err := rr.WriteEncryptedSessionCookie("example-visit", time.Now().UTC(), cookie.PathPrivate); err != nil {
		rr.Err(err)
		return
	}

	rr.WriteCookie("example-greeting", "<b>hi</b>", 0, cookie.PathCurrentURL)
	rr.WriteCookie("example-raw", "a=b", cookie.SessionTTL, cookie.PathApplication, cookie.BypassSanitation)

	if err := rr.OutputJSON(resp.Data(p)); err != nil {
		rr.Err(err)
	}
}

// data responds with JSON.
func (h Handler) data(w http.ResponseWriter, r *http.Request) {
	rr := h.Respond(w, r)
	if err := rr.OutputJSON(resp.Data(map[string]any{"now": time.Now().UTC()})); err != nil {
		rr.Err(err)
	}
}

// download responds with a CSV attachment.
func (h Handler) download(w http.ResponseWriter, r *http.Request) {
	rr := h.Respond(w, r)
	rr.MarkAsDownload("text/csv", "example.csv")
	fmt.Fprintln(w, "name,visits")
}

// fail responds with a validation error in the form the client expects.
func (h Handler) fail(w http.ResponseWriter, r *http.Request) {
	h.Respond(w, r).Err(req.ValidationErrors{
		{Field: "email", Got: "nope", Rule: "email"},
	})
}

// login registers a user named by the "name" query param and redirects home.
func (h Handler) login(w http.ResponseWriter, r *http.Request) {
	rr := h.Respond(w, r)

	name := r.URL.Query().Get("name")
	if name == "" {
		rr.Err(fmt.Errorf("%w: name", dispatch.ErrMissingData))
		return
	}

	s := rr.Request().Session()
	if s == nil {
		rr.Err(session.ErrNoSession)
		return
	}

	id := h.users.add(name)
	if err := s.RegisterUser(w, r, id); err != nil {
		rr.Err(err)
		return
	}

	_ = s.SetFlash(w, r, session.Flash{Class: session.FlashSuccess, Msg: "Welcome, " + name})
	if err := rr.SendRedirect(h.Config().BaseURL.String(), resp.Other303); err != nil {
		rr.Err(err)
	}
}

// logout forces the user out of the session by way of an error response.
func (h Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.Respond(w, r).RespondWithError(resp.ErrorInfo{
		Code:    resp.CodeUnauthorized,
		Detail:  "logged out",
		UserMsg: "You have been logged out.",
	}, resp.ForceLogout)
}

// success shows the success page, or redirects to the next action if success pages are off.
func (h Handler) success(w http.ResponseWriter, r *http.Request) {
	h.Respond(w, r).ForwardToSuccess("It worked!", resp.AlwaysShowMessage)
}
