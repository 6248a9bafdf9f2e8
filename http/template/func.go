package template

import (
	html "html/template"
	"net/url"

	"github.com/google/uuid"
	"github.com/xy-planning-network/dispatch"
)

func defaultFns() html.FuncMap {
	fns := make(html.FuncMap)
	for _, fn := range []func() (string, any){
		func() (string, any) { return CurrentURL("") },
		func() (string, any) { return CurrentUser(nil) },
		func() (string, any) { return Env("") },
		func() (string, any) { return Nonce() },
		func() (string, any) { return RootUrl(nil) },
	} {
		name, f := fn()
		fns[name] = f
	}

	return fns
}

// AddFn includes the named function in the Parse function map.
func (p *Parse) AddFn(name string, fn any) {
	if p.fns == nil {
		p.fns = make(html.FuncMap)
	}
	p.fns[name] = fn
}

// CurrentURL encloses the URL of the request being served.
// It returns "currentURL" as the name of the function for convenient passing to a template.FuncMap
// and returns a function returning the enclosed value when called.
func CurrentURL(u string) (string, func() string) {
	return "currentURL", func() string { return u }
}

// CurrentUser encloses some value representing a user.
// It returns "currentUser" as the name of the function for convenient passing to a template.FuncMap
// and returns a function returning the enclosed value when called.
func CurrentUser(u any) (string, func() any) {
	return "currentUser", func() any { return u }
}

// Env encloses some string representing an environment.
// It returns "env" as the name of the function for convenient passing to a template.FuncMap
// and returns a function returning the enclosed value when called.
func Env(e dispatch.Environment) (string, func() string) {
	return "env", func() string { return e.String() }
}

// Nonce returns "nonce" as the name of the function for convenient passing to a template.FuncMap
// and returns a function generating a uuid.
func Nonce() (string, func() string) {
	return "nonce", func() string { return uuid.NewString() }
}

// RootUrl encloses the *url.URL representing the base URL of the web app.
// It returns "rootUrl" as the name of the function for convenient passing to a template.FuncMap
// and returns a function returning its *url.URL.String().
// If u is nil, that function will always return an empty string.
func RootUrl(u *url.URL) (string, func() string) {
	if u == nil {
		return "rootUrl", func() string { return "" }
	}

	s := u.String()
	return "rootUrl", func() string { return s }
}
