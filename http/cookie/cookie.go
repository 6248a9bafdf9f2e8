// Package cookie builds the cookies a response issues and encrypts their values.
package cookie

import (
	"errors"
	"html"
	"net/http"
	"net/url"
	"strings"
)

var ErrNoKey = errors.New("no key")

// SessionTTL marks a cookie as lasting only as long as the browser session.
const SessionTTL = -1

// A Path names where on the site a cookie is sent.
type Path int

const (
	PathApplication Path = iota
	PathPrivate
	PathCurrentURL
)

func (p Path) String() string {
	switch p {
	case PathApplication:
		return "application"
	case PathPrivate:
		return "private"
	case PathCurrentURL:
		return "current-url"
	default:
		return "unknown"
	}
}

// Resolve returns the cookie path for p.
//
// rootPath is the path of the application's root URL, currentPath is the path of the request being served.
func (p Path) Resolve(rootPath, currentPath string) string {
	root := strings.TrimSuffix(rootPath, "/")
	switch p {
	case PathPrivate:
		return root + "/private"
	case PathCurrentURL:
		if currentPath == "" {
			return "/"
		}
		return currentPath
	default:
		return root + "/"
	}
}

// A Flag alters how a single cookie is written.
type Flag int

const (
	// BypassSanitation writes the value exactly as given.
	BypassSanitation Flag = iota + 1
)

// HasFlag reports whether flags contains f.
func HasFlag(flags []Flag, f Flag) bool {
	for _, flag := range flags {
		if flag == f {
			return true
		}
	}

	return false
}

// New builds a cookie.
//
// A negative ttl omits Max-Age, so the cookie lasts the browser session.
// A zero ttl deletes the cookie.
// A positive ttl is the cookie's lifetime in seconds.
func New(name, value string, ttl int, path string, secure bool) *http.Cookie {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}

	switch {
	case ttl == 0:
		c.MaxAge = -1
	case ttl > 0:
		c.MaxAge = ttl
	}

	return c
}

// Sanitize HTML-escapes then URL-escapes v.
func Sanitize(v string) string {
	return url.QueryEscape(html.EscapeString(v))
}
