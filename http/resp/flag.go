package resp

import "net/http"

// A ResponseFlag records something that happened while responding.
type ResponseFlag int

const (
	ErrorResponseSent ResponseFlag = iota + 1
	SessionStatePersisted
)

func (f ResponseFlag) String() string {
	switch f {
	case ErrorResponseSent:
		return "ErrorResponseSent"
	case SessionStatePersisted:
		return "SessionStatePersisted"
	default:
		return "Unknown"
	}
}

// Flags is the set of ResponseFlag recorded on one Response.
// A flag, once set, stays set.
type Flags map[ResponseFlag]struct{}

// Has reports whether f is set.
func (fs Flags) Has(f ResponseFlag) bool {
	_, ok := fs[f]
	return ok
}

func (fs Flags) set(f ResponseFlag) { fs[f] = struct{}{} }

func (fs Flags) copy() Flags {
	out := make(Flags, len(fs))
	for f := range fs {
		out[f] = struct{}{}
	}

	return out
}

// A Flag alters the behavior of a single Response method call.
type Flag int

const (
	// AlwaysShowMessage renders the success page even when success pages are not displayed.
	AlwaysShowMessage Flag = iota + 1

	// ForceLogout removes the user from the session while responding with an error.
	ForceLogout
)

func hasFlag(flags []Flag, f Flag) bool {
	for _, flag := range flags {
		if flag == f {
			return true
		}
	}

	return false
}

// A RedirectType is the kind of redirect a Response issues.
type RedirectType int

const (
	Permanent301 RedirectType = iota + 1
	Found302
	Other303
)

// Code returns the HTTP status code for rt, or 0 if rt is not valid.
func (rt RedirectType) Code() int {
	switch rt {
	case Permanent301:
		return http.StatusMovedPermanently
	case Found302:
		return http.StatusFound
	case Other303:
		return http.StatusSeeOther
	default:
		return 0
	}
}

func (rt RedirectType) String() string {
	switch rt {
	case Permanent301:
		return "Permanent301"
	case Found302:
		return "Found302"
	case Other303:
		return "Other303"
	default:
		return "Unknown"
	}
}

// Valid reports whether rt is one of the known redirect types.
func (rt RedirectType) Valid() bool { return rt.Code() != 0 }
