package req

import (
	"mime"
	"net/http"
	"strconv"
	"strings"
)

// An Expectation is the representation a client expects a response in.
type Expectation int

const (
	ExpectNeither Expectation = iota
	ExpectHTML
	ExpectJSON
)

func (e Expectation) String() string {
	switch e {
	case ExpectHTML:
		return "html"
	case ExpectJSON:
		return "json"
	default:
		return "neither"
	}
}

// Classify reads r's Accept header to determine the representation the client expects.
//
// Accepting application/json, or any +json media type, expects JSON even if HTML is also accepted.
// Otherwise, accepting text/html or application/xhtml+xml expects HTML.
// Anything else expects neither.
// Media types carrying q=0 are refused and never count.
func Classify(r *http.Request) Expectation {
	e := ExpectNeither
	for _, header := range r.Header.Values("Accept") {
		for _, part := range strings.Split(header, ",") {
			mt, params, err := mime.ParseMediaType(strings.TrimSpace(part))
			if err != nil || refused(params) {
				continue
			}

			switch {
			case mt == "application/json", strings.HasSuffix(mt, "+json"):
				return ExpectJSON
			case mt == "text/html", mt == "application/xhtml+xml":
				e = ExpectHTML
			}
		}
	}

	return e
}

// refused reports whether params weigh their media type at q=0.
// An unparsable weight is treated as the default of 1.
func refused(params map[string]string) bool {
	q, ok := params["q"]
	if !ok {
		return false
	}

	w, err := strconv.ParseFloat(q, 64)
	return err == nil && w <= 0
}
