package resp

import "golang.org/x/text/language"

// A RestResult is the JSON body of a response to a client expecting JSON.
//
// An error result looks like:
//
//	{"error":true,"errorCode":"not_found","errorMessage":"The requested item could not be found."}
type RestResult struct {
	Error          bool      `json:"error"`
	ErrorCode      ErrorCode `json:"errorCode,omitempty"`
	ErrorMessage   string    `json:"errorMessage,omitempty"`
	ErrorDetail    string    `json:"errorDetail,omitempty"`
	ErrorFields    []string  `json:"errorFields,omitempty"`
	SuccessMessage string    `json:"successMessage,omitempty"`
	Data           any       `json:"data,omitempty"`
}

// ResultFromError builds the RestResult describing info to a client preferring locale.
// The developer-facing detail is only included when detailed is true.
func ResultFromError(info ErrorInfo, locale language.Tag, detailed bool) RestResult {
	code := info.Code
	if code == "" {
		code = CodeInternal
	}

	rr := RestResult{
		Error:        true,
		ErrorCode:    code,
		ErrorMessage: info.UserString(locale),
		ErrorFields:  info.Fields,
	}

	if detailed {
		rr.ErrorDetail = info.DebugString()
	}

	return rr
}

// Data builds a successful RestResult carrying d.
func Data(d any) RestResult { return RestResult{Data: d} }

// Success builds a successful RestResult carrying msg.
func Success(msg string) RestResult { return RestResult{SuccessMessage: msg} }
