package resp

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xy-planning-network/dispatch"
	"github.com/xy-planning-network/dispatch/http/req"
	"github.com/xy-planning-network/dispatch/http/session"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// An ErrorCode classifies an error for clients.
type ErrorCode string

const (
	CodeBadConfig    ErrorCode = "bad_config"
	CodeInternal     ErrorCode = "internal"
	CodeNotFound     ErrorCode = "not_found"
	CodeUnauthorized ErrorCode = "unauthorized"
	CodeValidation   ErrorCode = "validation"
)

var (
	userLocales = []language.Tag{language.English, language.Spanish, language.German}
	userMatcher = language.NewMatcher(userLocales)
	userCatalog = newUserCatalog()
)

// userMessages are the client-facing messages for each known ErrorCode.
// Every locale carries every code.
var userMessages = map[language.Tag]map[ErrorCode]string{
	language.English: {
		CodeBadConfig:    "This service is not configured correctly.",
		CodeInternal:     "An unexpected error occurred.",
		CodeNotFound:     "The requested item could not be found.",
		CodeUnauthorized: "Please sign in to continue.",
		CodeValidation:   "Some of the information provided is not valid.",
	},
	language.Spanish: {
		CodeBadConfig:    "Este servicio no está configurado correctamente.",
		CodeInternal:     "Ocurrió un error inesperado.",
		CodeNotFound:     "No se pudo encontrar el elemento solicitado.",
		CodeUnauthorized: "Inicie sesión para continuar.",
		CodeValidation:   "Parte de la información proporcionada no es válida.",
	},
	language.German: {
		CodeBadConfig:    "Dieser Dienst ist nicht richtig konfiguriert.",
		CodeInternal:     "Ein unerwarteter Fehler ist aufgetreten.",
		CodeNotFound:     "Das angeforderte Element wurde nicht gefunden.",
		CodeUnauthorized: "Bitte melden Sie sich an, um fortzufahren.",
		CodeValidation:   "Einige der angegebenen Informationen sind ungültig.",
	},
}

func newUserCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, byCode := range userMessages {
		for code, msg := range byCode {
			// NOTE: SetString only fails on malformed messages
			_ = b.SetString(tag, string(code), msg)
		}
	}

	return b
}

// ErrorInfo describes an error to report to a client.
type ErrorInfo struct {
	Code ErrorCode

	// Detail is meant for developers and only shown with detailed errors enabled.
	Detail string

	// UserMsg is safe to show any client.
	// When empty, a message is chosen by Code.
	UserMsg string

	// Fields names the inputs at fault.
	Fields []string

	Err error
}

// FromError describes err.
//
// An err that is or wraps an ErrorInfo returns it.
// Otherwise, the Code is chosen from the dispatch and session sentinel errors err wraps,
// and req.ValidationErrors populate Fields.
func FromError(err error) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: CodeInternal, Detail: "unknown error"}
	}

	var info ErrorInfo
	if errors.As(err, &info) {
		return info
	}

	info = ErrorInfo{Code: CodeInternal, Detail: err.Error(), Err: err}

	var verrs req.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		info.Code = CodeValidation
		info.Fields = verrs.Fields()
	case errors.Is(err, dispatch.ErrNotValid), errors.Is(err, dispatch.ErrMissingData):
		info.Code = CodeValidation
	case errors.Is(err, dispatch.ErrNotExist), errors.Is(err, ErrNotFound):
		info.Code = CodeNotFound
	case errors.Is(err, session.ErrNoUser), errors.Is(err, session.ErrNoSession):
		info.Code = CodeUnauthorized
	case errors.Is(err, dispatch.ErrBadConfig):
		info.Code = CodeBadConfig
	}

	return info
}

// DebugString describes e in full, for developers.
func (e ErrorInfo) DebugString() string {
	var b strings.Builder
	b.WriteString(string(e.Code))

	detail := e.Detail
	if detail == "" && e.Err != nil {
		detail = e.Err.Error()
	}

	if detail != "" {
		fmt.Fprintf(&b, ": %s", detail)
	}

	if len(e.Fields) > 0 {
		fmt.Fprintf(&b, " [fields: %s]", strings.Join(e.Fields, ", "))
	}

	return b.String()
}

func (e ErrorInfo) Error() string { return e.DebugString() }

func (e ErrorInfo) Unwrap() error { return e.Err }

// UserString describes e for a client preferring locale.
// It never includes Detail or the underlying error.
func (e ErrorInfo) UserString(locale language.Tag) string {
	if e.UserMsg != "" {
		return e.UserMsg
	}

	code := e.Code
	if _, ok := userMessages[language.English][code]; !ok {
		code = CodeInternal
	}

	_, idx, _ := userMatcher.Match(locale)
	p := message.NewPrinter(userLocales[idx], message.Catalog(userCatalog))

	return p.Sprintf(string(code))
}
