package middleware

import (
	"context"
	"net/http"

	"github.com/xy-planning-network/dispatch"
	"github.com/xy-planning-network/dispatch/http/resp"
	"github.com/xy-planning-network/dispatch/http/session"
)

// The User defines attributes about a user in the context of middleware.
type User interface {
	HasAccess() bool
}

// UserStorer defines how to retrieve a User by an ID in the context of middleware.
type UserStorer func(id uint) (User, error)

// CurrentUser pulls the User out of the session.UserSessionable stored in the *http.Request.Context
// and stores it under dispatch.CurrentUserKey.
//
// A *resp.Responder handles cases a CurrentUser cannot be retrieved or does not have access,
// responding with an unauthorized error in the form the client expects
// and logging the user out of the session.
//
// A request whose session carries no user passes through untouched.
//
// If d or storer are nil, NoopAdapter returns and this middleware does nothing.
func CurrentUser(d *resp.Responder, storer UserStorer) Adapter {
	if d == nil || storer == nil {
		return NoopAdapter
	}

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := r.Context().Value(dispatch.SessionKey).(session.DispatchSessionable)
			if !ok {
				d.Respond(w, r).RespondWithError(resp.ErrorInfo{
					Code:   resp.CodeUnauthorized,
					Detail: "no session",
					Err:    session.ErrNoSession,
				})
				return
			}

			uid, err := s.UserID()
			if err != nil {
				// NOTE: there is no User in the session,
				// request may be accessing an unauthenticated endpoint,
				// maybe not, something for access control middlewares to determine
				handler.ServeHTTP(w, r)
				return
			}

			user, err := storer(uid)
			if err != nil {
				d.Respond(w, r).RespondWithError(resp.ErrorInfo{
					Code:   resp.CodeUnauthorized,
					Detail: "unknown user",
					Err:    err,
				}, resp.ForceLogout)
				return
			}

			if !user.HasAccess() {
				s.ClearFlashes(w, r)
				d.Respond(w, r).RespondWithError(resp.ErrorInfo{
					Code:   resp.CodeUnauthorized,
					Detail: "user lacks access",
					Err:    session.ErrNoUser,
				}, resp.ForceLogout)
				return
			}

			if err := s.ResetExpiry(w, r); err != nil {
				d.Respond(w, r).Err(err)
				return
			}

			w.Header().Add("Cache-control", "no-store")
			w.Header().Add("Pragma", "no-cache")

			ctx := context.WithValue(r.Context(), dispatch.CurrentUserKey, user)
			handler.ServeHTTP(w, r.Clone(ctx))
		})
	}
}
