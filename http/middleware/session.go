package middleware

import (
	"context"
	"net/http"

	"github.com/xy-planning-network/dispatch"
	"github.com/xy-planning-network/dispatch/http/session"
)

// InjectSession stores the session associated with the *http.Request in *http.Request.Context
// under dispatch.SessionKey.
//
// The session's ID and security key are minted here, if absent,
// so both are saved with the session the first time the response persists state.
//
// When beans is not nil, the *session.Beans for the session are loaded
// and stored under dispatch.BeansKey.
// A session whose beans cannot be loaded starts with empty beans.
//
// If store is nil, NoopAdapter returns and this middleware does nothing.
func InjectSession(store session.SessionStorer, beans session.BeanStore) Adapter {
	if store == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, _ := store.GetSession(r)
			sid := s.ID()
			_, _ = s.SecurityKey()

			ctx := context.WithValue(r.Context(), dispatch.SessionKey, s)
			if beans != nil {
				b, err := beans.Load(ctx, sid)
				if err != nil || b == nil {
					b = session.NewBeans()
				}

				ctx = context.WithValue(ctx, dispatch.BeansKey, b)
			}

			h.ServeHTTP(w, r.Clone(ctx))
		})
	}
}
