package ranger

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/xy-planning-network/dispatch/http/middleware"
	"github.com/xy-planning-network/dispatch/http/session"
	"github.com/xy-planning-network/dispatch/logger"
)

// A RangerOption configures a *Ranger under construction,
// supplying a component New would otherwise build itself.
type RangerOption func(rng *Ranger) error

// WithBeanStore exposes the session.BeanStore to the dispatch app.
func WithBeanStore(store session.BeanStore) RangerOption {
	return func(rng *Ranger) error {
		if store == nil {
			return fmt.Errorf("%w: nil bean store", ErrNilOption)
		}

		rng.beans = store
		return nil
	}
}

// WithContext exposes the provided context.Context to the dispatch app.
// Canceling ctx stops Guide.
func WithContext(ctx context.Context) RangerOption {
	return func(rng *Ranger) error {
		if ctx == nil {
			return fmt.Errorf("%w: nil context", ErrNilOption)
		}

		rng.ctx = ctx
		return nil
	}
}

// WithLogger exposes the provided logger.Logger to the dispatch app.
func WithLogger(l logger.Logger) RangerOption {
	return func(rng *Ranger) error {
		if l == nil {
			return fmt.Errorf("%w: nil logger", ErrNilOption)
		}

		rng.l = l
		return nil
	}
}

// WithMiddlewares appends mws to the middleware chain every request passes through.
func WithMiddlewares(mws ...middleware.Adapter) RangerOption {
	return func(rng *Ranger) error {
		rng.mws = append(rng.mws, mws...)
		return nil
	}
}

// WithPersister exposes the session.StatePersister responses persist session state with.
func WithPersister(p session.StatePersister) RangerOption {
	return func(rng *Ranger) error {
		if p == nil {
			return fmt.Errorf("%w: nil persister", ErrNilOption)
		}

		rng.persister = p
		return nil
	}
}

// WithSessionStore exposes the session.SessionStorer to the dispatch app.
func WithSessionStore(store session.SessionStorer) RangerOption {
	return func(rng *Ranger) error {
		if store == nil {
			return fmt.Errorf("%w: nil session store", ErrNilOption)
		}

		rng.sessions = store
		return nil
	}
}

// WithTemplates sets the filesystem HTML templates are read from.
// The embedded error and success templates remain available underneath it.
func WithTemplates(files fs.FS) RangerOption {
	return func(rng *Ranger) error {
		rng.files = files
		return nil
	}
}

// WithUserStore enables middleware.CurrentUser, looking up the session's user with users.
func WithUserStore(users middleware.UserStorer) RangerOption {
	return func(rng *Ranger) error {
		rng.users = users
		return nil
	}
}

// WithVisitors sets the *middleware.Visitors requests are rate limited by.
func WithVisitors(vs *middleware.Visitors) RangerOption {
	return func(rng *Ranger) error {
		rng.visitors = vs
		return nil
	}
}
