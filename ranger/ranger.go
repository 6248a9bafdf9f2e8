package ranger

import (
	"context"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	// TODO: configurable env files
	_ "github.com/joho/godotenv/autoload"
	"github.com/xy-planning-network/dispatch"
	"github.com/xy-planning-network/dispatch/http/middleware"
	"github.com/xy-planning-network/dispatch/http/resp"
	"github.com/xy-planning-network/dispatch/http/router"
	"github.com/xy-planning-network/dispatch/http/session"
	"github.com/xy-planning-network/dispatch/http/template"
	"github.com/xy-planning-network/dispatch/logger"
	"go.uber.org/multierr"
)

const shutdownTimeout = 5 * time.Second

// A Ranger manages and exposes all components of a dispatch app to one another.
type Ranger struct {
	*resp.Responder
	*router.Router

	beans     session.BeanStore
	cancel    context.CancelFunc
	cfg       Config
	ctx       context.Context
	files     fs.FS
	l         logger.Logger
	mws       []middleware.Adapter
	p         template.Parser
	persister session.StatePersister
	sessions  session.SessionStorer
	srv       *http.Server
	users     middleware.UserStorer
	visitors  *middleware.Visitors
}

// New constructs a Ranger from cfg and the provided options.
// Options replace the component New would otherwise build from cfg.
//
// Components are built in dependency order:
// logger, session store, bean store, persister, parser, responder, router, and server.
func New(cfg Config, opts ...RangerOption) (*Ranger, error) {
	if err := cfg.validate(); err != nil {
		return nil, multierr.Combine(dispatch.ErrBadConfig, err)
	}

	r := &Ranger{cfg: cfg}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, multierr.Combine(dispatch.ErrBadConfig, err)
		}
	}

	if r.ctx == nil {
		r.ctx = context.Background()
	}
	r.ctx, r.cancel = context.WithCancel(r.ctx)

	if r.l == nil {
		r.l = defaultLogger(cfg)
	}

	if r.sessions == nil || r.beans == nil {
		sessions, beans, err := defaultSessionStores(cfg)
		if err != nil {
			return nil, err
		}

		if r.sessions == nil {
			r.sessions = sessions
		}

		if r.beans == nil {
			r.beans = beans
		}
	}

	if r.persister == nil {
		r.persister = session.NewPersister(r.beans)
	}

	r.p = defaultParser(cfg, r.files)
	r.Responder = defaultResponder(cfg, r.l, r.p, r.persister)

	if r.visitors == nil {
		r.visitors = middleware.NewVisitors()
	}
	r.Router = defaultRouter(r)

	r.srv = defaultServer(r.ctx, cfg)
	r.srv.Handler = r.Router

	r.l.Debug(fmt.Sprintf("ranger configured for %s at %s", cfg.Env, cfg.BaseURL), nil)

	return r, nil
}

// Cancel stops Guide.
func (r *Ranger) Cancel() { r.cancel() }

// Config returns the Config the Ranger was built from.
func (r *Ranger) Config() Config { return r.cfg }

func (r *Ranger) EmitBeanStore() session.BeanStore        { return r.beans }
func (r *Ranger) EmitLogger() logger.Logger               { return r.l }
func (r *Ranger) EmitParser() template.Parser             { return r.p }
func (r *Ranger) EmitSessionStore() session.SessionStorer { return r.sessions }

// Guide begins the web server.
//
// These, and (*Ranger).Shutdown or (*Ranger).Cancel, stop Guide:
//
// - os.Interrupt
// - syscall.SIGHUP
// - syscall.SIGINT
// - syscall.SIGQUIT
// - syscall.SIGTERM
func (r *Ranger) Guide() error {
	ch := make(chan os.Signal, 1)
	signal.Notify(
		ch,
		os.Interrupt,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	defer signal.Stop(ch)

	go func() {
		select {
		case s := <-ch:
			r.l.Info(fmt.Sprint("received shutdown signal: ", s), nil)
			r.cancel()
		case <-r.ctx.Done():
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		r.l.Info(fmt.Sprintf("running web server at %s", r.srv.Addr), nil)
		if err := r.srv.ListenAndServe(); err != http.ErrServerClosed {
			err = fmt.Errorf("could not listen: %w", err)
			r.l.Error(err.Error(), nil)
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		r.cancel()
		return err
	case <-r.ctx.Done():
		return r.Shutdown()
	}
}

// Shutdown shutdowns the web server.
func (r *Ranger) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	r.l.Info("shutting down web server", nil)
	err := r.srv.Shutdown(shutdownCtx)
	if err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	r.l.Info("web server shutdown successfully", nil)
	return nil
}

// defaultLogger constructs the logger.Logger for the app.
func defaultLogger(cfg Config) logger.Logger {
	l := logger.NewLogger(
		logger.WithEnv(cfg.Env),
		logger.WithLevel(cfg.LogLevel),
	)
	l.Debug("setting up app logger", nil)

	return l
}

// defaultSessionStores constructs where sessions and their beans are kept.
// With a Redis URL configured, both are kept in Redis.
// Otherwise, sessions are kept in cookies and beans in memory.
func defaultSessionStores(cfg Config) (session.SessionStorer, session.BeanStore, error) {
	scfg := session.Config{
		AuthKey:     cfg.SessionAuthKey,
		EncryptKey:  cfg.SessionEncryptKey,
		Env:         cfg.Env,
		SessionName: cfg.sessionName(),
	}

	opts := []session.ServiceOpt{session.WithMaxAge(cfg.SessionMaxAge)}
	if cfg.RedisURL == "" {
		opts = append(opts, session.WithCookie())
		store, err := session.NewStoreService(scfg, opts...)
		if err != nil {
			return nil, nil, err
		}

		return store, session.NewMemoryBeanStore(), nil
	}

	opts = append(opts, session.WithRedis(cfg.RedisURL, cfg.RedisPassword))
	store, err := session.NewStoreService(scfg, opts...)
	if err != nil {
		return nil, nil, err
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
	})

	return store, session.NewRedisBeanStore(client, time.Duration(cfg.SessionMaxAge)*time.Second), nil
}

// defaultParser constructs a template.Parser to be used
// when responding to HTTP requests with (*resp.Response).ForwardToPage.
//
// defaultParser makes available these functions in an HTML template
// on top of those template.NewParser and resp.NewResponder add:
//
//   - "env"
//   - "isDevelopment"
//   - "isProduction"
//   - "title" returns the value set by the APP_TITLE env var
func defaultParser(cfg Config, files fs.FS) template.Parser {
	opts := []template.ParserOptFn{
		template.WithFn(template.Env(cfg.Env)),
		template.WithFn("isDevelopment", cfg.Env.IsDevelopment),
		template.WithFn("isProduction", cfg.Env.IsProduction),
		template.WithFn("title", func() string { return cfg.AppTitle }),
	}

	if files != nil {
		opts = append(opts, template.WithFS(files))
	}

	return template.NewParser(opts...)
}

// defaultResponder configures the *resp.Responder to be used by http.Handlers.
func defaultResponder(
	cfg Config,
	l logger.Logger,
	p template.Parser,
	persister session.StatePersister,
) *resp.Responder {
	return resp.NewResponder(
		resp.WithContactErrMsg(fmt.Sprintf(session.ContactUsErr, cfg.ContactUs)),
		resp.WithCtxKeys(dispatch.CurrentUserKey, dispatch.RequestIDKey),
		resp.WithDetailedErrors(cfg.DetailedErrors),
		resp.WithDisplaySuccessPages(cfg.DisplaySuccessPages),
		resp.WithLogger(l),
		resp.WithNextActionPath(cfg.NextActionPath),
		resp.WithParser(p),
		resp.WithPersister(persister),
		resp.WithRootUrl(cfg.BaseURL.String()),
		resp.WithSecureCookies(cfg.Env.SecureCookies()),
	)
}

// defaultRouter constructs a *router.Router to be used by the web server,
// applying the standard middleware chain to every request.
func defaultRouter(r *Ranger) *router.Router {
	logReq := middleware.LogRequest(r.l)

	mws := []middleware.Adapter{
		middleware.TrackCommits(),
		middleware.RateLimit(r.visitors),
		middleware.ForceHTTPS(r.cfg.Env),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		logReq,
		middleware.InjectSession(r.sessions, r.beans),
		middleware.CurrentUser(r.Responder, r.users),
		middleware.InjectRequest(),
	}
	mws = append(mws, r.mws...)

	route := router.New(r.cfg.Env, logReq)
	route.OnEveryRequest(mws...)
	route.HandleNotFound(func(wx http.ResponseWriter, rx *http.Request) {
		r.Respond(wx, rx).Err(fmt.Errorf("%w: %s", resp.ErrNotFound, rx.URL.Path))
	})

	return route
}

// defaultServer constructs a default *http.Server.
func defaultServer(ctx context.Context, cfg Config) *http.Server {
	return &http.Server{
		Addr:         cfg.Port,
		BaseContext:  func(_ net.Listener) context.Context { return ctx },
		IdleTimeout:  cfg.ServerIdleTimeout,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
	}
}
