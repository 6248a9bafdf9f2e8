/*
Package ranger initializes and manages a dispatch app with sane defaults.

# Ranger

The main entrypoint to package ranger is the [Ranger] type.
A [Ranger] ought to be constructed with [New] using a [Config],
most often the one [NewConfig] reads from the environment.

[New] builds each component from the one before it:
the logger, the session store and its bean store, the state persister,
the template parser, the [resp.Responder], the [router.Router] and its middleware chain,
and finally the [http.Server].
A [RangerOption] supplies a component in place of the default.

[*Ranger.Guide] begins a dispatch app's web server.
By default, [*Ranger.Guide] listens on [DefaultPort] (:3000),
assuming either a reverse proxy proxies requests
or only a client application makes direct requests to the dispatch web server.

Upon calling [*Ranger.Guide], all routes configured up to that point are now active.
Stop that web server with [*Ranger.Shutdown], [*Ranger.Cancel],
or send a signal [*Ranger.Guide] listens for.

# Configuration

Environment variables ought to be set in a file called ".env"
found at the same directory the application is executed from.

Here are the available environment variables.
  - APP_TITLE: a short title for the application; also names the session cookie
  - BASE_URL: the base URL the application runs on; default: http://localhost:3000
  - CONTACT_US_EMAIL: the email address end users can contact for help
  - DISPLAY_SUCCESS_PAGES: whether success messages render a page or redirect to the next action; default: true
  - ENVIRONMENT: the environment the application is running in; cf. [dispatch.Environment]
  - LOG_LEVEL: the level at which to begin logging; default: INFO; cf. [logger.LogLevel]
  - NEXT_ACTION_PATH: where clients go after a success message when success pages are not displayed
  - PORT: the port the application should listen on; default: :3000
  - REDIS_PASSWORD: the password for authenticating to Redis
  - REDIS_URL: the address of a Redis server; when set, sessions and session beans are kept there
  - SENTRY_DSN: when set, errors are reported to Sentry
  - SERVER_IDLE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for idling between requests when using keep-alives; default: 120s
  - SERVER_READ_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for reading HTTP requests; default: 5s
  - SERVER_WRITE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for writing HTTP responses; default: 5s
  - SESSION_AUTH_KEY: a hex-encoded key for authenticating cookies; cf. [encoding/hex]
  - SESSION_ENCRYPTION_KEY: a hex-encoded key for encrypting cookies; cf. [encoding/hex]
  - SESSION_MAX_AGE: the number of seconds a session lasts; default: one week
  - SHOW_DETAILED_ERRORS: whether error responses include debug detail; defaults by environment
*/
package ranger
