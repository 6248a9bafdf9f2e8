package ranger

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/xy-planning-network/dispatch"
	"github.com/xy-planning-network/dispatch/http/resp"
	"github.com/xy-planning-network/dispatch/logger"
)

const (
	// Base URL defaults
	BaseURLEnvVar = "BASE_URL"

	// App metadata
	AppTitleEnvVar   = "APP_TITLE"
	ContactUsEnvVar  = "CONTACT_US_EMAIL"
	defaultAppTitle  = "dispatch"
	defaultContactUs = "hello@example.com"

	// Environment defaults
	environmentEnvVar = "ENVIRONMENT"

	// Log defaults
	logLevelEnvVar = "LOG_LEVEL"

	// Response defaults
	displaySuccessPagesEnvVar = "DISPLAY_SUCCESS_PAGES"
	nextActionPathEnvVar      = "NEXT_ACTION_PATH"
	showDetailedErrorsEnvVar  = "SHOW_DETAILED_ERRORS"

	// Web server defaults
	DefaultHost               = "localhost"
	DefaultPort               = ":3000"
	portEnvVar                = "PORT"
	serverReadTimeoutEnvVar   = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout  = 5 * time.Second
	serverIdleTimeoutEnvVar   = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout  = 120 * time.Second
	serverWriteTimeoutEnvVar  = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout = 5 * time.Second

	// Session defaults
	SessionAuthKeyEnvVar    = "SESSION_AUTH_KEY"
	SessionEncryptKeyEnvVar = "SESSION_ENCRYPTION_KEY"
	sessionMaxAgeEnvVar     = "SESSION_MAX_AGE"
	defaultSessionMaxAge    = 3600 * 24 * 7

	// Redis defaults
	redisPasswordEnvVar = "REDIS_PASSWORD"
	redisURLEnvVar      = "REDIS_URL"
)

var defaultBaseURL = "http://" + DefaultHost + DefaultPort

// A Config holds the values a Ranger is built from.
//
// NewConfig reads each from the environment.
type Config struct {
	AppTitle            string
	BaseURL             *url.URL
	ContactUs           string
	DetailedErrors      bool
	DisplaySuccessPages bool
	Env                 dispatch.Environment
	LogLevel            logger.LogLevel
	NextActionPath      string
	Port                string

	// RedisURL is the address of a Redis server.
	// When set, sessions and their beans are stored in Redis.
	RedisURL      string
	RedisPassword string

	ServerIdleTimeout  time.Duration
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration

	// Hex-encoded keys
	SessionAuthKey    string
	SessionEncryptKey string
	SessionMaxAge     int
}

// NewConfig reads a Config from environment variables,
// including those set in a .env file in the working directory.
func NewConfig() Config {
	env := dispatch.EnvVarOrEnv(environmentEnvVar, dispatch.Development)

	port := dispatch.EnvVarOrString(portEnvVar, DefaultPort)
	if port[0] != ':' {
		port = ":" + port
	}

	return Config{
		AppTitle:            dispatch.EnvVarOrString(AppTitleEnvVar, defaultAppTitle),
		BaseURL:             dispatch.EnvVarOrURL(BaseURLEnvVar, defaultBaseURL),
		ContactUs:           dispatch.EnvVarOrString(ContactUsEnvVar, defaultContactUs),
		DetailedErrors:      dispatch.EnvVarOrBool(showDetailedErrorsEnvVar, env.ShowDetailedErrors()),
		DisplaySuccessPages: dispatch.EnvVarOrBool(displaySuccessPagesEnvVar, true),
		Env:                 env,
		LogLevel:            envVarOrLogLevel(logLevelEnvVar, logger.LogLevelInfo),
		NextActionPath:      dispatch.EnvVarOrString(nextActionPathEnvVar, resp.DefaultNextActionPath),
		Port:                port,
		RedisPassword:       os.Getenv(redisPasswordEnvVar),
		RedisURL:            os.Getenv(redisURLEnvVar),
		ServerIdleTimeout:   dispatch.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),
		ServerReadTimeout:   dispatch.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
		ServerWriteTimeout:  dispatch.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),
		SessionAuthKey:      os.Getenv(SessionAuthKeyEnvVar),
		SessionEncryptKey:   os.Getenv(SessionEncryptKeyEnvVar),
		SessionMaxAge:       dispatch.EnvVarOrInt(sessionMaxAgeEnvVar, defaultSessionMaxAge),
	}
}

// validate reports the first missing or malformed value in c.
func (c Config) validate() error {
	if err := c.Env.Valid(); err != nil {
		return fmt.Errorf("%w: environment %q", dispatch.ErrNotValid, c.Env)
	}

	if c.BaseURL == nil {
		return fmt.Errorf("%w: %s", dispatch.ErrMissingData, BaseURLEnvVar)
	}

	if c.SessionAuthKey == "" {
		return fmt.Errorf("%w: %s", dispatch.ErrMissingData, SessionAuthKeyEnvVar)
	}

	if c.SessionEncryptKey == "" {
		return fmt.Errorf("%w: %s", dispatch.ErrMissingData, SessionEncryptKeyEnvVar)
	}

	return nil
}

// sessionName derives the name sessions are stored under from the app's title.
func (c Config) sessionName() string {
	name := strings.ToLower(strings.TrimSpace(c.AppTitle))
	name = strings.Join(strings.Fields(name), "-")
	if name == "" {
		name = defaultAppTitle
	}

	return "dispatch-" + name
}

// envVarOrLogLevel gets the environment variable from the provided key,
// creates a logger.LogLevel from the retrieved value,
// or returns the provided default logger.LogLevel
// if the value is an unknown logger.LogLevel.
func envVarOrLogLevel(key string, def logger.LogLevel) logger.LogLevel {
	ll := logger.NewLogLevel(os.Getenv(key))
	if ll == logger.LogLevelUnk {
		return def
	}

	return ll
}
