package dispatch

// A Key stashes a value in a context.Context.
type Key string

const (
	// BeansKey stashes the *session.Beans loaded for a session.
	BeansKey Key = "BeansKey"

	// CurrentUserKey stashes the currentUser for a session.
	CurrentUserKey Key = "CurrentUserKey"

	// IpAddrKey stashes the IP address of an HTTP request being handled.
	IpAddrKey Key = "IpAddrKey"

	// RequestKey stashes the *req.Request wrapping an HTTP request.
	RequestKey Key = "RequestKey"

	// RequestIDKey stashes a unique UUID for each HTTP request.
	RequestIDKey Key = "RequestIDKey"

	// SessionKey stashes the session associated with an HTTP request.
	SessionKey Key = "SessionKey"
)

// String formats the stringified key with additional contextual information
func (k Key) String() string {
	return "dispatch context key: " + string(k)
}
