package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	gorilla "github.com/gorilla/sessions"
)

// keys used internal to specific implementations of different interfaces.
const (
	sessionKey     = "dispatch-session-gorilla" // used by Service
	userSessionKey = sessionKey + "-user"       // used by Session
	idKey          = sessionKey + "-id"
	counterKey     = sessionKey + "-req-counter"
	securityKeyKey = sessionKey + "-security-key"
)

// SecurityKeyLen is the number of bytes in a session's security key.
const SecurityKeyLen = 32

// The Sessionable wraps methods for basic adding values to, deleting, and getting values from a session
// associated with an *http.Request and saving those to the session store.
type Sessionable interface {
	Delete(w http.ResponseWriter, r *http.Request) error
	Get(key string) any
	ResetExpiry(w http.ResponseWriter, r *http.Request) error
	Save(w http.ResponseWriter, r *http.Request) error
	Set(w http.ResponseWriter, r *http.Request, key string, val any) error
}

// The UserSessionable wraps methods for adding, removing, and retrieving
// user IDs from a session.
type UserSessionable interface {
	ClearUser()
	DeregisterUser(w http.ResponseWriter, r *http.Request) error
	RegisterUser(w http.ResponseWriter, r *http.Request, ID uint) error
	UserID() (uint, error)
}

// The StateSessionable wraps the per-session state a response depends on.
// None of its methods save the session;
// changes reach the store the next time the session is saved.
type StateSessionable interface {
	ID() string
	IncrementRequestCounter()
	RequestCounter() int
	SecurityKey() ([]byte, error)
}

// The DispatchSessionable composes session's major interfaces.
type DispatchSessionable interface {
	FlashSessionable
	Sessionable
	StateSessionable
	UserSessionable
}

// A Session provides all functionality for managing a fully featured session.
//
// Its functionality is implemented by lightly wrapping a gorilla.Session.
type Session struct {
	s *gorilla.Session
}

// NewSession constructs a new Session as an implementation of DispatchSessionable.
func NewSession(g *gorilla.Session) DispatchSessionable { return Session{s: g} }

func (s Session) ClearFlashes(w http.ResponseWriter, r *http.Request) {
	_ = s.Flashes(w, r)
}

// ClearUser removes the User from the session without saving it.
func (s Session) ClearUser() {
	delete(s.s.Values, userSessionKey)
}

// Delete removes a session by making the MaxAge negative.
func (s Session) Delete(w http.ResponseWriter, r *http.Request) error {
	s.s.Options.MaxAge = -1
	return s.Save(w, r)
}

// DeregisterUser removes the User from the session.
func (s Session) DeregisterUser(w http.ResponseWriter, r *http.Request) error {
	s.ClearUser()
	return s.Save(w, r)
}

// Flashes retrieves []Flash stored in the session.
func (s Session) Flashes(w http.ResponseWriter, r *http.Request) []Flash {
	raw := s.s.Flashes()
	fs := make([]Flash, 0)
	for _, r := range raw {
		f, ok := r.(Flash)
		if !ok {
			continue
		}

		fs = append(fs, f)
	}
	if len(fs) > 0 {
		// NOTE: flashes are removed after they are accessed,
		// but the session needs to be saved for them to be finally removed
		if err := s.Save(w, r); err != nil {
			return nil
		}
	}

	return fs
}

// Get retrieves a value from the session according to the key passed in.
func (s Session) Get(key string) any {
	return s.s.Values[key]
}

// ID returns the identifier of the session, minting one if the session has none yet.
// The identifier is stable for the life of the session once the session is saved.
func (s Session) ID() string {
	if id, ok := s.s.Values[idKey].(string); ok && id != "" {
		return id
	}

	id := uuid.NewString()
	s.s.Values[idKey] = id
	return id
}

// IncrementRequestCounter bumps the number of pages served under this session.
func (s Session) IncrementRequestCounter() {
	s.s.Values[counterKey] = s.RequestCounter() + 1
}

// RegisterUser stores the user's ID in the session.
func (s Session) RegisterUser(w http.ResponseWriter, r *http.Request, ID uint) error {
	s.s.Values[userSessionKey] = ID
	return s.Save(w, r)
}

// RequestCounter returns the number of pages served under this session.
func (s Session) RequestCounter() int {
	n, _ := s.s.Values[counterKey].(int)
	return n
}

// ResetExpiry resets the expiration of the session by saving it.
func (s Session) ResetExpiry(w http.ResponseWriter, r *http.Request) error {
	return s.Save(w, r)
}

// Save wraps gorilla.Session.Save, saving the session in the request.
func (s Session) Save(w http.ResponseWriter, r *http.Request) error { return s.s.Save(r, w) }

// SecurityKey returns the key cookies issued during this session are encrypted with.
// A session without a key is given a random one.
//
// If the stored key cannot be decoded, ErrNotValid is returned.
func (s Session) SecurityKey() ([]byte, error) {
	if s.s == nil {
		return nil, ErrNoSession
	}

	if raw, ok := s.s.Values[securityKeyKey].(string); ok {
		key, err := hex.DecodeString(raw)
		if err != nil || len(key) != SecurityKeyLen {
			return nil, fmt.Errorf("%w: stored security key", ErrNotValid)
		}

		return key, nil
	}

	key := make([]byte, SecurityKeyLen)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed generating security key: %w", err)
	}

	s.s.Values[securityKeyKey] = hex.EncodeToString(key)
	return key, nil
}

// Set stores a value according to the key passed in on the session.
func (s Session) Set(w http.ResponseWriter, r *http.Request, key string, val any) error {
	s.s.Values[key] = val
	return s.Save(w, r)
}

// SetFlash stores the passed in Flash in the session.
func (s Session) SetFlash(w http.ResponseWriter, r *http.Request, flash Flash) error {
	s.s.AddFlash(flash)
	return s.Save(w, r)
}

// UserID gets the user ID out of the session.
// A user ID should be present in a session if the user is successfully authenticated.
// If no user ID can be found, this ErrNoUser is returned.
//
// If the value returned from the session is not a uint, ErrNotValid is returned and represents a programming error.
func (s Session) UserID() (uint, error) {
	intfVal, ok := s.s.Values[userSessionKey]
	if !ok {
		return 0, ErrNoUser
	}

	val, ok := intfVal.(uint)
	if !ok {
		return 0, ErrNotValid
	}

	return val, nil
}
