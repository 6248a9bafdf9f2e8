package session

import (
	"net/http"

	"github.com/xy-planning-network/dispatch"
)

//go:generate mockgen -destination=mock_session/mock_persister.go -package=mock_session . StatePersister

// The StatePersister saves the state of a session before its response is committed.
//
// Callers save login state before session beans.
type StatePersister interface {
	SaveLoginState(w http.ResponseWriter, r *http.Request) error
	SaveSessionBeans(w http.ResponseWriter, r *http.Request) error
}

// A Persister implements StatePersister over the Session and *Beans
// found in an *http.Request's context under dispatch.SessionKey and dispatch.BeansKey.
// A request missing either saves nothing.
type Persister struct {
	beans BeanStore
}

// NewPersister constructs a Persister saving beans into store.
// A nil store skips saving beans.
func NewPersister(store BeanStore) Persister {
	return Persister{beans: store}
}

// SaveLoginState saves the session found in r's context.
func (p Persister) SaveLoginState(w http.ResponseWriter, r *http.Request) error {
	s, ok := r.Context().Value(dispatch.SessionKey).(Sessionable)
	if !ok {
		return nil
	}

	return s.Save(w, r)
}

// SaveSessionBeans saves the beans found in r's context if they changed.
func (p Persister) SaveSessionBeans(w http.ResponseWriter, r *http.Request) error {
	if p.beans == nil {
		return nil
	}

	b, ok := r.Context().Value(dispatch.BeansKey).(*Beans)
	if !ok || !b.Dirty() {
		return nil
	}

	s, ok := r.Context().Value(dispatch.SessionKey).(StateSessionable)
	if !ok {
		return ErrNoSession
	}

	if err := p.beans.Save(r.Context(), s.ID(), b); err != nil {
		return err
	}

	b.clean()
	return nil
}
