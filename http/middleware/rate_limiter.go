package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultVisitorBurst = 20
	DefaultVisitorRate  = rate.Limit(5)

	visitorTTL      = 60 * time.Minute
	cleanupInterval = time.Minute
)

// A Visitor tracks a rate limiter and last seen time.
type Visitor struct {
	LastSeen time.Time
	Limiter  *rate.Limiter
}

// A Visitors maps a Visitor to an IP address.
type Visitors struct {
	burst       int
	lastCleanup time.Time
	limit       rate.Limit
	val         map[string]Visitor
	sync.Mutex
}

// NewVisitors constructs a *Visitors whose new visitors are limited
// to DefaultVisitorRate requests every second with bursts of up to DefaultVisitorBurst.
func NewVisitors() *Visitors { return NewVisitorsWithLimit(DefaultVisitorRate, DefaultVisitorBurst) }

// NewVisitorsWithLimit constructs a *Visitors whose new visitors are limited
// to limit requests every second with bursts of up to burst.
func NewVisitorsWithLimit(limit rate.Limit, burst int) *Visitors {
	return &Visitors{
		burst:       burst,
		lastCleanup: time.Now().UTC(),
		limit:       limit,
		val:         make(map[string]Visitor),
	}
}

// Fetch retrieves the Visitor for the given ip creating a new Visitor if not seen.
func (vs *Visitors) Fetch(ip string) Visitor {
	vs.Lock()
	defer vs.Unlock()

	v, ok := vs.val[ip]
	if !ok {
		v = Visitor{Limiter: rate.NewLimiter(vs.limit, vs.burst)}
	}

	v.LastSeen = time.Now().UTC()
	vs.val[ip] = v
	return v
}

// Len reports how many visitors are tracked.
func (vs *Visitors) Len() int {
	vs.Lock()
	defer vs.Unlock()
	return len(vs.val)
}

// cleanup deletes a Visitor from Visitors if they have not been seen in over an hour.
// The sweep runs at most once every cleanupInterval.
func (vs *Visitors) cleanup() {
	vs.Lock()
	defer vs.Unlock()

	if time.Since(vs.lastCleanup) < cleanupInterval {
		return
	}

	vs.lastCleanup = time.Now().UTC()
	for ip, v := range vs.val {
		if time.Since(v.LastSeen) > visitorTTL {
			delete(vs.val, ip)
		}
	}
}

// RateLimit encloses the Visitors map and serves the http.Handler,
// responding 429 to any visitor over their limit.
//
// NOTE: implementation found here:
// https://www.alexedwards.net/blog/how-to-rate-limit-http-requests
//
// If visitors is nil, NoopAdapter returns and this middleware does nothing.
func RateLimit(visitors *Visitors) Adapter {
	if visitors == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !visitors.Fetch(GetIPAddress(r)).Limiter.Allow() {
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			visitors.cleanup()
			h.ServeHTTP(w, r)
		})
	}
}
