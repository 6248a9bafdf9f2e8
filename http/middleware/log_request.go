package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/xy-planning-network/dispatch"
	"github.com/xy-planning-network/dispatch/http/resp"
	"github.com/xy-planning-network/dispatch/logger"
)

// LogRequest logs the request's method, requested URL, and originating IP address
// using the enclosed implementation of logger.Logger, once the handler returns.
//
// When the http.ResponseWriter is a *resp.TrackingWriter,
// the status written is logged as well.
//
// LogRequest scrubs the values for the following keys:
// - password
//
// if logger.Logger is nil, NoopAdapter returns and this middleware does nothing.
func LogRequest(ls logger.Logger) Adapter {
	if ls == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			h.ServeHTTP(w, r)

			uri := r.URL.Path
			q := r.URL.Query()
			dispatch.Mask(q, "password")
			if query := q.Encode(); query != "" {
				uri += "?" + query
			}

			strs := []string{r.Method, uri}
			if ip, ok := r.Context().Value(dispatch.IpAddrKey).(string); ok && ip != "" {
				strs = append([]string{ip}, strs...)
			}

			data := map[string]any{"duration": time.Since(start).String()}
			if tw, ok := w.(*resp.TrackingWriter); ok && tw.Committed() {
				data["status"] = tw.Status()
			}

			if id, ok := r.Context().Value(dispatch.RequestIDKey).(string); ok {
				data["request_id"] = id
			}

			ls.Info(strings.Join(strs, " "), &logger.LogContext{Data: data})
		})
	}
}
