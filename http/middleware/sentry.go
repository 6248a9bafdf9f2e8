package middleware

import (
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/xy-planning-network/dispatch"
)

// ReportPanic recovers panics raised by handlers further down the chain
// and reports them to Sentry.
//
// In development, panics are left alone,
// so NoopAdapter returns and this middleware does nothing.
func ReportPanic(env dispatch.Environment) Adapter {
	if env.IsDevelopment() {
		return NoopAdapter
	}

	sh := sentryhttp.New(sentryhttp.Options{
		Repanic:         false,
		WaitForDelivery: true,
	})

	return sh.Handle
}
