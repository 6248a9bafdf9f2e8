package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/dispatch/http/middleware"
	"golang.org/x/time/rate"
)

func TestRateLimit(t *testing.T) {
	// Arrange + Act
	actual := middleware.RateLimit(nil)

	// Assert
	require.Equal(t, fmt.Sprintf("%p", middleware.NoopAdapter), fmt.Sprintf("%p", actual))

	// Arrange
	vs := middleware.NewVisitorsWithLimit(rate.Every(time.Hour), 2)
	h := middleware.RateLimit(vs)(teapotHandler())

	codes := make([]int, 0, 3)

	// Act
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
		r.Header.Set("X-Forwarded-For", "8.8.8.8")
		h.ServeHTTP(w, r)
		codes = append(codes, w.Code)
	}

	// Assert
	require.Equal(t, []int{http.StatusTeapot, http.StatusTeapot, http.StatusTooManyRequests}, codes)
	require.Equal(t, 1, vs.Len())

	// Arrange
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	r.Header.Set("X-Forwarded-For", "8.8.4.4")

	// Act
	h.ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusTeapot, w.Code)
	require.Equal(t, 2, vs.Len())
}
